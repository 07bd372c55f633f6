package compute

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
)

// Kernel processes one work item.
type Kernel func(tid int)

// Backend runs n independent work items. Launch returns once every item has
// finished or ctx is done.
type Backend interface {
	Name() string
	Available() bool
	Launch(ctx context.Context, n int, k Kernel) error
	Cleanup()
}

var activeBackend Backend

func init() {
	activeBackend = AutoSelectBackend()
}

func SetBackend(b Backend) {
	if activeBackend != nil {
		activeBackend.Cleanup()
	}
	activeBackend = b
}

func GetBackend() Backend {
	return activeBackend
}

// AutoSelectBackend prefers the parallel CPU backend when more than one
// core is available.
func AutoSelectBackend() Backend {
	if runtime.NumCPU() > 1 {
		cpu := NewCPUBackend()
		slog.Debug("compute backend selected", "name", cpu.Name(), "workers", cpu.Workers())
		return cpu
	}
	slog.Debug("compute backend selected", "name", "serial")
	return NewSerialBackend()
}

// ByName resolves "serial", "cpu" or "auto".
func ByName(name string) (Backend, error) {
	switch name {
	case "serial":
		return NewSerialBackend(), nil
	case "cpu":
		return NewCPUBackend(), nil
	case "", "auto":
		return AutoSelectBackend(), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, name)
}
