package compute

import "errors"

var (
	// ErrUnknownBackend indicates a backend name ByName does not recognise.
	ErrUnknownBackend = errors.New("compute: unknown backend")
)
