package spatial

import (
	"math"
	"sync/atomic"
	"unsafe"
)

// AtomicAdd adds v to *addr with a compare-and-swap loop and returns the
// previous value. Every concurrent writer to addr must go through AtomicAdd.
func AtomicAdd(addr *float64, v float64) float64 {
	bits := (*uint64)(unsafe.Pointer(addr))
	for {
		old := atomic.LoadUint64(bits)
		sum := math.Float64frombits(old) + v
		if atomic.CompareAndSwapUint64(bits, old, math.Float64bits(sum)) {
			return math.Float64frombits(old)
		}
	}
}

func AtomicAddVector(addr *Vector, v Vector) {
	for i := 0; i < 6; i++ {
		AtomicAdd(addr.Ptr(i), v.At(i))
	}
}
