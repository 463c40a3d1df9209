package circbuf

import (
	"fmt"
	"sync/atomic"

	"github.com/juusokasperi/circbuf-go/alloc"
)

const cacheLine = 64

// Ring is a bounded, lock-free ring buffer of fixed-size payload slots. It
// is shared between producers and consumers entirely through the atomics
// on its head and tail counters and on each slot's sequence number — see
// the package doc for the mode each ring is built with.
//
// A Ring must be constructed with New or NewWithHeap, and destroyed
// exactly once with Close when no push or pop is in flight; the ring does
// not track outstanding operations itself.
type Ring struct {
	mode     Mode
	slotSize uint32
	mask     uint32
	str      uint32
	alloc    alloc.Allocator
	region   []byte

	_    [cacheLine - 8]byte
	head atomic.Uint32
	_    [cacheLine - 4]byte
	tail atomic.Uint32
	_    [cacheLine - 4]byte

	closed atomic.Bool
}

// New constructs a ring in the given mode with capacity slots (must be a
// power of two, >= 2) each holding up to slotSize bytes (>= 1), using a to
// provision the slot region.
//
// Returns ErrInvalidArgument if a is nil or either size constraint is
// violated — a.Allocate is not called in that case. Returns ErrOutOfMemory
// if a.Allocate fails; the ring is not considered constructed.
func New(mode Mode, capacity, slotSize uint32, a alloc.Allocator) (*Ring, error) {
	if a == nil || !isPowerOfTwo(capacity) || slotSize == 0 {
		return nil, ErrInvalidArgument
	}

	str := stride(slotSize)
	region, err := a.Allocate(uintptr(capacity)*uintptr(str), 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOutOfMemory, err)
	}

	r := &Ring{
		mode:     mode,
		slotSize: slotSize,
		mask:     capacity - 1,
		str:      str,
		alloc:    a,
		region:   region,
	}

	// Release-ordered per-slot init: a Ring handed to goroutines the
	// constructor knows nothing about (no guaranteed happens-before edge
	// from thread launch) still needs these stores visible before any
	// claim observes seq == pos. See DESIGN.md OQ-3.
	for i := uint32(0); i < capacity; i++ {
		atomic.StoreUint32(slotSeq(r.region, i, str), i)
	}
	r.head.Store(0)
	r.tail.Store(0)
	return r, nil
}

// NewWithHeap is a convenience constructor over New and a fresh
// alloc.Heap, mirroring the C original's cb_init_malloc macro.
func NewWithHeap(mode Mode, capacity, slotSize uint32) (*Ring, error) {
	return New(mode, capacity, slotSize, alloc.NewHeap())
}

func isPowerOfTwo(n uint32) bool {
	return n >= 2 && n&(n-1) == 0
}

// Mode returns the ring's fixed mode.
func (r *Ring) Mode() Mode { return r.mode }

// Capacity returns the number of slots the ring was constructed with.
func (r *Ring) Capacity() uint32 { return r.mask + 1 }

// SlotSize returns the maximum payload size, in bytes, a single slot
// holds.
func (r *Ring) SlotSize() uint32 { return r.slotSize }

// Close releases the ring's slot region back to its allocator. Close is
// idempotent — calling it again once the region has been released is a
// no-op. After Close, the ring must not be used for push/pop; doing so is
// undefined behavior.
func (r *Ring) Close() {
	if r.closed.Swap(true) {
		return
	}
	r.alloc.Free(r.region)
}
