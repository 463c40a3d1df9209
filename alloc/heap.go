package alloc

// Heap is the system-heap allocator variant: every Allocate is a plain
// make([]byte, size), every Free is a documented no-op left to the
// garbage collector. It ignores align, matching the C original's
// malloc_allocator, which asserts alignment is 0 rather than honoring it.
type Heap struct{}

// NewHeap returns the system-heap allocator. It holds no state, so a zero
// value is equally usable; the constructor exists for symmetry with Arena
// and so call sites read the same way regardless of which allocator they
// construct.
func NewHeap() Heap {
	return Heap{}
}

func (Heap) Allocate(size, align uintptr) ([]byte, error) {
	_ = align // system heap does not support stricter-than-default alignment
	return make([]byte, size), nil
}

func (Heap) Reallocate(b []byte, newSize, align uintptr) ([]byte, error) {
	_ = align
	grown := make([]byte, newSize)
	copy(grown, b)
	return grown, nil
}

// Free is a no-op: the slice becomes unreachable once the caller drops its
// last reference and the GC reclaims it. It is still called at every
// teardown site in this module so the call graph matches a pooling or
// arena allocator dropped in without changing callers.
func (Heap) Free(b []byte) {}
