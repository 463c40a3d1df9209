package alloc

import (
	"fmt"
	"sync/atomic"

	"golang.org/x/sys/unix"
)

// Arena is a bump allocator over one anonymous, private mmap region
// obtained up front. Allocate hands out successive slices of the region
// with a single atomic fetch-and-add; nothing is returned to the arena
// until the whole region is released with Free. This suits a Ring, which
// allocates its slot array exactly once and frees it exactly once.
type Arena struct {
	region []byte
	offset atomic.Uintptr
	freed  atomic.Bool
}

// NewArena reserves size bytes of anonymous memory via mmap. The region is
// not resizable; callers that need more than size bytes across the
// lifetime of the arena should size it generously up front.
func NewArena(size uintptr) (*Arena, error) {
	if size == 0 {
		return nil, fmt.Errorf("alloc: arena size must be > 0")
	}
	region, err := unix.Mmap(-1, 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("alloc: mmap: %w", err)
	}
	return &Arena{region: region}, nil
}

// Allocate bumps the arena's offset and returns the next size bytes,
// rounded up to align (0 meaning 8-byte alignment, sufficient for the
// sequence field this package is built for). Returns an error once the
// region is exhausted.
func (a *Arena) Allocate(size, align uintptr) ([]byte, error) {
	if align == 0 {
		align = 8
	}
	for {
		cur := a.offset.Load()
		start := (cur + align - 1) &^ (align - 1)
		end := start + size
		if end > uintptr(len(a.region)) {
			return nil, fmt.Errorf("alloc: arena exhausted: need %d bytes, %d remaining", size, uintptr(len(a.region))-cur)
		}
		if a.offset.CompareAndSwap(cur, end) {
			return a.region[start:end:end], nil
		}
	}
}

// Reallocate is not supported by Arena and always returns ErrUnsupported —
// the arena has no notion of "the last allocation" once concurrent callers
// are in play, so growing in place is unsafe in general. The ring never
// calls Reallocate (see Allocator), so this path exists only for direct
// callers of this package.
func (a *Arena) Reallocate(b []byte, newSize, align uintptr) ([]byte, error) {
	return nil, ErrUnsupported
}

// Free releases the entire mmap region. Idempotent: a second call is a
// no-op, same as the C original's cb_free guarding against a nil slots
// pointer.
func (a *Arena) Free(b []byte) {
	if a.freed.Swap(true) {
		return
	}
	_ = unix.Munmap(a.region)
}
