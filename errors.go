package circbuf

import "errors"

// Sentinel errors returned by the ring's operations. Check them with
// errors.Is, not direct comparison — a wrapped variant may be returned in
// the future without breaking callers.
var (
	// ErrInvalidArgument is returned when the caller violates a contract:
	// a nil allocator, a non-power-of-two capacity, a zero slot size, or a
	// Push/Pop payload larger than the slot size.
	ErrInvalidArgument = errors.New("circbuf: invalid argument")

	// ErrOutOfMemory is returned by New when the allocator refuses the
	// slot region. The ring is not considered constructed.
	ErrOutOfMemory = errors.New("circbuf: out of memory")

	// ErrWouldBlock is returned by a claim when the ring cannot make
	// progress right now: full for a producer, empty for a consumer.
	// It is not a fault — the caller decides whether to retry, back off,
	// or give up.
	ErrWouldBlock = errors.New("circbuf: would block")
)

// Debug gates assertions on usage errors that the spec otherwise leaves as
// undefined behavior. When true, PushPublish panics if the slot's sequence
// number is not pos (e.g. a token published twice), and PopRelease panics
// if it is not pos+1 (e.g. a token released twice). A token for a free,
// unclaimed position passes the check, so publishing without having
// claimed is not detected. Off by default so the hot path never pays for
// the check.
var Debug = false
