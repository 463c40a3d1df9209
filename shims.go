package circbuf

// Push copies src into the ring as one payload. It is a thin wrapper over
// PushClaim/PushPublish and shares the same state machine those
// lower-level operations use — there is no separate fast path.
//
// Returns ErrInvalidArgument if len(src) exceeds the ring's slot size,
// without claiming a slot. Returns ErrWouldBlock if the ring is full.
func (r *Ring) Push(src []byte) error {
	if uint32(len(src)) > r.slotSize {
		return ErrInvalidArgument
	}
	dst, pos, err := r.PushClaim()
	if err != nil {
		return err
	}
	copy(dst, src)
	r.PushPublish(pos)
	return nil
}

// Pop copies the next payload out of the ring into dst and returns the
// number of bytes copied. It is a thin wrapper over PopClaim/PopRelease.
//
// Returns ErrInvalidArgument if len(dst) exceeds the ring's slot size,
// without claiming a slot. Returns ErrWouldBlock if the ring is empty.
func (r *Ring) Pop(dst []byte) (int, error) {
	if uint32(len(dst)) > r.slotSize {
		return 0, ErrInvalidArgument
	}
	src, pos, err := r.PopClaim()
	if err != nil {
		return 0, err
	}
	n := copy(dst, src)
	r.PopRelease(pos)
	return n, nil
}
