package circbuf

import "sync/atomic"

// PushClaim reserves the next slot for writing. On success it returns a
// byte slice aliasing that slot's payload storage (valid to write until
// the matching PushPublish) and an opaque position token to pass to
// PushPublish. If the ring is full, it returns ErrWouldBlock.
//
// Under ModeSPSC this must only be called by the ring's single producer
// and is wait-free. Under ModeMPMC it is safe for any number of concurrent
// producers and retries via compare-and-swap until it wins a position or
// observes the ring full.
func (r *Ring) PushClaim() ([]byte, uint32, error) {
	if r.mode == ModeSPSC {
		return r.pushClaimSPSC()
	}
	return r.pushClaimMPMC()
}

func (r *Ring) pushClaimSPSC() ([]byte, uint32, error) {
	pos := r.head.Load()
	idx := pos & r.mask
	seq := atomic.LoadUint32(slotSeq(r.region, idx, r.str))
	if seq != pos {
		return nil, 0, ErrWouldBlock
	}
	r.head.Store(pos + 1)
	return slotData(r.region, idx, r.str, r.slotSize), pos, nil
}

func (r *Ring) pushClaimMPMC() ([]byte, uint32, error) {
	pos := r.head.Load()
	for {
		idx := pos & r.mask
		seqPtr := slotSeq(r.region, idx, r.str)
		seq := atomic.LoadUint32(seqPtr)
		diff := int32(seq - pos)

		switch {
		case diff == 0:
			if r.head.CompareAndSwap(pos, pos+1) {
				return slotData(r.region, idx, r.str, r.slotSize), pos, nil
			}
			pos = r.head.Load()
		case diff < 0:
			return nil, 0, ErrWouldBlock
		default:
			// A peer already claimed this slot; reload and retry rather
			// than spin on a stale head value.
			pos = r.head.Load()
		}
	}
}

// PushPublish makes the payload written into the slice PushClaim returned
// visible to consumers. pos must be the token PushClaim returned for the
// same ring; publishing a token twice, or one obtained from a different
// ring, is undefined behavior. With Debug set, a token whose slot sequence
// number is not pos panics, which catches a double publish; a token from a
// different ring is caught only when that ring's slot does not also hold
// pos.
func (r *Ring) PushPublish(pos uint32) {
	seqPtr := slotSeq(r.region, pos&r.mask, r.str)
	if Debug {
		if cur := atomic.LoadUint32(seqPtr); cur != pos {
			panic("circbuf: PushPublish called with a stale or already-published token")
		}
	}
	atomic.StoreUint32(seqPtr, pos+1)
}
