package circbuf

import "sync/atomic"

// PopClaim reserves the next ready slot for reading. On success it
// returns a byte slice aliasing that slot's payload storage (valid to
// read until the matching PopRelease) and a position token to pass to
// PopRelease. If the ring is empty, it returns ErrWouldBlock.
//
// Under ModeSPSC this must only be called by the ring's single consumer
// and is wait-free. Under ModeMPMC it is safe for any number of
// concurrent consumers and retries via compare-and-swap until it wins a
// position or observes the ring empty.
func (r *Ring) PopClaim() ([]byte, uint32, error) {
	if r.mode == ModeSPSC {
		return r.popClaimSPSC()
	}
	return r.popClaimMPMC()
}

func (r *Ring) popClaimSPSC() ([]byte, uint32, error) {
	pos := r.tail.Load()
	idx := pos & r.mask
	seq := atomic.LoadUint32(slotSeq(r.region, idx, r.str))
	if seq != pos+1 {
		return nil, 0, ErrWouldBlock
	}
	r.tail.Store(pos + 1)
	return slotData(r.region, idx, r.str, r.slotSize), pos, nil
}

func (r *Ring) popClaimMPMC() ([]byte, uint32, error) {
	pos := r.tail.Load()
	for {
		idx := pos & r.mask
		seqPtr := slotSeq(r.region, idx, r.str)
		seq := atomic.LoadUint32(seqPtr)
		diff := int32(seq - (pos + 1))

		switch {
		case diff == 0:
			if r.tail.CompareAndSwap(pos, pos+1) {
				return slotData(r.region, idx, r.str, r.slotSize), pos, nil
			}
			pos = r.tail.Load()
		case diff < 0:
			return nil, 0, ErrWouldBlock
		default:
			pos = r.tail.Load()
		}
	}
}

// PopRelease returns the slot at pos to the free pool for the producer
// that will next arrive at position pos+capacity. pos must be the token
// PopClaim returned for the same ring.
func (r *Ring) PopRelease(pos uint32) {
	seqPtr := slotSeq(r.region, pos&r.mask, r.str)
	if Debug {
		if cur := atomic.LoadUint32(seqPtr); cur != pos+1 {
			panic("circbuf: PopRelease called with a stale or already-released token")
		}
	}
	atomic.StoreUint32(seqPtr, pos+r.mask+1)
}
