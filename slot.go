package circbuf

import "unsafe"

const seqSize = uint32(unsafe.Sizeof(uint32(0)))

// stride returns the byte length of one slot record: the sequence field
// plus slotSize payload bytes, rounded up to the sequence field's own
// alignment. This is the align_up(sizeof(seq)+slot_size, alignof(seq))
// computation the ring performs once, at New.
func stride(slotSize uint32) uint32 {
	raw := seqSize + slotSize
	return (raw + seqSize - 1) &^ (seqSize - 1)
}

// slotSeq returns a pointer to the sequence field of the slot at raw
// index idx (already masked by the caller) within region, a flat byte
// region laid out in str-byte strides.
func slotSeq(region []byte, idx, str uint32) *uint32 {
	off := idx * str
	return (*uint32)(unsafe.Pointer(&region[off]))
}

// slotData returns the payload bytes of the slot at raw index idx,
// aliasing region so writes through it are visible once published.
func slotData(region []byte, idx, str, slotSize uint32) []byte {
	off := idx*str + seqSize
	return region[off : off+slotSize : off+slotSize]
}
