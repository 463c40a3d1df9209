// Package circbuf provides a bounded, lock-free ring buffer for passing
// fixed-size messages between concurrent producers and consumers through
// shared memory.
//
// # Thread-Safety Guarantees
//
// Two modes are available, chosen once at New:
//
//   - ModeSPSC: exactly one producer goroutine calls PushClaim/Push, and
//     exactly one consumer goroutine calls PopClaim/Pop. Both are
//     wait-free — no CAS retry loop, bounded steps per call.
//   - ModeMPMC: any number of producer and consumer goroutines may call
//     the same operations concurrently. The ring as a whole is lock-free.
//
// Mixing modes, or exceeding the single-producer/single-consumer
// constraint of ModeSPSC, is undefined behavior.
//
// # Performance Characteristics
//
//   - No allocation on the hot path: all slot memory is provisioned once
//     at New via the supplied alloc.Allocator.
//   - No blocking, parking, or yielding: a full push or empty pop returns
//     ErrWouldBlock immediately. Backoff and retry policy belong to the
//     caller.
//   - Cache-line padding between head and tail prevents false sharing
//     between producer and consumer.
//
// # Usage Example
//
//	r, err := circbuf.NewWithHeap(circbuf.ModeSPSC, 64, 8)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	var msg [8]byte
//	binary.LittleEndian.PutUint64(msg[:], 42)
//	if err := r.Push(msg[:]); err != nil {
//	    // ErrWouldBlock: ring is full
//	}
//
//	var out [8]byte
//	if _, err := r.Pop(out[:]); err != nil {
//	    // ErrWouldBlock: ring is empty
//	}
package circbuf
