package circbuf

import (
	"encoding/binary"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_InvalidArgument(t *testing.T) {
	cases := []struct {
		name     string
		capacity uint32
		slotSize uint32
	}{
		{"zero capacity", 0, 8},
		{"capacity one", 1, 8},
		{"capacity three", 3, 8},
		{"capacity six", 6, 8},
		{"zero slot size", 4, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := NewWithHeap(ModeSPSC, tc.capacity, tc.slotSize)
			require.Nil(t, r)
			require.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestNew_NilAllocator(t *testing.T) {
	r, err := New(ModeSPSC, 4, 8, nil)
	require.Nil(t, r)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

// Scenario 1: SPSC hello.
func TestRing_SPSCHello(t *testing.T) {
	r, err := NewWithHeap(ModeSPSC, 4, 8)
	require.NoError(t, err)
	defer r.Close()

	for _, v := range []uint64{1, 2, 3} {
		var msg [8]byte
		binary.LittleEndian.PutUint64(msg[:], v)
		require.NoError(t, r.Push(msg[:]))
	}

	for _, want := range []uint64{1, 2, 3} {
		var out [8]byte
		n, err := r.Pop(out[:])
		require.NoError(t, err)
		require.Equal(t, 8, n)
		require.Equal(t, want, binary.LittleEndian.Uint64(out[:]))
	}

	var out [8]byte
	_, err = r.Pop(out[:])
	require.ErrorIs(t, err, ErrWouldBlock)
}

// Scenario 2: SPSC fill-to-capacity.
func TestRing_SPSCFillToCapacity(t *testing.T) {
	r, err := NewWithHeap(ModeSPSC, 2, 1)
	require.NoError(t, err)
	defer r.Close()

	require.NoError(t, r.Push([]byte{0xAA}))
	require.NoError(t, r.Push([]byte{0xBB}))

	err = r.Push([]byte{0xFF})
	require.ErrorIs(t, err, ErrWouldBlock)

	var out [1]byte
	_, err = r.Pop(out[:])
	require.NoError(t, err)
	require.Equal(t, byte(0xAA), out[0])

	require.NoError(t, r.Push([]byte{0xCC}))

	_, err = r.Pop(out[:])
	require.NoError(t, err)
	require.Equal(t, byte(0xBB), out[0])

	_, err = r.Pop(out[:])
	require.NoError(t, err)
	require.Equal(t, byte(0xCC), out[0])
}

// B2: an oversized payload fails without touching ring state.
func TestRing_PushOversizedPayload(t *testing.T) {
	r, err := NewWithHeap(ModeSPSC, 4, 4)
	require.NoError(t, err)
	defer r.Close()

	err = r.Push(make([]byte, 5))
	require.ErrorIs(t, err, ErrInvalidArgument)

	// Ring state is untouched: a full round-trip still works afterward.
	require.NoError(t, r.Push([]byte{1, 2, 3, 4}))
	out := make([]byte, 4)
	n, err := r.Pop(out)
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.Equal(t, []byte{1, 2, 3, 4}, out)
}

// B4: popping an empty ring returns WouldBlock.
func TestRing_PopEmpty(t *testing.T) {
	r, err := NewWithHeap(ModeSPSC, 4, 4)
	require.NoError(t, err)
	defer r.Close()

	_, err = r.Pop(make([]byte, 4))
	require.ErrorIs(t, err, ErrWouldBlock)
}

// R1: round-trip for arbitrary payloads up to slot_size.
func TestRing_RoundTrip(t *testing.T) {
	r, err := NewWithHeap(ModeSPSC, 8, 16)
	require.NoError(t, err)
	defer r.Close()

	payloads := [][]byte{
		{},
		{0x01},
		{0x01, 0x02, 0x03},
		make([]byte, 16),
	}
	for i := range payloads[3] {
		payloads[3][i] = byte(i)
	}

	for _, p := range payloads {
		require.NoError(t, r.Push(p))
	}
	for _, want := range payloads {
		out := make([]byte, len(want))
		n, err := r.Pop(out)
		require.NoError(t, err)
		require.Equal(t, len(want), n)
		require.Equal(t, want, out)
	}
}

// R2: destroy is idempotent, and a ring may be reused after
// re-construction (scenario 4, empty-destroy-reuse).
func TestRing_CloseIdempotent(t *testing.T) {
	r, err := NewWithHeap(ModeSPSC, 4, 4)
	require.NoError(t, err)
	r.Close()
	require.NotPanics(t, r.Close)

	r2, err := NewWithHeap(ModeSPSC, 8, 4)
	require.NoError(t, err)
	defer r2.Close()

	require.NoError(t, r2.Push([]byte{9, 9, 9, 9}))
	out := make([]byte, 4)
	n, err := r2.Pop(out)
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.Equal(t, []byte{9, 9, 9, 9}, out)
}

// Scenario 6: 100,000 push/pop pairs on a capacity-2 ring. Slot indices
// wrap around many times; the 32-bit head/tail counters do not reach 2^32,
// so counter wraparound (B5) is not exercised here.
func TestRing_Wraparound(t *testing.T) {
	r, err := NewWithHeap(ModeSPSC, 2, 4)
	require.NoError(t, err)
	defer r.Close()

	const rounds = 100_000
	for i := 0; i < rounds; i++ {
		var msg [4]byte
		binary.LittleEndian.PutUint32(msg[:], uint32(i))
		require.NoError(t, r.Push(msg[:]))

		var out [4]byte
		n, err := r.Pop(out[:])
		require.NoError(t, err)
		require.Equal(t, 4, n)
		require.Equal(t, uint32(i), binary.LittleEndian.Uint32(out[:]))
	}
}

// Concurrent SPSC producer/consumer: P2, the consumer observes pushes in
// the order the producer issued them.
func TestRing_SPSCConcurrent(t *testing.T) {
	r, err := NewWithHeap(ModeSPSC, 1024, 8)
	require.NoError(t, err)
	defer r.Close()

	const n = 200_000
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			var msg [8]byte
			binary.LittleEndian.PutUint64(msg[:], uint64(i))
			for r.Push(msg[:]) != nil {
				// spin until a slot frees up
			}
		}
	}()

	var out [8]byte
	for i := 0; i < n; i++ {
		for {
			_, err := r.Pop(out[:])
			if err == nil {
				break
			}
			if !errors.Is(err, ErrWouldBlock) {
				t.Fatalf("unexpected error: %v", err)
			}
		}
		require.Equal(t, uint64(i), binary.LittleEndian.Uint64(out[:]))
	}
	wg.Wait()
}

func TestMode_String(t *testing.T) {
	require.Equal(t, "spsc", ModeSPSC.String())
	require.Equal(t, "mpmc", ModeMPMC.String())
	require.Equal(t, "unknown", Mode(99).String())
}
