package evmstate

import (
	"math"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlignRange(t *testing.T) {
	tests := []struct {
		start, length uint64
		slot, words   uint64
	}{
		{0x00, 0x00, 0x00, 0},
		{0x10, 0x00, 0x00, 0},
		{0x00, 0x01, 0x00, 1},
		{0x00, 0x20, 0x00, 1},
		{0x00, 0x21, 0x00, 2},
		{0x1f, 0x02, 0x00, 2},
		{0x10, 0x32, 0x00, 3},
		{0x34, 0x44, 0x20, 3},
		{0x222, 0x111, 0x220, 9},
		{0x20, 0x30, 0x20, 2},
		{0x40, 0x40, 0x40, 2},
	}
	for _, tt := range tests {
		r := AlignRange(tt.start, tt.length)
		assert.Equal(t, tt.slot, r.StartSlot(), "start slot of (%#x, %#x)", tt.start, tt.length)
		assert.Equal(t, tt.words, r.WordCount(), "word count of (%#x, %#x)", tt.start, tt.length)
		assert.Equal(t, tt.start-tt.slot, r.Shift())
	}
}

func TestAlignRangeProperties(t *testing.T) {
	f := fuzz.New().NilChance(0)
	for i := 0; i < 2000; i++ {
		var start uint64
		var length uint32
		f.Fuzz(&start)
		f.Fuzz(&length)
		if i%3 == 0 {
			start %= 1 << 16
		}
		w := NewByteWindow(start, uint64(length))
		r := Align(w)

		require.Zero(t, r.StartSlot()%WordSize)
		require.LessOrEqual(t, r.StartSlot(), start)
		if length == 0 {
			require.Zero(t, r.WordCount())
			continue
		}
		require.NotZero(t, r.WordCount())
		// Compare against the end using the distance from the start slot, the
		// covering end may lie at 2^64.
		covered := r.WordCount() * WordSize
		need := w.End() - r.StartSlot()
		require.GreaterOrEqual(t, covered, need, "window %v range %v", w, r)
		require.Less(t, covered-need, uint64(WordSize), "window %v range %v not minimal", w, r)
	}
}

func TestByteWindowEndSaturates(t *testing.T) {
	w := NewByteWindow(math.MaxUint64-5, 100)
	assert.Equal(t, uint64(math.MaxUint64), w.End())

	w = NewByteWindow(math.MaxUint64, math.MaxUint64)
	assert.Equal(t, uint64(math.MaxUint64), w.End())

	w = NewByteWindow(10, 20)
	assert.Equal(t, uint64(30), w.End())
	assert.True(t, w.Contains(10))
	assert.True(t, w.Contains(29))
	assert.False(t, w.Contains(30))
	assert.False(t, w.Contains(9))
}

func TestAlignRangeNearMaxAddress(t *testing.T) {
	r := AlignRange(math.MaxUint64-5, 100)
	assert.Equal(t, uint64(math.MaxUint64-31), r.StartSlot())
	assert.Equal(t, uint64(1), r.WordCount())

	r = AlignRange(0, math.MaxUint64)
	assert.Equal(t, uint64(0), r.StartSlot())
	assert.Equal(t, uint64(1)<<59, r.WordCount())
	assert.Equal(t, uint64(math.MaxUint64), r.Size())

	r = AlignRange(math.MaxUint64, 0)
	assert.Zero(t, r.WordCount())
	assert.Zero(t, r.Size())
}

func TestWordRangeSlots(t *testing.T) {
	r := AlignRange(0x34, 0x44)
	assert.Equal(t, []uint64{0x20, 0x40, 0x60}, r.Slots())
	assert.Empty(t, AlignRange(0x34, 0).Slots())
}
