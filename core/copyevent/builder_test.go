package copyevent

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnb-chain/zkwitness/core/evmstate"
)

func TestMemoryRangeMask(t *testing.T) {
	rng := evmstate.AlignRange(0x10, 0x32)
	src := make([]byte, rng.Size())
	for i := range src {
		src[i] = byte(i)
	}
	steps, err := MemoryRange(rng).Source(src).Build()
	require.NoError(t, err)
	require.Len(t, steps, 0x60)

	for i, s := range steps {
		assert.Equal(t, byte(i), s.Value)
		assert.False(t, s.IsCode)
		inside := i >= 0x10 && i < 0x42
		assert.Equal(t, !inside, s.IsMask, "byte %#x", i)
	}
	b := Bytes{Bytes: steps}
	assert.Equal(t, 0x60-0x32, b.MaskCount())
	assert.Equal(t, src[0x10:0x42], b.Unmasked())
}

func TestMemoryRangeAligned(t *testing.T) {
	rng := evmstate.AlignRange(0x40, 0x40)
	steps, err := MemoryRange(rng).Source(make([]byte, 0x40)).Build()
	require.NoError(t, err)
	assert.Zero(t, Bytes{Bytes: steps}.MaskCount())
}

func TestMemoryRangeEmpty(t *testing.T) {
	steps, err := MemoryRange(evmstate.AlignRange(0x33, 0)).Source(nil).Build()
	require.NoError(t, err)
	assert.Empty(t, steps)
}

func TestMemoryRangeSourceLength(t *testing.T) {
	_, err := MemoryRange(evmstate.AlignRange(0, 1)).Source(make([]byte, 31)).Build()
	assert.Error(t, err)
}

func TestMemoryRangeRandom(t *testing.T) {
	f := fuzz.New().NilChance(0)
	for i := 0; i < 200; i++ {
		var start, length uint16
		f.Fuzz(&start)
		f.Fuzz(&length)
		rng := evmstate.AlignRange(uint64(start), uint64(length))
		src := make([]byte, rng.Size())
		for j := range src {
			f.Fuzz(&src[j])
		}
		steps, err := MemoryRange(rng).Source(src).Build()
		require.NoError(t, err)

		b := Bytes{Bytes: steps}
		if length == 0 {
			assert.Empty(t, steps)
			continue
		}
		shift := rng.Shift()
		assert.Equal(t, src[shift:shift+uint64(length)], b.Unmasked(), spew.Sdump(rng))
		assert.Equal(t, int(rng.Size())-int(length), b.MaskCount())
	}
}

func TestEventRecordRange(t *testing.T) {
	ev := &Event{
		SrcType:        Memory,
		DstType:        RlcAcc,
		RWCounterStart: 4,
		CopyBytes:      Bytes{Bytes: make([]Step, 96)},
	}
	start, end := ev.RecordRange()
	assert.Equal(t, uint64(4), start)
	assert.Equal(t, uint64(7), end)

	ev.CopyBytes = Bytes{}
	start, end = ev.RecordRange()
	assert.Equal(t, start, end)
}
