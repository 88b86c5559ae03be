package evmstate

import (
	"fmt"
	"math"

	gmath "github.com/ethereum/go-ethereum/common/math"
)

// WordSize is the width of a memory word in bytes.
const WordSize = 32

// ByteWindow is an exact, possibly unaligned, region of memory.
type ByteWindow struct {
	Start  uint64
	Length uint64
}

// NewByteWindow returns the window of length bytes starting at start.
func NewByteWindow(start, length uint64) ByteWindow {
	return ByteWindow{Start: start, Length: length}
}

// End returns the exclusive end address of the window. It saturates at
// math.MaxUint64 instead of wrapping.
func (w ByteWindow) End() uint64 {
	end, overflow := gmath.SafeAdd(w.Start, w.Length)
	if overflow {
		return math.MaxUint64
	}
	return end
}

// IsEmpty reports whether the window covers no bytes.
func (w ByteWindow) IsEmpty() bool {
	return w.Length == 0
}

// Contains reports whether addr lies in [Start, End).
func (w ByteWindow) Contains(addr uint64) bool {
	return addr >= w.Start && addr < w.End()
}

func (w ByteWindow) String() string {
	return fmt.Sprintf("[%#x, %#x)", w.Start, w.End())
}

// WordRange is the word aligned range covering a ByteWindow.
type WordRange struct {
	startSlot uint64
	wordCount uint64
	window    ByteWindow
}

// AlignRange returns the smallest word aligned range covering the window
// [start, start+length). The end is computed with saturation, and the word
// count never requires an end slot beyond 2^64-1 to be represented.
func AlignRange(start, length uint64) WordRange {
	return Align(NewByteWindow(start, length))
}

// Align returns the smallest word aligned range covering w.
func Align(w ByteWindow) WordRange {
	startSlot := w.Start - w.Start%WordSize
	if w.IsEmpty() {
		return WordRange{startSlot: startSlot, window: w}
	}
	span := w.End() - startSlot
	count := span / WordSize
	if span%WordSize != 0 {
		count++
	}
	return WordRange{startSlot: startSlot, wordCount: count, window: w}
}

// StartSlot returns the first aligned address of the range.
func (r WordRange) StartSlot() uint64 { return r.startSlot }

// WordCount returns the number of 32 byte words in the range.
func (r WordRange) WordCount() uint64 { return r.wordCount }

// Size returns the length of the range in bytes, saturating at
// math.MaxUint64 for ranges reaching the top of the address space.
func (r WordRange) Size() uint64 {
	if r.wordCount > math.MaxUint64/WordSize {
		return math.MaxUint64
	}
	return r.wordCount * WordSize
}

// Window returns the exact window the range was aligned from.
func (r WordRange) Window() ByteWindow { return r.window }

// Shift returns the number of padding bytes in front of the window.
func (r WordRange) Shift() uint64 { return r.window.Start - r.startSlot }

// Slots returns the aligned address of every word in the range in ascending
// order.
func (r WordRange) Slots() []uint64 {
	slots := make([]uint64, r.wordCount)
	for i := range slots {
		slots[i] = r.startSlot + uint64(i)*WordSize
	}
	return slots
}

func (r WordRange) String() string {
	return fmt.Sprintf("slot %#x x%d", r.startSlot, r.wordCount)
}
