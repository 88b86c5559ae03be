package evmstate

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// MaxMemorySize is the default upper bound on memory growth. Growing past it
// would cost more gas than any block can provide.
const MaxMemorySize uint64 = 0x1FFFFFFFE0

// ErrMemoryGrowth is returned when memory cannot be extended to the requested
// length.
var ErrMemoryGrowth = errors.New("memory growth failure")

// Memory is the byte addressable memory of a single call frame, rebuilt from
// a trace snapshot before an opcode is replayed.
type Memory struct {
	store []byte
	limit uint64
}

// NewMemory returns an empty memory which can grow up to limit bytes. A zero
// limit selects MaxMemorySize.
func NewMemory(limit uint64) *Memory {
	if limit == 0 {
		limit = MaxMemorySize
	}
	return &Memory{limit: limit}
}

// NewMemoryFrom returns a memory holding a copy of data.
func NewMemoryFrom(data []byte, limit uint64) *Memory {
	m := NewMemory(limit)
	m.store = append(make([]byte, 0, len(data)), data...)
	return m
}

// ExtendAtLeast grows the memory so that it holds at least size bytes. New
// bytes are zero.
func (m *Memory) ExtendAtLeast(size uint64) error {
	if size <= uint64(len(m.store)) {
		return nil
	}
	if size > m.limit {
		return errors.Wrapf(ErrMemoryGrowth, "size %d exceeds limit %d", size, m.limit)
	}
	m.store = append(m.store, make([]byte, size-uint64(len(m.store)))...)
	return nil
}

// ReadWindow returns a copy of the exact bytes covered by w. Bytes past the
// end of memory read as zero.
func (m *Memory) ReadWindow(w ByteWindow) []byte {
	return m.read(w.Start, w.Length)
}

// ReadWordRange returns the word aligned bytes covered by r, exactly
// r.WordCount()*32 bytes long. Bytes past the end of memory read as zero.
func (m *Memory) ReadWordRange(r WordRange) []byte {
	return m.read(r.StartSlot(), r.Size())
}

// ReadWord returns the 32 byte word at addr as a big endian integer.
func (m *Memory) ReadWord(addr uint64) uint256.Int {
	var word uint256.Int
	word.SetBytes32(m.read(addr, WordSize))
	return word
}

func (m *Memory) read(offset, size uint64) []byte {
	cpy := make([]byte, size)
	if size == 0 || offset >= uint64(len(m.store)) {
		return cpy
	}
	end := uint64(len(m.store))
	if offset+size < end && offset+size > offset {
		end = offset + size
	}
	copy(cpy, m.store[offset:end])
	return cpy
}

// Len returns the length of the backing slice.
func (m *Memory) Len() int {
	return len(m.store)
}

// Data returns the backing slice.
func (m *Memory) Data() []byte {
	return m.store
}
