// Package copyevent describes bulk data movements between sources such as
// memory and destinations such as the RLC accumulator, down to the byte, so a
// copy circuit can check them.
package copyevent

import (
	"fmt"
)

// DataType identifies the kind of source or destination of a copy.
type DataType uint8

const (
	Padding DataType = iota
	Bytecode
	Memory
	TxCalldata
	TxLog
	RlcAcc
)

func (t DataType) String() string {
	switch t {
	case Padding:
		return "Padding"
	case Bytecode:
		return "Bytecode"
	case Memory:
		return "Memory"
	case TxCalldata:
		return "TxCalldata"
	case TxLog:
		return "TxLog"
	case RlcAcc:
		return "RlcAcc"
	default:
		return fmt.Sprintf("DataType(%d)", uint8(t))
	}
}

// Step is one byte of a copy. Mask bytes are only present because of word
// alignment and are not part of the logical data.
type Step struct {
	Value  byte
	IsCode bool
	IsMask bool
}

// Bytes is the payload of a copy event.
type Bytes struct {
	Bytes []Step
}

// Unmasked returns the logical bytes of the payload in order.
func (b Bytes) Unmasked() []byte {
	out := make([]byte, 0, len(b.Bytes))
	for _, s := range b.Bytes {
		if !s.IsMask {
			out = append(out, s.Value)
		}
	}
	return out
}

// MaskCount returns the number of padding bytes in the payload.
func (b Bytes) MaskCount() int {
	var n int
	for _, s := range b.Bytes {
		if s.IsMask {
			n++
		}
	}
	return n
}

// Event is a packaged copy of data from one location to another.
type Event struct {
	SrcType    DataType
	SrcID      uint64
	SrcAddr    uint64
	SrcAddrEnd uint64
	DstType    DataType
	DstID      uint64
	DstAddr    uint64
	LogID      *uint64

	// RWCounterStart is the sequence number of the first record logged for
	// this copy.
	RWCounterStart uint64
	CopyBytes      Bytes
}

// WordCount returns the number of memory words read for this copy.
func (e *Event) WordCount() uint64 {
	return uint64(len(e.CopyBytes.Bytes)) / 32
}

// RecordRange returns the half open range of record sequence numbers that
// belong to this copy.
func (e *Event) RecordRange() (uint64, uint64) {
	return e.RWCounterStart, e.RWCounterStart + e.WordCount()
}

func (e *Event) String() string {
	return fmt.Sprintf("copy %s(%d)[%#x,%#x) -> %s(%d)@%#x rwc=%d bytes=%d",
		e.SrcType, e.SrcID, e.SrcAddr, e.SrcAddrEnd,
		e.DstType, e.DstID, e.DstAddr, e.RWCounterStart, len(e.CopyBytes.Bytes))
}
