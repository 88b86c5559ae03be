// Package rw implements the read/write record log shared by all opcode
// handlers of a block. Every record carries a sequence number taken from one
// block wide counter, so records of different kinds are totally ordered.
package rw

import (
	"fmt"

	"github.com/holiman/uint256"
)

// Kind is the target of a record.
type Kind uint8

const (
	Stack Kind = iota
	Memory
)

func (k Kind) String() string {
	switch k {
	case Stack:
		return "Stack"
	case Memory:
		return "Memory"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Direction tells whether a record reads or writes its target.
type Direction bool

const (
	Read  Direction = false
	Write Direction = true
)

func (d Direction) String() string {
	if d == Write {
		return "WRITE"
	}
	return "READ"
}

// Record is a single logged access. Records are never modified once emitted.
type Record struct {
	Kind      Kind
	Direction Direction
	CallID    uint64
	Address   uint64 // stack slot or word aligned memory address
	Value     uint256.Int
	Counter   uint64 // global sequence number
}

func (r *Record) String() string {
	return fmt.Sprintf("#%d %s %s call=%d addr=%#x value=%s",
		r.Counter, r.Kind, r.Direction, r.CallID, r.Address, r.Value.Hex())
}
