package rw

import (
	"github.com/holiman/uint256"
)

// Counter hands out record sequence numbers. It starts at 1 and is only ever
// advanced, one step per emitted record.
type Counter struct {
	next uint64
}

// NewCounter returns a counter whose first sequence number is 1.
func NewCounter() *Counter {
	return &Counter{next: 1}
}

// Peek returns the sequence number the next record will receive.
func (c *Counter) Peek() uint64 {
	return c.next
}

// Inc returns the current sequence number and advances the counter.
func (c *Counter) Inc() uint64 {
	n := c.next
	c.next++
	return n
}

// Ref points at a record inside a Container.
type Ref struct {
	Kind  Kind
	Index int
}

// Container is the append-only record log of a block. Records are kept in
// emission order, which is also sequence order, and indexed per kind.
type Container struct {
	counter *Counter
	records []Record
	stack   []int
	memory  []int
}

// NewContainer returns an empty log drawing sequence numbers from counter.
func NewContainer(counter *Counter) *Container {
	return &Container{counter: counter}
}

// Emit appends a record with the next sequence number and returns a
// reference to it.
func (c *Container) Emit(kind Kind, dir Direction, callID, addr uint64, value *uint256.Int) Ref {
	rec := Record{
		Kind:      kind,
		Direction: dir,
		CallID:    callID,
		Address:   addr,
		Value:     *value,
		Counter:   c.counter.Inc(),
	}
	idx := len(c.records)
	c.records = append(c.records, rec)

	var perKind int
	switch kind {
	case Stack:
		perKind = len(c.stack)
		c.stack = append(c.stack, idx)
	case Memory:
		perKind = len(c.memory)
		c.memory = append(c.memory, idx)
	}
	return Ref{Kind: kind, Index: perKind}
}

// Get resolves a reference.
func (c *Container) Get(ref Ref) *Record {
	switch ref.Kind {
	case Stack:
		return &c.records[c.stack[ref.Index]]
	case Memory:
		return &c.records[c.memory[ref.Index]]
	}
	return nil
}

// Records returns every record in sequence order. The slice must not be
// modified.
func (c *Container) Records() []Record {
	return c.records
}

// Stack returns the stack records in sequence order.
func (c *Container) Stack() []Record {
	return c.filter(c.stack)
}

// Memory returns the memory records in sequence order.
func (c *Container) Memory() []Record {
	return c.filter(c.memory)
}

// Len returns the number of records.
func (c *Container) Len() int {
	return len(c.records)
}

func (c *Container) filter(idx []int) []Record {
	out := make([]Record, len(idx))
	for i, j := range idx {
		out[i] = c.records[j]
	}
	return out
}
