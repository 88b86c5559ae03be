package evmstate

import (
	"github.com/ethereum/go-ethereum/params"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

var (
	ErrStackUnderflow = errors.New("stack underflow")
	ErrStackOverflow  = errors.New("stack limit reached")
)

// Stack is the operand stack of a call frame. Slots are addressed the way the
// circuit sees them: the bottom of the stack is StackLimit-1 and the address
// decreases as the stack grows.
type Stack struct {
	data []uint256.Int
}

// NewStack returns an empty stack.
func NewStack() *Stack {
	return &Stack{data: make([]uint256.Int, 0, 16)}
}

// NewStackFrom returns a stack holding a copy of data, last element on top.
func NewStackFrom(data []uint256.Int) *Stack {
	return &Stack{data: append(make([]uint256.Int, 0, len(data)+1), data...)}
}

// Pointer returns the address of the current top of the stack. An empty
// stack points at StackLimit.
func (st *Stack) Pointer() uint64 {
	return params.StackLimit - uint64(len(st.data))
}

// Pop removes the top element and returns it along with the slot it was read
// from.
func (st *Stack) Pop() (uint256.Int, uint64, error) {
	if len(st.data) == 0 {
		return uint256.Int{}, 0, ErrStackUnderflow
	}
	addr := st.Pointer()
	ret := st.data[len(st.data)-1]
	st.data = st.data[:len(st.data)-1]
	return ret, addr, nil
}

// Push places d on top of the stack and returns the slot it was written to.
func (st *Stack) Push(d *uint256.Int) (uint64, error) {
	if uint64(len(st.data)) >= params.StackLimit {
		return 0, ErrStackOverflow
	}
	st.data = append(st.data, *d)
	return st.Pointer(), nil
}

// Peek returns the n'th element from the top without removing it.
func (st *Stack) Peek(n int) (*uint256.Int, error) {
	if n < 0 || n >= len(st.data) {
		return nil, ErrStackUnderflow
	}
	return &st.data[len(st.data)-n-1], nil
}

// Len returns the number of elements on the stack.
func (st *Stack) Len() int {
	return len(st.data)
}

// Data returns the underlying elements, bottom first.
func (st *Stack) Data() []uint256.Int {
	return st.data
}
