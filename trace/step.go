// Package trace provides the execution steps witness generation replays,
// either captured live from a running EVM or decoded from the JSON returned
// by debug_traceTransaction.
package trace

import (
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// Step is the state of the EVM right before an opcode executes.
type Step struct {
	Pc     uint64
	Op     vm.OpCode
	Depth  int
	Stack  []uint256.Int // bottom first
	Memory []byte        // nil when memory was not captured for this step
	Err    string
}

// StackTop returns the n'th stack element from the top.
func (s *Step) StackTop(n int) (*uint256.Int, error) {
	if n < 0 || n >= len(s.Stack) {
		return nil, errors.Errorf("stack of step %d (%v) has %d items, want %d", s.Pc, s.Op, len(s.Stack), n+1)
	}
	return &s.Stack[len(s.Stack)-1-n], nil
}

// NextInFrame returns the index of the first step after i executing in the
// same call frame, skipping over any nested call. It returns -1 if the frame
// ends first.
func NextInFrame(steps []Step, i int) int {
	depth := steps[i].Depth
	for j := i + 1; j < len(steps); j++ {
		switch {
		case steps[j].Depth == depth:
			return j
		case steps[j].Depth < depth:
			return -1
		}
	}
	return -1
}
