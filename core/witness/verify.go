package witness

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/bnb-chain/zkwitness/log"
	"github.com/bnb-chain/zkwitness/trace"
)

// ErrConsistency is returned in verification mode when locally computed
// values disagree with the trace.
var ErrConsistency = errors.New("witness disagrees with trace")

// Verifier cross checks values computed by opcode handlers. It is only
// consulted when Config.Verify is set.
type Verifier interface {
	// Operands checks the values popped by steps[i], top of stack first.
	Operands(steps []trace.Step, i int, ops ...*uint256.Int) error

	// Result checks the value pushed by steps[i].
	Result(steps []trace.Step, i int, result *uint256.Int) error
}

// TraceOracle verifies against the stacks recorded in the trace: operands
// must match the top of the step's own stack and the result must be on top
// of the stack of the next step in the same frame.
type TraceOracle struct{}

// NewTraceOracle returns a verifier backed by the replayed trace.
func NewTraceOracle() *TraceOracle {
	return &TraceOracle{}
}

// Operands implements Verifier.
func (TraceOracle) Operands(steps []trace.Step, i int, ops ...*uint256.Int) error {
	for n, op := range ops {
		want, err := steps[i].StackTop(n)
		if err != nil {
			return errors.Wrap(ErrConsistency, err.Error())
		}
		if !want.Eq(op) {
			return errors.Wrapf(ErrConsistency, "operand %d: have %s, trace %s", n, op.Hex(), want.Hex())
		}
	}
	return nil
}

// Result implements Verifier. A step ending its frame has no successor to
// compare with and passes.
func (TraceOracle) Result(steps []trace.Step, i int, result *uint256.Int) error {
	next := trace.NextInFrame(steps, i)
	if next < 0 {
		log.Debug("No successor step to verify result", "pc", steps[i].Pc, "op", steps[i].Op)
		return nil
	}
	want, err := steps[next].StackTop(0)
	if err != nil {
		return errors.Wrap(ErrConsistency, err.Error())
	}
	if !want.Eq(result) {
		return errors.Wrapf(ErrConsistency, "result: have %s, trace %s", result.Hex(), want.Hex())
	}
	return nil
}
