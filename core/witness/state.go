package witness

import (
	"github.com/holiman/uint256"

	"github.com/bnb-chain/zkwitness/core/copyevent"
	"github.com/bnb-chain/zkwitness/core/rw"
	"github.com/bnb-chain/zkwitness/trace"
)

// StateRef gives an opcode handler access to the block context, the current
// call frame and the trace being replayed.
type StateRef struct {
	Block *Block
	Call  *CallContext

	steps    []trace.Step
	index    int
	verifier Verifier
}

// Step returns the trace step being handled.
func (s *StateRef) Step() *trace.Step {
	return &s.steps[s.index]
}

// NewStep starts the witness of the current trace step.
func (s *StateRef) NewStep() *ExecStep {
	step := s.Step()
	return &ExecStep{
		Op:        step.Op,
		Pc:        step.Pc,
		CallID:    s.Call.CallID,
		RWCounter: s.Block.rwc.Peek(),
		CopyEvent: -1,
	}
}

// StackPop pops the top of the call's stack and logs the read.
func (s *StateRef) StackPop(step *ExecStep) (uint256.Int, error) {
	v, addr, err := s.Call.Stack.Pop()
	if err != nil {
		return v, err
	}
	s.emit(step, rw.Stack, rw.Read, addr, &v)
	return v, nil
}

// StackPush pushes v onto the call's stack and logs the write.
func (s *StateRef) StackPush(step *ExecStep, v *uint256.Int) error {
	addr, err := s.Call.Stack.Push(v)
	if err != nil {
		return err
	}
	s.emit(step, rw.Stack, rw.Write, addr, v)
	return nil
}

// MemoryReadWord logs a read of the memory word at the aligned address
// addr and returns its value.
func (s *StateRef) MemoryReadWord(step *ExecStep, addr uint64) uint256.Int {
	v := s.Call.Memory.ReadWord(addr)
	s.emit(step, rw.Memory, rw.Read, addr, &v)
	return v
}

// PushCopy appends ev to the block and links it to step.
func (s *StateRef) PushCopy(step *ExecStep, ev *copyevent.Event) {
	step.CopyEvent = len(s.Block.CopyEvents)
	s.Block.CopyEvents = append(s.Block.CopyEvents, ev)
}

func (s *StateRef) emit(step *ExecStep, kind rw.Kind, dir rw.Direction, addr uint64, v *uint256.Int) {
	ref := s.Block.Container.Emit(kind, dir, s.Call.CallID, addr, v)
	step.BusMappingInstance = append(step.BusMappingInstance, ref)
}

func (s *StateRef) verifyOperands(ops ...*uint256.Int) error {
	if s.verifier == nil {
		return nil
	}
	if err := s.verifier.Operands(s.steps, s.index, ops...); err != nil {
		verifyFailureCounter.Inc(1)
		return err
	}
	return nil
}

func (s *StateRef) verifyResult(result *uint256.Int) error {
	if s.verifier == nil {
		return nil
	}
	if err := s.verifier.Result(s.steps, s.index, result); err != nil {
		verifyFailureCounter.Inc(1)
		return err
	}
	return nil
}
