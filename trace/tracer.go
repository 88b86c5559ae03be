// Copyright 2022 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package trace

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/holiman/uint256"

	"github.com/bnb-chain/zkwitness/log"
)

// MemoryOps are the opcodes whose steps carry a memory snapshot by default.
var MemoryOps = map[vm.OpCode]bool{
	vm.KECCAK256: true,
}

// TracerConfig tunes what the capture tracer copies per step.
type TracerConfig struct {
	FullMemory bool // snapshot memory on every step, not only MemoryOps
	Limit      int  // maximum number of steps to keep, 0 means unlimited
}

// Tracer is a vm.EVMLogger collecting the steps needed for witness
// generation.
type Tracer struct {
	cfg   TracerConfig
	steps []Step

	Interrupt bool
	Reason    error
}

var _ vm.EVMLogger = (*Tracer)(nil)

// NewTracer returns a capture tracer. cfg may be nil.
func NewTracer(cfg *TracerConfig) *Tracer {
	t := &Tracer{}
	if cfg != nil {
		t.cfg = *cfg
	}
	return t
}

// Steps returns the captured steps.
func (t *Tracer) Steps() []Step {
	return t.steps
}

// CaptureTxStart implements the EVMLogger interface.
func (t *Tracer) CaptureTxStart(gasLimit uint64) {}

// CaptureTxEnd implements the EVMLogger interface.
func (t *Tracer) CaptureTxEnd(restGas uint64) {}

// CaptureStart implements the EVMLogger interface to initialize the tracing operation.
func (t *Tracer) CaptureStart(env *vm.EVM, from common.Address, to common.Address, create bool, input []byte, gas uint64, value *big.Int) {
}

// CaptureEnd is called after the call finishes to finalize the tracing.
func (t *Tracer) CaptureEnd(output []byte, gasUsed uint64, err error) {
	if err != nil {
		t.Reason = err
	}
}

// CaptureEnter implements the EVMLogger interface. Call frames are
// recovered from step depths.
func (t *Tracer) CaptureEnter(typ vm.OpCode, from common.Address, to common.Address, input []byte, gas uint64, value *big.Int) {
}

// CaptureExit implements the EVMLogger interface.
func (t *Tracer) CaptureExit(output []byte, gasUsed uint64, err error) {}

// CaptureState implements the EVMLogger interface to trace a single step of VM execution.
func (t *Tracer) CaptureState(pc uint64, op vm.OpCode, gas, cost uint64, scope *vm.ScopeContext, rData []byte, depth int, err error) {
	if t.Interrupt {
		return
	}
	if t.cfg.Limit != 0 && len(t.steps) >= t.cfg.Limit {
		t.Interrupt = true
		log.Warn("Witness capture step limit reached", "limit", t.cfg.Limit, "pc", pc, "op", op)
		return
	}
	stackData := scope.Stack.Data()
	step := Step{
		Pc:    pc,
		Op:    op,
		Depth: depth,
		Stack: append(make([]uint256.Int, 0, len(stackData)), stackData...),
	}
	if t.cfg.FullMemory || MemoryOps[op] {
		step.Memory = common.CopyBytes(scope.Memory.Data())
		if step.Memory == nil {
			step.Memory = []byte{}
		}
	}
	if err != nil {
		step.Err = err.Error()
	}
	t.steps = append(t.steps, step)
}

// CaptureFault implements the EVMLogger interface to trace an execution fault.
func (t *Tracer) CaptureFault(pc uint64, op vm.OpCode, gas, cost uint64, scope *vm.ScopeContext, depth int, err error) {
	if n := len(t.steps); n > 0 && t.steps[n-1].Pc == pc && t.steps[n-1].Depth == depth {
		t.steps[n-1].Err = err.Error()
	}
}
