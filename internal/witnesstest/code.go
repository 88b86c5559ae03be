package witnesstest

import (
	"math/rand"

	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/ethereum/go-ethereum/core/vm/runtime"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/bnb-chain/zkwitness/trace"
)

// MemoryKind is the length of the memory populated before KECCAK256 runs,
// relative to the end of the hashed window.
type MemoryKind int

const (
	Empty MemoryKind = iota
	LessThanSize
	EqualToSize
	MoreThanSize
)

func (k MemoryKind) String() string {
	switch k {
	case Empty:
		return "Empty"
	case LessThanSize:
		return "LessThanSize"
	case EqualToSize:
		return "EqualToSize"
	case MoreThanSize:
		return "MoreThanSize"
	}
	return "Unknown"
}

// Code is a small bytecode assembler.
type Code []byte

// Push appends a PUSH32 of v.
func (c Code) Push(v uint64) Code {
	return c.PushWord(uint256.NewInt(v))
}

// PushWord appends a PUSH32 of v.
func (c Code) PushWord(v *uint256.Int) Code {
	b := v.Bytes32()
	return append(append(c, byte(vm.PUSH32)), b[:]...)
}

// Op appends raw opcodes.
func (c Code) Op(ops ...vm.OpCode) Code {
	for _, op := range ops {
		c = append(c, byte(op))
	}
	return c
}

// MStore appends an MSTORE of v at offset.
func (c Code) MStore(offset uint64, v *uint256.Int) Code {
	return c.PushWord(v).Push(offset).Op(vm.MSTORE)
}

// Keccak appends KECCAK256 over [offset, offset+size).
func (c Code) Keccak(offset, size uint64) Code {
	return c.Push(size).Push(offset).Op(vm.KECCAK256)
}

// GenKeccakCode returns bytecode populating memory according to kind and
// then hashing [offset, offset+size), along with the memory content right
// before KECCAK256 executes.
func GenKeccakCode(rnd *rand.Rand, offset, size uint64, kind MemoryKind) (Code, []byte) {
	var dataLen uint64
	switch kind {
	case LessThanSize:
		dataLen = offset
		if size > 0 {
			dataLen += uint64(rnd.Int63n(int64(size)))
		}
	case EqualToSize:
		dataLen = offset + size
	case MoreThanSize:
		dataLen = offset + size
		if size > 0 {
			dataLen += uint64(rnd.Int63n(int64(size)))
		}
	}
	data := make([]byte, dataLen)
	rnd.Read(data)

	var (
		code   Code
		memory []byte
	)
	for i := uint64(0); i < dataLen; i += 32 {
		chunk := data[i:min(i+32, dataLen)]
		// Short tail chunks are right aligned in their word.
		word := make([]byte, 32)
		copy(word[32-len(chunk):], chunk)
		memory = append(memory, word...)
		code = code.MStore(i, new(uint256.Int).SetBytes(word))
	}
	code = code.Keccak(offset, size).Op(vm.STOP)
	return code, memory
}

// Run executes code on a fresh state and returns the captured trace.
func Run(code []byte) ([]trace.Step, error) {
	tracer := trace.NewTracer(nil)
	cfg := &runtime.Config{
		EVMConfig: vm.Config{Tracer: tracer},
	}
	if _, _, err := runtime.Execute(code, nil, cfg); err != nil {
		return nil, errors.Wrap(err, "executing code")
	}
	return tracer.Steps(), nil
}

// FindOp returns the index of the first step executing op, or -1.
func FindOp(steps []trace.Step, op vm.OpCode) int {
	for i := range steps {
		if steps[i].Op == op {
			return i
		}
	}
	return -1
}
