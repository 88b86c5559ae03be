package witness

import (
	"github.com/ethereum/go-ethereum/core/vm"
)

// Opcode generates the witness of one trace step.
type Opcode interface {
	GenAssociatedOps(state *StateRef) ([]*ExecStep, error)
}

// opcodeTable maps opcodes to their witness handlers. Opcodes without an
// entry are replayed without producing a witness.
var opcodeTable = map[vm.OpCode]Opcode{
	vm.KECCAK256: Keccak256{},
}

// Supported reports whether op has a witness handler.
func Supported(op vm.OpCode) bool {
	_, ok := opcodeTable[op]
	return ok
}
