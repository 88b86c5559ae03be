// Package evmstate holds the per call frame state an opcode handler reads and
// writes during witness generation: a growable byte memory, the operand stack
// and the word alignment helpers used to log memory accesses.
package evmstate
