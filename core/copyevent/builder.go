package copyevent

import (
	"github.com/pkg/errors"

	"github.com/bnb-chain/zkwitness/core/evmstate"
)

var errSourceLength = errors.New("copy source does not match aligned range")

// StepsBuilder turns raw source bytes into copy steps.
type StepsBuilder struct {
	rng    evmstate.WordRange
	source []byte
	isCode bool
}

// MemoryRange starts a builder for a word aligned memory range. Bytes of the
// range outside the range's window are marked as mask.
func MemoryRange(rng evmstate.WordRange) *StepsBuilder {
	return &StepsBuilder{rng: rng}
}

// Source sets the bytes covered by the aligned range.
func (b *StepsBuilder) Source(src []byte) *StepsBuilder {
	b.source = src
	return b
}

// Code marks the copied bytes as bytecode.
func (b *StepsBuilder) Code(isCode bool) *StepsBuilder {
	b.isCode = isCode
	return b
}

// Build returns one step per source byte.
func (b *StepsBuilder) Build() ([]Step, error) {
	if uint64(len(b.source)) != b.rng.Size() {
		return nil, errors.Wrapf(errSourceLength, "have %d bytes, range %v", len(b.source), b.rng)
	}
	var (
		window = b.rng.Window()
		slot   = b.rng.StartSlot()
		steps  = make([]Step, len(b.source))
	)
	for i, v := range b.source {
		steps[i] = Step{
			Value:  v,
			IsCode: b.isCode,
			IsMask: !window.Contains(slot + uint64(i)),
		}
	}
	return steps, nil
}
