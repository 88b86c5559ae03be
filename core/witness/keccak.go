package witness

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/bnb-chain/zkwitness/core/copyevent"
	"github.com/bnb-chain/zkwitness/core/evmstate"
	"github.com/bnb-chain/zkwitness/log"
)

// Hasher computes Keccak-256 digests, reusing its sponge between calls.
type Hasher struct {
	state crypto.KeccakState
	buf   common.Hash
}

// Sum returns the Keccak-256 digest of data.
func (h *Hasher) Sum(data []byte) common.Hash {
	if h.state == nil {
		h.state = crypto.NewKeccakState()
	} else {
		h.state.Reset()
	}
	h.state.Write(data)
	h.state.Read(h.buf[:])
	return h.buf
}

// Keccak256 generates the witness of the KECCAK256 opcode: two stack reads,
// one stack write, one memory read per word of the aligned input range and a
// single copy event from memory to the RLC accumulator.
type Keccak256 struct{}

// GenAssociatedOps implements Opcode.
func (Keccak256) GenAssociatedOps(state *StateRef) ([]*ExecStep, error) {
	step := state.NewStep()

	offset, err := state.StackPop(step)
	if err != nil {
		return nil, err
	}
	size, err := state.StackPop(step)
	if err != nil {
		return nil, err
	}
	if err := state.verifyOperands(&offset, &size); err != nil {
		return nil, err
	}

	window, err := memoryWindow(&offset, &size)
	if err != nil {
		return nil, err
	}
	mem := state.Call.Memory
	if !window.IsEmpty() {
		if err := mem.ExtendAtLeast(window.End()); err != nil {
			return nil, err
		}
	}
	input := mem.ReadWindow(window)

	digest := state.Block.hasher.Sum(input)
	output := new(uint256.Int).SetBytes32(digest[:])
	if err := state.verifyResult(output); err != nil {
		return nil, err
	}
	if err := state.StackPush(step, output); err != nil {
		return nil, err
	}

	// Memory reads start right after the stack accesses.
	rwCounterStart := state.Block.rwc.Peek()

	var steps []copyevent.Step
	if !window.IsEmpty() {
		rng := evmstate.Align(window)
		aligned := mem.ReadWordRange(rng)
		for _, slot := range rng.Slots() {
			state.MemoryReadWord(step, slot)
		}
		if steps, err = copyevent.MemoryRange(rng).Source(aligned).Build(); err != nil {
			return nil, err
		}
		memoryWordMeter.Mark(int64(rng.WordCount()))
	}

	state.Block.recordSha3Input(input, digest)
	callID := state.Call.CallID
	ev := &copyevent.Event{
		SrcType:        copyevent.Memory,
		SrcID:          callID,
		SrcAddr:        window.Start,
		SrcAddrEnd:     window.End(),
		DstType:        copyevent.RlcAcc,
		DstID:          callID,
		DstAddr:        0,
		RWCounterStart: rwCounterStart,
		CopyBytes:      copyevent.Bytes{Bytes: steps},
	}
	state.PushCopy(step, ev)

	keccakOpCounter.Inc(1)
	copyBytesCounter.Inc(int64(len(steps)))
	maskBytesCounter.Inc(int64(ev.CopyBytes.MaskCount()))
	log.Trace("Generated keccak witness", "call", callID, "window", window, "words", ev.WordCount(), "digest", digest)

	return []*ExecStep{step}, nil
}

// memoryWindow converts the popped operands into the window to hash. An
// empty window never touches memory, so its offset is truncated to 64 bits.
// A non-empty window that does not fit 64 bit addresses can never be backed
// by memory.
func memoryWindow(offset, size *uint256.Int) (evmstate.ByteWindow, error) {
	if size.IsZero() {
		return evmstate.NewByteWindow(offset.Uint64(), 0), nil
	}
	if !offset.IsUint64() || !size.IsUint64() {
		return evmstate.ByteWindow{}, errors.Wrapf(evmstate.ErrMemoryGrowth, "window offset %s size %s", offset.Hex(), size.Hex())
	}
	return evmstate.NewByteWindow(offset.Uint64(), size.Uint64()), nil
}
