// Package witness replays execution traces and produces the records and copy
// events a circuit needs to check them.
package witness

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/pkg/errors"

	"github.com/bnb-chain/zkwitness/core/copyevent"
	"github.com/bnb-chain/zkwitness/core/evmstate"
	"github.com/bnb-chain/zkwitness/core/rw"
	"github.com/bnb-chain/zkwitness/log"
	"github.com/bnb-chain/zkwitness/trace"
)

var (
	// ErrBlockFailed is returned when handling continues on a block that has
	// already hit a fatal error.
	ErrBlockFailed = errors.New("block witness generation failed")

	errMissingMemory = errors.New("trace step has no memory snapshot")
)

// CallContext is the state of the call frame executing the current step.
type CallContext struct {
	CallID uint64
	Memory *evmstate.Memory
	Stack  *evmstate.Stack
}

// ExecStep is the witness of a single trace step.
type ExecStep struct {
	Op        vm.OpCode
	Pc        uint64
	CallID    uint64
	RWCounter uint64 // sequence number of the first record of the step

	// BusMappingInstance references the records emitted by this step, in
	// emission order.
	BusMappingInstance []rw.Ref

	// CopyEvent is the index of the step's copy event, -1 if there is none.
	CopyEvent int
}

// Block owns everything produced while replaying the traces of one block.
// It must only be used from one goroutine.
type Block struct {
	cfg      Config
	rwc      *rw.Counter
	verifier Verifier
	hasher   Hasher

	Container  *rw.Container
	CopyEvents []*copyevent.Event
	Steps      []*ExecStep
	Sha3Inputs [][]byte
	Preimages  map[common.Hash][]byte

	nextCallID uint64
	err        error
}

// NewBlock returns an empty block context.
func NewBlock(cfg Config) *Block {
	if cfg.MaxMemorySize == 0 {
		cfg.MaxMemorySize = DefaultConfig.MaxMemorySize
	}
	rwc := rw.NewCounter()
	b := &Block{
		cfg:        cfg,
		rwc:        rwc,
		Container:  rw.NewContainer(rwc),
		nextCallID: 1,
	}
	if cfg.EnablePreimageRecording {
		b.Preimages = make(map[common.Hash][]byte)
	}
	return b
}

// SetVerifier installs the comparator consulted in verification mode. When
// none is set, HandleSteps checks against the replayed trace itself.
func (b *Block) SetVerifier(v Verifier) {
	b.verifier = v
}

// RWCounter returns the block's record sequence counter.
func (b *Block) RWCounter() *rw.Counter {
	return b.rwc
}

// Err returns the fatal error that aborted the block, if any. Records and
// events of a failed block must be discarded.
func (b *Block) Err() error {
	return b.err
}

// HandleSteps replays one transaction trace. Call frames get a new
// identifier every time the trace enters a deeper frame. Steps whose opcode
// has no witness handler, or which faulted, are skipped.
func (b *Block) HandleSteps(steps []trace.Step) error {
	if b.err != nil {
		return errors.Wrap(ErrBlockFailed, b.err.Error())
	}
	var verifier Verifier
	if b.cfg.Verify {
		verifier = b.verifier
		if verifier == nil {
			verifier = NewTraceOracle()
		}
	}
	var (
		frames   []uint64
		progress = &log.EveryN{N: b.cfg.LogEvery}
	)
	for i := range steps {
		step := &steps[i]
		depth := step.Depth
		if depth < 1 {
			depth = 1
		}
		for len(frames) < depth {
			frames = append(frames, b.nextCallID)
			b.nextCallID++
		}
		frames = frames[:depth]

		log.DebugBy(progress, "Replaying trace", "step", i, "total", len(steps), "rwc", b.rwc.Peek())

		handler, ok := opcodeTable[step.Op]
		if !ok {
			continue
		}
		if step.Err != "" {
			log.Debug("Skipping faulted step", "pc", step.Pc, "op", step.Op, "err", step.Err)
			continue
		}
		if trace.MemoryOps[step.Op] && step.Memory == nil {
			return b.fail(errors.Wrapf(errMissingMemory, "step %d (%v)", i, step.Op))
		}
		state := &StateRef{
			Block: b,
			Call: &CallContext{
				CallID: frames[depth-1],
				Memory: evmstate.NewMemoryFrom(step.Memory, b.cfg.MaxMemorySize),
				Stack:  evmstate.NewStackFrom(step.Stack),
			},
			steps:    steps,
			index:    i,
			verifier: verifier,
		}
		execSteps, err := handler.GenAssociatedOps(state)
		if err != nil {
			return b.fail(errors.Wrapf(err, "step %d (pc %d, %v)", i, step.Pc, step.Op))
		}
		b.Steps = append(b.Steps, execSteps...)
	}
	return nil
}

func (b *Block) fail(err error) error {
	b.err = err
	blockFailureCounter.Inc(1)
	log.Warn("Witness generation failed", "err", err)
	return err
}

func (b *Block) recordSha3Input(input []byte, digest common.Hash) {
	b.Sha3Inputs = append(b.Sha3Inputs, input)
	if b.Preimages != nil {
		b.Preimages[digest] = input
	}
}
