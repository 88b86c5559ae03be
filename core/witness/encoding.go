package witness

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/bnb-chain/zkwitness/core/copyevent"
	"github.com/bnb-chain/zkwitness/core/rw"
)

// Witness is the exported result of a successfully replayed block.
type Witness struct {
	Records    []rw.Record        `json:"records"`
	Steps      []*ExecStep        `json:"steps"`
	CopyEvents []*copyevent.Event `json:"copyEvents"`
	Sha3Inputs []hexutil.Bytes    `json:"sha3Inputs"`

	// Preimages maps every digest to its input when preimage recording is
	// enabled.
	Preimages map[common.Hash]hexutil.Bytes `json:"preimages,omitempty"`
}

// Witness returns the block's witness. It fails if the block was aborted.
func (b *Block) Witness() (*Witness, error) {
	if b.err != nil {
		return nil, b.err
	}
	w := &Witness{
		Records:    b.Container.Records(),
		Steps:      b.Steps,
		CopyEvents: b.CopyEvents,
		Sha3Inputs: make([]hexutil.Bytes, len(b.Sha3Inputs)),
	}
	for i, in := range b.Sha3Inputs {
		w.Sha3Inputs[i] = in
	}
	if b.Preimages != nil {
		w.Preimages = make(map[common.Hash]hexutil.Bytes, len(b.Preimages))
		for h, in := range b.Preimages {
			w.Preimages[h] = in
		}
	}
	return w, nil
}

type execStepMarshaling struct {
	Op                 string         `json:"op"`
	Pc                 hexutil.Uint64 `json:"pc"`
	CallID             hexutil.Uint64 `json:"callId"`
	RWCounter          hexutil.Uint64 `json:"rwCounter"`
	BusMappingInstance []string       `json:"busMappingInstance"`
	CopyEvent          *int           `json:"copyEvent,omitempty"`
}

// MarshalJSON encodes the step with record references rendered as
// "Kind:index".
func (s ExecStep) MarshalJSON() ([]byte, error) {
	enc := execStepMarshaling{
		Op:                 s.Op.String(),
		Pc:                 hexutil.Uint64(s.Pc),
		CallID:             hexutil.Uint64(s.CallID),
		RWCounter:          hexutil.Uint64(s.RWCounter),
		BusMappingInstance: make([]string, len(s.BusMappingInstance)),
	}
	for i, ref := range s.BusMappingInstance {
		enc.BusMappingInstance[i] = ref.Kind.String() + ":" + hexutil.EncodeUint64(uint64(ref.Index))
	}
	if s.CopyEvent >= 0 {
		idx := s.CopyEvent
		enc.CopyEvent = &idx
	}
	return json.Marshal(enc)
}
