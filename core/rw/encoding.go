package rw

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
)

type recordMarshaling struct {
	Counter hexutil.Uint64 `json:"rwc"`
	Kind    string         `json:"kind"`
	RW      string         `json:"rw"`
	CallID  hexutil.Uint64 `json:"callId"`
	Address hexutil.Uint64 `json:"address"`
	Value   *hexutil.U256  `json:"value"`
}

// MarshalJSON encodes the record with hex quantities.
func (r Record) MarshalJSON() ([]byte, error) {
	v := r.Value
	return json.Marshal(recordMarshaling{
		Counter: hexutil.Uint64(r.Counter),
		Kind:    r.Kind.String(),
		RW:      r.Direction.String(),
		CallID:  hexutil.Uint64(r.CallID),
		Address: hexutil.Uint64(r.Address),
		Value:   (*hexutil.U256)(&v),
	})
}

// UnmarshalJSON decodes a record produced by MarshalJSON.
func (r *Record) UnmarshalJSON(input []byte) error {
	var dec recordMarshaling
	if err := json.Unmarshal(input, &dec); err != nil {
		return err
	}
	switch dec.Kind {
	case Memory.String():
		r.Kind = Memory
	default:
		r.Kind = Stack
	}
	r.Direction = dec.RW == Write.String()
	r.Counter = uint64(dec.Counter)
	r.CallID = uint64(dec.CallID)
	r.Address = uint64(dec.Address)
	if dec.Value != nil {
		r.Value = uint256.Int(*dec.Value)
	}
	return nil
}
