package copyevent

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

type eventMarshaling struct {
	SrcType        string          `json:"srcType"`
	SrcID          hexutil.Uint64  `json:"srcId"`
	SrcAddr        hexutil.Uint64  `json:"srcAddr"`
	SrcAddrEnd     hexutil.Uint64  `json:"srcAddrEnd"`
	DstType        string          `json:"dstType"`
	DstID          hexutil.Uint64  `json:"dstId"`
	DstAddr        hexutil.Uint64  `json:"dstAddr"`
	LogID          *hexutil.Uint64 `json:"logId,omitempty"`
	RWCounterStart hexutil.Uint64  `json:"rwCounterStart"`
	Bytes          hexutil.Bytes   `json:"bytes"`
	Mask           []bool          `json:"mask"`
	Code           []bool          `json:"code,omitempty"`
}

// MarshalJSON encodes the event with the payload split into the raw bytes and
// their mask flags.
func (e Event) MarshalJSON() ([]byte, error) {
	enc := eventMarshaling{
		SrcType:        e.SrcType.String(),
		SrcID:          hexutil.Uint64(e.SrcID),
		SrcAddr:        hexutil.Uint64(e.SrcAddr),
		SrcAddrEnd:     hexutil.Uint64(e.SrcAddrEnd),
		DstType:        e.DstType.String(),
		DstID:          hexutil.Uint64(e.DstID),
		DstAddr:        hexutil.Uint64(e.DstAddr),
		LogID:          (*hexutil.Uint64)(e.LogID),
		RWCounterStart: hexutil.Uint64(e.RWCounterStart),
		Bytes:          make(hexutil.Bytes, len(e.CopyBytes.Bytes)),
		Mask:           make([]bool, len(e.CopyBytes.Bytes)),
	}
	var code bool
	for i, s := range e.CopyBytes.Bytes {
		enc.Bytes[i] = s.Value
		enc.Mask[i] = s.IsMask
		code = code || s.IsCode
	}
	if code {
		enc.Code = make([]bool, len(e.CopyBytes.Bytes))
		for i, s := range e.CopyBytes.Bytes {
			enc.Code[i] = s.IsCode
		}
	}
	return json.Marshal(enc)
}
