package trace

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// ExecutionResult is the output of debug_traceTransaction with the default
// struct logger.
type ExecutionResult struct {
	Gas         uint64         `json:"gas"`
	Failed      bool           `json:"failed"`
	ReturnValue string         `json:"returnValue"`
	StructLogs  []StructLogRes `json:"structLogs"`
}

// StructLogRes is a single formatted struct log entry.
type StructLogRes struct {
	Pc      uint64    `json:"pc"`
	Op      string    `json:"op"`
	Gas     uint64    `json:"gas"`
	GasCost uint64    `json:"gasCost"`
	Depth   int       `json:"depth"`
	Error   string    `json:"error,omitempty"`
	Stack   *[]string `json:"stack,omitempty"`
	Memory  *[]string `json:"memory,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// rpcEnvelope is a JSON-RPC response carrying a trace result.
type rpcEnvelope struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

// txTraceResult is one entry of a debug_traceBlockByNumber result.
type txTraceResult struct {
	TxHash common.Hash      `json:"txHash"`
	Result *ExecutionResult `json:"result"`
	Error  string           `json:"error,omitempty"`
}

// Decode reads a debug_traceTransaction result from r.
func Decode(r io.Reader) ([]Step, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading trace")
	}
	return DecodeBytes(raw)
}

// DecodeBytes parses a debug_traceTransaction result, optionally wrapped in
// a JSON-RPC response.
func DecodeBytes(raw []byte) ([]Step, error) {
	body, err := unwrap(raw)
	if err != nil {
		return nil, err
	}
	var res ExecutionResult
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, errors.Wrap(err, "decoding trace")
	}
	return FromStructLogs(res.StructLogs)
}

// DecodeBlock parses the traces of every transaction of a block, as returned
// by debug_traceBlockByNumber. A single transaction trace is accepted as a
// block of one transaction.
func DecodeBlock(raw []byte) ([][]Step, error) {
	body, err := unwrap(raw)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 || body[0] != '[' {
		steps, err := DecodeBytes(body)
		if err != nil {
			return nil, err
		}
		return [][]Step{steps}, nil
	}
	var txs []txTraceResult
	if err := json.Unmarshal(body, &txs); err != nil {
		return nil, errors.Wrap(err, "decoding block trace")
	}
	traces := make([][]Step, len(txs))
	for i, tx := range txs {
		if tx.Error != "" {
			return nil, errors.Errorf("tx %d (%s) trace failed: %s", i, tx.TxHash.Hex(), tx.Error)
		}
		if tx.Result == nil {
			continue
		}
		if traces[i], err = FromStructLogs(tx.Result.StructLogs); err != nil {
			return nil, errors.Wrapf(err, "tx %d (%s)", i, tx.TxHash.Hex())
		}
	}
	return traces, nil
}

// unwrap strips the JSON-RPC envelope around a trace result, if present.
func unwrap(raw []byte) ([]byte, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return raw, nil
	}
	var env rpcEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, errors.Wrap(err, "decoding trace")
	}
	if env.Error != nil {
		return nil, errors.Errorf("trace response error %d: %s", env.Error.Code, env.Error.Message)
	}
	if len(env.Result) > 0 {
		return bytes.TrimSpace(env.Result), nil
	}
	return raw, nil
}

// FromStructLogs converts formatted struct logs into steps.
func FromStructLogs(logs []StructLogRes) ([]Step, error) {
	steps := make([]Step, len(logs))
	for i, l := range logs {
		op, err := parseOp(l.Op, l.Error != "")
		if err != nil {
			return nil, errors.Wrapf(err, "step %d", i)
		}
		steps[i] = Step{
			Pc:    l.Pc,
			Op:    op,
			Depth: l.Depth,
			Err:   l.Error,
		}
		if l.Stack != nil {
			stack, err := decodeStack(*l.Stack)
			if err != nil {
				return nil, errors.Wrapf(err, "step %d", i)
			}
			steps[i].Stack = stack
		}
		if l.Memory != nil {
			mem, err := decodeMemory(*l.Memory)
			if err != nil {
				return nil, errors.Wrapf(err, "step %d", i)
			}
			steps[i].Memory = mem
		}
	}
	return steps, nil
}

// parseOp resolves a struct log opcode name. Undefined opcodes are printed as
// "opcode 0x.. not defined"; any other unknown name is only accepted on a
// faulted step, where it becomes INVALID.
func parseOp(name string, faulted bool) (vm.OpCode, error) {
	if name == "SHA3" {
		// pre-London traces
		return vm.KECCAK256, nil
	}
	if op := vm.StringToOp(name); op.String() == name {
		return op, nil
	}
	var code uint8
	if _, err := fmt.Sscanf(name, "opcode %v not defined", &code); err == nil {
		return vm.OpCode(code), nil
	}
	if faulted {
		return vm.INVALID, nil
	}
	return 0, errors.Errorf("unknown opcode %q", name)
}

func decodeStack(items []string) ([]uint256.Int, error) {
	stack := make([]uint256.Int, len(items))
	for i, item := range items {
		b, err := decodeHex(item)
		if err != nil {
			return nil, errors.Wrapf(err, "stack item %d", i)
		}
		if len(b) > 32 {
			return nil, errors.Errorf("stack item %d is %d bytes long", i, len(b))
		}
		stack[i].SetBytes(b)
	}
	return stack, nil
}

func decodeMemory(words []string) ([]byte, error) {
	mem := make([]byte, 0, len(words)*32)
	for i, word := range words {
		b, err := decodeHex(word)
		if err != nil {
			return nil, errors.Wrapf(err, "memory word %d", i)
		}
		if len(b) != 32 {
			return nil, errors.Errorf("memory word %d is %d bytes long", i, len(b))
		}
		mem = append(mem, b...)
	}
	return mem, nil
}

func decodeHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s)%2 == 1 {
		s = "0" + s
	}
	for _, c := range s {
		if !isHexChar(c) {
			return nil, errors.Errorf("invalid hex %q", s)
		}
	}
	return common.Hex2Bytes(s), nil
}

func isHexChar(c rune) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
