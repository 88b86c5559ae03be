package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnb-chain/zkwitness/core/witness"
	"github.com/bnb-chain/zkwitness/internal/witnesstest"
	"github.com/bnb-chain/zkwitness/trace"
)

// structLogs renders steps the way debug_traceTransaction does.
func structLogs(steps []trace.Step) []trace.StructLogRes {
	logs := make([]trace.StructLogRes, len(steps))
	for i, s := range steps {
		stack := make([]string, len(s.Stack))
		for j := range s.Stack {
			stack[j] = s.Stack[j].Hex()
		}
		logs[i] = trace.StructLogRes{Pc: s.Pc, Op: s.Op.String(), Depth: s.Depth, Error: s.Err, Stack: &stack}
		if s.Memory != nil {
			mem := make([]string, 0, len(s.Memory)/32)
			for j := 0; j+32 <= len(s.Memory); j += 32 {
				mem = append(mem, hex.EncodeToString(s.Memory[j:j+32]))
			}
			logs[i].Memory = &mem
		}
	}
	return logs
}

func writeTrace(t *testing.T, dir, name string, v interface{}) string {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	file := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(file, raw, 0644))
	return file
}

func TestReplayFiles(t *testing.T) {
	dir := t.TempDir()
	code := witnesstest.Code{}.
		MStore(0, uint256.NewInt(0x1234)).
		Keccak(0, 0x20).
		Keccak(0x10, 0x30).
		Op(vm.STOP)
	steps, err := witnesstest.Run(code)
	require.NoError(t, err)
	tx := trace.ExecutionResult{StructLogs: structLogs(steps)}

	type txResult struct {
		Result trace.ExecutionResult `json:"result"`
	}
	files := []string{
		writeTrace(t, dir, "tx.json", tx),
		writeTrace(t, dir, "block.json", []txResult{{tx}, {tx}}),
		writeTrace(t, dir, "broken.json", map[string]interface{}{
			"structLogs": []map[string]interface{}{{"op": "NOPE", "depth": 1}},
		}),
	}
	out := filepath.Join(dir, "out")
	require.NoError(t, os.MkdirAll(out, 0755))

	cfg := defaultConfig()
	cfg.Workers = 2
	cfg.OutputDir = out
	cfg.Witness = witness.DefaultConfig
	cfg.Witness.Verify = true
	cfg.Witness.EnablePreimageRecording = true
	results, errs := replayFiles(cfg, files)
	require.Len(t, results, 3)
	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	require.Error(t, errs[2])
	assert.Nil(t, results[2])

	single := results[0]
	assert.Equal(t, 1, single.Txs)
	assert.Len(t, single.Witness.Steps, 2)
	assert.Len(t, single.Witness.CopyEvents, 2)
	assert.Equal(t, 1, single.Calls.Cardinality())
	assert.Equal(t, 2, single.Digests.Cardinality())
	// [0x10, 0x40) spans two words of which 0x10 bytes are padding
	assert.Equal(t, 0x20+0x40, single.CopySize)
	assert.Equal(t, 0x10, single.Masked)

	block := results[1]
	assert.Equal(t, 2, block.Txs)
	assert.Len(t, block.Witness.Steps, 4)
	assert.Equal(t, 2, block.Calls.Cardinality(), "every transaction opens a new call")
	assert.Equal(t, 2, block.Digests.Cardinality())
	records := block.Witness.Records
	for i := 1; i < len(records); i++ {
		assert.Less(t, records[i-1].Counter, records[i].Counter)
	}

	raw, err := os.ReadFile(filepath.Join(out, "block.witness.json"))
	require.NoError(t, err)
	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Contains(t, decoded, "records")
	assert.Contains(t, decoded, "copyEvents")
	var preimages map[common.Hash]hexutil.Bytes
	require.NoError(t, json.Unmarshal(decoded["preimages"], &preimages))
	assert.Len(t, preimages, 2)
	for digest, input := range preimages {
		assert.Equal(t, digest, crypto.Keccak256Hash(input))
	}
	_, err = os.Stat(filepath.Join(out, "broken.witness.json"))
	assert.True(t, os.IsNotExist(err))

	var summary bytes.Buffer
	printSummary(&summary, files, results, errs)
	assert.Contains(t, summary.String(), "block.json")
	assert.Contains(t, summary.String(), "NOPE")
}

func TestReplayFilesDefaultWorkers(t *testing.T) {
	steps, err := witnesstest.Run(witnesstest.Code{}.Keccak(0, 0x40).Op(vm.STOP))
	require.NoError(t, err)
	file := writeTrace(t, t.TempDir(), "tx.json", trace.ExecutionResult{StructLogs: structLogs(steps)})

	cfg := defaultConfig()
	cfg.Workers = 0
	results, errs := replayFiles(cfg, []string{file})
	require.NoError(t, errs[0])
	assert.Len(t, results[0].Witness.Steps, 1)
	assert.Nil(t, results[0].Witness.Preimages)
}
