// Copyright 2019 The go-ethereum Authors
// This file is part of go-ethereum.
//
// go-ethereum is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-ethereum is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-ethereum. If not, see <http://www.gnu.org/licenses/>.

// Package utils contains internal helper functions for witness commands.
package utils

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/bnb-chain/zkwitness/core/witness"
	"github.com/bnb-chain/zkwitness/log"
)

func newContext(t *testing.T, flags []cli.Flag, args ...string) *cli.Context {
	t.Helper()
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range flags {
		require.NoError(t, f.Apply(set))
	}
	require.NoError(t, set.Parse(args))
	return cli.NewContext(cli.NewApp(), set, nil)
}

func TestSetWitnessConfig(t *testing.T) {
	ctx := newContext(t, append(WitnessFlags, LogFlags...), "--verify", "--memory.max", "4096", "--log.every", "7")
	cfg := witness.DefaultConfig
	cfg.EnablePreimageRecording = true
	SetWitnessConfig(ctx, &cfg)

	assert.True(t, cfg.Verify)
	assert.True(t, cfg.EnablePreimageRecording, "unset flags keep the configured value")
	assert.Equal(t, uint64(4096), cfg.MaxMemorySize)
	assert.Equal(t, uint32(7), cfg.LogEvery)
}

func TestSetLogConfig(t *testing.T) {
	ctx := newContext(t, LogFlags, "--verbosity", "5", "--log.file", "/tmp/witgen.log", "--log.compress")
	cfg := log.DefaultConfig
	cfg.JSON = true
	SetLogConfig(ctx, &cfg)

	assert.Equal(t, 5, cfg.Verbosity)
	assert.Equal(t, "/tmp/witgen.log", cfg.File)
	assert.True(t, cfg.Compress)
	assert.True(t, cfg.JSON)
	assert.Equal(t, log.DefaultConfig.MaxSizeMB, cfg.MaxSizeMB)
}

func TestSplitArgs(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"empty", nil, nil},
		{"plain", []string{"a.json", "b.json"}, []string{"a.json", "b.json"}},
		{"comma", []string{"a.json,b.json", "c.json"}, []string{"a.json", "b.json", "c.json"}},
		{"blanks", []string{" a.json , ,"}, []string{"a.json"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, SplitArgs(tt.args))
		})
	}
}
