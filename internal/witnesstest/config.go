// Copyright 2024 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

// Package witnesstest provides testing utilities for witness generation.
package witnesstest

import (
	"os"

	"github.com/bnb-chain/zkwitness/core/witness"
)

// =============================================================================
// Dual-mode testing helpers (plain + verification)
// =============================================================================
//
// These helpers allow tests to run with and without trace verification.
//
// Usage:
//   - By default, tests only run with the plain configuration
//   - Set TEST_WITH_VERIFY=true environment variable to also run with Verify
//
// Example:
//   func TestSomething(t *testing.T) {
//       for _, cfg := range witnesstest.Configs() {
//           t.Run(witnesstest.Name(cfg), func(t *testing.T) {
//               // test code using cfg
//           })
//       }
//   }

// Configs returns witness configs to test.
func Configs() []witness.Config {
	configs := []witness.Config{
		witness.DefaultConfig,
	}
	if VerifyEnabled() {
		cfg := witness.DefaultConfig
		cfg.Verify = true
		configs = append(configs, cfg)
	}
	return configs
}

// Name returns a human-readable name for a witness.Config.
// Used for test sub-test naming.
func Name(cfg witness.Config) string {
	if cfg.Verify {
		return "Verify"
	}
	return "Plain"
}

// VerifyEnabled returns true if verification testing is enabled via
// environment variable.
func VerifyEnabled() bool {
	return os.Getenv("TEST_WITH_VERIFY") == "true"
}
