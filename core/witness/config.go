package witness

import (
	"github.com/bnb-chain/zkwitness/core/evmstate"
)

// Config are the configuration options for witness generation.
type Config struct {
	// Verify cross checks operands and results of every handled step against
	// the trace. Meant for validation runs only.
	Verify bool

	// EnablePreimageRecording keeps every hashed input keyed by its digest.
	EnablePreimageRecording bool

	// MaxMemorySize bounds memory growth of a single call frame.
	MaxMemorySize uint64

	// LogEvery controls how often replay progress is logged, in steps.
	LogEvery uint32
}

// DefaultConfig contains the default settings for witness generation.
var DefaultConfig = Config{
	MaxMemorySize: evmstate.MaxMemorySize,
	LogEvery:      10000,
}
