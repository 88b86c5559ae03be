package witness

import "github.com/ethereum/go-ethereum/metrics"

var (
	keccakOpCounter      = metrics.NewRegisteredCounter("witness/keccak/ops", nil)
	memoryWordMeter      = metrics.NewRegisteredMeter("witness/memory/words", nil)
	copyBytesCounter     = metrics.NewRegisteredCounter("witness/copy/bytes", nil)
	maskBytesCounter     = metrics.NewRegisteredCounter("witness/copy/mask", nil)
	verifyFailureCounter = metrics.NewRegisteredCounter("witness/verify/failures", nil)
	blockFailureCounter  = metrics.NewRegisteredCounter("witness/block/failures", nil)
)
