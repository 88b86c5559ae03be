package gopool

import (
	"runtime"
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForEach(t *testing.T) {
	p, err := New(2)
	require.NoError(t, err)
	defer p.Release()

	var (
		sum     int64
		running int32
		peak    int32
	)
	errs := p.ForEach(16, func(i int) error {
		n := atomic.AddInt32(&running, 1)
		for {
			old := atomic.LoadInt32(&peak)
			if n <= old || atomic.CompareAndSwapInt32(&peak, old, n) {
				break
			}
		}
		defer atomic.AddInt32(&running, -1)
		atomic.AddInt64(&sum, int64(i))
		if i == 3 {
			return errors.New("job 3")
		}
		return nil
	})
	require.Len(t, errs, 16)
	assert.Equal(t, int64(120), atomic.LoadInt64(&sum))
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
	for i, err := range errs {
		if i == 3 {
			assert.EqualError(t, err, "job 3")
		} else {
			assert.NoError(t, err)
		}
	}
}

func TestThreads(t *testing.T) {
	assert.Equal(t, 1, Threads(0))
	assert.Equal(t, 1, Threads(1))
	assert.Equal(t, runtime.NumCPU(), Threads(runtime.NumCPU()+1))
}
