package evmstate

import (
	"testing"

	"github.com/ethereum/go-ethereum/params"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStackAddressing(t *testing.T) {
	// offset on top, size below it
	st := NewStackFrom([]uint256.Int{*uint256.NewInt(0x32), *uint256.NewInt(0x10)})
	assert.Equal(t, uint64(1022), st.Pointer())

	offset, addr, err := st.Pop()
	require.NoError(t, err)
	assert.Equal(t, uint64(0x10), offset.Uint64())
	assert.Equal(t, uint64(1022), addr)

	size, addr, err := st.Pop()
	require.NoError(t, err)
	assert.Equal(t, uint64(0x32), size.Uint64())
	assert.Equal(t, uint64(1023), addr)

	addr, err = st.Push(uint256.NewInt(7))
	require.NoError(t, err)
	assert.Equal(t, uint64(1023), addr)
	top, err := st.Peek(0)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), top.Uint64())
}

func TestStackUnderflow(t *testing.T) {
	st := NewStack()
	_, _, err := st.Pop()
	assert.True(t, errors.Is(err, ErrStackUnderflow))
	_, err = st.Peek(0)
	assert.True(t, errors.Is(err, ErrStackUnderflow))
}

func TestStackOverflow(t *testing.T) {
	st := NewStack()
	for i := uint64(0); i < params.StackLimit; i++ {
		_, err := st.Push(uint256.NewInt(i))
		require.NoError(t, err)
	}
	assert.Equal(t, uint64(0), st.Pointer())
	_, err := st.Push(uint256.NewInt(0))
	assert.True(t, errors.Is(err, ErrStackOverflow))
}

func TestNewStackFromCopies(t *testing.T) {
	data := []uint256.Int{*uint256.NewInt(1)}
	st := NewStackFrom(data)
	_, err := st.Push(uint256.NewInt(2))
	require.NoError(t, err)
	data[0].SetUint64(9)
	assert.Equal(t, uint64(1), st.Data()[0].Uint64())
}
