package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEveryN(t *testing.T) {
	f := &EveryN{N: 3}
	var passed []int
	for i := 1; i <= 9; i++ {
		if f.check() {
			passed = append(passed, i)
		}
	}
	assert.Equal(t, []int{3, 6, 9}, passed)
}

func TestEveryNZero(t *testing.T) {
	var nilFilter *EveryN
	assert.True(t, nilFilter.check())
	assert.True(t, (&EveryN{}).check())
}

func TestIfCondition(t *testing.T) {
	assert.True(t, (&ifCondition{true}).check())
	assert.False(t, (&ifCondition{false}).check())
	var nilCond *ifCondition
	assert.True(t, nilCond.check())
}
