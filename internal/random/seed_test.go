package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSeed(t *testing.T) {
	a, err := NewSeed()
	require.NoError(t, err)
	b, err := NewSeed()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestResolve_KeepsExplicitSeed(t *testing.T) {
	assert.Equal(t, int64(42), Resolve(42))
	assert.Equal(t, int64(-7), Resolve(-7))
}

func TestResolve_ZeroPicksSeed(t *testing.T) {
	assert.NotZero(t, Resolve(0))
}

func TestNewRand_Reproducible(t *testing.T) {
	r1, s1 := NewRand(99)
	r2, s2 := NewRand(99)
	require.Equal(t, s1, s2)

	for i := 0; i < 20; i++ {
		assert.Equal(t, r1.Intn(1000), r2.Intn(1000))
	}
}
