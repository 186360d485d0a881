package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHammingDistance(t *testing.T) {
	assert.Equal(t, 0, HammingDistance(0, 0))
	assert.Equal(t, 0, HammingDistance(0xdeadbeef, 0xdeadbeef))
	assert.Equal(t, 64, HammingDistance(0, ^uint64(0)))
	assert.Equal(t, 1, HammingDistance(0x8000000000000000, 0))
	assert.Equal(t, 4, HammingDistance(0x0f, 0x00))
	assert.Equal(t, HammingDistance(0x1234, 0xabcd), HammingDistance(0xabcd, 0x1234))
}

func TestNewULID(t *testing.T) {
	a, b := NewULID(), NewULID()
	assert.Len(t, a, 26)
	assert.NotEqual(t, a, b)
}
