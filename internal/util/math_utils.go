package util

import "math/bits"

// HammingDistance counts the bit positions at which a and b differ.
func HammingDistance(a, b uint64) int {
	return bits.OnesCount64(a ^ b)
}
