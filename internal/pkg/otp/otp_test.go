package otp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_LengthAndDigits(t *testing.T) {
	for _, length := range []int{4, 6, 8} {
		code, err := Generate(length)
		require.NoError(t, err)
		require.Len(t, code, length)
		for _, c := range code {
			assert.GreaterOrEqual(t, c, '0')
			assert.LessOrEqual(t, c, '9')
		}
	}
}

func TestGenerate_LeadingZerosPreserved(t *testing.T) {
	// With a 1-digit code, ~1 in 10 draws is "0"; over 200 draws the
	// chance of never seeing a single-character result without padding
	// failing is negligible. What we really assert is that every draw
	// keeps its fixed width.
	for i := 0; i < 200; i++ {
		code, err := Generate(1)
		require.NoError(t, err)
		require.Len(t, code, 1)
	}
}

func TestGenerate_NotDeterministic(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		code, err := Generate(6)
		require.NoError(t, err)
		seen[code] = true
	}
	// 20 draws from a 10^6 space colliding down to a single value would
	// mean the generator is broken.
	assert.Greater(t, len(seen), 1)
}
