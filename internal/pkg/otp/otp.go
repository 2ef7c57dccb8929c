package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Generate returns a decimal code of exactly length digits, leading zeros
// included, drawn uniformly from crypto/rand. OTP codes are the sole
// authentication factor, so a predictable source is never acceptable here.
// length must be positive; that is a caller contract, not a runtime check.
func Generate(length int) (string, error) {
	max := big.NewInt(10)
	max.Exp(max, big.NewInt(int64(length)), nil)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%0*d", length, n), nil
}
