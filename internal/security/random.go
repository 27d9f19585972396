package security

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// otpDigits is the length of generated verification codes.
const otpDigits = 6

// GenerateOTPCode returns a uniformly random 6-digit numeric code.
func GenerateOTPCode() (string, error) {
	max := new(big.Int).Exp(big.NewInt(10), big.NewInt(otpDigits), nil)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("security: generate otp: %w", err)
	}
	return fmt.Sprintf("%0*d", otpDigits, n), nil
}
