package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// otpSpace is the number of possible codes: 000000 through 999999.
var otpSpace = big.NewInt(1000000)

// NewOtpCode returns a 6-digit one-time code as a zero-padded string.
// The code is drawn uniformly from crypto/rand; it stays a string end
// to end so leading zeros survive storage and comparison.
func NewOtpCode() (string, error) {
	n, err := rand.Int(rand.Reader, otpSpace)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
