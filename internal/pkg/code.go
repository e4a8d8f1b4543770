package pkg

import (
	cryptoRand "crypto/rand"
	"encoding/hex"
)

// ResetCodeLen is the number of digits in a password reset code.
const ResetCodeLen = 6

// RandDigits returns n decimal digits drawn from crypto/rand. Bytes of 250
// and above are rejected so every digit is equally likely.
func RandDigits(n int) (string, error) {
	out := make([]byte, 0, n)
	buf := make([]byte, n)
	for len(out) < n {
		if _, err := cryptoRand.Read(buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if b >= 250 || len(out) == n {
				continue
			}
			out = append(out, '0'+b%10)
		}
	}
	return string(out), nil
}

// NewResetCode returns a fresh ResetCodeLen-digit code.
func NewResetCode() (string, error) { return RandDigits(ResetCodeLen) }

// NewTokenID returns 16 hex characters for a JWT jti.
func NewTokenID() (string, error) {
	b := make([]byte, 8)
	if _, err := cryptoRand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
