package utils

import (
	"crypto/rand"
	"fmt"
)

// GenerateOTP generates a numeric OTP of n digits (cryptographically random).
func GenerateOTP(n int) string {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("%0*d", n, 0)
	}
	otp := make([]byte, n)
	for i := 0; i < n; i++ {
		otp[i] = '0' + (bytes[i] % 10)
	}
	return string(otp)
}
