package utils

import (
	"math/rand"
	"time"
)

const tempPasswordLength = 10
const letterBytes = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijkmnpqrstuvwxyz23456789"

// GenerateTempPassword builds an initial password for admin-created accounts.
// Users are expected to change it after first login.
func GenerateTempPassword() string {
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))

	b := make([]byte, tempPasswordLength)
	for i := range b {
		b[i] = letterBytes[seededRand.Intn(len(letterBytes))]
	}
	return string(b)
}
