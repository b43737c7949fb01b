package chat

import "fmt"

// DeriveKey builds the conversation key for a pair of participants: the two
// ids sorted lexicographically and joined with ":". The key is symmetric, so
// DeriveKey(a, b) == DeriveKey(b, a), and is stamped on a message exactly once
// at append time.
func DeriveKey(a, b string) (string, error) {
	if a == "" || b == "" {
		return "", fmt.Errorf("%w: both participant ids are required", ErrValidation)
	}
	if a < b {
		return a + ":" + b, nil
	}
	return b + ":" + a, nil
}
