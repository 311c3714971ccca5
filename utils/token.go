package utils

import "github.com/google/uuid"

// CreateToken returns an opaque token for refresh-token storage. Two UUIDs are
// concatenated so the value is not guessable from a single generator state.
func CreateToken() string {
	return uuid.NewString() + uuid.NewString()
}
