package store

import "github.com/google/uuid"

// NewID returns a short prefixed identifier, e.g. "msg_1a2b3c4d".
func NewID(prefix string) string {
	return prefix + "_" + uuid.New().String()[:8]
}
