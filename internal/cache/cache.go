package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching knowledge-base responses
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key from a request URL
func Key(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "wikichat:v1:" + hex.EncodeToString(hash[:])
}
