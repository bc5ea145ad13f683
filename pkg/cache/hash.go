package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// renderKeyPrefix namespaces render entries in shared backends.
const renderKeyPrefix = "chromepdf:render:"

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// RenderKey derives the cache key for a render request from the endpoint
// URL (without credentials) and the encoded request body.
func RenderKey(endpoint string, body []byte) string {
	h := sha256.New()
	h.Write([]byte(endpoint))
	h.Write([]byte{0})
	h.Write(body)
	return renderKeyPrefix + hex.EncodeToString(h.Sum(nil))
}
