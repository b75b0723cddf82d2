package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"sync"
)

// hasherPool keeps reusable SHA-256 states. Every batch submission hashes
// its body twice — the adapter on send, the server on receipt — so the hot
// path avoids re-allocating the hasher.
var hasherPool = sync.Pool{
	New: func() any {
		return sha256.New()
	},
}

// Hash returns the SHA-256 digest of data using a pooled hasher.
func Hash(data []byte) []byte {
	h := hasherPool.Get().(hash.Hash)
	h.Reset()

	h.Write(data)
	sum := h.Sum(nil)

	h.Reset()
	hasherPool.Put(h)

	return sum
}

// HashHex returns the hex-encoded SHA-256 digest of data. This is the form
// carried in the X-Content-Hash header of batch sync requests.
func HashHex(data []byte) string {
	return hex.EncodeToString(Hash(data))
}
