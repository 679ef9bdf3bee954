package valuehash

import (
	"golang.org/x/crypto/sha3"
)

const (
	sha256Size int = 32
	L32Size        = sha256Size
)

// NewSHA256 is the consensus hash of the governance payloads; every node must
// produce the same 32 bytes for the same input.
func NewSHA256(b []byte) L32 {
	return L32(sha3.Sum256(b))
}
