package refcache

import (
	"crypto/sha256"
	"encoding/binary"
)

const base36Chars = "0123456789abcdefghijklmnopqrstuvwxyz"

// TokenLength is the length of a base token without a collision suffix.
const TokenLength = 4

// Hash converts a native reference to a deterministic 4-character base36
// token. The first 4 bytes of the SHA-256 digest are read as a big-endian
// integer and re-based into base36, one remainder per character.
//
// The token space is 36^4 (~1.68M), so collisions between unrelated
// references are expected; the Cache disambiguates them, not Hash.
func Hash(ref string) string {
	digest := sha256.Sum256([]byte(ref))
	num := binary.BigEndian.Uint32(digest[:4])

	var token [TokenLength]byte
	for i := 0; i < TokenLength; i++ {
		token[i] = base36Chars[num%36]
		num /= 36
	}
	return string(token[:])
}
