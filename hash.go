package ecpay

import (
	"crypto/md5" //nolint:gosec // CheckMacValue for legacy APIs is MD5
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
)

// HashAlgo names a supported digest.
type HashAlgo string

// Supported digests.
const (
	HashSHA256 HashAlgo = "sha256"
	HashMD5    HashAlgo = "md5"
	HashSHA512 HashAlgo = "sha512"
)

// Hasher performs one-way hashing.
type Hasher interface {
	// Hash returns the hex-encoded digest of plaintext.
	Hash(plaintext []byte) (string, error)
}

// sha256Hasher implements SHA-256 hashing.
type sha256Hasher struct{}

// SHA256Hasher returns a SHA-256 hasher.
// The result is a hex-encoded 64-character string.
func SHA256Hasher() Hasher {
	return &sha256Hasher{}
}

func (h *sha256Hasher) Hash(plaintext []byte) (string, error) {
	sum := sha256.Sum256(plaintext)
	return hex.EncodeToString(sum[:]), nil
}

// md5Hasher implements MD5 hashing.
// Only for CheckMacValue on APIs that still require it.
type md5Hasher struct{}

// MD5Hasher returns an MD5 hasher.
// The result is a hex-encoded 32-character string.
func MD5Hasher() Hasher {
	return &md5Hasher{}
}

func (h *md5Hasher) Hash(plaintext []byte) (string, error) {
	sum := md5.Sum(plaintext) //nolint:gosec
	return hex.EncodeToString(sum[:]), nil
}

// sha512Hasher implements SHA-512 hashing.
type sha512Hasher struct{}

// SHA512Hasher returns a SHA-512 hasher.
// The result is a hex-encoded 128-character string.
func SHA512Hasher() Hasher {
	return &sha512Hasher{}
}

func (h *sha512Hasher) Hash(plaintext []byte) (string, error) {
	sum := sha512.Sum512(plaintext)
	return hex.EncodeToString(sum[:]), nil
}

// HasherFor returns the built-in hasher for algo.
func HasherFor(algo HashAlgo) (Hasher, bool) {
	h, ok := builtinHashers()[algo]
	return h, ok
}

// builtinHashers returns the default hasher registry.
func builtinHashers() map[HashAlgo]Hasher {
	return map[HashAlgo]Hasher{
		HashSHA256: SHA256Hasher(),
		HashMD5:    MD5Hasher(),
		HashSHA512: SHA512Hasher(),
	}
}
