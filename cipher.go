package ecpay

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"errors"
	"fmt"
)

// Cipher errors.
var (
	ErrInvalidKeySize = errors.New("invalid key size")
	ErrInvalidIVSize  = errors.New("invalid iv size")
	ErrBadPadding     = errors.New("bad padding")
)

// aes128KeySize is the only key length AES-128 accepts.
const aes128KeySize = 16

// Encryptor handles encryption/decryption operations on text.
type Encryptor interface {
	// Encrypt encrypts plaintext and returns base64 ciphertext.
	Encrypt(plaintext string) (string, error)

	// Decrypt decrypts base64 ciphertext and returns plaintext.
	Decrypt(ciphertext string) (string, error)
}

// CipherService implements AES-128-CBC with PKCS#7 padding.
// The key and IV are the literal bytes of HashKey and HashIV; the IV is fixed,
// so identical plaintext always produces identical ciphertext.
type CipherService struct {
	hashKey string
	hashIV  string
}

// NewCipherService returns a cipher bound to the merchant credentials.
// Only emptiness is checked here; a key or IV of the wrong length fails
// when Encrypt or Decrypt is called.
func NewCipherService(hashKey, hashIV string) (*CipherService, error) {
	if hashKey == "" {
		return nil, newKeyError("HashKey")
	}
	if hashIV == "" {
		return nil, newKeyError("HashIV")
	}
	return &CipherService{hashKey: hashKey, hashIV: hashIV}, nil
}

// Encrypt returns base64(AES-128-CBC(plaintext)).
func (s *CipherService) Encrypt(plaintext string) (string, error) {
	block, iv, err := s.block()
	if err != nil {
		return "", newCipherError("encrypt failed", err)
	}

	padded := pkcs7Pad([]byte(plaintext), block.BlockSize())
	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, padded)

	return base64.StdEncoding.EncodeToString(out), nil
}

// Decrypt reverses Encrypt.
func (s *CipherService) Decrypt(ciphertext string) (string, error) {
	if ciphertext == "" {
		return "", newCipherError("empty input", nil)
	}

	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", newCipherError("bad base64", err)
	}

	block, iv, err := s.block()
	if err != nil {
		return "", newCipherError("decrypt failed", err)
	}

	if len(raw) == 0 || len(raw)%block.BlockSize() != 0 {
		return "", newCipherError("decrypt failed",
			fmt.Errorf("ciphertext length %d is not a multiple of the block size", len(raw)))
	}

	out := make([]byte, len(raw))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, raw)

	plain, err := pkcs7Unpad(out, block.BlockSize())
	if err != nil {
		return "", newCipherError("decrypt failed", err)
	}

	return string(plain), nil
}

// block builds the AES block and validates the IV length.
func (s *CipherService) block() (cipher.Block, []byte, error) {
	key := []byte(s.hashKey)
	if len(key) != aes128KeySize {
		return nil, nil, fmt.Errorf("%w: AES-128 needs %d bytes, got %d", ErrInvalidKeySize, aes128KeySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, nil, err
	}

	iv := []byte(s.hashIV)
	if len(iv) != block.BlockSize() {
		return nil, nil, fmt.Errorf("%w: need %d bytes, got %d", ErrInvalidIVSize, block.BlockSize(), len(iv))
	}

	return block, iv, nil
}

// pkcs7Pad appends 1..blockSize bytes, each holding the pad length.
func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(n)}, n)...)
}

// pkcs7Unpad strips and checks PKCS#7 padding.
func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, ErrBadPadding
	}

	n := int(data[len(data)-1])
	if n == 0 || n > blockSize {
		return nil, ErrBadPadding
	}

	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, ErrBadPadding
		}
	}

	return data[:len(data)-n], nil
}
