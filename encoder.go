package ecpay

import (
	"bytes"
	"encoding/json"
)

// PayloadEncoder turns a plaintext envelope into its wire form and back.
type PayloadEncoder interface {
	// EncodePayload returns a copy of payload with its Data block encrypted.
	EncodePayload(payload Payload) (Payload, error)

	// DecodeData decrypts a response Data string into a payload.
	DecodeData(data string) (Payload, error)

	// VerifyResponse reports whether the response Data decodes cleanly.
	VerifyResponse(response Payload) bool
}

// AESEncoder is the envelope encoder used by the e-invoice API:
// json, percent-encode, transliterate, then AES-128-CBC.
type AESEncoder struct {
	cipher Encryptor
}

// NewAESEncoder wraps an existing cipher.
func NewAESEncoder(cipher Encryptor) *AESEncoder {
	return &AESEncoder{cipher: cipher}
}

// NewAESEncoderFromKeys builds the cipher from raw credentials.
func NewAESEncoderFromKeys(hashKey, hashIV string) (*AESEncoder, error) {
	c, err := NewCipherService(hashKey, hashIV)
	if err != nil {
		return nil, err
	}
	return NewAESEncoder(c), nil
}

// EncodePayload encrypts the Data block. All other keys pass through.
func (e *AESEncoder) EncodePayload(payload Payload) (Payload, error) {
	data, ok := payload[FieldData]
	if !ok {
		return nil, &PayloadError{Reason: "missing Data"}
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, &PayloadError{Reason: "encode Data", Cause: err}
	}

	encrypted, err := e.cipher.Encrypt(DotNetURLEncode(string(raw)))
	if err != nil {
		return nil, err
	}

	out := payload.Clone()
	out[FieldData] = encrypted
	return out, nil
}

// DecodeData decrypts and parses a response Data string.
// The decoded document must be a JSON object.
func (e *AESEncoder) DecodeData(data string) (Payload, error) {
	plain, err := e.cipher.Decrypt(data)
	if err != nil {
		return nil, err
	}

	decoded := []byte(FormURLDecode(plain))
	if !json.Valid(decoded) {
		return nil, &APIError{Reason: "invalid JSON"}
	}

	trimmed := bytes.TrimSpace(decoded)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, &APIError{Reason: "parse failed"}
	}

	var out Payload
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return nil, &APIError{Reason: "parse failed", Cause: err}
	}
	return out, nil
}

// VerifyResponse never returns an error; any decode failure is false.
func (e *AESEncoder) VerifyResponse(response Payload) bool {
	data, ok := response[FieldData].(string)
	if !ok {
		return false
	}
	_, err := e.DecodeData(data)
	return err == nil
}

// Encrypt passes through to the underlying cipher.
func (e *AESEncoder) Encrypt(plaintext string) (string, error) {
	return e.cipher.Encrypt(plaintext)
}

// Decrypt passes through to the underlying cipher.
func (e *AESEncoder) Decrypt(ciphertext string) (string, error) {
	return e.cipher.Decrypt(ciphertext)
}
