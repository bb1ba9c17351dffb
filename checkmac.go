package ecpay

import (
	"crypto/subtle"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// FieldCheckMacValue is the signature key used by the payment and
// logistics APIs.
const FieldCheckMacValue = "CheckMacValue"

// CheckMacEncoder signs flat form payloads with a CheckMacValue instead of
// encrypting them.
type CheckMacEncoder struct {
	HashKey string
	HashIV  string
	Method  HashAlgo // HashSHA256 or HashMD5
}

// NewCheckMacEncoder validates the credentials and digest.
func NewCheckMacEncoder(hashKey, hashIV string, method HashAlgo) (*CheckMacEncoder, error) {
	if hashKey == "" {
		return nil, newKeyError("HashKey")
	}
	if hashIV == "" {
		return nil, newKeyError("HashIV")
	}
	if method != HashSHA256 && method != HashMD5 {
		return nil, &ConfigError{Key: "Method", Value: method, Reason: "must be sha256 or md5"}
	}
	return &CheckMacEncoder{HashKey: hashKey, HashIV: hashIV, Method: method}, nil
}

// EncodePayload returns a copy of payload with CheckMacValue set.
func (e *CheckMacEncoder) EncodePayload(payload Payload) (Payload, error) {
	mac, err := e.Sign(payload)
	if err != nil {
		return nil, err
	}
	out := payload.Clone()
	out[FieldCheckMacValue] = mac
	return out, nil
}

// DecodeData parses a form-encoded reply such as "RtnCode=1&RtnMsg=OK".
func (e *CheckMacEncoder) DecodeData(data string) (Payload, error) {
	if strings.TrimSpace(data) == "" {
		return nil, &APIError{Reason: "parse failed"}
	}

	out := Payload{}
	for _, pair := range strings.Split(data, "&") {
		if pair == "" {
			continue
		}
		k, v, _ := strings.Cut(pair, "=")
		key := FormURLDecode(k)
		if key == "" {
			return nil, &APIError{Reason: "parse failed"}
		}
		out[key] = FormURLDecode(v)
	}
	return out, nil
}

// VerifyResponse recomputes the CheckMacValue of response and compares it
// with the one it carries.
func (e *CheckMacEncoder) VerifyResponse(response Payload) bool {
	got, ok := response[FieldCheckMacValue].(string)
	if !ok || got == "" {
		return false
	}
	want, err := e.Sign(response)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(strings.ToUpper(got)), []byte(want)) == 1
}

// Sign computes the CheckMacValue for payload. Any existing
// CheckMacValue key is ignored.
func (e *CheckMacEncoder) Sign(payload Payload) (string, error) {
	hasher, ok := HasherFor(e.Method)
	if !ok {
		return "", &ConfigError{Key: "Method", Value: e.Method, Reason: "unsupported digest"}
	}

	sum, err := hasher.Hash([]byte(e.canonical(payload)))
	if err != nil {
		return "", newCipherError("sign failed", err)
	}
	return strings.ToUpper(sum), nil
}

// canonical builds the lowercased, .NET-encoded string that gets hashed.
func (e *CheckMacEncoder) canonical(payload Payload) string {
	keys := make([]string, 0, len(payload))
	for k := range payload {
		if k == FieldCheckMacValue {
			continue
		}
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return strings.ToLower(keys[i]) < strings.ToLower(keys[j])
	})

	var b strings.Builder
	b.WriteString("HashKey=")
	b.WriteString(e.HashKey)
	for _, k := range keys {
		b.WriteByte('&')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(formValue(payload[k]))
	}
	b.WriteString("&HashIV=")
	b.WriteString(e.HashIV)

	return TransliterateURLEncoded(strings.ToLower(FormURLEncode(b.String())))
}

// formValue renders a scalar the way it appears in a form post.
func formValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		if t {
			return "1"
		}
		return "0"
	default:
		return fmt.Sprint(t)
	}
}
