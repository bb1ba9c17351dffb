// Package json provides a JSON codec implementation.
package json

import (
	"bytes"
	"encoding/json"

	"github.com/zoobzio/ecpay"
)

// jsonCodec implements ecpay.Codec for JSON.
type jsonCodec struct {
	useNumber bool
}

// New returns a JSON codec.
func New() ecpay.Codec {
	return &jsonCodec{}
}

// NewExact returns a JSON codec that decodes numbers as json.Number so
// large integers such as RtnCode survive a round trip unchanged.
func NewExact() ecpay.Codec {
	return &jsonCodec{useNumber: true}
}

// ContentType returns the MIME type for JSON.
func (c *jsonCodec) ContentType() string {
	return "application/json"
}

// Marshal encodes v as JSON.
func (c *jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshal decodes JSON data into v.
func (c *jsonCodec) Unmarshal(data []byte, v any) error {
	if !c.useNumber {
		return json.Unmarshal(data, v)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}
