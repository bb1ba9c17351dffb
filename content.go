package ecpay

import (
	"context"
	"time"
)

// Validator is the hook every concrete operation supplies.
// Validation runs each time the payload is requested.
type Validator interface {
	Validation(c *Content) error
}

// ContentInitializer is an optional hook for seeding the Data block.
// If the hooks value passed to NewContent implements it, InitContent runs
// once the top-level keys are in place.
type ContentInitializer interface {
	InitContent(c *Content)
}

// Content is the request envelope shared by all operations. Concrete
// operations embed *Content and pass themselves as hooks to NewContent.
type Content struct {
	requestPath string
	merchantID  string
	hashKey     string
	hashIV      string
	header      RequestHeader
	data        Payload
	encoder     PayloadEncoder
	hooks       Validator
}

// NewContent builds an envelope bound to the merchant credentials.
func NewContent(merchantID, hashKey, hashIV string, hooks Validator) *Content {
	c := &Content{
		merchantID: merchantID,
		hashKey:    hashKey,
		hashIV:     hashIV,
		header:     RequestHeader{Timestamp: time.Now().Unix()},
		hooks:      hooks,
	}
	c.data = Payload{
		FieldMerchantID: merchantID,
		FieldRqHeader:   c.header.ToPayload(),
	}

	if ci, ok := hooks.(ContentInitializer); ok {
		ci.InitContent(c)
	}
	return c
}

// RequestPath returns the API path this operation posts to.
func (c *Content) RequestPath() string {
	return c.requestPath
}

// SetRequestPath sets the API path.
func (c *Content) SetRequestPath(path string) *Content {
	c.requestPath = path
	return c
}

// MerchantID returns the merchant id.
func (c *Content) MerchantID() string {
	return c.merchantID
}

// SetMerchantID sets the merchant id and rewrites the MerchantID keys at
// the top level and, when present, inside Data.
func (c *Content) SetMerchantID(id string) *Content {
	c.merchantID = id
	c.data[FieldMerchantID] = id
	if data, ok := c.data.Map(FieldData); ok {
		data[FieldMerchantID] = id
	}
	return c
}

// SetHashKey sets the AES key.
func (c *Content) SetHashKey(key string) *Content {
	c.hashKey = key
	return c
}

// SetHashIV sets the AES IV.
func (c *Content) SetHashIV(iv string) *Content {
	c.hashIV = iv
	return c
}

// Header returns the current request header.
func (c *Content) Header() RequestHeader {
	return c.header
}

// SetHeader replaces the request header.
func (c *Content) SetHeader(h RequestHeader) *Content {
	c.header = h
	c.syncHeader()
	return c
}

// SetPayloadEncoder overrides the encoder built from the credentials.
func (c *Content) SetPayloadEncoder(e PayloadEncoder) *Content {
	c.encoder = e
	return c
}

// Set stores value under key in the Data block, creating it if needed.
func (c *Content) Set(key string, value any) *Content {
	data, ok := c.data.Map(FieldData)
	if !ok {
		data = Payload{}
		c.data[FieldData] = data
	}
	data[key] = value
	return c
}

// SetData replaces the Data block.
func (c *Content) SetData(data map[string]any) *Content {
	c.data[FieldData] = Payload(data).Clone()
	return c
}

// Data returns a copy of the Data block, or nil if none is set.
func (c *Content) Data() Payload {
	data, ok := c.data.Map(FieldData)
	if !ok {
		return nil
	}
	return data.Clone()
}

// Get returns a Data value.
func (c *Content) Get(key string) (any, bool) {
	data, ok := c.data.Map(FieldData)
	if !ok {
		return nil, false
	}
	v, ok := data[key]
	return v, ok
}

// Payload validates the envelope and returns a copy of its plaintext form.
func (c *Content) Payload() (Payload, error) {
	if c.hooks != nil {
		if err := c.hooks.Validation(c); err != nil {
			return nil, err
		}
	}
	c.syncHeader()
	return c.data.Clone(), nil
}

// Envelope returns the payload with its Data block encrypted.
func (c *Content) Envelope() (Payload, error) {
	payload, err := c.Payload()
	if err != nil {
		return nil, err
	}

	encoder, err := c.PayloadEncoder()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	out, err := encoder.EncodePayload(payload)
	size := 0
	if s, ok := out[FieldData].(string); ok {
		size = len(s)
	}
	emitEncode(context.Background(), c.requestPath, size, time.Since(start), err)
	return out, err
}

// PayloadEncoder returns the explicit encoder, or an AES encoder built
// from the credentials.
func (c *Content) PayloadEncoder() (PayloadEncoder, error) {
	if c.encoder != nil {
		return c.encoder, nil
	}
	if err := c.ValidateCredentials(); err != nil {
		return nil, err
	}
	enc, err := NewAESEncoderFromKeys(c.hashKey, c.hashIV)
	if err != nil {
		return nil, err
	}
	return enc, nil
}

// ValidateBase checks MerchantID at the top level and inside Data.
// With requireCredentials it also checks HashKey and HashIV.
func (c *Content) ValidateBase(requireCredentials bool) error {
	top, _ := c.data.String(FieldMerchantID)
	data, _ := c.data.Map(FieldData)
	inner, _ := data.String(FieldMerchantID)
	if top == "" || inner == "" {
		return newRequiredError(FieldMerchantID)
	}

	if requireCredentials {
		return c.ValidateCredentials()
	}
	return nil
}

// ValidateCredentials reports an empty HashKey or HashIV.
func (c *Content) ValidateCredentials() error {
	if c.hashKey == "" {
		return newKeyError("HashKey")
	}
	if c.hashIV == "" {
		return newKeyError("HashIV")
	}
	return nil
}

// RqID returns a fresh request id.
func (c *Content) RqID() (string, error) {
	return NewRqID(time.Now())
}

func (c *Content) syncHeader() {
	c.data[FieldRqHeader] = c.header.ToPayload()
}
