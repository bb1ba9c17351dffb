// Package testing provides test utilities for ecpay.
package testing

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/zoobzio/ecpay"
)

// Stage credentials published for the e-invoice sandbox.
const (
	MerchantID = "2000132"
	HashKey    = "ejCk326UnaZWKisg"
	HashIV     = "q9jcZX8Ib9LM8wYk"
)

// Namespace is the type-name prefix of the sample catalog.
const Namespace = "invoice"

// TestEncoder returns an AES encoder bound to the sandbox credentials.
func TestEncoder(tb testing.TB) *ecpay.AESEncoder {
	tb.Helper()
	enc, err := ecpay.NewAESEncoderFromKeys(HashKey, HashIV)
	if err != nil {
		tb.Fatalf("NewAESEncoderFromKeys() error: %v", err)
	}
	return enc
}

// Issue is a sample operation that requires a RelateNumber.
type Issue struct {
	*ecpay.Content
}

// NewIssue builds an Issue posting to /B2CInvoice/Issue.
func NewIssue(merchantID, hashKey, hashIV string) *Issue {
	op := &Issue{}
	op.Content = ecpay.NewContent(merchantID, hashKey, hashIV, op)
	op.SetRequestPath("/B2CInvoice/Issue")
	return op
}

// InitContent seeds the Data block.
func (o *Issue) InitContent(c *ecpay.Content) {
	c.SetData(map[string]any{
		ecpay.FieldMerchantID: c.MerchantID(),
		"RelateNumber":        "",
	})
}

// Validation requires MerchantID and RelateNumber.
func (o *Issue) Validation(c *ecpay.Content) error {
	if err := c.ValidateBase(false); err != nil {
		return err
	}
	if v, _ := c.Get("RelateNumber"); v == "" || v == nil {
		return &ecpay.ValidationError{Field: "RelateNumber", Message: "is required"}
	}
	return nil
}

// MaskRules masks the buyer's contact details in transcripts.
func (o *Issue) MaskRules() map[string]ecpay.MaskType {
	return map[string]ecpay.MaskType{
		"CustomerName":  ecpay.MaskName,
		"CustomerEmail": ecpay.MaskEmail,
		"CustomerPhone": ecpay.MaskPhone,
	}
}

// GetIssue is a sample query that needs credentials but no extra fields.
type GetIssue struct {
	*ecpay.Content
}

// NewGetIssue builds a GetIssue posting to /B2CInvoice/GetIssue.
func NewGetIssue(merchantID, hashKey, hashIV string) *GetIssue {
	op := &GetIssue{}
	op.Content = ecpay.NewContent(merchantID, hashKey, hashIV, op)
	op.SetRequestPath("/B2CInvoice/GetIssue")
	op.Set(ecpay.FieldMerchantID, merchantID)
	return op
}

// Validation requires MerchantID and both credentials.
func (o *GetIssue) Validation(c *ecpay.Content) error {
	return c.ValidateBase(true)
}

// Catalog returns a catalog holding the sample operations under Namespace.
func Catalog() *ecpay.Catalog {
	c := ecpay.NewCatalog()
	c.Register(Namespace+"/Operations/Issue", func(m, k, iv string) ecpay.Operation {
		return NewIssue(m, k, iv)
	})
	c.Register(Namespace+"/Queries/GetIssue", func(m, k, iv string) ecpay.Operation {
		return NewGetIssue(m, k, iv)
	})
	return c
}

// Factory returns a factory over Catalog with the sandbox credentials.
func Factory() *ecpay.Factory[ecpay.Operation] {
	return ecpay.NewFactory(ecpay.FactoryConfig[ecpay.Operation]{
		Namespace:  Namespace,
		MerchantID: MerchantID,
		HashKey:    HashKey,
		HashIV:     HashIV,
		Catalog:    Catalog(),
	})
}

// EchoServer starts a server that decrypts each request's Data block and
// replies with it re-encrypted under RtnCode 1. Requests whose Data does
// not decode get RtnCode 0. The server is closed when the test ends.
func EchoServer(tb testing.TB) *httptest.Server {
	tb.Helper()
	enc := TestEncoder(tb)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reply := map[string]any{ecpay.FieldRtnCode: 0, ecpay.FieldRtnMsg: "decode failed"}

		raw, _ := io.ReadAll(r.Body)
		var envelope ecpay.Payload
		if err := json.Unmarshal(raw, &envelope); err == nil {
			data, _ := envelope.String(ecpay.FieldData)
			if decoded, err := enc.DecodeData(data); err == nil {
				if out, err := enc.EncodePayload(ecpay.Payload{ecpay.FieldData: decoded}); err == nil {
					reply = map[string]any{
						ecpay.FieldRtnCode: 1,
						ecpay.FieldRtnMsg:  "OK",
						ecpay.FieldData:    out[ecpay.FieldData],
					}
				}
			}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(reply)
	}))
	tb.Cleanup(srv.Close)
	return srv
}
