// Package ecpay is a client SDK for the ECPay e-invoice API.
//
// Requests travel as an envelope whose Data block is encrypted with the
// merchant's HashKey and HashIV. The package builds those envelopes,
// resolves operation names to concrete operation types, posts them and
// decodes the replies.
//
// # Envelope
//
// Every request has the shape:
//
//	{
//	    "MerchantID": "2000132",
//	    "RqHeader":   {"Timestamp": 1700000000},
//	    "Data":       {...}
//	}
//
// Before sending, Data is serialized to JSON, percent-encoded the way
// .NET's UrlEncode does it, encrypted with AES-128-CBC and base64-encoded.
// Replies carry RtnCode, RtnMsg and optionally an encrypted Data string
// that goes through the same steps in reverse.
//
// # Operations
//
// Concrete operations embed *Content and pass themselves as hooks:
//
//	type Issue struct{ *ecpay.Content }
//
//	func NewIssue(merchantID, hashKey, hashIV string) *Issue {
//	    op := &Issue{}
//	    op.Content = ecpay.NewContent(merchantID, hashKey, hashIV, op)
//	    op.SetRequestPath("/B2CInvoice/Issue")
//	    return op
//	}
//
//	func (o *Issue) Validation(c *ecpay.Content) error {
//	    return c.ValidateBase(false)
//	}
//
// # Factory
//
// A Factory resolves strings to operations registered in a Catalog:
//
//	ecpay.Register("invoice/Operations/Issue", func(m, k, iv string) ecpay.Operation {
//	    return NewIssue(m, k, iv)
//	})
//
//	f := ecpay.NewFactory(ecpay.FactoryConfig[ecpay.Operation]{
//	    Namespace:  "invoice",
//	    MerchantID: "2000132",
//	    HashKey:    hashKey,
//	    HashIV:     hashIV,
//	})
//
//	op, _ := f.Make("issue")              // invoice/Operations/Issue
//	op, _ = f.Make("queries.get_issue")   // invoice/Queries/GetIssue
//
// Resolution tries custom resolvers, then aliases, then the literal type
// name, then the naming convention namespace/Group/StudlyName.
//
// # Sending
//
//	client := ecpay.NewClient("https://einvoice-stage.ecpay.com.tw", nil)
//	resp, err := client.Execute(ctx, op)
//	if err == nil && resp.IsSuccess() {
//	    data := resp.DecodedData()
//	}
//
// # Encoders
//
//   - AESEncoder - encrypted Data block (e-invoice)
//   - CheckMacEncoder - CheckMacValue signature over flat forms (payment, logistics)
//
// # Transcripts
//
// NewTranscript records a request and its reply with personal data masked
// and marshals it with any Codec:
//
//   - json - JSON encoding (application/json)
//   - yaml - YAML encoding (application/yaml)
//   - msgpack - MessagePack encoding (application/msgpack)
//   - bson - BSON encoding (application/bson)
//
// # Masking
//
// Built-in content-aware maskers:
//
//   - email: alice@example.com → a***@example.com
//   - phone: 0912345678 → 09*****678
//   - card: 4311952222222222 → 431195******2222
//   - name: 王小明 → 王*明
//   - identifier: A123456789 → A1******89
//   - redact: anything → [REDACTED]
package ecpay
