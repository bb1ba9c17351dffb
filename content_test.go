package ecpay

import (
	"errors"
	"reflect"
	"testing"
)

func TestNewContent_Seeds(t *testing.T) {
	op := newTestIssue("2000132", testHashKey, testHashIV)
	op.Set("RelateNumber", "TEST123")

	p, err := op.Payload()
	if err != nil {
		t.Fatalf("Payload() error: %v", err)
	}

	if p["MerchantID"] != "2000132" {
		t.Errorf("MerchantID = %v, want 2000132", p["MerchantID"])
	}
	header, ok := p.Map("RqHeader")
	if !ok {
		t.Fatalf("RqHeader = %T, want map", p["RqHeader"])
	}
	if ts, _ := header["Timestamp"].(int64); ts <= 0 {
		t.Errorf("Timestamp = %v, want > 0", header["Timestamp"])
	}
	data, _ := p.Map("Data")
	if data["MerchantID"] != "2000132" || data["RelateNumber"] != "TEST123" {
		t.Errorf("Data = %v", data)
	}
}

func TestContent_PayloadRunsValidation(t *testing.T) {
	op := newTestIssue("2000132", testHashKey, testHashIV)

	_, err := op.Payload()
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("Payload() error = %v, want *ValidationError", err)
	}
	if vErr.Field != "RelateNumber" {
		t.Errorf("Field = %q, want RelateNumber", vErr.Field)
	}
}

func TestContent_PayloadIsCopyAndIdempotent(t *testing.T) {
	op := newTestIssue("2000132", testHashKey, testHashIV)
	op.Set("RelateNumber", "TEST123")

	first, _ := op.Payload()
	data, _ := first.Map("Data")
	data["RelateNumber"] = "CHANGED"

	second, err := op.Payload()
	if err != nil {
		t.Fatalf("Payload() error: %v", err)
	}
	inner, _ := second.Map("Data")
	if inner["RelateNumber"] != "TEST123" {
		t.Errorf("mutating a returned payload leaked into the envelope: %v", inner["RelateNumber"])
	}

	third, _ := op.Payload()
	if !reflect.DeepEqual(second, third) {
		t.Errorf("Payload() not idempotent: %v != %v", second, third)
	}
}

func TestContent_SetHeader(t *testing.T) {
	op := newTestIssue("2000132", testHashKey, testHashIV)
	op.Set("RelateNumber", "TEST123")

	h, _ := NewRequestHeader(1700000000)
	op.SetHeader(h)

	p, _ := op.Payload()
	header, _ := p.Map("RqHeader")
	if header["Timestamp"] != int64(1700000000) {
		t.Errorf("Timestamp = %v, want 1700000000", header["Timestamp"])
	}
	if op.Header() != h {
		t.Errorf("Header() = %+v, want %+v", op.Header(), h)
	}
}

func TestContent_EnvelopeScenario(t *testing.T) {
	op := newTestIssue("2000132", testHashKey, testHashIV)
	op.Set("RelateNumber", "TEST123")

	env, err := op.Envelope()
	if err != nil {
		t.Fatalf("Envelope() error: %v", err)
	}
	if env["Data"] != scenarioCiphertext {
		t.Errorf("Data = %q, want %q", env["Data"], scenarioCiphertext)
	}
	if env["MerchantID"] != "2000132" {
		t.Errorf("MerchantID = %v, want 2000132", env["MerchantID"])
	}

	enc, _ := op.PayloadEncoder()
	decoded, err := enc.DecodeData(env["Data"].(string))
	if err != nil {
		t.Fatalf("DecodeData() error: %v", err)
	}
	want := Payload{"MerchantID": "2000132", "RelateNumber": "TEST123"}
	if !reflect.DeepEqual(decoded, want) {
		t.Errorf("DecodeData() = %v, want %v", decoded, want)
	}
}

func TestContent_PayloadEncoderNeedsCredentials(t *testing.T) {
	tests := []struct {
		name    string
		key, iv string
		wantKey string
	}{
		{"no key", "", testHashIV, "HashKey"},
		{"no iv", testHashKey, "", "HashIV"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op := newTestIssue("2000132", tt.key, tt.iv)
			op.Set("RelateNumber", "TEST123")

			_, err := op.Envelope()
			var encErr *EncryptionError
			if !errors.As(err, &encErr) {
				t.Fatalf("Envelope() error = %v, want *EncryptionError", err)
			}
			if encErr.Key != tt.wantKey {
				t.Errorf("Key = %q, want %q", encErr.Key, tt.wantKey)
			}
		})
	}
}

type stubEncoder struct {
	calls int
}

func (s *stubEncoder) EncodePayload(p Payload) (Payload, error) {
	s.calls++
	out := p.Clone()
	out["Data"] = "stub"
	return out, nil
}

func (s *stubEncoder) DecodeData(string) (Payload, error) { return Payload{}, nil }

func (s *stubEncoder) VerifyResponse(Payload) bool { return true }

func TestContent_SetPayloadEncoder(t *testing.T) {
	stub := &stubEncoder{}
	op := newTestIssue("2000132", "", "")
	op.Set("RelateNumber", "TEST123")
	op.SetPayloadEncoder(stub)

	env, err := op.Envelope()
	if err != nil {
		t.Fatalf("Envelope() error: %v", err)
	}
	if env["Data"] != "stub" || stub.calls != 1 {
		t.Errorf("custom encoder not used: Data=%v calls=%d", env["Data"], stub.calls)
	}
}

func TestContent_ValidateBase(t *testing.T) {
	tests := []struct {
		name      string
		setup     func() *Content
		requireCr bool
		sentinel  error
	}{
		{
			name:     "valid",
			setup:    func() *Content { return newTestIssue("2000132", "", "").Content },
			sentinel: nil,
		},
		{
			name:     "empty merchant",
			setup:    func() *Content { return newTestIssue("", testHashKey, testHashIV).Content },
			sentinel: ErrValidation,
		},
		{
			name: "no data block",
			setup: func() *Content {
				return NewContent("2000132", testHashKey, testHashIV, nil)
			},
			sentinel: ErrValidation,
		},
		{
			name: "data merchant cleared",
			setup: func() *Content {
				return newTestIssue("2000132", testHashKey, testHashIV).Set("MerchantID", "")
			},
			sentinel: ErrValidation,
		},
		{
			name:      "credentials required",
			setup:     func() *Content { return newTestIssue("2000132", testHashKey, "").Content },
			requireCr: true,
			sentinel:  ErrEncryption,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.setup().ValidateBase(tt.requireCr)
			if tt.sentinel == nil {
				if err != nil {
					t.Errorf("ValidateBase() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("ValidateBase() error = %v, want %v", err, tt.sentinel)
			}
		})
	}
}

func TestContent_SetMerchantIDSyncsKeys(t *testing.T) {
	op := newTestIssue("", testHashKey, testHashIV)
	op.SetMerchantID("2000132").Set("RelateNumber", "TEST123")

	p, err := op.Payload()
	if err != nil {
		t.Fatalf("Payload() error: %v", err)
	}
	data, _ := p.Map("Data")
	if p["MerchantID"] != "2000132" || data["MerchantID"] != "2000132" {
		t.Errorf("MerchantID not synced: top=%v data=%v", p["MerchantID"], data["MerchantID"])
	}
	if op.MerchantID() != "2000132" {
		t.Errorf("MerchantID() = %q, want 2000132", op.MerchantID())
	}
}

func TestContent_DataAndGet(t *testing.T) {
	op := newTestQuery("2000132", testHashKey, testHashIV)

	if op.Data() != nil {
		t.Errorf("Data() = %v, want nil before any Set", op.Data())
	}
	if _, ok := op.Get("RelateNumber"); ok {
		t.Error("Get() should miss before any Set")
	}

	op.SetData(map[string]any{"MerchantID": "2000132", "InvoiceNo": "AB12345678"})
	if v, ok := op.Get("InvoiceNo"); !ok || v != "AB12345678" {
		t.Errorf("Get(InvoiceNo) = %v, %v", v, ok)
	}

	copied := op.Data()
	copied["InvoiceNo"] = "changed"
	if v, _ := op.Get("InvoiceNo"); v != "AB12345678" {
		t.Errorf("Data() returned the live map; Get = %v", v)
	}
}

func TestContent_QueryRequiresCredentials(t *testing.T) {
	op := newTestQuery("2000132", "", testHashIV)
	op.SetData(map[string]any{"MerchantID": "2000132"})

	_, err := op.Payload()
	if !errors.Is(err, ErrEncryption) {
		t.Errorf("Payload() error = %v, want ErrEncryption", err)
	}

	op.SetHashKey(testHashKey)
	if _, err := op.Payload(); err != nil {
		t.Errorf("Payload() error = %v after SetHashKey", err)
	}
}

func TestRawContent(t *testing.T) {
	op := NewRawContent("2000132", testHashKey, testHashIV)
	op.SetRequestPath("/B2CInvoice/Issue").Set("RelateNumber", "TEST123")

	env, err := op.Envelope()
	if err != nil {
		t.Fatalf("Envelope() error: %v", err)
	}
	if env["Data"] != scenarioCiphertext {
		t.Errorf("Data = %q, want %q", env["Data"], scenarioCiphertext)
	}
	if op.RequestPath() != "/B2CInvoice/Issue" {
		t.Errorf("RequestPath() = %q", op.RequestPath())
	}
}
