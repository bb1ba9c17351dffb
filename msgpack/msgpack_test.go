package msgpack

import (
	"testing"

	"github.com/zoobzio/ecpay"
)

func TestNew(t *testing.T) {
	c := New()
	if c == nil {
		t.Error("New() should return non-nil codec")
	}
}

func TestContentType(t *testing.T) {
	c := New()
	if c.ContentType() != "application/msgpack" {
		t.Errorf("ContentType() = %q, want %q", c.ContentType(), "application/msgpack")
	}
}

func TestMarshalUnmarshalJSONTags(t *testing.T) {
	c := New()

	type Invoice struct {
		RelateNumber string `json:"RelateNumber"`
		SalesAmount  int    `json:"SalesAmount"`
	}

	original := Invoice{RelateNumber: "TEST123", SalesAmount: 100}

	data, err := c.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var asMap map[string]any
	if err := c.Unmarshal(data, &asMap); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if asMap["RelateNumber"] != "TEST123" {
		t.Errorf("RelateNumber = %v, want TEST123 under its json tag", asMap["RelateNumber"])
	}

	var restored Invoice
	if err := c.Unmarshal(data, &restored); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if restored != original {
		t.Errorf("round-trip failed: got %+v, want %+v", restored, original)
	}
}

func TestMarshalPayload(t *testing.T) {
	c := New()

	data, err := c.Marshal(ecpay.Payload{"MerchantID": "2000132"})
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	// MessagePack is binary, should not be valid UTF-8 JSON
	if data[0] == '{' {
		t.Error("MessagePack output should be binary, not JSON")
	}

	var restored ecpay.Payload
	if err := c.Unmarshal(data, &restored); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if restored["MerchantID"] != "2000132" {
		t.Errorf("MerchantID = %v, want 2000132", restored["MerchantID"])
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	c := New()

	var v struct{}
	err := c.Unmarshal([]byte("not msgpack"), &v)
	if err == nil {
		t.Error("Unmarshal(invalid) should return error")
	}
}
