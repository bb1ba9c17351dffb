package integration

import (
	"context"
	"testing"

	"github.com/zoobzio/ecpay"
	"github.com/zoobzio/ecpay/bson"
	"github.com/zoobzio/ecpay/json"
	"github.com/zoobzio/ecpay/msgpack"
	"github.com/zoobzio/ecpay/yaml"
	ecpaytest "github.com/zoobzio/ecpay/testing"
)

func TestClient_EchoRoundTrip(t *testing.T) {
	srv := ecpaytest.EchoServer(t)
	client := ecpay.NewClient(srv.URL, nil)

	op, err := ecpaytest.Factory().Make("issue")
	if err != nil {
		t.Fatalf("Make() error: %v", err)
	}
	issue := op.(*ecpaytest.Issue)
	issue.Set("RelateNumber", "TEST123")
	issue.Set("CustomerName", "王小明")
	issue.Set("Items", []map[string]any{{"ItemName": "筆 & 紙", "ItemPrice": 100}})

	resp, err := client.Execute(context.Background(), issue)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !resp.IsSuccess() {
		t.Fatalf("RtnCode = %d %s", resp.Code(), resp.Message())
	}

	data := resp.DecodedData()
	if data["RelateNumber"] != "TEST123" {
		t.Errorf("RelateNumber = %v", data["RelateNumber"])
	}
	if data["CustomerName"] != "王小明" {
		t.Errorf("CustomerName = %v", data["CustomerName"])
	}
	items, ok := data["Items"].([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("Items = %#v", data["Items"])
	}
	if name := items[0].(map[string]any)["ItemName"]; name != "筆 & 紙" {
		t.Errorf("ItemName = %v", name)
	}
	if data[ecpay.FieldMerchantID] != ecpaytest.MerchantID {
		t.Errorf("MerchantID = %v", data[ecpay.FieldMerchantID])
	}
}

func TestClient_ValidationStopsRequest(t *testing.T) {
	srv := ecpaytest.EchoServer(t)
	client := ecpay.NewClient(srv.URL, nil)

	op := ecpaytest.NewIssue(ecpaytest.MerchantID, ecpaytest.HashKey, ecpaytest.HashIV)
	if _, err := client.Execute(context.Background(), op); err == nil {
		t.Error("Execute() should fail without RelateNumber")
	}
}

func TestTranscript_RoundTrip_JSON(t *testing.T) {
	testTranscriptRoundTrip(t, json.New())
}

func TestTranscript_RoundTrip_YAML(t *testing.T) {
	testTranscriptRoundTrip(t, yaml.New())
}

func TestTranscript_RoundTrip_MessagePack(t *testing.T) {
	testTranscriptRoundTrip(t, msgpack.New())
}

func TestTranscript_RoundTrip_BSON(t *testing.T) {
	testTranscriptRoundTrip(t, bson.New())
}

func testTranscriptRoundTrip(t *testing.T, c ecpay.Codec) {
	t.Helper()

	srv := ecpaytest.EchoServer(t)
	op := ecpaytest.NewIssue(ecpaytest.MerchantID, ecpaytest.HashKey, ecpaytest.HashIV)
	op.Set("RelateNumber", "TEST123")
	op.Set("CustomerEmail", "alice@example.com")

	envelope, err := op.Envelope()
	if err != nil {
		t.Fatalf("Envelope() error: %v", err)
	}
	resp, err := ecpay.NewClient(srv.URL, nil).Execute(context.Background(), op)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	// Issue supplies its own mask rules.
	tr, err := ecpay.NewTranscript("issue", op, envelope, resp.DecodedData(), nil)
	if err != nil {
		t.Fatalf("NewTranscript() error: %v", err)
	}

	raw, err := tr.Marshal(c)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	restored, err := ecpay.UnmarshalTranscript(c, raw)
	if err != nil {
		t.Fatalf("UnmarshalTranscript() error: %v", err)
	}

	if restored.ID != tr.ID || restored.Fingerprint != tr.Fingerprint {
		t.Errorf("restored %q/%q, want %q/%q", restored.ID, restored.Fingerprint, tr.ID, tr.Fingerprint)
	}
	if restored.Response["CustomerEmail"] != "a***@example.com" {
		t.Errorf("Response CustomerEmail = %v", restored.Response["CustomerEmail"])
	}

	// The stored envelope still decrypts with the merchant keys.
	if !ecpaytest.TestEncoder(t).VerifyResponse(restored.Envelope) {
		t.Error("restored envelope does not decrypt")
	}
}
