package ecpay

import (
	"reflect"
	"testing"
)

func issueCtor(m, k, iv string) Operation { return newTestIssue(m, k, iv) }

func TestCatalog_RegisterLookup(t *testing.T) {
	c := NewCatalog()
	c.Register("invoice/Operations/Issue", issueCtor)

	for _, name := range []string{"invoice/Operations/Issue", "INVOICE/operations/issue"} {
		ctor, registered, ok := c.Lookup(name)
		if !ok {
			t.Fatalf("Lookup(%q) missed", name)
		}
		if registered != "invoice/Operations/Issue" {
			t.Errorf("Lookup(%q) name = %q", name, registered)
		}
		if ctor("2000132", testHashKey, testHashIV).RequestPath() != "/B2CInvoice/Issue" {
			t.Error("constructor returned the wrong operation")
		}
	}

	if c.Has("invoice/Operations/Void") {
		t.Error("Has() should miss unregistered names")
	}
}

func TestCatalog_NamesAndReset(t *testing.T) {
	c := NewCatalog()
	c.Register("b/Queries/Z", issueCtor)
	c.Register("a/Operations/A", issueCtor)

	want := []string{"a/Operations/A", "b/Queries/Z"}
	if got := c.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}

	c.Reset()
	if len(c.Names()) != 0 {
		t.Errorf("Names() after Reset = %v", c.Names())
	}
}

func TestDefaultCatalog(t *testing.T) {
	t.Cleanup(DefaultCatalog().Reset)

	Register("test/Operations/Issue", issueCtor)
	if !DefaultCatalog().Has("test/operations/issue") {
		t.Error("Register() should write to the default catalog")
	}
}
