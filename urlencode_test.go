package ecpay

import "testing"

func TestFormURLEncode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"abcXYZ019", "abcXYZ019"},
		{"a-b_c.d", "a-b_c.d"},
		{"a b", "a+b"},
		{"~!*()", "%7E%21%2A%28%29"},
		{`{"k":"v"}`, "%7B%22k%22%3A%22v%22%7D"},
		{"台", "%E5%8F%B0"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := FormURLEncode(tt.in); got != tt.want {
			t.Errorf("FormURLEncode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTransliterateURLEncoded(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"%2d%5f%2e%21%2a%28%29", "-_.!*()"},
		// Replacement is case-sensitive: uppercase escapes are left alone.
		{"%21%2A%28%29", "!%2A()"},
		{"%2D%5F%2E", "%2D%5F%2E"},
		{"plain", "plain"},
	}

	for _, tt := range tests {
		if got := TransliterateURLEncoded(tt.in); got != tt.want {
			t.Errorf("TransliterateURLEncoded(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDotNetURLEncode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a!b", "a!b"},
		{"(x)", "(x)"},
		{"*", "%2A"},
		{"a b", "a+b"},
	}

	for _, tt := range tests {
		if got := DotNetURLEncode(tt.in); got != tt.want {
			t.Errorf("DotNetURLEncode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormURLDecode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a+b", "a b"},
		{"%7B%22k%22%7D", `{"k"}`},
		{"%7b", "{"},
		{"100%", "100%"},
		{"%zz", "%zz"},
		{"%4", "%4"},
		{"!*()", "!*()"},
		{"%E5%8F%B0", "台"},
	}

	for _, tt := range tests {
		if got := FormURLDecode(tt.in); got != tt.want {
			t.Errorf("FormURLDecode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormURLDecode_ReversesDotNetEncode(t *testing.T) {
	inputs := []string{
		`{"ItemName":"Apple (15) - 2*3!"}`,
		"spaces and + plus",
		"中文品名",
	}

	for _, in := range inputs {
		if got := FormURLDecode(DotNetURLEncode(in)); got != in {
			t.Errorf("FormURLDecode(DotNetURLEncode(%q)) = %q", in, got)
		}
	}
}
