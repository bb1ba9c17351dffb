package ecpay

import (
	"strings"
	"unicode"
)

// MaskType represents a known data format with masking rules.
type MaskType string

const (
	MaskEmail      MaskType = "email"      // alice@example.com -> a***@example.com
	MaskPhone      MaskType = "phone"      // 0912345678 -> 09*****678
	MaskCard       MaskType = "card"       // 4311952222222222 -> 431195******2222
	MaskName       MaskType = "name"       // 王小明 -> 王*明
	MaskIdentifier MaskType = "identifier" // A123456789 -> A1******89
	MaskRedact     MaskType = "redact"     // anything -> [REDACTED]
)

// Masker applies content-aware masking.
type Masker interface {
	// Mask applies masking to the value.
	Mask(value string) string
}

// IsValidMaskType reports whether t has a built-in masker.
func IsValidMaskType(t MaskType) bool {
	_, ok := builtinMaskers()[t]
	return ok
}

// MaskerFor returns the built-in masker for t.
func MaskerFor(t MaskType) (Masker, bool) {
	m, ok := builtinMaskers()[t]
	return m, ok
}

// MaskPayload returns a copy of p with every string value whose key has a
// rule masked. Nested maps and lists are walked; keys match at any depth.
func MaskPayload(p Payload, rules map[string]MaskType) Payload {
	if len(rules) == 0 {
		return p.Clone()
	}
	maskers := builtinMaskers()
	out, _ := maskValue(map[string]any(p), "", rules, maskers).(map[string]any)
	return Payload(out)
}

func maskValue(v any, key string, rules map[string]MaskType, maskers map[MaskType]Masker) any {
	switch t := v.(type) {
	case Payload:
		return maskValue(map[string]any(t), key, rules, maskers)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = maskValue(e, k, rules, maskers)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = maskValue(e, key, rules, maskers)
		}
		return out
	case []map[string]any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = maskValue(e, key, rules, maskers)
		}
		return out
	case string:
		if m, ok := maskers[rules[key]]; ok {
			return m.Mask(t)
		}
		return t
	default:
		return v
	}
}

// emailMasker keeps the first character of the local part and the domain.
type emailMasker struct{}

// EmailMasker returns a masker for email addresses.
func EmailMasker() Masker {
	return &emailMasker{}
}

func (m *emailMasker) Mask(value string) string {
	at := strings.LastIndex(value, "@")
	if at < 1 {
		return strings.Repeat("*", len(value))
	}
	return string([]rune(value)[:1]) + "***" + value[at:]
}

// phoneMasker keeps the first two and last three digits.
type phoneMasker struct{}

// PhoneMasker returns a masker for phone numbers.
func PhoneMasker() Masker {
	return &phoneMasker{}
}

func (m *phoneMasker) Mask(value string) string {
	digits := extractDigits(value)
	if len(digits) < 6 {
		return strings.Repeat("*", len(value))
	}
	return digits[:2] + strings.Repeat("*", len(digits)-5) + digits[len(digits)-3:]
}

// cardMasker keeps the issuer prefix and the last four digits.
type cardMasker struct{}

// CardMasker returns a masker for card numbers.
// Numbers of 13 digits or more keep the first six and last four; shorter
// values keep only the last four.
func CardMasker() Masker {
	return &cardMasker{}
}

func (m *cardMasker) Mask(value string) string {
	digits := extractDigits(value)
	switch {
	case len(digits) < 4:
		return strings.Repeat("*", len(value))
	case len(digits) < 13:
		return strings.Repeat("*", len(digits)-4) + digits[len(digits)-4:]
	default:
		return digits[:6] + strings.Repeat("*", len(digits)-10) + digits[len(digits)-4:]
	}
}

// nameMasker masks the inner runes of each word.
type nameMasker struct{}

// NameMasker returns a masker for personal names.
// Each word keeps its first rune, and its last rune when longer than two.
func NameMasker() Masker {
	return &nameMasker{}
}

func (m *nameMasker) Mask(value string) string {
	words := strings.Fields(value)
	for i, word := range words {
		r := []rune(word)
		switch len(r) {
		case 1:
			words[i] = "*"
		case 2:
			words[i] = string(r[0]) + "*"
		default:
			words[i] = string(r[0]) + strings.Repeat("*", len(r)-2) + string(r[len(r)-1])
		}
	}
	return strings.Join(words, " ")
}

// identifierMasker keeps two characters at each end.
type identifierMasker struct{}

// IdentifierMasker returns a masker for national IDs, tax IDs and carrier
// numbers.
func IdentifierMasker() Masker {
	return &identifierMasker{}
}

func (m *identifierMasker) Mask(value string) string {
	r := []rune(value)
	if len(r) <= 4 {
		return strings.Repeat("*", len(r))
	}
	return string(r[:2]) + strings.Repeat("*", len(r)-4) + string(r[len(r)-2:])
}

// redactMasker replaces the whole value.
type redactMasker struct{}

// RedactMasker returns a masker that replaces the value with [REDACTED].
func RedactMasker() Masker {
	return &redactMasker{}
}

func (m *redactMasker) Mask(string) string {
	return "[REDACTED]"
}

// extractDigits returns only the digit characters from a string.
func extractDigits(s string) string {
	var digits strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) && r < unicode.MaxASCII {
			digits.WriteRune(r)
		}
	}
	return digits.String()
}

// builtinMaskers returns the default masker registry.
func builtinMaskers() map[MaskType]Masker {
	return map[MaskType]Masker{
		MaskEmail:      EmailMasker(),
		MaskPhone:      PhoneMasker(),
		MaskCard:       CardMasker(),
		MaskName:       NameMasker(),
		MaskIdentifier: IdentifierMasker(),
		MaskRedact:     RedactMasker(),
	}
}
