package ecpay

import "strings"

// dotNetReplacer rewrites the escapes a .NET URL encoder leaves as literal
// characters. The match is case-sensitive.
var dotNetReplacer = strings.NewReplacer(
	"%2d", "-",
	"%5f", "_",
	"%2e", ".",
	"%21", "!",
	"%2a", "*",
	"%28", "(",
	"%29", ")",
)

const upperHex = "0123456789ABCDEF"

// TransliterateURLEncoded applies the .NET-compatible escape table to an
// already percent-encoded string.
func TransliterateURLEncoded(s string) string {
	return dotNetReplacer.Replace(s)
}

// DotNetURLEncode percent-encodes s and applies the .NET escape table.
func DotNetURLEncode(s string) string {
	return TransliterateURLEncoded(FormURLEncode(s))
}

// FormURLEncode encodes s the way form encoders do: letters, digits and
// "-_." are kept, space becomes '+', every other byte becomes %XX.
func FormURLEncode(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 3)

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case isUnreserved(c):
			b.WriteByte(c)
		case c == ' ':
			b.WriteByte('+')
		default:
			b.WriteByte('%')
			b.WriteByte(upperHex[c>>4])
			b.WriteByte(upperHex[c&0x0f])
		}
	}

	return b.String()
}

// FormURLDecode reverses FormURLEncode. It never fails: '+' becomes a space,
// valid %XX escapes are decoded and malformed escapes are copied as-is.
func FormURLDecode(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '+':
			b.WriteByte(' ')
		case c == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]):
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
		default:
			b.WriteByte(c)
		}
	}

	return b.String()
}

func isUnreserved(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') ||
		c == '-' || c == '_' || c == '.'
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
