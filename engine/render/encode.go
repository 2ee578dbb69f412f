// Package render serializes the request model into either an HTTP request
// description or client-library source text, and offers CLI/raw-HTTP
// formatters over the former. Grounded on the teacher's
// engine/builders/postgres/builders.go — hand-built strings assembled with
// fmt.Sprintf/strings.Join rather than a templating library, the same idiom
// this package uses to build PostgREST query strings and client source text
// instead of raw SQL.
package render

import "strings"

// unescaped is the URL-encoding whitelist (SPEC_FULL.md §6): characters the
// HTTP renderer leaves bare rather than percent-encoding, because PostgREST
// query syntax uses them structurally (list/negation/operator punctuation).
const unescaped = "*(),:!>-[]"

// EncodeQueryValue percent-encodes s for use as a query-string key or value,
// except for the characters in the unescaped whitelist.
func EncodeQueryValue(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case isUnreservedByte(c), strings.IndexByte(unescaped, c) >= 0:
			b.WriteByte(c)
		default:
			b.WriteByte('%')
			b.WriteString(hexDigits(c))
		}
	}
	return b.String()
}

func isUnreservedByte(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	case c == '-' || c == '_' || c == '.' || c == '~':
		return true
	default:
		return false
	}
}

const hextable = "0123456789ABCDEF"

func hexDigits(c byte) string {
	return string([]byte{hextable[c>>4], hextable[c&0x0f]})
}
