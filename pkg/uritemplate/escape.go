package uritemplate

import "strings"

const upperHex = "0123456789ABCDEF"

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '.', '_', '~':
		return true
	}
	return false
}

func isReserved(c byte) bool {
	return strings.IndexByte(":/?#[]@!$&'()*+,;=", c) >= 0
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
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

// isTriplet reports whether s[i:] starts with a pct-encoded octet.
func isTriplet(s string, i int) bool {
	return s[i] == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2])
}

// allows reports whether c passes unescaped under the class.
func (c CharClass) allows(b byte) bool {
	if isUnreserved(b) {
		return true
	}
	return c == ClassReservedPct && isReserved(b)
}

// escape percent-encodes every byte of s the class does not allow.
// ClassReservedPct keeps existing pct-encoded triplets intact.
func (c CharClass) escape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case c.allows(ch):
			b.WriteByte(ch)
		case c == ClassReservedPct && isTriplet(s, i):
			b.WriteString(s[i : i+3])
			i += 2
		default:
			b.WriteByte('%')
			b.WriteByte(upperHex[ch>>4])
			b.WriteByte(upperHex[ch&0x0f])
		}
	}
	return b.String()
}

// unescape decodes pct-encoded octets; malformed sequences are kept verbatim.
func unescape(s string) string {
	if strings.IndexByte(s, '%') < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if isTriplet(s, i) {
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// cut returns the longest prefix of an escaped string holding at most n
// class units, where a pct-encoded triplet counts as one unit. n <= 0 keeps s.
func (c CharClass) cut(s string, n int) string {
	if n <= 0 {
		return s
	}
	i := 0
	for units := 0; units < n && i < len(s); units++ {
		switch {
		case isTriplet(s, i):
			i += 3
		case c.allows(s[i]):
			i++
		default:
			return s[:i]
		}
	}
	return s[:i]
}
