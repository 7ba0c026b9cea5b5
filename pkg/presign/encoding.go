package presign

import (
	"net/url"
	"strings"
)

const upperHex = "0123456789ABCDEF"

// EscapeSegment codifica según RFC 3986: solo A-Z a-z 0-9 - . _ ~ quedan literales.
func EscapeSegment(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperHex[c>>4])
		b.WriteByte(upperHex[c&0x0F])
	}
	return b.String()
}

// EncodeKey codifica cada segmento de la key por separado y conserva los "/".
func EncodeKey(key string) string {
	segments := strings.Split(key, "/")
	for i, seg := range segments {
		segments[i] = EscapeSegment(seg)
	}
	return strings.Join(segments, "/")
}

// DecodeKey inverso de EncodeKey.
func DecodeKey(encoded string) (string, error) {
	segments := strings.Split(encoded, "/")
	for i, seg := range segments {
		dec, err := url.PathUnescape(seg)
		if err != nil {
			return "", err
		}
		segments[i] = dec
	}
	return strings.Join(segments, "/"), nil
}

func isUnreserved(c byte) bool {
	switch {
	case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z', '0' <= c && c <= '9':
		return true
	case c == '-', c == '.', c == '_', c == '~':
		return true
	}
	return false
}
