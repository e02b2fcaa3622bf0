package jtdvalidate

import (
	"fmt"
	"strings"
)

// Pointer renders raw path segments as an RFC 6901 JSON Pointer. The empty
// path denotes the document root and renders as "", not "/".
func Pointer(segments []string) string {
	if len(segments) == 0 {
		return ""
	}
	b := &strings.Builder{}
	for _, seg := range segments {
		b.WriteByte('/')
		b.WriteString(escapeSegment(seg))
	}
	return b.String()
}

func escapeSegment(s string) string {
	// '~' before '/' so introduced "~1" sequences are not re-escaped
	s = strings.ReplaceAll(s, "~", "~0")
	return strings.ReplaceAll(s, "/", "~1")
}

// Segments is the exact inverse of Pointer. "" yields the empty path; any
// other pointer must start with '/' and contain only valid "~0"/"~1"
// escapes.
func Segments(pointer string) ([]string, error) {
	if pointer == "" {
		return nil, nil
	}
	if pointer[0] != '/' {
		return nil, fmt.Errorf("json pointer must be empty or start with '/': %q", pointer)
	}
	parts := strings.Split(pointer[1:], "/")
	out := make([]string, len(parts))
	for i, part := range parts {
		seg, err := unescapeSegment(part)
		if err != nil {
			return nil, fmt.Errorf("json pointer %q: %w", pointer, err)
		}
		out[i] = seg
	}
	return out, nil
}

func unescapeSegment(s string) (string, error) {
	if !strings.ContainsRune(s, '~') {
		return s, nil
	}
	b := &strings.Builder{}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '~' {
			b.WriteByte(c)
			continue
		}
		if i+1 >= len(s) {
			return "", fmt.Errorf("segment %q ends with a bare '~'", s)
		}
		i++
		switch s[i] {
		case '0':
			b.WriteByte('~')
		case '1':
			b.WriteByte('/')
		default:
			return "", fmt.Errorf("segment %q has invalid escape ~%c", s, s[i])
		}
	}
	return b.String(), nil
}
