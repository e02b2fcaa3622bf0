// Package json streams top-level JSON documents from a single byte
// source. Documents are parsed back-to-back with no required separator,
// so concatenated JSON on stdin works the same as a whitespace-separated
// file.
package json

import (
	"io"

	gojson "github.com/goccy/go-json"

	jtdvalidate "github.com/jsontypedef/json-typedef-validate"
	"github.com/jsontypedef/json-typedef-validate/internal/debug"
)

// Stream yields one fully parsed document per Next call. It is
// forward-only, not restartable, and buffers no more of the input than the
// current document needs.
type Stream struct {
	dec  *gojson.Decoder
	docs int
}

var _ jtdvalidate.InstanceSource = (*Stream)(nil)

// NewStream wraps r. The reader may be non-seekable (stdin). Numbers
// decode as float64, matching the validation engine's number model.
func NewStream(r io.Reader) *Stream {
	return &Stream{dec: gojson.NewDecoder(r)}
}

// Next returns the next document, io.EOF at clean end of input, or a
// *jtdvalidate.ParseError locating the malformed token.
func (s *Stream) Next() (any, error) {
	var v any
	if err := s.dec.Decode(&v); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, &jtdvalidate.ParseError{Offset: s.dec.InputOffset(), Cause: err}
	}
	s.docs++
	if debug.Stream() {
		debug.Logf("stream: document %d ends at offset %d", s.docs, s.dec.InputOffset())
	}
	return v, nil
}

// Offset reports how many input bytes have been consumed so far.
func (s *Stream) Offset() int64 { return s.dec.InputOffset() }
