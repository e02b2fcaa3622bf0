package jtdvalidate

import (
	"io"

	json "github.com/goccy/go-json"
)

// Format selects the indicator output convention. Both conventions appeared
// as the tool evolved; FormatLines is the default and matches the current
// contract.
type Format int

const (
	// FormatLines writes one indicator object per line.
	FormatLines Format = iota
	// FormatArray writes one JSON array of indicators per failing instance.
	FormatArray
)

// ErrorIndicator is the external rendering of a ValidationError: both paths
// as RFC 6901 JSON Pointers, in the standard JSON Typedef indicator shape.
type ErrorIndicator struct {
	InstancePath string `json:"instancePath"`
	SchemaPath   string `json:"schemaPath"`
}

// Indicators canonicalizes validation errors in order.
func Indicators(errs []ValidationError) []ErrorIndicator {
	out := make([]ErrorIndicator, len(errs))
	for i, e := range errs {
		out[i] = ErrorIndicator{
			InstancePath: Pointer(e.InstancePath),
			SchemaPath:   Pointer(e.SchemaPath),
		}
	}
	return out
}

// Reporter serializes the indicators for failing instances. It is a pure
// formatting sink: it decides output, never the run outcome.
type Reporter struct {
	Out    io.Writer
	Quiet  bool
	Format Format
}

// Report writes the indicators for one failing instance. Quiet suppresses
// all output regardless of count.
func (r *Reporter) Report(errs []ValidationError) error {
	if r.Quiet || len(errs) == 0 {
		return nil
	}
	indicators := Indicators(errs)
	if r.Format == FormatArray {
		return r.writeJSON(indicators)
	}
	for _, indicator := range indicators {
		if err := r.writeJSON(indicator); err != nil {
			return err
		}
	}
	return nil
}

func (r *Reporter) writeJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = r.Out.Write(data)
	return err
}
