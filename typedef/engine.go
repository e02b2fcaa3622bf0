// Package typedef backs the driver with the JSON Typedef (RFC 8927)
// engine from jsontypedef/json-typedef-go: jtd.Schema as the schema
// model and jtd.Validate as the type-checking walk.
package typedef

import (
	"errors"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	jtd "github.com/jsontypedef/json-typedef-go"

	jtdvalidate "github.com/jsontypedef/json-typedef-validate"
)

type engine struct{}

// Engine returns the jtd-backed validation engine.
func Engine() jtdvalidate.Engine { return engine{} }

type schema struct {
	root jtd.Schema
}

// CheckStructure verifies RFC 8927 correctness. The library's own
// Validate is the authoritative gate; the walker reruns the rules only
// to locate the violation with a JSON Pointer.
func (s *schema) CheckStructure() error {
	err := s.root.Validate()
	if err == nil {
		return nil
	}
	if located := checkRoot(&s.root); located != nil {
		return located
	}
	return err
}

// ParseSchema deserializes exactly one JSON document into the schema
// model. Unknown keywords are rejected, as is trailing data after the
// document.
func (engine) ParseSchema(r io.Reader) (jtdvalidate.Schema, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var root jtd.Schema
	if err := dec.Decode(&root); err != nil {
		return nil, err
	}
	if err := dec.Decode(new(any)); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("trailing data after schema document")
	}
	return &schema{root: root}, nil
}

// SchemaFromYAML rewrites a YAML schema document as JSON so it can go
// through the normal ingestion path.
func SchemaFromYAML(data []byte) ([]byte, error) {
	out, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("failed to convert schema YAML: %w", err)
	}
	return out, nil
}

// Validate delegates to jtd.Validate. A hit recursion limit comes back as
// a CodeMaxDepthExceeded fatal; any other engine failure propagates
// untouched.
func (engine) Validate(s jtdvalidate.Schema, instance any, opt jtdvalidate.Options) ([]jtdvalidate.ValidationError, error) {
	ts, ok := s.(*schema)
	if !ok {
		return nil, fmt.Errorf("typedef: schema was not produced by this engine")
	}
	verrs, err := jtd.Validate(ts.root, instance,
		jtd.WithMaxDepth(opt.MaxDepth),
		jtd.WithMaxErrors(opt.MaxErrors),
	)
	if err != nil {
		if errors.Is(err, jtd.ErrMaxDepthExceeded) {
			return nil, jtdvalidate.Fatalf(jtdvalidate.CodeMaxDepthExceeded, err, "failed to validate instance")
		}
		return nil, err
	}
	out := make([]jtdvalidate.ValidationError, len(verrs))
	for i, ve := range verrs {
		out[i] = jtdvalidate.ValidationError{
			InstancePath: ve.InstancePath,
			SchemaPath:   ve.SchemaPath,
		}
	}
	return out, nil
}
