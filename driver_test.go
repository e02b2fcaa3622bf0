package jtdvalidate_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	jtdvalidate "github.com/jsontypedef/json-typedef-validate"
)

type fakeSchema struct {
	structErr error
}

func (f fakeSchema) CheckStructure() error { return f.structErr }

type fakeEngine struct {
	parseErr error
	schema   jtdvalidate.Schema
	validate func(instance any, opt jtdvalidate.Options) ([]jtdvalidate.ValidationError, error)
}

func (f fakeEngine) ParseSchema(r io.Reader) (jtdvalidate.Schema, error) {
	if f.parseErr != nil {
		return nil, f.parseErr
	}
	if f.schema != nil {
		return f.schema, nil
	}
	return fakeSchema{}, nil
}

func (f fakeEngine) Validate(_ jtdvalidate.Schema, instance any, opt jtdvalidate.Options) ([]jtdvalidate.ValidationError, error) {
	return f.validate(instance, opt)
}

type sliceSource struct {
	docs     []any
	err      error
	consumed int
}

func (s *sliceSource) Next() (any, error) {
	if s.consumed < len(s.docs) {
		v := s.docs[s.consumed]
		s.consumed++
		return v, nil
	}
	if s.err != nil {
		return nil, s.err
	}
	return nil, io.EOF
}

// requireString mimics the type-form "string" outcome: a root-level error
// with empty instance and schema paths for anything but a string.
func requireString(instance any, _ jtdvalidate.Options) ([]jtdvalidate.ValidationError, error) {
	if _, ok := instance.(string); ok {
		return nil, nil
	}
	return []jtdvalidate.ValidationError{{}}, nil
}

func TestDriverRun_ReportsFailingInstancesInOrder(t *testing.T) {
	out := &bytes.Buffer{}
	engine := fakeEngine{validate: requireString}
	driver := jtdvalidate.NewDriver(engine, jtdvalidate.Options{}, out, jtdvalidate.FormatLines)

	src := &sliceSource{docs: []any{"abc", float64(123), "def"}}
	res, err := driver.Run(fakeSchema{}, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Instances != 3 || res.Failed != 1 {
		t.Fatalf("want 3 instances / 1 failed, got %+v", res)
	}
	if res.Ok() {
		t.Fatalf("run with a failing instance must not be Ok")
	}
	want := `{"instancePath":"","schemaPath":""}` + "\n"
	if out.String() != want {
		t.Fatalf("want %q, got %q", want, out.String())
	}
}

func TestDriverRun_QuietSuppressesOutputButFails(t *testing.T) {
	out := &bytes.Buffer{}
	engine := fakeEngine{validate: requireString}
	opt := jtdvalidate.Options{Quiet: true, MaxErrors: 1}
	driver := jtdvalidate.NewDriver(engine, opt, out, jtdvalidate.FormatLines)

	res, err := driver.Run(fakeSchema{}, &sliceSource{docs: []any{float64(1)}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("quiet run wrote %d bytes: %q", out.Len(), out.String())
	}
	if res.Ok() {
		t.Fatalf("quiet run must still mark failure")
	}
}

func TestDriverRun_ArrayFormat(t *testing.T) {
	out := &bytes.Buffer{}
	engine := fakeEngine{validate: func(any, jtdvalidate.Options) ([]jtdvalidate.ValidationError, error) {
		return []jtdvalidate.ValidationError{
			{InstancePath: []string{"a"}, SchemaPath: []string{"properties", "a"}},
			{InstancePath: []string{"b"}, SchemaPath: []string{"properties", "b"}},
		}, nil
	}}
	driver := jtdvalidate.NewDriver(engine, jtdvalidate.Options{}, out, jtdvalidate.FormatArray)

	if _, err := driver.Run(fakeSchema{}, &sliceSource{docs: []any{map[string]any{}}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `[{"instancePath":"/a","schemaPath":"/properties/a"},` +
		`{"instancePath":"/b","schemaPath":"/properties/b"}]` + "\n"
	if out.String() != want {
		t.Fatalf("want %q, got %q", want, out.String())
	}
}

func TestDriverRun_LineFormatWritesOnePerError(t *testing.T) {
	out := &bytes.Buffer{}
	engine := fakeEngine{validate: func(any, jtdvalidate.Options) ([]jtdvalidate.ValidationError, error) {
		return []jtdvalidate.ValidationError{
			{InstancePath: []string{"x/y"}, SchemaPath: []string{"properties", "x/y"}},
			{InstancePath: []string{"z~"}, SchemaPath: []string{"properties", "z~"}},
		}, nil
	}}
	driver := jtdvalidate.NewDriver(engine, jtdvalidate.Options{}, out, jtdvalidate.FormatLines)

	if _, err := driver.Run(fakeSchema{}, &sliceSource{docs: []any{nil}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("want 2 indicator lines, got %d: %q", len(lines), out.String())
	}
	if lines[0] != `{"instancePath":"/x~1y","schemaPath":"/properties/x~1y"}` {
		t.Fatalf("unexpected first line: %s", lines[0])
	}
	if lines[1] != `{"instancePath":"/z~0","schemaPath":"/properties/z~0"}` {
		t.Fatalf("unexpected second line: %s", lines[1])
	}
}

func TestDriverRun_FatalStopsStream(t *testing.T) {
	fatal := jtdvalidate.Fatalf(jtdvalidate.CodeMaxDepthExceeded, nil, "failed to validate instance")
	engine := fakeEngine{validate: func(any, jtdvalidate.Options) ([]jtdvalidate.ValidationError, error) {
		return nil, fatal
	}}
	driver := jtdvalidate.NewDriver(engine, jtdvalidate.Options{}, &bytes.Buffer{}, jtdvalidate.FormatLines)

	src := &sliceSource{docs: []any{float64(1), float64(2)}}
	res, err := driver.Run(fakeSchema{}, src)
	fe, ok := jtdvalidate.AsFatal(err)
	if !ok || fe.Code != jtdvalidate.CodeMaxDepthExceeded {
		t.Fatalf("want %s, got %v", jtdvalidate.CodeMaxDepthExceeded, err)
	}
	if src.consumed != 1 {
		t.Fatalf("fatal must stop the stream after 1 instance, consumed %d", src.consumed)
	}
	if res.Instances != 1 {
		t.Fatalf("want 1 instance counted, got %+v", res)
	}
}

func TestDriverRun_InstanceParseErrorIsFatal(t *testing.T) {
	engine := fakeEngine{validate: requireString}
	driver := jtdvalidate.NewDriver(engine, jtdvalidate.Options{}, &bytes.Buffer{}, jtdvalidate.FormatLines)

	src := &sliceSource{
		docs: []any{"ok"},
		err:  &jtdvalidate.ParseError{Offset: 42, Cause: errors.New("invalid character")},
	}
	res, err := driver.Run(fakeSchema{}, src)
	fe, ok := jtdvalidate.AsFatal(err)
	if !ok || fe.Code != jtdvalidate.CodeInstanceParse {
		t.Fatalf("want %s, got %v", jtdvalidate.CodeInstanceParse, err)
	}
	if fe.Offset != 42 {
		t.Fatalf("parse offset lost: %+v", fe)
	}
	if res.Instances != 1 || res.Failed != 0 {
		t.Fatalf("instances before the bad document still count: %+v", res)
	}
}

func TestIngestSchema_ParseFailure(t *testing.T) {
	engine := fakeEngine{parseErr: errors.New("unexpected end of JSON input")}
	_, err := jtdvalidate.IngestSchema(engine, strings.NewReader("{"))
	fe, ok := jtdvalidate.AsFatal(err)
	if !ok || fe.Code != jtdvalidate.CodeSchemaParse {
		t.Fatalf("want %s, got %v", jtdvalidate.CodeSchemaParse, err)
	}
}

func TestIngestSchema_StructuralFailure(t *testing.T) {
	engine := fakeEngine{schema: fakeSchema{structErr: errors.New("reference to undefined definition")}}
	_, err := jtdvalidate.IngestSchema(engine, strings.NewReader("{}"))
	fe, ok := jtdvalidate.AsFatal(err)
	if !ok || fe.Code != jtdvalidate.CodeSchemaInvalid {
		t.Fatalf("want %s, got %v", jtdvalidate.CodeSchemaInvalid, err)
	}
}

func TestIngestSchema_Ok(t *testing.T) {
	schema, err := jtdvalidate.IngestSchema(fakeEngine{}, strings.NewReader("{}"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if schema == nil {
		t.Fatalf("expected a schema")
	}
}

func TestDriverRun_RunsAreIdempotent(t *testing.T) {
	run := func() (string, jtdvalidate.Result) {
		out := &bytes.Buffer{}
		driver := jtdvalidate.NewDriver(fakeEngine{validate: requireString}, jtdvalidate.Options{}, out, jtdvalidate.FormatLines)
		res, err := driver.Run(fakeSchema{}, &sliceSource{docs: []any{"a", float64(1), "b", float64(2)}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return out.String(), res
	}
	out1, res1 := run()
	out2, res2 := run()
	if out1 != out2 || res1 != res2 {
		t.Fatalf("identical inputs must produce identical output: %q vs %q", out1, out2)
	}
}
