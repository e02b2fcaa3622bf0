package jtdvalidate

import "io"

// Schema is the opaque, immutable schema value produced by an Engine. It is
// built once per run and never mutated afterwards.
type Schema interface {
	// CheckStructure reports whether the schema is structurally sound:
	// resolvable refs, legal keyword combinations, and so on. The diagnostic
	// comes straight from the engine.
	CheckStructure() error
}

// Engine is the validation capability the driver consumes. Any
// implementation providing the parse / check-structure / validate triple is
// substitutable without changing the driver.
type Engine interface {
	// ParseSchema deserializes exactly one schema document from r.
	ParseSchema(r io.Reader) (Schema, error)

	// Validate type-checks one instance against the schema, honoring
	// opt.MaxDepth and opt.MaxErrors. It returns zero or more validation
	// errors for a well-formed run; fatal conditions (recursion limit hit,
	// internal failure) come back as an error instead.
	Validate(schema Schema, instance any, opt Options) ([]ValidationError, error)
}

// ValidationError locates one schema violation: raw, unescaped path
// segments in root-to-leaf order. An empty slice addresses the document
// root.
type ValidationError struct {
	InstancePath []string
	SchemaPath   []string
}

// InstanceSource yields parsed JSON documents one at a time. Next returns
// io.EOF once the stream is cleanly exhausted; a malformed document comes
// back as a *ParseError. Sources are forward-only and need not be
// restartable.
type InstanceSource interface {
	Next() (any, error)
}

// IngestSchema reads exactly one schema document through the engine and
// verifies its structure. It must succeed before any instance is read; a
// malformed schema never partially validates instances.
func IngestSchema(engine Engine, r io.Reader) (Schema, error) {
	schema, err := engine.ParseSchema(r)
	if err != nil {
		if _, ok := AsFatal(err); ok {
			return nil, err
		}
		return nil, Fatalf(CodeSchemaParse, err, "failed to parse schema")
	}
	if err := schema.CheckStructure(); err != nil {
		if _, ok := AsFatal(err); ok {
			return nil, err
		}
		return nil, Fatalf(CodeSchemaInvalid, err, "invalid schema")
	}
	return schema, nil
}
