package typedef

import (
	"fmt"

	jtd "github.com/jsontypedef/json-typedef-go"

	jtdvalidate "github.com/jsontypedef/json-typedef-validate"
)

// checkRoot walks a schema and reports the first structural violation per
// RFC 8927 sections 2.2 and 2.3, locating the offending sub-schema with
// a JSON Pointer. Form membership follows the library's nil-based
// signatures: a keyword that decoded to an empty map or slice still
// selects its form.
func checkRoot(root *jtd.Schema) error {
	c := &checker{root: root}
	for name, def := range root.Definitions {
		def := def
		if err := c.check(&def, false, []string{"definitions", name}); err != nil {
			return err
		}
	}
	return c.check(root, true, nil)
}

type checker struct {
	root *jtd.Schema
}

func (c *checker) check(s *jtd.Schema, isRoot bool, path []string) error {
	if !isRoot && s.Definitions != nil {
		return c.errf(path, "definitions may only appear at the top level")
	}

	forms := 0
	if s.Ref != nil {
		forms++
	}
	if s.Type != "" {
		forms++
	}
	if s.Enum != nil {
		forms++
	}
	if s.Elements != nil {
		forms++
	}
	if s.Properties != nil || s.OptionalProperties != nil {
		forms++
	}
	if s.Values != nil {
		forms++
	}
	if s.Discriminator != "" || s.Mapping != nil {
		forms++
	}
	if forms > 1 {
		return c.errf(path, "ambiguous schema form: at most one form keyword group may appear")
	}

	switch {
	case s.Ref != nil:
		if _, ok := c.root.Definitions[*s.Ref]; !ok {
			return c.errf(path, "reference to undefined definition %q", *s.Ref)
		}
	case s.Type != "":
		if !knownType(string(s.Type)) {
			return c.errf(path, "unknown type %q", string(s.Type))
		}
	case s.Enum != nil:
		if len(s.Enum) == 0 {
			return c.errf(path, "enum must not be empty")
		}
		seen := make(map[string]bool, len(s.Enum))
		for _, v := range s.Enum {
			if seen[v] {
				return c.errf(path, "duplicate enum value %q", v)
			}
			seen[v] = true
		}
	case s.Elements != nil:
		return c.check(s.Elements, false, child(path, "elements"))
	case s.Properties != nil || s.OptionalProperties != nil:
		for name := range s.Properties {
			if _, both := s.OptionalProperties[name]; both {
				return c.errf(path, "property %q is both required and optional", name)
			}
		}
		for name, sub := range s.Properties {
			sub := sub
			if err := c.check(&sub, false, child(path, "properties", name)); err != nil {
				return err
			}
		}
		for name, sub := range s.OptionalProperties {
			sub := sub
			if err := c.check(&sub, false, child(path, "optionalProperties", name)); err != nil {
				return err
			}
		}
	case s.Values != nil:
		return c.check(s.Values, false, child(path, "values"))
	case s.Discriminator != "" || s.Mapping != nil:
		if s.Discriminator == "" || s.Mapping == nil {
			return c.errf(path, "discriminator and mapping must appear together")
		}
		for tag, sub := range s.Mapping {
			sub := sub
			subPath := child(path, "mapping", tag)
			if sub.Nullable {
				return c.errf(subPath, "mapping schemas may not be nullable")
			}
			if sub.Properties == nil && sub.OptionalProperties == nil {
				return c.errf(subPath, "mapping schemas must be of the properties form")
			}
			if _, ok := sub.Properties[s.Discriminator]; ok {
				return c.errf(subPath, "mapping schema redefines discriminator %q", s.Discriminator)
			}
			if _, ok := sub.OptionalProperties[s.Discriminator]; ok {
				return c.errf(subPath, "mapping schema redefines discriminator %q", s.Discriminator)
			}
			if err := c.check(&sub, false, subPath); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *checker) errf(path []string, format string, args ...any) error {
	loc := jtdvalidate.Pointer(path)
	if loc == "" {
		loc = "(root)"
	}
	return fmt.Errorf("%s: %s", loc, fmt.Sprintf(format, args...))
}

func child(path []string, parts ...string) []string {
	out := make([]string, 0, len(path)+len(parts))
	out = append(out, path...)
	return append(out, parts...)
}

func knownType(t string) bool {
	switch t {
	case "boolean", "string", "timestamp",
		"float32", "float64",
		"int8", "uint8", "int16", "uint16", "int32", "uint32":
		return true
	}
	return false
}
