package jtdvalidate

// Package jtdvalidate drives JSON Typedef validation over a stream of
// JSON instances:
//
// - Resolution of validation limits (max depth, max errors, quiet) into one immutable Options value
// - A pluggable Engine capability (parse schema / check structure / validate instance)
// - A strictly sequential driver loop: one instance at a time, in stream order
// - Canonicalization of error paths into RFC 6901 JSON Pointers, rendered as error indicators
//
// Design policy:
// - Keep only public APIs in the root package; put backends under typedef/ and source/.
// - The driver never names a concrete engine; the CLI under cmd/jtd-validate wires one in.
// - Ordinary validation errors are values, never Go errors; everything fatal is a *FatalError.
//
// Typical usage:
//
//	engine := typedef.Engine()
//	schema, err := jtdvalidate.IngestSchema(engine, schemaReader)
//	driver := jtdvalidate.NewDriver(engine, opts, os.Stdout, jtdvalidate.FormatLines)
//	res, err := driver.Run(schema, json.NewStream(instanceReader))
