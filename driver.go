package jtdvalidate

import (
	"errors"
	"io"

	"github.com/jsontypedef/json-typedef-validate/internal/debug"
)

// Driver runs the validation loop: one instance at a time, in stream order,
// against an immutable schema. There is no shared mutable state across
// instances beyond the accumulated Result.
type Driver struct {
	Engine   Engine
	Options  Options
	Reporter *Reporter
}

// NewDriver wires a driver with a reporter writing to out.
func NewDriver(engine Engine, opt Options, out io.Writer, format Format) *Driver {
	return &Driver{
		Engine:   engine,
		Options:  opt,
		Reporter: &Reporter{Out: out, Quiet: opt.Quiet, Format: format},
	}
}

// Result aggregates the run outcome.
type Result struct {
	Instances int // documents read from the stream
	Failed    int // documents with at least one validation error
}

// Ok reports a clean run: no instance produced errors.
func (r Result) Ok() bool { return r.Failed == 0 }

// Run consumes the instance stream until it is exhausted. Ordinary
// validation errors are reported per instance, in input order, and the
// stream continues; any fatal condition (malformed instance, recursion
// limit, engine failure, write failure) aborts immediately. The returned
// Result is valid either way and counts the work done so far.
func (d *Driver) Run(schema Schema, instances InstanceSource) (Result, error) {
	var res Result
	for {
		instance, err := instances.Next()
		if errors.Is(err, io.EOF) {
			return res, nil
		}
		if err != nil {
			return res, promoteParseError(err)
		}
		res.Instances++

		errs, err := d.Engine.Validate(schema, instance, d.Options)
		if err != nil {
			return res, err
		}
		if debug.Driver() {
			debug.Logf("driver: instance %d: %d validation errors", res.Instances, len(errs))
		}
		if len(errs) == 0 {
			continue
		}
		res.Failed++
		if err := d.Reporter.Report(errs); err != nil {
			return res, err
		}
	}
}

func promoteParseError(err error) error {
	if _, ok := AsFatal(err); ok {
		return err
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		fe := Fatalf(CodeInstanceParse, pe.Cause, "failed to parse instance")
		fe.Offset = pe.Offset
		return fe
	}
	return Fatalf(CodeInstanceParse, err, "failed to parse instance")
}
