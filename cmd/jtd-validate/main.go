package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	jtdvalidate "github.com/jsontypedef/json-typedef-validate"
	streamjson "github.com/jsontypedef/json-typedef-validate/source/json"
	"github.com/jsontypedef/json-typedef-validate/typedef"
)

const synopsis = `jtd-validate [options] <schema> [instances] - validate JSON against a JSON Typedef schema

The schema argument is a file path, or - for stdin. Instances are read
from the optional second argument, or from stdin when it is absent; at
most one of the two may use stdin. Instances are concatenated JSON
documents, validated one at a time in input order.

Error indicators are written to stdout, one JSON object per line (or one
array per failing instance with -a). Diagnostics go to stderr. Exit
status is 0 when every instance is valid, 1 when any instance failed
validation, and 2 on usage errors.`

type mainConfig struct {
	*cli.Command
	Quiet     bool   `cli:"name=quiet aliases=q desc='suppress error indicator output'"`
	MaxDepth  string `cli:"name=max-depth desc='max schema ref depth to follow before erroring (0 = unbounded)'"`
	MaxErrors string `cli:"name=max-errors desc='max errors to report per instance (0 = unbounded)'"`
	Array     bool   `cli:"name=array aliases=a desc='emit one JSON array of indicators per failing instance'"`
	Yaml      bool   `cli:"name=yaml desc='parse the schema document as YAML'"`
}

func main() {
	cli.MainContext(context.Background(), MainCommand())
}

// MainCommand builds the single jtd-validate command.
func MainCommand() *cli.Command {
	cfg := &mainConfig{}
	opts, _ := cli.StructOpts(cfg)
	return cli.NewCommandAt(&cfg.Command, "jtd-validate").
		WithSynopsis(synopsis).
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *mainConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("%w: expected <schema> [instances]", cli.ErrUsage)
	}
	schemaArg := args[0]
	instancesArg := "-"
	if len(args) == 2 {
		instancesArg = args[1]
	}
	if schemaArg == "-" && instancesArg == "-" {
		return fmt.Errorf("%w: schema and instances cannot both come from stdin", cli.ErrUsage)
	}

	opt, err := jtdvalidate.ResolveOptions(cfg.MaxDepth, cfg.MaxErrors, cfg.Quiet)
	if err != nil {
		return fail(err)
	}

	schemaReader, closeSchema, err := open(cc, schemaArg)
	if err != nil {
		return fail(err)
	}
	defer closeSchema()

	schemaSrc := schemaReader
	if cfg.Yaml || isYAMLFile(schemaArg) {
		data, err := io.ReadAll(schemaReader)
		if err != nil {
			return fail(fmt.Errorf("error reading schema: %w", err))
		}
		jsonData, err := typedef.SchemaFromYAML(data)
		if err != nil {
			return fail(jtdvalidate.Fatalf(jtdvalidate.CodeSchemaParse, err, "failed to parse schema"))
		}
		schemaSrc = bytes.NewReader(jsonData)
	}

	engine := typedef.Engine()
	schema, err := jtdvalidate.IngestSchema(engine, schemaSrc)
	if err != nil {
		return fail(err)
	}

	instReader, closeInstances, err := open(cc, instancesArg)
	if err != nil {
		return fail(err)
	}
	defer closeInstances()

	format := jtdvalidate.FormatLines
	if cfg.Array {
		format = jtdvalidate.FormatArray
	}
	driver := jtdvalidate.NewDriver(engine, opt, cc.Out, format)
	res, err := driver.Run(schema, streamjson.NewStream(instReader))
	if err != nil {
		return fail(err)
	}
	if !res.Ok() {
		os.Exit(1)
	}
	return nil
}

// open resolves "-" to the context's stdin; anything else is a file path.
func open(cc *cli.Context, arg string) (io.Reader, func() error, error) {
	if arg == "-" {
		return cc.In, func() error { return nil }, nil
	}
	f, err := os.Open(arg)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open %q: %w", arg, err)
	}
	return f, f.Close, nil
}

func isYAMLFile(arg string) bool {
	if arg == "-" {
		return false
	}
	lower := strings.ToLower(arg)
	return strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml")
}

// fail prints one diagnostic on stderr and terminates. Validation
// indicators go to stdout; this is the other stream.
func fail(err error) error {
	if isatty.IsTerminal(os.Stderr.Fd()) {
		fmt.Fprintln(os.Stderr, color.RedString("jtd-validate: %v", err))
	} else {
		fmt.Fprintf(os.Stderr, "jtd-validate: %v\n", err)
	}
	os.Exit(1)
	return nil
}
