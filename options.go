package jtdvalidate

import "strconv"

// Options carries the resolved validation limits for one run. Zero means
// unbounded for both limits. It is immutable after ResolveOptions.
type Options struct {
	MaxDepth  int
	MaxErrors int
	Quiet     bool
}

// ResolveOptions derives effective limits from raw flag values. Empty
// strings mean the flag was absent. Precedence for max errors: an explicit
// value always wins; absent and quiet means 1 (nothing will be printed, one
// error is enough to fail the run); absent and not quiet means unbounded.
// Max depth has no coupling to other flags.
func ResolveOptions(maxDepth, maxErrors string, quiet bool) (Options, error) {
	opt := Options{Quiet: quiet}
	if maxDepth != "" {
		n, err := parseLimit(maxDepth)
		if err != nil {
			return Options{}, Fatalf(CodeInvalidOption, err, "failed to parse max depth: %q", maxDepth)
		}
		opt.MaxDepth = n
	}
	switch {
	case maxErrors != "":
		n, err := parseLimit(maxErrors)
		if err != nil {
			return Options{}, Fatalf(CodeInvalidOption, err, "failed to parse max errors: %q", maxErrors)
		}
		opt.MaxErrors = n
	case quiet:
		opt.MaxErrors = 1
	}
	return opt, nil
}

func parseLimit(s string) (int, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
