package debug

import (
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Driver bool
	Stream bool
}

var d *debug

func init() {
	d = &debug{}
	d.Driver = boolEnv("JTD_VALIDATE_DEBUG_DRIVER")
	d.Stream = boolEnv("JTD_VALIDATE_DEBUG_STREAM")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Driver() bool {
	return d.Driver
}
func Stream() bool {
	return d.Stream
}

// Logf writes one trace line to stderr, keeping stdout free for
// indicators.
func Logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
