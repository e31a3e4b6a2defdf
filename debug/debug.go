// Package debug provides env-var gated diagnostics for the render
// pipeline. All gates are read once at startup.
package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Eval     bool
	Scope    bool
	Write    bool
	Template bool
}

var d *debug

func init() {
	d = &debug{}
	d.Eval = boolEnv("SPROUT_DEBUG_EVAL")
	d.Scope = boolEnv("SPROUT_DEBUG_SCOPE")
	d.Write = boolEnv("SPROUT_DEBUG_WRITE")
	d.Template = boolEnv("SPROUT_DEBUG_TEMPLATE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Eval() bool {
	return d.Eval
}
func Scope() bool {
	return d.Scope
}
func Write() bool {
	return d.Write
}
func Template() bool {
	return d.Template
}
