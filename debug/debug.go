package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Plan      bool
	Integrate bool
	Events    bool
	Txn       bool
}

var d *debug

func init() {
	d = &debug{}
	d.Plan = boolEnv("YDOC_DEBUG_PLAN")
	d.Integrate = boolEnv("YDOC_DEBUG_INTEGRATE")
	d.Events = boolEnv("YDOC_DEBUG_EVENTS")
	d.Txn = boolEnv("YDOC_DEBUG_TXN")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Plan() bool {
	return d.Plan
}
func Integrate() bool {
	return d.Integrate
}
func Events() bool {
	return d.Events
}
func Txn() bool {
	return d.Txn
}
