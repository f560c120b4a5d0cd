package trolleyyard

import (
	"fmt"
	"io"
	"os"
)

// debugLogger writes diagnostic lines when debug mode is enabled.
type debugLogger struct {
	enabled bool
	out     io.Writer
}

func (l *debugLogger) logf(format string, args ...any) {
	if !l.enabled {
		return
	}
	out := l.out
	if out == nil {
		out = os.Stderr
	}
	_, _ = fmt.Fprintf(out, "[trolleyyard] "+format+"\n", args...)
}

// SetDebugMode enables or disables debug mode. When enabled, rejected
// toggles, pick misses, and catalog rebuilds are logged, and the
// single-active-trolley invariant is checked after every toggle (a
// violation panics).
func (c *Coordinator) SetDebugMode(enabled bool) {
	c.log.enabled = enabled
}

// SetLogOutput sets the destination for debug lines. Nil means stderr.
func (c *Coordinator) SetLogOutput(w io.Writer) {
	c.log.out = w
}

// debugCheckActive panics if more than one bay is out or if an out bay is
// not the active trolley.
func debugCheckActive(c *Coordinator) {
	var out []*Unit
	for _, u := range c.catalog.UnitsOfKind(KindTrolleyBay) {
		if u.IsOpen() {
			out = append(out, u)
		}
	}
	if len(out) > 1 {
		panic(fmt.Sprintf("trolleyyard debug: %d bays out at once (%q, %q)", len(out), out[0].Name, out[1].Name))
	}
	if len(out) == 1 && c.active != out[0] {
		panic(fmt.Sprintf("trolleyyard debug: bay %q is out but active trolley is %v", out[0].Name, c.active))
	}
}
