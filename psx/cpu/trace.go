package cpu

import (
	"log/slog"

	"github.com/valerio/go-psx/psx/bus"
)

// BIOS function-vector entry points the tracer watches (§4.2, §9:
// "observability, not behaviour").
const (
	biosVectorA uint32 = 0xA0
	biosVectorB uint32 = 0xB0
	biosVectorC uint32 = 0xC0

	ttyPutcharFunction uint32 = 0x3D
)

// Tracer is an optional, side-effect-only observer: it logs BIOS function
// calls, reassembles the TTY character stream the BIOS's putchar call
// produces, and logs breakpoint hits. It never influences execution.
type Tracer struct {
	ttyLine []byte

	// OnTTYLine, if set, is called with each completed TTY line instead of
	// just logging it.
	OnTTYLine func(line string)

	log *slog.Logger
}

// NewTracer creates a Tracer with logging enabled.
func NewTracer() *Tracer {
	return &Tracer{log: slog.Default()}
}

// observe runs after a step completes, inspecting the instruction that was
// just executed.
func (t *Tracer) observe(c *CPU, m *bus.Bus) {
	switch c.pcInstr {
	case biosVectorA, biosVectorB, biosVectorC:
		t.traceBIOSCall(c)
	}

	if c.pcInstr == biosVectorB && c.Reg(9) == ttyPutcharFunction {
		t.writeTTY(byte(c.Reg(4)))
	}

	if name, ok := c.Breakpoints[c.pcInstr]; ok {
		t.log.Debug("cpu: breakpoint hit", "pc", c.pcInstr, "name", name)
	}
}

func (t *Tracer) traceBIOSCall(c *CPU) {
	t.log.Debug("cpu: bios call", "vector", c.pcInstr, "function", c.Reg(9))
}

func (t *Tracer) writeTTY(ch byte) {
	if ch == '\n' || ch == '\r' {
		if len(t.ttyLine) > 0 {
			t.flushTTY()
		}
		return
	}
	t.ttyLine = append(t.ttyLine, ch)
}

func (t *Tracer) flushTTY() {
	line := string(t.ttyLine)
	if t.OnTTYLine != nil {
		t.OnTTYLine(line)
	} else {
		t.log.Info("tty", "line", line)
	}
	t.ttyLine = t.ttyLine[:0]
}
