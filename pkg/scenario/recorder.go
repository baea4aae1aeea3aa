package scenario

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

// Recorder collects the per-tick entity state lines into an ACMI-style
// stream: a `#<time>` header per tick followed by one line per entity,
// with `-uid` removals and explosion markers passed through verbatim.
type Recorder struct {
	RunID uuid.UUID

	out  io.Writer
	echo bool

	ticks      int
	lines      int
	removals   int
	explosions int
}

// NewRecorder writes the stream to out. With echo set, notable events are
// also mirrored to the console in color.
func NewRecorder(out io.Writer, echo bool) *Recorder {
	return &Recorder{
		RunID: uuid.New(),
		out:   out,
		echo:  echo,
	}
}

// BeginTick opens a new tick block at the given simulation time.
func (r *Recorder) BeginTick(simTime float64) {
	fmt.Fprintf(r.out, "#%.2f\n", simTime)
	r.ticks++
}

// Record appends one entity line to the current tick block. Empty lines
// are dropped so terminal entities with nothing to emit cost nothing.
func (r *Recorder) Record(line string) {
	if line == "" {
		return
	}
	fmt.Fprintln(r.out, line)
	r.lines++
	if strings.HasPrefix(line, "-") {
		r.removals++
	}
	if strings.Contains(line, "Type=Misc+Explosion") {
		r.explosions++
		if r.echo {
			color.Red("  boom: %s", strings.SplitN(line, "\n", 2)[0][1:])
		}
	}
}

// Event mirrors a scenario event to the console.
func (r *Recorder) Event(format string, args ...interface{}) {
	if r.echo {
		color.Cyan("  "+format, args...)
	}
}

// Summary returns a one-line account of the run.
func (r *Recorder) Summary() string {
	return fmt.Sprintf("run %s: %d ticks, %d lines, %d removals, %d explosions",
		r.RunID, r.ticks, r.lines, r.removals, r.explosions)
}
