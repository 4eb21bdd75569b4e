package replay

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/delta/tickreplay/internal/logging"
	"github.com/delta/tickreplay/internal/timeline"
)

// Replayer renders ticks of a loaded match log.
type Replayer struct {
	output    io.Writer
	verbosity int  // 0=normal, 1=verbose (elapsed stamps)
	width     int  // Wrap event lines at this width (0 = no wrapping)
	color     bool // Colourise output
	clear     bool // Clear the screen before each tick
	logger    *logging.Logger
	styles    palette
}

// ReplayerOption configures a Replayer.
type ReplayerOption func(*Replayer)

// WithWidth wraps event lines at the given width.
func WithWidth(width int) ReplayerOption {
	return func(r *Replayer) {
		if width < 0 {
			width = 0
		}
		r.width = width
	}
}

// WithColor enables or disables ANSI colour.
func WithColor(enabled bool) ReplayerOption {
	return func(r *Replayer) {
		r.color = enabled
	}
}

// WithClearScreen clears the terminal before every rendered tick.
func WithClearScreen(enabled bool) ReplayerOption {
	return func(r *Replayer) {
		r.clear = enabled
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger *logging.Logger) ReplayerOption {
	return func(r *Replayer) {
		r.logger = logger
	}
}

// New creates a new Replayer.
func New(output io.Writer, verbosity int, opts ...ReplayerOption) *Replayer {
	r := &Replayer{
		output:    output,
		verbosity: verbosity,
		color:     true,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logging.New()
	}
	r.logger = r.logger.WithComponent("replay")
	r.styles = newPalette(output, r.color)
	return r
}

// Render writes the tick under the cursor, or the empty-state message when
// the log holds no ticks.
func (r *Replayer) Render(c *timeline.Cursor) {
	tick, ok := c.Current()
	if !ok {
		fmt.Fprintf(r.output, "No tick %d data available.\n", c.Position())
		return
	}
	r.RenderTick(tick, c.Position(), c.Len())
}

// RenderTick writes one tick: snapshot, events and the position footer.
// index is 0-based.
func (r *Replayer) RenderTick(tick timeline.Tick, index, total int) {
	if r.clear {
		r.Clear()
	}
	r.logger.Debug("render", map[string]interface{}{
		"index":  index,
		"line":   tick.Line,
		"events": len(tick.Events),
	})
	if tick.Snapshot != nil {
		r.printState(tick.Snapshot)
	}
	for _, event := range tick.Events {
		r.formatEvent(event)
	}
	fmt.Fprintln(r.output)
	fmt.Fprintln(r.output, r.styles.dim.Render(fmt.Sprintf("[Tick %d/%d]", index+1, total)))
}

// Clear clears the display. It changes no navigation state and writes
// nothing unless screen clearing is enabled.
func (r *Replayer) Clear() {
	if !r.clear {
		return
	}
	out := termenv.NewOutput(r.output)
	out.ClearScreen()
}

// Greet writes the startup banner.
func (r *Replayer) Greet(log *Log) {
	fmt.Fprintf(r.output, "Loaded %d ticks.\n", len(log.Ticks))
	if log.Discarded > 0 {
		fmt.Fprintln(r.output, r.styles.dim.Render(
			fmt.Sprintf("(%d records before the first VIEW were skipped)", log.Discarded)))
	}
	fmt.Fprintln(r.output, "Commands: NEXT [n], BACK [n], START, END, GOTO n, CLEAR, HELP, QUIT")
	fmt.Fprintln(r.output)
}

// renderString renders the tick under the cursor into a string, without
// clearing the screen.
func (r *Replayer) renderString(c *timeline.Cursor) string {
	var buf strings.Builder
	oldOutput, oldClear := r.output, r.clear
	r.output, r.clear = &buf, false
	r.Render(c)
	r.output, r.clear = oldOutput, oldClear
	return buf.String()
}
