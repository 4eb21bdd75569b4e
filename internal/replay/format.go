package replay

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"github.com/delta/tickreplay/internal/gamelog"
)

// formatEvent writes one diagnostic record of a tick.
func (r *Replayer) formatEvent(event gamelog.Record) {
	tag := r.styles.kindStyle(event.Kind).Render(fmt.Sprintf("[%s]", event.Kind))

	var text string
	switch event.Kind {
	case gamelog.KindMove:
		text = event.First()
	case gamelog.KindWarn, gamelog.KindError, gamelog.KindDebug:
		text = event.Text()
	default:
		text = r.styles.dim.Render(event.Text())
	}

	line := tag
	if text != "" {
		line += " " + text
	}
	if r.verbosity >= 1 && event.Elapsed != "" {
		line += " " + r.styles.dim.Render("("+event.Elapsed+")")
	}

	fmt.Fprintln(r.output, r.wrap(line))
}

// wrap word-wraps a line to the configured width. Continuation lines are
// indented by two spaces.
func (r *Replayer) wrap(line string) string {
	if r.width <= 0 {
		return line
	}
	wrapped := wordwrap.String(line, r.width)
	lines := strings.Split(wrapped, "\n")
	for i := 1; i < len(lines); i++ {
		lines[i] = "  " + lines[i]
	}
	return strings.Join(lines, "\n")
}
