package replay

import (
	"bufio"
	"fmt"
	"io"

	"github.com/delta/tickreplay/internal/logging"
	"github.com/delta/tickreplay/internal/timeline"
)

// prompt is written before every command read.
const prompt = "> "

// Session drives a cursor over a loaded log from line commands.
type Session struct {
	log      *Log
	cursor   *timeline.Cursor
	replayer *Replayer
	logger   *logging.Logger
}

// NewSession creates a session positioned at the first tick.
func NewSession(log *Log, replayer *Replayer, logger *logging.Logger) *Session {
	if logger == nil {
		logger = logging.New()
	}
	return &Session{
		log:      log,
		cursor:   timeline.NewCursor(log.Ticks),
		replayer: replayer,
		logger:   logger.WithComponent("session"),
	}
}

// Cursor exposes the session's navigation state.
func (s *Session) Cursor() *timeline.Cursor {
	return s.cursor
}

// Execute applies one command and renders the result. It reports whether
// the session should end.
func (s *Session) Execute(cmd Command) (quit bool) {
	out := s.replayer.output

	if s.navigate(cmd) {
		s.replayer.Render(s.cursor)
		return false
	}

	switch cmd.Verb {
	case VerbNone:
	case VerbClear:
		s.replayer.Clear()
	case VerbHelp:
		fmt.Fprintln(out, helpText)
	case VerbQuit:
		return true
	default:
		fmt.Fprintln(out, "Unknown command.")
	}
	return false
}

// navigate applies a cursor-moving verb. It reports false for verbs that
// leave the cursor alone.
func (s *Session) navigate(cmd Command) bool {
	from := s.cursor.Position()

	switch cmd.Verb {
	case VerbNext:
		s.cursor.Advance(cmd.Steps)
	case VerbBack:
		s.cursor.Retreat(cmd.Steps)
	case VerbStart:
		s.cursor.Start()
	case VerbEnd:
		s.cursor.End()
	case VerbGoto:
		s.Goto(cmd.Steps)
	default:
		return false
	}

	s.logger.Navigate(string(cmd.Verb), from, s.cursor.Position())
	return true
}

// Run reads commands from in until QUIT or end of input.
func (s *Session) Run(in io.Reader) error {
	out := s.replayer.output
	s.replayer.Greet(s.log)

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 4096), 1024*1024)

	fmt.Fprint(out, prompt)
	for scanner.Scan() {
		if s.Execute(ParseCommand(scanner.Text())) {
			return nil
		}
		fmt.Fprint(out, prompt)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read command: %w", err)
	}
	fmt.Fprintln(out)
	return nil
}

// Goto positions the cursor at a 1-based tick index without rendering.
func (s *Session) Goto(index int) {
	if index < 1 {
		index = 1
	}
	s.cursor.Seek(index - 1)
}
