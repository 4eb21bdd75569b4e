package replay

import (
	"math"
	"strconv"
	"strings"
)

// Verb is a navigator command.
type Verb string

const (
	VerbNone    Verb = ""        // empty input line
	VerbNext    Verb = "NEXT"    // advance n ticks
	VerbBack    Verb = "BACK"    // retreat n ticks
	VerbStart   Verb = "START"   // first tick
	VerbEnd     Verb = "END"     // last tick
	VerbGoto    Verb = "GOTO"    // 1-based tick index
	VerbClear   Verb = "CLEAR"   // clear the display
	VerbHelp    Verb = "HELP"    // list commands
	VerbQuit    Verb = "QUIT"    // leave the session
	VerbUnknown Verb = "UNKNOWN" // anything else
)

var verbAliases = map[string]Verb{
	"NEXT":  VerbNext,
	"N":     VerbNext,
	"BACK":  VerbBack,
	"B":     VerbBack,
	"START": VerbStart,
	"S":     VerbStart,
	"END":   VerbEnd,
	"E":     VerbEnd,
	"GOTO":  VerbGoto,
	"G":     VerbGoto,
	"CLEAR": VerbClear,
	"C":     VerbClear,
	"HELP":  VerbHelp,
	"H":     VerbHelp,
	"?":     VerbHelp,
	"QUIT":  VerbQuit,
	"Q":     VerbQuit,
}

// Command is one parsed input line.
type Command struct {
	Verb  Verb
	Steps int // always >= 1
}

// ParseCommand parses an input line. The verb is case-insensitive; an
// optional second token is the step count, defaulting to 1. Counts that
// are missing, non-numeric or below 1 become 1.
func ParseCommand(line string) Command {
	fields := strings.Fields(strings.ToUpper(line))
	if len(fields) == 0 {
		return Command{Verb: VerbNone, Steps: 1}
	}

	verb, ok := verbAliases[fields[0]]
	if !ok {
		verb = VerbUnknown
	}

	steps := 1
	if len(fields) > 1 {
		if n, err := strconv.Atoi(fields[1]); err == nil && n > 1 {
			steps = n
		} else if err != nil && isDigits(fields[1]) {
			// Out of int range; the cursor clamps anyway.
			steps = math.MaxInt
		}
	}
	return Command{Verb: verb, Steps: steps}
}

func isDigits(s string) bool {
	s = strings.TrimPrefix(s, "+")
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

const helpText = `Commands:
  NEXT|N [n]     advance n ticks (default 1)
  BACK|B [n]     go back n ticks (default 1)
  START|S        first tick
  END|E          last tick
  GOTO|G n       jump to tick n (1-based)
  CLEAR|C        clear the screen
  HELP|H|?       show this help
  QUIT|Q         exit`
