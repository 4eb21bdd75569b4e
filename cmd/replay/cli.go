// Package main defines the CLI structure using kong.
package main

import "github.com/alecthomas/kong"

// CLI defines the command-line interface.
type CLI struct {
	Config   string `help:"Config file path (default: ./tickreplay.toml)"`
	LogLevel string `help:"Diagnostic log level (DEBUG, INFO, WARN, ERROR)"`

	View    ViewCmd    `cmd:"" default:"withargs" help:"Step through a match log tick by tick"`
	Summary SummaryCmd `cmd:"" help:"Show statistics for one or more match logs"`
	Export  ExportCmd  `cmd:"" help:"Write ticks and events of a match log to SQLite"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

// ViewCmd opens the navigator on a log.
type ViewCmd struct {
	Log     string `arg:"" help:"Log file path or submission id"`
	Verbose int    `short:"v" type:"counter" help:"Show producer elapsed stamps on events"`
	NoTUI   bool   `name:"no-tui" help:"Use the line prompt even on a terminal"`
	Start   int    `default:"1" help:"Tick to show first (1-based)"`
	Width   int    `help:"Wrap event lines at this width (overrides config)"`
	NoColor bool   `help:"Disable colour"`
}

// SummaryCmd prints statistics for logs.
type SummaryCmd struct {
	Logs   []string `arg:"" help:"Log file paths or submission ids"`
	Format string   `short:"f" help:"Output format: text, yaml or json (default from config)"`
}

// ExportCmd writes a log into SQLite.
type ExportCmd struct {
	Log string `arg:"" help:"Log file path or submission id"`
	DB  string `name:"db" short:"o" required:"" help:"SQLite database path"`
}

// VersionCmd shows version information.
type VersionCmd struct{}

// kongVars returns variables for kong (version info).
func kongVars() kong.Vars {
	return kong.Vars{
		"version": version,
	}
}
