// Package main is the entry point for the tickreplay CLI.
// It steps through the tick log of a finished match.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"

	"github.com/delta/tickreplay/internal/config"
	"github.com/delta/tickreplay/internal/logging"
	"github.com/delta/tickreplay/internal/replay"
)

// Build-time variables
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// app carries what every command needs. It is bound into kong's Run.
type app struct {
	ctx    context.Context
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	cfg    *config.Config
	logger *logging.Logger
}

// run parses args and executes the selected command, returning the exit
// code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("tickreplay"),
		kong.Description("Post-hoc replay inspector for match tick logs."),
		kong.Writers(stdout, stderr),
		kongVars(),
	)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	cfg, err := config.Load(cli.Config)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	logger, err := newLogger(cli.LogLevel, cfg, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	a := &app{
		ctx:    ctx,
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		cfg:    cfg,
		logger: logger,
	}
	if err := kctx.Run(a); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// newLogger builds the diagnostic logger. The flag wins over config and
// environment.
func newLogger(flagLevel string, cfg *config.Config, w io.Writer) (*logging.Logger, error) {
	name := cfg.Logging.Level
	if flagLevel != "" {
		name = flagLevel
	}
	level, err := logging.ParseLevel(name)
	if err != nil {
		return nil, err
	}

	logger := logging.New()
	logger.SetOutput(w)
	logger.SetLevel(level)
	return logger.WithTraceID(uuid.NewString()), nil
}

// resolve maps a log argument to a file using the input config.
func (a *app) resolve(arg string) (string, error) {
	return replay.ResolveLogPath(arg, a.cfg.Input.SubmissionsDir, a.cfg.Input.LogName)
}

// Run loads the log and starts the navigator.
func (c *ViewCmd) Run(a *app) error {
	path, err := a.resolve(c.Log)
	if err != nil {
		return err
	}
	log, err := replay.Load(a.ctx, path, a.logger)
	if err != nil {
		return err
	}

	interactive := isTerminal(a.stdout)
	width := a.cfg.Display.Width
	if c.Width > 0 {
		width = c.Width
	}
	r := replay.New(a.stdout, max(c.Verbose, boolToInt(a.cfg.Display.Verbose)),
		replay.WithWidth(width),
		replay.WithColor(a.cfg.Display.Color && !c.NoColor && interactive),
		replay.WithClearScreen(interactive),
		replay.WithLogger(a.logger),
	)

	s := replay.NewSession(log, r, a.logger)
	s.Goto(c.Start)

	if a.cfg.Display.TUI && !c.NoTUI && interactive && isTerminal(a.stdin) {
		return replay.RunTUI(s, path)
	}
	return s.Run(a.stdin)
}

// Run prints statistics for every log.
func (c *SummaryCmd) Run(a *app) error {
	format := c.Format
	if format == "" {
		format = a.cfg.Export.DefaultFormat
	}

	stats, err := replay.NewSummarizer(a.logger, a.resolve).SummarizeFiles(a.ctx, c.Logs)
	if err != nil {
		return err
	}
	return replay.WriteStats(a.stdout, stats, format, a.cfg.Display.Color && isTerminal(a.stdout))
}

// Run exports the log into the SQLite database.
func (c *ExportCmd) Run(a *app) error {
	path, err := a.resolve(c.Log)
	if err != nil {
		return err
	}
	log, err := replay.Load(a.ctx, path, a.logger)
	if err != nil {
		return err
	}

	exporter, err := replay.NewSQLiteExporter(c.DB)
	if err != nil {
		return err
	}
	defer exporter.Close()

	id, err := exporter.Export(a.ctx, log)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Exported %d ticks and %d events from %s to %s (log id %d)\n",
		len(log.Ticks), log.Events(), path, c.DB, id)
	return nil
}

// Run prints the build information.
func (c *VersionCmd) Run(a *app) error {
	fmt.Fprintf(a.stdout, "tickreplay version %s (commit: %s, built: %s)\n", version, commit, buildTime)
	return nil
}

// isTerminal checks if the given stream is a terminal.
func isTerminal(v interface{}) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
