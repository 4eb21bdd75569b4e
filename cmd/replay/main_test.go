package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

const testLog = `{"typ":"DEBUG","msg":["boot"]}
{"typ":"VIEW","msg":[{"tick":1,"width":2,"height":1}]}
{"typ":"WARN","msg":["careful"]}
{"typ":"VIEW","msg":[{"tick":2,"width":2,"height":1}]}
`

func parse(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kongVars())
	if err != nil {
		t.Fatal(err)
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		t.Fatal(err)
	}
	return &cli, ctx
}

func TestViewCmd_DefaultCommand(t *testing.T) {
	cli, ctx := parse(t, "abc123")

	if ctx.Command() != "view <log>" {
		t.Errorf("expected view command, got %q", ctx.Command())
	}
	if cli.View.Log != "abc123" {
		t.Errorf("expected log 'abc123', got %q", cli.View.Log)
	}
	if cli.View.Start != 1 {
		t.Errorf("expected start=1, got %d", cli.View.Start)
	}
}

func TestViewCmd_Flags(t *testing.T) {
	cli, _ := parse(t, "--log-level", "debug", "view", "-vv", "--no-tui", "--start", "5", "--width", "72", "--no-color", "match.log")

	if cli.LogLevel != "debug" {
		t.Errorf("expected log level 'debug', got %q", cli.LogLevel)
	}
	if cli.View.Verbose != 2 || !cli.View.NoTUI || cli.View.Start != 5 || cli.View.Width != 72 || !cli.View.NoColor {
		t.Errorf("unexpected view flags: %+v", cli.View)
	}
}

func TestSummaryCmd_MultipleLogs(t *testing.T) {
	cli, _ := parse(t, "summary", "-f", "yaml", "a.log", "b.log")

	if len(cli.Summary.Logs) != 2 || cli.Summary.Format != "yaml" {
		t.Errorf("unexpected summary args: %+v", cli.Summary)
	}
}

func TestExportCmd_RequiresDB(t *testing.T) {
	var cli CLI
	parser, err := kong.New(&cli)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := parser.Parse([]string{"export", "a.log"}); err == nil {
		t.Error("expected error without --db")
	}
}

// runIn executes the CLI inside a fresh working directory.
func runIn(t *testing.T, stdin string, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(context.Background(), args, strings.NewReader(stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

func setupWorkdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	chdirForTest(t, dir)
	sub := filepath.Join(dir, ".submissions", "sub1")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, "log.txt"), []byte(testLog), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestRun_NoArgument(t *testing.T) {
	setupWorkdir(t)
	code, _, stderr := runIn(t, "")
	if code != 1 {
		t.Errorf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr, "error:") {
		t.Errorf("expected error on stderr, got %q", stderr)
	}
}

func TestRun_MissingLog(t *testing.T) {
	setupWorkdir(t)
	code, _, stderr := runIn(t, "", "ghost")
	if code != 1 {
		t.Errorf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr, filepath.Join(".submissions", "ghost", "log.txt")) {
		t.Errorf("expected attempted path in error, got %q", stderr)
	}
}

func TestRun_MalformedLog(t *testing.T) {
	dir := setupWorkdir(t)
	bad := filepath.Join(dir, "bad.log")
	os.WriteFile(bad, []byte("{\"typ\":\"VIEW\",\"msg\":[{}]}\nnot json\n"), 0644)

	code, stdout, stderr := runIn(t, "quit\n", bad)
	if code != 1 {
		t.Errorf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr, "line 2") {
		t.Errorf("expected line number in error, got %q", stderr)
	}
	if stdout != "" {
		t.Errorf("expected no navigation output, got %q", stdout)
	}
}

func TestRun_ViewSubmission(t *testing.T) {
	setupWorkdir(t)
	code, stdout, stderr := runIn(t, "next\nquit\n", "sub1")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d (stderr %q)", code, stderr)
	}
	if !strings.Contains(stdout, "Loaded 2 ticks.") || !strings.Contains(stdout, "[Tick 2/2]") {
		t.Errorf("unexpected stdout:\n%s", stdout)
	}
}

func TestRun_ViewStartFlag(t *testing.T) {
	setupWorkdir(t)
	code, stdout, _ := runIn(t, "back\n", "view", "--start", "2", "sub1")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(stdout, "[Tick 1/2]") {
		t.Errorf("expected BACK from tick 2 to land on tick 1:\n%s", stdout)
	}
}

func TestRun_DebugLoggingGoesToStderr(t *testing.T) {
	setupWorkdir(t)
	code, stdout, stderr := runIn(t, "quit\n", "--log-level", "debug", "sub1")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(stderr, "load_complete") || !strings.Contains(stderr, "trace=") {
		t.Errorf("expected load logging with trace id on stderr, got %q", stderr)
	}
	if strings.Contains(stdout, "load_complete") {
		t.Error("log lines leaked into stdout")
	}
}

func TestRun_InvalidLogLevel(t *testing.T) {
	setupWorkdir(t)
	if code, _, _ := runIn(t, "", "--log-level", "loud", "sub1"); code != 1 {
		t.Errorf("expected exit 1, got %d", code)
	}
}

func TestRun_SummaryJSON(t *testing.T) {
	setupWorkdir(t)
	code, stdout, stderr := runIn(t, "", "summary", "--format", "json", "sub1")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d (stderr %q)", code, stderr)
	}
	var stats map[string]interface{}
	if err := json.Unmarshal([]byte(stdout), &stats); err != nil {
		t.Fatalf("summary is not JSON: %v\n%s", err, stdout)
	}
	if stats["ticks"] != float64(2) || stats["discarded"] != float64(1) {
		t.Errorf("unexpected summary: %v", stats)
	}
}

func TestRun_SummaryDefaultFormatFromConfig(t *testing.T) {
	dir := setupWorkdir(t)
	os.WriteFile(filepath.Join(dir, "tickreplay.toml"), []byte("[export]\ndefault_format = \"yaml\"\n"), 0644)

	code, stdout, _ := runIn(t, "", "summary", "sub1")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(stdout, "ticks: 2") {
		t.Errorf("expected yaml summary, got:\n%s", stdout)
	}
}

func TestRun_Export(t *testing.T) {
	dir := setupWorkdir(t)
	dbPath := filepath.Join(dir, "out.db")

	code, stdout, stderr := runIn(t, "", "export", "sub1", "--db", dbPath)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d (stderr %q)", code, stderr)
	}
	if !strings.Contains(stdout, "Exported 2 ticks and 1 events") {
		t.Errorf("unexpected stdout %q", stdout)
	}
	if _, err := os.Stat(dbPath); err != nil {
		t.Errorf("expected database file: %v", err)
	}
}

func TestRun_Version(t *testing.T) {
	setupWorkdir(t)
	code, stdout, _ := runIn(t, "", "version")
	if code != 0 || !strings.HasPrefix(stdout, "tickreplay version dev") {
		t.Errorf("unexpected version output %q (exit %d)", stdout, code)
	}
}

// chdirForTest changes the working directory for the duration of the test
// and restores it on cleanup (equivalent of testing.T.Chdir, Go 1.24+).
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
