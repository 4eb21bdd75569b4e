package replay

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/delta/tickreplay/internal/gamelog"
	"github.com/delta/tickreplay/internal/logging"
	"github.com/delta/tickreplay/internal/timeline"
)

func TestLoad_Sample(t *testing.T) {
	log := loadSample(t)

	if len(log.Ticks) != 2 {
		t.Fatalf("expected 2 ticks, got %d", len(log.Ticks))
	}
	if log.Records != 8 {
		t.Errorf("expected 8 records, got %d", log.Records)
	}
	if log.Discarded != 1 {
		t.Errorf("expected 1 discarded record, got %d", log.Discarded)
	}
	if log.Events() != 5 {
		t.Errorf("expected 5 events, got %d", log.Events())
	}
	if log.Ticks[1].Line != 5 {
		t.Errorf("expected second tick on line 5, got %d", log.Ticks[1].Line)
	}
}

func TestLoad_Zstd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt.zst")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	enc, err := zstd.NewWriter(f)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := enc.Write([]byte(sampleLog)); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	f.Close()

	log, err := Load(context.Background(), path, quietLogger())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(log.Ticks) != 2 || log.Discarded != 1 {
		t.Errorf("unexpected log: %d ticks, %d discarded", len(log.Ticks), log.Discarded)
	}
}

func TestLoad_CRLF(t *testing.T) {
	content := strings.ReplaceAll(sampleLog, "\n", "\r\n")
	log, err := Load(context.Background(), writeLog(t, content), quietLogger())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(log.Ticks) != 2 {
		t.Errorf("expected 2 ticks, got %d", len(log.Ticks))
	}
}

func TestLoad_Malformed(t *testing.T) {
	content := strings.Join([]string{
		`{"typ":"VIEW","msg":[{"tick":1}]}`,
		`{"typ":"WARN","msg":["ok"]}`,
		``,
		`{"typ":"WARN","msg":`,
	}, "\n")

	var logBuf bytes.Buffer
	logger := logging.New()
	logger.SetOutput(&logBuf)

	log, err := Load(context.Background(), writeLog(t, content), logger)
	if err == nil {
		t.Fatal("expected error")
	}
	if log != nil {
		t.Error("expected no partial result")
	}
	if !errors.Is(err, gamelog.ErrMalformedRecord) {
		t.Errorf("expected ErrMalformedRecord, got %v", err)
	}
	var mre *timeline.MalformedRecordError
	if !errors.As(err, &mre) || mre.Line != 4 {
		t.Errorf("expected malformed line 4, got %v", err)
	}
	if !strings.Contains(logBuf.String(), "load_failed") {
		t.Errorf("expected load_failed log line, got %q", logBuf.String())
	}
}

func TestLoad_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.txt")
	_, err := Load(context.Background(), path, quietLogger())
	if !errors.Is(err, ErrMissingInput) {
		t.Fatalf("expected ErrMissingInput, got %v", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("expected path in error, got %v", err)
	}
}

func TestLoad_Empty(t *testing.T) {
	log, err := Load(context.Background(), writeLog(t, ""), quietLogger())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(log.Ticks) != 0 || log.Records != 0 || log.Discarded != 0 {
		t.Errorf("expected empty log, got %+v", log)
	}
}

func TestLoad_RecordsSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	loadSample(t)

	names := map[string]bool{}
	for _, span := range recorder.Ended() {
		names[span.Name()] = true
	}
	if !names["replay.load"] || !names["timeline.segment"] {
		t.Errorf("expected load and segment spans, got %v", names)
	}
}
