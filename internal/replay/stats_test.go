package replay

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestComputeStats(t *testing.T) {
	stats := ComputeStats(loadSample(t))

	if stats.Ticks != 2 || stats.Records != 8 || stats.Events != 5 || stats.Discarded != 1 {
		t.Errorf("unexpected counts: %+v", stats)
	}
	if stats.FirstTick == nil || *stats.FirstTick != 1 || stats.LastTick == nil || *stats.LastTick != 2 {
		t.Errorf("unexpected tick range: %v..%v", stats.FirstTick, stats.LastTick)
	}
	want := map[string]int{"WARN": 1, "MOVE": 1, "ERROR": 1, "STATE": 1, "DEBUG": 1}
	for kind, n := range want {
		if stats.EventsByKind[kind] != n {
			t.Errorf("%s: expected %d, got %d", kind, n, stats.EventsByKind[kind])
		}
	}
	if stats.Busiest == nil || stats.Busiest.Index != 2 || stats.Busiest.Tick != 2 || stats.Busiest.Events != 3 {
		t.Errorf("unexpected busiest tick: %+v", stats.Busiest)
	}
}

func TestComputeStats_Empty(t *testing.T) {
	stats := ComputeStats(&Log{Path: "empty"})
	if stats.Ticks != 0 || stats.FirstTick != nil || stats.Busiest != nil {
		t.Errorf("unexpected stats for empty log: %+v", stats)
	}
}

func TestWriteStats_Formats(t *testing.T) {
	stats := []*Stats{ComputeStats(loadSample(t))}

	var text bytes.Buffer
	if err := WriteStats(&text, stats, FormatText, false); err != nil {
		t.Fatalf("text: %v", err)
	}
	for _, want := range []string{"Ticks:       2", "Sim ticks:   1..2", "Discarded:   1 (before first VIEW)", "Events by kind:"} {
		if !strings.Contains(text.String(), want) {
			t.Errorf("expected %q in text output:\n%s", want, text.String())
		}
	}

	var yamlOut bytes.Buffer
	if err := WriteStats(&yamlOut, stats, "YAML", false); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	var fromYAML Stats
	if err := yaml.Unmarshal(yamlOut.Bytes(), &fromYAML); err != nil {
		t.Fatalf("yaml output does not parse: %v", err)
	}
	if fromYAML.Ticks != 2 || fromYAML.EventsByKind["WARN"] != 1 {
		t.Errorf("unexpected yaml stats: %+v", fromYAML)
	}

	var jsonOut bytes.Buffer
	if err := WriteStats(&jsonOut, stats, FormatJSON, false); err != nil {
		t.Fatalf("json: %v", err)
	}
	var fromJSON map[string]interface{}
	if err := json.Unmarshal(jsonOut.Bytes(), &fromJSON); err != nil {
		t.Fatalf("json output does not parse: %v", err)
	}
	if fromJSON["discarded"] != float64(1) {
		t.Errorf("unexpected json stats: %v", fromJSON)
	}

	if err := WriteStats(&bytes.Buffer{}, stats, "xml", false); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestSummarizer_MultipleFiles(t *testing.T) {
	first := writeLog(t, sampleLog)
	second := writeLog(t, `{"typ":"VIEW","msg":[{"tick":9}]}`)

	stats, err := NewSummarizer(quietLogger(), nil).SummarizeFiles(context.Background(), []string{first, second})
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if len(stats) != 2 || stats[1].Ticks != 1 || *stats[1].FirstTick != 9 {
		t.Errorf("unexpected stats: %+v", stats)
	}

	var out bytes.Buffer
	if err := WriteStats(&out, stats, FormatJSON, false); err != nil {
		t.Fatalf("json: %v", err)
	}
	var list []map[string]interface{}
	if err := json.Unmarshal(out.Bytes(), &list); err != nil || len(list) != 2 {
		t.Errorf("expected a JSON list of 2, got %s (err %v)", out.String(), err)
	}
}

func TestSummarizer_ResolveFailure(t *testing.T) {
	s := NewSummarizer(quietLogger(), func(arg string) (string, error) {
		return ResolveLogPath(arg, t.TempDir(), "log.txt")
	})
	if _, err := s.SummarizeFiles(context.Background(), []string{"missing"}); err == nil {
		t.Error("expected error for unresolved log")
	}
}
