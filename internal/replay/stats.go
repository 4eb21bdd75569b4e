package replay

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/delta/tickreplay/internal/gamelog"
)

// Summary output formats.
const (
	FormatText = "text"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Stats holds aggregate statistics for a loaded log.
type Stats struct {
	Path      string `json:"path" yaml:"path"`
	Ticks     int    `json:"ticks" yaml:"ticks"`
	Records   int    `json:"records" yaml:"records"`
	Events    int    `json:"events" yaml:"events"`
	Discarded int    `json:"discarded" yaml:"discarded"`

	// Simulation tick numbers of the first and last snapshot
	FirstTick *int `json:"first_tick,omitempty" yaml:"first_tick,omitempty"`
	LastTick  *int `json:"last_tick,omitempty" yaml:"last_tick,omitempty"`

	EventsByKind map[string]int `json:"events_by_kind" yaml:"events_by_kind"`
	Busiest      *BusiestTick   `json:"busiest_tick,omitempty" yaml:"busiest_tick,omitempty"`
}

// BusiestTick is the tick with the most events.
type BusiestTick struct {
	Index  int `json:"index" yaml:"index"` // 1-based position in the log
	Tick   int `json:"tick" yaml:"tick"`   // simulation tick number
	Events int `json:"events" yaml:"events"`
}

// ComputeStats calculates aggregate statistics for a log.
func ComputeStats(log *Log) *Stats {
	stats := &Stats{
		Path:         log.Path,
		Ticks:        len(log.Ticks),
		Records:      log.Records,
		Discarded:    log.Discarded,
		EventsByKind: make(map[string]int),
	}

	for i, tick := range log.Ticks {
		stats.Events += len(tick.Events)
		for _, event := range tick.Events {
			stats.EventsByKind[string(event.Kind)]++
		}

		if tick.Snapshot != nil {
			n := tick.Snapshot.Tick
			if stats.FirstTick == nil {
				stats.FirstTick = &n
			}
			stats.LastTick = &n
		}

		if len(tick.Events) > 0 && (stats.Busiest == nil || len(tick.Events) > stats.Busiest.Events) {
			stats.Busiest = &BusiestTick{Index: i + 1, Events: len(tick.Events)}
			if tick.Snapshot != nil {
				stats.Busiest.Tick = tick.Snapshot.Tick
			}
		}
	}

	return stats
}

// WriteStats writes stats in the given format.
func WriteStats(w io.Writer, stats []*Stats, format string, color bool) error {
	switch strings.ToLower(format) {
	case "", FormatText:
		for i, s := range stats {
			if i > 0 {
				fmt.Fprintln(w)
			}
			PrintStats(w, s, color)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		var v interface{} = stats
		if len(stats) == 1 {
			v = stats[0]
		}
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if len(stats) == 1 {
			return enc.Encode(stats[0])
		}
		return enc.Encode(stats)
	default:
		return fmt.Errorf("unknown summary format %q", format)
	}
}

// PrintStats outputs the statistics to the writer.
func PrintStats(w io.Writer, stats *Stats, color bool) {
	s := newPalette(w, color)

	fmt.Fprintln(w, s.title.Render("LOG"), s.value.Render(stats.Path))
	fmt.Fprintln(w, s.divider)

	field := func(label, value string) {
		fmt.Fprintf(w, "%s %s\n", s.label.Render(fmt.Sprintf("%-12s", label+":")), s.value.Render(value))
	}
	field("Ticks", itoa(stats.Ticks))
	if stats.FirstTick != nil && stats.LastTick != nil {
		field("Sim ticks", fmt.Sprintf("%d..%d", *stats.FirstTick, *stats.LastTick))
	}
	field("Records", itoa(stats.Records))
	field("Events", itoa(stats.Events))
	if stats.Discarded > 0 {
		field("Discarded", fmt.Sprintf("%d (before first VIEW)", stats.Discarded))
	}
	if stats.Busiest != nil {
		field("Busiest", fmt.Sprintf("tick %d (#%d) with %d events",
			stats.Busiest.Tick, stats.Busiest.Index, stats.Busiest.Events))
	}

	if len(stats.EventsByKind) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, s.title.Render("Events by kind:"))
		counts := make(map[gamelog.Kind]int, len(stats.EventsByKind))
		for k, v := range stats.EventsByKind {
			counts[gamelog.Kind(k)] = v
		}
		for _, kind := range sortedCounts(counts) {
			fmt.Fprintf(w, "  %s %s\n",
				s.kindStyle(kind).Render(fmt.Sprintf("%-8s", kind)),
				s.value.Render(itoa(counts[kind])))
		}
	}
}
