// Package timeline splits a match log into ticks and navigates them.
package timeline

import (
	"fmt"
	"strings"

	"github.com/delta/tickreplay/internal/gamelog"
)

// Tick is one simulation step: the VIEW record that opened it and the
// records logged until the next VIEW.
type Tick struct {
	Snapshot *gamelog.World   // nil only if the VIEW payload was empty
	View     gamelog.Record   // record that opened the tick
	Events   []gamelog.Record // non-VIEW records, in log order
	Line     int              // 1-based source line of View
}

// Records returns the VIEW record followed by the tick's events.
func (t Tick) Records() []gamelog.Record {
	out := make([]gamelog.Record, 0, len(t.Events)+1)
	out = append(out, t.View)
	return append(out, t.Events...)
}

// MalformedRecordError reports the line that aborted segmentation.
type MalformedRecordError struct {
	Line int
	Err  error
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}

// numbered is a parsed record with its source line.
type numbered struct {
	rec  gamelog.Record
	line int
}

// Segment parses lines into records and groups them into ticks.
// Any malformed line fails the whole call; whitespace-only lines are skipped.
func Segment(lines []string) ([]Tick, error) {
	acc := accumulator{}
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rec, err := gamelog.ParseRecord([]byte(line))
		if err != nil {
			return nil, &MalformedRecordError{Line: i + 1, Err: err}
		}
		if acc, err = acc.step(numbered{rec: rec, line: i + 1}); err != nil {
			return nil, &MalformedRecordError{Line: i + 1, Err: err}
		}
	}
	return acc.finish(), nil
}

// SegmentRecords groups already-parsed records into ticks. VIEW payloads
// that cannot be decoded leave the tick's Snapshot nil.
func SegmentRecords(records []gamelog.Record) []Tick {
	acc := accumulator{}
	for i, rec := range records {
		next, err := acc.step(numbered{rec: rec, line: i + 1})
		if err != nil {
			next = acc.open(numbered{rec: rec, line: i + 1}, nil)
		}
		acc = next
	}
	return acc.finish()
}

// accumulator is the fold state: sealed ticks plus the tick under
// construction. Records seen before the first VIEW are dropped.
type accumulator struct {
	sealed  []Tick
	current *Tick
}

func (a accumulator) step(n numbered) (accumulator, error) {
	if n.rec.IsView() {
		snap, err := n.rec.World()
		if err != nil {
			return a, err
		}
		return a.open(n, snap), nil
	}
	if a.current != nil {
		a.current.Events = append(a.current.Events, n.rec)
	}
	return a, nil
}

func (a accumulator) open(n numbered, snap *gamelog.World) accumulator {
	if a.current != nil {
		a.sealed = append(a.sealed, *a.current)
	}
	a.current = &Tick{
		Snapshot: snap,
		View:     n.rec,
		Events:   []gamelog.Record{},
		Line:     n.line,
	}
	return a
}

func (a accumulator) finish() []Tick {
	out := a.sealed
	if a.current != nil {
		out = append(out, *a.current)
	}
	if out == nil {
		out = []Tick{}
	}
	return out
}
