// Package gamelog defines the records written to a match log and the
// world-state snapshot carried by VIEW records.
package gamelog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Kind tags a log record.
type Kind string

// Record kinds written by the match engine.
const (
	KindView   Kind = "VIEW"   // World-state snapshot, opens a tick
	KindWarn   Kind = "WARN"   // Bot or engine warning
	KindError  Kind = "ERROR"  // Sandbox or engine error
	KindDebug  Kind = "DEBUG"  // Engine progress messages
	KindMove   Kind = "MOVE"   // Moves submitted by a player
	KindState  Kind = "STATE"  // Raw engine state dump
	KindAction Kind = "ACTION" // Raw player action dump
)

// Severity is a presentation-neutral ranking of a record kind.
type Severity string

const (
	SeverityDebug Severity = "debug"
	SeverityInfo  Severity = "info"
	SeverityWarn  Severity = "warn"
	SeverityError Severity = "error"
)

// ErrMalformedRecord is returned for a log line that is not a valid record.
var ErrMalformedRecord = errors.New("malformed record")

// Record is one parsed line of a match log.
type Record struct {
	Kind    Kind              `json:"typ"`
	Payload []json.RawMessage `json:"msg"`
	Elapsed string            `json:"elapsed,omitempty"`
}

// wireRecord accepts both tag spellings seen in match logs.
type wireRecord struct {
	Typ     *string         `json:"typ"`
	Kind    *string         `json:"kind"`
	Msg     json.RawMessage `json:"msg"`
	Elapsed string          `json:"elapsed"`
}

// ParseRecord parses a single log line.
// The returned error wraps ErrMalformedRecord.
func ParseRecord(line []byte) (Record, error) {
	line = bytes.TrimSpace(line)
	if len(line) == 0 || line[0] != '{' {
		return Record{}, fmt.Errorf("%w: not a JSON object", ErrMalformedRecord)
	}

	var w wireRecord
	if err := json.Unmarshal(line, &w); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}

	var tag string
	switch {
	case w.Typ != nil && *w.Typ != "":
		tag = *w.Typ
	case w.Kind != nil:
		tag = *w.Kind
	}
	if tag == "" {
		return Record{}, fmt.Errorf("%w: missing typ", ErrMalformedRecord)
	}

	rec := Record{Kind: Kind(tag), Elapsed: w.Elapsed}

	msg := bytes.TrimSpace(w.Msg)
	if len(msg) > 0 && !bytes.Equal(msg, []byte("null")) {
		if msg[0] != '[' {
			return Record{}, fmt.Errorf("%w: msg is not an array", ErrMalformedRecord)
		}
		if err := json.Unmarshal(msg, &rec.Payload); err != nil {
			return Record{}, fmt.Errorf("%w: msg: %v", ErrMalformedRecord, err)
		}
	}

	return rec, nil
}

// IsView reports whether the record opens a tick.
func (r Record) IsView() bool {
	return r.Kind == KindView
}

// World decodes the snapshot carried by a VIEW record.
// It returns nil when the payload is empty.
func (r Record) World() (*World, error) {
	if len(r.Payload) == 0 {
		return nil, nil
	}
	first := bytes.TrimSpace(r.Payload[0])
	if len(first) == 0 || first[0] != '{' {
		return nil, fmt.Errorf("%w: VIEW payload is not an object", ErrMalformedRecord)
	}
	var w World
	if err := json.Unmarshal(first, &w); err != nil {
		return nil, fmt.Errorf("%w: VIEW payload: %v", ErrMalformedRecord, err)
	}
	return &w, nil
}

// Severity maps the record kind to a severity.
func (r Record) Severity() Severity {
	switch r.Kind {
	case KindError:
		return SeverityError
	case KindWarn:
		return SeverityWarn
	case KindDebug:
		return SeverityDebug
	default:
		return SeverityInfo
	}
}

// Text joins the payload values with spaces. Strings are written
// unquoted; everything else as compact JSON.
func (r Record) Text() string {
	parts := make([]string, 0, len(r.Payload))
	for _, raw := range r.Payload {
		parts = append(parts, valueText(raw))
	}
	return strings.Join(parts, " ")
}

// First returns the first payload value as compact JSON, or "" if empty.
func (r Record) First() string {
	if len(r.Payload) == 0 {
		return ""
	}
	return compact(r.Payload[0])
}

func valueText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return compact(raw)
}

func compact(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
