package replay

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/delta/tickreplay/internal/logging"
	"github.com/delta/tickreplay/internal/timeline"
)

// Log is a fully loaded and segmented match log.
type Log struct {
	Path      string
	Ticks     []timeline.Tick
	Records   int // non-blank lines parsed
	Discarded int // records logged before the first VIEW
}

// Events returns the number of non-VIEW records kept in ticks.
func (l *Log) Events() int {
	n := 0
	for _, t := range l.Ticks {
		n += len(t.Events)
	}
	return n
}

// Load reads the whole log at path and segments it into ticks. Files
// ending in .zst are decompressed while reading. A malformed record fails
// the load with a *timeline.MalformedRecordError.
func Load(ctx context.Context, path string, logger *logging.Logger) (log *Log, err error) {
	if logger == nil {
		logger = logging.New()
	}
	logger = logger.WithComponent("loader")

	ctx, span := startLoadSpan(ctx, path)
	defer func() { endLoadSpan(span, log, err) }()

	start := time.Now()
	logger.LoadStart(path)

	lines, err := readLines(path)
	if err != nil {
		logger.LoadFailed(path, err)
		return nil, err
	}

	_, segSpan := startSegmentSpan(ctx, len(lines))
	ticks, err := timeline.Segment(lines)
	endSpan(segSpan, err)
	if err != nil {
		err = fmt.Errorf("%s: %w", path, err)
		logger.LoadFailed(path, err)
		return nil, err
	}

	log = &Log{Path: path, Ticks: ticks}
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			log.Records++
		}
	}
	log.Discarded = log.Records - len(ticks) - log.Events()
	if log.Discarded > 0 {
		logger.Debug("records_before_first_view", map[string]interface{}{
			"count": log.Discarded,
		})
	}

	logger.LoadComplete(path, len(ticks), log.Events(), time.Since(start))
	return log, nil
}

// readLines returns every line of the file, blank ones included, so line
// numbers in errors match the source.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &MissingInputError{Path: path}
		}
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer f.Close()

	var src io.Reader = f
	if strings.HasSuffix(path, zstdSuffix) {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("failed to open zstd stream: %w", err)
		}
		defer dec.Close()
		src = dec
	}

	reader := bufio.NewReader(src)
	var lines []string
	for {
		line, err := reader.ReadBytes('\n')
		if len(line) > 0 {
			lines = append(lines, string(bytes.TrimRight(line, "\r\n")))
		}
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("error reading log: %w", err)
		}
	}
	return lines, nil
}
