package replay

import (
	"context"
	"fmt"

	"github.com/delta/tickreplay/internal/logging"
)

// Summarizer loads several logs and computes their statistics.
type Summarizer struct {
	logger *logging.Logger
	// resolve maps a log argument to a path; nil uses the argument as is.
	resolve func(arg string) (string, error)
}

// NewSummarizer creates a Summarizer.
func NewSummarizer(logger *logging.Logger, resolve func(arg string) (string, error)) *Summarizer {
	if logger == nil {
		logger = logging.New()
	}
	return &Summarizer{
		logger:  logger.WithComponent("summary"),
		resolve: resolve,
	}
}

// SummarizeFiles loads every log in order. The first failure stops the
// run.
func (m *Summarizer) SummarizeFiles(ctx context.Context, args []string) ([]*Stats, error) {
	stats := make([]*Stats, 0, len(args))

	for _, arg := range args {
		path := arg
		if m.resolve != nil {
			resolved, err := m.resolve(arg)
			if err != nil {
				return nil, err
			}
			path = resolved
		}

		log, err := Load(ctx, path, m.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to summarize %s: %w", arg, err)
		}
		stats = append(stats, ComputeStats(log))
	}

	return stats, nil
}
