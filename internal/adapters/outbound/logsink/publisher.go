// Package logsink is a dry-run publisher: records are written to the structured log.
package logsink

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/skillcoder/clusterwatch/internal/logic/watcher"
)

type Publisher struct {
	logger    *slog.Logger
	level     slog.Level
	published atomic.Int64
}

// New creates a log sink writing records at level.
func New(logger *slog.Logger, level slog.Level) *Publisher {
	return &Publisher{
		logger: logger.With("component", "log-publisher"),
		level:  level,
	}
}

var _ watcher.Publisher = (*Publisher)(nil)

func (p *Publisher) Name() string {
	return "log-publisher"
}

func (p *Publisher) Publish(
	ctx context.Context,
	record watcher.Record,
	timestamp time.Time,
	attributes map[string]string,
	processorType string,
) error {
	p.published.Add(1)

	p.logger.Log(ctx, p.level, "record published",
		"type", string(record.RecordType()),
		"processor", processorType,
		"timestamp", timestamp,
		"attributes", attributes,
		"record", record,
	)

	return nil
}

// Published returns the number of records written so far.
func (p *Publisher) Published() int64 {
	return p.published.Load()
}

func (p *Publisher) Shutdown(ctx context.Context) error {
	p.logger.InfoContext(ctx, "log publisher closed", "published", p.Published())

	return nil
}
