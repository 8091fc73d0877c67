package watcher

import (
	"context"
	"log/slog"
	"time"

	"k8s.io/utils/clock"

	"github.com/skillcoder/clusterwatch/internal/infra/metrics"
)

// emitter is the publish-once state shared by every per-kind watcher.
type emitter struct {
	logger    *slog.Logger
	errs      ErrorLogger
	publisher Publisher
	details   ClusterDetails
	clock     clock.PassiveClock
	processor string
	published *PublishedSet
}

func newEmitter(
	logger *slog.Logger,
	errs ErrorLogger,
	publisher Publisher,
	details ClusterDetails,
	clk clock.PassiveClock,
	processor string,
) emitter {
	return emitter{
		logger:    logger.With("component", processor+"-watcher", "cluster", details.ClusterID),
		errs:      errs,
		publisher: publisher,
		details:   details,
		clock:     clk,
		processor: processor,
		published: NewPublishedSet(),
	}
}

// Published exposes the UIDs this watcher has emitted.
func (e *emitter) Published() *PublishedSet {
	return e.published
}

// isNew decides whether an unseen object is reported or only recorded as seen.
// On a first bootstrap only objects inside CatchUpWindow are reported.
func (e *emitter) isNew(created time.Time) bool {
	if e.details.IsSeen {
		return true
	}

	return e.clock.Since(created) <= CatchUpWindow
}

func (e *emitter) attributes(uid string) map[string]string {
	attrs := map[string]string{AttrClusterID: e.details.ClusterID}
	if uid != "" {
		attrs[AttrObjectUID] = uid
	}

	return attrs
}

// publish sends record and reports success. Failures are logged and counted, never returned.
func (e *emitter) publish(ctx context.Context, uid string, record Record, ts time.Time) bool {
	recordType := string(record.RecordType())

	err := e.publisher.Publish(ctx, record, ts, e.attributes(uid), e.processor)
	if err != nil {
		metrics.RecordPublishError(recordType)
		e.errs.Error(ctx, "publish record failed", err,
			"type", recordType,
			"uid", uid,
		)

		return false
	}

	metrics.RecordPublished(recordType)

	return true
}

// enrichmentFailed records a degraded field; the record is still emitted.
func (e *emitter) enrichmentFailed(ctx context.Context, field string, err error, args ...any) {
	metrics.RecordEnrichmentFailure(field)
	e.errs.Error(ctx, "enrich "+field+" failed", err, args...)
}

// terminalTime is the deletion timestamp when known, otherwise now.
func (e *emitter) terminalTime(deleted *time.Time) time.Time {
	if deleted != nil && !deleted.IsZero() {
		return *deleted
	}

	return e.clock.Now()
}
