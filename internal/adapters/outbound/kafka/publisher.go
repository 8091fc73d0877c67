// Package kafka publishes watch records to a Kafka topic through an async sarama producer.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"

	"github.com/skillcoder/clusterwatch/internal/infra/metrics"
	"github.com/skillcoder/clusterwatch/internal/logic/watcher"
)

const (
	headerType      = "type"
	headerProcessor = "processor"
	maxRetries      = 5
)

// Publisher implements watcher.Publisher. Publish only enqueues; delivery failures
// are reported asynchronously through the producer error channel.
type Publisher struct {
	logger     *slog.Logger
	producer   sarama.AsyncProducer
	topic      string
	inShutdown atomic.Bool
	lastErr    atomic.Pointer[error]
	doneCh     chan struct{}
	startOnce  sync.Once
}

// NewProducer builds an idempotent, zstd-compressed async producer.
func NewProducer(brokers []string, clientID string) (sarama.AsyncProducer, error) {
	if len(brokers) == 0 {
		return nil, ErrNoBrokers
	}

	cfg := sarama.NewConfig()
	cfg.Version = sarama.V3_6_0_0
	cfg.ClientID = clientID

	// idempotence requires a single in-flight request per broker
	cfg.Net.MaxOpenRequests = 1
	cfg.Producer.Idempotent = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = maxRetries
	cfg.Producer.Return.Successes = false
	cfg.Producer.Return.Errors = true
	cfg.Producer.Compression = sarama.CompressionZSTD

	producer, err := sarama.NewAsyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}

	return producer, nil
}

// New creates a publisher writing to topic.
func New(logger *slog.Logger, producer sarama.AsyncProducer, topic string) *Publisher {
	return &Publisher{
		logger:   logger.With("component", "kafka-publisher", "topic", topic),
		producer: producer,
		topic:    topic,
		doneCh:   make(chan struct{}),
	}
}

var _ watcher.Publisher = (*Publisher)(nil)

func (p *Publisher) Name() string {
	return "kafka-publisher"
}

// Start drains the producer error channel until the producer is closed.
func (p *Publisher) Start(ctx context.Context) error {
	p.startOnce.Do(func() {
		go p.drainErrors(ctx)
	})

	return nil
}

func (p *Publisher) drainErrors(ctx context.Context) {
	defer close(p.doneCh)

	for perr := range p.producer.Errors() {
		err := perr.Err
		p.lastErr.Store(&err)

		recordType := ""
		if perr.Msg != nil {
			recordType = headerValue(perr.Msg.Headers, headerType)
		}

		metrics.RecordPublishError(recordType)
		p.logger.ErrorContext(ctx, "kafka delivery failed",
			"type", recordType,
			"reason", err,
		)
	}
}

// Publish wraps record in an envelope and hands it to the producer.
func (p *Publisher) Publish(
	ctx context.Context,
	record watcher.Record,
	timestamp time.Time,
	attributes map[string]string,
	processorType string,
) error {
	if p.inShutdown.Load() {
		return ErrShuttingDown
	}

	recordType := string(record.RecordType())

	value, err := json.Marshal(envelope{
		ID:         uuid.NewString(),
		Type:       recordType,
		Processor:  processorType,
		Timestamp:  timestamp.UTC(),
		Attributes: attributes,
		Payload:    record,
	})
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrEncode, recordType, err)
	}

	msg := &sarama.ProducerMessage{
		Topic:     p.topic,
		Key:       sarama.StringEncoder(messageKey(attributes)),
		Value:     sarama.ByteEncoder(value),
		Headers:   headers(recordType, processorType, attributes),
		Timestamp: timestamp,
	}

	select {
	case p.producer.Input() <- msg:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("enqueue %s: %w", recordType, ctx.Err())
	}
}

// Ping reports the most recent delivery error, if any, and clears it.
func (p *Publisher) Ping(_ context.Context) error {
	errPtr := p.lastErr.Swap(nil)
	if errPtr == nil {
		return nil
	}

	return fmt.Errorf("last kafka delivery: %w", *errPtr)
}

// PingerReadyCritical keeps delivery errors out of readiness.
func (p *Publisher) PingerReadyCritical() bool {
	return false
}

// Shutdown flushes buffered messages and closes the producer.
func (p *Publisher) Shutdown(ctx context.Context) error {
	if !p.inShutdown.CompareAndSwap(false, true) {
		p.logger.ErrorContext(ctx, "kafka publisher is already shutting down, skipping shutdown")

		return nil
	}

	p.logger.InfoContext(ctx, "shutting down kafka publisher")

	// Start may never have run; draining here keeps AsyncClose from blocking.
	p.startOnce.Do(func() {
		go p.drainErrors(ctx)
	})

	p.producer.AsyncClose()

	select {
	case <-ctx.Done():
		return fmt.Errorf("shutdown context done before producer flushed: %w", ctx.Err())
	case <-p.doneCh:
		p.logger.InfoContext(ctx, "kafka publisher closed properly")
	}

	return nil
}

func headers(recordType, processorType string, attributes map[string]string) []sarama.RecordHeader {
	keys := make([]string, 0, len(attributes))
	for k := range attributes {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	out := make([]sarama.RecordHeader, 0, len(keys)+2)
	out = append(out, sarama.RecordHeader{Key: []byte(headerType), Value: []byte(recordType)})

	if processorType != "" {
		out = append(out, sarama.RecordHeader{Key: []byte(headerProcessor), Value: []byte(processorType)})
	}

	for _, k := range keys {
		out = append(out, sarama.RecordHeader{Key: []byte(k), Value: []byte(attributes[k])})
	}

	return out
}

func headerValue(hs []sarama.RecordHeader, key string) string {
	for _, h := range hs {
		if string(h.Key) == key {
			return string(h.Value)
		}
	}

	return ""
}
