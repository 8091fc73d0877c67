package kafka_test

import (
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/require"

	"github.com/skillcoder/clusterwatch/internal/adapters/outbound/kafka"
	"github.com/skillcoder/clusterwatch/internal/logic/watcher"
)

type wireEnvelope struct {
	ID         string            `json:"id"`
	Type       string            `json:"type"`
	Processor  string            `json:"processor"`
	Timestamp  time.Time         `json:"timestamp"`
	Attributes map[string]string `json:"attributes"`
	Payload    json.RawMessage   `json:"payload"`
}

func newMockProducer(t *testing.T) *mocks.AsyncProducer {
	t.Helper()

	cfg := sarama.NewConfig()
	cfg.Producer.Return.Errors = true

	return mocks.NewAsyncProducer(t, cfg)
}

func TestPublisher_Publish(t *testing.T) {
	t.Parallel()

	producer := newMockProducer(t)
	ts := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	producer.ExpectInputWithCheckerFunctionAndSucceed(func(val []byte) error {
		var env wireEnvelope
		if err := json.Unmarshal(val, &env); err != nil {
			return err
		}

		if env.ID == "" {
			return errors.New("missing id")
		}

		if env.Type != string(watcher.RecordPodEvent) {
			return errors.New("unexpected type " + env.Type)
		}

		if !env.Timestamp.Equal(ts) {
			return errors.New("unexpected timestamp")
		}

		if env.Attributes[watcher.AttrObjectUID] != "pod-1" {
			return errors.New("missing object uid attribute")
		}

		return nil
	})

	p := kafka.New(slog.Default(), producer, "events")
	require.NoError(t, p.Start(t.Context()))

	err := p.Publish(t.Context(), watcher.PodEvent{
		ClusterID: "c1",
		PodUID:    "pod-1",
		Type:      watcher.PodEventTerminated,
		Timestamp: ts,
	}, ts, map[string]string{
		watcher.AttrClusterID: "c1",
		watcher.AttrObjectUID: "pod-1",
	}, watcher.ProcessorPod)
	require.NoError(t, err)

	require.NoError(t, p.Shutdown(t.Context()))
	require.NoError(t, p.Ping(t.Context()))
}

func TestPublisher_DeliveryFailureSurfacesInPing(t *testing.T) {
	t.Parallel()

	producer := newMockProducer(t)
	producer.ExpectInputAndFail(sarama.ErrOutOfBrokers)

	p := kafka.New(slog.Default(), producer, "events")
	require.NoError(t, p.Start(t.Context()))

	err := p.Publish(t.Context(), watcher.NodeEvent{ClusterID: "c1", NodeUID: "n1"}, time.Now(),
		map[string]string{watcher.AttrClusterID: "c1"}, watcher.ProcessorNode)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		pingErr := p.Ping(t.Context())

		return errors.Is(pingErr, sarama.ErrOutOfBrokers)
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, p.Ping(t.Context()))
	require.NoError(t, p.Shutdown(t.Context()))
}

func TestPublisher_RejectsAfterShutdown(t *testing.T) {
	t.Parallel()

	p := kafka.New(slog.Default(), newMockProducer(t), "events")

	require.NoError(t, p.Shutdown(t.Context()))
	require.NoError(t, p.Shutdown(t.Context()))

	err := p.Publish(t.Context(), watcher.NodeEvent{}, time.Now(), nil, "")
	require.ErrorIs(t, err, kafka.ErrShuttingDown)
}

func TestNewProducer_NoBrokers(t *testing.T) {
	t.Parallel()

	_, err := kafka.NewProducer(nil, "clusterwatch")
	require.ErrorIs(t, err, kafka.ErrNoBrokers)
}
