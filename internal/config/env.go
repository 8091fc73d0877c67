package config

import "time"

// Env key constants. All configuration env vars use the CLUSTERWATCH_ prefix;
// duration values support explicit units (e.g. 5m, 40s, 2h).

// Path to kubeconfig file. If unset, KUBECONFIG is used as fallback.
const envKeyKubeConfig = "CLUSTERWATCH_KUBECONFIG"

// Kubernetes API server URL. If unset, KUBERNETES_MASTER is used as fallback.
const envKeyKubeMaster = "CLUSTERWATCH_KUBE_MASTER"

// Optional kubeconfig file whose bytes are the opaque connection blob of the watch.
// Empty means the watch uses the base config built from the two keys above.
const envKeyConnectionFile = "CLUSTERWATCH_CONNECTION_FILE"

// Log level: debug, info, warn, error.
const envKeyLogLevel = "CLUSTERWATCH_LOG_LEVEL"

// Log format: json or text.
const envKeyLogFormat = "CLUSTERWATCH_LOG_FORMAT"

// Port for health/readiness/status HTTP server.
const envKeyHTTPPort = "CLUSTERWATCH_HTTP_PORT"

// Port for Prometheus metrics (GET /metrics).
const envKeyMetricsPort = "CLUSTERWATCH_METRICS_PORT"

// Cluster identity. The id is required and becomes the watch id.
const (
	envKeyClusterID       = "CLUSTERWATCH_CLUSTER_ID"
	envKeyClusterName     = "CLUSTERWATCH_CLUSTER_NAME"
	envKeyCloudProviderID = "CLUSTERWATCH_CLOUD_PROVIDER_ID"
)

// true once the cluster has been bootstrapped before; false suppresses objects older than the catch-up window.
const envKeyClusterSeen = "CLUSTERWATCH_CLUSTER_SEEN"

// Watch create re-run interval. Units: s, m, h (e.g. 60s, 5m).
const (
	envKeyInterval = "CLUSTERWATCH_INTERVAL"
	envMinInterval = 10 * time.Second
)

// Pinger check interval. Units: s, m, h (e.g. 10s, 1m).
const (
	envKeyPingerInterval = "CLUSTERWATCH_PINGER_INTERVAL"
	envMinPingerInterval = time.Second
)

// Cluster snapshot cadence: cron expression or descriptor, and its IANA timezone.
const (
	envKeySnapshotSchedule = "CLUSTERWATCH_SNAPSHOT_SCHEDULE"
	envKeySnapshotTZ       = "CLUSTERWATCH_SNAPSHOT_TZ"
)

// Informer resync period; 0 disables resync.
const envKeyResyncPeriod = "CLUSTERWATCH_RESYNC_PERIOD"

// Server-side timeout of every list/watch call.
const (
	envKeyWatchTimeout = "CLUSTERWATCH_WATCH_TIMEOUT"
	envMinWatchTimeout = time.Second
)

// Bound of each per-kind notification queue.
const envKeyQueueSize = "CLUSTERWATCH_QUEUE_SIZE"

// Kafka publisher. No brokers selects the log publisher.
const (
	envKeyKafkaBrokers  = "CLUSTERWATCH_KAFKA_BROKERS"
	envKeyKafkaTopic    = "CLUSTERWATCH_KAFKA_TOPIC"
	envKeyKafkaClientID = "CLUSTERWATCH_KAFKA_CLIENT_ID"
)

// File created by the preStop hook; its presence blocks startup.
const envKeyTerminationFile = "CLUSTERWATCH_TERMINATION_FILE"

// Standard k8s env keys used as fallback when CLUSTERWATCH_* are unset.
const (
	envKeyKubeConfigFallback = "KUBECONFIG"
	envKeyKubeMasterFallback = "KUBERNETES_MASTER"
)
