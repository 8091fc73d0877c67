package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultLogLevel         = "info"
	defaultLogFormat        = "json"
	defaultHTTPPort         = "8080"
	defaultMetricsPort      = "9090"
	defaultInterval         = 60 * time.Second
	defaultPingerInterval   = 10 * time.Second
	defaultSnapshotSchedule = "*/15 * * * *"
	defaultWatchTimeout     = 5 * time.Minute
	defaultQueueSize        = 1024
	defaultKafkaTopic       = "clusterwatch.events"
	defaultKafkaClientID    = "clusterwatch"
	defaultTerminationFile  = "/mnt/signal/terminating"
	maxPort                 = 65535
)

type Config struct {
	KubeConfig       string
	KubeMaster       string
	ConnectionFile   string
	LogLevel         string
	LogFormat        string
	HTTPPort         string
	MetricsPort      string
	ClusterID        string
	ClusterName      string
	CloudProviderID  string
	ClusterSeen      bool
	Interval         time.Duration
	PingerInterval   time.Duration
	SnapshotSchedule string
	SnapshotTZ       string
	ResyncPeriod     time.Duration
	WatchTimeout     time.Duration
	QueueSize        int
	KafkaBrokers     []string
	KafkaTopic       string
	KafkaClientID    string
	TerminationFile  string
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		KubeConfig:       getEnvOrFallback(envKeyKubeConfig, envKeyKubeConfigFallback),
		KubeMaster:       getEnvOrFallback(envKeyKubeMaster, envKeyKubeMasterFallback),
		ConnectionFile:   os.Getenv(envKeyConnectionFile),
		LogLevel:         getEnvOrDefault(envKeyLogLevel, defaultLogLevel),
		LogFormat:        getEnvOrDefault(envKeyLogFormat, defaultLogFormat),
		HTTPPort:         getEnvOrDefault(envKeyHTTPPort, defaultHTTPPort),
		MetricsPort:      getEnvOrDefault(envKeyMetricsPort, defaultMetricsPort),
		ClusterID:        strings.TrimSpace(os.Getenv(envKeyClusterID)),
		ClusterName:      os.Getenv(envKeyClusterName),
		CloudProviderID:  os.Getenv(envKeyCloudProviderID),
		SnapshotSchedule: getEnvOrDefault(envKeySnapshotSchedule, defaultSnapshotSchedule),
		SnapshotTZ:       os.Getenv(envKeySnapshotTZ),
		KafkaBrokers:     splitList(os.Getenv(envKeyKafkaBrokers)),
		KafkaTopic:       getEnvOrDefault(envKeyKafkaTopic, defaultKafkaTopic),
		KafkaClientID:    getEnvOrDefault(envKeyKafkaClientID, defaultKafkaClientID),
		TerminationFile:  getEnvOrDefault(envKeyTerminationFile, defaultTerminationFile),
	}

	if cfg.ClusterID == "" {
		return nil, fmt.Errorf("%s: %w", envKeyClusterID, ErrRequired)
	}

	for _, port := range []struct{ key, value string }{
		{envKeyHTTPPort, cfg.HTTPPort},
		{envKeyMetricsPort, cfg.MetricsPort},
	} {
		if err := validatePort(port.value); err != nil {
			return nil, fmt.Errorf("%s: %w", port.key, err)
		}
	}

	var err error

	cfg.ClusterSeen, err = parseBool(envKeyClusterSeen, false)
	if err != nil {
		return nil, err
	}

	cfg.Interval, err = parseDuration(envKeyInterval, defaultInterval, envMinInterval)
	if err != nil {
		return nil, err
	}

	cfg.PingerInterval, err = parseDuration(envKeyPingerInterval, defaultPingerInterval, envMinPingerInterval)
	if err != nil {
		return nil, err
	}

	cfg.ResyncPeriod, err = parseDuration(envKeyResyncPeriod, 0, 0)
	if err != nil {
		return nil, err
	}

	cfg.WatchTimeout, err = parseDuration(envKeyWatchTimeout, defaultWatchTimeout, envMinWatchTimeout)
	if err != nil {
		return nil, err
	}

	cfg.QueueSize, err = parseInt(envKeyQueueSize, defaultQueueSize, 1)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	return value
}

func getEnvOrFallback(key, fallbackKey string) string {
	return getEnvOrDefault(key, os.Getenv(fallbackKey))
}

func parseDuration(key string, defaultValue, minValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}

	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}

	if value < minValue {
		return 0, fmt.Errorf("%s=%s, minimum %s: %w", key, value, minValue, ErrTooSmall)
	}

	return value, nil
}

func parseInt(key string, defaultValue, minValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}

	if value < minValue {
		return 0, fmt.Errorf("%s=%d, minimum %d: %w", key, value, minValue, ErrTooSmall)
	}

	return value, nil
}

func parseBool(key string, defaultValue bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}

	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}

	return value, nil
}

func validatePort(raw string) error {
	port, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("%w %q: %w", ErrInvalidPort, raw, err)
	}

	if port < 0 || port > maxPort {
		return fmt.Errorf("%w %q", ErrInvalidPort, raw)
	}

	return nil
}

func splitList(raw string) []string {
	var out []string

	for item := range strings.SplitSeq(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}

	return out
}
