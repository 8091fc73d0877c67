package k8s

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	apiextclientset "k8s.io/apiextensions-apiserver/pkg/client/clientset/clientset"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"

	"github.com/skillcoder/clusterwatch/internal/logic/lifecycle"
)

const (
	userAgent    = "clusterwatch"
	defaultQPS   = 50
	defaultBurst = 100
)

// Connector opens cluster connections from kubeconfig bytes, or from the base
// config when the connection blob is empty.
type Connector struct {
	logger       *slog.Logger
	base         *rest.Config
	resync       time.Duration
	watchTimeout time.Duration
}

// NewConnector creates a connector. base may be nil when every connection carries a kubeconfig.
func NewConnector(
	logger *slog.Logger,
	base *rest.Config,
	resync,
	watchTimeout time.Duration,
) *Connector {
	return &Connector{
		logger:       logger,
		base:         base,
		resync:       resync,
		watchTimeout: watchTimeout,
	}
}

var _ lifecycle.Connector = (*Connector)(nil)

// BuildConfig builds the base config from a master URL and kubeconfig path, falling back
// to the in-cluster config when both are empty.
func BuildConfig(master, kubeconfigPath string) (*rest.Config, error) {
	cfg, err := clientcmd.BuildConfigFromFlags(master, kubeconfigPath)
	if err != nil {
		return nil, fmt.Errorf("build k8s config: %w", err)
	}

	return cfg, nil
}

func (c *Connector) Connect(ctx context.Context, connection []byte) (lifecycle.Cluster, error) {
	cfg, err := c.restConfig(connection)
	if err != nil {
		return nil, err
	}

	clientset, err := kubernetes.NewForConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("create clientset: %w", err)
	}

	dynamicClient, err := dynamic.NewForConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("create dynamic client: %w", err)
	}

	apiextClient, err := apiextclientset.NewForConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("create apiextensions clientset: %w", err)
	}

	c.logger.DebugContext(ctx, "cluster client created", "host", cfg.Host)

	return NewCluster(
		c.logger,
		clientset,
		dynamicClient,
		apiextClient,
		c.resync,
		c.watchTimeout,
	), nil
}

func (c *Connector) restConfig(connection []byte) (*rest.Config, error) {
	var cfg *rest.Config

	switch {
	case len(connection) > 0:
		parsed, err := clientcmd.RESTConfigFromKubeConfig(connection)
		if err != nil {
			return nil, fmt.Errorf("parse kubeconfig: %w", err)
		}

		cfg = parsed
	case c.base != nil:
		cfg = rest.CopyConfig(c.base)
	default:
		return nil, ErrNoConfig
	}

	if cfg.QPS == 0 {
		cfg.QPS = defaultQPS
	}

	if cfg.Burst == 0 {
		cfg.Burst = defaultBurst
	}

	cfg.UserAgent = userAgent

	return cfg, nil
}
