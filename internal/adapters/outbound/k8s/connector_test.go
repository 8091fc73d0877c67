package k8s_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"k8s.io/client-go/rest"

	"github.com/skillcoder/clusterwatch/internal/adapters/outbound/k8s"
)

const testKubeconfig = `apiVersion: v1
kind: Config
clusters:
- name: test
  cluster:
    server: https://127.0.0.1:6443
contexts:
- name: test
  context:
    cluster: test
    user: test
current-context: test
users:
- name: test
  user:
    token: abc
`

type connectCase struct {
	name           string
	giveBase       *rest.Config
	giveConnection []byte
	wantErr        bool
	wantErrIs      error
}

func TestConnector_Connect(t *testing.T) {
	t.Parallel()

	tests := []connectCase{
		{
			name:           "kubeconfig blob",
			giveConnection: []byte(testKubeconfig),
		},
		{
			name:     "base config when blob is empty",
			giveBase: &rest.Config{Host: "https://10.0.0.1"},
		},
		{
			name:      "no blob and no base",
			wantErr:   true,
			wantErrIs: k8s.ErrNoConfig,
		},
		{
			name:           "garbage blob",
			giveConnection: []byte("{not yaml"),
			wantErr:        true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			connector := k8s.NewConnector(slog.Default(), tt.giveBase, 0, time.Minute)

			cluster, err := connector.Connect(t.Context(), tt.giveConnection)
			if tt.wantErr {
				require.Error(t, err)

				if tt.wantErrIs != nil {
					require.ErrorIs(t, err, tt.wantErrIs)
				}

				return
			}

			require.NoError(t, err)
			require.NotNil(t, cluster)
			cluster.Stop()
		})
	}
}
