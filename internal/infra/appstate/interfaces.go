package appstate

import (
	"github.com/skillcoder/clusterwatch/internal/infra/pinger"
)

// pingerServer is the part of the pinger service the state machine consults.
type pingerServer interface {
	Register(p pinger.Pinger) error
	Statuses() map[string]pinger.Status
	Healthy() bool
	ReadyOK() bool
}
