package httpserver

import (
	"time"

	"github.com/skillcoder/clusterwatch/internal/infra/appstate"
	"github.com/skillcoder/clusterwatch/internal/infra/pinger"
	"github.com/skillcoder/clusterwatch/internal/logic/agent"
	"github.com/skillcoder/clusterwatch/internal/logic/lifecycle"
)

type appstater interface {
	GetState() appstate.State
	IsHealthy() bool
	IsReady() bool
	GetUptime() time.Duration
	GetStartTime() time.Time
	PingerStatuses() map[string]pinger.Status
}

type watchLister interface {
	Watches() []lifecycle.WatchInfo
}

type agentStatuser interface {
	Status() agent.Status
}
