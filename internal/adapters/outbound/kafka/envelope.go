package kafka

import (
	"time"

	"github.com/skillcoder/clusterwatch/internal/logic/watcher"
)

// envelope is the JSON value of every message on the topic.
type envelope struct {
	ID         string            `json:"id"`
	Type       string            `json:"type"`
	Processor  string            `json:"processor,omitempty"`
	Timestamp  time.Time         `json:"timestamp"`
	Attributes map[string]string `json:"attributes"`
	Payload    watcher.Record    `json:"payload"`
}

// messageKey keeps every message of one object on one partition; cluster-wide
// records fall back to the cluster id.
func messageKey(attributes map[string]string) string {
	if uid := attributes[watcher.AttrObjectUID]; uid != "" {
		return uid
	}

	return attributes[watcher.AttrClusterID]
}
