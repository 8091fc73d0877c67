package watcher

import "time"

// CatchUpWindow is how old an object may be and still count as new when a
// cluster is bootstrapped for the first time.
const CatchUpWindow = 2 * time.Hour

// Routing attribute keys.
const (
	AttrClusterID = "clusterId"
	AttrObjectUID = "objectUid"
)

// Processor types passed to the publisher.
const (
	ProcessorNode = "node"
	ProcessorPod  = "pod"
	ProcessorPV   = "persistentvolume"
	ProcessorSync = "sync"
)

// EventType is the kind of notification delivered by a watch.
type EventType string

const (
	EventAdded   EventType = "ADDED"
	EventUpdated EventType = "UPDATED"
	EventDeleted EventType = "DELETED"
)

// RecordType names an emitted record schema.
type RecordType string

const (
	RecordNodeInfo    RecordType = "NodeInfo"
	RecordNodeEvent   RecordType = "NodeEvent"
	RecordPodInfo     RecordType = "PodInfo"
	RecordPodEvent    RecordType = "PodEvent"
	RecordPVInfo      RecordType = "PVInfo"
	RecordPVEvent     RecordType = "PVEvent"
	RecordClusterSync RecordType = "ClusterSync"
)

// Lifecycle event types carried by terminal and transition records.
const (
	NodeEventStop      = "STOP"
	PodEventTerminated = "TERMINATED"
	PVEventExpansion   = "EXPANSION"
	PVEventStop        = "STOP"
)
