package watcher

import (
	"time"

	"github.com/skillcoder/clusterwatch/internal/logic/owner"
	"github.com/skillcoder/clusterwatch/internal/logic/resources"
)

// ClusterDetails is the identity and catch-up policy of one watched cluster.
// It is fixed when the watch is created.
type ClusterDetails struct {
	ClusterID       string `json:"clusterId"`
	CloudProviderID string `json:"cloudProviderId"`
	ClusterName     string `json:"clusterName"`
	KubeSystemUID   string `json:"kubeSystemUid"`
	IsSeen          bool   `json:"isSeen"`
}

// Notification is one add, update or delete delivered by a watch.
// For deletes Object is the last known state.
type Notification[T any] struct {
	Type   EventType
	Object T
}

// Record is anything handed to the publisher.
type Record interface {
	RecordType() RecordType
}

type NodeInfo struct {
	ClusterID    string             `json:"clusterId"`
	NodeUID      string             `json:"nodeUid"`
	NodeName     string             `json:"nodeName"`
	CreationTime time.Time          `json:"creationTime"`
	ProviderID   string             `json:"providerId,omitempty"`
	Labels       map[string]string  `json:"labels,omitempty"`
	Allocatable  resources.Resource `json:"allocatable"`
	Capacity     resources.List     `json:"capacity"`
}

func (NodeInfo) RecordType() RecordType { return RecordNodeInfo }

type NodeEvent struct {
	ClusterID string    `json:"clusterId"`
	NodeUID   string    `json:"nodeUid"`
	NodeName  string    `json:"nodeName"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
}

func (NodeEvent) RecordType() RecordType { return RecordNodeEvent }

// VolumeInfo is a pod volume backed by a persistent volume claim.
type VolumeInfo struct {
	Name           string `json:"name"`
	ClaimName      string `json:"claimName"`
	VolumeName     string `json:"volumeName,omitempty"`
	StorageClass   string `json:"storageClass,omitempty"`
	StorageRequest int64  `json:"storageRequest"`
}

type ContainerInfo struct {
	Name     string             `json:"name"`
	Image    string             `json:"image"`
	Init     bool               `json:"init,omitempty"`
	Resource resources.Resource `json:"resource"`
}

type PodInfo struct {
	ClusterID       string             `json:"clusterId"`
	PodUID          string             `json:"podUid"`
	PodName         string             `json:"podName"`
	Namespace       string             `json:"namespace"`
	NodeName        string             `json:"nodeName"`
	CreationTime    time.Time          `json:"creationTime"`
	TotalResource   resources.Resource `json:"totalResource"`
	Volumes         []VolumeInfo       `json:"volumes"`
	QOSClass        string             `json:"qosClass,omitempty"`
	Containers      []ContainerInfo    `json:"containers"`
	Labels          map[string]string  `json:"labels,omitempty"`
	NamespaceLabels map[string]string  `json:"namespaceLabels"`
	TopLevelOwner   owner.Owner        `json:"topLevelOwner"`
}

func (PodInfo) RecordType() RecordType { return RecordPodInfo }

type PodEvent struct {
	ClusterID string    `json:"clusterId"`
	PodUID    string    `json:"podUid"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
}

func (PodEvent) RecordType() RecordType { return RecordPodEvent }

type PVInfo struct {
	ClusterID          string            `json:"clusterId"`
	PVUID              string            `json:"pvUid"`
	PVName             string            `json:"pvName"`
	PVType             string            `json:"pvType"`
	ClaimName          string            `json:"claimName,omitempty"`
	ClaimNamespace     string            `json:"claimNamespace,omitempty"`
	StorageClass       string            `json:"storageClass,omitempty"`
	StorageClassParams map[string]string `json:"storageClassParams"`
	Capacity           int64             `json:"capacity"`
	CreationTime       time.Time         `json:"creationTime"`
}

func (PVInfo) RecordType() RecordType { return RecordPVInfo }

type PVEvent struct {
	ClusterID string    `json:"clusterId"`
	PVUID     string    `json:"pvUid"`
	EventType string    `json:"eventType"`
	Capacity  int64     `json:"capacity,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func (PVEvent) RecordType() RecordType { return RecordPVEvent }

// ClusterSync lists every live object so consumers can reconcile drift.
type ClusterSync struct {
	ClusterID     string    `json:"clusterId"`
	ClusterName   string    `json:"clusterName,omitempty"`
	KubeSystemUID string    `json:"kubeSystemUid,omitempty"`
	NodeUIDs      []string  `json:"nodeUids"`
	PodUIDs       []string  `json:"podUids"`
	PVUIDs        []string  `json:"pvUids"`
	Timestamp     time.Time `json:"timestamp"`
}

func (ClusterSync) RecordType() RecordType { return RecordClusterSync }
