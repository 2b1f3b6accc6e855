package model

// Kind identifies the entity type the reconciler and identifier store
// track independently of each other (mirrors the four top-level
// buckets AutoKuma's sled/bbolt store keeps).
type Kind string

const (
	KindMonitor      Kind = "monitor"
	KindNotification Kind = "notification"
	KindDockerHost   Kind = "docker_host"
	KindTag          Kind = "tag"
)

// Name is a stable logical identity for a managed entity: its Kind plus
// the value AutoKuma writes into its marker tag / notification name, used
// to look up the remote numeric ID across reconcile cycles.
type Name struct {
	Kind  Kind
	Value string
}

func (n Name) String() string {
	return string(n.Kind) + "/" + n.Value
}
