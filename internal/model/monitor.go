package model

import (
	"encoding/json"

	"github.com/autokuma-go/autokuma/internal/codec"
)

// MonitorType is the discriminator Kuma uses to pick which attribute bag
// a monitor carries. The full set mirrors kuma-client's monitor_type!
// macro invocations (Group, Http, Port, Ping, Keyword, JsonQuery,
// GrpcKeyword, Dns, Docker, RealBrowser, Push, Steam, GameDig, Mqtt,
// KafkaProducer, SqlServer, Postgres, Mysql, Mongodb, Radius, Redis,
// TailscalePing, and more); AutoKuma treats all of them uniformly via
// Attributes rather than one Go struct per subtype.
type MonitorType string

const (
	MonitorTypeGroup         MonitorType = "group"
	MonitorTypeHTTP          MonitorType = "http"
	MonitorTypePort          MonitorType = "port"
	MonitorTypePing          MonitorType = "ping"
	MonitorTypeKeyword       MonitorType = "keyword"
	MonitorTypeJSONQuery     MonitorType = "json-query"
	MonitorTypeGRPCKeyword   MonitorType = "grpc-keyword"
	MonitorTypeDNS           MonitorType = "dns"
	MonitorTypeDocker        MonitorType = "docker"
	MonitorTypeRealBrowser   MonitorType = "real-browser"
	MonitorTypePush          MonitorType = "push"
	MonitorTypeSteam         MonitorType = "steam"
	MonitorTypeGameDig       MonitorType = "gamedig"
	MonitorTypeMqtt          MonitorType = "mqtt"
	MonitorTypeKafkaProducer MonitorType = "kafka-producer"
	MonitorTypeSQLServer     MonitorType = "sqlserver"
	MonitorTypePostgres      MonitorType = "postgres"
	MonitorTypeMysql         MonitorType = "mysql"
	MonitorTypeMongodb       MonitorType = "mongodb"
	MonitorTypeRadius        MonitorType = "radius"
	MonitorTypeRedis         MonitorType = "redis"
	MonitorTypeTailscalePing MonitorType = "tailscale-ping"
)

// Monitor is AutoKuma's in-memory representation of a Kuma monitor: the
// fields common to every monitor type plus a flattened bag of
// type-specific attributes that round-trip untouched through JSON/TOML.
//
// Attributes holds every field Kuma's API accepts that isn't part of the
// common set below - the URL for an Http monitor, the host/port for a
// Port monitor, accepted status codes, and so on. Keeping these in
// a map (rather than one Go struct per MonitorType) means a new Kuma
// monitor type, or a field AutoKuma doesn't know about yet, flows through
// unmodified instead of being silently dropped.
type Monitor struct {
	ID             *int64        `json:"id,omitempty"`
	Type           MonitorType   `json:"type"`
	Name           string        `json:"name"`
	ParentName     *string       `json:"parent_name,omitempty"`
	Description    *string       `json:"description,omitempty"`
	Interval       codec.Int     `json:"interval"`
	RetryInterval  codec.Int     `json:"retryInterval"`
	ResendInterval codec.Int     `json:"resendInterval"`
	MaxRetries     codec.Int     `json:"maxretries"`
	Active         codec.Bool    `json:"active"`
	Tags           []MonitorTag  `json:"tags"`
	NotificationID []int64       `json:"notificationIDList,omitempty"`
	Attributes     map[string]any `json:"-"`
}

const (
	defaultInterval      = 60
	defaultRetryInterval = 60
)

// NewMonitor returns a Monitor with Kuma's documented defaults applied,
// mirroring the field defaults baked into kuma-client's monitor_type!
// macro (interval=60, retryInterval=60, accepted_statuscodes=["200-299"]).
func NewMonitor(typ MonitorType, name string) *Monitor {
	m := &Monitor{
		Type:          typ,
		Name:          name,
		Interval:      defaultInterval,
		RetryInterval: defaultRetryInterval,
		Active:        true,
		Tags:          []MonitorTag{},
		Attributes:    map[string]any{"accepted_statuscodes": []string{"200-299"}},
	}
	return m
}

// MarshalJSON flattens Attributes alongside the common fields, matching
// the wire shape Kuma's API expects: one JSON object per monitor, not a
// nested "attributes" sub-object.
func (m Monitor) MarshalJSON() ([]byte, error) {
	out := map[string]any{}
	for k, v := range m.Attributes {
		out[k] = v
	}
	out["type"] = m.Type
	out["name"] = m.Name
	out["interval"] = m.Interval
	out["retryInterval"] = m.RetryInterval
	out["resendInterval"] = m.ResendInterval
	out["maxretries"] = m.MaxRetries
	out["active"] = m.Active
	out["tags"] = m.Tags
	if m.ID != nil {
		out["id"] = *m.ID
	}
	if m.ParentName != nil {
		out["parent_name"] = *m.ParentName
	}
	if m.Description != nil {
		out["description"] = *m.Description
	}
	if m.NotificationID != nil {
		out["notificationIDList"] = m.NotificationID
	}
	return json.Marshal(out)
}

// UnmarshalJSON captures known common fields into their typed slots and
// everything else into Attributes, the "flatten-through" behavior the
// per-subtype bags rely on.
func (m *Monitor) UnmarshalJSON(data []byte) error {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	type common struct {
		ID             *int64       `json:"id,omitempty"`
		Type           MonitorType  `json:"type"`
		Name           string       `json:"name"`
		ParentName     *string      `json:"parent_name,omitempty"`
		Description    *string      `json:"description,omitempty"`
		Interval       codec.Int    `json:"interval"`
		RetryInterval  codec.Int    `json:"retryInterval"`
		ResendInterval codec.Int    `json:"resendInterval"`
		MaxRetries     codec.Int    `json:"maxretries"`
		Active         codec.Bool   `json:"active"`
		Tags           []MonitorTag `json:"tags"`
		NotificationID []int64      `json:"notificationIDList,omitempty"`
	}
	var c common
	if err := json.Unmarshal(data, &c); err != nil {
		return err
	}

	m.ID = c.ID
	m.Type = c.Type
	m.Name = c.Name
	m.ParentName = c.ParentName
	m.Description = c.Description
	m.Interval = c.Interval
	m.RetryInterval = c.RetryInterval
	m.ResendInterval = c.ResendInterval
	m.MaxRetries = c.MaxRetries
	m.Active = c.Active
	m.Tags = c.Tags
	m.NotificationID = c.NotificationID

	known := map[string]bool{
		"id": true, "type": true, "name": true, "parent_name": true,
		"description": true, "interval": true, "retryInterval": true,
		"resendInterval": true, "maxretries": true, "active": true,
		"tags": true, "notificationIDList": true,
	}
	m.Attributes = map[string]any{}
	for k, v := range raw {
		if known[k] {
			continue
		}
		var val any
		if err := json.Unmarshal(v, &val); err != nil {
			return err
		}
		m.Attributes[k] = val
	}
	return nil
}

// Equal compares two monitors for reconciliation purposes. parent_name is
// excluded because it is derived from the parent's assigned ID rather
// than being part of the desired state itself, and tags are compared by
// set semantics rather than slice order - both mirroring the
// derivative(PartialEq) customizations on kuma-client's Monitor enum.
func (m *Monitor) Equal(other *Monitor) bool {
	if m == nil || other == nil {
		return m == other
	}
	if m.Type != other.Type || m.Name != other.Name {
		return false
	}
	if m.Interval != other.Interval || m.RetryInterval != other.RetryInterval {
		return false
	}
	if m.ResendInterval != other.ResendInterval || m.MaxRetries != other.MaxRetries {
		return false
	}
	if m.Active != other.Active {
		return false
	}
	if !stringPtrEqual(m.Description, other.Description) {
		return false
	}
	if !TagSetEqual(m.Tags, other.Tags) {
		return false
	}
	if len(m.Attributes) != len(other.Attributes) {
		return false
	}
	for k, v := range m.Attributes {
		ov, ok := other.Attributes[k]
		if !ok {
			return false
		}
		if !deepEqualJSON(v, ov) {
			return false
		}
	}
	return true
}

func deepEqualJSON(a, b any) bool {
	ab, err := json.Marshal(a)
	if err != nil {
		return false
	}
	bb, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return string(ab) == string(bb)
}
