package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func TestMonitorUnmarshalFlattensUnknownFields(t *testing.T) {
	data := []byte(`{
		"id": 5,
		"type": "http",
		"name": "my-site",
		"interval": 60,
		"retryInterval": 60,
		"maxretries": 0,
		"active": true,
		"tags": [],
		"url": "https://example.com",
		"accepted_statuscodes": ["200-299"]
	}`)

	var m Monitor
	require.NoError(t, json.Unmarshal(data, &m))
	require.Equal(t, MonitorTypeHTTP, m.Type)
	require.Equal(t, "my-site", m.Name)
	require.Equal(t, "https://example.com", m.Attributes["url"])
	require.Contains(t, m.Attributes, "accepted_statuscodes")
}

func TestMonitorEqualIgnoresParentName(t *testing.T) {
	a := NewMonitor(MonitorTypeHTTP, "site")
	b := NewMonitor(MonitorTypeHTTP, "site")
	a.ParentName = strp("group-a")
	b.ParentName = strp("group-b")
	a.Attributes["url"] = "https://example.com"
	b.Attributes["url"] = "https://example.com"

	require.True(t, a.Equal(b))
}

func TestMonitorEqualComparesTagsBySet(t *testing.T) {
	a := NewMonitor(MonitorTypeHTTP, "site")
	b := NewMonitor(MonitorTypeHTTP, "site")
	a.Attributes["url"] = "https://example.com"
	b.Attributes["url"] = "https://example.com"

	tagA := MonitorTag{Name: strp("AutoKuma"), Value: strp("site")}
	tagB := MonitorTag{Name: strp("env"), Value: strp("prod")}
	a.Tags = []MonitorTag{tagA, tagB}
	b.Tags = []MonitorTag{tagB, tagA}

	require.True(t, a.Equal(b))

	b.Tags = []MonitorTag{tagA}
	require.False(t, a.Equal(b))
}

func TestMonitorRoundTripsMarshal(t *testing.T) {
	m := NewMonitor(MonitorTypePort, "ssh")
	m.Attributes["hostname"] = "10.0.0.1"
	m.Attributes["port"] = 22

	b, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded Monitor
	require.NoError(t, json.Unmarshal(b, &decoded))
	require.Equal(t, m.Name, decoded.Name)
	require.Equal(t, "10.0.0.1", decoded.Attributes["hostname"])
}
