package compile

import (
	"encoding/json"
	"fmt"

	"github.com/autokuma-go/autokuma/internal/model"
)

// ToMonitor converts a compiled entity's field bag into a model.Monitor,
// round-tripping through JSON so numeric/bool fields decoded as strings
// by the TOML/template stage land in the right Go types via
// internal/codec's lenient decoding.
func ToMonitor(e Entity) (*model.Monitor, error) {
	typ, _ := e.Fields["type"].(string)
	if typ == "" {
		return nil, fmt.Errorf("entity %q: missing monitor type", e.ID)
	}

	m := model.NewMonitor(model.MonitorType(typ), e.ID)
	fields := map[string]any{}
	for k, v := range e.Fields {
		if k == "type" || k == "name" {
			continue
		}
		fields[k] = v
	}
	if name, ok := e.Fields["name"].(string); ok && name != "" {
		m.Name = name
	}

	b, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	var overlay model.Monitor
	overlay.Attributes = map[string]any{}
	if err := json.Unmarshal(b, &overlay); err != nil {
		return nil, fmt.Errorf("entity %q: %w", e.ID, err)
	}

	if overlay.Interval != 0 {
		m.Interval = overlay.Interval
	}
	if overlay.RetryInterval != 0 {
		m.RetryInterval = overlay.RetryInterval
	}
	m.ResendInterval = overlay.ResendInterval
	m.MaxRetries = overlay.MaxRetries
	if overlay.Description != nil {
		m.Description = overlay.Description
	}
	if overlay.ParentName != nil {
		m.ParentName = overlay.ParentName
	}
	if _, ok := fields["active"]; ok {
		m.Active = overlay.Active
	}
	for k, v := range overlay.Attributes {
		m.Attributes[k] = v
	}
	return m, nil
}

// ToNotification converts a compiled entity into a model.Notification.
func ToNotification(e Entity) (*model.Notification, error) {
	typ, _ := e.Fields["type"].(string)
	if typ == "" {
		return nil, fmt.Errorf("entity %q: missing notification type", e.ID)
	}
	n := model.NewNotification(typ, e.ID)
	for k, v := range e.Fields {
		if k == "type" || k == "name" {
			continue
		}
		n.Config[k] = v
	}
	return n, nil
}

// ToDockerHost converts a compiled entity into a model.DockerHost.
func ToDockerHost(e Entity) (*model.DockerHost, error) {
	h := &model.DockerHost{Name: e.ID}
	if v, ok := e.Fields["docker_daemon"].(string); ok {
		h.DockerDaemon = v
	}
	if v, ok := e.Fields["docker_type"].(string); ok {
		h.DockerType = v
	}
	return h, nil
}
