package kuma

import (
	"context"
	"encoding/json"

	"github.com/autokuma-go/autokuma/internal/model"
	"github.com/pkg/errors"
)

// GetMonitors returns the full push-cache of monitors currently known
// to the client, keyed by Kuma's numeric monitor ID formatted as a
// string (the shape monitorList arrives in).
func (c *Client) GetMonitors() map[string]*model.Monitor {
	c.ready.mu.RLock()
	defer c.ready.mu.RUnlock()
	out := make(map[string]*model.Monitor, len(c.ready.monitors))
	for k, v := range c.ready.monitors {
		out[k] = v
	}
	return out
}

// AddMonitor creates a new monitor. If the monitor has a ParentName
// referencing a managed group monitor, the caller is expected to have
// already resolved that name to an ID and put it in
// Attributes["parent"] - ResolveGroup below does this resolution.
func (c *Client) AddMonitor(ctx context.Context, m *model.Monitor) (int64, error) {
	payload, err := c.call(ctx, "add", "/monitorID", m)
	if err != nil {
		return 0, errors.Wrap(err, "add monitor")
	}
	id, err := asInt64(payload)
	if err != nil {
		return 0, err
	}
	if _, err := c.call(ctx, "resumeMonitor", "/", id); err != nil {
		return 0, errors.Wrap(err, "activating new monitor")
	}
	return id, nil
}

// EditMonitor updates an existing monitor in place, then reconciles its
// tag assignments against currentTags via individual add/remove calls -
// Kuma's editMonitor event does not itself touch tags.
func (c *Client) EditMonitor(ctx context.Context, id int64, m *model.Monitor, currentTags []model.MonitorTag) error {
	withID := *m
	withID.ID = &id
	if _, err := c.call(ctx, "editMonitor", "/monitorID", withID); err != nil {
		return errors.Wrap(err, "edit monitor")
	}
	return c.UpdateMonitorTags(ctx, id, currentTags, m.Tags)
}

// DeleteMonitor removes a monitor by ID.
func (c *Client) DeleteMonitor(ctx context.Context, id int64) error {
	_, err := c.call(ctx, "deleteMonitor", "/", id)
	return errors.Wrap(err, "delete monitor")
}

func (c *Client) PauseMonitor(ctx context.Context, id int64) error {
	_, err := c.call(ctx, "pauseMonitor", "/", id)
	return errors.Wrap(err, "pause monitor")
}

func (c *Client) ResumeMonitor(ctx context.Context, id int64) error {
	_, err := c.call(ctx, "resumeMonitor", "/", id)
	return errors.Wrap(err, "resume monitor")
}

// UpdateMonitorTags diffs current against desired and issues the
// minimal set of addMonitorTag/deleteMonitorTag calls to converge.
func (c *Client) UpdateMonitorTags(ctx context.Context, id int64, current, desired []model.MonitorTag) error {
	diff := diffTags(current, desired)
	for _, t := range diff.Add {
		if _, err := c.call(ctx, "addMonitorTag", "/", t.TagID, id, t.Value); err != nil {
			return errors.Wrap(err, "add monitor tag")
		}
	}
	for _, t := range diff.Remove {
		if _, err := c.call(ctx, "deleteMonitorTag", "/", t.TagID, id, t.Value); err != nil {
			return errors.Wrap(err, "delete monitor tag")
		}
	}
	return nil
}

// ResolveGroup resolves a monitor's desired ParentName to the live
// parent monitor's numeric ID, looking it up in the current push-cache
// by its marker tag value. Returns (0, false) if no parent is set or it
// hasn't been created yet this cycle.
func (c *Client) ResolveGroup(parentName string, tagName string) (int64, bool) {
	c.ready.mu.RLock()
	defer c.ready.mu.RUnlock()
	for idStr, m := range c.ready.monitors {
		for _, tag := range m.Tags {
			if tag.Name != nil && *tag.Name == tagName && tag.Value != nil && *tag.Value == parentName {
				id, err := asInt64(idStr)
				if err == nil {
					return id, true
				}
			}
		}
	}
	return 0, false
}

func asInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case float64:
		return int64(n), nil
	case string:
		var i int64
		if err := json.Unmarshal([]byte(n), &i); err == nil {
			return i, nil
		}
	}
	return 0, errors.Errorf("cannot interpret %v (%T) as an id", v, v)
}
