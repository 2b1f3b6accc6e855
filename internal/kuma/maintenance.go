package kuma

import (
	"context"

	"github.com/autokuma-go/autokuma/internal/model"
	"github.com/pkg/errors"
)

func (c *Client) GetMaintenances() map[string]*model.Maintenance {
	c.ready.mu.RLock()
	defer c.ready.mu.RUnlock()
	out := make(map[string]*model.Maintenance, len(c.ready.maintenance))
	for k, v := range c.ready.maintenance {
		out[k] = v
	}
	return out
}

// AddMaintenance is a composite call: Kuma's addMaintenance event
// creates the window, and a second call (addMonitorMaintenance) assigns
// monitors to it, so both are issued in sequence here. Status pages are
// not attached.
func (c *Client) AddMaintenance(ctx context.Context, m *model.Maintenance) (int64, error) {
	payload, err := c.call(ctx, "addMaintenance", "/maintenanceID", m)
	if err != nil {
		return 0, errors.Wrap(err, "add maintenance")
	}
	id, err := asInt64(payload)
	if err != nil {
		return 0, err
	}
	if len(m.MonitorIDs) > 0 {
		if err := c.assignMonitors(ctx, id, m.MonitorIDs); err != nil {
			return id, err
		}
	}
	return id, nil
}

func (c *Client) EditMaintenance(ctx context.Context, id int64, m *model.Maintenance) error {
	withID := *m
	withID.ID = &id
	if _, err := c.call(ctx, "editMaintenance", "/", &withID); err != nil {
		return errors.Wrap(err, "edit maintenance")
	}
	return c.assignMonitors(ctx, id, m.MonitorIDs)
}

func (c *Client) assignMonitors(ctx context.Context, id int64, monitorIDs []int64) error {
	monitors := make([]map[string]int64, len(monitorIDs))
	for i, mid := range monitorIDs {
		monitors[i] = map[string]int64{"id": mid}
	}
	_, err := c.call(ctx, "addMonitorMaintenance", "/", id, monitors)
	return errors.Wrap(err, "assign monitors to maintenance")
}

func (c *Client) DeleteMaintenance(ctx context.Context, id int64) error {
	_, err := c.call(ctx, "deleteMaintenance", "/", id)
	return errors.Wrap(err, "delete maintenance")
}
