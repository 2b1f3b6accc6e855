package kuma

import (
	"context"

	"github.com/autokuma-go/autokuma/internal/model"
	"github.com/pkg/errors"
)

func (c *Client) GetNotifications() map[string]*model.Notification {
	c.ready.mu.RLock()
	defer c.ready.mu.RUnlock()
	out := make(map[string]*model.Notification, len(c.ready.notifications))
	for k, v := range c.ready.notifications {
		out[k] = v
	}
	return out
}

// AddNotification creates a new notification provider.
func (c *Client) AddNotification(ctx context.Context, n *model.Notification) (int64, error) {
	payload, err := c.call(ctx, "addNotification", "/id", n, false)
	if err != nil {
		return 0, errors.Wrap(err, "add notification")
	}
	return asInt64(payload)
}

// EditNotification merges the desired config on top of the currently
// live one before saving, so that fields Kuma's frontend populates but
// AutoKuma doesn't manage (e.g. provider-internal bookkeeping keys) are
// preserved rather than clobbered - mirroring add_notification's merge
// of the old and new config objects via serde_merge::omerge.
func (c *Client) EditNotification(ctx context.Context, id int64, live, desired *model.Notification) error {
	merged := *desired
	merged.ID = &id
	merged.IsDefault = live.IsDefault
	merged.Config = mergeConfig(live.Config, desired.Config)
	_, err := c.call(ctx, "addNotification", "/id", &merged, id)
	return errors.Wrap(err, "edit notification")
}

func (c *Client) DeleteNotification(ctx context.Context, id int64) error {
	_, err := c.call(ctx, "deleteNotification", "/", id)
	return errors.Wrap(err, "delete notification")
}

// mergeConfig overlays desired on top of live: keys present in desired
// win, keys only present in live are kept, matching serde_merge::omerge
// semantics from the Rust implementation.
func mergeConfig(live, desired map[string]any) map[string]any {
	out := map[string]any{}
	for k, v := range live {
		out[k] = v
	}
	for k, v := range desired {
		out[k] = v
	}
	return out
}
