package reconcile

import (
	"context"

	"github.com/autokuma-go/autokuma/internal/model"
	"github.com/go-kit/log/level"
)

func (r *Reconciler) reconcileNotifications(ctx context.Context, desired map[string]*model.Notification) error {
	stored, err := r.store.List(model.KindNotification)
	if err != nil {
		return err
	}
	p := buildPlan(desired, stored)

	for _, c := range p.Create {
		id, err := r.kuma.AddNotification(ctx, c.Entity)
		if err != nil {
			level.Error(r.log).Log("msg", "failed to create notification", "name", c.Name, "err", err)
			continue
		}
		if err := r.store.StoreID(model.Name{Kind: model.KindNotification, Value: c.Name}, id); err != nil {
			level.Error(r.log).Log("msg", "failed to persist notification id", "name", c.Name, "err", err)
		}
	}

	live := r.kuma.GetNotifications()
	for _, u := range p.Update {
		liveN, ok := findByID(live, u.RemoteID)
		if !ok {
			continue
		}
		if liveN.Equal(u.Entity) {
			continue
		}
		if err := r.kuma.EditNotification(ctx, u.RemoteID, liveN, u.Entity); err != nil {
			level.Error(r.log).Log("msg", "failed to update notification", "name", u.Name, "err", err)
		}
	}

	for _, name := range p.Delete {
		id, ok := stored[name]
		if !ok {
			continue
		}
		if r.cfg.OnDelete == OnDeleteDelete {
			if err := r.kuma.DeleteNotification(ctx, id); err != nil {
				level.Error(r.log).Log("msg", "failed to delete notification", "name", name, "err", err)
				continue
			}
		}
		if err := r.store.DeleteID(model.Name{Kind: model.KindNotification, Value: name}); err != nil {
			level.Error(r.log).Log("msg", "failed to forget notification id", "name", name, "err", err)
		}
	}

	liveIDs := map[int64]bool{}
	for _, n := range live {
		if n.ID != nil {
			liveIDs[*n.ID] = true
		}
	}
	return r.store.Clean(model.KindNotification, liveIDs)
}

func findByID(byName map[string]*model.Notification, id int64) (*model.Notification, bool) {
	for _, n := range byName {
		if n.ID != nil && *n.ID == id {
			return n, true
		}
	}
	return nil, false
}
