package reconcile

import (
	"context"

	"github.com/autokuma-go/autokuma/internal/model"
	"github.com/go-kit/log/level"
)

func (r *Reconciler) reconcileDockerHosts(ctx context.Context, desired map[string]*model.DockerHost) error {
	stored, err := r.store.List(model.KindDockerHost)
	if err != nil {
		return err
	}
	p := buildPlan(desired, stored)

	for _, c := range p.Create {
		id, err := r.kuma.AddDockerHost(ctx, c.Entity)
		if err != nil {
			level.Error(r.log).Log("msg", "failed to create docker host", "name", c.Name, "err", err)
			continue
		}
		if err := r.store.StoreID(model.Name{Kind: model.KindDockerHost, Value: c.Name}, id); err != nil {
			level.Error(r.log).Log("msg", "failed to persist docker host id", "name", c.Name, "err", err)
		}
	}

	for _, u := range p.Update {
		if err := r.kuma.EditDockerHost(ctx, u.RemoteID, u.Entity); err != nil {
			level.Error(r.log).Log("msg", "failed to update docker host", "name", u.Name, "err", err)
		}
	}

	for _, name := range p.Delete {
		id, ok := stored[name]
		if !ok {
			continue
		}
		if r.cfg.OnDelete == OnDeleteDelete {
			if err := r.kuma.DeleteDockerHost(ctx, id); err != nil {
				level.Error(r.log).Log("msg", "failed to delete docker host", "name", name, "err", err)
				continue
			}
		}
		if err := r.store.DeleteID(model.Name{Kind: model.KindDockerHost, Value: name}); err != nil {
			level.Error(r.log).Log("msg", "failed to forget docker host id", "name", name, "err", err)
		}
	}

	live, err := r.kuma.GetDockerHosts(ctx)
	if err != nil {
		return err
	}
	liveIDs := map[int64]bool{}
	for _, h := range live {
		if h.ID != nil {
			liveIDs[*h.ID] = true
		}
	}
	return r.store.Clean(model.KindDockerHost, liveIDs)
}
