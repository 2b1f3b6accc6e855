package reconcile

import (
	"context"
	"sort"
	"strconv"

	"github.com/autokuma-go/autokuma/internal/model"
	"github.com/go-kit/log/level"
)

func (r *Reconciler) reconcileMonitors(ctx context.Context, desired map[string]*model.Monitor, tagID int64) error {
	live := r.kuma.GetMonitors()

	// The current managed set is read off the live marker-tag scan, not
	// the identifier store: a monitor carrying the marker tag is managed
	// regardless of whether this store happens to know about it (a fresh
	// or lost store must not cause it to be recreated).
	liveIDs := map[int64]bool{}
	current := map[string]int64{}
	for idStr, m := range live {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			continue
		}
		liveIDs[id] = true
		if name, ok := managedMonitorName(m, r.cfg.TagName); ok {
			current[name] = id
		}
	}

	// The store only fills in identity for names the live scan missed
	// (e.g. a monitor edited out-of-band so its tag value changed) but
	// whose stored id is still live.
	stored, err := r.store.List(model.KindMonitor)
	if err != nil {
		return err
	}
	for name, id := range stored {
		if _, ok := current[name]; !ok && liveIDs[id] {
			current[name] = id
		}
	}

	p := buildPlan(desired, current)

	// Group monitors must exist before any monitor that references them
	// as a parent, so creates run group-typed monitors first.
	sort.SliceStable(p.Create, func(i, j int) bool {
		return p.Create[i].Entity.Type == model.MonitorTypeGroup && p.Create[j].Entity.Type != model.MonitorTypeGroup
	})

	for _, c := range p.Create {
		m := c.Entity
		r.resolveParent(m)
		m.Tags = append(m.Tags, r.markerTag(c.Name, tagID))
		id, err := r.kuma.AddMonitor(ctx, m)
		if err != nil {
			level.Error(r.log).Log("msg", "failed to create monitor", "name", c.Name, "err", err)
			continue
		}
		if err := r.store.StoreID(model.Name{Kind: model.KindMonitor, Value: c.Name}, id); err != nil {
			level.Error(r.log).Log("msg", "failed to persist monitor id", "name", c.Name, "err", err)
		}
	}

	for _, u := range p.Update {
		m := u.Entity
		r.resolveParent(m)
		m.Tags = append(m.Tags, r.markerTag(u.Name, tagID))

		currentTags, unchanged := diffAgainstLive(live, u.RemoteID, m)
		if unchanged {
			continue
		}
		if err := r.kuma.EditMonitor(ctx, u.RemoteID, m, currentTags); err != nil {
			level.Error(r.log).Log("msg", "failed to update monitor", "name", u.Name, "err", err)
		}
	}

	for _, name := range p.Delete {
		id, ok := current[name]
		if !ok {
			continue
		}
		if r.cfg.OnDelete == OnDeleteDelete {
			if err := r.kuma.DeleteMonitor(ctx, id); err != nil {
				level.Error(r.log).Log("msg", "failed to delete monitor", "name", name, "err", err)
				continue
			}
		}
		if err := r.store.DeleteID(model.Name{Kind: model.KindMonitor, Value: name}); err != nil {
			level.Error(r.log).Log("msg", "failed to forget monitor id", "name", name, "err", err)
		}
	}

	return r.store.Clean(model.KindMonitor, liveIDs)
}

// managedMonitorName returns the marker-tag value identifying m as a
// managed monitor, if it carries one.
func managedMonitorName(m *model.Monitor, tagName string) (string, bool) {
	for _, tag := range m.Tags {
		if tag.Name != nil && *tag.Name == tagName && tag.Value != nil && *tag.Value != "" {
			return *tag.Value, true
		}
	}
	return "", false
}

func diffAgainstLive(live map[string]*model.Monitor, remoteID int64, desired *model.Monitor) ([]model.MonitorTag, bool) {
	lm, ok := live[strconv.FormatInt(remoteID, 10)]
	if !ok {
		return nil, false
	}
	return lm.Tags, lm.Equal(desired)
}

// resolveParent looks up a monitor's desired ParentName against the
// live push-cache and rewrites it to the numeric "parent" attribute Kuma
// expects, leaving it unset if the parent hasn't been created yet this
// cycle (it will resolve on the next one).
func (r *Reconciler) resolveParent(m *model.Monitor) {
	if m.ParentName == nil {
		return
	}
	if id, ok := r.kuma.ResolveGroup(*m.ParentName, r.cfg.TagName); ok {
		m.Attributes["parent"] = id
	}
}
