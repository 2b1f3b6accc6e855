// Package reconcile drives the core control loop: assemble the desired
// state from every configured source, diff it against what the
// identifier store remembers, and issue the minimal set of Kuma RPCs to
// converge - creating missing entities, updating changed ones, and
// (subject to policy) deleting ones no longer desired.
package reconcile

import (
	"context"
	"time"

	"github.com/autokuma-go/autokuma/internal/kuma"
	"github.com/autokuma-go/autokuma/internal/model"
	"github.com/autokuma-go/autokuma/internal/store"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// OnDelete controls what happens to a remote entity whose desired
// definition has disappeared: Delete removes it from Kuma, Keep leaves
// it in place (and forgets it in the identifier store, so it will no
// longer be tracked but won't be touched either).
type OnDelete string

const (
	OnDeleteDelete OnDelete = "delete"
	OnDeleteKeep   OnDelete = "keep"
)

// DesiredState is the fully assembled configuration every source
// contributed to, keyed by each entity's stable logical name.
type DesiredState struct {
	Monitors      map[string]*model.Monitor
	Notifications map[string]*model.Notification
	DockerHosts   map[string]*model.DockerHost
}

// SourceFunc produces the current desired state from whichever sources
// are configured (docker labels, static files, cluster CRDs), merged
// together.
type SourceFunc func(ctx context.Context) (DesiredState, error)

// Config controls reconcile behavior.
type Config struct {
	TagName      string
	TagColor     string
	OnDelete     OnDelete
	SyncInterval time.Duration
}

// Reconciler owns one sync loop against one Kuma instance.
type Reconciler struct {
	log    log.Logger
	kuma   *kuma.Client
	store  *store.Store
	source SourceFunc
	cfg    Config
}

func New(logger log.Logger, k *kuma.Client, s *store.Store, source SourceFunc, cfg Config) *Reconciler {
	if cfg.TagName == "" {
		cfg.TagName = "AutoKuma"
	}
	if cfg.TagColor == "" {
		cfg.TagColor = "#42C0FB"
	}
	if cfg.OnDelete == "" {
		cfg.OnDelete = OnDeleteDelete
	}
	if cfg.SyncInterval == 0 {
		cfg.SyncInterval = 5 * time.Second
	}
	return &Reconciler{log: logger, kuma: k, store: s, source: source, cfg: cfg}
}

// Run executes reconcile cycles back to back, sleeping cfg.SyncInterval
// after each cycle completes (not on a fixed-rate ticker, so a slow
// cycle never causes cycles to pile up) until ctx is cancelled.
func (r *Reconciler) Run(ctx context.Context) error {
	for {
		if err := r.runCycle(ctx); err != nil {
			level.Error(r.log).Log("msg", "reconcile cycle failed", "err", err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.cfg.SyncInterval):
		}
	}
}

func (r *Reconciler) runCycle(ctx context.Context) error {
	start := time.Now()
	level.Info(r.log).Log("msg", "starting reconcile cycle")

	tagID, err := r.kuma.EnsureTag(ctx, r.cfg.TagName, r.cfg.TagColor)
	if err != nil {
		return err
	}

	desired, err := r.source(ctx)
	if err != nil {
		return err
	}

	if err := r.reconcileNotifications(ctx, desired.Notifications); err != nil {
		level.Error(r.log).Log("msg", "notification reconcile error", "err", err)
	}
	if err := r.reconcileDockerHosts(ctx, desired.DockerHosts); err != nil {
		level.Error(r.log).Log("msg", "docker host reconcile error", "err", err)
	}
	if err := r.reconcileMonitors(ctx, desired.Monitors, tagID); err != nil {
		level.Error(r.log).Log("msg", "monitor reconcile error", "err", err)
	}

	level.Info(r.log).Log("msg", "reconcile cycle finished", "duration", time.Since(start).String())
	return nil
}

func (r *Reconciler) markerTag(value string, tagID int64) model.MonitorTag {
	name := r.cfg.TagName
	v := value
	return model.MonitorTag{TagID: &tagID, Name: &name, Value: &v}
}
