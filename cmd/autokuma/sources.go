package main

import (
	"context"

	"github.com/autokuma-go/autokuma/internal/compile"
	"github.com/autokuma-go/autokuma/internal/config"
	"github.com/autokuma-go/autokuma/internal/model"
	"github.com/autokuma-go/autokuma/internal/reconcile"
	"github.com/autokuma-go/autokuma/internal/source/cluster"
	"github.com/autokuma-go/autokuma/internal/source/docker"
	"github.com/autokuma-go/autokuma/internal/source/file"
	"github.com/go-kit/log"
	"github.com/pkg/errors"
)

// sourceSet wires whichever desired-state sources are enabled into a
// single reconcile.SourceFunc: collect raw key/value pairs from docker
// labels and static files, run them through the entity compiler, add
// any cluster CRD entities (which arrive pre-compiled), and convert the
// result into a reconcile.DesiredState.
type sourceSet struct {
	cfg      *config.Config
	docker   *docker.Source
	cluster  *cluster.Source
	render   compile.TemplateFunc
	log      log.Logger
	defaults compile.Defaults
}

func newSourceSet(cfg *config.Config, dockerSrc *docker.Source, clusterSrc *cluster.Source, logger log.Logger) *sourceSet {
	return &sourceSet{
		cfg:      cfg,
		docker:   dockerSrc,
		cluster:  clusterSrc,
		render:   compile.NewRenderer(),
		log:      logger,
		defaults: compile.ParseDefaultSettings(cfg.DefaultSettings),
	}
}

func (s *sourceSet) collect(ctx context.Context) (reconcile.DesiredState, error) {
	var raw []compile.Source
	var entities []compile.Entity

	if s.docker != nil {
		dockerSources, err := s.docker.Collect(ctx)
		if err != nil {
			return reconcile.DesiredState{}, errors.Wrap(err, "collecting docker labels")
		}
		raw = append(raw, dockerSources...)
	}

	if s.cfg.File.Enabled {
		fileSources, err := file.Read(s.cfg.File.Dir, s.cfg.File.Pattern)
		if err != nil {
			return reconcile.DesiredState{}, errors.Wrap(err, "collecting static files")
		}
		raw = append(raw, fileSources...)
	}

	if len(raw) > 0 {
		compiled, err := compile.Compile(raw, s.defaults, s.cfg.Snippets, s.render, s.log)
		if err != nil {
			return reconcile.DesiredState{}, errors.Wrap(err, "compiling entities")
		}
		entities = append(entities, compiled...)
	}

	if s.cluster != nil {
		clusterEntities, err := s.cluster.Collect(ctx)
		if err != nil {
			return reconcile.DesiredState{}, errors.Wrap(err, "collecting cluster resources")
		}
		entities = append(entities, clusterEntities...)
	}

	return toDesiredState(entities)
}

func toDesiredState(entities []compile.Entity) (reconcile.DesiredState, error) {
	desired := reconcile.DesiredState{
		Monitors:      map[string]*model.Monitor{},
		Notifications: map[string]*model.Notification{},
		DockerHosts:   map[string]*model.DockerHost{},
	}

	for _, e := range entities {
		switch e.EntityType {
		case "monitor":
			m, err := compile.ToMonitor(e)
			if err != nil {
				return desired, err
			}
			desired.Monitors[e.ID] = m
		case "notification":
			n, err := compile.ToNotification(e)
			if err != nil {
				return desired, err
			}
			desired.Notifications[e.ID] = n
		case "docker_host":
			h, err := compile.ToDockerHost(e)
			if err != nil {
				return desired, err
			}
			desired.DockerHosts[e.ID] = h
		}
	}

	return desired, nil
}
