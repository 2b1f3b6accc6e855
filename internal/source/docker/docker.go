// Package docker implements the container-label desired-state source:
// it lists running containers (and, in Swarm mode, services) and turns
// any label starting with the configured prefix (default "kuma.") into
// a compile.Source, stripping the prefix so the remainder reads as the
// usual "<id>.<type>.<field>" path (or "__<snippet>.<id>" for a snippet
// application).
package docker

import (
	"context"
	"strings"

	"github.com/autokuma-go/autokuma/internal/compile"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/swarm"
	"github.com/docker/docker/client"
	"github.com/pkg/errors"
)

// Source reads desired-state labels from the Docker Engine API.
type Source struct {
	cli    *client.Client
	prefix string
}

// New connects to the Docker daemon referenced by host (empty string
// uses the environment's DOCKER_HOST / default socket).
func New(host, prefix string) (*Source, error) {
	opts := []client.Opt{client.FromEnv, client.WithAPIVersionNegotiation()}
	if host != "" {
		opts = append(opts, client.WithHost(host))
	}
	cli, err := client.NewClientWithOpts(opts...)
	if err != nil {
		return nil, errors.Wrap(err, "connecting to docker daemon")
	}
	if prefix == "" {
		prefix = "kuma."
	}
	return &Source{cli: cli, prefix: prefix}, nil
}

func (s *Source) Close() error {
	return s.cli.Close()
}

// Collect gathers labels from every running container, plus every
// service if the daemon is part of a Swarm, and returns them as
// compile.Sources.
func (s *Source) Collect(ctx context.Context) ([]compile.Source, error) {
	var sources []compile.Source

	containers, err := s.cli.ContainerList(ctx, container.ListOptions{})
	if err != nil {
		return nil, errors.Wrap(err, "listing containers")
	}
	for _, c := range containers {
		sources = append(sources, labelsToSources(s.prefix, c.Labels)...)
	}

	services, err := s.cli.ServiceList(ctx, swarm.ServiceListOptions{})
	if err == nil {
		for _, svc := range services {
			sources = append(sources, labelsToSources(s.prefix, svc.Spec.Labels)...)
		}
	}

	return sources, nil
}

func labelsToSources(prefix string, labels map[string]string) []compile.Source {
	var out []compile.Source
	for k, v := range labels {
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		out = append(out, compile.Source{Key: strings.TrimPrefix(k, prefix), Value: v})
	}
	return out
}
