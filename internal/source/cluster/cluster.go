// Package cluster implements the cluster desired-state source: it lists
// the Monitor, Notification and DockerHost custom resources installed in
// the Kubernetes cluster AutoKuma runs in and converts them directly
// into compile.Entity values (CRD fields already arrive pre-grouped, so
// the snippet/grouping stages of the compiler pipeline are skipped -
// only template rendering still applies).
package cluster

import (
	"context"

	akv1alpha1 "github.com/autokuma-go/autokuma/internal/apis/autokuma/v1alpha1"
	"github.com/autokuma-go/autokuma/internal/compile"
	"github.com/pkg/errors"
	"sigs.k8s.io/controller-runtime/pkg/client"
)

// Source reads desired-state entities from a Kubernetes API server via
// a controller-runtime client.
type Source struct {
	client client.Client
	render compile.TemplateFunc
}

func New(c client.Client, render compile.TemplateFunc) *Source {
	return &Source{client: c, render: render}
}

// Collect lists every Monitor, Notification and DockerHost custom
// resource in the cluster and returns them as compiled entities.
func (s *Source) Collect(ctx context.Context) ([]compile.Entity, error) {
	var entities []compile.Entity

	var monitors akv1alpha1.MonitorList
	if err := s.client.List(ctx, &monitors); err != nil {
		return nil, errors.Wrap(err, "listing Monitor resources")
	}
	for _, m := range monitors.Items {
		fields := map[string]any{"type": m.Spec.Type}
		for k, v := range m.Spec.Fields {
			fields[k] = v
		}
		rendered, err := compile.RenderFields(fields, s.render)
		if err != nil {
			return nil, errors.Wrapf(err, "monitor %q", m.Name)
		}
		entities = append(entities, compile.Entity{EntityType: "monitor", ID: m.Name, Fields: rendered})
	}

	var notifications akv1alpha1.NotificationList
	if err := s.client.List(ctx, &notifications); err != nil {
		return nil, errors.Wrap(err, "listing Notification resources")
	}
	for _, n := range notifications.Items {
		fields := map[string]any{"type": n.Spec.Type}
		for k, v := range n.Spec.Fields {
			fields[k] = v
		}
		rendered, err := compile.RenderFields(fields, s.render)
		if err != nil {
			return nil, errors.Wrapf(err, "notification %q", n.Name)
		}
		entities = append(entities, compile.Entity{EntityType: "notification", ID: n.Name, Fields: rendered})
	}

	var hosts akv1alpha1.DockerHostList
	if err := s.client.List(ctx, &hosts); err != nil {
		return nil, errors.Wrap(err, "listing DockerHost resources")
	}
	for _, h := range hosts.Items {
		fields := map[string]any{}
		for k, v := range h.Spec.Fields {
			fields[k] = v
		}
		rendered, err := compile.RenderFields(fields, s.render)
		if err != nil {
			return nil, errors.Wrapf(err, "docker host %q", h.Name)
		}
		entities = append(entities, compile.Entity{EntityType: "docker_host", ID: h.Name, Fields: rendered})
	}

	return entities, nil
}
