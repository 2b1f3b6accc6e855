// Package v1alpha1 contains the custom resource types the cluster
// desired-state source watches: Monitor, Notification and DockerHost,
// each a thin CRD wrapper around the same dotted field bag the docker
// label and static file sources produce.
package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
)

// Fields holds arbitrary entity field values, matching the field bag
// internal/compile.Entity carries - kept untyped so new Kuma fields and
// monitor subtypes don't require a CRD schema change to pass through.
// +kubebuilder:pruning:PreserveUnknownFields
type Fields map[string]any

func (in Fields) DeepCopy() Fields {
	if in == nil {
		return nil
	}
	out := make(Fields, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// +kubebuilder:object:root=true
// +kubebuilder:resource:scope=Cluster

// Monitor is the CRD form of a desired Kuma monitor.
type Monitor struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec MonitorSpec `json:"spec"`
}

type MonitorSpec struct {
	Type   string `json:"type"`
	Fields Fields `json:"fields,omitempty"`
}

// +kubebuilder:object:root=true

// MonitorList is a list of Monitor.
type MonitorList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []Monitor `json:"items"`
}

// +kubebuilder:object:root=true
// +kubebuilder:resource:scope=Cluster

// Notification is the CRD form of a desired Kuma notification provider.
type Notification struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec NotificationSpec `json:"spec"`
}

type NotificationSpec struct {
	Type   string `json:"type"`
	Fields Fields `json:"fields,omitempty"`
}

// +kubebuilder:object:root=true

// NotificationList is a list of Notification.
type NotificationList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []Notification `json:"items"`
}

// +kubebuilder:object:root=true
// +kubebuilder:resource:scope=Cluster

// DockerHost is the CRD form of a desired Kuma docker host.
type DockerHost struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec DockerHostSpec `json:"spec"`
}

type DockerHostSpec struct {
	Fields Fields `json:"fields,omitempty"`
}

// +kubebuilder:object:root=true

// DockerHostList is a list of DockerHost.
type DockerHostList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []DockerHost `json:"items"`
}

func (in *Monitor) DeepCopyObject() runtime.Object {
	if in == nil {
		return nil
	}
	out := *in
	out.ObjectMeta = *in.ObjectMeta.DeepCopy()
	out.Spec.Fields = in.Spec.Fields.DeepCopy()
	return &out
}

func (in *MonitorList) DeepCopyObject() runtime.Object {
	out := *in
	out.Items = make([]Monitor, len(in.Items))
	for i := range in.Items {
		out.Items[i] = *in.Items[i].DeepCopyObject().(*Monitor)
	}
	return &out
}

func (in *Notification) DeepCopyObject() runtime.Object {
	if in == nil {
		return nil
	}
	out := *in
	out.ObjectMeta = *in.ObjectMeta.DeepCopy()
	out.Spec.Fields = in.Spec.Fields.DeepCopy()
	return &out
}

func (in *NotificationList) DeepCopyObject() runtime.Object {
	out := *in
	out.Items = make([]Notification, len(in.Items))
	for i := range in.Items {
		out.Items[i] = *in.Items[i].DeepCopyObject().(*Notification)
	}
	return &out
}

func (in *DockerHost) DeepCopyObject() runtime.Object {
	if in == nil {
		return nil
	}
	out := *in
	out.ObjectMeta = *in.ObjectMeta.DeepCopy()
	out.Spec.Fields = in.Spec.Fields.DeepCopy()
	return &out
}

func (in *DockerHostList) DeepCopyObject() runtime.Object {
	out := *in
	out.Items = make([]DockerHost, len(in.Items))
	for i := range in.Items {
		out.Items[i] = *in.Items[i].DeepCopyObject().(*DockerHost)
	}
	return &out
}
