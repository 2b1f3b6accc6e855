package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

// GroupVersion is the API group and version used to register these
// types, matching the domain AutoKuma's CRDs are installed under.
var GroupVersion = schema.GroupVersion{Group: "autokuma.io", Version: "v1alpha1"}

var (
	SchemeBuilder = runtime.NewSchemeBuilder(addKnownTypes)
	AddToScheme   = SchemeBuilder.AddToScheme
)

func addKnownTypes(scheme *runtime.Scheme) error {
	scheme.AddKnownTypes(GroupVersion,
		&Monitor{}, &MonitorList{},
		&Notification{}, &NotificationList{},
		&DockerHost{}, &DockerHostList{},
	)
	metav1.AddToGroupVersion(scheme, GroupVersion)
	return nil
}
