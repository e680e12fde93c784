package v1alpha1

import metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

const (
	// Group is the API group for KubeDrift.
	Group = "kubedrift.io"
	// Version is the API version for KubeDrift.
	Version = "v1alpha1"
	// Kind is the kind for KubeDrift drift configurations.
	Kind = "Drift"
	// APIVersion is the full API version for KubeDrift.
	APIVersion = Group + "/" + Version
)

// Drift represents a KubeDrift configuration including API metadata and the
// desired comparison setup. It contains TypeMeta for API versioning
// information and Spec for the desired drift check behavior.
type Drift struct {
	metav1.TypeMeta `json:",inline" mapstructure:",squash"`

	Spec Spec `json:"spec,omitzero" mapstructure:"spec,omitempty"`
}

// Spec defines the desired drift check setup.
type Spec struct {
	// SourcePaths are the local manifest sources (plain YAML files or
	// directories, kustomizations, or helm chart directories) rendered into
	// the desired state.
	SourcePaths []string `json:"sourcePaths,omitzero"`

	Connection Connection `json:"connection,omitzero"`
	Diff       DiffSpec   `json:"diff,omitzero"`
	Helm       HelmSpec   `json:"helm,omitzero"`
}

// Connection defines how to reach the cluster whose state is compared.
type Connection struct {
	Kubeconfig string          `default:"~/.kube/config" json:"kubeconfig,omitzero"`
	Context    string          `                         json:"context,omitzero"`
	Timeout    metav1.Duration `                         json:"timeout,omitzero"`
}

// DiffSpec defines how differences are computed and reported.
type DiffSpec struct {
	// LastApplied selects the last-applied-configuration annotation as the
	// cluster-side comparison baseline instead of the live object state.
	LastApplied bool `json:"lastApplied,omitzero"`
	// ShowDeleted lists the whole cluster so objects absent from the local
	// sources surface as deletions, instead of fetching only referenced objects.
	ShowDeleted bool `json:"showDeleted,omitzero"`
}

// HelmSpec defines options for helm chart sources.
type HelmSpec struct {
	// ReleaseName is the release name used when rendering chart sources.
	ReleaseName string `json:"releaseName,omitzero"`
	// Namespace is the release namespace used when rendering chart sources.
	Namespace string `json:"namespace,omitzero"`
	// ValuesFiles are additional values files merged over the chart defaults.
	ValuesFiles []string `json:"valuesFiles,omitzero"`
	// SetValues are value overrides in helm --set notation, applied after
	// values files.
	SetValues []string `json:"setValues,omitzero"`
}
