package configmanager

import (
	"time"

	"github.com/devantler-tech/kubedrift/pkg/apis/drift/v1alpha1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// FieldSelector defines a field and its metadata for configuration management.
type FieldSelector[T any] struct {
	Selector     func(*T) any // Function that returns a pointer to the field
	Description  string       // Human-readable description for CLI flags
	DefaultValue any          // Default value for the field
}

// DefaultKubeconfigFieldSelector creates a standard field selector for kubeconfig.
func DefaultKubeconfigFieldSelector() FieldSelector[v1alpha1.Drift] {
	return FieldSelector[v1alpha1.Drift]{
		Selector:     func(d *v1alpha1.Drift) any { return &d.Spec.Connection.Kubeconfig },
		Description:  "Path to kubeconfig file",
		DefaultValue: "~/.kube/config",
	}
}

// DefaultContextFieldSelector creates a standard field selector for kubernetes context.
// No default value is set so the kubeconfig's current context is used.
func DefaultContextFieldSelector() FieldSelector[v1alpha1.Drift] {
	return FieldSelector[v1alpha1.Drift]{
		Selector:    func(d *v1alpha1.Drift) any { return &d.Spec.Connection.Context },
		Description: "Kubernetes context of cluster",
	}
}

// DefaultTimeoutFieldSelector creates a standard field selector for the cluster timeout.
func DefaultTimeoutFieldSelector() FieldSelector[v1alpha1.Drift] {
	return FieldSelector[v1alpha1.Drift]{
		Selector:     func(d *v1alpha1.Drift) any { return &d.Spec.Connection.Timeout },
		Description:  "Timeout for cluster operations (e.g. 1m, 30s)",
		DefaultValue: metav1.Duration{Duration: 5 * time.Minute},
	}
}

// DefaultLastAppliedFieldSelector creates a standard field selector for the
// last-applied comparison baseline.
func DefaultLastAppliedFieldSelector() FieldSelector[v1alpha1.Drift] {
	return FieldSelector[v1alpha1.Drift]{
		Selector: func(d *v1alpha1.Drift) any { return &d.Spec.Diff.LastApplied },
		Description: "Compare against the last-applied-configuration annotation " +
			"instead of the live object state",
		DefaultValue: true,
	}
}

// DefaultShowDeletedFieldSelector creates a standard field selector for deletion reporting.
func DefaultShowDeletedFieldSelector() FieldSelector[v1alpha1.Drift] {
	return FieldSelector[v1alpha1.Drift]{
		Selector: func(d *v1alpha1.Drift) any { return &d.Spec.Diff.ShowDeleted },
		Description: "List all cluster resources so objects missing from the " +
			"local sources surface as deletions",
		DefaultValue: false,
	}
}

// DefaultHelmReleaseNameFieldSelector creates a field selector for the helm release name.
func DefaultHelmReleaseNameFieldSelector() FieldSelector[v1alpha1.Drift] {
	return FieldSelector[v1alpha1.Drift]{
		Selector:     func(d *v1alpha1.Drift) any { return &d.Spec.Helm.ReleaseName },
		Description:  "Release name used when rendering helm chart sources",
		DefaultValue: "kubedrift",
	}
}

// DefaultHelmNamespaceFieldSelector creates a field selector for the helm release namespace.
func DefaultHelmNamespaceFieldSelector() FieldSelector[v1alpha1.Drift] {
	return FieldSelector[v1alpha1.Drift]{
		Selector:     func(d *v1alpha1.Drift) any { return &d.Spec.Helm.Namespace },
		Description:  "Release namespace used when rendering helm chart sources",
		DefaultValue: "default",
	}
}

// DefaultHelmValuesFieldSelector creates a field selector for helm values files.
func DefaultHelmValuesFieldSelector() FieldSelector[v1alpha1.Drift] {
	return FieldSelector[v1alpha1.Drift]{
		Selector:    func(d *v1alpha1.Drift) any { return &d.Spec.Helm.ValuesFiles },
		Description: "Values files merged over chart defaults when rendering helm sources",
	}
}

// DefaultHelmSetFieldSelector creates a field selector for helm value overrides.
func DefaultHelmSetFieldSelector() FieldSelector[v1alpha1.Drift] {
	return FieldSelector[v1alpha1.Drift]{
		Selector:    func(d *v1alpha1.Drift) any { return &d.Spec.Helm.SetValues },
		Description: "Set helm values on the command line (can specify multiple or separate values with commas)",
	}
}

// DefaultDriftFieldSelectors returns the default field selectors shared by
// commands that load a Drift configuration.
func DefaultDriftFieldSelectors() []FieldSelector[v1alpha1.Drift] {
	return []FieldSelector[v1alpha1.Drift]{
		DefaultKubeconfigFieldSelector(),
		DefaultContextFieldSelector(),
		DefaultTimeoutFieldSelector(),
		DefaultLastAppliedFieldSelector(),
		DefaultShowDeletedFieldSelector(),
		DefaultHelmReleaseNameFieldSelector(),
		DefaultHelmNamespaceFieldSelector(),
		DefaultHelmValuesFieldSelector(),
		DefaultHelmSetFieldSelector(),
	}
}

// RenderFieldSelectors returns the field selectors for commands that only
// render local sources and never reach a cluster.
func RenderFieldSelectors() []FieldSelector[v1alpha1.Drift] {
	return []FieldSelector[v1alpha1.Drift]{
		DefaultHelmReleaseNameFieldSelector(),
		DefaultHelmNamespaceFieldSelector(),
		DefaultHelmValuesFieldSelector(),
		DefaultHelmSetFieldSelector(),
	}
}
