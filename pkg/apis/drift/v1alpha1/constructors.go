package v1alpha1

import metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

// NewDrift creates a new Drift with default values applied.
func NewDrift() *Drift {
	return &Drift{
		TypeMeta: metav1.TypeMeta{
			Kind:       Kind,
			APIVersion: APIVersion,
		},
		Spec: NewSpec(),
	}
}

// NewSpec creates a new Spec with default values.
func NewSpec() Spec {
	return Spec{
		SourcePaths: nil,
		Connection:  NewConnection(),
		Diff:        NewDiffSpec(),
		Helm:        NewHelmSpec(),
	}
}

// NewConnection creates a new Connection with default values.
func NewConnection() Connection {
	return Connection{
		Kubeconfig: "",
		Context:    "",
		Timeout:    metav1.Duration{Duration: 0},
	}
}

// NewDiffSpec creates a new DiffSpec with default values.
// Comparing against the last-applied snapshot is the default, matching the
// behavior of declarative apply workflows where imperative edits are noise.
func NewDiffSpec() DiffSpec {
	return DiffSpec{
		LastApplied: true,
		ShowDeleted: false,
	}
}

// NewHelmSpec creates a new HelmSpec with default values.
func NewHelmSpec() HelmSpec {
	return HelmSpec{
		ReleaseName: "kubedrift",
		Namespace:   "default",
		ValuesFiles: nil,
		SetValues:   nil,
	}
}
