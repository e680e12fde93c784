package helpers

import (
	"fmt"

	"github.com/devantler-tech/kubedrift/pkg/apis/drift/v1alpha1"
	"github.com/devantler-tech/kubedrift/pkg/fsutil"
	"github.com/devantler-tech/kubedrift/pkg/k8s"
)

// KubeconfigPathFromConfig extracts and expands the kubeconfig path from a
// loaded drift config. If the config doesn't specify a kubeconfig path, the
// default path for the current user is used.
//
// The function always expands tilde (~) characters in the path to the user's
// home directory, regardless of whether the path came from the config or is
// the default.
func KubeconfigPathFromConfig(cfg *v1alpha1.Drift) (string, error) {
	kubeconfigPath := cfg.Spec.Connection.Kubeconfig
	if kubeconfigPath == "" {
		kubeconfigPath = k8s.DefaultKubeconfigPath()
	}

	expandedPath, err := fsutil.ExpandHomePath(kubeconfigPath)
	if err != nil {
		return "", fmt.Errorf("failed to expand kubeconfig path: %w", err)
	}

	return expandedPath, nil
}
