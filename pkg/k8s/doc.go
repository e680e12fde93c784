// Package k8s provides Kubernetes client configuration utilities.
//
// This package offers reusable utilities for connecting to Kubernetes
// clusters, centered on REST client configuration from kubeconfig files.
//
// Key features:
//   - REST config building from kubeconfig files (BuildRESTConfig)
//   - Default kubeconfig path resolution (DefaultKubeconfigPath)
package k8s
