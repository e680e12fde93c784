// Package validate checks rendered records against their Kubernetes
// schemas with kubeconform.
package validate
