package collector

import (
	"fmt"

	"github.com/devantler-tech/kubedrift/pkg/k8s"
	"k8s.io/client-go/discovery"
	"k8s.io/client-go/dynamic"
)

// Factory creates collectors bound to a cluster connection.
type Factory interface {
	// Create builds a Collector for the cluster selected by the given
	// kubeconfig path and context.
	Create(kubeconfigPath, contextName string) (*Collector, error)
}

// DefaultFactory builds collectors from kubeconfig files.
type DefaultFactory struct{}

// Create implements Factory.
func (DefaultFactory) Create(kubeconfigPath, contextName string) (*Collector, error) {
	restConfig, err := k8s.BuildRESTConfig(kubeconfigPath, contextName)
	if err != nil {
		return nil, fmt.Errorf("build rest config: %w", err)
	}

	dynamicClient, err := dynamic.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("create dynamic client: %w", err)
	}

	discoveryClient, err := discovery.NewDiscoveryClientForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("create discovery client: %w", err)
	}

	return NewCollector(dynamicClient, discoveryClient), nil
}
