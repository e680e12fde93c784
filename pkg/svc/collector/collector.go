package collector

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/discovery"
	"k8s.io/client-go/discovery/cached/memory"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/restmapper"
)

// listConcurrency bounds the number of resource listings in flight during
// all-resources collection.
const listConcurrency = 8

// Options selects how cluster state is collected.
type Options struct {
	// LastApplied compares against the last-applied-configuration annotation
	// of each collected record, falling back to the live body when a record
	// has no annotation.
	LastApplied bool

	// AllResources lists every listable object the cluster serves instead of
	// fetching only the records referenced by the desired set.
	AllResources bool
}

// Collector reads observed records from a cluster through the dynamic
// client.
type Collector struct {
	dynamic   dynamic.Interface
	discovery discovery.DiscoveryInterface
	mapper    meta.RESTMapper
}

// NewCollector creates a Collector with a discovery-backed REST mapper.
func NewCollector(
	dynamicClient dynamic.Interface,
	discoveryClient discovery.DiscoveryInterface,
) *Collector {
	mapper := restmapper.NewDeferredDiscoveryRESTMapper(memory.NewMemCacheClient(discoveryClient))

	return NewCollectorWithMapper(dynamicClient, discoveryClient, mapper)
}

// NewCollectorWithMapper creates a Collector with a provided REST mapper
// (for testing).
func NewCollectorWithMapper(
	dynamicClient dynamic.Interface,
	discoveryClient discovery.DiscoveryInterface,
	mapper meta.RESTMapper,
) *Collector {
	return &Collector{
		dynamic:   dynamicClient,
		discovery: discoveryClient,
		mapper:    mapper,
	}
}

// Collect returns the observed records in their comparison form. In
// reference mode the order follows the desired records; in all-resources
// mode it follows API discovery order.
func (c *Collector) Collect(
	ctx context.Context,
	desired []*unstructured.Unstructured,
	opts Options,
) ([]*unstructured.Unstructured, error) {
	if opts.AllResources {
		return c.collectAll(ctx, opts)
	}

	return c.collectReferenced(ctx, desired, opts)
}

// collectReferenced fetches the live counterpart of each desired record.
// Records the cluster does not know, either because the object is absent or
// because its kind is not served, are skipped so they surface as additions.
func (c *Collector) collectReferenced(
	ctx context.Context,
	desired []*unstructured.Unstructured,
	opts Options,
) ([]*unstructured.Unstructured, error) {
	records := make([]*unstructured.Unstructured, 0, len(desired))

	for _, record := range desired {
		if record.GetKind() == "" {
			continue
		}

		client, err := c.resourceClientFor(record)
		if meta.IsNoMatchError(err) {
			continue
		}

		if err != nil {
			return nil, err
		}

		live, err := client.Get(ctx, record.GetName(), metav1.GetOptions{})
		if apierrors.IsNotFound(err) {
			continue
		}

		if err != nil {
			return nil, fmt.Errorf(
				"failed to fetch %s %s: %w", record.GetKind(), record.GetName(), err,
			)
		}

		records = append(records, comparisonForm(live, opts.LastApplied))
	}

	return records, nil
}

// resourceClientFor resolves a record's kind to a dynamic resource client,
// scoped to the record's namespace for namespaced kinds.
func (c *Collector) resourceClientFor(
	record *unstructured.Unstructured,
) (dynamic.ResourceInterface, error) {
	gvk := record.GroupVersionKind()

	mapping, err := c.mapper.RESTMapping(gvk.GroupKind(), gvk.Version)
	if err != nil {
		if meta.IsNoMatchError(err) {
			return nil, err
		}

		return nil, fmt.Errorf("failed to resolve resource for kind %s: %w", gvk.Kind, err)
	}

	resource := c.dynamic.Resource(mapping.Resource)
	if mapping.Scope.Name() == meta.RESTScopeNameNamespace {
		return resource.Namespace(record.GetNamespace()), nil
	}

	return resource, nil
}

// collectAll lists every listable resource type and flattens the results in
// discovery order. Listings run concurrently; the emit order does not depend
// on their completion order.
func (c *Collector) collectAll(
	ctx context.Context,
	opts Options,
) ([]*unstructured.Unstructured, error) {
	targets, err := c.listableResources()
	if err != nil {
		return nil, err
	}

	results := make([][]*unstructured.Unstructured, len(targets))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(listConcurrency)

	for index, target := range targets {
		group.Go(func() error {
			list, err := c.dynamic.Resource(target).List(groupCtx, metav1.ListOptions{})
			if err != nil {
				if skippableListError(err) {
					return nil
				}

				return fmt.Errorf("failed to list %s: %w", target.Resource, err)
			}

			records := make([]*unstructured.Unstructured, 0, len(list.Items))
			for _, item := range list.Items {
				records = append(records, comparisonForm(item.DeepCopy(), opts.LastApplied))
			}

			results[index] = records

			return nil
		})
	}

	err = group.Wait()
	if err != nil {
		return nil, err
	}

	var records []*unstructured.Unstructured
	for _, result := range results {
		records = append(records, result...)
	}

	return records, nil
}

// listableResources returns the group-version-resources to list, in
// discovery order. Subresources, non-listable resources, and Events are
// excluded.
func (c *Collector) listableResources() ([]schema.GroupVersionResource, error) {
	resourceLists, err := discovery.ServerPreferredResources(c.discovery)
	if err != nil && !discovery.IsGroupDiscoveryFailedError(err) {
		return nil, fmt.Errorf("failed to discover api resources: %w", err)
	}

	var targets []schema.GroupVersionResource

	for _, resourceList := range resourceLists {
		groupVersion, err := schema.ParseGroupVersion(resourceList.GroupVersion)
		if err != nil {
			return nil, fmt.Errorf(
				"failed to parse group version %q: %w", resourceList.GroupVersion, err,
			)
		}

		for _, resource := range resourceList.APIResources {
			if !includeResource(resource) {
				continue
			}

			targets = append(targets, groupVersion.WithResource(resource.Name))
		}
	}

	return targets, nil
}

// includeResource reports whether a discovered resource takes part in
// all-resources collection.
func includeResource(resource metav1.APIResource) bool {
	if strings.Contains(resource.Name, "/") {
		return false
	}

	if resource.Kind == "Event" {
		return false
	}

	return slices.Contains(resource.Verbs, "list")
}

// skippableListError reports whether a listing failure should silently
// exclude the resource type rather than fail the collection. Aggregated
// APIs with missing backends and permission gaps fall in this category.
func skippableListError(err error) bool {
	return apierrors.IsNotFound(err) ||
		apierrors.IsForbidden(err) ||
		apierrors.IsMethodNotSupported(err) ||
		apierrors.IsServiceUnavailable(err)
}
