package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/devantler-tech/kubedrift/pkg/manifest"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"sigs.k8s.io/kustomize/api/krusty"
	"sigs.k8s.io/kustomize/kyaml/filesys"
)

// KustomizeRenderer builds a kustomization in process and returns the
// resulting records.
type KustomizeRenderer struct{}

// Render implements Renderer.
func (r *KustomizeRenderer) Render(
	_ context.Context,
	path string,
) ([]*unstructured.Unstructured, error) {
	kustomizer := krusty.MakeKustomizer(krusty.MakeDefaultOptions())

	resources, err := kustomizer.Run(filesys.MakeFsOnDisk(), path)
	if err != nil {
		return nil, fmt.Errorf("failed to build kustomization %s: %w", path, err)
	}

	built, err := resources.AsYaml()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize kustomization %s: %w", path, err)
	}

	records, err := manifest.Decode(bytes.NewReader(built))
	if err != nil {
		return nil, fmt.Errorf("failed to decode kustomization output %s: %w", path, err)
	}

	return manifest.Flatten(records), nil
}
