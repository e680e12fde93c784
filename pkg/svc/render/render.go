package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// kustomizationFileNames are the file names kustomize recognizes as the root
// of a kustomization.
var kustomizationFileNames = []string{
	"kustomization.yaml",
	"kustomization.yml",
	"Kustomization",
}

const chartFileName = "Chart.yaml"

// Renderer renders desired records from a single source path.
type Renderer interface {
	Render(ctx context.Context, path string) ([]*unstructured.Unstructured, error)
}

// Service renders desired records from source paths, selecting a renderer
// per path.
type Service struct {
	helm HelmOptions
}

// NewService creates a render service. The helm options apply to every chart
// source the service encounters.
func NewService(helm HelmOptions) *Service {
	return &Service{helm: helm}
}

// Render renders all records from the given source paths, concatenated in
// path order.
func (s *Service) Render(
	ctx context.Context,
	paths []string,
) ([]*unstructured.Unstructured, error) {
	var records []*unstructured.Unstructured

	for _, path := range paths {
		renderer, err := s.rendererFor(path)
		if err != nil {
			return nil, err
		}

		rendered, err := renderer.Render(ctx, path)
		if err != nil {
			return nil, err
		}

		records = append(records, rendered...)
	}

	return records, nil
}

// rendererFor picks the renderer for a source path. Directories holding a
// kustomization file build with kustomize and chart directories render with
// Helm; everything else is read as plain manifests.
func (s *Service) rendererFor(path string) (Renderer, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to access source path %s: %w", path, err)
	}

	if !info.IsDir() {
		return &YAMLRenderer{}, nil
	}

	for _, fileName := range kustomizationFileNames {
		if fileExists(filepath.Join(path, fileName)) {
			return &KustomizeRenderer{}, nil
		}
	}

	if fileExists(filepath.Join(path, chartFileName)) {
		return &HelmRenderer{Options: s.helm}, nil
	}

	return &YAMLRenderer{}, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)

	return err == nil && !info.IsDir()
}
