// Package kustomizationgenerator generates kustomization.yaml files.
package kustomizationgenerator

import (
	"fmt"

	"github.com/devantler-tech/kubedrift/pkg/fsutil"
	yamlgenerator "github.com/devantler-tech/kubedrift/pkg/io/generator/yaml"
	"github.com/devantler-tech/kubedrift/pkg/io/marshaller"
	ktypes "sigs.k8s.io/kustomize/api/types"
)

// KustomizationGenerator generates a kustomization YAML file.
type KustomizationGenerator struct {
	Marshaller marshaller.Marshaller[*ktypes.Kustomization]
}

// NewKustomizationGenerator creates and returns a new KustomizationGenerator instance.
func NewKustomizationGenerator() *KustomizationGenerator {
	return &KustomizationGenerator{
		Marshaller: marshaller.NewYAMLMarshaller[*ktypes.Kustomization](),
	}
}

// Generate creates a kustomization YAML file and writes it to the specified output.
func (g *KustomizationGenerator) Generate(
	kustomization *ktypes.Kustomization,
	opts yamlgenerator.Options,
) (string, error) {
	// Ensure APIVersion and Kind are set so kustomize build accepts the file.
	kustomization.APIVersion = ktypes.KustomizationVersion
	kustomization.Kind = ktypes.KustomizationKind

	out, err := g.Marshaller.Marshal(kustomization)
	if err != nil {
		return "", fmt.Errorf("marshal kustomization: %w", err)
	}

	if opts.Output != "" {
		result, err := fsutil.TryWriteFile(out, opts.Output, opts.Force)
		if err != nil {
			return "", fmt.Errorf("write kustomization: %w", err)
		}

		return result, nil
	}

	return out, nil
}
