// Package yamlgenerator renders models to YAML files.
package yamlgenerator

import (
	"fmt"

	"github.com/devantler-tech/kubedrift/pkg/fsutil"
	"github.com/devantler-tech/kubedrift/pkg/io/marshaller"
)

// Options configures where generated YAML is written.
type Options struct {
	// Output is the file path to write to. When empty the YAML is only returned.
	Output string
	// Force overwrites an existing output file.
	Force bool
}

// YAMLGenerator renders a model to YAML and optionally writes it to disk.
type YAMLGenerator[T any] struct {
	Marshaller marshaller.Marshaller[T]
}

// NewYAMLGenerator creates a YAML generator for the given model type.
func NewYAMLGenerator[T any]() *YAMLGenerator[T] {
	return &YAMLGenerator[T]{
		Marshaller: marshaller.NewYAMLMarshaller[T](),
	}
}

// Generate renders the model and writes it to the configured output path.
func (g *YAMLGenerator[T]) Generate(model T, opts Options) (string, error) {
	out, err := g.Marshaller.Marshal(model)
	if err != nil {
		return "", fmt.Errorf("marshal model: %w", err)
	}

	if opts.Output != "" {
		result, err := fsutil.TryWriteFile(out, opts.Output, opts.Force)
		if err != nil {
			return "", fmt.Errorf("write output: %w", err)
		}

		return result, nil
	}

	return out, nil
}
