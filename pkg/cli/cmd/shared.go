package cmd

import (
	"context"
	"fmt"

	"github.com/devantler-tech/kubedrift/pkg/apis/drift/v1alpha1"
	"github.com/devantler-tech/kubedrift/pkg/io/scaffolder"
	"github.com/devantler-tech/kubedrift/pkg/svc/render"
	"github.com/spf13/cobra"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// sourcePaths resolves the source paths for a command invocation. Positional
// arguments win over the configured paths; without either, the default
// scaffold directory is used.
func sourcePaths(cfg *v1alpha1.Drift, args []string) []string {
	if len(args) > 0 {
		return args
	}

	if len(cfg.Spec.SourcePaths) > 0 {
		return cfg.Spec.SourcePaths
	}

	return []string{scaffolder.DefaultSourceDirectory}
}

// helmOptions maps the helm section of the config onto render options.
func helmOptions(cfg *v1alpha1.Drift) render.HelmOptions {
	return render.HelmOptions{
		ReleaseName: cfg.Spec.Helm.ReleaseName,
		Namespace:   cfg.Spec.Helm.Namespace,
		ValuesFiles: cfg.Spec.Helm.ValuesFiles,
		SetValues:   cfg.Spec.Helm.SetValues,
	}
}

// renderSources renders the desired records for a command invocation.
func renderSources(
	ctx context.Context,
	cfg *v1alpha1.Drift,
	args []string,
) ([]*unstructured.Unstructured, error) {
	records, err := render.NewService(helmOptions(cfg)).Render(ctx, sourcePaths(cfg, args))
	if err != nil {
		return nil, fmt.Errorf("failed to render sources: %w", err)
	}

	return records, nil
}

// baseContext returns the command context, falling back to the background
// context when the command runs outside Execute.
func baseContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	return ctx
}
