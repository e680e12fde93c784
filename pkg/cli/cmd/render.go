package cmd

import (
	"fmt"

	runtime "github.com/devantler-tech/kubedrift/pkg/di"
	configmanager "github.com/devantler-tech/kubedrift/pkg/io/configmanager"
	driftconfigmanager "github.com/devantler-tech/kubedrift/pkg/io/configmanager/drift"
	"github.com/spf13/cobra"
	"k8s.io/cli-runtime/pkg/printers"
)

const renderLongDesc = `Render local sources and print the result as a YAML stream.

Each source path is rendered with the renderer matching its layout (kustomize,
helm, or plain YAML). The records are printed to stdout as a stream of YAML
documents in source order, ready to pipe into kubectl or other tools.

Examples:
  # Render the configured source paths
  kubedrift render

  # Render a helm chart with value overrides
  kubedrift render ./chart --helm-set image.tag=v2`

// NewRenderCmd wires the render command using the shared runtime container.
func NewRenderCmd(runtimeContainer *runtime.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "render [path...]",
		Short:        "Render local sources to a YAML stream",
		Long:         renderLongDesc,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
	}

	cfgManager := driftconfigmanager.NewCommandConfigManager(
		cmd,
		driftconfigmanager.RenderFieldSelectors(),
	)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runtimeContainer.Invoke(func(_ runtime.Injector) error {
			return handleRenderRunE(cmd, args, cfgManager)
		})
	}

	return cmd
}

// handleRenderRunE renders the sources and prints the records to stdout.
func handleRenderRunE(
	cmd *cobra.Command,
	args []string,
	cfgManager *driftconfigmanager.ConfigManager,
) error {
	cfg, err := cfgManager.Load(configmanager.LoadOptions{Silent: true})
	if err != nil {
		return err
	}

	records, err := renderSources(baseContext(cmd), cfg, args)
	if err != nil {
		return err
	}

	printer := &printers.YAMLPrinter{}
	out := cmd.OutOrStdout()

	for _, record := range records {
		err = printer.PrintObj(record, out)
		if err != nil {
			return fmt.Errorf("failed to print %s %s: %w", record.GetKind(), record.GetName(), err)
		}
	}

	return nil
}
