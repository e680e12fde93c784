package cmd

import (
	"fmt"

	"github.com/devantler-tech/kubedrift/pkg/cli/helpers"
	runtime "github.com/devantler-tech/kubedrift/pkg/di"
	configmanager "github.com/devantler-tech/kubedrift/pkg/io/configmanager"
	driftconfigmanager "github.com/devantler-tech/kubedrift/pkg/io/configmanager/drift"
	"github.com/devantler-tech/kubedrift/pkg/io/scaffolder"
	"github.com/devantler-tech/kubedrift/pkg/utils/notify"
	"github.com/devantler-tech/kubedrift/pkg/utils/timer"
	"github.com/spf13/cobra"
)

const initLongDesc = `Initialize a kubedrift project in the output directory.

Writes a kubedrift.yaml config file with the default settings and a starter
kustomization in the first source directory. Connection and helm flags are
recorded in the generated config, so the project starts out pointed at the
right cluster. Existing files are left alone unless --force is given.

Examples:
  # Initialize the current directory
  kubedrift init

  # Initialize a project pinned to a named context
  kubedrift init --context kind-kind

  # Re-generate the config over existing files
  kubedrift init --force`

// NewInitCmd wires the init command using the shared runtime container.
func NewInitCmd(runtimeContainer *runtime.Runtime) *cobra.Command {
	var (
		output       string
		force        bool
		initialPaths []string
	)

	cmd := &cobra.Command{
		Use:          "init",
		Short:        "Initialize a kubedrift project",
		Long:         initLongDesc,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
	}

	cfgManager := driftconfigmanager.NewCommandConfigManager(
		cmd,
		driftconfigmanager.DefaultDriftFieldSelectors(),
	)

	cmd.Flags().StringVarP(&output, "output", "o", ".",
		"Directory to place the generated files in")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")
	cmd.Flags().StringSliceVar(&initialPaths, "source-path", nil,
		"Source directories to record in the config (defaults to '"+
			scaffolder.DefaultSourceDirectory+"')")

	cmd.RunE = runtime.RunEWithRuntime(runtimeContainer, runtime.WithTimer(
		func(cmd *cobra.Command, _ runtime.Injector, tmr timer.Timer) error {
			return handleInitRunE(cmd, cfgManager, tmr, output, force, initialPaths)
		},
	))

	return cmd
}

// handleInitRunE scaffolds the config file and the starter source directory.
func handleInitRunE(
	cmd *cobra.Command,
	cfgManager *driftconfigmanager.ConfigManager,
	tmr timer.Timer,
	output string,
	force bool,
	initialPaths []string,
) error {
	tmr.Start()

	outputTimer := helpers.MaybeTimer(cmd, tmr)

	// Flags and defaults only; an existing config file must not leak into
	// the scaffolded one.
	cfg, err := cfgManager.Load(configmanager.LoadOptions{
		Silent:           true,
		IgnoreConfigFile: true,
	})
	if err != nil {
		return err
	}

	if len(initialPaths) > 0 {
		cfg.Spec.SourcePaths = initialPaths
	}

	err = scaffolder.NewScaffolder(*cfg, cmd.OutOrStdout()).Scaffold(output, force)
	if err != nil {
		return fmt.Errorf("failed to initialize project: %w", err)
	}

	notify.WriteMessage(notify.Message{
		Type:    notify.SuccessType,
		Content: "project initialized",
		Timer:   outputTimer,
		Writer:  cmd.OutOrStdout(),
	})

	return nil
}
