package cmd

import (
	"fmt"

	"github.com/devantler-tech/kubedrift/pkg/cli/helpers"
	"github.com/devantler-tech/kubedrift/pkg/cli/ui/asciiart"
	"github.com/devantler-tech/kubedrift/pkg/cli/ui/errorhandler"
	runtime "github.com/devantler-tech/kubedrift/pkg/di"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root command with version info and subcommands.
func NewRootCmd(version, commit, date string) *cobra.Command {
	runtimeContainer := runtime.NewRuntime()

	cmd := &cobra.Command{
		Use:   "kubedrift",
		Short: "KubeDrift spots drift between local manifests and a live cluster",
		Long: "KubeDrift renders local Kubernetes sources and compares them " +
			"against the live state of a cluster to spot drift.",
		RunE:         handleRootRunE,
		SilenceUsage: true,
	}

	// Set version if available
	cmd.Version = fmt.Sprintf("%s (Built on %s from Git SHA %s)", version, date, commit)

	cmd.PersistentFlags().Bool(
		helpers.TimingFlagName,
		false,
		"Show per-activity timing output",
	)

	// Add all subcommands
	cmd.AddCommand(NewDiffCmd(runtimeContainer))
	cmd.AddCommand(NewRenderCmd(runtimeContainer))
	cmd.AddCommand(NewValidateCmd(runtimeContainer))
	cmd.AddCommand(NewInitCmd(runtimeContainer))

	return cmd
}

// Execute runs the provided root command and handles errors.
func Execute(cmd *cobra.Command) error {
	executor := errorhandler.NewExecutor()

	err := executor.Execute(cmd)
	if err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// --- internals ---

// handleRootRunE handles the root command.
func handleRootRunE(
	cmd *cobra.Command,
	_ []string,
) error {
	asciiart.PrintKubeDriftLogo(cmd.OutOrStdout())

	// The err can safely be ignored, as it can never fail at runtime.
	_ = cmd.Help()

	return nil
}
