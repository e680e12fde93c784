package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/devantler-tech/kubedrift/pkg/apis/drift/v1alpha1"
	"github.com/devantler-tech/kubedrift/pkg/cli/helpers"
	"github.com/devantler-tech/kubedrift/pkg/cli/ui/diffview"
	runtime "github.com/devantler-tech/kubedrift/pkg/di"
	configmanager "github.com/devantler-tech/kubedrift/pkg/io/configmanager"
	driftconfigmanager "github.com/devantler-tech/kubedrift/pkg/io/configmanager/drift"
	"github.com/devantler-tech/kubedrift/pkg/manifest"
	"github.com/devantler-tech/kubedrift/pkg/svc/collector"
	"github.com/devantler-tech/kubedrift/pkg/utils/notify"
	"github.com/spf13/cobra"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// ErrDriftFound reports that the diff found at least one difference between
// the rendered sources and the cluster. It maps to exit code 1 so scripts
// can tell drift apart from hard failures.
var ErrDriftFound = errors.New("drift found")

const diffLongDesc = `Compare rendered local sources against the live state of a cluster.

Each source path is rendered with the renderer matching its layout (kustomize,
helm, or plain YAML) and the result is compared object by object against the
cluster. Paths given as arguments override the sourcePaths of the config file.

The command exits with code 1 when drift is found and 0 when the cluster
matches the sources, so it can gate CI pipelines and pre-apply checks.

Examples:
  # Diff the configured source paths against the current cluster
  kubedrift diff

  # Diff a single kustomization against a named context
  kubedrift diff ./k8s --context kind-kind

  # Gate a pipeline without printing changes
  kubedrift diff --quiet`

// NewDiffCmd wires the diff command using the shared runtime container.
func NewDiffCmd(runtimeContainer *runtime.Runtime) *cobra.Command {
	var (
		quiet bool
		list  bool
	)

	cmd := &cobra.Command{
		Use:          "diff [path...]",
		Short:        "Compare rendered sources against live cluster state",
		Long:         diffLongDesc,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
	}

	cfgManager := driftconfigmanager.NewCommandConfigManager(
		cmd,
		driftconfigmanager.DefaultDriftFieldSelectors(),
	)

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false,
		"Report drift through the exit code only, without printing changes")
	cmd.Flags().BoolVarP(&list, "list", "l", false,
		"Print only the names of changed objects")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runtimeContainer.Invoke(func(injector runtime.Injector) error {
			return handleDiffRunE(cmd, args, cfgManager, injector, viewMode(quiet, list))
		})
	}

	return cmd
}

// viewMode selects the diff output mode. Quiet wins over list so combining
// the two flags still suppresses output.
func viewMode(quiet, list bool) diffview.Mode {
	switch {
	case quiet:
		return diffview.ModeQuiet
	case list:
		return diffview.ModeList
	default:
		return diffview.ModeSummary
	}
}

// handleDiffRunE renders the sources, collects the matching cluster state,
// and prints the differences between the two.
func handleDiffRunE(
	cmd *cobra.Command,
	args []string,
	cfgManager *driftconfigmanager.ConfigManager,
	injector runtime.Injector,
	mode diffview.Mode,
) error {
	tmr, err := runtime.ResolveTimer(injector)
	if err != nil {
		return err
	}

	tmr.Start()

	// Stdout carries only diff output so the command stays pipeable.
	cfg, err := cfgManager.Load(configmanager.LoadOptions{Silent: true})
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd, cfg)
	defer cancel()

	desired, err := renderSources(ctx, cfg, args)
	if err != nil {
		return err
	}

	local, err := manifest.BuildHierarchy(desired)
	if err != nil {
		return err
	}

	observed, err := collectClusterState(ctx, injector, cfg, desired)
	if err != nil {
		return err
	}

	cluster, err := manifest.BuildHierarchy(observed)
	if err != nil {
		return err
	}

	found, err := diffview.New(cluster, local, mode, cmd.OutOrStdout()).Render()
	if err != nil {
		return err
	}

	if outputTimer := helpers.MaybeTimer(cmd, tmr); outputTimer != nil {
		notify.WriteMessage(notify.Message{
			Type:    notify.SuccessType,
			Content: "diff completed",
			Timer:   outputTimer,
			Writer:  cmd.OutOrStdout(),
		})
	}

	if found {
		return ErrDriftFound
	}

	return nil
}

// collectClusterState reads the observed records for the desired set from
// the cluster selected by the config.
func collectClusterState(
	ctx context.Context,
	injector runtime.Injector,
	cfg *v1alpha1.Drift,
	desired []*unstructured.Unstructured,
) ([]*unstructured.Unstructured, error) {
	factory, err := runtime.ResolveCollectorFactory(injector)
	if err != nil {
		return nil, err
	}

	kubeconfigPath, err := helpers.KubeconfigPathFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	clusterCollector, err := factory.Create(kubeconfigPath, cfg.Spec.Connection.Context)
	if err != nil {
		return nil, fmt.Errorf("failed to create cluster collector: %w", err)
	}

	observed, err := clusterCollector.Collect(ctx, desired, collector.Options{
		LastApplied:  cfg.Spec.Diff.LastApplied,
		AllResources: cfg.Spec.Diff.ShowDeleted,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect cluster state: %w", err)
	}

	return observed, nil
}

// commandContext derives the command context, applying the configured
// connection timeout when one is set.
func commandContext(cmd *cobra.Command, cfg *v1alpha1.Drift) (context.Context, context.CancelFunc) {
	ctx := baseContext(cmd)

	timeout := cfg.Spec.Connection.Timeout.Duration
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, timeout)
}
