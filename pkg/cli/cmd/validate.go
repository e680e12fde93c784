package cmd

import (
	"errors"
	"fmt"

	"github.com/devantler-tech/kubedrift/pkg/apis/drift/v1alpha1"
	"github.com/devantler-tech/kubedrift/pkg/cli/helpers"
	runtime "github.com/devantler-tech/kubedrift/pkg/di"
	configmanager "github.com/devantler-tech/kubedrift/pkg/io/configmanager"
	driftconfigmanager "github.com/devantler-tech/kubedrift/pkg/io/configmanager/drift"
	"github.com/devantler-tech/kubedrift/pkg/svc/render"
	"github.com/devantler-tech/kubedrift/pkg/svc/validate"
	"github.com/devantler-tech/kubedrift/pkg/utils/notify"
	"github.com/spf13/cobra"
)

// ErrValidationFailed reports that at least one rendered record failed
// schema validation.
var ErrValidationFailed = errors.New("validation failed")

const validateLongDesc = `Validate rendered sources against their Kubernetes schemas.

Each source path is rendered with the renderer matching its layout (kustomize,
helm, or plain YAML) and every record is checked against its schema with
kubeconform. Findings are reported per record.

Examples:
  # Validate the configured source paths
  kubedrift validate

  # Validate without rejecting unknown properties
  kubedrift validate --strict=false

  # Validate against a private schema registry
  kubedrift validate --schema-location https://example.com/schemas`

// NewValidateCmd wires the validate command using the shared runtime container.
func NewValidateCmd(runtimeContainer *runtime.Runtime) *cobra.Command {
	var opts validate.Options

	cmd := &cobra.Command{
		Use:          "validate [path...]",
		Short:        "Validate rendered sources against their schemas",
		Long:         validateLongDesc,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
	}

	cfgManager := driftconfigmanager.NewCommandConfigManager(
		cmd,
		driftconfigmanager.RenderFieldSelectors(),
	)

	cmd.Flags().BoolVar(&opts.Strict, "strict", true,
		"Reject properties that are not part of the schema")
	cmd.Flags().BoolVar(&opts.IgnoreMissingSchemas, "ignore-missing-schemas", true,
		"Treat records without a known schema as valid")
	cmd.Flags().StringSliceVar(&opts.SkipKinds, "skip-kinds", nil,
		"Kinds to skip during validation (can specify multiple or separate values with commas)")
	cmd.Flags().StringSliceVar(&opts.SchemaLocations, "schema-location", nil,
		"Schema registries to resolve schemas from (defaults to the official registry)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runtimeContainer.Invoke(func(injector runtime.Injector) error {
			return handleValidateRunE(cmd, args, cfgManager, injector, opts)
		})
	}

	return cmd
}

// handleValidateRunE renders the sources and validates every record.
func handleValidateRunE(
	cmd *cobra.Command,
	args []string,
	cfgManager *driftconfigmanager.ConfigManager,
	injector runtime.Injector,
	opts validate.Options,
) error {
	tmr, err := runtime.ResolveTimer(injector)
	if err != nil {
		return err
	}

	tmr.Start()

	outputTimer := helpers.MaybeTimer(cmd, tmr)

	cfg, err := cfgManager.Load(configmanager.LoadOptions{Timer: outputTimer})
	if err != nil {
		return err
	}

	service, err := validate.NewService(opts)
	if err != nil {
		return err
	}

	tmr.NewStage()

	findings, err := validateSources(cmd, cfg, args, service)
	if err != nil {
		return err
	}

	if len(findings) > 0 {
		for _, finding := range findings {
			notify.Errorf(cmd.OutOrStdout(), "%s: %s: %s",
				finding.Source, finding.Subject, finding.Message)
		}

		return ErrValidationFailed
	}

	notify.WriteMessage(notify.Message{
		Type:    notify.SuccessType,
		Content: "all records valid",
		Timer:   outputTimer,
		Writer:  cmd.OutOrStdout(),
	})

	return nil
}

// validateSources renders each source path separately so findings can name
// the path they came from.
func validateSources(
	cmd *cobra.Command,
	cfg *v1alpha1.Drift,
	args []string,
	service *validate.Service,
) ([]validate.Finding, error) {
	ctx := baseContext(cmd)
	renderService := render.NewService(helmOptions(cfg))

	var findings []validate.Finding

	for _, path := range sourcePaths(cfg, args) {
		notify.Activityf(cmd.OutOrStdout(), "validating '%s'", path)

		records, err := renderService.Render(ctx, []string{path})
		if err != nil {
			return nil, fmt.Errorf("failed to render %s: %w", path, err)
		}

		pathFindings, err := service.ValidateRecords(path, records)
		if err != nil {
			return nil, fmt.Errorf("failed to validate %s: %w", path, err)
		}

		findings = append(findings, pathFindings...)
	}

	return findings, nil
}
