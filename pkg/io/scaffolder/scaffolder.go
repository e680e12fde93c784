// Package scaffolder generates kubedrift project files and configurations.
package scaffolder

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/devantler-tech/kubedrift/pkg/apis/drift/v1alpha1"
	"github.com/devantler-tech/kubedrift/pkg/io/generator"
	kustomizationgenerator "github.com/devantler-tech/kubedrift/pkg/io/generator/kustomization"
	yamlgenerator "github.com/devantler-tech/kubedrift/pkg/io/generator/yaml"
	"github.com/devantler-tech/kubedrift/pkg/utils/notify"
	ktypes "sigs.k8s.io/kustomize/api/types"
)

const (
	// DriftConfigFile is the default filename for the kubedrift configuration.
	DriftConfigFile = "kubedrift.yaml"

	// DefaultSourceDirectory is scaffolded when the config names no source paths.
	DefaultSourceDirectory = "k8s"
)

var (
	// ErrDriftConfigGeneration wraps failures when creating kubedrift.yaml.
	ErrDriftConfigGeneration = errors.New("failed to generate kubedrift configuration")

	// ErrKustomizationGeneration wraps failures when creating kustomization.yaml.
	ErrKustomizationGeneration = errors.New("failed to generate kustomization configuration")
)

// Scaffolder generates kubedrift project files.
type Scaffolder struct {
	Config                 v1alpha1.Drift
	DriftYAMLGenerator     generator.Generator[v1alpha1.Drift, yamlgenerator.Options]
	KustomizationGenerator generator.Generator[*ktypes.Kustomization, yamlgenerator.Options]
	Writer                 io.Writer
}

// NewScaffolder creates a new Scaffolder instance for the provided Drift configuration.
func NewScaffolder(cfg v1alpha1.Drift, writer io.Writer) *Scaffolder {
	return &Scaffolder{
		Config:                 cfg,
		DriftYAMLGenerator:     yamlgenerator.NewYAMLGenerator[v1alpha1.Drift](),
		KustomizationGenerator: kustomizationgenerator.NewKustomizationGenerator(),
		Writer:                 writer,
	}
}

// Scaffold generates project files and configurations.
//
// This method orchestrates the generation of:
//   - kubedrift.yaml configuration
//   - a kustomization.yaml entry point in the first configured source directory
//
// When force is false existing files are left untouched.
func (s *Scaffolder) Scaffold(output string, force bool) error {
	err := s.generateDriftConfig(output, force)
	if err != nil {
		return err
	}

	return s.generateKustomizationConfig(output, force)
}

// applyConfigDefaults fills config values that the generated files depend on,
// so kubedrift.yaml and the scaffolded source directory stay consistent.
func (s *Scaffolder) applyConfigDefaults() v1alpha1.Drift {
	config := s.Config

	if len(config.Spec.SourcePaths) == 0 {
		config.Spec.SourcePaths = []string{DefaultSourceDirectory}
	}

	return config
}

// sourceDirectory returns the directory the kustomization entry point is
// scaffolded into.
func (s *Scaffolder) sourceDirectory() string {
	if len(s.Config.Spec.SourcePaths) > 0 && strings.TrimSpace(s.Config.Spec.SourcePaths[0]) != "" {
		return s.Config.Spec.SourcePaths[0]
	}

	return DefaultSourceDirectory
}

// checkFileExistsAndSkip checks if a file exists and should be skipped based
// on the force flag. Returns whether the file should be skipped, whether it
// existed, and its previous modification time.
func (s *Scaffolder) checkFileExistsAndSkip(
	filePath string,
	fileName string,
	force bool,
) (bool, bool, time.Time) {
	info, statErr := os.Stat(filePath)
	if statErr == nil {
		if !force {
			notify.WriteMessage(notify.Message{
				Type:    notify.WarningType,
				Content: "skipped '%s', file exists use --force to overwrite",
				Args:    []any{fileName},
				Writer:  s.Writer,
			})

			return true, true, info.ModTime()
		}

		return false, true, info.ModTime()
	}

	return false, false, time.Time{}
}

// GenerationParams groups parameters for generateWithFileHandling.
type GenerationParams[T any] struct {
	Gen         generator.Generator[T, yamlgenerator.Options]
	Model       T
	Opts        yamlgenerator.Options
	DisplayName string
	Force       bool
	WrapErr     func(error) error
}

// generateWithFileHandling wraps generation with common file existence checks
// and notifications.
func generateWithFileHandling[T any](
	scaffolder *Scaffolder,
	params GenerationParams[T],
) error {
	skip, existed, previousModTime := scaffolder.checkFileExistsAndSkip(
		params.Opts.Output,
		params.DisplayName,
		params.Force,
	)

	if skip {
		return nil
	}

	_, err := params.Gen.Generate(params.Model, params.Opts)
	if err != nil {
		if params.WrapErr != nil {
			return params.WrapErr(err)
		}

		return fmt.Errorf("failed to generate %s: %w", params.DisplayName, err)
	}

	if params.Force && existed {
		err := ensureOverwriteModTime(params.Opts.Output, previousModTime)
		if err != nil {
			return fmt.Errorf("failed to update mod time for %s: %w", params.DisplayName, err)
		}
	}

	scaffolder.notifyFileAction(params.DisplayName, existed)

	return nil
}

// ensureOverwriteModTime makes an overwritten file's mod time strictly newer
// than the file it replaced, so change detection by timestamp still works on
// fast filesystems.
func ensureOverwriteModTime(path string, previous time.Time) error {
	if path == "" {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	current := info.ModTime()
	if previous.IsZero() || current.After(previous) {
		return nil
	}

	newModTime := previous.Add(time.Millisecond)

	now := time.Now()
	if now.After(newModTime) {
		newModTime = now
	}

	err = os.Chtimes(path, newModTime, newModTime)
	if err != nil {
		return fmt.Errorf("failed to update mod time for %s: %w", path, err)
	}

	return nil
}

func (s *Scaffolder) notifyFileAction(displayName string, overwritten bool) {
	action := "created"
	if overwritten {
		action = "overwrote"
	}

	notify.WriteMessage(notify.Message{
		Type:    notify.GenerateType,
		Content: "%s '%s'",
		Args:    []any{action, displayName},
		Writer:  s.Writer,
	})
}

// generateDriftConfig generates the kubedrift.yaml configuration file.
func (s *Scaffolder) generateDriftConfig(output string, force bool) error {
	config := s.applyConfigDefaults()

	opts := yamlgenerator.Options{
		Output: filepath.Join(output, DriftConfigFile),
		Force:  force,
	}

	return generateWithFileHandling(
		s,
		GenerationParams[v1alpha1.Drift]{
			Gen:         s.DriftYAMLGenerator,
			Model:       config,
			Opts:        opts,
			DisplayName: DriftConfigFile,
			Force:       force,
			WrapErr: func(err error) error {
				return fmt.Errorf("%w: %w", ErrDriftConfigGeneration, err)
			},
		},
	)
}

// generateKustomizationConfig generates the kustomization.yaml entry point.
func (s *Scaffolder) generateKustomizationConfig(output string, force bool) error {
	kustomization := ktypes.Kustomization{}
	displayName := filepath.Join(s.sourceDirectory(), "kustomization.yaml")

	opts := yamlgenerator.Options{
		Output: filepath.Join(output, s.sourceDirectory(), "kustomization.yaml"),
		Force:  force,
	}

	return generateWithFileHandling(
		s,
		GenerationParams[*ktypes.Kustomization]{
			Gen:         s.KustomizationGenerator,
			Model:       &kustomization,
			Opts:        opts,
			DisplayName: displayName,
			Force:       force,
			WrapErr: func(err error) error {
				return fmt.Errorf("%w: %w", ErrKustomizationGeneration, err)
			},
		},
	)
}
