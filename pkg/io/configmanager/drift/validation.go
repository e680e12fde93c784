package configmanager

import (
	"errors"
	"fmt"

	"github.com/devantler-tech/kubedrift/pkg/apis/drift/v1alpha1"
)

var (
	// ErrUnsupportedAPIVersion is returned when a config file declares an
	// apiVersion other than kubedrift.io/v1alpha1.
	ErrUnsupportedAPIVersion = errors.New("unsupported apiVersion")

	// ErrUnsupportedKind is returned when a config file declares a kind
	// other than Drift.
	ErrUnsupportedKind = errors.New("unsupported kind")
)

// validateConfig rejects config files whose TypeMeta does not identify a
// kubedrift Drift document. Environment-only and flags-only loads keep the
// constructor defaults and always pass.
func (m *ConfigManager) validateConfig() error {
	if !m.configFileFound {
		return nil
	}

	if m.Config.APIVersion != v1alpha1.APIVersion {
		return fmt.Errorf(
			"%w: %q (expected %q)", ErrUnsupportedAPIVersion, m.Config.APIVersion, v1alpha1.APIVersion,
		)
	}

	if m.Config.Kind != v1alpha1.Kind {
		return fmt.Errorf("%w: %q (expected %q)", ErrUnsupportedKind, m.Config.Kind, v1alpha1.Kind)
	}

	return nil
}
