package configmanager_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/devantler-tech/kubedrift/pkg/apis/drift/v1alpha1"
	configmanagerinterface "github.com/devantler-tech/kubedrift/pkg/io/configmanager"
	configmanager "github.com/devantler-tech/kubedrift/pkg/io/configmanager/drift"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfig = `apiVersion: kubedrift.io/v1alpha1
kind: Drift
spec:
  sourcePaths:
    - k8s
  connection:
    context: file-context
    timeout: 90s
  diff:
    lastApplied: false
`

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "kubedrift.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func newManager(writer io.Writer) *configmanager.ConfigManager {
	return configmanager.NewConfigManager(writer, configmanager.DefaultDriftFieldSelectors()...)
}

func silentLoad(
	t *testing.T,
	manager *configmanager.ConfigManager,
) *v1alpha1.Drift {
	t.Helper()

	config, err := manager.Load(configmanagerinterface.LoadOptions{Silent: true})
	require.NoError(t, err)
	require.NotNil(t, config)

	return config
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	manager := newManager(io.Discard)
	config := silentLoad(t, manager)

	assert.Equal(t, "~/.kube/config", config.Spec.Connection.Kubeconfig)
	assert.Empty(t, config.Spec.Connection.Context)
	assert.Equal(t, 5*time.Minute, config.Spec.Connection.Timeout.Duration)
	assert.True(t, config.Spec.Diff.LastApplied)
	assert.False(t, config.Spec.Diff.ShowDeleted)
	assert.Equal(t, "kubedrift", config.Spec.Helm.ReleaseName)
	assert.Equal(t, "default", config.Spec.Helm.Namespace)
	assert.Equal(t, v1alpha1.APIVersion, config.APIVersion)
	assert.Equal(t, v1alpha1.Kind, config.Kind)
}

func TestLoad_ConfigFile(t *testing.T) {
	t.Parallel()

	manager := newManager(io.Discard)
	manager.Viper.SetConfigFile(writeConfigFile(t, validConfig))

	config := silentLoad(t, manager)

	assert.Equal(t, "file-context", config.Spec.Connection.Context)
	assert.Equal(t, 90*time.Second, config.Spec.Connection.Timeout.Duration)
	assert.Equal(t, []string{"k8s"}, config.Spec.SourcePaths)
	// Explicit false in the file must survive the true default.
	assert.False(t, config.Spec.Diff.LastApplied)
	// Fields the file does not set keep their defaults.
	assert.Equal(t, "~/.kube/config", config.Spec.Connection.Kubeconfig)
	assert.Equal(t, "kubedrift", config.Spec.Helm.ReleaseName)
}

func TestLoad_UnsupportedAPIVersion(t *testing.T) {
	t.Parallel()

	manager := newManager(io.Discard)
	manager.Viper.SetConfigFile(writeConfigFile(t, "apiVersion: wrong/v1\nkind: Drift\n"))

	_, err := manager.Load(configmanagerinterface.LoadOptions{Silent: true})
	require.ErrorIs(t, err, configmanager.ErrUnsupportedAPIVersion)
}

func TestLoad_MissingKind(t *testing.T) {
	t.Parallel()

	manager := newManager(io.Discard)
	manager.Viper.SetConfigFile(writeConfigFile(t, "apiVersion: kubedrift.io/v1alpha1\n"))

	_, err := manager.Load(configmanagerinterface.LoadOptions{Silent: true})
	require.ErrorIs(t, err, configmanager.ErrUnsupportedKind)
}

func TestLoad_MalformedConfigFile(t *testing.T) {
	t.Parallel()

	manager := newManager(io.Discard)
	manager.Viper.SetConfigFile(writeConfigFile(t, "{invalid yaml"))

	_, err := manager.Load(configmanagerinterface.LoadOptions{Silent: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	t.Setenv("KUBEDRIFT_SPEC_CONNECTION_KUBECONFIG", "/custom/kubeconfig")
	t.Setenv("KUBEDRIFT_SPEC_DIFF_SHOWDELETED", "true")

	manager := newManager(io.Discard)
	config := silentLoad(t, manager)

	assert.Equal(t, "/custom/kubeconfig", config.Spec.Connection.Kubeconfig)
	assert.True(t, config.Spec.Diff.ShowDeleted)
	// TypeMeta defaults are preserved when no config file is read.
	assert.Equal(t, v1alpha1.APIVersion, config.APIVersion)
}

func TestLoad_EnvironmentOverridesConfigFile(t *testing.T) {
	t.Setenv("KUBEDRIFT_SPEC_CONNECTION_CONTEXT", "env-context")

	manager := newManager(io.Discard)
	manager.Viper.SetConfigFile(writeConfigFile(t, validConfig))

	config := silentLoad(t, manager)

	assert.Equal(t, "env-context", config.Spec.Connection.Context)
}

func TestLoad_FlagsOverrideConfigFile(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{Use: "test"}
	manager := configmanager.NewCommandConfigManager(cmd, configmanager.DefaultDriftFieldSelectors())
	manager.Viper.SetConfigFile(writeConfigFile(t, validConfig))

	require.NoError(t, cmd.Flags().Set("context", "flag-context"))
	require.NoError(t, cmd.Flags().Set("timeout", "30s"))
	require.NoError(t, cmd.Flags().Set("last-applied", "true"))

	config := silentLoad(t, manager)

	assert.Equal(t, "flag-context", config.Spec.Connection.Context)
	assert.Equal(t, 30*time.Second, config.Spec.Connection.Timeout.Duration)
	assert.True(t, config.Spec.Diff.LastApplied)
}

func TestLoad_SliceFlagOverride(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{Use: "test"}
	manager := configmanager.NewCommandConfigManager(cmd, configmanager.DefaultDriftFieldSelectors())

	require.NoError(t, cmd.Flags().Set("helm-values", "base.yaml,prod.yaml"))
	require.NoError(t, cmd.Flags().Set("helm-set", "image.tag=v2"))

	config := silentLoad(t, manager)

	assert.Equal(t, []string{"base.yaml", "prod.yaml"}, config.Spec.Helm.ValuesFiles)
	assert.Equal(t, []string{"image.tag=v2"}, config.Spec.Helm.SetValues)
}

func TestLoad_IgnoreConfigFile(t *testing.T) {
	t.Parallel()

	manager := newManager(io.Discard)
	manager.Viper.SetConfigFile(writeConfigFile(t, validConfig))

	config, err := manager.Load(configmanagerinterface.LoadOptions{
		Silent:           true,
		IgnoreConfigFile: true,
	})
	require.NoError(t, err)

	assert.Empty(t, config.Spec.Connection.Context)
	assert.True(t, config.Spec.Diff.LastApplied)
}

func TestLoad_ReusesLoadedConfig(t *testing.T) {
	t.Parallel()

	manager := newManager(io.Discard)
	path := writeConfigFile(t, validConfig)
	manager.Viper.SetConfigFile(path)

	first := silentLoad(t, manager)

	// Changing the file after the first load must not alter the cached config.
	require.NoError(t, os.WriteFile(path, []byte(validConfig+"  helm:\n    namespace: other\n"), 0o600))

	second := silentLoad(t, manager)

	assert.Same(t, first, second)
	assert.Equal(t, "default", second.Spec.Helm.Namespace)
}

func TestLoad_Notifications(t *testing.T) {
	t.Parallel()

	var output bytes.Buffer

	manager := newManager(&output)

	_, err := manager.Load(configmanagerinterface.LoadOptions{})
	require.NoError(t, err)

	assert.Contains(t, output.String(), "Load config...")
	assert.Contains(t, output.String(), "using default config")
	assert.Contains(t, output.String(), "config loaded")

	output.Reset()

	_, err = manager.Load(configmanagerinterface.LoadOptions{})
	require.NoError(t, err)

	assert.Contains(t, output.String(), "reusing existing config")
}
