package k8s_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/devantler-tech/kubedrift/pkg/k8s"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validKubeconfig = `apiVersion: v1
kind: Config
clusters:
- cluster:
    server: https://127.0.0.1:6443
  name: test-cluster
contexts:
- context:
    cluster: test-cluster
    user: test-user
  name: test-context
current-context: test-context
users:
- name: test-user
  user:
    token: test-token
`

const multiContextKubeconfig = `apiVersion: v1
kind: Config
clusters:
- cluster:
    server: https://127.0.0.1:6443
  name: default-cluster
- cluster:
    server: https://custom.server:6443
  name: custom-cluster
contexts:
- context:
    cluster: default-cluster
    user: test-user
  name: default-context
- context:
    cluster: custom-cluster
    user: test-user
  name: custom-context
current-context: default-context
users:
- name: test-user
  user:
    token: test-token
`

func writeKubeconfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "kubeconfig")
	err := os.WriteFile(path, []byte(content), 0o600)
	require.NoError(t, err)

	return path
}

func TestBuildRESTConfig_EmptyKubeconfig(t *testing.T) {
	t.Parallel()

	config, err := k8s.BuildRESTConfig("", "")

	require.Error(t, err)
	require.ErrorIs(t, err, k8s.ErrKubeconfigPathEmpty)
	assert.Nil(t, config)
}

func TestBuildRESTConfig_NonExistentPath(t *testing.T) {
	t.Parallel()

	config, err := k8s.BuildRESTConfig("/nonexistent/kubeconfig", "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load kubeconfig")
	assert.Nil(t, config)
}

func TestBuildRESTConfig_InvalidContent(t *testing.T) {
	t.Parallel()

	path := writeKubeconfig(t, "not a valid kubeconfig")

	config, err := k8s.BuildRESTConfig(path, "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load kubeconfig")
	assert.Nil(t, config)
}

func TestBuildRESTConfig_ValidKubeconfig(t *testing.T) {
	t.Parallel()

	path := writeKubeconfig(t, validKubeconfig)

	config, err := k8s.BuildRESTConfig(path, "")

	require.NoError(t, err)
	require.NotNil(t, config)
	assert.Equal(t, "https://127.0.0.1:6443", config.Host)
}

func TestBuildRESTConfig_WithContext(t *testing.T) {
	t.Parallel()

	path := writeKubeconfig(t, multiContextKubeconfig)

	config, err := k8s.BuildRESTConfig(path, "custom-context")

	require.NoError(t, err)
	require.NotNil(t, config)
	assert.Equal(t, "https://custom.server:6443", config.Host)
}

func TestBuildRESTConfig_NonExistentContext(t *testing.T) {
	t.Parallel()

	path := writeKubeconfig(t, validKubeconfig)

	config, err := k8s.BuildRESTConfig(path, "missing-context")

	require.Error(t, err)
	assert.Nil(t, config)
}

func TestDefaultKubeconfigPath(t *testing.T) {
	t.Parallel()

	path := k8s.DefaultKubeconfigPath()

	if path != "" {
		assert.Contains(t, path, filepath.Join(".kube", "config"))
	}
}
