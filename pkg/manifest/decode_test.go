package manifest_test

import (
	"strings"
	"testing"

	"github.com/devantler-tech/kubedrift/pkg/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_MultiDocumentYAML(t *testing.T) {
	t.Parallel()

	input := `apiVersion: v1
kind: ConfigMap
metadata:
  name: first
  namespace: apps
---
apiVersion: v1
kind: Service
metadata:
  name: second
  namespace: apps
`

	records, err := manifest.Decode(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "ConfigMap", records[0].GetKind())
	assert.Equal(t, "Service", records[1].GetKind())
	assert.Equal(t, "apps", records[1].GetNamespace())
}

func TestDecode_SkipsEmptyDocuments(t *testing.T) {
	t.Parallel()

	input := `---
apiVersion: v1
kind: ConfigMap
metadata:
  name: only
---
---
`

	records, err := manifest.Decode(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "only", records[0].GetName())
}

func TestDecode_JSONDocument(t *testing.T) {
	t.Parallel()

	input := `{"apiVersion":"v1","kind":"ConfigMap","metadata":{"name":"from-json"}}`

	records, err := manifest.Decode(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "from-json", records[0].GetName())
}

func TestDecode_InvalidDocument(t *testing.T) {
	t.Parallel()

	input := "kind: ConfigMap\n\tbad: indentation"

	records, err := manifest.Decode(strings.NewReader(input))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode manifest document")
	assert.Nil(t, records)
}

func TestDecode_EmptyInput(t *testing.T) {
	t.Parallel()

	records, err := manifest.Decode(strings.NewReader(""))

	require.NoError(t, err)
	assert.Empty(t, records)
}
