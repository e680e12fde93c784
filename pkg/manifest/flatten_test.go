package manifest_test

import (
	"testing"

	"github.com/devantler-tech/kubedrift/pkg/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

func newList(kind string, items ...*unstructured.Unstructured) *unstructured.Unstructured {
	contents := make([]any, 0, len(items))
	for _, item := range items {
		contents = append(contents, item.Object)
	}

	return &unstructured.Unstructured{Object: map[string]any{
		"kind":  kind,
		"items": contents,
	}}
}

func TestFlatten_KeepsPlainRecords(t *testing.T) {
	t.Parallel()

	records := []*unstructured.Unstructured{
		newRecord("Deployment", "apps", "web"),
		newRecord("Service", "apps", "web"),
	}

	flattened := manifest.Flatten(records)

	assert.Equal(t, records, flattened)
}

func TestFlatten_ExpandsListItems(t *testing.T) {
	t.Parallel()

	flattened := manifest.Flatten([]*unstructured.Unstructured{
		newList("ConfigMapList",
			newRecord("ConfigMap", "apps", "first"),
			newRecord("ConfigMap", "apps", "second"),
		),
		newRecord("Service", "apps", "web"),
	})

	require.Len(t, flattened, 3)
	assert.Equal(t, "first", flattened[0].GetName())
	assert.Equal(t, "second", flattened[1].GetName())
	assert.Equal(t, "web", flattened[2].GetName())
}

func TestFlatten_ExpandsNestedLists(t *testing.T) {
	t.Parallel()

	flattened := manifest.Flatten([]*unstructured.Unstructured{
		newList("List",
			newList("ConfigMapList", newRecord("ConfigMap", "apps", "inner")),
			newRecord("Service", "apps", "web"),
		),
	})

	require.Len(t, flattened, 2)
	assert.Equal(t, "ConfigMap", flattened[0].GetKind())
	assert.Equal(t, "Service", flattened[1].GetKind())
}

func TestFlatten_KeepsListKindWithoutItems(t *testing.T) {
	t.Parallel()

	record := &unstructured.Unstructured{Object: map[string]any{
		"kind":     "ConfigMapList",
		"metadata": map[string]any{"name": "odd"},
	}}

	flattened := manifest.Flatten([]*unstructured.Unstructured{record})

	require.Len(t, flattened, 1)
	assert.Equal(t, record, flattened[0])
}

func TestFlatten_EmptyInput(t *testing.T) {
	t.Parallel()

	assert.Empty(t, manifest.Flatten(nil))
}
