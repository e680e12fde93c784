package manifest_test

import (
	"testing"

	"github.com/devantler-tech/kubedrift/pkg/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

func newRecord(kind, namespace, name string) *unstructured.Unstructured {
	metadata := map[string]any{"name": name}
	if namespace != "" {
		metadata["namespace"] = namespace
	}

	return &unstructured.Unstructured{Object: map[string]any{
		"kind":     kind,
		"metadata": metadata,
	}}
}

func TestBuildHierarchy_GroupsByNamespaceAndKey(t *testing.T) {
	t.Parallel()

	hierarchy, err := manifest.BuildHierarchy([]*unstructured.Unstructured{
		newRecord("Deployment", "apps", "web"),
		newRecord("Service", "apps", "web"),
		newRecord("ConfigMap", "data", "settings"),
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"apps", "data"}, hierarchy.Namespaces())

	apps, ok := hierarchy.Bucket("apps")
	require.True(t, ok)
	assert.Equal(t, []manifest.RecordKey{
		{Kind: "Deployment", Name: "web"},
		{Kind: "Service", Name: "web"},
	}, apps.Keys())

	data, ok := hierarchy.Bucket("data")
	require.True(t, ok)
	assert.Equal(t, 1, data.Len())
}

func TestBuildHierarchy_DiscoversNamespaceFromMember(t *testing.T) {
	t.Parallel()

	hierarchy, err := manifest.BuildHierarchy([]*unstructured.Unstructured{
		newRecord("Pod", "ns1", "p"),
	})

	require.NoError(t, err)
	require.Equal(t, []string{"ns1"}, hierarchy.Namespaces())

	bucket, ok := hierarchy.Bucket("ns1")
	require.True(t, ok)
	assert.Equal(t, 1, bucket.Len())

	record, ok := bucket.Get(manifest.RecordKey{Kind: "Pod", Name: "p"})
	require.True(t, ok)
	assert.Equal(t, "p", record.GetName())
}

func TestBuildHierarchy_NamespaceRecordCreatesOwnBucket(t *testing.T) {
	t.Parallel()

	hierarchy, err := manifest.BuildHierarchy([]*unstructured.Unstructured{
		newRecord("Namespace", "", "team-a"),
	})

	require.NoError(t, err)

	// The Namespace record itself is cluster-scoped, so it lives under the
	// empty namespace key while an empty bucket is created under its name.
	assert.Equal(t, []string{"", "team-a"}, hierarchy.Namespaces())

	clusterScope, ok := hierarchy.Bucket("")
	require.True(t, ok)
	assert.Equal(t, 1, clusterScope.Len())

	teamA, ok := hierarchy.Bucket("team-a")
	require.True(t, ok)
	assert.Equal(t, 0, teamA.Len())
}

func TestBuildHierarchy_NamespaceRecordAfterMemberKeepsBucket(t *testing.T) {
	t.Parallel()

	hierarchy, err := manifest.BuildHierarchy([]*unstructured.Unstructured{
		newRecord("Pod", "team-a", "p"),
		newRecord("Namespace", "", "team-a"),
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"team-a", ""}, hierarchy.Namespaces())

	teamA, ok := hierarchy.Bucket("team-a")
	require.True(t, ok)
	assert.Equal(t, 1, teamA.Len())
}

func TestBuildHierarchy_SkipsKindlessRecords(t *testing.T) {
	t.Parallel()

	hierarchy, err := manifest.BuildHierarchy([]*unstructured.Unstructured{
		{Object: map[string]any{"metadata": map[string]any{"name": "noise"}}},
		newRecord("ConfigMap", "apps", "settings"),
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"apps"}, hierarchy.Namespaces())
}

func TestBuildHierarchy_FailsOnMissingName(t *testing.T) {
	t.Parallel()

	hierarchy, err := manifest.BuildHierarchy([]*unstructured.Unstructured{
		{Object: map[string]any{"kind": "ConfigMap"}},
	})

	require.Error(t, err)
	require.ErrorIs(t, err, manifest.ErrRecordNameMissing)
	assert.Contains(t, err.Error(), "ConfigMap")
	assert.Nil(t, hierarchy)
}

func TestBuildHierarchy_DuplicateKeyKeepsLastRecord(t *testing.T) {
	t.Parallel()

	first := newRecord("ConfigMap", "apps", "settings")
	first.Object["data"] = map[string]any{"revision": "1"}

	second := newRecord("ConfigMap", "apps", "settings")
	second.Object["data"] = map[string]any{"revision": "2"}

	hierarchy, err := manifest.BuildHierarchy([]*unstructured.Unstructured{first, second})

	require.NoError(t, err)

	bucket, ok := hierarchy.Bucket("apps")
	require.True(t, ok)
	require.Equal(t, 1, bucket.Len())

	record, ok := bucket.Get(manifest.RecordKey{Kind: "ConfigMap", Name: "settings"})
	require.True(t, ok)
	assert.Equal(t, second, record)
}

func TestBuildHierarchy_ClusterScopedRecordsShareEmptyKey(t *testing.T) {
	t.Parallel()

	hierarchy, err := manifest.BuildHierarchy([]*unstructured.Unstructured{
		newRecord("ClusterRole", "", "admin"),
		newRecord("ClusterRoleBinding", "", "admin"),
	})

	require.NoError(t, err)
	require.Equal(t, []string{""}, hierarchy.Namespaces())

	bucket, ok := hierarchy.Bucket("")
	require.True(t, ok)
	assert.Equal(t, 2, bucket.Len())
}

func TestBuildHierarchy_RoundTripPreservesIdentities(t *testing.T) {
	t.Parallel()

	records := []*unstructured.Unstructured{
		newRecord("Namespace", "", "team-a"),
		newRecord("Deployment", "team-a", "web"),
		newRecord("Service", "team-a", "web"),
		newRecord("ClusterRole", "", "admin"),
	}

	hierarchy, err := manifest.BuildHierarchy(records)
	require.NoError(t, err)

	type identity struct {
		namespace string
		key       manifest.RecordKey
	}

	var roundTripped []identity

	for _, namespace := range hierarchy.Namespaces() {
		bucket, ok := hierarchy.Bucket(namespace)
		require.True(t, ok)

		for _, key := range bucket.Keys() {
			roundTripped = append(roundTripped, identity{namespace: namespace, key: key})
		}
	}

	assert.Equal(t, []identity{
		{namespace: "", key: manifest.RecordKey{Kind: "Namespace", Name: "team-a"}},
		{namespace: "", key: manifest.RecordKey{Kind: "ClusterRole", Name: "admin"}},
		{namespace: "team-a", key: manifest.RecordKey{Kind: "Deployment", Name: "web"}},
		{namespace: "team-a", key: manifest.RecordKey{Kind: "Service", Name: "web"}},
	}, roundTripped)
}

func TestRecordKeyString(t *testing.T) {
	t.Parallel()

	key := manifest.RecordKey{Kind: "Deployment", Name: "web"}

	assert.Equal(t, "Deployment/web", key.String())
}
