package collector

import (
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	utiljson "k8s.io/apimachinery/pkg/util/json"
)

// prunedMetadataFields are populated by the API server and never appear in
// desired manifests.
var prunedMetadataFields = []string{
	"creationTimestamp",
	"generation",
	"managedFields",
	"resourceVersion",
	"selfLink",
	"uid",
}

// comparisonForm rewrites an owned live record into the form used for
// comparison. When lastApplied is set and the record carries a parseable
// last-applied-configuration annotation, the annotation content replaces the
// record. Otherwise the live body is kept with server-populated fields
// pruned.
func comparisonForm(record *unstructured.Unstructured, lastApplied bool) *unstructured.Unstructured {
	if lastApplied {
		parsed, ok := parseLastApplied(record)
		if ok {
			return parsed
		}
	}

	pruneServerFields(record)

	return record
}

// parseLastApplied extracts the record stored in the
// last-applied-configuration annotation. A missing or unparseable
// annotation returns false so the caller falls back to the live body.
func parseLastApplied(record *unstructured.Unstructured) (*unstructured.Unstructured, bool) {
	raw, ok := record.GetAnnotations()[corev1.LastAppliedConfigAnnotation]
	if !ok {
		return nil, false
	}

	object := map[string]any{}

	err := utiljson.Unmarshal([]byte(raw), &object)
	if err != nil || len(object) == 0 {
		return nil, false
	}

	return &unstructured.Unstructured{Object: object}, true
}

// pruneServerFields removes, in place, the fields the API server populates
// on served objects: status, bookkeeping metadata, and the
// last-applied-configuration annotation itself.
func pruneServerFields(record *unstructured.Unstructured) {
	unstructured.RemoveNestedField(record.Object, "status")

	for _, field := range prunedMetadataFields {
		unstructured.RemoveNestedField(record.Object, "metadata", field)
	}

	annotations := record.GetAnnotations()
	if _, ok := annotations[corev1.LastAppliedConfigAnnotation]; !ok {
		return
	}

	delete(annotations, corev1.LastAppliedConfigAnnotation)

	if len(annotations) == 0 {
		unstructured.RemoveNestedField(record.Object, "metadata", "annotations")
	} else {
		record.SetAnnotations(annotations)
	}
}
