package manifest

import (
	"strings"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

const listKindSuffix = "List"

// Flatten expands List wrapper records into their items, recursively, and
// returns all other records unchanged in order. A record whose kind ends in
// "List" but has no items array is kept as an ordinary record.
func Flatten(records []*unstructured.Unstructured) []*unstructured.Unstructured {
	flattened := make([]*unstructured.Unstructured, 0, len(records))
	for _, record := range records {
		flattened = appendFlattened(flattened, record)
	}

	return flattened
}

func appendFlattened(
	records []*unstructured.Unstructured,
	record *unstructured.Unstructured,
) []*unstructured.Unstructured {
	if !strings.HasSuffix(record.GetKind(), listKindSuffix) {
		return append(records, record)
	}

	items, ok := record.Object["items"].([]any)
	if !ok {
		return append(records, record)
	}

	for _, item := range items {
		content, ok := item.(map[string]any)
		if !ok {
			continue
		}

		records = appendFlattened(records, &unstructured.Unstructured{Object: content})
	}

	return records
}
