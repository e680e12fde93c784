package manifest

import (
	"errors"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// KindNamespace is the kind of records that declare a namespace.
const KindNamespace = "Namespace"

// ErrRecordNameMissing is returned when a record carries a kind but no
// metadata.name, which leaves it without an identity to group under.
var ErrRecordNameMissing = errors.New("record has no metadata.name")

// RecordKey identifies a record within a namespace bucket.
type RecordKey struct {
	Kind string
	Name string
}

// String returns the key as "Kind/name".
func (k RecordKey) String() string {
	return k.Kind + "/" + k.Name
}

// Bucket is an insertion-ordered mapping from RecordKey to record, scoped to
// a single namespace.
type Bucket struct {
	records *orderedmap.OrderedMap[RecordKey, *unstructured.Unstructured]
}

func newBucket() *Bucket {
	return &Bucket{records: orderedmap.New[RecordKey, *unstructured.Unstructured]()}
}

// Keys returns the record keys in first-seen order.
func (b *Bucket) Keys() []RecordKey {
	keys := make([]RecordKey, 0, b.records.Len())
	for pair := b.records.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}

	return keys
}

// Get returns the record stored under key and whether it exists.
func (b *Bucket) Get(key RecordKey) (*unstructured.Unstructured, bool) {
	return b.records.Get(key)
}

// Len returns the number of records in the bucket.
func (b *Bucket) Len() int {
	return b.records.Len()
}

// Hierarchy is an insertion-ordered two-level grouping of records by
// namespace and then by (kind, name). Cluster-scoped records live under the
// empty namespace key. Namespace order and key order within a namespace both
// reflect first-seen order in the input sequence.
type Hierarchy struct {
	namespaces *orderedmap.OrderedMap[string, *Bucket]
}

// Namespaces returns the namespace identifiers in first-seen order.
func (h *Hierarchy) Namespaces() []string {
	namespaces := make([]string, 0, h.namespaces.Len())
	for pair := h.namespaces.Oldest(); pair != nil; pair = pair.Next() {
		namespaces = append(namespaces, pair.Key)
	}

	return namespaces
}

// Bucket returns the bucket for the given namespace and whether it exists.
func (h *Hierarchy) Bucket(namespace string) (*Bucket, bool) {
	return h.namespaces.Get(namespace)
}

// Len returns the number of namespace buckets, synthesized ones included.
func (h *Hierarchy) Len() int {
	return h.namespaces.Len()
}

func (h *Hierarchy) ensureBucket(namespace string) *Bucket {
	if bucket, ok := h.namespaces.Get(namespace); ok {
		return bucket
	}

	bucket := newBucket()
	h.namespaces.Set(namespace, bucket)

	return bucket
}

// BuildHierarchy groups a flat record sequence into a Hierarchy.
//
// Records without a kind are skipped silently. A bucket is created for every
// first-seen metadata.namespace and for the name of every Namespace record,
// so a namespace discovered only through its members still gets a bucket
// before or without its own Namespace record. A record with a kind but no
// name violates the input contract and fails the build. Duplicate
// (kind, name) keys within one namespace keep the last record seen.
func BuildHierarchy(records []*unstructured.Unstructured) (*Hierarchy, error) {
	hierarchy := &Hierarchy{namespaces: orderedmap.New[string, *Bucket]()}

	for _, record := range records {
		kind := record.GetKind()
		if kind == "" {
			continue
		}

		name := record.GetName()
		if name == "" {
			return nil, fmt.Errorf("%w: kind %q", ErrRecordNameMissing, kind)
		}

		bucket := hierarchy.ensureBucket(record.GetNamespace())

		if kind == KindNamespace {
			hierarchy.ensureBucket(name)
		}

		bucket.records.Set(RecordKey{Kind: kind, Name: name}, record)
	}

	return hierarchy, nil
}
