package diff

import (
	"github.com/devantler-tech/kubedrift/pkg/manifest"
	"k8s.io/apimachinery/pkg/api/equality"
	"k8s.io/apimachinery/pkg/util/sets"
)

// Stream is a lazy, single-pass producer of change events over two
// hierarchies. It compares records only as Next is called, so a consumer
// that stops early never pays for the namespaces it did not reach. A Stream
// is single-use and not safe for concurrent consumption.
type Stream struct {
	cluster *manifest.Hierarchy
	local   *manifest.Hierarchy

	namespaces     *manifest.Interleaver[string]
	namespacesSeen sets.Set[string]

	// Record-level cursor for the shared namespace currently being walked,
	// nil between namespaces.
	records       *manifest.Interleaver[manifest.RecordKey]
	recordsSeen   sets.Set[manifest.RecordKey]
	namespace     string
	clusterBucket *manifest.Bucket
	localBucket   *manifest.Bucket
}

// Calculate returns a Stream of the changes that would take the cluster
// hierarchy to the local hierarchy. Both hierarchies are treated as
// immutable snapshots for the lifetime of the stream.
func Calculate(cluster, local *manifest.Hierarchy) *Stream {
	return &Stream{
		cluster:        cluster,
		local:          local,
		namespaces:     manifest.NewInterleaver(cluster.Namespaces(), local.Namespaces()),
		namespacesSeen: sets.New[string](),
	}
}

// Next returns the next change event. The boolean reports whether an event
// was produced; once it is false the stream is exhausted and every later
// call returns false.
func (s *Stream) Next() (Event, bool) {
	for {
		if s.records != nil {
			event, ok := s.nextRecordEvent()
			if ok {
				return event, true
			}

			s.records = nil
		}

		namespace, _, ok := s.namespaces.Next()
		if !ok {
			return Event{}, false
		}

		if s.namespacesSeen.Has(namespace) {
			continue
		}

		s.namespacesSeen.Insert(namespace)

		clusterBucket, inCluster := s.cluster.Bucket(namespace)
		localBucket, inLocal := s.local.Bucket(namespace)

		switch {
		case inCluster && inLocal:
			s.enterNamespace(namespace, clusterBucket, localBucket)
		case inCluster:
			return Event{Op: OpDeleteNamespace, Namespace: namespace}, true
		default:
			return Event{Op: OpAddNamespace, Namespace: namespace}, true
		}
	}
}

// enterNamespace positions the record-level cursor on a namespace present on
// both sides.
func (s *Stream) enterNamespace(namespace string, clusterBucket, localBucket *manifest.Bucket) {
	s.namespace = namespace
	s.clusterBucket = clusterBucket
	s.localBucket = localBucket
	s.records = manifest.NewInterleaver(clusterBucket.Keys(), localBucket.Keys())
	s.recordsSeen = sets.New[manifest.RecordKey]()
}

func (s *Stream) nextRecordEvent() (Event, bool) {
	for {
		key, _, ok := s.records.Next()
		if !ok {
			return Event{}, false
		}

		if s.recordsSeen.Has(key) {
			continue
		}

		s.recordsSeen.Insert(key)

		clusterRecord, inCluster := s.clusterBucket.Get(key)
		localRecord, inLocal := s.localBucket.Get(key)

		switch {
		case inCluster && inLocal:
			if equality.Semantic.DeepEqual(clusterRecord.Object, localRecord.Object) {
				continue
			}

			return s.recordEvent(OpChangeRecord, key), true
		case inCluster:
			return s.recordEvent(OpDeleteRecord, key), true
		default:
			return s.recordEvent(OpAddRecord, key), true
		}
	}
}

func (s *Stream) recordEvent(op Op, key manifest.RecordKey) Event {
	return Event{Op: op, Namespace: s.namespace, Kind: key.Kind, Name: key.Name}
}
