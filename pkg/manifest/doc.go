// Package manifest models Kubernetes manifests as dynamically-shaped records
// and groups them for comparison.
//
// Records are [unstructured.Unstructured] values decoded from YAML or JSON
// document streams. The package flattens List wrappers, interleaves ordered
// sequences for fair two-sided traversal, and builds the two-level Hierarchy
// (namespace, then kind and name) that the diff engine walks.
package manifest
