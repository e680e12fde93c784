// Package svc provides service layer components for KubeDrift.
//
// This package contains the business logic layer that coordinates between
// the CLI commands and the cluster/filesystem infrastructure.
//
// Subpackages:
//   - collector: Cluster object collection via dynamic and discovery clients
//   - diff: Drift detection engine comparing desired and live object streams
//   - render: Manifest rendering from kustomize, Helm, and plain YAML sources
//   - validate: Schema validation of rendered manifests
package svc
