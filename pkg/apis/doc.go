// Package apis provides API type definitions for KubeDrift resources.
//
// This package contains versioned API types following Kubernetes API conventions:
//
//   - drift: Drift configuration types for KubeDrift declarative configuration
//
// The API types are designed to be serializable to YAML and support
// declarative configuration workflows.
package apis
