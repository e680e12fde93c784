// Package cli provides reusable helpers for command wiring and execution.
//
// This package is organized into subpackages for different functionality:
//
//   - cli/cmd: Cobra command definitions for the kubedrift binary
//   - cli/helpers: Flag handling, kubeconfig resolution, and IO stream utilities
//   - cli/ui: User interface components (asciiart, diffview, errorhandler)
//
// The utilities in this package follow dependency injection patterns and integrate
// with the KubeDrift runtime container for testability and flexibility.
package cli
