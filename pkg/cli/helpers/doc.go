// Package helpers provides common CLI utilities for command handling.
//
// Key functionality:
//   - Flag handling utilities including timing detection
//   - IOStreams construction for kubectl-style output
package helpers
