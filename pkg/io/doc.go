// Package io provides utilities for input and output operations related to configuration management.
//
// This package contains domain-specific I/O utilities focused on configuration
// management, generation, and scaffolding operations.
//
// Subpackages:
//   - configmanager: Configuration loading and management
//   - generator: Configuration file generation
//   - marshaller: Serialization and deserialization
//   - scaffolder: Project scaffolding and file generation
//
// For low-level file I/O operations (writing, path manipulation),
// see the fsutil package.
package io
