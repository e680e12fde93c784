// Package render produces the desired record set from manifest sources.
//
// A source path holding a kustomization file is built with kustomize, a
// chart directory is rendered client-side with Helm, and anything else is
// read as plain YAML or JSON manifests. All renderers emit flattened
// records in a deterministic order so downstream grouping is reproducible.
package render
