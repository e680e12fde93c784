package render

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/devantler-tech/kubedrift/pkg/manifest"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// YAMLRenderer reads plain YAML or JSON manifests from a file or a
// directory tree. Directory entries are visited in lexical order and hidden
// directories are skipped, so output order depends only on the tree layout.
type YAMLRenderer struct{}

// Render implements Renderer.
func (r *YAMLRenderer) Render(
	_ context.Context,
	path string,
) ([]*unstructured.Unstructured, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to access source path %s: %w", path, err)
	}

	if !info.IsDir() {
		return renderManifestFile(path)
	}

	var records []*unstructured.Unstructured

	err = filepath.WalkDir(path, func(entry string, dirEntry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if dirEntry.IsDir() {
			if entry != path && strings.HasPrefix(dirEntry.Name(), ".") {
				return filepath.SkipDir
			}

			return nil
		}

		if !isManifestFile(entry) {
			return nil
		}

		fileRecords, err := renderManifestFile(entry)
		if err != nil {
			return err
		}

		records = append(records, fileRecords...)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk source path %s: %w", path, err)
	}

	return records, nil
}

func renderManifestFile(path string) ([]*unstructured.Unstructured, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest file %s: %w", path, err)
	}
	defer file.Close()

	records, err := manifest.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode manifest file %s: %w", path, err)
	}

	return manifest.Flatten(records), nil
}

func isManifestFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return true
	default:
		return false
	}
}
