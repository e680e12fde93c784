package fsutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// File writing operations.

const (
	// dirPermUserGroupRX is the permission mode for created directories.
	dirPermUserGroupRX = 0o755
	// filePermUserRW is the permission mode for written files.
	filePermUserRW = 0o644
)

// TryWriteFile writes content to a file path, handling force/overwrite logic.
// When force is false an existing file is left untouched and the content is
// returned unchanged, so scaffolding is idempotent.
func TryWriteFile(content string, output string, force bool) (string, error) {
	if output == "" {
		return "", ErrEmptyOutputPath
	}

	output = filepath.Clean(output)

	if !force {
		_, err := os.Stat(output)
		if err == nil {
			return content, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("failed to check file %s: %w", output, err)
		}
	}

	dir := filepath.Dir(output)

	err := os.MkdirAll(dir, dirPermUserGroupRX)
	if err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	err = os.WriteFile(output, []byte(content), filePermUserRW)
	if err != nil {
		return "", fmt.Errorf("failed to write file %s: %w", output, err)
	}

	return content, nil
}
