// Package fsutil provides utilities for filesystem operations.
//
// Key functionality:
//   - File writing: TryWriteFile
//   - Path operations: ExpandHomePath
package fsutil
