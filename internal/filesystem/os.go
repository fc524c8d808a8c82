package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"
)

const appendFileFlagsConstant = os.O_APPEND | os.O_CREATE | os.O_WRONLY

// OSFileSystem implements the pending file operations with operating system primitives.
type OSFileSystem struct{}

// Stat retrieves file metadata.
func (OSFileSystem) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// Abs resolves an absolute path.
func (OSFileSystem) Abs(path string) (string, error) {
	return filepath.Abs(path)
}

// Mkdir creates a single directory. Missing parents are reported as errors.
func (OSFileSystem) Mkdir(path string, permissions fs.FileMode) error {
	return os.Mkdir(path, permissions)
}

// ReadFile reads file contents.
func (OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile replaces file contents, creating the file when needed.
func (OSFileSystem) WriteFile(path string, data []byte, permissions fs.FileMode) error {
	return os.WriteFile(path, data, permissions)
}

// AppendFile appends data to the end of a file, creating it when needed.
func (OSFileSystem) AppendFile(path string, data []byte, permissions fs.FileMode) (appendError error) {
	fileHandle, openError := os.OpenFile(path, appendFileFlagsConstant, permissions)
	if openError != nil {
		return openError
	}
	defer func() {
		if closeError := fileHandle.Close(); closeError != nil && appendError == nil {
			appendError = closeError
		}
	}()

	_, appendError = fileHandle.Write(data)
	return appendError
}

// Remove deletes a file.
func (OSFileSystem) Remove(path string) error {
	return os.Remove(path)
}
