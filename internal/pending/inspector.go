package pending

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	pathutils "github.com/temirov/pending/internal/utils/path"
)

const (
	branchLookupErrorTemplateConstant = "%w: %w"
	readFileErrorTemplateConstant     = "unable to read pending file %s: %w"
)

// Snapshot describes the pending file of the current branch as it exists on disk.
type Snapshot struct {
	BranchName string
	FilePath   string
	Exists     bool
	Contents   []byte
}

// Inspector reads pending files without modifying anything.
type Inspector struct {
	repositoryManager RepositoryManager
	fileSystem        FileSystem
	pathExpander      PathExpander
}

// NewInspector constructs an Inspector.
func NewInspector(repositoryManager RepositoryManager, fileSystem FileSystem) (*Inspector, error) {
	if repositoryManager == nil {
		return nil, ErrRepositoryManagerNotConfigured
	}
	if fileSystem == nil {
		return nil, ErrFileSystemNotConfigured
	}
	return &Inspector{repositoryManager: repositoryManager, fileSystem: fileSystem, pathExpander: pathutils.NewHomeExpander()}, nil
}

// Read loads the raw pending file for the current branch. A missing file is not an error.
func (inspector *Inspector) Read(executionContext context.Context, options Options) (Snapshot, error) {
	normalizedOptions, optionsError := normalizeOptions(options)
	if optionsError != nil {
		return Snapshot{}, optionsError
	}

	branchName, branchError := inspector.repositoryManager.GetCurrentBranch(executionContext, normalizedOptions.RepositoryPath)
	if branchError != nil {
		return Snapshot{}, fmt.Errorf(branchLookupErrorTemplateConstant, ErrBranchUnavailable, branchError)
	}

	directoryPath, absoluteError := inspector.fileSystem.Abs(inspector.pathExpander.Expand(normalizedOptions.PendingChangesPath))
	if absoluteError != nil {
		return Snapshot{}, fmt.Errorf(directoryResolveErrorTemplateConstant, normalizedOptions.PendingChangesPath, absoluteError)
	}

	snapshot := Snapshot{BranchName: branchName, FilePath: filepath.Join(directoryPath, SanitizeBranchName(branchName))}
	contents, readError := inspector.fileSystem.ReadFile(snapshot.FilePath)
	switch {
	case readError == nil:
		snapshot.Exists = true
		snapshot.Contents = contents
		return snapshot, nil
	case errors.Is(readError, fs.ErrNotExist):
		return snapshot, nil
	default:
		return Snapshot{}, fmt.Errorf(readFileErrorTemplateConstant, snapshot.FilePath, readError)
	}
}
