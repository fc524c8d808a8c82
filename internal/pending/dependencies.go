package pending

import (
	"context"
	"io/fs"

	"github.com/temirov/pending/internal/prompt"
)

// Questionnaire asks a batch of questions and returns the answers.
type Questionnaire interface {
	Ask(executionContext context.Context, questions []prompt.Question) (prompt.Answers, error)
}

// RepositoryManager exposes the repository operations a merge relies on.
type RepositoryManager interface {
	GetCurrentBranch(executionContext context.Context, repositoryPath string) (string, error)
	GetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string) (string, error)
	StageFile(executionContext context.Context, repositoryPath string, filePath string) error
	CommitFile(executionContext context.Context, repositoryPath string, filePath string, message string) error
}

// FileSystem provides the file operations used to maintain pending files.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	Abs(path string) (string, error)
	Mkdir(path string, permissions fs.FileMode) error
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, permissions fs.FileMode) error
	AppendFile(path string, data []byte, permissions fs.FileMode) error
	Remove(path string) error
}

// PathExpander resolves user shortcuts such as "~" in configured paths.
type PathExpander interface {
	Expand(candidatePath string) string
}
