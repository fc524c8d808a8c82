package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

const (
	openRepositoryErrorTemplateConstant = "unable to open repository at %s: %w"
	headReferenceErrorTemplateConstant  = "unable to read HEAD: %w"
	worktreeErrorTemplateConstant       = "unable to open worktree: %w"
	relativePathErrorTemplateConstant   = "unable to resolve %s relative to %s: %w"
	remoteLookupErrorTemplateConstant   = "unable to read remote %q: %w"
	outsideWorktreeMessageConstant      = "path is outside the repository worktree"
	parentDirectoryPrefixConstant       = ".."
	goGitDetachedHeadNameConstant       = "HEAD"
)

// ErrPathOutsideWorktree indicates a file cannot be staged because it lives outside the worktree.
var ErrPathOutsideWorktree = errors.New(outsideWorktreeMessageConstant)

// GoGitRepositoryManager performs repository operations in-process using go-git.
type GoGitRepositoryManager struct {
	author *object.Signature
}

// GoGitOption customizes a GoGitRepositoryManager.
type GoGitOption func(*GoGitRepositoryManager)

// WithCommitAuthor fixes the signature used for commits instead of reading it from git configuration.
func WithCommitAuthor(author *object.Signature) GoGitOption {
	return func(manager *GoGitRepositoryManager) {
		manager.author = author
	}
}

// NewGoGitRepositoryManager constructs a go-git backed manager.
func NewGoGitRepositoryManager(options ...GoGitOption) *GoGitRepositoryManager {
	manager := &GoGitRepositoryManager{}
	for _, option := range options {
		option(manager)
	}
	return manager
}

// GetCurrentBranch returns the short name of the branch HEAD points at, or "HEAD" when detached.
func (manager *GoGitRepositoryManager) GetCurrentBranch(executionContext context.Context, repositoryPath string) (string, error) {
	repository, openError := manager.open(repositoryPath)
	if openError != nil {
		return "", fmt.Errorf(currentBranchErrorTemplateConstant, openError)
	}

	// Reading HEAD without resolving keeps unborn branches working.
	headReference, referenceError := repository.Reference(plumbing.HEAD, false)
	if referenceError != nil {
		return "", fmt.Errorf(currentBranchErrorTemplateConstant, fmt.Errorf(headReferenceErrorTemplateConstant, referenceError))
	}

	if headReference.Type() != plumbing.SymbolicReference {
		return goGitDetachedHeadNameConstant, nil
	}
	return headReference.Target().Short(), nil
}

// GetRemoteURL returns the first URL configured for the named remote.
func (manager *GoGitRepositoryManager) GetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string) (string, error) {
	repository, openError := manager.open(repositoryPath)
	if openError != nil {
		return "", fmt.Errorf(remoteURLErrorTemplateConstant, remoteName, openError)
	}

	remote, remoteError := repository.Remote(remoteName)
	if remoteError != nil {
		return "", fmt.Errorf(remoteLookupErrorTemplateConstant, remoteName, remoteError)
	}

	remoteURLs := remote.Config().URLs
	if len(remoteURLs) == 0 {
		return "", fmt.Errorf(remoteURLEmptyTemplateConstant, remoteName)
	}
	return remoteURLs[0], nil
}

// StageFile adds the file to the index.
func (manager *GoGitRepositoryManager) StageFile(executionContext context.Context, repositoryPath string, filePath string) error {
	if len(strings.TrimSpace(filePath)) == 0 {
		return ErrFilePathRequired
	}

	worktree, worktreeError := manager.worktree(repositoryPath)
	if worktreeError != nil {
		return fmt.Errorf(stageFileErrorTemplateConstant, filePath, worktreeError)
	}

	worktreeRelativePath, relativeError := manager.relativeToWorktree(worktree, repositoryPath, filePath)
	if relativeError != nil {
		return fmt.Errorf(stageFileErrorTemplateConstant, filePath, relativeError)
	}

	if _, addError := worktree.Add(worktreeRelativePath); addError != nil {
		return fmt.Errorf(stageFileErrorTemplateConstant, filePath, addError)
	}
	return nil
}

// CommitFile records a commit of the current index. go-git cannot limit a commit
// to a pathspec, so anything staged beforehand is included as well.
func (manager *GoGitRepositoryManager) CommitFile(executionContext context.Context, repositoryPath string, filePath string, message string) error {
	if len(strings.TrimSpace(filePath)) == 0 {
		return ErrFilePathRequired
	}
	if len(strings.TrimSpace(message)) == 0 {
		return ErrCommitMessageRequired
	}

	worktree, worktreeError := manager.worktree(repositoryPath)
	if worktreeError != nil {
		return fmt.Errorf(commitFileErrorTemplateConstant, filePath, worktreeError)
	}

	commitOptions := &git.CommitOptions{}
	if manager.author != nil {
		commitOptions.Author = manager.author
	}

	if _, commitError := worktree.Commit(message, commitOptions); commitError != nil {
		return fmt.Errorf(commitFileErrorTemplateConstant, filePath, commitError)
	}
	return nil
}

func (manager *GoGitRepositoryManager) open(repositoryPath string) (*git.Repository, error) {
	repository, openError := git.PlainOpenWithOptions(repositoryPath, &git.PlainOpenOptions{DetectDotGit: true})
	if openError != nil {
		return nil, fmt.Errorf(openRepositoryErrorTemplateConstant, repositoryPath, openError)
	}
	return repository, nil
}

func (manager *GoGitRepositoryManager) worktree(repositoryPath string) (*git.Worktree, error) {
	repository, openError := manager.open(repositoryPath)
	if openError != nil {
		return nil, openError
	}
	worktree, worktreeError := repository.Worktree()
	if worktreeError != nil {
		return nil, fmt.Errorf(worktreeErrorTemplateConstant, worktreeError)
	}
	return worktree, nil
}

func (manager *GoGitRepositoryManager) relativeToWorktree(worktree *git.Worktree, repositoryPath string, filePath string) (string, error) {
	absoluteFilePath := filePath
	if !filepath.IsAbs(absoluteFilePath) {
		absoluteFilePath = filepath.Join(repositoryPath, filePath)
	}
	absoluteFilePath, absoluteError := filepath.Abs(absoluteFilePath)
	if absoluteError != nil {
		return "", absoluteError
	}

	worktreeRoot := worktree.Filesystem.Root()
	relativePath, relativeError := filepath.Rel(worktreeRoot, absoluteFilePath)
	if relativeError != nil {
		return "", fmt.Errorf(relativePathErrorTemplateConstant, absoluteFilePath, worktreeRoot, relativeError)
	}
	if relativePath == parentDirectoryPrefixConstant || strings.HasPrefix(relativePath, parentDirectoryPrefixConstant+string(filepath.Separator)) {
		return "", ErrPathOutsideWorktree
	}
	return filepath.ToSlash(relativePath), nil
}
