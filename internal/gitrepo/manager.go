package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/pending/internal/execshell"
)

const (
	gitSymbolicRefSubcommandConstant         = "symbolic-ref"
	gitShortFlagConstant                     = "--short"
	gitQuietFlagConstant                     = "-q"
	gitRevParseSubcommandConstant            = "rev-parse"
	gitAbbrevRefFlagConstant                 = "--abbrev-ref"
	gitHeadReferenceConstant                 = "HEAD"
	gitRemoteSubcommandConstant              = "remote"
	gitRemoteGetURLSubcommandConstant        = "get-url"
	gitAddSubcommandConstant                 = "add"
	gitCommitSubcommandConstant              = "commit"
	gitMessageFlagConstant                   = "-m"
	gitPathspecSeparatorConstant             = "--"
	executorNotConfiguredMessageConstant     = "git executor not configured"
	currentBranchEmptyMessageConstant        = "git reported an empty branch name"
	remoteURLEmptyTemplateConstant           = "remote %q has no url"
	currentBranchErrorTemplateConstant       = "unable to determine current branch: %w"
	remoteURLErrorTemplateConstant           = "unable to read remote %q: %w"
	stageFileErrorTemplateConstant           = "unable to stage %s: %w"
	commitFileErrorTemplateConstant          = "unable to commit %s: %w"
	commitMessageRequiredMessageConstant     = "commit message must be provided"
	filePathRequiredMessageConstant          = "file path must be provided"
	gitTerminalPromptEnvironmentNameConstant = "GIT_TERMINAL_PROMPT"
	gitTerminalPromptDisabledValueConstant   = "0"
)

// ErrGitExecutorNotConfigured indicates the manager was constructed without an executor.
var ErrGitExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)

// ErrCurrentBranchEmpty indicates git succeeded but printed no branch name.
var ErrCurrentBranchEmpty = errors.New(currentBranchEmptyMessageConstant)

// ErrCommitMessageRequired indicates CommitFile was called with a blank message.
var ErrCommitMessageRequired = errors.New(commitMessageRequiredMessageConstant)

// ErrFilePathRequired indicates StageFile or CommitFile was called with a blank path.
var ErrFilePathRequired = errors.New(filePathRequiredMessageConstant)

// GitExecutor runs git commands.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RepositoryManager performs repository operations by invoking the git executable.
type RepositoryManager struct {
	executor GitExecutor
}

// NewRepositoryManager constructs a RepositoryManager around the provided executor.
func NewRepositoryManager(executor GitExecutor) (*RepositoryManager, error) {
	if executor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	return &RepositoryManager{executor: executor}, nil
}

// GetCurrentBranch returns the short name of the branch HEAD points to, including an
// unborn branch without commits. A detached HEAD is reported as "HEAD".
func (manager *RepositoryManager) GetCurrentBranch(executionContext context.Context, repositoryPath string) (string, error) {
	symbolicResult, symbolicError := manager.executor.ExecuteGit(executionContext, manager.details(repositoryPath, gitSymbolicRefSubcommandConstant, gitShortFlagConstant, gitQuietFlagConstant, gitHeadReferenceConstant))
	if symbolicError == nil {
		branchName := strings.TrimSpace(symbolicResult.StandardOutput)
		if len(branchName) > 0 {
			return branchName, nil
		}
	}

	executionResult, executionError := manager.executor.ExecuteGit(executionContext, manager.details(repositoryPath, gitRevParseSubcommandConstant, gitAbbrevRefFlagConstant, gitHeadReferenceConstant))
	if executionError != nil {
		return "", fmt.Errorf(currentBranchErrorTemplateConstant, executionError)
	}

	branchName := strings.TrimSpace(executionResult.StandardOutput)
	if len(branchName) == 0 {
		return "", fmt.Errorf(currentBranchErrorTemplateConstant, ErrCurrentBranchEmpty)
	}
	return branchName, nil
}

// GetRemoteURL returns the fetch URL configured for the named remote.
func (manager *RepositoryManager) GetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string) (string, error) {
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, manager.details(repositoryPath, gitRemoteSubcommandConstant, gitRemoteGetURLSubcommandConstant, remoteName))
	if executionError != nil {
		return "", fmt.Errorf(remoteURLErrorTemplateConstant, remoteName, executionError)
	}

	remoteURL := strings.TrimSpace(executionResult.StandardOutput)
	if len(remoteURL) == 0 {
		return "", fmt.Errorf(remoteURLEmptyTemplateConstant, remoteName)
	}
	return remoteURL, nil
}

// StageFile adds the file to the index.
func (manager *RepositoryManager) StageFile(executionContext context.Context, repositoryPath string, filePath string) error {
	if len(strings.TrimSpace(filePath)) == 0 {
		return ErrFilePathRequired
	}
	if _, executionError := manager.executor.ExecuteGit(executionContext, manager.details(repositoryPath, gitAddSubcommandConstant, gitPathspecSeparatorConstant, filePath)); executionError != nil {
		return fmt.Errorf(stageFileErrorTemplateConstant, filePath, executionError)
	}
	return nil
}

// CommitFile records a commit limited to the provided file.
func (manager *RepositoryManager) CommitFile(executionContext context.Context, repositoryPath string, filePath string, message string) error {
	if len(strings.TrimSpace(filePath)) == 0 {
		return ErrFilePathRequired
	}
	if len(strings.TrimSpace(message)) == 0 {
		return ErrCommitMessageRequired
	}
	if _, executionError := manager.executor.ExecuteGit(executionContext, manager.details(repositoryPath, gitCommitSubcommandConstant, gitMessageFlagConstant, message, gitPathspecSeparatorConstant, filePath)); executionError != nil {
		return fmt.Errorf(commitFileErrorTemplateConstant, filePath, executionError)
	}
	return nil
}

func (manager *RepositoryManager) details(repositoryPath string, arguments ...string) execshell.CommandDetails {
	return execshell.CommandDetails{
		Arguments:            arguments,
		WorkingDirectory:     repositoryPath,
		EnvironmentVariables: map[string]string{gitTerminalPromptEnvironmentNameConstant: gitTerminalPromptDisabledValueConstant},
	}
}
