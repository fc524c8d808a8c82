package gitrepo_test

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/pending/internal/execshell"
	"github.com/temirov/pending/internal/gitrepo"
)

const (
	testRepositoryPathConstant   = "/workspace/lunie"
	testPendingFilePathConstant  = ".pending/feature_x"
	testCommitMessageConstant    = "changelog"
	testOriginRemoteNameConstant = "origin"
)

type stubGitExecutor struct {
	results         []execshell.ExecutionResult
	errors          []error
	recordedDetails []execshell.CommandDetails
}

func (executor *stubGitExecutor) ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	callIndex := len(executor.recordedDetails)
	executor.recordedDetails = append(executor.recordedDetails, details)

	var result execshell.ExecutionResult
	if callIndex < len(executor.results) {
		result = executor.results[callIndex]
	}
	var executionError error
	if callIndex < len(executor.errors) {
		executionError = executor.errors[callIndex]
	}
	return result, executionError
}

func TestNewRepositoryManagerRequiresExecutor(testInstance *testing.T) {
	manager, creationError := gitrepo.NewRepositoryManager(nil)
	require.ErrorIs(testInstance, creationError, gitrepo.ErrGitExecutorNotConfigured)
	require.Nil(testInstance, manager)
}

func TestRepositoryManagerGetCurrentBranch(testInstance *testing.T) {
	symbolicReferenceArguments := []string{"symbolic-ref", "--short", "-q", "HEAD"}
	abbreviatedReferenceArguments := []string{"rev-parse", "--abbrev-ref", "HEAD"}
	detachedFailure := execshell.CommandFailedError{
		Command: execshell.ShellCommand{Name: execshell.CommandGit},
		Result:  execshell.ExecutionResult{ExitCode: 1},
	}

	testCases := []struct {
		name              string
		results           []execshell.ExecutionResult
		executionErrors   []error
		expectedBranch    string
		expectError       bool
		expectedArguments [][]string
	}{
		{
			name:              "trims_branch_name",
			results:           []execshell.ExecutionResult{{StandardOutput: "feature/x\n"}},
			expectedBranch:    "feature/x",
			expectedArguments: [][]string{symbolicReferenceArguments},
		},
		{
			name:              "detached_head",
			results:           []execshell.ExecutionResult{{}, {StandardOutput: "HEAD\n"}},
			executionErrors:   []error{detachedFailure, nil},
			expectedBranch:    "HEAD",
			expectedArguments: [][]string{symbolicReferenceArguments, abbreviatedReferenceArguments},
		},
		{
			name:              "empty_output",
			results:           []execshell.ExecutionResult{{StandardOutput: "  \n"}, {StandardOutput: "  \n"}},
			expectError:       true,
			expectedArguments: [][]string{symbolicReferenceArguments, abbreviatedReferenceArguments},
		},
		{
			name:              "git_failure",
			executionErrors:   []error{errors.New("fatal: not a git repository"), errors.New("fatal: not a git repository")},
			expectError:       true,
			expectedArguments: [][]string{symbolicReferenceArguments, abbreviatedReferenceArguments},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			executor := &stubGitExecutor{results: testCase.results, errors: testCase.executionErrors}
			manager, creationError := gitrepo.NewRepositoryManager(executor)
			require.NoError(testInstance, creationError)

			branchName, branchError := manager.GetCurrentBranch(context.Background(), testRepositoryPathConstant)
			if testCase.expectError {
				require.Error(testInstance, branchError)
			} else {
				require.NoError(testInstance, branchError)
				require.Equal(testInstance, testCase.expectedBranch, branchName)
			}

			require.Len(testInstance, executor.recordedDetails, len(testCase.expectedArguments))
			for callIndex, expectedArguments := range testCase.expectedArguments {
				require.Equal(testInstance, expectedArguments, executor.recordedDetails[callIndex].Arguments)
				require.Equal(testInstance, testRepositoryPathConstant, executor.recordedDetails[callIndex].WorkingDirectory)
			}
		})
	}
}

func TestRepositoryManagerGetCurrentBranchOnUnbornBranch(testInstance *testing.T) {
	if _, lookupError := exec.LookPath("git"); lookupError != nil {
		testInstance.Skip("git executable not available")
	}

	repositoryPath := testInstance.TempDir()
	for _, arguments := range [][]string{{"init", "--quiet"}, {"symbolic-ref", "HEAD", "refs/heads/feature/x"}} {
		command := exec.Command("git", arguments...)
		command.Dir = repositoryPath
		output, runError := command.CombinedOutput()
		require.NoError(testInstance, runError, string(output))
	}

	executor, executorError := execshell.NewShellExecutor(zap.NewNop(), execshell.NewOSCommandRunner())
	require.NoError(testInstance, executorError)
	manager, creationError := gitrepo.NewRepositoryManager(executor)
	require.NoError(testInstance, creationError)

	branchName, branchError := manager.GetCurrentBranch(context.Background(), repositoryPath)
	require.NoError(testInstance, branchError)
	require.Equal(testInstance, "feature/x", branchName)
}

func TestRepositoryManagerGetCurrentBranchWrapsEmptyOutput(testInstance *testing.T) {
	executor := &stubGitExecutor{results: []execshell.ExecutionResult{{StandardOutput: ""}, {StandardOutput: ""}}}
	manager, creationError := gitrepo.NewRepositoryManager(executor)
	require.NoError(testInstance, creationError)

	_, branchError := manager.GetCurrentBranch(context.Background(), testRepositoryPathConstant)
	require.ErrorIs(testInstance, branchError, gitrepo.ErrCurrentBranchEmpty)
}

func TestRepositoryManagerGetRemoteURL(testInstance *testing.T) {
	executor := &stubGitExecutor{results: []execshell.ExecutionResult{{StandardOutput: "git@github.com:cosmos/lunie.git\n"}}}
	manager, creationError := gitrepo.NewRepositoryManager(executor)
	require.NoError(testInstance, creationError)

	remoteURL, remoteError := manager.GetRemoteURL(context.Background(), testRepositoryPathConstant, testOriginRemoteNameConstant)
	require.NoError(testInstance, remoteError)
	require.Equal(testInstance, "git@github.com:cosmos/lunie.git", remoteURL)
	require.Equal(testInstance, []string{"remote", "get-url", "origin"}, executor.recordedDetails[0].Arguments)
}

func TestRepositoryManagerStageAndCommitFile(testInstance *testing.T) {
	executor := &stubGitExecutor{}
	manager, creationError := gitrepo.NewRepositoryManager(executor)
	require.NoError(testInstance, creationError)

	require.NoError(testInstance, manager.StageFile(context.Background(), testRepositoryPathConstant, testPendingFilePathConstant))
	require.NoError(testInstance, manager.CommitFile(context.Background(), testRepositoryPathConstant, testPendingFilePathConstant, testCommitMessageConstant))

	require.Len(testInstance, executor.recordedDetails, 2)
	require.Equal(testInstance, []string{"add", "--", testPendingFilePathConstant}, executor.recordedDetails[0].Arguments)
	require.Equal(testInstance, []string{"commit", "-m", testCommitMessageConstant, "--", testPendingFilePathConstant}, executor.recordedDetails[1].Arguments)
	require.Equal(testInstance, "0", executor.recordedDetails[1].EnvironmentVariables["GIT_TERMINAL_PROMPT"])
}

func TestRepositoryManagerCommitValidatesInputs(testInstance *testing.T) {
	executor := &stubGitExecutor{}
	manager, creationError := gitrepo.NewRepositoryManager(executor)
	require.NoError(testInstance, creationError)

	require.ErrorIs(testInstance, manager.CommitFile(context.Background(), testRepositoryPathConstant, " ", testCommitMessageConstant), gitrepo.ErrFilePathRequired)
	require.ErrorIs(testInstance, manager.CommitFile(context.Background(), testRepositoryPathConstant, testPendingFilePathConstant, ""), gitrepo.ErrCommitMessageRequired)
	require.ErrorIs(testInstance, manager.StageFile(context.Background(), testRepositoryPathConstant, ""), gitrepo.ErrFilePathRequired)
	require.Empty(testInstance, executor.recordedDetails)
}

func TestRepositoryManagerStageFileWrapsFailure(testInstance *testing.T) {
	failure := execshell.CommandFailedError{
		Command: execshell.ShellCommand{Name: execshell.CommandGit},
		Result:  execshell.ExecutionResult{ExitCode: 128, StandardError: "fatal: pathspec did not match"},
	}
	executor := &stubGitExecutor{errors: []error{failure}}
	manager, creationError := gitrepo.NewRepositoryManager(executor)
	require.NoError(testInstance, creationError)

	stageError := manager.StageFile(context.Background(), testRepositoryPathConstant, testPendingFilePathConstant)
	require.Error(testInstance, stageError)

	var commandFailure execshell.CommandFailedError
	require.ErrorAs(testInstance, stageError, &commandFailure)
	require.Equal(testInstance, 128, commandFailure.Result.ExitCode)
}
