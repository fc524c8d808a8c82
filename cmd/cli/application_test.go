package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/temirov/pending/cmd/cli"
)

const (
	testConfigurationFileNameConstant = "config.yaml"
	testBranchNameConstant            = "feature/login"
	testSanitizedBranchNameConstant   = "feature_login"
	testPendingContentsConstant       = "[Added] [#12](https://github.com/acme/site/issues/12) Login form @dev"
)

// isolateEnvironment keeps user configuration and PENDING_* variables from leaking into a test.
func isolateEnvironment(testInstance *testing.T) string {
	testInstance.Helper()
	homeDirectory := testInstance.TempDir()
	testInstance.Setenv("HOME", homeDirectory)
	testInstance.Setenv("XDG_CONFIG_HOME", filepath.Join(homeDirectory, ".config"))
	workingDirectory := testInstance.TempDir()
	testInstance.Chdir(workingDirectory)
	return workingDirectory
}

func executeApplication(testInstance *testing.T, arguments ...string) (string, error) {
	testInstance.Helper()
	application := cli.NewApplication()
	outputBuffer := &bytes.Buffer{}
	application.RootCommand().SetOut(outputBuffer)
	application.RootCommand().SetErr(outputBuffer)
	executionError := application.ExecuteWithArguments(append([]string{"--log-level", "error"}, arguments...))
	return outputBuffer.String(), executionError
}

func decodePrintedConfiguration(testInstance *testing.T, output string) cli.ApplicationConfiguration {
	testInstance.Helper()
	configuration := cli.ApplicationConfiguration{}
	require.NoError(testInstance, yaml.Unmarshal([]byte(output), &configuration))
	return configuration
}

func TestConfigCommandPrintsEmbeddedDefaults(testInstance *testing.T) {
	isolateEnvironment(testInstance)

	output, executionError := executeApplication(testInstance, "config")
	require.NoError(testInstance, executionError)
	require.Contains(testInstance, output, "# source: built-in defaults")

	configuration := decodePrintedConfiguration(testInstance, output)
	require.Equal(testInstance, "error", configuration.Common.LogLevel)
	require.Equal(testInstance, "console", configuration.Common.LogFormat)
	require.Equal(testInstance, ".pending", configuration.Tools.Add.PendingChangesPath)
	require.Equal(testInstance, "changelog", configuration.Tools.Add.CommitMessage)
	require.Equal(testInstance, "origin", configuration.Tools.Add.RemoteName)
	require.EqualValues(testInstance, "ask", configuration.Tools.Add.ExistingFile)
	require.EqualValues(testInstance, "interactive", configuration.Tools.Add.Prompt)
	require.EqualValues(testInstance, "cli", configuration.Tools.Add.VersionControl)
	require.False(testInstance, configuration.Tools.Add.Commit)
}

func TestConfigurationLayering(testInstance *testing.T) {
	testCases := []struct {
		name              string
		fileContent       string
		environment       map[string]string
		useWorkingFile    bool
		expectedExisting  string
		expectedCommit    bool
		expectedPath      string
		expectedSourceTag string
	}{
		{
			name:              "explicit_config_file",
			fileContent:       "tools:\n  add:\n    existing: append\n    commit: true\n",
			expectedExisting:  "append",
			expectedCommit:    true,
			expectedPath:      ".pending",
			expectedSourceTag: testConfigurationFileNameConstant,
		},
		{
			name:              "working_directory_config_file",
			fileContent:       "tools:\n  add:\n    path: notes/pending\n",
			useWorkingFile:    true,
			expectedExisting:  "ask",
			expectedPath:      "notes/pending",
			expectedSourceTag: testConfigurationFileNameConstant,
		},
		{
			name:              "environment_overrides_file",
			fileContent:       "tools:\n  add:\n    existing: append\n",
			environment:       map[string]string{"PENDING_TOOLS_ADD_EXISTING": "drop", "PENDING_TOOLS_ADD_COMMIT": "true"},
			expectedExisting:  "drop",
			expectedCommit:    true,
			expectedPath:      ".pending",
			expectedSourceTag: testConfigurationFileNameConstant,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			workingDirectory := isolateEnvironment(testInstance)
			for name, value := range testCase.environment {
				testInstance.Setenv(name, value)
			}

			configurationDirectory := testInstance.TempDir()
			if testCase.useWorkingFile {
				configurationDirectory = workingDirectory
			}
			configurationPath := filepath.Join(configurationDirectory, testConfigurationFileNameConstant)
			require.NoError(testInstance, os.WriteFile(configurationPath, []byte(testCase.fileContent), 0o600))

			arguments := []string{"config"}
			if !testCase.useWorkingFile {
				arguments = append(arguments, "--config", configurationPath)
			}

			output, executionError := executeApplication(testInstance, arguments...)
			require.NoError(testInstance, executionError)
			require.Contains(testInstance, output, testCase.expectedSourceTag)

			configuration := decodePrintedConfiguration(testInstance, output)
			require.EqualValues(testInstance, testCase.expectedExisting, configuration.Tools.Add.ExistingFile)
			require.Equal(testInstance, testCase.expectedCommit, configuration.Tools.Add.Commit)
			require.Equal(testInstance, testCase.expectedPath, configuration.Tools.Add.PendingChangesPath)
		})
	}
}

func TestConfigurationRejectsUnknownValues(testInstance *testing.T) {
	testCases := []struct {
		name        string
		fileContent string
		arguments   []string
	}{
		{name: "unknown_strategy", fileContent: "tools:\n  add:\n    existing: merge\n"},
		{name: "unknown_backend", fileContent: "tools:\n  add:\n    vcs: svn\n"},
		{name: "unknown_log_level", fileContent: "common:\n  log_level: chatty\n"},
		{name: "unknown_log_format_flag", fileContent: "", arguments: []string{"--log-format", "xml"}},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			isolateEnvironment(testInstance)
			configurationPath := filepath.Join(testInstance.TempDir(), testConfigurationFileNameConstant)
			require.NoError(testInstance, os.WriteFile(configurationPath, []byte(testCase.fileContent), 0o600))

			application := cli.NewApplication()
			application.RootCommand().SetOut(&bytes.Buffer{})
			arguments := append([]string{"config", "--config", configurationPath}, testCase.arguments...)
			require.Error(testInstance, application.ExecuteWithArguments(arguments))
		})
	}
}

func TestVersionFlagPrintsVersion(testInstance *testing.T) {
	isolateEnvironment(testInstance)

	output, executionError := executeApplication(testInstance, "--version")
	require.NoError(testInstance, executionError)
	require.Contains(testInstance, output, cli.Version)
}

func TestRootCommandListsSubcommands(testInstance *testing.T) {
	isolateEnvironment(testInstance)

	output, executionError := executeApplication(testInstance)
	require.NoError(testInstance, executionError)
	for _, subcommandName := range []string{"add", "show", "config"} {
		require.Contains(testInstance, output, subcommandName)
	}
}

func TestShowCommandReadsBranchFileWithGoGit(testInstance *testing.T) {
	workingDirectory := isolateEnvironment(testInstance)
	testInstance.Setenv("PENDING_TOOLS_ADD_VCS", "go-git")

	repository, initError := git.PlainInit(workingDirectory, false)
	require.NoError(testInstance, initError)
	headReference := plumbing.NewSymbolicReference(plumbing.HEAD, plumbing.NewBranchReferenceName(testBranchNameConstant))
	require.NoError(testInstance, repository.Storer.SetReference(headReference))

	output, executionError := executeApplication(testInstance, "show")
	require.NoError(testInstance, executionError)
	require.Contains(testInstance, output, "No pending changes for "+testBranchNameConstant)

	pendingDirectory := filepath.Join(workingDirectory, ".pending")
	require.NoError(testInstance, os.Mkdir(pendingDirectory, 0o755))
	require.NoError(testInstance, os.WriteFile(filepath.Join(pendingDirectory, testSanitizedBranchNameConstant), []byte(testPendingContentsConstant), 0o644))

	output, executionError = executeApplication(testInstance, "show")
	require.NoError(testInstance, executionError)
	require.Equal(testInstance, testPendingContentsConstant, output)
}

func TestAddCommandFailsOutsideRepository(testInstance *testing.T) {
	isolateEnvironment(testInstance)
	testInstance.Setenv("PENDING_TOOLS_ADD_VCS", "go-git")

	output, executionError := executeApplication(testInstance, "add", "--prompt", "plain", "--commit", "no")
	require.Error(testInstance, executionError)
	require.Contains(testInstance, output, "not on a git branch")
}
