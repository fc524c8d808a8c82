package pending

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/pending/internal/execshell"
	"github.com/temirov/pending/internal/filesystem"
	"github.com/temirov/pending/internal/gitrepo"
	"github.com/temirov/pending/internal/prompt"
	"github.com/temirov/pending/internal/ui"
	flagutils "github.com/temirov/pending/internal/utils/flags"
)

const (
	addCommandUseConstant                 = "add"
	addCommandShortDescriptionConstant    = "Record changelog entries for the current branch"
	addCommandLongDescriptionConstant     = "add asks for one or more changelog entries and writes them to a pending file named after the current git branch, optionally committing it."
	addCommandExampleConstant             = "pending add --path .pending --commit"
	pathFlagNameConstant                  = "path"
	pathFlagUsageConstant                 = "Directory that holds pending changelog files"
	commitFlagNameConstant                = "commit"
	commitFlagUsageConstant               = "Stage and commit the pending file after writing it"
	existingFlagNameConstant              = "existing"
	existingFlagDescriptionConstant       = "What to do with a pending file left by an earlier run"
	promptFlagNameConstant                = "prompt"
	promptFlagDescriptionConstant         = "How questions are asked"
	versionControlFlagNameConstant        = "vcs"
	versionControlFlagDescriptionConstant = "How git is driven"
	repositoryFlagNameConstant            = "repository"
	repositoryFlagUsageConstant           = "GitHub owner/name used in reference links (defaults to the origin remote)"
	branchUnavailableErrorMessageConstant = "current branch unavailable"
	mergeErrorTemplateConstant            = "unable to record pending changes: %w"
)

// ErrBranchUnavailable is returned by the add command when the working directory is not on a git branch.
var ErrBranchUnavailable = errors.New(branchUnavailableErrorMessageConstant)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the add command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
	GitExecutor                  gitrepo.GitExecutor
	RepositoryManager            RepositoryManager
	FileSystem                   FileSystem
	Questionnaire                Questionnaire
	WorkingDirectory             string
}

// Build constructs the add command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:     addCommandUseConstant,
		Short:   addCommandShortDescriptionConstant,
		Long:    addCommandLongDescriptionConstant,
		Example: addCommandExampleConstant,
		Args:    cobra.NoArgs,
		RunE:    builder.run,
	}

	defaults := DefaultCommandConfiguration()
	command.Flags().String(pathFlagNameConstant, "", pathFlagUsageConstant)
	flagutils.AddToggleFlag(command.Flags(), nil, commitFlagNameConstant, "", defaults.Commit, commitFlagUsageConstant)
	command.Flags().String(existingFlagNameConstant, "", flagutils.FormatChoiceUsage(string(defaults.ExistingFile), []string{string(ExistingFileAsk), string(ExistingFileAppend), string(ExistingFileDrop)}, existingFlagDescriptionConstant))
	command.Flags().String(promptFlagNameConstant, "", flagutils.FormatChoiceUsage(string(defaults.Prompt), []string{string(PromptModeInteractive), string(PromptModePlain)}, promptFlagDescriptionConstant))
	command.Flags().String(versionControlFlagNameConstant, "", flagutils.FormatChoiceUsage(string(defaults.VersionControl), []string{string(VersionControlBackendCLI), string(VersionControlBackendGoGit)}, versionControlFlagDescriptionConstant))
	command.Flags().String(repositoryFlagNameConstant, "", repositoryFlagUsageConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration, configurationError := builder.parseConfiguration(command)
	if configurationError != nil {
		return configurationError
	}

	logger := resolveLogger(builder.LoggerProvider)
	repositoryManager, managerError := builder.resolveRepositoryManager(logger, configuration.VersionControl)
	if managerError != nil {
		return managerError
	}

	service, serviceError := NewService(ServiceDependencies{
		Logger:            logger,
		RepositoryManager: repositoryManager,
		FileSystem:        builder.resolveFileSystem(),
		Questionnaire:     builder.resolveQuestionnaire(command, configuration.Prompt),
	})
	if serviceError != nil {
		return serviceError
	}

	result, mergeError := service.Merge(command.Context(), Options{
		RepositoryPath:     builder.WorkingDirectory,
		PendingChangesPath: configuration.PendingChangesPath,
		Commit:             configuration.Commit,
		CommitMessage:      configuration.CommitMessage,
		ExistingFile:       configuration.ExistingFile,
		RepositorySlug:     configuration.RepositorySlug,
		RemoteName:         configuration.RemoteName,
	})
	if mergeError != nil && !errors.Is(mergeError, ErrCommitFailed) {
		return fmt.Errorf(mergeErrorTemplateConstant, mergeError)
	}

	fmt.Fprintln(command.OutOrStdout(), RenderSummary(result))

	if mergeError != nil {
		return fmt.Errorf(mergeErrorTemplateConstant, mergeError)
	}
	if result.BranchUnavailable {
		return ErrBranchUnavailable
	}
	return nil
}

func (builder *CommandBuilder) parseConfiguration(command *cobra.Command) (CommandConfiguration, error) {
	configuration := builder.resolveConfiguration()
	flagSet := command.Flags()

	if flagSet.Changed(pathFlagNameConstant) {
		pathValue, _ := flagSet.GetString(pathFlagNameConstant)
		configuration.PendingChangesPath = trimmedOrDefault(pathValue, configuration.PendingChangesPath)
	}
	if flagSet.Changed(commitFlagNameConstant) {
		commitValue, commitError := flagSet.GetBool(commitFlagNameConstant)
		if commitError != nil {
			return CommandConfiguration{}, commitError
		}
		configuration.Commit = commitValue
	}
	if flagSet.Changed(existingFlagNameConstant) {
		existingValue, _ := flagSet.GetString(existingFlagNameConstant)
		strategy, strategyError := ParseExistingFileStrategy(existingValue)
		if strategyError != nil {
			return CommandConfiguration{}, strategyError
		}
		configuration.ExistingFile = strategy
	}
	if flagSet.Changed(promptFlagNameConstant) {
		promptValue, _ := flagSet.GetString(promptFlagNameConstant)
		mode, modeError := ParsePromptMode(promptValue)
		if modeError != nil {
			return CommandConfiguration{}, modeError
		}
		configuration.Prompt = mode
	}
	if flagSet.Changed(versionControlFlagNameConstant) {
		backendValue, _ := flagSet.GetString(versionControlFlagNameConstant)
		backend, backendError := ParseVersionControlBackend(backendValue)
		if backendError != nil {
			return CommandConfiguration{}, backendError
		}
		configuration.VersionControl = backend
	}
	if flagSet.Changed(repositoryFlagNameConstant) {
		repositoryValue, _ := flagSet.GetString(repositoryFlagNameConstant)
		configuration.RepositorySlug = strings.TrimSpace(repositoryValue)
	}

	return configuration, nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) resolveRepositoryManager(logger *zap.Logger, backend VersionControlBackend) (RepositoryManager, error) {
	if builder.RepositoryManager != nil {
		return builder.RepositoryManager, nil
	}
	if backend == VersionControlBackendGoGit {
		return gitrepo.NewGoGitRepositoryManager(), nil
	}

	gitExecutor := builder.GitExecutor
	if gitExecutor == nil {
		humanReadable := false
		if builder.HumanReadableLoggingProvider != nil {
			humanReadable = builder.HumanReadableLoggingProvider()
		}
		shellExecutor, executorError := newShellExecutor(logger, humanReadable)
		if executorError != nil {
			return nil, executorError
		}
		gitExecutor = shellExecutor
	}
	return gitrepo.NewRepositoryManager(gitExecutor)
}

func (builder *CommandBuilder) resolveFileSystem() FileSystem {
	if builder.FileSystem != nil {
		return builder.FileSystem
	}
	return filesystem.OSFileSystem{}
}

func (builder *CommandBuilder) resolveQuestionnaire(command *cobra.Command, mode PromptMode) Questionnaire {
	if builder.Questionnaire != nil {
		return builder.Questionnaire
	}
	if mode == PromptModePlain {
		return prompt.NewLineQuestionnaire(command.InOrStdin(), command.OutOrStdout())
	}
	return prompt.NewFormQuestionnaire(prompt.WithFormInput(command.InOrStdin()), prompt.WithFormOutput(command.OutOrStdout()))
}

func newShellExecutor(logger *zap.Logger, humanReadable bool) (*execshell.ShellExecutor, error) {
	commandRunner := execshell.NewOSCommandRunner()
	if humanReadable {
		return execshell.NewShellExecutorWithObserver(logger, commandRunner, ui.NewConsoleCommandEventLogger(logger))
	}
	return execshell.NewShellExecutor(logger, commandRunner)
}

func resolveLogger(provider LoggerProvider) *zap.Logger {
	if provider == nil {
		return zap.NewNop()
	}
	logger := provider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
