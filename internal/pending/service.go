package pending

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/pending/internal/gitrepo"
	"github.com/temirov/pending/internal/prompt"
	pathutils "github.com/temirov/pending/internal/utils/path"
)

const (
	defaultRepositoryPathConstant            = "."
	defaultPendingChangesPathConstant        = ".pending"
	defaultCommitMessageConstant             = "changelog"
	defaultRemoteNameConstant                = "origin"
	pendingDirectoryPermissionsConstant      = fs.FileMode(0o755)
	pendingFilePermissionsConstant           = fs.FileMode(0o644)
	repositorySlugSeparatorConstant          = "/"
	branchUnavailableMessageConstant         = "Couldn't get the branch name. Is this a .git repository (required)?"
	repositoryManagerMissingMessageConstant  = "repository manager not configured"
	fileSystemMissingMessageConstant         = "file system not configured"
	pendingPathRequiredMessageConstant       = "pending changes path must be provided"
	pendingPathNotDirectoryMessageConstant   = "pending changes path is not a directory"
	repositorySlugUnavailableMessageConstant = "repository slug unavailable"
	commitFailedMessageConstant              = "pending file written but commit failed"
	repositorySlugErrorTemplateConstant      = "%w: %w"
	invalidRepositorySlugTemplateConstant    = "%w: %q is not in owner/name form"
	directoryResolveErrorTemplateConstant    = "unable to resolve pending directory %s: %w"
	directoryCreateErrorTemplateConstant     = "unable to create pending directory %s: %w"
	directoryInspectErrorTemplateConstant    = "unable to inspect pending directory %s: %w"
	notDirectoryErrorTemplateConstant        = "%w: %s"
	fileInspectErrorTemplateConstant         = "unable to inspect pending file %s: %w"
	strategyQuestionErrorTemplateConstant    = "unable to decide how to handle %s: %w"
	removeFileErrorTemplateConstant          = "unable to remove pending file %s: %w"
	writeFileErrorTemplateConstant           = "unable to write pending file %s: %w"
	appendFileErrorTemplateConstant          = "unable to append to pending file %s: %w"
	commitErrorTemplateConstant              = "%w: %w"
	pendingFileWrittenMessageConstant        = "pending changes recorded"
	pendingFileCommittedMessageConstant      = "pending changes committed"
	existingFileDetectedMessageConstant      = "existing pending file detected"
	configuredStrategyMessageConstant        = "applying configured existing file strategy"
	logFieldBranchConstant                   = "branch"
	logFieldFilePathConstant                 = "file_path"
	logFieldRecordCountConstant              = "record_count"
	logFieldAppendedConstant                 = "appended"
	logFieldDroppedConstant                  = "dropped"
	logFieldStrategyConstant                 = "strategy"
	logFieldRepositoryPathConstant           = "repository_path"
)

// ErrRepositoryManagerNotConfigured indicates the service was constructed without a repository manager.
var ErrRepositoryManagerNotConfigured = errors.New(repositoryManagerMissingMessageConstant)

// ErrFileSystemNotConfigured indicates the service was constructed without a file system.
var ErrFileSystemNotConfigured = errors.New(fileSystemMissingMessageConstant)

// ErrPendingChangesPathRequired indicates Merge was called without a pending directory.
var ErrPendingChangesPathRequired = errors.New(pendingPathRequiredMessageConstant)

// ErrPendingPathNotDirectory indicates the pending directory path names a regular file.
var ErrPendingPathNotDirectory = errors.New(pendingPathNotDirectoryMessageConstant)

// ErrRepositorySlugUnavailable indicates neither configuration nor the remote produced an owner/name pair.
var ErrRepositorySlugUnavailable = errors.New(repositorySlugUnavailableMessageConstant)

// ErrCommitFailed indicates staging or committing failed after the pending file was written.
var ErrCommitFailed = errors.New(commitFailedMessageConstant)

// ServiceDependencies enumerates the collaborators required by Service.
type ServiceDependencies struct {
	Logger            *zap.Logger
	RepositoryManager RepositoryManager
	FileSystem        FileSystem
	Questionnaire     Questionnaire
	PathExpander      PathExpander
}

// Service records collected changes into per-branch pending files.
type Service struct {
	logger            *zap.Logger
	repositoryManager RepositoryManager
	fileSystem        FileSystem
	questionnaire     Questionnaire
	collector         *Collector
	pathExpander      PathExpander
}

// NewService validates dependencies and constructs a Service.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.RepositoryManager == nil {
		return nil, ErrRepositoryManagerNotConfigured
	}
	if dependencies.FileSystem == nil {
		return nil, ErrFileSystemNotConfigured
	}
	collector, collectorError := NewCollector(dependencies.Questionnaire)
	if collectorError != nil {
		return nil, collectorError
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	pathExpander := dependencies.PathExpander
	if pathExpander == nil {
		pathExpander = pathutils.NewHomeExpander()
	}

	return &Service{
		logger:            logger,
		repositoryManager: dependencies.RepositoryManager,
		fileSystem:        dependencies.FileSystem,
		questionnaire:     dependencies.Questionnaire,
		collector:         collector,
		pathExpander:      pathExpander,
	}, nil
}

// Merge collects change records and writes them to the pending file of the current branch.
// When the branch cannot be determined nothing is touched and the result reports BranchUnavailable.
func (service *Service) Merge(executionContext context.Context, options Options) (Result, error) {
	normalizedOptions, optionsError := normalizeOptions(options)
	if optionsError != nil {
		return Result{}, optionsError
	}

	branchName, branchError := service.repositoryManager.GetCurrentBranch(executionContext, normalizedOptions.RepositoryPath)
	if branchError != nil {
		service.logger.Error(branchUnavailableMessageConstant,
			zap.String(logFieldRepositoryPathConstant, normalizedOptions.RepositoryPath),
			zap.Error(branchError),
		)
		return Result{BranchUnavailable: true}, nil
	}

	repositorySlug, slugError := service.resolveRepositorySlug(executionContext, normalizedOptions)
	if slugError != nil {
		return Result{}, slugError
	}

	directoryPath, directoryError := service.ensureDirectory(normalizedOptions.PendingChangesPath)
	if directoryError != nil {
		return Result{}, directoryError
	}

	result := Result{
		BranchName: branchName,
		FilePath:   filepath.Join(directoryPath, SanitizeBranchName(branchName)),
	}

	fileExists, existsError := service.fileExists(result.FilePath)
	if existsError != nil {
		return Result{}, existsError
	}

	strategy := ExistingFileAppend
	if fileExists {
		service.logger.Debug(existingFileDetectedMessageConstant, zap.String(logFieldFilePathConstant, result.FilePath))
		resolvedStrategy, strategyError := service.resolveStrategy(executionContext, normalizedOptions.ExistingFile, result.FilePath)
		if strategyError != nil {
			return Result{}, strategyError
		}
		strategy = resolvedStrategy
	}

	session, collectError := service.collector.Collect(executionContext)
	if collectError != nil {
		return Result{}, collectError
	}
	result.RecordCount = len(session.Records)

	renderedChanges := RenderSession(session, repositorySlug)
	if persistError := service.persist(result.FilePath, renderedChanges, fileExists, strategy); persistError != nil {
		return Result{}, persistError
	}
	result.Appended = fileExists && strategy == ExistingFileAppend
	result.Dropped = fileExists && strategy == ExistingFileDrop

	service.logger.Info(pendingFileWrittenMessageConstant,
		zap.String(logFieldBranchConstant, branchName),
		zap.String(logFieldFilePathConstant, result.FilePath),
		zap.Int(logFieldRecordCountConstant, result.RecordCount),
		zap.Bool(logFieldAppendedConstant, result.Appended),
		zap.Bool(logFieldDroppedConstant, result.Dropped),
	)

	if !normalizedOptions.Commit {
		return result, nil
	}

	if commitError := service.commit(executionContext, normalizedOptions, result.FilePath); commitError != nil {
		return result, commitError
	}
	result.Committed = true
	service.logger.Info(pendingFileCommittedMessageConstant, zap.String(logFieldFilePathConstant, result.FilePath))
	return result, nil
}

func normalizeOptions(options Options) (Options, error) {
	normalized := options
	normalized.RepositoryPath = strings.TrimSpace(options.RepositoryPath)
	if len(normalized.RepositoryPath) == 0 {
		normalized.RepositoryPath = defaultRepositoryPathConstant
	}
	normalized.PendingChangesPath = strings.TrimSpace(options.PendingChangesPath)
	if len(normalized.PendingChangesPath) == 0 {
		return Options{}, ErrPendingChangesPathRequired
	}
	normalized.CommitMessage = strings.TrimSpace(options.CommitMessage)
	if len(normalized.CommitMessage) == 0 {
		normalized.CommitMessage = defaultCommitMessageConstant
	}
	normalized.RemoteName = strings.TrimSpace(options.RemoteName)
	if len(normalized.RemoteName) == 0 {
		normalized.RemoteName = defaultRemoteNameConstant
	}
	strategy, strategyError := ParseExistingFileStrategy(string(options.ExistingFile))
	if strategyError != nil {
		return Options{}, strategyError
	}
	normalized.ExistingFile = strategy
	normalized.RepositorySlug = strings.TrimSpace(options.RepositorySlug)
	return normalized, nil
}

func (service *Service) resolveRepositorySlug(executionContext context.Context, options Options) (string, error) {
	if len(options.RepositorySlug) > 0 {
		return validateRepositorySlug(options.RepositorySlug)
	}

	remoteURL, remoteError := service.repositoryManager.GetRemoteURL(executionContext, options.RepositoryPath, options.RemoteName)
	if remoteError != nil {
		return "", fmt.Errorf(repositorySlugErrorTemplateConstant, ErrRepositorySlugUnavailable, remoteError)
	}
	parsedRemote, parseError := gitrepo.ParseRemoteURL(remoteURL)
	if parseError != nil {
		return "", fmt.Errorf(repositorySlugErrorTemplateConstant, ErrRepositorySlugUnavailable, parseError)
	}
	return parsedRemote.Slug(), nil
}

func validateRepositorySlug(repositorySlug string) (string, error) {
	segments := strings.Split(strings.Trim(repositorySlug, repositorySlugSeparatorConstant), repositorySlugSeparatorConstant)
	if len(segments) != 2 || len(strings.TrimSpace(segments[0])) == 0 || len(strings.TrimSpace(segments[1])) == 0 {
		return "", fmt.Errorf(invalidRepositorySlugTemplateConstant, ErrRepositorySlugUnavailable, repositorySlug)
	}
	return segments[0] + repositorySlugSeparatorConstant + segments[1], nil
}

func (service *Service) ensureDirectory(pendingChangesPath string) (string, error) {
	directoryPath, absoluteError := service.fileSystem.Abs(service.pathExpander.Expand(pendingChangesPath))
	if absoluteError != nil {
		return "", fmt.Errorf(directoryResolveErrorTemplateConstant, pendingChangesPath, absoluteError)
	}

	directoryInfo, statError := service.fileSystem.Stat(directoryPath)
	switch {
	case statError == nil:
		if !directoryInfo.IsDir() {
			return "", fmt.Errorf(notDirectoryErrorTemplateConstant, ErrPendingPathNotDirectory, directoryPath)
		}
		return directoryPath, nil
	case errors.Is(statError, fs.ErrNotExist):
		if mkdirError := service.fileSystem.Mkdir(directoryPath, pendingDirectoryPermissionsConstant); mkdirError != nil {
			return "", fmt.Errorf(directoryCreateErrorTemplateConstant, directoryPath, mkdirError)
		}
		return directoryPath, nil
	default:
		return "", fmt.Errorf(directoryInspectErrorTemplateConstant, directoryPath, statError)
	}
}

func (service *Service) fileExists(filePath string) (bool, error) {
	_, statError := service.fileSystem.Stat(filePath)
	switch {
	case statError == nil:
		return true, nil
	case errors.Is(statError, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf(fileInspectErrorTemplateConstant, filePath, statError)
	}
}

func (service *Service) resolveStrategy(executionContext context.Context, configured ExistingFileStrategy, filePath string) (ExistingFileStrategy, error) {
	if configured != ExistingFileAsk {
		service.logger.Debug(configuredStrategyMessageConstant, zap.String(logFieldStrategyConstant, string(configured)))
		return configured, nil
	}

	answers, askError := service.questionnaire.Ask(executionContext, []prompt.Question{ExistingFileQuestion()})
	if askError != nil {
		return "", fmt.Errorf(strategyQuestionErrorTemplateConstant, filePath, askError)
	}
	chosenStrategy, parseError := ParseExistingFileStrategy(answers.Text(QuestionNameExistingFile))
	if parseError != nil || chosenStrategy == ExistingFileAsk {
		return "", fmt.Errorf(strategyQuestionErrorTemplateConstant, filePath, ErrUnknownExistingFileStrategy)
	}
	return chosenStrategy, nil
}

// persist removes a dropped file only after collection succeeded, so an aborted prompt keeps the old entries.
func (service *Service) persist(filePath string, renderedChanges string, fileExists bool, strategy ExistingFileStrategy) error {
	if fileExists && strategy == ExistingFileAppend {
		if appendError := service.fileSystem.AppendFile(filePath, []byte(renderedChanges), pendingFilePermissionsConstant); appendError != nil {
			return fmt.Errorf(appendFileErrorTemplateConstant, filePath, appendError)
		}
		return nil
	}

	if fileExists && strategy == ExistingFileDrop {
		if removeError := service.fileSystem.Remove(filePath); removeError != nil {
			return fmt.Errorf(removeFileErrorTemplateConstant, filePath, removeError)
		}
	}

	if writeError := service.fileSystem.WriteFile(filePath, []byte(renderedChanges), pendingFilePermissionsConstant); writeError != nil {
		return fmt.Errorf(writeFileErrorTemplateConstant, filePath, writeError)
	}
	return nil
}

func (service *Service) commit(executionContext context.Context, options Options, filePath string) error {
	if stageError := service.repositoryManager.StageFile(executionContext, options.RepositoryPath, filePath); stageError != nil {
		return fmt.Errorf(commitErrorTemplateConstant, ErrCommitFailed, stageError)
	}
	if commitError := service.repositoryManager.CommitFile(executionContext, options.RepositoryPath, filePath, options.CommitMessage); commitError != nil {
		return fmt.Errorf(commitErrorTemplateConstant, ErrCommitFailed, commitError)
	}
	return nil
}
