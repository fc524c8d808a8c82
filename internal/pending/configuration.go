package pending

import (
	"errors"
	"fmt"
	"strings"
)

const (
	configurationPathKeyConstant           = "path"
	configurationCommitKeyConstant         = "commit"
	configurationCommitMessageKeyConstant  = "commit_message"
	configurationExistingKeyConstant       = "existing"
	configurationPromptKeyConstant         = "prompt"
	configurationVersionControlKeyConstant = "vcs"
	configurationRepositoryKeyConstant     = "repository"
	configurationRemoteKeyConstant         = "remote"
	configurationKeySeparatorConstant      = "."
	unknownPromptModeMessageConstant       = "unknown prompt mode"
	unknownPromptModeTemplateConstant      = "%w %q (expected interactive or plain)"
	unknownBackendMessageConstant          = "unknown version control backend"
	unknownBackendTemplateConstant         = "%w %q (expected cli or go-git)"
)

// PromptMode selects how questions are presented.
type PromptMode string

// Supported prompt modes.
const (
	PromptModeInteractive PromptMode = PromptMode("interactive")
	PromptModePlain       PromptMode = PromptMode("plain")
)

// VersionControlBackend selects how git is driven.
type VersionControlBackend string

// Supported backends.
const (
	VersionControlBackendCLI   VersionControlBackend = VersionControlBackend("cli")
	VersionControlBackendGoGit VersionControlBackend = VersionControlBackend("go-git")
)

// ErrUnknownPromptMode indicates a prompt mode outside interactive and plain.
var ErrUnknownPromptMode = errors.New(unknownPromptModeMessageConstant)

// ErrUnknownVersionControlBackend indicates a backend outside cli and go-git.
var ErrUnknownVersionControlBackend = errors.New(unknownBackendMessageConstant)

// ParsePromptMode converts user input into a prompt mode. Blank input selects interactive.
func ParsePromptMode(rawValue string) (PromptMode, error) {
	normalizedValue := PromptMode(strings.ToLower(strings.TrimSpace(rawValue)))
	switch normalizedValue {
	case "":
		return PromptModeInteractive, nil
	case PromptModeInteractive, PromptModePlain:
		return normalizedValue, nil
	default:
		return "", fmt.Errorf(unknownPromptModeTemplateConstant, ErrUnknownPromptMode, rawValue)
	}
}

// UnmarshalText lets configuration decoding reject unknown prompt modes.
func (mode *PromptMode) UnmarshalText(text []byte) error {
	parsedMode, parseError := ParsePromptMode(string(text))
	if parseError != nil {
		return parseError
	}
	*mode = parsedMode
	return nil
}

// ParseVersionControlBackend converts user input into a backend. Blank input selects cli.
func ParseVersionControlBackend(rawValue string) (VersionControlBackend, error) {
	normalizedValue := VersionControlBackend(strings.ToLower(strings.TrimSpace(rawValue)))
	switch normalizedValue {
	case "":
		return VersionControlBackendCLI, nil
	case VersionControlBackendCLI, VersionControlBackendGoGit:
		return normalizedValue, nil
	default:
		return "", fmt.Errorf(unknownBackendTemplateConstant, ErrUnknownVersionControlBackend, rawValue)
	}
}

// UnmarshalText lets configuration decoding reject unknown backends.
func (backend *VersionControlBackend) UnmarshalText(text []byte) error {
	parsedBackend, parseError := ParseVersionControlBackend(string(text))
	if parseError != nil {
		return parseError
	}
	*backend = parsedBackend
	return nil
}

// CommandConfiguration captures persisted settings for the add command.
type CommandConfiguration struct {
	PendingChangesPath string                `mapstructure:"path" yaml:"path"`
	Commit             bool                  `mapstructure:"commit" yaml:"commit"`
	CommitMessage      string                `mapstructure:"commit_message" yaml:"commit_message"`
	ExistingFile       ExistingFileStrategy  `mapstructure:"existing" yaml:"existing"`
	Prompt             PromptMode            `mapstructure:"prompt" yaml:"prompt"`
	VersionControl     VersionControlBackend `mapstructure:"vcs" yaml:"vcs"`
	RepositorySlug     string                `mapstructure:"repository" yaml:"repository"`
	RemoteName         string                `mapstructure:"remote" yaml:"remote"`
}

// DefaultCommandConfiguration returns baseline configuration values for the add command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		PendingChangesPath: defaultPendingChangesPathConstant,
		Commit:             false,
		CommitMessage:      defaultCommitMessageConstant,
		ExistingFile:       ExistingFileAsk,
		Prompt:             PromptModeInteractive,
		VersionControl:     VersionControlBackendCLI,
		RepositorySlug:     "",
		RemoteName:         defaultRemoteNameConstant,
	}
}

// Sanitize trims configured values and restores defaults for blank entries.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	defaults := DefaultCommandConfiguration()
	sanitized := configuration

	sanitized.PendingChangesPath = trimmedOrDefault(configuration.PendingChangesPath, defaults.PendingChangesPath)
	sanitized.CommitMessage = trimmedOrDefault(configuration.CommitMessage, defaults.CommitMessage)
	sanitized.RemoteName = trimmedOrDefault(configuration.RemoteName, defaults.RemoteName)
	sanitized.RepositorySlug = strings.TrimSpace(configuration.RepositorySlug)

	if strategy, strategyError := ParseExistingFileStrategy(string(configuration.ExistingFile)); strategyError == nil {
		sanitized.ExistingFile = strategy
	} else {
		sanitized.ExistingFile = defaults.ExistingFile
	}
	if mode, modeError := ParsePromptMode(string(configuration.Prompt)); modeError == nil {
		sanitized.Prompt = mode
	} else {
		sanitized.Prompt = defaults.Prompt
	}
	if backend, backendError := ParseVersionControlBackend(string(configuration.VersionControl)); backendError == nil {
		sanitized.VersionControl = backend
	} else {
		sanitized.VersionControl = defaults.VersionControl
	}

	return sanitized
}

// DefaultConfigurationValues produces Viper defaults for the add command under rootKey.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	prefix := rootKey + configurationKeySeparatorConstant
	return map[string]any{
		prefix + configurationPathKeyConstant:           defaults.PendingChangesPath,
		prefix + configurationCommitKeyConstant:         defaults.Commit,
		prefix + configurationCommitMessageKeyConstant:  defaults.CommitMessage,
		prefix + configurationExistingKeyConstant:       string(defaults.ExistingFile),
		prefix + configurationPromptKeyConstant:         string(defaults.Prompt),
		prefix + configurationVersionControlKeyConstant: string(defaults.VersionControl),
		prefix + configurationRepositoryKeyConstant:     defaults.RepositorySlug,
		prefix + configurationRemoteKeyConstant:         defaults.RemoteName,
	}
}

func trimmedOrDefault(value string, defaultValue string) string {
	trimmedValue := strings.TrimSpace(value)
	if len(trimmedValue) == 0 {
		return defaultValue
	}
	return trimmedValue
}
