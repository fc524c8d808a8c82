package pending

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temirov/pending/internal/gitrepo"
)

const (
	showCommandUseConstant              = "show"
	showCommandShortDescriptionConstant = "Print the pending changelog file of the current branch"
	showCommandLongDescriptionConstant  = "show prints the pending file for the current git branch exactly as stored, without parsing it."
	showNoPendingFileTemplateConstant   = "No pending changes for %s (%s)\n"
)

// ShowCommandBuilder assembles the show command.
type ShowCommandBuilder struct {
	LoggerProvider               LoggerProvider
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
	GitExecutor                  gitrepo.GitExecutor
	RepositoryManager            RepositoryManager
	FileSystem                   FileSystem
	WorkingDirectory             string
}

// Build constructs the show command.
func (builder *ShowCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   showCommandUseConstant,
		Short: showCommandShortDescriptionConstant,
		Long:  showCommandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}
	command.Flags().String(pathFlagNameConstant, "", pathFlagUsageConstant)
	return command, nil
}

func (builder *ShowCommandBuilder) run(command *cobra.Command, arguments []string) error {
	addBuilder := CommandBuilder{
		LoggerProvider:               builder.LoggerProvider,
		HumanReadableLoggingProvider: builder.HumanReadableLoggingProvider,
		ConfigurationProvider:        builder.ConfigurationProvider,
		GitExecutor:                  builder.GitExecutor,
		RepositoryManager:            builder.RepositoryManager,
		FileSystem:                   builder.FileSystem,
	}

	configuration, configurationError := addBuilder.parseConfiguration(command)
	if configurationError != nil {
		return configurationError
	}

	repositoryManager, managerError := addBuilder.resolveRepositoryManager(resolveLogger(builder.LoggerProvider), configuration.VersionControl)
	if managerError != nil {
		return managerError
	}

	inspector, inspectorError := NewInspector(repositoryManager, addBuilder.resolveFileSystem())
	if inspectorError != nil {
		return inspectorError
	}

	snapshot, readError := inspector.Read(command.Context(), Options{
		RepositoryPath:     builder.WorkingDirectory,
		PendingChangesPath: configuration.PendingChangesPath,
	})
	if readError != nil {
		return readError
	}

	if !snapshot.Exists {
		_, writeError := fmt.Fprintf(command.OutOrStdout(), showNoPendingFileTemplateConstant, snapshot.BranchName, snapshot.FilePath)
		return writeError
	}
	_, writeError := command.OutOrStdout().Write(snapshot.Contents)
	return writeError
}
