package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/temirov/pending/internal/utils"
)

const (
	configCommandUseConstant              = "config"
	configCommandShortDescriptionConstant = "Print the effective configuration as YAML"
	configCommandLongDescriptionConstant  = "config prints the configuration after embedded defaults, configuration files, environment variables and global flags have been applied."
	configSourceHeaderTemplateConstant    = "# source: %s\n"
	configDefaultsSourceConstant          = "built-in defaults"
	configIndentationConstant             = 2
	configEncodeErrorTemplateConstant     = "unable to encode configuration: %w"
)

type configCommandBuilder struct {
	ConfigurationProvider func() ApplicationConfiguration
	ContextAccessor       utils.CommandContextAccessor
}

func (builder *configCommandBuilder) Build() (*cobra.Command, error) {
	return &cobra.Command{
		Use:   configCommandUseConstant,
		Short: configCommandShortDescriptionConstant,
		Long:  configCommandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}, nil
}

func (builder *configCommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := ApplicationConfiguration{}
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}
	configuration.Tools.Add = configuration.Tools.Add.Sanitize()

	source := configDefaultsSourceConstant
	if configurationFilePath, found := builder.ContextAccessor.ConfigurationFilePath(command.Context()); found && len(configurationFilePath) > 0 {
		source = configurationFilePath
	}

	output := command.OutOrStdout()
	if _, writeError := fmt.Fprintf(output, configSourceHeaderTemplateConstant, source); writeError != nil {
		return writeError
	}

	encoder := yaml.NewEncoder(output)
	encoder.SetIndent(configIndentationConstant)
	if encodeError := encoder.Encode(configuration); encodeError != nil {
		return fmt.Errorf(configEncodeErrorTemplateConstant, encodeError)
	}
	return encoder.Close()
}
