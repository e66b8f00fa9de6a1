package contributors

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/citemeta/citemeta/internal/environment"
)

const (
	commandUseNameConstant          = "sync-contributors"
	commandShortDescriptionConstant = "Synchronize author and contributor metadata into the deposition record"
	commandLongDescriptionConstant  = "sync-contributors reads the citation-format authors and contributors files, removes contributors already listed as authors, and merges the result into the deposition metadata record. The merged document prints to stdout unless --in-place is set."
	commandExampleConstant          = "citemeta sync-contributors --in-place -C ~/projects/workflow"

	inPlaceFlagNameConstant           = "in-place"
	inPlaceFlagShorthandConstant      = "i"
	inPlaceFlagUsageConstant          = "Write the merged metadata back to the metadata file."
	directoryFlagNameConstant         = "directory"
	directoryFlagShorthandConstant    = "C"
	directoryFlagUsageConstant        = "Run the synchronization from this directory."
	authorsFileFlagNameConstant       = "authors-file"
	authorsFileFlagUsageConstant      = "Override the configured authors file path."
	contributorsFileFlagNameConstant  = "contributors-file"
	contributorsFileFlagUsageConstant = "Override the configured contributors file path."
	metadataFileFlagNameConstant      = "metadata-file"
	metadataFileFlagUsageConstant     = "Override the configured metadata file path."

	defaultAuthorsFileNameConstant      = "CITATION.cff"
	defaultContributorsFileNameConstant = "contributors.yaml"
	defaultMetadataFileNameConstant     = ".zenodo.json"

	authorsFileConfigurationKeyConstant      = "authors_file"
	contributorsFileConfigurationKeyConstant = "contributors_file"
	metadataFileConfigurationKeyConstant     = "metadata_file"
	inPlaceConfigurationKeyConstant          = "in_place"
	configurationKeyTemplateConstant         = "%s.%s"

	synchronizedMessageConstant      = "deposition metadata synchronized"
	logFieldMetadataFileConstant     = "metadata_file"
	logFieldCreatorCountConstant     = "creator_count"
	logFieldContributorCountConstant = "contributor_count"
	logFieldExcludedCountConstant    = "excluded_contributor_count"
)

// CommandConfiguration captures the configurable inputs of the
// sync-contributors command.
type CommandConfiguration struct {
	AuthorsFile      string `mapstructure:"authors_file"`
	ContributorsFile string `mapstructure:"contributors_file"`
	MetadataFile     string `mapstructure:"metadata_file"`
	InPlace          bool   `mapstructure:"in_place"`
}

// DefaultCommandConfiguration returns the built-in configuration values.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		AuthorsFile:      defaultAuthorsFileNameConstant,
		ContributorsFile: defaultContributorsFileNameConstant,
		MetadataFile:     defaultMetadataFileNameConstant,
	}
}

// Sanitize trims whitespace and substitutes defaults for empty values.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	defaults := DefaultCommandConfiguration()

	sanitized := configuration
	sanitized.AuthorsFile = strings.TrimSpace(sanitized.AuthorsFile)
	if len(sanitized.AuthorsFile) == 0 {
		sanitized.AuthorsFile = defaults.AuthorsFile
	}
	sanitized.ContributorsFile = strings.TrimSpace(sanitized.ContributorsFile)
	if len(sanitized.ContributorsFile) == 0 {
		sanitized.ContributorsFile = defaults.ContributorsFile
	}
	sanitized.MetadataFile = strings.TrimSpace(sanitized.MetadataFile)
	if len(sanitized.MetadataFile) == 0 {
		sanitized.MetadataFile = defaults.MetadataFile
	}
	return sanitized
}

// DefaultConfigurationValues exposes default values keyed under the provided
// configuration section for registration with the configuration loader.
func DefaultConfigurationValues(configurationSectionKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		fmt.Sprintf(configurationKeyTemplateConstant, configurationSectionKey, authorsFileConfigurationKeyConstant):      defaults.AuthorsFile,
		fmt.Sprintf(configurationKeyTemplateConstant, configurationSectionKey, contributorsFileConfigurationKeyConstant): defaults.ContributorsFile,
		fmt.Sprintf(configurationKeyTemplateConstant, configurationSectionKey, metadataFileConfigurationKeyConstant):     defaults.MetadataFile,
		fmt.Sprintf(configurationKeyTemplateConstant, configurationSectionKey, inPlaceConfigurationKeyConstant):          defaults.InPlace,
	}
}

// LoggerProvider yields a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the sync-contributors command.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider func() CommandConfiguration
	FileSystem            FileSystem
}

// Build constructs the sync-contributors command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:     commandUseNameConstant,
		Short:   commandShortDescriptionConstant,
		Long:    commandLongDescriptionConstant,
		Example: commandExampleConstant,
		Args:    cobra.NoArgs,
		RunE:    builder.run,
	}

	command.Flags().BoolP(inPlaceFlagNameConstant, inPlaceFlagShorthandConstant, false, inPlaceFlagUsageConstant)
	command.Flags().StringP(directoryFlagNameConstant, directoryFlagShorthandConstant, "", directoryFlagUsageConstant)
	command.Flags().String(authorsFileFlagNameConstant, "", authorsFileFlagUsageConstant)
	command.Flags().String(contributorsFileFlagNameConstant, "", contributorsFileFlagUsageConstant)
	command.Flags().String(metadataFileFlagNameConstant, "", metadataFileFlagUsageConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()

	if command.Flags().Changed(inPlaceFlagNameConstant) {
		inPlaceFlagValue, _ := command.Flags().GetBool(inPlaceFlagNameConstant)
		configuration.InPlace = inPlaceFlagValue
	}
	if overridden := resolveStringFlag(command, authorsFileFlagNameConstant); len(overridden) > 0 {
		configuration.AuthorsFile = overridden
	}
	if overridden := resolveStringFlag(command, contributorsFileFlagNameConstant); len(overridden) > 0 {
		configuration.ContributorsFile = overridden
	}
	if overridden := resolveStringFlag(command, metadataFileFlagNameConstant); len(overridden) > 0 {
		configuration.MetadataFile = overridden
	}

	targetDirectory := resolveStringFlag(command, directoryFlagNameConstant)

	service, serviceError := NewService(ServiceDependencies{FileSystem: builder.resolveFileSystem()})
	if serviceError != nil {
		return serviceError
	}

	var result Result
	executionError := environment.WithWorkingDirectory(targetDirectory, func() error {
		synchronizeResult, synchronizeError := service.Synchronize(command.Context(), Options{
			AuthorsFilePath:      configuration.AuthorsFile,
			ContributorsFilePath: configuration.ContributorsFile,
			MetadataFilePath:     configuration.MetadataFile,
			WriteInPlace:         configuration.InPlace,
		})
		if synchronizeError != nil {
			return synchronizeError
		}
		result = synchronizeResult
		return nil
	})
	if executionError != nil {
		return executionError
	}

	if result.WrittenInPlace {
		builder.resolveLogger().Info(
			synchronizedMessageConstant,
			zap.String(logFieldMetadataFileConstant, configuration.MetadataFile),
			zap.Int(logFieldCreatorCountConstant, result.CreatorCount),
			zap.Int(logFieldContributorCountConstant, result.ContributorCount),
			zap.Int(logFieldExcludedCountConstant, result.ExcludedContributorCount),
		)
		return nil
	}

	_, writeError := command.OutOrStdout().Write(result.Document)
	return writeError
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveFileSystem() FileSystem {
	if builder.FileSystem == nil {
		return OSFileSystem{}
	}
	return builder.FileSystem
}

func resolveStringFlag(command *cobra.Command, flagName string) string {
	flagValue, flagError := command.Flags().GetString(flagName)
	if flagError != nil {
		return ""
	}
	return strings.TrimSpace(flagValue)
}
