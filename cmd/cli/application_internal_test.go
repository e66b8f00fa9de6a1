package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	testConfigurationFileNameConstant = "config.yaml"
	testConfigurationContentConstant  = "common:\n  log_level: debug\n  log_format: console\ntools:\n  sync_contributors:\n    metadata_file: deposition.json\n"
	testConfiguredMetadataFileName    = "deposition.json"
	testOverriddenLogLevelValue       = "error"
)

func TestApplicationInitializeConfigurationFromFile(testInstance *testing.T) {
	changeTestWorkingDirectory(testInstance, testInstance.TempDir())

	configurationDirectory := testInstance.TempDir()
	configurationFilePath := filepath.Join(configurationDirectory, testConfigurationFileNameConstant)
	require.NoError(testInstance, os.WriteFile(configurationFilePath, []byte(testConfigurationContentConstant), 0o600))

	application := NewApplication()
	application.rootCommand.SetOut(&bytes.Buffer{})
	application.rootCommand.SetErr(&bytes.Buffer{})
	application.rootCommand.SetArgs([]string{"--config", configurationFilePath})

	require.NoError(testInstance, application.Execute())

	require.Equal(testInstance, "debug", application.configuration.Common.LogLevel)
	require.Equal(testInstance, "console", application.configuration.Common.LogFormat)
	require.Equal(testInstance, testConfiguredMetadataFileName, application.configuration.Tools.SyncContributors.MetadataFile)
	require.Equal(testInstance, configurationFilePath, application.configurationMetadata.ConfigFileUsed)
}

func TestApplicationEmbeddedDefaultsApplied(testInstance *testing.T) {
	changeTestWorkingDirectory(testInstance, testInstance.TempDir())

	application := NewApplication()
	application.rootCommand.SetOut(&bytes.Buffer{})
	application.rootCommand.SetErr(&bytes.Buffer{})
	application.rootCommand.SetArgs([]string{})

	require.NoError(testInstance, application.Execute())

	require.Equal(testInstance, "info", application.configuration.Common.LogLevel)
	require.Equal(testInstance, "CITATION.cff", application.configuration.Tools.SyncContributors.AuthorsFile)
	require.Equal(testInstance, "contributors.yaml", application.configuration.Tools.SyncContributors.ContributorsFile)
	require.Equal(testInstance, ".zenodo.json", application.configuration.Tools.SyncContributors.MetadataFile)
	require.False(testInstance, application.configuration.Tools.SyncContributors.InPlace)
}

func TestApplicationLogFlagsOverrideConfiguration(testInstance *testing.T) {
	changeTestWorkingDirectory(testInstance, testInstance.TempDir())

	application := NewApplication()
	application.rootCommand.SetOut(&bytes.Buffer{})
	application.rootCommand.SetErr(&bytes.Buffer{})
	application.rootCommand.SetArgs([]string{"--log-level", testOverriddenLogLevelValue})

	require.NoError(testInstance, application.Execute())
	require.Equal(testInstance, testOverriddenLogLevelValue, application.configuration.Common.LogLevel)
}

func TestApplicationRejectsUnsupportedLogLevel(testInstance *testing.T) {
	changeTestWorkingDirectory(testInstance, testInstance.TempDir())

	application := NewApplication()
	application.rootCommand.SetOut(&bytes.Buffer{})
	application.rootCommand.SetErr(&bytes.Buffer{})
	application.rootCommand.SetArgs([]string{"--log-level", "verbose"})

	require.Error(testInstance, application.Execute())
}
