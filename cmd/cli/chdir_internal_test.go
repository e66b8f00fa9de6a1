package cli

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// changeTestWorkingDirectory switches the working directory for the duration
// of the test, mirroring testing.T.Chdir which requires Go 1.24.
func changeTestWorkingDirectory(testInstance *testing.T, targetDirectory string) {
	testInstance.Helper()
	previousWorkingDirectory, workingDirectoryError := os.Getwd()
	require.NoError(testInstance, workingDirectoryError)
	require.NoError(testInstance, os.Chdir(targetDirectory))
	testInstance.Cleanup(func() {
		_ = os.Chdir(previousWorkingDirectory)
	})
}
