package workspace_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/citemeta/citemeta/internal/workspace"
)

const (
	testWorkspaceFileNameConstant   = "run.log"
	testNestedDirectoryNameConstant = "nested"
)

func TestNewWorkspaceRejectsEmptyRoot(testInstance *testing.T) {
	_, creationError := workspace.NewWorkspace("   ")
	require.ErrorIs(testInstance, creationError, workspace.ErrRootDirectoryRequired)
}

func TestWorkspaceResolveJoinsRelativeNames(testInstance *testing.T) {
	rootDirectory := testInstance.TempDir()
	workspaceInstance, creationError := workspace.NewWorkspace(rootDirectory)
	require.NoError(testInstance, creationError)

	require.Equal(testInstance, rootDirectory, workspaceInstance.Root())
	require.Equal(testInstance, filepath.Join(rootDirectory, testWorkspaceFileNameConstant), workspaceInstance.Resolve(testWorkspaceFileNameConstant))
}

func TestWorkspaceEnsureCreatesMissingHierarchy(testInstance *testing.T) {
	rootDirectory := filepath.Join(testInstance.TempDir(), testNestedDirectoryNameConstant, testNestedDirectoryNameConstant)
	workspaceInstance, creationError := workspace.NewWorkspace(rootDirectory)
	require.NoError(testInstance, creationError)

	require.NoError(testInstance, workspaceInstance.Ensure())

	directoryInfo, statError := os.Stat(rootDirectory)
	require.NoError(testInstance, statError)
	require.True(testInstance, directoryInfo.IsDir())
}

func TestWorkspaceEnsureIgnoresExistingDirectory(testInstance *testing.T) {
	rootDirectory := testInstance.TempDir()
	workspaceInstance, creationError := workspace.NewWorkspace(rootDirectory)
	require.NoError(testInstance, creationError)

	require.NoError(testInstance, workspaceInstance.Ensure())
	require.NoError(testInstance, workspaceInstance.Ensure())
}
