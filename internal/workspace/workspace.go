package workspace

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const (
	rootDirectoryRequiredMessageConstant = "workspace root directory must be provided"
	workspaceDirectoryPermissionsMode    = os.FileMode(0o755)
)

// ErrRootDirectoryRequired indicates the workspace root was empty.
var ErrRootDirectoryRequired = errors.New(rootDirectoryRequiredMessageConstant)

// Workspace addresses files inside a root directory.
type Workspace struct {
	rootDirectory string
}

// NewWorkspace constructs a Workspace for the provided root directory.
func NewWorkspace(rootDirectory string) (Workspace, error) {
	trimmedRootDirectory := strings.TrimSpace(rootDirectory)
	if len(trimmedRootDirectory) == 0 {
		return Workspace{}, ErrRootDirectoryRequired
	}
	return Workspace{rootDirectory: trimmedRootDirectory}, nil
}

// Root returns the workspace root directory.
func (workspaceInstance Workspace) Root() string {
	return workspaceInstance.rootDirectory
}

// Resolve joins a workspace-relative file name onto the root directory.
func (workspaceInstance Workspace) Resolve(fileName string) string {
	return filepath.Join(workspaceInstance.rootDirectory, fileName)
}

// Ensure creates the workspace root hierarchy, succeeding when it already exists.
func (workspaceInstance Workspace) Ensure() error {
	return os.MkdirAll(workspaceInstance.rootDirectory, workspaceDirectoryPermissionsMode)
}
