package environment

import (
	"fmt"
	"os"
	"strings"
)

const (
	workingDirectorySnapshotErrorTemplateConstant = "unable to capture working directory: %w"
	workingDirectoryChangeErrorTemplateConstant   = "unable to switch to directory %q: %w"
	workingDirectoryRestoreErrorTemplateConstant  = "unable to restore working directory %q: %w"
)

// WithWorkingDirectory switches the process working directory to
// targetDirectory while scopedAction runs and restores the prior working
// directory on every exit path. An empty target makes the scope a no-op.
func WithWorkingDirectory(targetDirectory string, scopedAction func() error) (scopedError error) {
	trimmedTargetDirectory := strings.TrimSpace(targetDirectory)
	if len(trimmedTargetDirectory) == 0 {
		return scopedAction()
	}

	previousWorkingDirectory, snapshotError := os.Getwd()
	if snapshotError != nil {
		return fmt.Errorf(workingDirectorySnapshotErrorTemplateConstant, snapshotError)
	}

	if changeError := os.Chdir(trimmedTargetDirectory); changeError != nil {
		return fmt.Errorf(workingDirectoryChangeErrorTemplateConstant, trimmedTargetDirectory, changeError)
	}

	defer func() {
		if restoreError := os.Chdir(previousWorkingDirectory); restoreError != nil && scopedError == nil {
			scopedError = fmt.Errorf(workingDirectoryRestoreErrorTemplateConstant, previousWorkingDirectory, restoreError)
		}
	}()

	return scopedAction()
}
