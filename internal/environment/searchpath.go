package environment

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// SearchPathVariableName is the colon-delimited environment variable
	// listing directories searched for workspace resources.
	SearchPathVariableName = "CITEMETA_PATH"

	searchPathCanonicalizeErrorTemplateConstant     = "unable to canonicalize search path %q: %w"
	workingDirectoryResolutionErrorTemplateConstant = "unable to resolve working directory: %w"
	searchPathMutationErrorTemplateConstant         = "unable to update %s: %w"
	searchPathRestoreErrorTemplateConstant          = "unable to restore %s: %w"
)

var searchPathListSeparator = string(os.PathListSeparator)

// WithSearchPath prepends the canonical form of candidatePath to the
// search-path variable while scopedAction runs, restoring the prior value
// afterwards.
//
// When an absolute entry of the current value already canonicalizes to the
// target path, the action runs with no mutation. When the variable is unset
// or empty, it holds exactly the canonical path for the duration and is
// deleted on exit.
func WithSearchPath(candidatePath string, scopedAction func() error) error {
	canonicalPath, canonicalizationError := canonicalizePath(candidatePath)
	if canonicalizationError != nil {
		return fmt.Errorf(searchPathCanonicalizeErrorTemplateConstant, candidatePath, canonicalizationError)
	}

	currentValue := os.Getenv(SearchPathVariableName)
	if len(currentValue) == 0 {
		if setError := os.Setenv(SearchPathVariableName, canonicalPath); setError != nil {
			return fmt.Errorf(searchPathMutationErrorTemplateConstant, SearchPathVariableName, setError)
		}
		return runThenRestore(scopedAction, func() error {
			return os.Unsetenv(SearchPathVariableName)
		})
	}

	if searchPathContainsCanonical(currentValue, canonicalPath) {
		return scopedAction()
	}

	prependedValue := canonicalPath + searchPathListSeparator + currentValue
	if setError := os.Setenv(SearchPathVariableName, prependedValue); setError != nil {
		return fmt.Errorf(searchPathMutationErrorTemplateConstant, SearchPathVariableName, setError)
	}
	return runThenRestore(scopedAction, func() error {
		return os.Setenv(SearchPathVariableName, currentValue)
	})
}

// WithCurrentDirectoryInSearchPath applies WithSearchPath to the process
// working directory.
func WithCurrentDirectoryInSearchPath(scopedAction func() error) error {
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return fmt.Errorf(workingDirectoryResolutionErrorTemplateConstant, workingDirectoryError)
	}
	return WithSearchPath(workingDirectory, scopedAction)
}

func searchPathContainsCanonical(searchPathValue string, canonicalPath string) bool {
	for _, searchPathEntry := range strings.Split(searchPathValue, searchPathListSeparator) {
		if !filepath.IsAbs(searchPathEntry) {
			continue
		}
		canonicalEntry, canonicalizationError := canonicalizePath(searchPathEntry)
		if canonicalizationError != nil {
			continue
		}
		if canonicalEntry == canonicalPath {
			return true
		}
	}
	return false
}

// canonicalizePath resolves an absolute, symlink-free form of the path.
// Symlink resolution falls back to the cleaned absolute path when the path
// does not exist.
func canonicalizePath(candidatePath string) (string, error) {
	absolutePath, absoluteError := filepath.Abs(candidatePath)
	if absoluteError != nil {
		return "", absoluteError
	}

	resolvedPath, resolutionError := filepath.EvalSymlinks(absolutePath)
	if resolutionError != nil {
		return filepath.Clean(absolutePath), nil
	}
	return resolvedPath, nil
}

// runThenRestore executes the scoped action and always runs the restore
// step afterwards, including when the action panics. The action error wins
// when both fail.
func runThenRestore(scopedAction func() error, restore func() error) (scopedError error) {
	defer func() {
		if restoreError := restore(); restoreError != nil && scopedError == nil {
			scopedError = fmt.Errorf(searchPathRestoreErrorTemplateConstant, SearchPathVariableName, restoreError)
		}
	}()
	return scopedAction()
}
