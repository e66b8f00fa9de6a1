// Package workspace models a task workspace rooted at a single directory.
//
// A Workspace resolves relative file names against its root and ensures the
// root hierarchy exists. It satisfies the path resolver consumed by the
// scoped file-logging helper in the environment package.
package workspace
