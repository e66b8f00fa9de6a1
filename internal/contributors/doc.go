// Package contributors synchronizes citation-format author and contributor
// records into a deposition metadata document.
//
// It offers CommandBuilder for the Cobra command, Service for loading,
// merging, and serializing the metadata sources, and a FileSystem port to
// enable testing and reuse.
package contributors
