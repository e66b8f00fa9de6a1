// Package environment provides reversible scoped mutations of process-global
// state: the CITEMETA_PATH search-path variable, the working directory, and
// scoped file logging.
//
// Every scope snapshots the prior state on entry and restores it on all exit
// paths; an error from the scoped action propagates after restoration runs.
// The mutations target true process-wide state, so the scopes are safe to
// nest on a single call stack but must not be interleaved across concurrent
// goroutines.
package environment
