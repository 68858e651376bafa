// Package cli provides the interactive alumnet command-line client.
//
// It mounts one store and one command service per App, runs a REPL over the
// directory, profile and notification commands, and renders snapshots after
// each command. Closing the App unmounts the store.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
