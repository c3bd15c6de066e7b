// Package cli wires the cobra command tree: it turns flags into an
// app.Config, runs one command against a freshly built App, and maps
// failures to process exit codes.
package cli
