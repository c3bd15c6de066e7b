// Package app contains the core application logic. It loads model files,
// populates a registry, and runs the build, graph, check and eval workflows
// against a local session, decoupled from any specific entrypoint like a CLI.
package app
