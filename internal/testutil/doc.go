// Package testutil holds fixtures and harnesses shared by package tests:
// captured logs, temporary model files, ready-made registries and plan
// comparison options.
package testutil
