//go:build !release

package config

// EnableDiagnostics turns on validation layers and the debug messenger.
// Build with -tags release to disable it.
const EnableDiagnostics = true
