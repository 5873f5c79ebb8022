//go:build release

package config

const EnableDiagnostics = false
