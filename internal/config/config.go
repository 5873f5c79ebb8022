// Package config holds the fixed settings of the triangle demo.
package config

import (
	"log/slog"
	"time"

	"github.com/vkngwrapper/extensions/v3/khr_swapchain"
)

const (
	ApplicationName = "Hello Triangle"

	WindowWidth  = 800
	WindowHeight = 600

	StatsInterval = 5 * time.Second
)

var ValidationLayers = []string{"VK_LAYER_KHRONOS_validation"}

var DeviceExtensions = []string{khr_swapchain.ExtensionName}

// ClearColor is opaque black.
var ClearColor = [4]float32{0, 0, 0, 1}

// WindowTitle marks diagnostic builds in the title bar.
func WindowTitle() string {
	if EnableDiagnostics {
		return "[DEBUG] " + ApplicationName
	}
	return ApplicationName
}

// LogLevel is the default level for the process logger.
func LogLevel() slog.Level {
	if EnableDiagnostics {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
