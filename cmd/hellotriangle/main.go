package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"

	"github.com/google/uuid"

	"github.com/vkngwrapper/hellotriangle/internal/config"
	"github.com/vkngwrapper/hellotriangle/internal/diag"
	"github.com/vkngwrapper/hellotriangle/internal/render"
	"github.com/vkngwrapper/hellotriangle/internal/shader"
	"github.com/vkngwrapper/hellotriangle/internal/vulkan"
	"github.com/vkngwrapper/hellotriangle/internal/window"
	"github.com/vkngwrapper/hellotriangle/shaders"
)

func run(ctx context.Context) error {
	logger := diag.NewLogger(os.Stderr, config.LogLevel()).With("run", uuid.NewString())

	win, err := window.Open(config.WindowWidth, config.WindowHeight, config.WindowTitle())
	if err != nil {
		return err
	}
	defer win.Close()

	backend, err := vulkan.NewBackend(win.ProcAddr(), logger)
	if err != nil {
		return err
	}

	library := shader.NewLibrary(shaders.FS, logger)
	if err := library.Preload(ctx, shaders.Vertex, shaders.Fragment); err != nil {
		return err
	}

	sink := diag.NewSink(logger)
	renderer, err := render.NewRenderer(backend, win, library, render.Options{
		ApplicationName:   config.ApplicationName,
		EnableDiagnostics: config.EnableDiagnostics,
		ValidationLayers:  config.ValidationLayers,
		DeviceExtensions:  config.DeviceExtensions,
		VertexShader:      shaders.Vertex,
		FragmentShader:    shaders.Fragment,
		ClearColor:        config.ClearColor,
		Diagnostics:       sink,
		Logger:            logger,
		StatsInterval:     config.StatsInterval,
	})
	if err != nil {
		return err
	}
	defer renderer.Close()

	err = render.Run(ctx, win, renderer)

	if warnings, errs := sink.Counts(); warnings+errs > 0 {
		logger.Warn("validation reported problems", "warnings", warnings, "errors", errs)
	}
	return err
}

func main() {
	// SDL and the presentation engine expect the main thread.
	runtime.LockOSThread()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(1)
	}
}
