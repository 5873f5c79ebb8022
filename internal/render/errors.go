package render

import "github.com/cockroachdb/errors"

// Failure classes. Backend errors are wrapped with context and marked with
// one of these at their point of origin; callers test with errors.Is.
var (
	ErrInit             = errors.New("backend initialization failed")
	ErrSurface          = errors.New("surface binding failed")
	ErrNoSuitableDevice = errors.New("no suitable device")
	ErrDeviceCreation   = errors.New("device creation failed")
	ErrSwapchain        = errors.New("swap chain creation failed")
	ErrShaderCompile    = errors.New("shader compilation failed")
	ErrPipelineCreation = errors.New("pipeline creation failed")
	ErrIO               = errors.New("i/o failure")

	// ErrSwapchainStale is recoverable: the swap chain no longer matches the
	// surface and has to be rebuilt.
	ErrSwapchainStale = errors.New("swap chain out of date")
)

func mark(err error, class error, msg string) error {
	if err == nil {
		return nil
	}
	return errors.Mark(errors.Wrap(err, msg), class)
}

func markf(err error, class error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return errors.Mark(errors.Wrapf(err, format, args...), class)
}
