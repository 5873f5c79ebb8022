// Package window owns the SDL window and turns its events into the resize
// and close notifications the renderer consumes.
package window

import (
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/vkngwrapper/hellotriangle/internal/render"
)

// waitTimeout bounds WaitEvents so a cancelled context is still noticed
// while the window is minimized.
const waitTimeout = 100

// surfaceSource is implemented by backends that can build a surface from an
// SDL window.
type surfaceSource interface {
	SurfaceFromSDL(window *sdl.Window) (render.Surface, error)
}

type Window struct {
	window      *sdl.Window
	onResize    func(width, height int)
	shouldClose bool
}

var _ render.Window = (*Window)(nil)

// Open initializes SDL video and creates a resizable Vulkan window.
func Open(width, height int, title string) (*Window, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "initialize sdl"), render.ErrInit)
	}

	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(width), int32(height), sdl.WINDOW_SHOWN|sdl.WINDOW_VULKAN|sdl.WINDOW_RESIZABLE)
	if err != nil {
		sdl.Quit()
		return nil, errors.Mark(errors.Wrap(err, "create window"), render.ErrInit)
	}

	return &Window{window: window}, nil
}

// ProcAddr is the loader entry point SDL resolved for the window system.
func (w *Window) ProcAddr() unsafe.Pointer {
	return sdl.VulkanGetVkGetInstanceProcAddr()
}

func (w *Window) RequiredExtensions() []string {
	return w.window.VulkanGetInstanceExtensions()
}

func (w *Window) CreateSurface(instance render.Instance) (render.Surface, error) {
	source, ok := instance.(surfaceSource)
	if !ok {
		return nil, errors.Newf("instance %T cannot create sdl surfaces", instance)
	}
	return source.SurfaceFromSDL(w.window)
}

// DrawableSize returns the size in pixels, which differs from the window
// size on high-DPI displays. A minimized window reports zero.
func (w *Window) DrawableSize() render.Extent {
	if w.window.GetFlags()&sdl.WINDOW_MINIMIZED != 0 {
		return render.Extent{}
	}
	width, height := w.window.VulkanGetDrawableSize()
	return render.Extent{Width: int(width), Height: int(height)}
}

func (w *Window) OnResize(fn func(width, height int)) {
	w.onResize = fn
}

func (w *Window) PollEvents() {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		w.handle(event)
	}
}

// WaitEvents blocks until an event arrives or the wait times out, then
// drains the queue.
func (w *Window) WaitEvents() {
	if event := sdl.WaitEventTimeout(waitTimeout); event != nil {
		w.handle(event)
	}
	w.PollEvents()
}

func (w *Window) ShouldClose() bool {
	return w.shouldClose
}

func (w *Window) handle(event sdl.Event) {
	switch translate(event) {
	case actionClose:
		w.shouldClose = true
	case actionMinimize:
		w.notify(render.Extent{})
	case actionResize:
		w.notify(w.DrawableSize())
	}
}

func (w *Window) notify(size render.Extent) {
	if w.onResize != nil {
		w.onResize(size.Width, size.Height)
	}
}

// Close destroys the window and shuts SDL down.
func (w *Window) Close() {
	if w.window != nil {
		w.window.Destroy()
		w.window = nil
	}
	sdl.Quit()
}
