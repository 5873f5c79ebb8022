package window

import "github.com/veandco/go-sdl2/sdl"

type action int

const (
	actionNone action = iota
	actionClose
	actionMinimize
	actionResize
)

// translate maps an SDL event onto what the render loop needs to know.
// Restoring a minimized window is treated as a resize so the drawable size
// is re-read.
func translate(event sdl.Event) action {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return actionClose
	case *sdl.WindowEvent:
		switch e.Event {
		case sdl.WINDOWEVENT_CLOSE:
			return actionClose
		case sdl.WINDOWEVENT_MINIMIZED:
			return actionMinimize
		case sdl.WINDOWEVENT_RESTORED, sdl.WINDOWEVENT_RESIZED, sdl.WINDOWEVENT_SIZE_CHANGED:
			return actionResize
		}
	}
	return actionNone
}
