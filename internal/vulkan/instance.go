package vulkan

import (
	"fmt"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/ext_debug_utils"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
	vkng_sdl2 "github.com/vkngwrapper/integrations/sdl2/v3"

	"github.com/vkngwrapper/hellotriangle/internal/render"
)

type Instance struct {
	driver     core1_0.CoreInstanceDriver
	surfaceExt khr_surface.ExtensionDriver
	log        *slog.Logger
}

var _ render.Instance = (*Instance)(nil)

func (i *Instance) Destroy() {
	i.driver.DestroyInstance(nil)
}

func (i *Instance) RegisterDiagnostics(sink render.DiagnosticSink) (render.Releaser, error) {
	debugDriver := ext_debug_utils.CreateExtensionDriverFromCoreDriver(i.driver)
	messenger, _, err := debugDriver.CreateDebugUtilsMessenger(nil, messengerOptions(sink))
	if err != nil {
		return nil, err
	}

	return newHandle(messenger, func(m ext_debug_utils.DebugUtilsMessenger) {
		debugDriver.DestroyDebugUtilsMessenger(m, nil)
	}), nil
}

func (i *Instance) Adapters() ([]render.Adapter, error) {
	physicalDevices, _, err := i.driver.EnumeratePhysicalDevices()
	if err != nil {
		return nil, err
	}

	adapters := make([]render.Adapter, 0, len(physicalDevices))
	for _, device := range physicalDevices {
		adapters = append(adapters, &Adapter{instance: i, device: device})
	}
	return adapters, nil
}

// SurfaceFromSDL binds a presentation surface to an SDL window.
func (i *Instance) SurfaceFromSDL(window *sdl.Window) (render.Surface, error) {
	if i.surfaceExt == nil {
		i.surfaceExt = khr_surface.CreateExtensionDriverFromCoreDriver(i.driver)
	}

	surface, err := vkng_sdl2.CreateSurface(i.driver.Instance(), i.surfaceExt, window)
	if err != nil {
		return nil, err
	}

	return &Surface{ext: i.surfaceExt, surface: surface}, nil
}

type Surface struct {
	ext     khr_surface.ExtensionDriver
	surface khr_surface.Surface
}

func (s *Surface) Destroy() {
	s.ext.DestroySurface(s.surface, nil)
}

func surfaceOf(s render.Surface) (khr_surface.Surface, error) {
	surface, ok := s.(*Surface)
	if !ok {
		return khr_surface.Surface{}, errors.Newf("surface %T was not created by this backend", s)
	}
	return surface.surface, nil
}

func messengerOptions(sink render.DiagnosticSink) ext_debug_utils.DebugUtilsMessengerCreateInfo {
	return ext_debug_utils.DebugUtilsMessengerCreateInfo{
		MessageSeverity: ext_debug_utils.SeverityError | ext_debug_utils.SeverityWarning,
		MessageType:     ext_debug_utils.TypeGeneral | ext_debug_utils.TypeValidation | ext_debug_utils.TypePerformance,
		UserCallback: func(msgType ext_debug_utils.DebugUtilsMessageTypeFlags, severity ext_debug_utils.DebugUtilsMessageSeverityFlags, data *ext_debug_utils.DebugUtilsMessengerCallbackData) bool {
			sink.Report(toSeverity(severity), fmt.Sprintf("[%s] %s", msgType, data.Message))
			return false
		},
	}
}
