package vulkan

import (
	"log/slog"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3"
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_portability_enumeration"

	"github.com/vkngwrapper/hellotriangle/internal/diag"
	"github.com/vkngwrapper/hellotriangle/internal/render"
)

const engineName = "No Engine"

type Backend struct {
	global core1_0.GlobalDriver
	log    *slog.Logger
}

var _ render.Backend = (*Backend)(nil)

// NewBackend loads the global driver through the loader entry point the
// window system resolved.
func NewBackend(procAddr unsafe.Pointer, logger *slog.Logger) (*Backend, error) {
	if logger == nil {
		logger = diag.NopLogger()
	}

	global, err := core.CreateDriverFromProcAddr(procAddr)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "load vulkan driver"), render.ErrInit)
	}

	return &Backend{global: global, log: logger}, nil
}

func (b *Backend) InstanceExtensions() (map[string]struct{}, error) {
	extensions, _, err := b.global.AvailableExtensions()
	if err != nil {
		return nil, err
	}
	return keys(extensions), nil
}

func (b *Backend) InstanceLayers() (map[string]struct{}, error) {
	layers, _, err := b.global.AvailableLayers()
	if err != nil {
		return nil, err
	}
	return keys(layers), nil
}

func (b *Backend) CreateInstance(info render.InstanceInfo) (render.Instance, error) {
	instanceOptions := core1_0.InstanceCreateInfo{
		ApplicationName:       info.ApplicationName,
		ApplicationVersion:    common.CreateVersion(1, 0, 0),
		EngineName:            engineName,
		EngineVersion:         common.CreateVersion(1, 0, 0),
		APIVersion:            common.Vulkan1_2,
		EnabledExtensionNames: append([]string(nil), info.Extensions...),
		EnabledLayerNames:     append([]string(nil), info.Layers...),
	}

	extensions, _, err := b.global.AvailableExtensions()
	if err != nil {
		return nil, err
	}

	// Portability drivers such as MoltenVK are only enumerated on request.
	if _, ok := extensions[khr_portability_enumeration.ExtensionName]; ok {
		instanceOptions.EnabledExtensionNames = append(instanceOptions.EnabledExtensionNames, khr_portability_enumeration.ExtensionName)
		instanceOptions.Flags |= khr_portability_enumeration.InstanceCreateEnumeratePortability
	}

	if info.Diagnostics != nil {
		// Chained so instance creation and destruction are covered too.
		instanceOptions.Next = messengerOptions(info.Diagnostics)
	}

	instance, _, err := b.global.CreateInstance(nil, instanceOptions)
	if err != nil {
		return nil, err
	}

	driver, err := b.global.BuildInstanceDriver(instance)
	if err != nil {
		return nil, errors.Wrap(err, "build instance driver")
	}

	b.log.Debug("instance created",
		"extensions", instanceOptions.EnabledExtensionNames,
		"layers", instanceOptions.EnabledLayerNames)

	return &Instance{driver: driver, log: b.log}, nil
}

func keys[V any](m map[string]V) map[string]struct{} {
	set := make(map[string]struct{}, len(m))
	for k := range m {
		set[k] = struct{}{}
	}
	return set
}
