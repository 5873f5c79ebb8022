package vulkan

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_portability_subset"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"

	"github.com/vkngwrapper/hellotriangle/internal/render"
)

// Adapter is one physical device. It remembers the raw surface data from
// the last support query so the swap chain can be created with the exact
// transform and color space the surface reported.
type Adapter struct {
	instance *Instance
	device   core1_0.PhysicalDevice

	capabilities *khr_surface.SurfaceCapabilities
	formats      []khr_surface.SurfaceFormat
}

var _ render.Adapter = (*Adapter)(nil)

func (a *Adapter) Properties() (render.AdapterProperties, error) {
	properties, err := a.instance.driver.GetPhysicalDeviceProperties(a.device)
	if err != nil {
		return render.AdapterProperties{}, err
	}

	return render.AdapterProperties{
		Name:     properties.DriverName,
		VendorID: properties.VendorID,
		DeviceID: properties.DeviceID,
		CacheID:  properties.PipelineCacheUUID,
	}, nil
}

func (a *Adapter) QueueFamilies() []render.QueueFamilyProperties {
	queueFamilies := a.instance.driver.GetPhysicalDeviceQueueFamilyProperties(a.device)

	families := make([]render.QueueFamilyProperties, 0, len(queueFamilies))
	for _, queueFamily := range queueFamilies {
		families = append(families, render.QueueFamilyProperties{
			Graphics:   (queueFamily.QueueFlags & core1_0.QueueGraphics) != 0,
			QueueCount: queueFamily.QueueCount,
		})
	}
	return families
}

func (a *Adapter) Extensions() (map[string]struct{}, error) {
	extensions, _, err := a.instance.driver.EnumerateDeviceExtensionProperties(a.device)
	if err != nil {
		return nil, err
	}
	return keys(extensions), nil
}

func (a *Adapter) PresentSupport(surface render.Surface, family int) (bool, error) {
	s, err := surfaceOf(surface)
	if err != nil {
		return false, err
	}

	supported, _, err := a.instance.surfaceExt.GetPhysicalDeviceSurfaceSupport(s, a.device, family)
	return supported, err
}

func (a *Adapter) SwapchainSupport(surface render.Surface) (render.SwapchainSupport, error) {
	s, err := surfaceOf(surface)
	if err != nil {
		return render.SwapchainSupport{}, err
	}

	ext := a.instance.surfaceExt
	capabilities, _, err := ext.GetPhysicalDeviceSurfaceCapabilities(s, a.device)
	if err != nil {
		return render.SwapchainSupport{}, err
	}

	formats, _, err := ext.GetPhysicalDeviceSurfaceFormats(s, a.device)
	if err != nil {
		return render.SwapchainSupport{}, err
	}

	presentModes, _, err := ext.GetPhysicalDeviceSurfacePresentModes(s, a.device)
	if err != nil {
		return render.SwapchainSupport{}, err
	}

	a.capabilities = capabilities
	a.formats = formats

	return render.SwapchainSupport{
		Capabilities: toCapabilities(capabilities),
		Formats:      toSurfaceFormats(formats),
		PresentModes: toPresentModes(presentModes),
	}, nil
}

func (a *Adapter) CreateDevice(info render.DeviceInfo) (render.Device, error) {
	var queueFamilyOptions []core1_0.DeviceQueueCreateInfo
	for _, queue := range info.Queues {
		queueFamilyOptions = append(queueFamilyOptions, core1_0.DeviceQueueCreateInfo{
			QueueFamilyIndex: queue.Family,
			QueuePriorities:  queue.Priorities,
		})
	}

	extensionNames := append([]string(nil), info.Extensions...)

	// Required on portability implementations whenever they advertise it.
	available, err := a.Extensions()
	if err != nil {
		return nil, err
	}
	if _, ok := available[khr_portability_subset.ExtensionName]; ok {
		extensionNames = append(extensionNames, khr_portability_subset.ExtensionName)
	}

	device, _, err := a.instance.driver.CreateDevice(a.device, nil, core1_0.DeviceCreateInfo{
		QueueCreateInfos:      queueFamilyOptions,
		EnabledFeatures:       &core1_0.PhysicalDeviceFeatures{},
		EnabledExtensionNames: extensionNames,
	})
	if err != nil {
		return nil, err
	}

	driver, err := a.instance.driver.BuildDeviceDriver(device)
	if err != nil {
		return nil, errors.Wrap(err, "build device driver")
	}

	swapchainExt := khr_swapchain.CreateExtensionDriverFromCoreDriver(driver)
	if swapchainExt == nil {
		driver.DestroyDevice(nil)
		return nil, errors.Newf("device was created without %s", khr_swapchain.ExtensionName)
	}

	return &Device{
		adapter:      a,
		driver:       driver,
		swapchainExt: swapchainExt,
		log:          a.instance.log,
	}, nil
}
