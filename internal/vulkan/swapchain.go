package vulkan

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"

	"github.com/vkngwrapper/hellotriangle/internal/render"
)

func (d *Device) CreateSwapchain(info render.SwapchainInfo) (render.Swapchain, error) {
	surface, err := surfaceOf(info.Surface)
	if err != nil {
		return nil, err
	}
	if d.adapter.capabilities == nil {
		return nil, errors.New("swap chain support was never queried")
	}

	config := info.Config
	format := surfaceFormat(d.adapter.formats, config.Format)

	createInfo := khr_swapchain.SwapchainCreateInfo{
		Surface: surface,

		MinImageCount:    config.ImageCount,
		ImageFormat:      format.Format,
		ImageColorSpace:  format.ColorSpace,
		ImageExtent:      fromExtent(config.Extent),
		ImageArrayLayers: 1,
		ImageUsage:       core1_0.ImageUsageColorAttachment,

		ImageSharingMode:   sharingMode(config.Sharing),
		QueueFamilyIndices: config.QueueFamilies,

		PreTransform:   d.adapter.capabilities.CurrentTransform,
		CompositeAlpha: khr_surface.CompositeAlphaOpaque,
		PresentMode:    khr_surface.PresentMode(config.PresentMode),
		Clipped:        true,
	}
	if old, ok := info.Old.(*Swapchain); ok && old != nil {
		createInfo.OldSwapchain = old.swapchain
	}

	swapchain, _, err := d.swapchainExt.CreateSwapchain(nil, createInfo)
	if err != nil {
		return nil, err
	}

	return &Swapchain{device: d, swapchain: swapchain}, nil
}

type Swapchain struct {
	device    *Device
	swapchain khr_swapchain.Swapchain
}

func (s *Swapchain) Destroy() {
	s.device.swapchainExt.DestroySwapchain(s.swapchain, nil)
}

func (s *Swapchain) Images() ([]render.Image, error) {
	images, _, err := s.device.swapchainExt.GetSwapchainImages(s.swapchain)
	if err != nil {
		return nil, err
	}

	out := make([]render.Image, 0, len(images))
	for _, image := range images {
		out = append(out, image)
	}
	return out, nil
}

func (s *Swapchain) AcquireNextImage(signal render.Semaphore) (int, error) {
	semaphore := unwrap[core1_0.Semaphore](signal)
	imageIndex, res, err := s.device.swapchainExt.AcquireNextImage(s.swapchain, common.NoTimeout, &semaphore, nil)
	if res == khr_swapchain.VKErrorOutOfDate {
		return -1, stale(err, "acquire next image")
	} else if err != nil {
		return -1, err
	}
	return imageIndex, nil
}

func (s *Swapchain) Present(queue render.Queue, index int, wait render.Semaphore) error {
	res, err := s.device.swapchainExt.QueuePresent(queue.(*Queue).queue, khr_swapchain.PresentInfo{
		WaitSemaphores: []core1_0.Semaphore{unwrap[core1_0.Semaphore](wait)},
		Swapchains:     []khr_swapchain.Swapchain{s.swapchain},
		ImageIndices:   []int{index},
	})
	if res == khr_swapchain.VKErrorOutOfDate || res == khr_swapchain.VKSuboptimal {
		return stale(err, "present")
	}
	return err
}

func stale(err error, op string) error {
	if err == nil {
		err = errors.New("swap chain suboptimal")
	}
	return errors.Mark(errors.Wrap(err, op), render.ErrSwapchainStale)
}
