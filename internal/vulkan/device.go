package vulkan

import (
	"log/slog"

	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"

	"github.com/vkngwrapper/hellotriangle/internal/render"
)

type Device struct {
	adapter      *Adapter
	driver       core1_0.CoreDeviceDriver
	swapchainExt khr_swapchain.ExtensionDriver
	log          *slog.Logger
}

var _ render.Device = (*Device)(nil)

func (d *Device) Destroy() {
	d.driver.DestroyDevice(nil)
}

func (d *Device) Queue(family int) render.Queue {
	return &Queue{driver: d.driver, queue: d.driver.GetQueue(family, 0)}
}

func (d *Device) WaitIdle() error {
	_, err := d.driver.DeviceWaitIdle()
	return err
}

func (d *Device) CreateImageView(image render.Image, format render.Format) (render.ImageView, error) {
	imageView, _, err := d.driver.CreateImageView(nil, core1_0.ImageViewCreateInfo{
		Image:    image.(core1_0.Image),
		ViewType: core1_0.ImageViewType2D,
		Format:   core1_0.Format(format),
		SubresourceRange: core1_0.ImageSubresourceRange{
			AspectMask:     core1_0.ImageAspectColor,
			BaseMipLevel:   0,
			LevelCount:     1,
			BaseArrayLayer: 0,
			LayerCount:     1,
		},
	})
	if err != nil {
		return nil, err
	}

	return newHandle(imageView, func(v core1_0.ImageView) {
		d.driver.DestroyImageView(v, nil)
	}), nil
}

func (d *Device) CreateFramebuffer(pass render.RenderPass, view render.ImageView, extent render.Extent) (render.Framebuffer, error) {
	framebuffer, _, err := d.driver.CreateFramebuffer(nil, core1_0.FramebufferCreateInfo{
		RenderPass: unwrap[core1_0.RenderPass](pass),
		Layers:     1,
		Attachments: []core1_0.ImageView{
			unwrap[core1_0.ImageView](view),
		},
		Width:  extent.Width,
		Height: extent.Height,
	})
	if err != nil {
		return nil, err
	}

	return newHandle(framebuffer, func(f core1_0.Framebuffer) {
		d.driver.DestroyFramebuffer(f, nil)
	}), nil
}

func (d *Device) CreateSemaphore() (render.Semaphore, error) {
	semaphore, _, err := d.driver.CreateSemaphore(nil, core1_0.SemaphoreCreateInfo{})
	if err != nil {
		return nil, err
	}

	return newHandle(semaphore, func(s core1_0.Semaphore) {
		d.driver.DestroySemaphore(s, nil)
	}), nil
}

// Submit queues one command buffer. The color output stage waits on wait so
// the image is not written before the presentation engine releases it.
func (d *Device) Submit(queue render.Queue, cmd render.CommandBuffer, wait, signal render.Semaphore) error {
	_, err := d.driver.QueueSubmit(queue.(*Queue).queue, nil,
		core1_0.SubmitInfo{
			WaitSemaphores:   []core1_0.Semaphore{unwrap[core1_0.Semaphore](wait)},
			WaitDstStageMask: []core1_0.PipelineStageFlags{core1_0.PipelineStageColorAttachmentOutput},
			CommandBuffers:   []core1_0.CommandBuffer{cmd.(*CommandBuffer).buffer},
			SignalSemaphores: []core1_0.Semaphore{unwrap[core1_0.Semaphore](signal)},
		},
	)
	return err
}

type Queue struct {
	driver core1_0.CoreDeviceDriver
	queue  core1_0.Queue
}

func (q *Queue) WaitIdle() error {
	_, err := q.driver.QueueWaitIdle(q.queue)
	return err
}
