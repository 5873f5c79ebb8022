package vulkan

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/core1_0"

	"github.com/vkngwrapper/hellotriangle/internal/render"
)

type CommandPool struct {
	device *Device
	pool   core1_0.CommandPool
}

var _ render.CommandPool = (*CommandPool)(nil)

func (d *Device) CreateCommandPool(family int) (render.CommandPool, error) {
	pool, _, err := d.driver.CreateCommandPool(nil, core1_0.CommandPoolCreateInfo{
		QueueFamilyIndex: family,
	})
	if err != nil {
		return nil, err
	}

	return &CommandPool{device: d, pool: pool}, nil
}

func (p *CommandPool) Destroy() {
	p.device.driver.DestroyCommandPool(p.pool, nil)
}

func (p *CommandPool) Allocate(count int) ([]render.CommandBuffer, error) {
	buffers, _, err := p.device.driver.AllocateCommandBuffers(core1_0.CommandBufferAllocateInfo{
		CommandPool:        p.pool,
		Level:              core1_0.CommandBufferLevelPrimary,
		CommandBufferCount: count,
	})
	if err != nil {
		return nil, err
	}

	out := make([]render.CommandBuffer, 0, len(buffers))
	for _, buffer := range buffers {
		out = append(out, &CommandBuffer{device: p.device, buffer: buffer})
	}
	return out, nil
}

func (p *CommandPool) Free(buffers []render.CommandBuffer) {
	if len(buffers) == 0 {
		return
	}

	raw := make([]core1_0.CommandBuffer, 0, len(buffers))
	for _, buffer := range buffers {
		raw = append(raw, buffer.(*CommandBuffer).buffer)
	}
	p.device.driver.FreeCommandBuffers(raw...)
}

type CommandBuffer struct {
	device *Device
	buffer core1_0.CommandBuffer
}

// Record writes the whole draw once; the buffer is replayed every frame the
// matching image is acquired.
func (c *CommandBuffer) Record(draw render.DrawCommand) error {
	driver := c.device.driver
	buffer := c.buffer

	_, err := driver.BeginCommandBuffer(buffer, core1_0.CommandBufferBeginInfo{})
	if err != nil {
		return errors.Wrap(err, "begin command buffer")
	}

	err = driver.CmdBeginRenderPass(buffer, core1_0.SubpassContentsInline,
		core1_0.RenderPassBeginInfo{
			RenderPass:  unwrap[core1_0.RenderPass](draw.RenderPass),
			Framebuffer: unwrap[core1_0.Framebuffer](draw.Framebuffer),
			RenderArea: core1_0.Rect2D{
				Offset: core1_0.Offset2D{X: 0, Y: 0},
				Extent: fromExtent(draw.Extent),
			},
			ClearValues: []core1_0.ClearValue{
				core1_0.ClearValueFloat(draw.ClearColor),
			},
		})
	if err != nil {
		return errors.Wrap(err, "begin render pass")
	}

	driver.CmdBindPipeline(buffer, core1_0.PipelineBindPointGraphics, unwrap[core1_0.Pipeline](draw.Pipeline))
	driver.CmdBindVertexBuffers(buffer, 0, []core1_0.Buffer{draw.VertexBuffer.(*VertexBuffer).buffer}, []int{0})
	driver.CmdDraw(buffer, draw.VertexCount, 1, 0, 0)
	driver.CmdEndRenderPass(buffer)

	_, err = driver.EndCommandBuffer(buffer)
	return errors.Wrap(err, "end command buffer")
}
