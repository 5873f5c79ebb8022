package vulkan

import (
	"bytes"
	"encoding/binary"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"

	"github.com/vkngwrapper/hellotriangle/internal/render"
)

// VertexBuffer is a device-local buffer and the memory bound to it.
type VertexBuffer struct {
	device *Device
	buffer core1_0.Buffer
	memory core1_0.DeviceMemory
}

func (b *VertexBuffer) Destroy() {
	b.release()
}

// CreateVertexBuffer writes data into a host-visible staging buffer and
// copies it into device-local memory with a one-shot command buffer.
func (d *Device) CreateVertexBuffer(pool render.CommandPool, queue render.Queue, data any) (render.Buffer, error) {
	bufferSize := binary.Size(data)
	if bufferSize <= 0 {
		return nil, errors.Newf("vertex data of type %T has no fixed size", data)
	}

	stagingBuffer, stagingBufferMemory, err := d.createBuffer(bufferSize, core1_0.BufferUsageTransferSrc, core1_0.MemoryPropertyHostVisible|core1_0.MemoryPropertyHostCoherent)
	if stagingBuffer.Initialized() {
		defer d.driver.DestroyBuffer(stagingBuffer, nil)
	}
	if stagingBufferMemory.Initialized() {
		defer d.driver.FreeMemory(stagingBufferMemory, nil)
	}
	if err != nil {
		return nil, errors.Wrap(err, "create staging buffer")
	}

	err = writeData(d.driver, stagingBufferMemory, 0, data)
	if err != nil {
		return nil, errors.Wrap(err, "write staging buffer")
	}

	vertexBuffer, vertexBufferMemory, err := d.createBuffer(bufferSize, core1_0.BufferUsageTransferDst|core1_0.BufferUsageVertexBuffer, core1_0.MemoryPropertyDeviceLocal)
	result := &VertexBuffer{device: d, buffer: vertexBuffer, memory: vertexBufferMemory}
	if err != nil {
		result.release()
		return nil, errors.Wrap(err, "create vertex buffer")
	}

	err = d.copyBuffer(pool.(*CommandPool), queue.(*Queue), stagingBuffer, vertexBuffer, bufferSize)
	if err != nil {
		result.release()
		return nil, errors.Wrap(err, "upload vertices")
	}

	return result, nil
}

// release frees whatever part of a half-built buffer exists.
func (b *VertexBuffer) release() {
	if b.buffer.Initialized() {
		b.device.driver.DestroyBuffer(b.buffer, nil)
	}
	if b.memory.Initialized() {
		b.device.driver.FreeMemory(b.memory, nil)
	}
}

func (d *Device) createBuffer(size int, usage core1_0.BufferUsageFlags, properties core1_0.MemoryPropertyFlags) (core1_0.Buffer, core1_0.DeviceMemory, error) {
	buffer, _, err := d.driver.CreateBuffer(nil, core1_0.BufferCreateInfo{
		Size:        size,
		Usage:       usage,
		SharingMode: core1_0.SharingModeExclusive,
	})
	if err != nil {
		return core1_0.Buffer{}, core1_0.DeviceMemory{}, err
	}

	memRequirements := d.driver.GetBufferMemoryRequirements(buffer)
	memoryTypeIndex, err := d.findMemoryType(memRequirements.MemoryTypeBits, properties)
	if err != nil {
		return buffer, core1_0.DeviceMemory{}, err
	}

	memory, _, err := d.driver.AllocateMemory(nil, core1_0.MemoryAllocateInfo{
		AllocationSize:  memRequirements.Size,
		MemoryTypeIndex: memoryTypeIndex,
	})
	if err != nil {
		return buffer, core1_0.DeviceMemory{}, err
	}

	_, err = d.driver.BindBufferMemory(buffer, memory, 0)
	return buffer, memory, err
}

func (d *Device) findMemoryType(typeFilter uint32, properties core1_0.MemoryPropertyFlags) (int, error) {
	memProperties := d.adapter.instance.driver.GetPhysicalDeviceMemoryProperties(d.adapter.device)
	for i, memoryType := range memProperties.MemoryTypes {
		typeBit := uint32(1 << i)

		if (typeFilter&typeBit) != 0 && (memoryType.PropertyFlags&properties) == properties {
			return i, nil
		}
	}

	return 0, errors.Newf("no memory type matches filter %#x with properties %v", typeFilter, properties)
}

func (d *Device) copyBuffer(pool *CommandPool, queue *Queue, srcBuffer, dstBuffer core1_0.Buffer, size int) error {
	buffers, _, err := d.driver.AllocateCommandBuffers(core1_0.CommandBufferAllocateInfo{
		CommandPool:        pool.pool,
		Level:              core1_0.CommandBufferLevelPrimary,
		CommandBufferCount: 1,
	})
	if err != nil {
		return err
	}
	buffer := buffers[0]
	defer d.driver.FreeCommandBuffers(buffer)

	_, err = d.driver.BeginCommandBuffer(buffer, core1_0.CommandBufferBeginInfo{
		Flags: core1_0.CommandBufferUsageOneTimeSubmit,
	})
	if err != nil {
		return err
	}

	err = d.driver.CmdCopyBuffer(buffer, srcBuffer, dstBuffer,
		core1_0.BufferCopy{
			SrcOffset: 0,
			DstOffset: 0,
			Size:      size,
		},
	)
	if err != nil {
		return err
	}

	_, err = d.driver.EndCommandBuffer(buffer)
	if err != nil {
		return err
	}

	_, err = d.driver.QueueSubmit(queue.queue, nil,
		core1_0.SubmitInfo{
			CommandBuffers: []core1_0.CommandBuffer{buffer},
		},
	)
	if err != nil {
		return err
	}

	_, err = d.driver.QueueWaitIdle(queue.queue)
	return err
}

func writeData(driver core1_0.DeviceDriver, memory core1_0.DeviceMemory, offset int, data any) error {
	bufferSize := binary.Size(data)

	memoryPtr, _, err := driver.MapMemory(memory, offset, bufferSize, 0)
	if err != nil {
		return err
	}
	defer driver.UnmapMemory(memory)

	dataBuffer := unsafe.Slice((*byte)(memoryPtr), bufferSize)

	buf := &bytes.Buffer{}
	err = binary.Write(buf, common.ByteOrder, data)
	if err != nil {
		return err
	}

	copy(dataBuffer, buf.Bytes())
	return nil
}
