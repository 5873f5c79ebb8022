package render

import "github.com/cockroachdb/errors"

const shaderEntryPoint = "main"

func (r *Renderer) createRenderPass() error {
	renderPass, err := r.device.CreateRenderPass(r.chain.config.Format.Format)
	if err != nil {
		return mark(err, ErrPipelineCreation, "create render pass")
	}
	r.chain.renderPass = renderPass
	r.res.pushReleaser("render pass", renderPass)

	return nil
}

// createGraphicsPipeline bakes the fixed pipeline for the current format and
// extent. Shader modules only live for the duration of the call.
func (r *Renderer) createGraphicsPipeline() error {
	vertShader, err := r.createShaderModule(r.opts.VertexShader)
	if err != nil {
		return err
	}
	defer vertShader.Destroy()

	fragShader, err := r.createShaderModule(r.opts.FragmentShader)
	if err != nil {
		return err
	}
	defer fragShader.Destroy()

	layout, err := r.device.CreatePipelineLayout()
	if err != nil {
		return mark(err, ErrPipelineCreation, "create pipeline layout")
	}
	r.chain.layout = layout
	r.res.pushReleaser("pipeline layout", layout)

	pipeline, err := r.device.CreateGraphicsPipeline(PipelineInfo{
		RenderPass:     r.chain.renderPass,
		Layout:         layout,
		VertexShader:   vertShader,
		FragmentShader: fragShader,
		EntryPoint:     shaderEntryPoint,
		Vertex:         VertexLayoutOf(),
		Extent:         r.chain.config.Extent,
	})
	if err != nil {
		return mark(err, ErrPipelineCreation, "create graphics pipeline")
	}
	r.chain.pipeline = pipeline
	r.res.pushReleaser("graphics pipeline", pipeline)

	return nil
}

func (r *Renderer) createShaderModule(path string) (ShaderModule, error) {
	code, err := r.shaders.Bytecode(path)
	if err != nil {
		if errors.Is(err, ErrIO) || errors.Is(err, ErrShaderCompile) {
			return nil, errors.Wrapf(err, "load shader %s", path)
		}
		return nil, markf(err, ErrShaderCompile, "load shader %s", path)
	}

	module, err := r.device.CreateShaderModule(code)
	if err != nil {
		return nil, markf(err, ErrShaderCompile, "create shader module %s", path)
	}

	return module, nil
}

func (r *Renderer) createCommandBuffers() error {
	buffers, err := r.commandPool.Allocate(len(r.chain.framebuffers))
	if err != nil {
		return mark(err, ErrSwapchain, "allocate command buffers")
	}
	r.chain.commands = buffers
	r.res.push("command buffers", func() {
		r.commandPool.Free(buffers)
	})

	for i, buffer := range buffers {
		err = buffer.Record(DrawCommand{
			RenderPass:   r.chain.renderPass,
			Framebuffer:  r.chain.framebuffers[i],
			Extent:       r.chain.config.Extent,
			Pipeline:     r.chain.pipeline,
			VertexBuffer: r.vertexBuffer,
			VertexCount:  r.vertexCount,
			ClearColor:   r.opts.ClearColor,
		})
		if err != nil {
			return markf(err, ErrSwapchain, "record command buffer %d", i)
		}
	}

	return nil
}
