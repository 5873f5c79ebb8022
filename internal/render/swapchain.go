package render

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// buildChain creates the swap chain and everything derived from it: image
// views, render pass, pipeline layout, pipeline, framebuffers and recorded
// command buffers. The previous chain, if any, is handed to the backend for
// reuse and destroyed once its replacement exists.
func (r *Renderer) buildChain(old Swapchain) error {
	support, err := r.candidate.Adapter.SwapchainSupport(r.surface)
	if err != nil {
		return mark(err, ErrSwapchain, "query swap chain support")
	}
	if !support.Adequate() {
		return errors.Mark(errors.New("surface reports no formats or present modes"), ErrSwapchain)
	}

	config := NegotiateSwapchain(support, r.candidate.Indices, r.requested)

	swapchain, err := r.device.CreateSwapchain(SwapchainInfo{
		Surface: r.surface,
		Config:  config,
		Old:     old,
	})
	if err != nil {
		return mark(err, ErrSwapchain, "create swap chain")
	}

	// Only the old chain sits above the mark at this point.
	r.res.unwindTo(r.chainMark)
	r.res.pushReleaser("swap chain", swapchain)

	r.chain = chainState{swapchain: swapchain, config: config}
	r.log.Info("swap chain created",
		"extent", config.Extent.String(),
		"format", int32(config.Format.Format),
		"presentMode", config.PresentMode.String(),
		"images", config.ImageCount,
		"sharing", config.Sharing.String())

	steps := []struct {
		name string
		fn   func() error
	}{
		{"image views", r.createImageViews},
		{"render pass", r.createRenderPass},
		{"graphics pipeline", r.createGraphicsPipeline},
		{"framebuffers", r.createFramebuffers},
		{"command buffers", r.createCommandBuffers},
	}

	for _, step := range steps {
		r.log.Debug("creating", "step", step.name)
		if err := step.fn(); err != nil {
			return err
		}
	}

	return nil
}

// recreate runs the invalidation protocol: drain the device, drop the
// objects derived from the swap chain, then rebuild from freshly queried
// support.
func (r *Renderer) recreate() error {
	if r.paused {
		return nil
	}

	if err := r.WaitIdle(); err != nil {
		return mark(err, ErrSwapchain, "recreate swap chain")
	}

	// Everything above the swap chain entry goes; the chain itself stays
	// alive until its replacement is created.
	r.res.unwindTo(r.chainMark + 1)

	old := r.chain.swapchain
	r.chain = chainState{swapchain: old}

	if err := r.buildChain(old); err != nil {
		return err
	}

	r.stale = false
	r.stats.Reset()
	return nil
}

// Resize is the resize notification target. A zero-area size pauses
// rendering without touching the swap chain; any positive size marks the
// chain stale so the next frame rebuilds it with that size.
func (r *Renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		if !r.paused {
			r.log.Debug("surface has no area, pausing")
		}
		r.paused = true
		return
	}

	r.paused = false
	r.requested = Extent{Width: width, Height: height}
	r.stale = true
}

func (r *Renderer) createImageViews() error {
	images, err := r.chain.swapchain.Images()
	if err != nil {
		return mark(err, ErrSwapchain, "get swap chain images")
	}
	r.chain.images = images

	for i, image := range images {
		view, err := r.device.CreateImageView(image, r.chain.config.Format.Format)
		if err != nil {
			return markf(err, ErrSwapchain, "create image view %d", i)
		}
		r.chain.views = append(r.chain.views, view)
		r.res.pushReleaser(fmt.Sprintf("image view %d", i), view)
	}

	return nil
}

func (r *Renderer) createFramebuffers() error {
	for i, view := range r.chain.views {
		framebuffer, err := r.device.CreateFramebuffer(r.chain.renderPass, view, r.chain.config.Extent)
		if err != nil {
			return markf(err, ErrSwapchain, "create framebuffer %d", i)
		}
		r.chain.framebuffers = append(r.chain.framebuffers, framebuffer)
		r.res.pushReleaser(fmt.Sprintf("framebuffer %d", i), framebuffer)
	}

	return nil
}
