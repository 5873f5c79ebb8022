package render

import (
	"context"

	"github.com/cockroachdb/errors"
)

// FrameResult tells the caller what a DrawFrame call did.
type FrameResult int

const (
	FramePresented FrameResult = iota
	FrameSkipped
	FrameRecreated
)

func (f FrameResult) String() string {
	switch f {
	case FramePresented:
		return "presented"
	case FrameSkipped:
		return "skipped"
	case FrameRecreated:
		return "recreated"
	}
	return "unknown"
}

// DrawFrame runs one acquire/submit/present handshake.
//
// A stale chain on acquire means nothing is submitted: the chain is rebuilt
// and the frame is retried on the next iteration. A stale chain on present
// is rebuilt after the frame so the queued work is not lost. Only one frame
// is in flight; the present queue is drained before returning.
func (r *Renderer) DrawFrame() (FrameResult, error) {
	if r.paused {
		return FrameSkipped, nil
	}

	if r.stale {
		if err := r.recreate(); err != nil {
			return FrameSkipped, err
		}
	}

	index, err := r.chain.swapchain.AcquireNextImage(r.imageAvailable)
	if errors.Is(err, ErrSwapchainStale) {
		r.log.Debug("swap chain stale on acquire")
		if err := r.recreate(); err != nil {
			return FrameSkipped, err
		}
		return FrameRecreated, nil
	} else if err != nil {
		return FrameSkipped, mark(err, ErrSwapchain, "acquire next image")
	}

	err = r.device.Submit(r.graphicsQueue, r.chain.commands[index], r.imageAvailable, r.renderFinished)
	if err != nil {
		return FrameSkipped, errors.Wrapf(err, "submit command buffer %d", index)
	}

	err = r.chain.swapchain.Present(r.presentQueue, index, r.renderFinished)
	if errors.Is(err, ErrSwapchainStale) {
		r.log.Debug("swap chain stale on present")
		r.stale = true
	} else if err != nil {
		return FrameSkipped, mark(err, ErrSwapchain, "present image")
	}

	if err := r.presentQueue.WaitIdle(); err != nil {
		return FrameSkipped, errors.Wrap(err, "wait for present queue")
	}

	if report, ok := r.stats.Frame(); ok {
		r.log.Debug("frame stats",
			"frames", report.Frames,
			"fps", report.FPS(),
			"avgFrame", report.AvgFrame.String())
	}

	if r.stale {
		if err := r.recreate(); err != nil {
			return FramePresented, err
		}
		return FrameRecreated, nil
	}

	return FramePresented, nil
}

// Run drives the steady-state loop until the window asks to close or ctx is
// cancelled, then waits for the device to drain. Resource teardown is left
// to Close.
func Run(ctx context.Context, window Window, renderer *Renderer) error {
	for !window.ShouldClose() && ctx.Err() == nil {
		if renderer.Paused() {
			window.WaitEvents()
		} else {
			window.PollEvents()
		}

		if window.ShouldClose() {
			break
		}

		if _, err := renderer.DrawFrame(); err != nil {
			return err
		}
	}

	return renderer.WaitIdle()
}
