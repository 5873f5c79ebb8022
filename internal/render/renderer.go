package render

import (
	"log/slog"
	"time"

	"github.com/cockroachdb/errors"
)

type Options struct {
	ApplicationName   string
	EnableDiagnostics bool
	ValidationLayers  []string
	DeviceExtensions  []string
	VertexShader      string
	FragmentShader    string
	ClearColor        [4]float32

	// Diagnostics receives validation messages when EnableDiagnostics is set.
	Diagnostics   DiagnosticSink
	Logger        *slog.Logger
	StatsInterval time.Duration
}

// Renderer owns every GPU object of the presentation pipeline.
//
// Process-lifetime objects are created first: instance, diagnostics,
// surface, device, command pool, vertex buffer and the semaphore pair.
// Swap chain dependent objects follow and are the only ones rebuilt on
// resize, so one release stack yields exact reverse-order teardown.
type Renderer struct {
	backend Backend
	window  Window
	shaders ShaderLibrary
	opts    Options
	log     *slog.Logger

	res releaseStack

	instance  Instance
	surface   Surface
	candidate Candidate
	device    Device

	graphicsQueue Queue
	presentQueue  Queue

	commandPool  CommandPool
	vertexBuffer Buffer
	vertexCount  int

	imageAvailable Semaphore
	renderFinished Semaphore

	chain     chainState
	chainMark int

	requested Extent
	stale     bool
	paused    bool

	stats *FrameStats
}

// chainState is everything derived from the current swap chain.
type chainState struct {
	swapchain    Swapchain
	config       SwapchainConfig
	images       []Image
	views        []ImageView
	renderPass   RenderPass
	layout       PipelineLayout
	pipeline     Pipeline
	framebuffers []Framebuffer
	commands     []CommandBuffer
}

// NewRenderer performs the full ordered creation sequence. When any step
// fails, everything created so far is released before returning.
func NewRenderer(backend Backend, window Window, shaders ShaderLibrary, opts Options) (*Renderer, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	r := &Renderer{
		backend:   backend,
		window:    window,
		shaders:   shaders,
		opts:      opts,
		log:       logger,
		requested: window.DrawableSize(),
		stats:     NewFrameStats(opts.StatsInterval),
	}
	r.res.log = logger

	err := r.init()
	if err != nil {
		r.release(0)
		return nil, err
	}

	window.OnResize(r.Resize)
	return r, nil
}

func (r *Renderer) init() error {
	steps := []struct {
		name string
		fn   func() error
	}{
		{"instance", r.createInstance},
		{"diagnostics", r.setupDiagnostics},
		{"surface", r.createSurface},
		{"physical device", r.pickPhysicalDevice},
		{"logical device", r.createLogicalDevice},
		{"command pool", r.createCommandPool},
		{"vertex buffer", r.createVertexBuffer},
		{"sync objects", r.createSyncObjects},
	}

	for _, step := range steps {
		r.log.Debug("creating", "step", step.name)
		if err := step.fn(); err != nil {
			return err
		}
	}

	r.chainMark = r.res.mark()
	return r.buildChain(nil)
}

func (r *Renderer) createInstance() error {
	available, err := r.backend.InstanceExtensions()
	if err != nil {
		return mark(err, ErrInit, "enumerate instance extensions")
	}

	info := InstanceInfo{ApplicationName: r.opts.ApplicationName}
	for _, ext := range r.window.RequiredExtensions() {
		if _, ok := available[ext]; !ok {
			return errors.Mark(errors.Newf("cannot initialize window system: missing extension %s", ext), ErrInit)
		}
		info.Extensions = append(info.Extensions, ext)
	}

	if r.opts.EnableDiagnostics {
		if r.opts.Diagnostics == nil {
			return errors.Mark(errors.New("diagnostics enabled without a sink to report to"), ErrInit)
		}
		if _, ok := available[DiagnosticsExtension]; !ok {
			return errors.Mark(errors.Newf("diagnostics enabled but extension %s is not available", DiagnosticsExtension), ErrInit)
		}
		info.Extensions = append(info.Extensions, DiagnosticsExtension)

		layers, err := r.backend.InstanceLayers()
		if err != nil {
			return mark(err, ErrInit, "enumerate instance layers")
		}

		for _, layer := range r.opts.ValidationLayers {
			if _, ok := layers[layer]; !ok {
				return errors.Mark(errors.Newf("validation layer %s requested but not available", layer), ErrInit)
			}
			info.Layers = append(info.Layers, layer)
		}

		info.Diagnostics = r.opts.Diagnostics
	}

	r.instance, err = r.backend.CreateInstance(info)
	if err != nil {
		return mark(err, ErrInit, "create instance")
	}
	r.res.pushReleaser("instance", r.instance)

	return nil
}

func (r *Renderer) setupDiagnostics() error {
	if !r.opts.EnableDiagnostics {
		return nil
	}

	messenger, err := r.instance.RegisterDiagnostics(r.opts.Diagnostics)
	if err != nil {
		return mark(err, ErrInit, "register diagnostics")
	}
	r.res.pushReleaser("diagnostics", messenger)

	return nil
}

func (r *Renderer) createSurface() error {
	surface, err := r.window.CreateSurface(r.instance)
	if err != nil {
		return mark(err, ErrSurface, "create window surface")
	}
	r.surface = surface
	r.res.pushReleaser("surface", surface)

	return nil
}

func (r *Renderer) pickPhysicalDevice() error {
	adapters, err := r.instance.Adapters()
	if err != nil {
		return mark(err, ErrNoSuitableDevice, "enumerate adapters")
	}

	r.candidate, err = SelectDevice(adapters, r.surface, r.opts.DeviceExtensions, r.log)
	if err != nil {
		return err
	}

	props := r.candidate.Properties
	r.log.Info("selected adapter",
		"name", props.Name,
		"vendor", props.VendorID,
		"device", props.DeviceID,
		"cache", props.CacheID.String(),
		"graphicsFamily", *r.candidate.Indices.GraphicsFamily,
		"presentFamily", *r.candidate.Indices.PresentFamily)

	return nil
}

func (r *Renderer) createLogicalDevice() error {
	indices := r.candidate.Indices

	device, err := r.candidate.Adapter.CreateDevice(DeviceInfo{
		Queues:     QueueRequests(indices),
		Extensions: r.opts.DeviceExtensions,
	})
	if err != nil {
		return mark(err, ErrDeviceCreation, "create logical device")
	}
	r.device = device
	r.res.pushReleaser("device", device)

	r.graphicsQueue = device.Queue(*indices.GraphicsFamily)
	r.presentQueue = device.Queue(*indices.PresentFamily)

	return nil
}

func (r *Renderer) createCommandPool() error {
	pool, err := r.device.CreateCommandPool(*r.candidate.Indices.GraphicsFamily)
	if err != nil {
		return mark(err, ErrDeviceCreation, "create command pool")
	}
	r.commandPool = pool
	r.res.pushReleaser("command pool", pool)

	return nil
}

func (r *Renderer) createVertexBuffer() error {
	buffer, err := r.device.CreateVertexBuffer(r.commandPool, r.graphicsQueue, TriangleVertices)
	if err != nil {
		return mark(err, ErrDeviceCreation, "create vertex buffer")
	}
	r.vertexBuffer = buffer
	r.vertexCount = len(TriangleVertices)
	r.res.pushReleaser("vertex buffer", buffer)

	return nil
}

func (r *Renderer) createSyncObjects() error {
	var err error
	r.imageAvailable, err = r.device.CreateSemaphore()
	if err != nil {
		return mark(err, ErrDeviceCreation, "create image-available semaphore")
	}
	r.res.pushReleaser("image-available semaphore", r.imageAvailable)

	r.renderFinished, err = r.device.CreateSemaphore()
	if err != nil {
		return mark(err, ErrDeviceCreation, "create render-finished semaphore")
	}
	r.res.pushReleaser("render-finished semaphore", r.renderFinished)

	return nil
}

// release waits for the device to drain before unwinding down to mark.
func (r *Renderer) release(mark int) {
	if r.device != nil && r.res.mark() > mark {
		if err := r.device.WaitIdle(); err != nil {
			r.log.Warn("device did not become idle before release", "err", err)
		}
	}
	r.res.unwindTo(mark)
	if mark <= r.chainMark {
		r.chain = chainState{}
	}
}

// WaitIdle blocks until all queued GPU work has drained.
func (r *Renderer) WaitIdle() error {
	if r.device == nil {
		return nil
	}
	return errors.Wrap(r.device.WaitIdle(), "wait for device idle")
}

// Close drains the device and destroys every object in reverse creation
// order. It is safe to call more than once.
func (r *Renderer) Close() {
	r.log.Info("tearing down renderer")
	r.release(0)
	r.device = nil
}

// Extent returns the current swap chain extent.
func (r *Renderer) Extent() Extent {
	return r.chain.config.Extent
}

// SwapchainConfig returns the configuration of the current swap chain.
func (r *Renderer) SwapchainConfig() SwapchainConfig {
	return r.chain.config
}

// Paused reports whether the surface currently has no drawable area.
func (r *Renderer) Paused() bool {
	return r.paused
}
