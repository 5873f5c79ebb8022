package render

// Releaser is implemented by every backend object with an explicit lifetime.
type Releaser interface {
	Destroy()
}

// Backend is the entry point to a graphics API implementation.
type Backend interface {
	InstanceExtensions() (map[string]struct{}, error)
	InstanceLayers() (map[string]struct{}, error)
	CreateInstance(info InstanceInfo) (Instance, error)
}

type InstanceInfo struct {
	ApplicationName string
	Extensions      []string
	Layers          []string

	// Diagnostics is non-nil when validation output is requested, in which
	// case Extensions already lists DiagnosticsExtension. The backend uses it
	// to capture messages from instance creation and destruction.
	Diagnostics DiagnosticSink
}

// DiagnosticsExtension is the instance extension that carries validation
// messages to a DiagnosticSink.
const DiagnosticsExtension = "VK_EXT_debug_utils"

type Instance interface {
	Releaser
	RegisterDiagnostics(sink DiagnosticSink) (Releaser, error)
	Adapters() ([]Adapter, error)
}

type Surface interface {
	Releaser
}

type Adapter interface {
	Properties() (AdapterProperties, error)
	QueueFamilies() []QueueFamilyProperties
	Extensions() (map[string]struct{}, error)
	PresentSupport(surface Surface, family int) (bool, error)
	SwapchainSupport(surface Surface) (SwapchainSupport, error)
	CreateDevice(info DeviceInfo) (Device, error)
}

type DeviceInfo struct {
	Queues     []QueueRequest
	Extensions []string
}

type Device interface {
	Releaser
	Queue(family int) Queue
	WaitIdle() error

	CreateSwapchain(info SwapchainInfo) (Swapchain, error)
	CreateImageView(image Image, format Format) (ImageView, error)
	CreateRenderPass(format Format) (RenderPass, error)
	CreatePipelineLayout() (PipelineLayout, error)
	CreateShaderModule(code []uint32) (ShaderModule, error)
	CreateGraphicsPipeline(info PipelineInfo) (Pipeline, error)
	CreateFramebuffer(pass RenderPass, view ImageView, extent Extent) (Framebuffer, error)
	CreateCommandPool(family int) (CommandPool, error)
	CreateSemaphore() (Semaphore, error)

	// CreateVertexBuffer uploads data into device-local memory through a
	// staging copy recorded on pool and executed on queue.
	CreateVertexBuffer(pool CommandPool, queue Queue, data any) (Buffer, error)

	// Submit queues cmd for execution once wait is signaled and signals
	// signal when it completes.
	Submit(queue Queue, cmd CommandBuffer, wait, signal Semaphore) error
}

type Queue interface {
	WaitIdle() error
}

type SwapchainInfo struct {
	Surface Surface
	Config  SwapchainConfig

	// Old is the chain being replaced, nil on first creation.
	Old Swapchain
}

type Swapchain interface {
	Releaser
	Images() ([]Image, error)

	// AcquireNextImage returns an error marked ErrSwapchainStale when the
	// chain is out of date.
	AcquireNextImage(signal Semaphore) (int, error)

	// Present returns an error marked ErrSwapchainStale when the chain is out
	// of date or suboptimal. The frame has been queued either way.
	Present(queue Queue, index int, wait Semaphore) error
}

// Image is a swap chain image. Swap chain images are owned by their chain
// and never destroyed individually.
type Image any

type ImageView interface{ Releaser }

type RenderPass interface{ Releaser }

type PipelineLayout interface{ Releaser }

type ShaderModule interface{ Releaser }

type Pipeline interface{ Releaser }

type Framebuffer interface{ Releaser }

type Semaphore interface{ Releaser }

type Buffer interface{ Releaser }

type PipelineInfo struct {
	RenderPass     RenderPass
	Layout         PipelineLayout
	VertexShader   ShaderModule
	FragmentShader ShaderModule
	EntryPoint     string
	Vertex         VertexLayout
	Extent         Extent
}

type CommandPool interface {
	Releaser
	Allocate(count int) ([]CommandBuffer, error)
	Free(buffers []CommandBuffer)
}

type CommandBuffer interface {
	Record(draw DrawCommand) error
}

// DrawCommand is the complete fixed sequence recorded into one command
// buffer: begin pass, bind pipeline, bind vertices, draw, end pass.
type DrawCommand struct {
	RenderPass   RenderPass
	Framebuffer  Framebuffer
	Extent       Extent
	Pipeline     Pipeline
	VertexBuffer Buffer
	VertexCount  int
	ClearColor   [4]float32
}

// Window is the windowing collaborator.
type Window interface {
	RequiredExtensions() []string
	CreateSurface(instance Instance) (Surface, error)
	DrawableSize() Extent
	OnResize(fn func(width, height int))
	PollEvents()
	WaitEvents()
	ShouldClose() bool
}

// ShaderLibrary provides SPIR-V words for a shader path.
type ShaderLibrary interface {
	Bytecode(path string) ([]uint32, error)
}
