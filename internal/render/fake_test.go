package render

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// fakeLog records every create and destroy performed against the fake
// backend, in order.
type fakeLog struct {
	events []string
	nextID int
	live   map[string]bool
}

func newFakeLog() *fakeLog {
	return &fakeLog{live: map[string]bool{}}
}

func (l *fakeLog) create(kind string) string {
	l.nextID++
	name := fmt.Sprintf("%s#%d", kind, l.nextID)
	l.events = append(l.events, "create "+name)
	l.live[name] = true
	return name
}

func (l *fakeLog) destroy(name string) {
	l.events = append(l.events, "destroy "+name)
	if !l.live[name] {
		panic("double destroy of " + name)
	}
	delete(l.live, name)
}

func (l *fakeLog) note(event string) {
	l.events = append(l.events, event)
}

type fakeObject struct {
	log  *fakeLog
	name string
}

func (o *fakeObject) Destroy() { o.log.destroy(o.name) }

type fakeBackend struct {
	log        *fakeLog
	extensions map[string]struct{}
	layers     map[string]struct{}
	adapters   []*fakeAdapter
	failAt     string

	instanceInfo InstanceInfo
}

func newFakeBackend() *fakeBackend {
	log := newFakeLog()
	return &fakeBackend{
		log:        log,
		extensions: map[string]struct{}{"VK_KHR_surface": {}, "VK_EXT_debug_utils": {}},
		layers:     map[string]struct{}{"VK_LAYER_KHRONOS_validation": {}},
		adapters:   []*fakeAdapter{newFakeAdapter(log, "gpu0")},
	}
}

func (b *fakeBackend) fail(op string) error {
	if b.failAt == op {
		return errors.Newf("injected failure: %s", op)
	}
	return nil
}

func (b *fakeBackend) InstanceExtensions() (map[string]struct{}, error) { return b.extensions, nil }

func (b *fakeBackend) InstanceLayers() (map[string]struct{}, error) { return b.layers, nil }

func (b *fakeBackend) CreateInstance(info InstanceInfo) (Instance, error) {
	if err := b.fail("instance"); err != nil {
		return nil, err
	}
	b.instanceInfo = info
	return &fakeInstance{fakeObject: fakeObject{b.log, b.log.create("instance")}, backend: b}, nil
}

type fakeInstance struct {
	fakeObject
	backend *fakeBackend
}

func (i *fakeInstance) RegisterDiagnostics(DiagnosticSink) (Releaser, error) {
	return &fakeObject{i.log, i.log.create("messenger")}, nil
}

func (i *fakeInstance) Adapters() ([]Adapter, error) {
	var adapters []Adapter
	for _, a := range i.backend.adapters {
		a.backend = i.backend
		adapters = append(adapters, a)
	}
	return adapters, nil
}

type fakeAdapter struct {
	log        *fakeLog
	backend    *fakeBackend
	name       string
	families   []QueueFamilyProperties
	present    map[int]bool
	extensions map[string]struct{}
	support    SwapchainSupport

	propertiesErr error
	inspected     int
	presentChecks []int
	deviceInfo    DeviceInfo
	device        *fakeDevice
}

func newFakeAdapter(log *fakeLog, name string) *fakeAdapter {
	return &fakeAdapter{
		log:        log,
		name:       name,
		families:   []QueueFamilyProperties{{Graphics: true, QueueCount: 1}},
		present:    map[int]bool{0: true},
		extensions: map[string]struct{}{"VK_KHR_swapchain": {}},
		support: SwapchainSupport{
			Capabilities: Capabilities{
				MinImageCount:  2,
				CurrentExtent:  Extent{Width: UndefinedExtent, Height: UndefinedExtent},
				MinImageExtent: Extent{Width: 1, Height: 1},
				MaxImageExtent: Extent{Width: 4096, Height: 4096},
			},
			Formats:      []SurfaceFormat{{Format: FormatB8G8R8A8UNorm, ColorSpace: ColorSpaceSRGBNonlinear}},
			PresentModes: []PresentMode{PresentModeFIFO},
		},
	}
}

func (a *fakeAdapter) Properties() (AdapterProperties, error) {
	a.inspected++
	if a.propertiesErr != nil {
		return AdapterProperties{}, a.propertiesErr
	}
	return AdapterProperties{Name: a.name}, nil
}

func (a *fakeAdapter) QueueFamilies() []QueueFamilyProperties { return a.families }

func (a *fakeAdapter) Extensions() (map[string]struct{}, error) { return a.extensions, nil }

func (a *fakeAdapter) PresentSupport(_ Surface, family int) (bool, error) {
	a.presentChecks = append(a.presentChecks, family)
	return a.present[family], nil
}

func (a *fakeAdapter) SwapchainSupport(Surface) (SwapchainSupport, error) {
	if a.log != nil {
		a.log.note("query support")
	}
	return a.support, nil
}

func (a *fakeAdapter) CreateDevice(info DeviceInfo) (Device, error) {
	if err := a.backend.fail("device"); err != nil {
		return nil, err
	}
	a.deviceInfo = info
	a.device = &fakeDevice{fakeObject: fakeObject{a.log, a.log.create("device")}, backend: a.backend}
	return a.device, nil
}

type fakeDevice struct {
	fakeObject
	backend *fakeBackend

	swapchains []*fakeSwapchain
	submits    int
	waitIdle   int
}

func (d *fakeDevice) Queue(family int) Queue {
	return &fakeQueue{log: d.log, family: family}
}

func (d *fakeDevice) WaitIdle() error {
	d.waitIdle++
	d.log.note("wait idle")
	return nil
}

func (d *fakeDevice) object(kind string) (*fakeObject, error) {
	if err := d.backend.fail(kind); err != nil {
		return nil, err
	}
	return &fakeObject{d.log, d.log.create(kind)}, nil
}

func (d *fakeDevice) CreateSwapchain(info SwapchainInfo) (Swapchain, error) {
	if err := d.backend.fail("swapchain"); err != nil {
		return nil, err
	}
	sc := &fakeSwapchain{
		fakeObject: fakeObject{d.log, d.log.create("swapchain")},
		info:       info,
	}
	d.swapchains = append(d.swapchains, sc)
	return sc, nil
}

func (d *fakeDevice) CreateImageView(Image, Format) (ImageView, error) { return d.object("view") }

func (d *fakeDevice) CreateRenderPass(Format) (RenderPass, error) { return d.object("renderpass") }

func (d *fakeDevice) CreatePipelineLayout() (PipelineLayout, error) { return d.object("layout") }

func (d *fakeDevice) CreateShaderModule([]uint32) (ShaderModule, error) { return d.object("shader") }

func (d *fakeDevice) CreateGraphicsPipeline(PipelineInfo) (Pipeline, error) {
	return d.object("pipeline")
}

func (d *fakeDevice) CreateFramebuffer(RenderPass, ImageView, Extent) (Framebuffer, error) {
	return d.object("framebuffer")
}

func (d *fakeDevice) CreateCommandPool(int) (CommandPool, error) {
	obj, err := d.object("pool")
	if err != nil {
		return nil, err
	}
	return &fakePool{fakeObject: *obj}, nil
}

func (d *fakeDevice) CreateSemaphore() (Semaphore, error) { return d.object("semaphore") }

func (d *fakeDevice) CreateVertexBuffer(CommandPool, Queue, any) (Buffer, error) {
	return d.object("vertexbuffer")
}

func (d *fakeDevice) Submit(_ Queue, cmd CommandBuffer, _, _ Semaphore) error {
	d.submits++
	d.log.note("submit " + cmd.(*fakeCommandBuffer).name)
	return nil
}

type fakeQueue struct {
	log    *fakeLog
	family int
}

func (q *fakeQueue) WaitIdle() error { return nil }

type fakeSwapchain struct {
	fakeObject
	info SwapchainInfo

	acquireStale int
	presentStale int
	acquires     int
	presents     int
}

func (s *fakeSwapchain) Images() ([]Image, error) {
	images := make([]Image, s.info.Config.ImageCount)
	for i := range images {
		images[i] = i
	}
	return images, nil
}

func (s *fakeSwapchain) AcquireNextImage(Semaphore) (int, error) {
	s.acquires++
	if s.acquireStale > 0 {
		s.acquireStale--
		s.log.note("acquire stale " + s.name)
		return -1, errors.Mark(errors.New("out of date"), ErrSwapchainStale)
	}
	s.log.note("acquire " + s.name)
	return s.acquires % s.info.Config.ImageCount, nil
}

func (s *fakeSwapchain) Present(_ Queue, index int, _ Semaphore) error {
	s.presents++
	s.log.note(fmt.Sprintf("present %s %d", s.name, index))
	if s.presentStale > 0 {
		s.presentStale--
		return errors.Mark(errors.New("suboptimal"), ErrSwapchainStale)
	}
	return nil
}

type fakePool struct {
	fakeObject
}

func (p *fakePool) Allocate(count int) ([]CommandBuffer, error) {
	buffers := make([]CommandBuffer, count)
	for i := range buffers {
		buffers[i] = &fakeCommandBuffer{log: p.log, name: p.log.create("cmd")}
	}
	return buffers, nil
}

func (p *fakePool) Free(buffers []CommandBuffer) {
	for _, b := range buffers {
		p.log.destroy(b.(*fakeCommandBuffer).name)
	}
}

type fakeCommandBuffer struct {
	log      *fakeLog
	name     string
	recorded []DrawCommand
}

func (c *fakeCommandBuffer) Record(draw DrawCommand) error {
	c.recorded = append(c.recorded, draw)
	return nil
}

type fakeWindow struct {
	extensions []string
	size       Extent
	onResize   func(w, h int)
	closeAfter int
	polls      int
	waits      int
	events     []func()
}

func (w *fakeWindow) RequiredExtensions() []string { return w.extensions }

func (w *fakeWindow) CreateSurface(instance Instance) (Surface, error) {
	inst := instance.(*fakeInstance)
	if err := inst.backend.fail("surface"); err != nil {
		return nil, err
	}
	return &fakeObject{inst.log, inst.log.create("surface")}, nil
}

func (w *fakeWindow) DrawableSize() Extent { return w.size }

func (w *fakeWindow) OnResize(fn func(w, h int)) { w.onResize = fn }

func (w *fakeWindow) dispatch() {
	if len(w.events) > 0 {
		ev := w.events[0]
		w.events = w.events[1:]
		ev()
	}
}

func (w *fakeWindow) PollEvents() {
	w.polls++
	w.dispatch()
}

func (w *fakeWindow) WaitEvents() {
	w.waits++
	w.dispatch()
}

func (w *fakeWindow) ShouldClose() bool {
	return w.closeAfter >= 0 && w.polls+w.waits >= w.closeAfter
}

type fakeShaders struct {
	err error
}

func (s fakeShaders) Bytecode(string) ([]uint32, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []uint32{0x07230203}, nil
}

type recordingSink struct {
	messages []string
}

func (s *recordingSink) Report(severity Severity, message string) {
	s.messages = append(s.messages, severity.String()+": "+message)
}
