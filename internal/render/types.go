package render

import (
	"fmt"

	"github.com/google/uuid"
)

// UndefinedExtent is reported in Capabilities.CurrentExtent when the surface
// lets the swap chain decide its own size.
const UndefinedExtent = -1

type Extent struct {
	Width  int
	Height int
}

// Empty reports whether the extent has no drawable area, as happens while a
// window is minimized.
func (e Extent) Empty() bool {
	return e.Width <= 0 || e.Height <= 0
}

func (e Extent) String() string {
	return fmt.Sprintf("%dx%d", e.Width, e.Height)
}

// Format values match the backend's image format enumeration.
type Format int32

const (
	FormatUndefined     Format = 0
	FormatB8G8R8A8UNorm Format = 44
	FormatB8G8R8A8SRGB  Format = 50
)

type ColorSpace int32

const ColorSpaceSRGBNonlinear ColorSpace = 0

type SurfaceFormat struct {
	Format     Format
	ColorSpace ColorSpace
}

type PresentMode int32

const (
	PresentModeImmediate   PresentMode = 0
	PresentModeMailbox     PresentMode = 1
	PresentModeFIFO        PresentMode = 2
	PresentModeFIFORelaxed PresentMode = 3
)

func (m PresentMode) String() string {
	switch m {
	case PresentModeImmediate:
		return "Immediate"
	case PresentModeMailbox:
		return "Mailbox"
	case PresentModeFIFO:
		return "FIFO"
	case PresentModeFIFORelaxed:
		return "FIFORelaxed"
	}
	return fmt.Sprintf("PresentMode(%d)", int32(m))
}

type SharingMode int

const (
	SharingExclusive SharingMode = iota
	SharingConcurrent
)

func (m SharingMode) String() string {
	if m == SharingConcurrent {
		return "Concurrent"
	}
	return "Exclusive"
}

// Capabilities is the surface capability block queried per swap chain
// (re)creation. A MaxImageCount of zero means the image count is unbounded.
type Capabilities struct {
	MinImageCount  int
	MaxImageCount  int
	CurrentExtent  Extent
	MinImageExtent Extent
	MaxImageExtent Extent
}

// DefiniteExtent returns the surface's current extent when the surface
// dictates one.
func (c Capabilities) DefiniteExtent() (Extent, bool) {
	if c.CurrentExtent.Width == UndefinedExtent {
		return Extent{}, false
	}
	return c.CurrentExtent, true
}

type SwapchainSupport struct {
	Capabilities Capabilities
	Formats      []SurfaceFormat
	PresentModes []PresentMode
}

// Adequate reports whether a swap chain can be built at all.
func (s SwapchainSupport) Adequate() bool {
	return len(s.Formats) > 0 && len(s.PresentModes) > 0
}

type QueueFamilyProperties struct {
	Graphics   bool
	QueueCount int
}

type QueueFamilyIndices struct {
	GraphicsFamily *int
	PresentFamily  *int
}

func (i QueueFamilyIndices) IsComplete() bool {
	return i.GraphicsFamily != nil && i.PresentFamily != nil
}

// Shared reports whether graphics and presentation resolve to the same family.
func (i QueueFamilyIndices) Shared() bool {
	return i.IsComplete() && *i.GraphicsFamily == *i.PresentFamily
}

// Unique returns each distinct family index once, graphics first.
func (i QueueFamilyIndices) Unique() []int {
	if !i.IsComplete() {
		return nil
	}
	families := []int{*i.GraphicsFamily}
	if *i.PresentFamily != *i.GraphicsFamily {
		families = append(families, *i.PresentFamily)
	}
	return families
}

type AdapterProperties struct {
	Name     string
	VendorID uint32
	DeviceID uint32
	CacheID  uuid.UUID
}

// Candidate is the inspected state of one adapter. Support is only
// populated when the adapter offers every required device extension.
type Candidate struct {
	Adapter    Adapter
	Properties AdapterProperties
	Indices    QueueFamilyIndices
	Extensions map[string]struct{}
	Support    SwapchainSupport
}

type QueueRequest struct {
	Family     int
	Priorities []float32
}

// SwapchainConfig is the negotiated shape of a swap chain.
type SwapchainConfig struct {
	Format        SurfaceFormat
	PresentMode   PresentMode
	Extent        Extent
	ImageCount    int
	Sharing       SharingMode
	QueueFamilies []int
}

type Severity int

const (
	SeverityVerbose Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityVerbose:
		return "verbose"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

// DiagnosticSink receives backend validation messages.
type DiagnosticSink interface {
	Report(severity Severity, message string)
}
