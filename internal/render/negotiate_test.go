package render

import (
	"reflect"
	"testing"
)

func intPtr(v int) *int { return &v }

func TestNegotiateSwapchainDefaults(t *testing.T) {
	support := SwapchainSupport{
		Capabilities: Capabilities{
			MinImageCount:  2,
			MaxImageCount:  0,
			CurrentExtent:  Extent{Width: UndefinedExtent, Height: UndefinedExtent},
			MinImageExtent: Extent{Width: 1, Height: 1},
			MaxImageExtent: Extent{Width: 4096, Height: 4096},
		},
		Formats:      []SurfaceFormat{{Format: FormatB8G8R8A8UNorm, ColorSpace: ColorSpaceSRGBNonlinear}},
		PresentModes: []PresentMode{PresentModeFIFO},
	}
	indices := QueueFamilyIndices{GraphicsFamily: intPtr(0), PresentFamily: intPtr(0)}

	got := NegotiateSwapchain(support, indices, Extent{Width: 1024, Height: 768})

	want := SwapchainConfig{
		Format:      PreferredSurfaceFormat,
		PresentMode: PresentModeFIFO,
		Extent:      Extent{Width: 1024, Height: 768},
		ImageCount:  3,
		Sharing:     SharingExclusive,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NegotiateSwapchain() = %+v, want %+v", got, want)
	}
}

func TestNegotiateSwapchainConcurrentSharing(t *testing.T) {
	support := SwapchainSupport{
		Capabilities: Capabilities{MinImageCount: 2, CurrentExtent: Extent{Width: 800, Height: 600}},
		Formats:      []SurfaceFormat{PreferredSurfaceFormat},
		PresentModes: []PresentMode{PresentModeFIFO},
	}
	indices := QueueFamilyIndices{GraphicsFamily: intPtr(0), PresentFamily: intPtr(2)}

	got := NegotiateSwapchain(support, indices, Extent{Width: 1, Height: 1})
	if got.Sharing != SharingConcurrent {
		t.Errorf("Sharing = %v, want concurrent", got.Sharing)
	}
	if !reflect.DeepEqual(got.QueueFamilies, []int{0, 2}) {
		t.Errorf("QueueFamilies = %v, want [0 2]", got.QueueFamilies)
	}
	if got.Extent != (Extent{Width: 800, Height: 600}) {
		t.Errorf("Extent = %v, want the surface's current extent", got.Extent)
	}
}

func TestChooseSurfaceFormat(t *testing.T) {
	srgb := SurfaceFormat{Format: FormatB8G8R8A8SRGB, ColorSpace: ColorSpaceSRGBNonlinear}

	tests := []struct {
		name      string
		available []SurfaceFormat
		want      SurfaceFormat
	}{
		{"preferred only", []SurfaceFormat{PreferredSurfaceFormat}, PreferredSurfaceFormat},
		{"preferred second", []SurfaceFormat{srgb, PreferredSurfaceFormat}, PreferredSurfaceFormat},
		{"fallback to first", []SurfaceFormat{srgb}, srgb},
		{"undefined means any", []SurfaceFormat{{Format: FormatUndefined}}, PreferredSurfaceFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ChooseSurfaceFormat(tt.available); got != tt.want {
				t.Errorf("ChooseSurfaceFormat() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestChoosePresentMode(t *testing.T) {
	tests := []struct {
		name      string
		available []PresentMode
		want      PresentMode
	}{
		{"fifo only", []PresentMode{PresentModeFIFO}, PresentModeFIFO},
		{"mailbox wins", []PresentMode{PresentModeFIFO, PresentModeMailbox}, PresentModeMailbox},
		{"mailbox over immediate regardless of order", []PresentMode{PresentModeImmediate, PresentModeMailbox}, PresentModeMailbox},
		{"immediate over fifo", []PresentMode{PresentModeFIFO, PresentModeImmediate}, PresentModeImmediate},
		{"relaxed is not preferred", []PresentMode{PresentModeFIFORelaxed, PresentModeFIFO}, PresentModeFIFO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ChoosePresentMode(tt.available); got != tt.want {
				t.Errorf("ChoosePresentMode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestChooseExtent(t *testing.T) {
	caps := Capabilities{
		CurrentExtent:  Extent{Width: UndefinedExtent, Height: UndefinedExtent},
		MinImageExtent: Extent{Width: 100, Height: 100},
		MaxImageExtent: Extent{Width: 2000, Height: 1000},
	}

	tests := []struct {
		name      string
		requested Extent
		want      Extent
	}{
		{"inside range", Extent{Width: 640, Height: 480}, Extent{Width: 640, Height: 480}},
		{"clamped up", Extent{Width: 10, Height: 480}, Extent{Width: 100, Height: 480}},
		{"clamped down per axis", Extent{Width: 640, Height: 5000}, Extent{Width: 640, Height: 1000}},
		{"both clamped", Extent{Width: 9000, Height: 1}, Extent{Width: 2000, Height: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ChooseExtent(caps, tt.requested); got != tt.want {
				t.Errorf("ChooseExtent(%v) = %v, want %v", tt.requested, got, tt.want)
			}
		})
	}

	definite := caps
	definite.CurrentExtent = Extent{Width: 1280, Height: 720}
	if got := ChooseExtent(definite, Extent{Width: 1, Height: 1}); got != definite.CurrentExtent {
		t.Errorf("ChooseExtent with definite extent = %v, want %v", got, definite.CurrentExtent)
	}
}

func TestChooseImageCount(t *testing.T) {
	tests := []struct {
		min, max int
		want     int
	}{
		{2, 0, 3},
		{2, 8, 3},
		{2, 2, 2},
		{1, 3, 2},
		{3, 3, 3},
	}

	for _, tt := range tests {
		got := ChooseImageCount(Capabilities{MinImageCount: tt.min, MaxImageCount: tt.max})
		if got != tt.want {
			t.Errorf("ChooseImageCount(min=%d, max=%d) = %d, want %d", tt.min, tt.max, got, tt.want)
		}
		if got < tt.min || (tt.max > 0 && got > tt.max) {
			t.Errorf("ChooseImageCount(min=%d, max=%d) = %d out of range", tt.min, tt.max, got)
		}
	}
}

func TestVertexLayoutOf(t *testing.T) {
	layout := VertexLayoutOf()

	if layout.Stride != 20 {
		t.Errorf("Stride = %d, want 20", layout.Stride)
	}
	want := []VertexAttribute{
		{Location: 0, Components: 2, Offset: 0},
		{Location: 1, Components: 3, Offset: 8},
	}
	if !reflect.DeepEqual(layout.Attributes, want) {
		t.Errorf("Attributes = %+v, want %+v", layout.Attributes, want)
	}
}
