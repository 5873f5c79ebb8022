package vulkan

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/ext_debug_utils"
	"github.com/vkngwrapper/extensions/v3/khr_surface"

	"github.com/vkngwrapper/hellotriangle/internal/render"
)

func toExtent(e core1_0.Extent2D) render.Extent {
	return render.Extent{Width: e.Width, Height: e.Height}
}

func fromExtent(e render.Extent) core1_0.Extent2D {
	return core1_0.Extent2D{Width: e.Width, Height: e.Height}
}

// toCurrentExtent maps the 0xFFFFFFFF sentinel of surfaces that let the swap
// chain pick its size. The wrapper widens it to int without sign extension.
func toCurrentExtent(e core1_0.Extent2D) render.Extent {
	if uint32(e.Width) == math.MaxUint32 {
		return render.Extent{Width: render.UndefinedExtent, Height: render.UndefinedExtent}
	}
	return toExtent(e)
}

func toCapabilities(c *khr_surface.SurfaceCapabilities) render.Capabilities {
	return render.Capabilities{
		MinImageCount:  c.MinImageCount,
		MaxImageCount:  c.MaxImageCount,
		CurrentExtent:  toCurrentExtent(c.CurrentExtent),
		MinImageExtent: toExtent(c.MinImageExtent),
		MaxImageExtent: toExtent(c.MaxImageExtent),
	}
}

func toSurfaceFormats(formats []khr_surface.SurfaceFormat) []render.SurfaceFormat {
	out := make([]render.SurfaceFormat, 0, len(formats))
	for _, f := range formats {
		out = append(out, render.SurfaceFormat{
			Format:     render.Format(f.Format),
			ColorSpace: render.ColorSpace(f.ColorSpace),
		})
	}
	return out
}

func toPresentModes(modes []khr_surface.PresentMode) []render.PresentMode {
	out := make([]render.PresentMode, 0, len(modes))
	for _, m := range modes {
		out = append(out, render.PresentMode(m))
	}
	return out
}

// surfaceFormat finds the raw entry matching f. A surface without a
// preference reports a single undefined entry, in which case the standard
// nonlinear sRGB color space is used.
func surfaceFormat(available []khr_surface.SurfaceFormat, f render.SurfaceFormat) khr_surface.SurfaceFormat {
	for _, candidate := range available {
		if render.Format(candidate.Format) == f.Format && render.ColorSpace(candidate.ColorSpace) == f.ColorSpace {
			return candidate
		}
	}

	return khr_surface.SurfaceFormat{
		Format:     core1_0.Format(f.Format),
		ColorSpace: khr_surface.ColorSpaceSRGBNonlinear,
	}
}

func sharingMode(m render.SharingMode) core1_0.SharingMode {
	if m == render.SharingConcurrent {
		return core1_0.SharingModeConcurrent
	}
	return core1_0.SharingModeExclusive
}

func vertexFormat(components int) (core1_0.Format, error) {
	switch components {
	case 1:
		return core1_0.FormatR32SignedFloat, nil
	case 2:
		return core1_0.FormatR32G32SignedFloat, nil
	case 3:
		return core1_0.FormatR32G32B32SignedFloat, nil
	case 4:
		return core1_0.FormatR32G32B32A32SignedFloat, nil
	}
	return core1_0.FormatUndefined, errors.Newf("unsupported vertex attribute width %d", components)
}

func vertexInputState(layout render.VertexLayout) (*core1_0.PipelineVertexInputStateCreateInfo, error) {
	state := &core1_0.PipelineVertexInputStateCreateInfo{
		VertexBindingDescriptions: []core1_0.VertexInputBindingDescription{
			{
				Binding:   layout.Binding,
				Stride:    layout.Stride,
				InputRate: core1_0.VertexInputRateVertex,
			},
		},
	}

	for _, attr := range layout.Attributes {
		format, err := vertexFormat(attr.Components)
		if err != nil {
			return nil, err
		}
		state.VertexAttributeDescriptions = append(state.VertexAttributeDescriptions, core1_0.VertexInputAttributeDescription{
			Binding:  layout.Binding,
			Location: uint32(attr.Location),
			Format:   format,
			Offset:   attr.Offset,
		})
	}

	return state, nil
}

func toSeverity(severity ext_debug_utils.DebugUtilsMessageSeverityFlags) render.Severity {
	switch {
	case severity&ext_debug_utils.SeverityError != 0:
		return render.SeverityError
	case severity&ext_debug_utils.SeverityWarning != 0:
		return render.SeverityWarning
	case severity&ext_debug_utils.SeverityInfo != 0:
		return render.SeverityInfo
	}
	return render.SeverityVerbose
}
