package render

// PreferredSurfaceFormat is used whenever the surface offers it.
var PreferredSurfaceFormat = SurfaceFormat{
	Format:     FormatB8G8R8A8UNorm,
	ColorSpace: ColorSpaceSRGBNonlinear,
}

// ChooseSurfaceFormat returns the preferred format if present and the first
// supported one otherwise. A lone undefined entry means the surface has no
// preference.
func ChooseSurfaceFormat(available []SurfaceFormat) SurfaceFormat {
	if len(available) == 1 && available[0].Format == FormatUndefined {
		return PreferredSurfaceFormat
	}

	for _, format := range available {
		if format == PreferredSurfaceFormat {
			return format
		}
	}

	return available[0]
}

// ChoosePresentMode prefers mailbox, then immediate, then FIFO. The order
// does not depend on the order the surface lists its modes in.
func ChoosePresentMode(available []PresentMode) PresentMode {
	for _, preferred := range []PresentMode{PresentModeMailbox, PresentModeImmediate} {
		for _, mode := range available {
			if mode == preferred {
				return mode
			}
		}
	}

	return PresentModeFIFO
}

// ChooseExtent uses the surface's current extent when it reports one and
// otherwise clamps requested into the supported range per axis.
func ChooseExtent(capabilities Capabilities, requested Extent) Extent {
	if extent, ok := capabilities.DefiniteExtent(); ok {
		return extent
	}

	return Extent{
		Width:  clamp(requested.Width, capabilities.MinImageExtent.Width, capabilities.MaxImageExtent.Width),
		Height: clamp(requested.Height, capabilities.MinImageExtent.Height, capabilities.MaxImageExtent.Height),
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	return v
}

// ChooseImageCount asks for one image more than the minimum, capped by a
// nonzero maximum.
func ChooseImageCount(capabilities Capabilities) int {
	imageCount := capabilities.MinImageCount + 1
	if capabilities.MaxImageCount > 0 && capabilities.MaxImageCount < imageCount {
		imageCount = capabilities.MaxImageCount
	}
	return imageCount
}

// NegotiateSwapchain derives the full swap chain configuration. Images are
// shared concurrently only when graphics and present families differ.
func NegotiateSwapchain(support SwapchainSupport, indices QueueFamilyIndices, requested Extent) SwapchainConfig {
	config := SwapchainConfig{
		Format:      ChooseSurfaceFormat(support.Formats),
		PresentMode: ChoosePresentMode(support.PresentModes),
		Extent:      ChooseExtent(support.Capabilities, requested),
		ImageCount:  ChooseImageCount(support.Capabilities),
		Sharing:     SharingExclusive,
	}

	if !indices.Shared() {
		config.Sharing = SharingConcurrent
		config.QueueFamilies = indices.Unique()
	}

	return config
}
