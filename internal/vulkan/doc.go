// Package vulkan implements the render backend on top of vkngwrapper.
//
// Every handle is wrapped so it can be released through render.Releaser.
// Results from the driver are checked only through the returned error,
// except for the swap chain calls where VK_ERROR_OUT_OF_DATE_KHR and
// VK_SUBOPTIMAL_KHR are mapped onto render.ErrSwapchainStale.
package vulkan
