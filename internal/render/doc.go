// Package render drives a presentation pipeline that draws one fixed
// triangle into a swap chain.
//
// The package is backend neutral. A Backend supplies instances, adapters and
// devices; the Renderer acquires them in dependency order, rebuilds the swap
// chain dependent objects when the surface changes, and tears everything
// down in reverse order. Device selection and swap chain negotiation are
// plain functions over the inspected data so they can be exercised without
// a GPU.
package render
