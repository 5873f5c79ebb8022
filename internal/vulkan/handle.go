package vulkan

// handle ties a driver object to the call that destroys it.
type handle[T any] struct {
	value   T
	destroy func(T)
}

func newHandle[T any](value T, destroy func(T)) *handle[T] {
	return &handle[T]{value: value, destroy: destroy}
}

func (h *handle[T]) Destroy() {
	h.destroy(h.value)
}

// unwrap recovers the driver object from a render interface value that was
// produced by this package.
func unwrap[T any](v any) T {
	return v.(*handle[T]).value
}
