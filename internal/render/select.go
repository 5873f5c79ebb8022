package render

import (
	"log/slog"

	"github.com/cockroachdb/errors"
)

// FindQueueFamilies walks the family table in order and stops as soon as
// both a graphics-capable and a present-capable family are known. Families
// without queues never qualify.
func FindQueueFamilies(families []QueueFamilyProperties, presentSupport func(family int) (bool, error)) (QueueFamilyIndices, error) {
	indices := QueueFamilyIndices{}

	for familyIdx, family := range families {
		if family.QueueCount <= 0 {
			continue
		}

		if family.Graphics {
			indices.GraphicsFamily = new(int)
			*indices.GraphicsFamily = familyIdx
		}

		supported, err := presentSupport(familyIdx)
		if err != nil {
			return indices, err
		}

		if supported {
			indices.PresentFamily = new(int)
			*indices.PresentFamily = familyIdx
		}

		if indices.IsComplete() {
			break
		}
	}

	return indices, nil
}

func HasExtensions(available map[string]struct{}, required []string) bool {
	for _, extension := range required {
		if _, ok := available[extension]; !ok {
			return false
		}
	}
	return true
}

// IsSuitable is the adapter predicate: resolvable queue families, every
// required device extension, and at least one format and present mode.
func IsSuitable(candidate Candidate, required []string) bool {
	return candidate.Indices.IsComplete() &&
		HasExtensions(candidate.Extensions, required) &&
		candidate.Support.Adequate()
}

// Inspect gathers everything IsSuitable looks at for one adapter. Surface
// support is only queried when the required extensions are present.
func Inspect(adapter Adapter, surface Surface, required []string) (Candidate, error) {
	candidate := Candidate{Adapter: adapter}

	var err error
	candidate.Properties, err = adapter.Properties()
	if err != nil {
		return candidate, err
	}

	candidate.Indices, err = FindQueueFamilies(adapter.QueueFamilies(), func(family int) (bool, error) {
		return adapter.PresentSupport(surface, family)
	})
	if err != nil {
		return candidate, err
	}

	candidate.Extensions, err = adapter.Extensions()
	if err != nil {
		return candidate, err
	}

	if HasExtensions(candidate.Extensions, required) {
		candidate.Support, err = adapter.SwapchainSupport(surface)
		if err != nil {
			return candidate, err
		}
	}

	return candidate, nil
}

// SelectDevice returns the first adapter, in enumeration order, that passes
// IsSuitable. Adapters after it are never inspected. An adapter whose
// queries fail is treated as unsuitable; the failure is logged at debug.
func SelectDevice(adapters []Adapter, surface Surface, required []string, logger *slog.Logger) (Candidate, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if len(adapters) == 0 {
		return Candidate{}, errors.Mark(errors.New("failed to find GPUs with Vulkan support"), ErrNoSuitableDevice)
	}

	for i, adapter := range adapters {
		candidate, err := Inspect(adapter, surface, required)
		if err != nil {
			logger.Debug("adapter query failed", "index", i, "err", err)
			continue
		}

		if IsSuitable(candidate, required) {
			return candidate, nil
		}
		logger.Debug("adapter unsuitable",
			"index", i,
			"name", candidate.Properties.Name,
			"queues", candidate.Indices.IsComplete(),
			"extensions", HasExtensions(candidate.Extensions, required),
			"surface", candidate.Support.Adequate())
	}

	return Candidate{}, errors.Mark(errors.Newf("none of %d adapters is suitable", len(adapters)), ErrNoSuitableDevice)
}

// QueueRequests builds one queue creation request per distinct family.
func QueueRequests(indices QueueFamilyIndices) []QueueRequest {
	var requests []QueueRequest
	queuePriority := float32(1.0)
	for _, family := range indices.Unique() {
		requests = append(requests, QueueRequest{
			Family:     family,
			Priorities: []float32{queuePriority},
		})
	}
	return requests
}
