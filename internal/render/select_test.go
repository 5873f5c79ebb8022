package render

import (
	"bytes"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
)

var swapchainExtension = []string{"VK_KHR_swapchain"}

func TestFindQueueFamilies(t *testing.T) {
	tests := []struct {
		name         string
		families     []QueueFamilyProperties
		present      map[int]bool
		wantGraphics *int
		wantPresent  *int
		wantChecks   int
	}{
		{
			name:         "single family does both",
			families:     []QueueFamilyProperties{{Graphics: true, QueueCount: 1}, {Graphics: true, QueueCount: 1}},
			present:      map[int]bool{0: true, 1: true},
			wantGraphics: intPtr(0),
			wantPresent:  intPtr(0),
			wantChecks:   1,
		},
		{
			name:         "split families",
			families:     []QueueFamilyProperties{{Graphics: true, QueueCount: 1}, {QueueCount: 1}},
			present:      map[int]bool{1: true},
			wantGraphics: intPtr(0),
			wantPresent:  intPtr(1),
			wantChecks:   2,
		},
		{
			name:         "empty family skipped",
			families:     []QueueFamilyProperties{{Graphics: true, QueueCount: 0}, {Graphics: true, QueueCount: 2}},
			present:      map[int]bool{0: true, 1: true},
			wantGraphics: intPtr(1),
			wantPresent:  intPtr(1),
			wantChecks:   1,
		},
		{
			name:        "no graphics",
			families:    []QueueFamilyProperties{{QueueCount: 1}},
			present:     map[int]bool{0: true},
			wantPresent: intPtr(0),
			wantChecks:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checks := 0
			got, err := FindQueueFamilies(tt.families, func(family int) (bool, error) {
				checks++
				return tt.present[family], nil
			})
			if err != nil {
				t.Fatalf("FindQueueFamilies() error = %v", err)
			}
			if !reflect.DeepEqual(got.GraphicsFamily, tt.wantGraphics) {
				t.Errorf("GraphicsFamily = %v, want %v", deref(got.GraphicsFamily), deref(tt.wantGraphics))
			}
			if !reflect.DeepEqual(got.PresentFamily, tt.wantPresent) {
				t.Errorf("PresentFamily = %v, want %v", deref(got.PresentFamily), deref(tt.wantPresent))
			}
			if checks != tt.wantChecks {
				t.Errorf("present support queried %d times, want %d", checks, tt.wantChecks)
			}
		})
	}
}

func deref(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

func TestSelectDeviceFirstSuitableWins(t *testing.T) {
	log := newFakeLog()
	unsuitable := newFakeAdapter(log, "no-swapchain")
	unsuitable.extensions = map[string]struct{}{}
	first := newFakeAdapter(log, "first")
	second := newFakeAdapter(log, "second")

	got, err := SelectDevice([]Adapter{unsuitable, first, second}, nil, swapchainExtension, nil)
	if err != nil {
		t.Fatalf("SelectDevice() error = %v", err)
	}
	if got.Properties.Name != "first" {
		t.Errorf("selected %q, want %q", got.Properties.Name, "first")
	}
	if second.inspected != 0 {
		t.Errorf("adapter after the selected one was inspected %d times", second.inspected)
	}
	if unsuitable.inspected != 1 {
		t.Errorf("unsuitable adapter inspected %d times, want 1", unsuitable.inspected)
	}
}

func TestSelectDeviceSkipsSurfaceQueryWithoutExtensions(t *testing.T) {
	log := newFakeLog()
	adapter := newFakeAdapter(log, "gpu")
	adapter.extensions = map[string]struct{}{}

	candidate, err := Inspect(adapter, nil, swapchainExtension)
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}
	if candidate.Support.Adequate() {
		t.Error("swap chain support was queried for an adapter without the extension")
	}
	for _, ev := range log.events {
		if ev == "query support" {
			t.Fatal("surface support queried without the swap chain extension")
		}
	}
}

func TestSelectDeviceErrors(t *testing.T) {
	_, err := SelectDevice(nil, nil, swapchainExtension, nil)
	if !errors.Is(err, ErrNoSuitableDevice) {
		t.Errorf("empty adapter list: error = %v, want ErrNoSuitableDevice", err)
	}

	log := newFakeLog()
	noFormats := newFakeAdapter(log, "no-formats")
	noFormats.support.Formats = nil
	noQueues := newFakeAdapter(log, "no-queues")
	noQueues.families = []QueueFamilyProperties{{Graphics: true, QueueCount: 0}}

	_, err = SelectDevice([]Adapter{noFormats, noQueues}, nil, swapchainExtension, nil)
	if !errors.Is(err, ErrNoSuitableDevice) {
		t.Errorf("no suitable adapter: error = %v, want ErrNoSuitableDevice", err)
	}
}

func TestSelectDeviceLogsSkippedAdapters(t *testing.T) {
	log := newFakeLog()
	broken := newFakeAdapter(log, "broken")
	broken.propertiesErr = errors.New("device lost")
	unsuitable := newFakeAdapter(log, "no-swapchain")
	unsuitable.extensions = map[string]struct{}{}

	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := SelectDevice([]Adapter{broken, unsuitable}, nil, swapchainExtension, logger)
	if !errors.Is(err, ErrNoSuitableDevice) {
		t.Fatalf("SelectDevice() error = %v, want ErrNoSuitableDevice", err)
	}

	logged := out.String()
	for _, want := range []string{
		`msg="adapter query failed" index=0 err=`,
		"device lost",
		`msg="adapter unsuitable" index=1 name=no-swapchain`,
	} {
		if !strings.Contains(logged, want) {
			t.Errorf("log missing %q\ngot:\n%s", want, logged)
		}
	}
}

func TestQueueRequests(t *testing.T) {
	shared := QueueFamilyIndices{GraphicsFamily: intPtr(1), PresentFamily: intPtr(1)}
	got := QueueRequests(shared)
	want := []QueueRequest{{Family: 1, Priorities: []float32{1.0}}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("QueueRequests(shared) = %+v, want %+v", got, want)
	}

	split := QueueFamilyIndices{GraphicsFamily: intPtr(0), PresentFamily: intPtr(3)}
	got = QueueRequests(split)
	want = []QueueRequest{
		{Family: 0, Priorities: []float32{1.0}},
		{Family: 3, Priorities: []float32{1.0}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("QueueRequests(split) = %+v, want %+v", got, want)
	}
}
