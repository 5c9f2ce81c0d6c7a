package model

import (
	"testing"
	"time"

	"github.com/soocke/histoedit-go/domain/highlight"
	"github.com/soocke/histoedit-go/domain/imageio"
	"github.com/soocke/histoedit-go/domain/pixels"
)

func TestImageModel_Lifecycle(t *testing.T) {
	m := NewImageModel()
	if m.Loaded() || m.Session() != "" || m.Zoom() != 1 {
		t.Fatalf("fresh model should be empty: loaded=%v session=%q zoom=%v", m.Loaded(), m.Session(), m.Zoom())
	}
	buf := pixels.New(2, 1, []uint8{1, 2, 3, 255, 1, 9, 9, 255})
	m.SetZoom(2)
	m.SetImage(buf, imageio.Info{Path: "a.png"}, 3)
	if !m.Loaded() || m.Generation() != 3 || m.Info().Path != "a.png" {
		t.Fatalf("unexpected state after SetImage: gen=%d info=%+v", m.Generation(), m.Info())
	}
	if m.Zoom() != 1 {
		t.Fatalf("new image should reset zoom, got %v", m.Zoom())
	}
	if got := m.Histogram()[pixels.Red][1]; got != 2 {
		t.Fatalf("red bin 1 count=%d want 2", got)
	}
	first := m.Session()
	m.SetImage(buf, imageio.Info{}, 4)
	if m.Session() == first || m.Session() == "" {
		t.Fatalf("each load needs a fresh session id, got %q then %q", first, m.Session())
	}
	m.Clear()
	if m.Loaded() || m.Histogram()[pixels.Red][1] != 0 {
		t.Fatalf("clear left data behind")
	}
}

func TestImageModel_NilSafe(t *testing.T) {
	var m *ImageModel
	m.SetZoom(2)
	m.Clear()
	if m.Loaded() || m.Zoom() != 1 || m.Buffer() != nil {
		t.Fatalf("nil model should read as empty")
	}
}

func TestSettingsModel(t *testing.T) {
	m := NewSettingsModel(1.7)
	if m.Brightness() != 1 || m.Channels() != highlight.AllChannels {
		t.Fatalf("defaults: brightness=%v channels=%+v", m.Brightness(), m.Channels())
	}
	if !m.SetChannel(pixels.Green, false) || m.Channels().Green {
		t.Fatalf("green toggle failed")
	}
	if m.SetChannel(pixels.Green, false) {
		t.Fatalf("repeated toggle should report no change")
	}
	if !m.SetBrightness(0.25) || m.SetBrightness(0.25) {
		t.Fatalf("brightness change detection broken")
	}
	if m.SetBrightness(-3); m.Brightness() != 0 {
		t.Fatalf("negative brightness not clamped: %v", m.Brightness())
	}
}

func TestSettingsModel_ResetRestoresDefaults(t *testing.T) {
	m := NewSettingsModel(0.4)
	m.SetChannel(pixels.Red, false)
	m.SetBrightness(0.9)
	m.Reset()
	if m.Channels() != highlight.AllChannels || m.Brightness() != 0.4 {
		t.Fatalf("reset: channels=%+v brightness=%v", m.Channels(), m.Brightness())
	}
	m.SetDefaultBrightness(2)
	m.Reset()
	if m.Brightness() != 1 {
		t.Fatalf("default brightness not clamped: %v", m.Brightness())
	}
}

func TestTimingModel(t *testing.T) {
	m := NewTimingModel()
	m.OnApplied(10 * time.Millisecond)
	m.OnApplied(30 * time.Millisecond)
	m.OnStale()
	last, mean, applied, stale := m.Values()
	if last != 30*time.Millisecond || mean != 20*time.Millisecond || applied != 2 || stale != 1 {
		t.Fatalf("values last=%v mean=%v applied=%d stale=%d", last, mean, applied, stale)
	}
	m.Reset()
	if _, _, applied, _ := m.Values(); applied != 0 {
		t.Fatalf("reset kept %d", applied)
	}
}
