package model

import (
	"github.com/soocke/histoedit-go/domain/highlight"
	"github.com/soocke/histoedit-go/domain/pixels"
)

// SettingsModel holds the highlight inputs that live outside the selector:
// the channel mask and the brightness lift.
type SettingsModel struct {
	channels          highlight.ChannelMask
	brightness        float64
	defaultBrightness float64
}

// NewSettingsModel returns all channels enabled at the given default
// brightness.
func NewSettingsModel(brightness float64) *SettingsModel {
	m := &SettingsModel{}
	m.SetDefaultBrightness(brightness)
	m.Reset()
	return m
}

// SetDefaultBrightness changes the brightness Reset restores.
func (m *SettingsModel) SetDefaultBrightness(v float64) { m.defaultBrightness = clampUnit(v) }

// Reset enables every channel and restores the default brightness.
func (m *SettingsModel) Reset() {
	m.channels = highlight.AllChannels
	m.brightness = m.defaultBrightness
}

func (m *SettingsModel) Channels() highlight.ChannelMask { return m.channels }

func (m *SettingsModel) Brightness() float64 { return m.brightness }

// SetChannel toggles one channel and reports whether the mask changed.
func (m *SettingsModel) SetChannel(c pixels.Channel, on bool) bool {
	next := m.channels.With(c, on)
	if next == m.channels {
		return false
	}
	m.channels = next
	return true
}

// SetBrightness stores v clamped to [0,1] and reports whether it changed.
func (m *SettingsModel) SetBrightness(v float64) bool {
	v = clampUnit(v)
	if v == m.brightness {
		return false
	}
	m.brightness = v
	return true
}

func clampUnit(v float64) float64 {
	if v < 0 || v != v {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
