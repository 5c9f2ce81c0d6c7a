// Package theme configures ttk styles for the viewer in a light and a dark
// variant.
package theme

import (
	tk "modernc.org/tk9.0"
)

// Style names passed to Style(...) by the views.
const (
	StylePrimaryButton = "primary.TButton" // export
	StyleDangerButton  = "danger.TButton"  // exit
	StyleAccentLabel   = "accent.TLabel"   // display zoom
	StyleStateLabel    = "state.TLabel"    // selection state
	StyleReadoutLabel  = "readout.TLabel"  // highlighted pixel count
)

// Palette holds the colors of one variant.
type Palette struct {
	Window  string // root background
	Panel   string
	Text    string
	Action  string // export and other primary actions
	Exit    string
	Zoom    string
	Idle    string // state label background
	Readout string
}

var (
	lightPalette = Palette{
		Window:  "#eef1f4",
		Panel:   "#ffffff",
		Text:    "#20262e",
		Action:  "#3060c0",
		Exit:    "#b83a3a",
		Zoom:    "#3060c0",
		Idle:    "#4a8c6a",
		Readout: "#20262e",
	}
	darkPalette = Palette{
		Window:  "#16191d",
		Panel:   "#22272e",
		Text:    "#e4e8ec",
		Action:  "#5b8de0",
		Exit:    "#d65c5c",
		Zoom:    "#7aa6f0",
		Idle:    "#3f7a5c",
		Readout: "#f0d890",
	}
	dark bool
)

// CurrentPalette returns the active variant.
func CurrentPalette() Palette {
	if dark {
		return darkPalette
	}
	return lightPalette
}

// SetDark selects the variant and restyles every widget. It returns the
// new mode.
func SetDark(on bool) bool {
	dark = on
	apply()
	return dark
}

func apply() {
	p := CurrentPalette()
	if dark {
		_ = tk.ActivateTheme("azure dark")
	} else {
		_ = tk.ActivateTheme("azure light")
	}
	tk.App.Configure(tk.Background(p.Window))

	for name, bg := range map[string]string{StylePrimaryButton: p.Action, StyleDangerButton: p.Exit} {
		tk.StyleConfigure(name, tk.Background(bg), tk.Foreground("white"), tk.Padding("4p 3p"), tk.Relief("ridge"))
	}
	tk.StyleConfigure(StyleAccentLabel, tk.Foreground(p.Zoom), tk.Background(p.Panel), tk.Padding("2p 1p"))
	tk.StyleConfigure(StyleReadoutLabel, tk.Foreground(p.Readout), tk.Font("TkFixedFont"), tk.Padding("2p 1p"))
	tk.StyleConfigure(StyleStateLabel, tk.Foreground("white"), tk.Background(p.Idle), tk.Padding("4p 2p"), tk.Relief("groove"))
}
