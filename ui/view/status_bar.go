package view

import (
	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// StatusBar shows the status message and compute timing.
type StatusBar interface {
	SetStatus(text string)
	SetTiming(text string)
}

type statusBar struct {
	statusLbl *LabelWidget
	timingLbl *LabelWidget
}

// NewStatusBar creates the status label at (row, 0) and the timing label
// at (row, 1) of parent.
func NewStatusBar(parent *FrameWidget, row int) StatusBar {
	s := &statusBar{
		statusLbl: parent.Label(Txt("Open an image to begin"), Anchor("w")),
		timingLbl: parent.Label(Txt(""), Anchor("e"), Width(36)),
	}
	Grid(s.statusLbl, Row(row), Column(0), Sticky("we"), Padx("0.4m"))
	Grid(s.timingLbl, Row(row), Column(1), Sticky("e"), Padx("0.4m"))
	return s
}

func (s *statusBar) SetStatus(text string) {
	if s == nil || s.statusLbl == nil {
		return
	}
	s.statusLbl.Configure(Txt(text))
}

func (s *statusBar) SetTiming(text string) {
	if s == nil || s.timingLbl == nil {
		return
	}
	s.timingLbl.Configure(Txt(text))
}
