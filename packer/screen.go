package packer

import "boxfill/core"

// screen keeps a copy of both display rows and only sends rows that changed,
// so the loop can redraw every iteration without flooding the bus.
type screen struct {
	dev   core.Display
	lines [core.LCDRows]string
	valid [core.LCDRows]bool
}

func newScreen(dev core.Display) *screen {
	return &screen{dev: dev}
}

// line shows text on row, padded or cut to the display width
func (s *screen) line(row uint8, text string) {
	text = core.FitWidth(text, core.LCDColumns)
	if s.valid[row] && s.lines[row] == text {
		return
	}

	if err := s.dev.MoveCursor(0, row); err != nil {
		core.DebugPrintln("packer: lcd cursor: " + err.Error())
		return
	}
	if err := s.dev.Write(text); err != nil {
		core.DebugPrintln("packer: lcd write: " + err.Error())
		s.valid[row] = false
		return
	}
	s.lines[row] = text
	s.valid[row] = true
}

// clear blanks the display
func (s *screen) clear() {
	if err := s.dev.Clear(); err != nil {
		core.DebugPrintln("packer: lcd clear: " + err.Error())
		s.valid = [core.LCDRows]bool{}
		return
	}
	blank := core.FitWidth("", core.LCDColumns)
	for i := range s.lines {
		s.lines[i] = blank
		s.valid[i] = true
	}
}

// snapshot returns the rows as last written
func (s *screen) snapshot() [core.LCDRows]string {
	return s.lines
}
