package lcd

import (
	"testing"

	"boxfill/core"
)

func TestBufferWriteAndCursor(t *testing.T) {
	b := NewBuffer()

	if got := b.Line(0); got != "                " {
		t.Errorf("Expected blank row 0, got %q", got)
	}

	_ = b.MoveCursor(0, 0)
	_ = b.Write("Password:")
	_ = b.MoveCursor(0, 1)
	_ = b.Write("12  ")

	if got := b.Line(0); got != "Password:       " {
		t.Errorf("Row 0 = %q", got)
	}
	if got := b.Line(1); got != "12              " {
		t.Errorf("Row 1 = %q", got)
	}

	// Overwrite in place
	_ = b.MoveCursor(1, 1)
	_ = b.Write("7")
	if got := b.Line(1); got[:3] != "17 " {
		t.Errorf("Row 1 after overwrite = %q", got)
	}

	// Clamped column writes the last cell
	_ = b.MoveCursor(30, 0)
	_ = b.Write("!")
	if got := b.Line(0); got[15] != '!' {
		t.Errorf("Expected '!' in the last column, got %q", got)
	}
}

func TestBufferClear(t *testing.T) {
	b := NewBuffer()
	_ = b.Write("SYSTEM ERROR")
	_ = b.Clear()

	lines := b.Lines()
	if lines[0] != "                " || lines[1] != "                " {
		t.Errorf("Expected cleared display, got %q", lines)
	}

	_ = b.Write("x")
	if b.Line(0)[0] != 'x' {
		t.Error("Expected Clear to home the cursor")
	}

	_ = b.SendCommand(core.LCDCmdDisplayOn) // ignored
	if b.Writes() != 2 {
		t.Errorf("Expected 2 writes, got %d", b.Writes())
	}
}
