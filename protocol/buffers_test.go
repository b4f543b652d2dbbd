package protocol

import (
	"strings"
	"testing"
)

func TestFifoBuffer(t *testing.T) {
	fifo := NewFifoBuffer(10)

	if !fifo.IsEmpty() {
		t.Error("New FIFO should be empty")
	}

	// Write some data
	written := fifo.Write([]byte("c s 5"))
	if written != 5 {
		t.Errorf("Expected to write 5 bytes, wrote %d", written)
	}
	if fifo.Available() != 5 {
		t.Errorf("Expected 5 bytes available, got %d", fifo.Available())
	}

	// Read some data
	readBuf := make([]byte, 3)
	if read := fifo.Read(readBuf); read != 3 || string(readBuf) != "c s" {
		t.Errorf("Read mismatch: %d %q", read, readBuf)
	}

	b, ok := fifo.Pop()
	if !ok || b != ' ' {
		t.Errorf("Pop mismatch: %q %v", b, ok)
	}
	if fifo.Available() != 1 || fifo.Free() != 8 {
		t.Errorf("Expected 1 available / 8 free, got %d / %d", fifo.Available(), fifo.Free())
	}

	// Full buffer drops the excess
	fifo.Reset()
	written = fifo.Write(make([]byte, 12))
	if written != 9 { // Buffer size is 10, can only store 9 (one slot reserved)
		t.Errorf("Expected to write 9 bytes to size-10 FIFO, wrote %d", written)
	}

	fifo.Reset()
	if _, ok := fifo.Pop(); ok {
		t.Error("Pop on empty FIFO should fail")
	}
}

func TestFifoBufferWrapAround(t *testing.T) {
	fifo := NewFifoBuffer(5)

	fifo.Write([]byte{1, 2, 3, 4})
	fifo.Read(make([]byte, 2))

	// Write more (will wrap around)
	if written := fifo.Write([]byte{5, 6}); written != 2 {
		t.Errorf("Expected to write 2 bytes, wrote %d", written)
	}

	allData := make([]byte, 4)
	if read := fifo.Read(allData); read != 4 {
		t.Errorf("Expected to read 4 bytes, read %d", read)
	}
	if allData[0] != 3 || allData[1] != 4 || allData[2] != 5 || allData[3] != 6 {
		t.Errorf("Wrap-around data mismatch: got %v", allData)
	}
}

func feedString(l *LineBuffer, s string) (lines []string, overflows int) {
	for i := 0; i < len(s); i++ {
		line, ok, overflow := l.Feed(s[i])
		if ok {
			lines = append(lines, line)
		}
		if overflow {
			overflows++
		}
	}
	return lines, overflows
}

func TestLineBufferTerminators(t *testing.T) {
	var l LineBuffer

	lines, overflows := feedString(&l, "r\nc s 50\r\n\n\rs\r")
	if overflows != 0 {
		t.Errorf("Unexpected overflow")
	}
	want := []string{"r", "c s 50", "s"}
	if strings.Join(lines, "|") != strings.Join(want, "|") {
		t.Errorf("Expected lines %v, got %v", want, lines)
	}

	// Partial line stays buffered
	feedString(&l, "c q")
	if l.Len() != 3 {
		t.Errorf("Expected 3 buffered bytes, got %d", l.Len())
	}
	l.Reset()
	if l.Len() != 0 {
		t.Error("Reset did not clear partial line")
	}
}

func TestLineBufferOverflow(t *testing.T) {
	var l LineBuffer

	// Exactly CommandMax bytes is still a valid line
	lines, overflows := feedString(&l, strings.Repeat("a", CommandMax)+"\n")
	if overflows != 0 || len(lines) != 1 || len(lines[0]) != CommandMax {
		t.Fatalf("Max-length line rejected: lines=%d overflows=%d", len(lines), overflows)
	}

	// One more byte drops the whole line, including its tail
	lines, overflows = feedString(&l, strings.Repeat("x", CommandMax)+"r r r")
	if overflows != 1 {
		t.Errorf("Expected a single overflow report, got %d", overflows)
	}
	if l.Dropped() != CommandMax+5 {
		t.Errorf("Expected %d dropped bytes, got %d", CommandMax+5, l.Dropped())
	}
	lines2, _ := feedString(&l, "\ns\n")
	lines = append(lines, lines2...)
	if len(lines) != 1 || lines[0] != "s" {
		t.Errorf("Expected only the line after the overflow, got %v", lines)
	}
}
