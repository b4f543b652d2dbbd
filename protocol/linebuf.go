package protocol

// CommandMax is the longest accepted console line, terminator excluded
const CommandMax = 128

// LineBuffer assembles console bytes into lines terminated by '\r' or '\n'.
// A line longer than CommandMax is dropped whole: the buffer resets and
// discards input until the next terminator.
type LineBuffer struct {
	buf        [CommandMax]byte
	n          int
	discarding bool
	dropped    int // bytes thrown away in the current oversize line
}

// Feed appends one byte.
// line/ok carry a completed, non-empty line. overflow is true exactly once
// per oversize line, on the byte that exceeded CommandMax.
func (l *LineBuffer) Feed(b byte) (line string, ok bool, overflow bool) {
	if b == '\n' || b == '\r' {
		if l.discarding {
			l.discarding = false
			l.dropped = 0
			return "", false, false
		}
		if l.n == 0 {
			// Blank line or the second byte of "\r\n"
			return "", false, false
		}
		line = string(l.buf[:l.n])
		l.n = 0
		return line, true, false
	}

	if l.discarding {
		l.dropped++
		return "", false, false
	}

	if l.n == CommandMax {
		l.dropped = l.n + 1
		l.n = 0
		l.discarding = true
		return "", false, true
	}

	l.buf[l.n] = b
	l.n++
	return "", false, false
}

// Len returns the number of buffered bytes of the current line
func (l *LineBuffer) Len() int {
	return l.n
}

// Dropped returns how many bytes of the current oversize line were discarded
func (l *LineBuffer) Dropped() int {
	return l.dropped
}

// Reset discards any partial line
func (l *LineBuffer) Reset() {
	l.n = 0
	l.discarding = false
	l.dropped = 0
}
