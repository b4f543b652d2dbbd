package core

// itoa converts an integer to a string without using fmt package
// This is a lightweight alternative for embedded systems
func itoa(n int) string {
	if n < 0 {
		return "-" + utoa(uint32(-n))
	}
	return utoa(uint32(n))
}

// utoa converts an unsigned integer to a string
func utoa(n uint32) string {
	if n == 0 {
		return "0"
	}

	var buf [10]byte
	pos := len(buf)
	for n > 0 {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
	}

	return string(buf[pos:])
}

// Itoa is the exported form of itoa for other firmware packages
func Itoa(n int) string {
	return itoa(n)
}

// Utoa is the exported form of utoa for other firmware packages
func Utoa(n uint32) string {
	return utoa(n)
}

// Pad2 formats n with at least two digits, zero padded ("%02d")
func Pad2(n uint32) string {
	if n < 10 {
		return "0" + utoa(n)
	}
	return utoa(n)
}

// FitWidth pads s with spaces, or truncates it, to exactly width bytes
func FitWidth(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	buf := make([]byte, width)
	n := copy(buf, s)
	for i := n; i < width; i++ {
		buf[i] = ' '
	}
	return string(buf)
}
