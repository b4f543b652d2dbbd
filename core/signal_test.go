package core

import "testing"

// mockGPIODriver is a test implementation of GPIODriver
type mockGPIODriver struct {
	pins    map[GPIOPin]bool
	outputs map[GPIOPin]bool
	pullUps map[GPIOPin]bool
}

func newMockGPIODriver() *mockGPIODriver {
	return &mockGPIODriver{
		pins:    make(map[GPIOPin]bool),
		outputs: make(map[GPIOPin]bool),
		pullUps: make(map[GPIOPin]bool),
	}
}

func (m *mockGPIODriver) ConfigureOutput(pin GPIOPin) error {
	m.outputs[pin] = true
	return nil
}

func (m *mockGPIODriver) ConfigureInputPullUp(pin GPIOPin) error {
	m.pullUps[pin] = true
	m.pins[pin] = true // idle high
	return nil
}

func (m *mockGPIODriver) ConfigureInputPullDown(pin GPIOPin) error {
	m.pins[pin] = false
	return nil
}

func (m *mockGPIODriver) SetPin(pin GPIOPin, value bool) error {
	m.pins[pin] = value
	return nil
}

func (m *mockGPIODriver) GetPin(pin GPIOPin) (bool, error) {
	return m.pins[pin], nil
}

func (m *mockGPIODriver) ReadPin(pin GPIOPin) bool {
	return m.pins[pin]
}

func TestActiveLowInput(t *testing.T) {
	d := newMockGPIODriver()
	in, err := NewInputSignal(d, "A_0", 8, true)
	if err != nil {
		t.Fatalf("NewInputSignal failed: %v", err)
	}
	if !d.pullUps[8] {
		t.Error("Expected active-low input to use the pull-up")
	}

	if in.Get() {
		t.Error("Expected idle (high) active-low input to read deasserted")
	}
	d.pins[8] = false
	if !in.Get() {
		t.Error("Expected low active-low input to read asserted")
	}
}

func TestActiveHighOutput(t *testing.T) {
	d := newMockGPIODriver()
	out, err := NewOutputSignal(d, "CYL_A", 19, false)
	if err != nil {
		t.Fatalf("NewOutputSignal failed: %v", err)
	}
	if d.pins[19] || out.IsSet() {
		t.Error("Expected output to start deasserted")
	}

	out.Set()
	if !d.pins[19] || !out.IsSet() {
		t.Error("Expected Set to drive the pin high")
	}
	out.Clear()
	if d.pins[19] || out.IsSet() {
		t.Error("Expected Clear to drive the pin low")
	}
}

func TestActiveLowOutput(t *testing.T) {
	d := newMockGPIODriver()
	out, _ := NewOutputSignal(d, "LED", 2, true)
	if !d.pins[2] {
		t.Error("Expected active-low output to idle high")
	}
	out.Set()
	if d.pins[2] {
		t.Error("Expected active-low Set to drive the pin low")
	}
}

func TestLatch(t *testing.T) {
	var l Latch
	if l.Get() {
		t.Error("Expected zero Latch to be clear")
	}
	if !l.Toggle() || !l.IsSet() {
		t.Error("Expected Toggle to set the latch")
	}
	l.Put(false)
	if l.Get() {
		t.Error("Expected Put(false) to clear the latch")
	}
}

func TestCursorAddress(t *testing.T) {
	tests := []struct {
		col, row uint8
		want     byte
	}{
		{0, 0, 0x80},
		{5, 0, 0x85},
		{0, 1, 0xC0},
		{15, 1, 0xCF},
		{40, 0, 0x8F}, // column clamped
		{40, 1, 0xCF},
		{3, 7, 0xC3}, // any non-zero row is row 2
	}

	for _, test := range tests {
		if got := CursorAddress(test.col, test.row); got != test.want {
			t.Errorf("CursorAddress(%d, %d) = %#x, expected %#x", test.col, test.row, got, test.want)
		}
	}
}

func TestStringHelpers(t *testing.T) {
	if Pad2(3) != "03" || Pad2(24) != "24" || Pad2(100) != "100" {
		t.Errorf("Pad2 mismatch: %s %s %s", Pad2(3), Pad2(24), Pad2(100))
	}
	if Itoa(-42) != "-42" || Utoa(0) != "0" || Utoa(4294967295) != "4294967295" {
		t.Error("Itoa/Utoa mismatch")
	}
	if got := FitWidth("Waiting box", 16); got != "Waiting box     " {
		t.Errorf("FitWidth pad = %q", got)
	}
	if got := FitWidth("Lot 01, box 01 extra", 16); got != "Lot 01, box 01 e" {
		t.Errorf("FitWidth truncate = %q", got)
	}
}
