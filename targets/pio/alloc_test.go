package pio

import "testing"

func TestAllocateSM(t *testing.T) {
	ResetAllocations()
	defer ResetAllocations()

	for want := uint8(0); want < 4; want++ {
		sm, err := allocateSM(1)
		if err != nil || sm != want {
			t.Fatalf("Expected state machine %d, got %d (%v)", want, sm, err)
		}
	}
	if _, err := allocateSM(1); err != ErrNoStateMachine {
		t.Errorf("Expected ErrNoStateMachine, got %v", err)
	}

	// block 0 is independent
	if sm, err := allocateSM(0); err != nil || sm != 0 {
		t.Errorf("Expected PIO0 SM0, got %d (%v)", sm, err)
	}

	releaseSM(1, 2)
	if sm, err := allocateSM(1); err != nil || sm != 2 {
		t.Errorf("Expected released SM2 reused, got %d (%v)", sm, err)
	}

	if _, err := allocateSM(2); err != ErrBadBlock {
		t.Errorf("Expected ErrBadBlock, got %v", err)
	}

	status := AllocationStatus()
	if !status[0][0] || status[0][1] || !status[1][3] {
		t.Errorf("Unexpected allocation status %v", status)
	}
}
