package packer

import "testing"

func TestLotCountersRollOver(t *testing.T) {
	l := LotCounters{Size: 2, Number: 1}

	if l.addBox() {
		t.Error("Expected lot to continue after first box")
	}
	if l.Quantity != 1 || l.Number != 1 {
		t.Errorf("Expected quantity 1 lot 1, got %+v", l)
	}
	if !l.addBox() {
		t.Error("Expected lot done after second box")
	}
	if l.Quantity != 0 || l.Number != 2 {
		t.Errorf("Expected quantity 0 lot 2, got %+v", l)
	}
}

func TestBoxCycle(t *testing.T) {
	r := newRig(t, DefaultSettings())
	r.toReady()
	r.press(&r.start)
	r.expectState(StateRun)

	if r.line(0) != "Waiting box" || r.line(1) != "Lot 01, box 01" {
		t.Fatalf("Expected 'Waiting box' / 'Lot 01, box 01', got %q / %q", r.line(0), r.line(1))
	}

	r.box.Set()
	r.step()
	if r.c.RunState() != RunDetected {
		t.Fatalf("Expected DETECTED, got %s", r.c.RunState())
	}
	r.step()
	if !r.aDrive.IsSet() || !r.bDrive.IsSet() {
		t.Error("Expected A and B clamping")
	}
	r.step()
	if r.c.RunState() != RunLoading {
		t.Fatalf("Expected LOADING once clamped, got %s", r.c.RunState())
	}

	r.step()
	r.step()
	if !r.c.Status().Filling || r.cDrive.IsSet() {
		t.Fatalf("Expected gate open and filling")
	}
	if r.line(0) != "Applying delay" {
		t.Errorf("Expected 'Applying delay', got %q", r.line(0))
	}

	r.run(990)
	if r.c.RunState() != RunLoading {
		t.Fatalf("Expected LOADING before the delay elapsed, got %s", r.c.RunState())
	}
	r.run(10)
	if r.c.RunState() != RunClosing && r.c.RunState() != RunReleasing {
		t.Fatalf("Expected gate closing after the delay, got %s", r.c.RunState())
	}

	if !r.runUntil(100, func() bool { return r.c.Lots().Quantity == 1 }) {
		t.Fatalf("Expected box counted, run state %s", r.c.RunState())
	}
	r.box.Clear()
	if r.c.RunState() != RunWaiting {
		t.Errorf("Expected WAITING after release, got %s", r.c.RunState())
	}
	if r.aDrive.IsSet() || r.bDrive.IsSet() || !r.cDrive.IsSet() {
		t.Error("Expected box released and gate closed")
	}
	if r.line(0) != "Box finished" || r.line(1) != "Lot 01, box 02" {
		t.Errorf("Expected 'Box finished' / 'Lot 01, box 02', got %q / %q", r.line(0), r.line(1))
	}

	r.run(2010)
	if r.line(0) != "Waiting box" {
		t.Errorf("Expected 'Waiting box' after the message, got %q", r.line(0))
	}
}

func TestFullLot(t *testing.T) {
	r := newRig(t, DefaultSettings())
	r.toReady()
	r.press(&r.start)

	r.packBox()
	r.run(2100)
	r.packBox()
	r.run(2100)
	r.packBox()

	if got := r.c.Lots(); got != (LotCounters{Size: 3, Quantity: 0, Number: 2}) {
		t.Fatalf("Expected lot 2 quantity 0, got %+v", got)
	}
	r.expectState(StateReady)

	if r.line(0) != "Box finished" {
		t.Errorf("Expected 'Box finished', got %q", r.line(0))
	}
	r.run(2010)
	if r.line(0) != "Lot finished" {
		t.Errorf("Expected 'Lot finished', got %q", r.line(0))
	}
	r.run(1000)
	if r.line(0) != "Start next lot" {
		t.Errorf("Expected 'Start next lot', got %q", r.line(0))
	}
	r.run(1010)
	if r.line(0) != "Ready press STR" || r.line(1) != "Lot 02, box 01" {
		t.Errorf("Expected 'Ready press STR' / 'Lot 02, box 01', got %q / %q", r.line(0), r.line(1))
	}
}

func TestStartIsEdgeTriggered(t *testing.T) {
	set := DefaultSettings()
	set.LotSize = 1
	r := newRig(t, set)
	r.toReady()

	r.start.Set()
	r.run(100)
	r.expectState(StateRun)

	r.packBox()
	r.expectState(StateReady)

	// START still held from the previous lot
	r.run(5000)
	r.expectState(StateReady)

	r.start.Clear()
	r.run(100)
	r.press(&r.start)
	r.expectState(StateRun)
}

func TestPauseFreezesCycle(t *testing.T) {
	r := newRig(t, DefaultSettings())
	r.toReady()
	r.press(&r.start)
	r.box.Set()
	if !r.runUntil(100, func() bool { return r.c.Status().Filling }) {
		t.Fatalf("Expected filling, run state %s", r.c.RunState())
	}
	r.run(500)

	r.c.TogglePause()
	r.step()
	r.expectState(StatePause)
	if r.line(0) != "System paused.." {
		t.Errorf("Expected 'System paused..', got %q", r.line(0))
	}
	a, b, c := r.aDrive.IsSet(), r.bDrive.IsSet(), r.cDrive.IsSet()

	r.run(3000)
	r.expectState(StatePause)
	if r.aDrive.IsSet() != a || r.bDrive.IsSet() != b || r.cDrive.IsSet() != c {
		t.Error("Expected outputs frozen while paused")
	}
	if r.c.RunState() != RunLoading {
		t.Errorf("Expected LOADING kept while paused, got %s", r.c.RunState())
	}

	r.c.TogglePause()
	r.step()
	r.expectState(StateRun)

	// the remaining half of the delay still applies
	r.run(400)
	if r.c.RunState() != RunLoading {
		t.Fatalf("Expected LOADING after resume, got %s", r.c.RunState())
	}
	r.run(200)
	if r.c.RunState() == RunLoading {
		t.Errorf("Expected delay elapsed after resume")
	}
}

func TestPauseDebounce(t *testing.T) {
	r := newRig(t, DefaultSettings())
	r.toReady()
	r.press(&r.start)

	r.c.TogglePause()
	r.step()
	r.expectState(StatePause)

	// bounce within the pause debounce window
	r.c.TogglePause()
	r.step()
	r.expectState(StatePause)

	r.run(20)
	r.c.TogglePause()
	r.step()
	r.expectState(StateRun)
}

func TestPauseIgnoredOutsideRun(t *testing.T) {
	r := newRig(t, DefaultSettings())
	r.toReady()

	r.c.TogglePause()
	r.run(20)
	r.expectState(StateReady)
}

func TestSensorNeverConfirmsHoldsCycle(t *testing.T) {
	tests := []struct {
		name  string
		reach func(r *rig)
		want  RunState
		check func(r *rig)
	}{
		{
			name: "B never closes",
			reach: func(r *rig) {
				r.physics = false
				r.step()
				r.aOpen.Clear()
				r.aClosed.Set()
			},
			want: RunDetected,
			check: func(r *rig) {
				if !r.aDrive.IsSet() || !r.bDrive.IsSet() {
					r.t.Error("Expected A and B still commanded closed")
				}
			},
		},
		{
			name: "C never opens",
			reach: func(r *rig) {
				if !r.runUntil(100, func() bool { return r.c.RunState() == RunLoading }) {
					r.t.Fatalf("Expected LOADING, got %s", r.c.RunState())
				}
				r.physics = false
			},
			want: RunLoading,
			check: func(r *rig) {
				if r.c.Status().Filling {
					r.t.Error("Expected fill delay not started without gate-open confirmation")
				}
				if r.cDrive.IsSet() {
					r.t.Error("Expected gate still commanded open")
				}
			},
		},
		{
			name: "C never closes",
			reach: func(r *rig) {
				if !r.runUntil(2000, func() bool { return r.c.RunState() == RunClosing }) {
					r.t.Fatalf("Expected CLOSING, got %s", r.c.RunState())
				}
				r.physics = false
			},
			want: RunClosing,
			check: func(r *rig) {
				if !r.cDrive.IsSet() {
					r.t.Error("Expected gate still commanded closed")
				}
				if r.c.Lots().Quantity != 0 {
					r.t.Errorf("Expected no box counted, got %d", r.c.Lots().Quantity)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRig(t, DefaultSettings())
			r.toReady()
			r.press(&r.start)
			r.box.Set()
			tt.reach(r)

			r.run(10000)
			r.expectState(StateRun)
			if got := r.c.RunState(); got != tt.want {
				t.Errorf("Expected %s held, got %s", tt.want, got)
			}
			if got := r.c.Status().Fault; got != FaultNone {
				t.Errorf("Expected no fault, got %s", got)
			}
			tt.check(r)
		})
	}
}
