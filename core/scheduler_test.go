package core

import "testing"

func TestTimerDispatchOrder(t *testing.T) {
	ResetTimers()
	defer ResetTimers()

	var fired []int
	mk := func(id int, wake uint32) *Timer {
		return &Timer{
			WakeTime: wake,
			Handler: func(*Timer) uint8 {
				fired = append(fired, id)
				return SF_DONE
			},
		}
	}

	ScheduleTimer(mk(3, 300))
	ScheduleTimer(mk(1, 100))
	ScheduleTimer(mk(2, 200))

	SetTime(250)
	ProcessTimers()

	if len(fired) != 2 || fired[0] != 1 || fired[1] != 2 {
		t.Fatalf("Expected timers 1,2 to fire in order, got %v", fired)
	}

	SetTime(300)
	ProcessTimers()
	if len(fired) != 3 || fired[2] != 3 {
		t.Errorf("Expected timer 3 to fire at 300, got %v", fired)
	}
}

func TestTimerReschedule(t *testing.T) {
	ResetTimers()
	defer ResetTimers()

	count := 0
	timer := &Timer{WakeTime: 10}
	timer.Handler = func(tm *Timer) uint8 {
		count++
		tm.WakeTime += 10
		return SF_RESCHEDULE
	}
	ScheduleTimer(timer)

	// One dispatch catches up on every period that has elapsed
	SetTime(55)
	ProcessTimers()
	if count != 5 {
		t.Errorf("Expected 5 firings by t=55, got %d", count)
	}
	if timer.WakeTime != 60 {
		t.Errorf("Expected next wake at 60, got %d", timer.WakeTime)
	}
}

func TestTimerWrap(t *testing.T) {
	ResetTimers()
	defer ResetTimers()

	fired := false
	SetTime(0xFFFFFFF0)
	ScheduleTimer(&Timer{
		WakeTime: 0x10, // 0xFFFFFFF0 + 0x20, wrapped past zero
		Handler: func(*Timer) uint8 {
			fired = true
			return SF_DONE
		},
	})

	SetTime(0xFFFFFFFF)
	ProcessTimers()
	if fired {
		t.Fatal("Timer fired before its wrapped wake time")
	}

	SetTime(0x10)
	ProcessTimers()
	if !fired {
		t.Error("Timer did not fire after counter wrap")
	}
}

func TestCancelTimer(t *testing.T) {
	ResetTimers()
	defer ResetTimers()

	fired := 0
	h := func(*Timer) uint8 { fired++; return SF_DONE }
	a := &Timer{WakeTime: 10, Handler: h}
	b := &Timer{WakeTime: 20, Handler: h}
	ScheduleTimer(a)
	ScheduleTimer(b)

	CancelTimer(b)
	CancelTimer(b) // not queued any more, no-op

	SetTime(100)
	ProcessTimers()
	if fired != 1 {
		t.Errorf("Expected only the uncancelled timer to fire, got %d", fired)
	}
}

func TestTimerConversions(t *testing.T) {
	if got := TimerFromMS(99000); got != 99000000 {
		t.Errorf("TimerFromMS(99000) = %d", got)
	}
	if got := TimerFromUS(200); got != 200 {
		t.Errorf("TimerFromUS(200) = %d", got)
	}
	if got := TimerToMS(TimerFromMS(1500)); got != 1500 {
		t.Errorf("TimerToMS round trip = %d", got)
	}
	if !Elapsed(0xFFFFFF00, 0x100, 0x200) {
		t.Error("Elapsed should handle wrap")
	}
	if Elapsed(1000, 1499, 500) {
		t.Error("Elapsed returned true too early")
	}
}
