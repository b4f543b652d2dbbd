package wavegen

import (
	"sync/atomic"

	"boxfill/core"
)

// SchedulerTimer is a SampleTimer on the core timer scheduler.
// Each expiry calls tick and re-arms one period after the previous wake time,
// so the sample rate does not drift with dispatch latency.
type SchedulerTimer struct {
	t       core.Timer
	period  uint32
	tick    func()
	running bool
}

// Start arms the timer one period from now
func (s *SchedulerTimer) Start(period uint32, tick func()) {
	s.Stop()
	atomic.StoreUint32(&s.period, period)
	s.tick = tick
	s.t.Handler = s.fire
	s.t.WakeTime = core.GetTime() + period
	s.running = true
	core.ScheduleTimer(&s.t)
}

// Stop removes the timer from the schedule
func (s *SchedulerTimer) Stop() {
	if !s.running {
		return
	}
	s.running = false
	core.CancelTimer(&s.t)
}

// SetPeriod takes effect from the next expiry
func (s *SchedulerTimer) SetPeriod(period uint32) {
	atomic.StoreUint32(&s.period, period)
}

func (s *SchedulerTimer) fire(t *core.Timer) uint8 {
	if !s.running {
		return core.SF_DONE
	}
	s.tick()
	t.WakeTime += atomic.LoadUint32(&s.period)
	return core.SF_RESCHEDULE
}
