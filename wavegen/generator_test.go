package wavegen

import (
	"testing"

	"boxfill/core"
)

type recordOutput struct {
	samples []uint8
}

func (r *recordOutput) WriteSample(v uint8) { r.samples = append(r.samples, v) }

func (r *recordOutput) last() uint8 { return r.samples[len(r.samples)-1] }

// manualTimer records what the generator asks of its timer; tests drive Tick directly
type manualTimer struct {
	running bool
	period  uint32
	starts  int
}

func (m *manualTimer) Start(period uint32, tick func()) {
	m.running = true
	m.period = period
	m.starts++
}

func (m *manualTimer) Stop() { m.running = false }

func (m *manualTimer) SetPeriod(period uint32) { m.period = period }

func TestLookupTables(t *testing.T) {
	tests := []struct {
		wave WaveType
		pos  uint32
		want uint8
	}{
		{Sine, 0, 127},
		{Sine, 1, 135},
		{Sine, 25, 255},
		{Sine, 50, 127},
		{Sine, 75, 0},
		{Sawtooth, 0, 0},
		{Sawtooth, 50, 127},
		{Sawtooth, 99, 252},
		{Triangle, 0, 0},
		{Triangle, 25, 127},
		{Triangle, 50, 255},
		{Triangle, 99, 5},
		{Square, 0, 0},
		{Square, 49, 0},
		{Square, 50, 255},
		{Square, 99, 255},
	}

	for _, tt := range tests {
		if got := Sample(tt.wave, tt.pos); got != tt.want {
			t.Errorf("Sample(%s, %d) = %d, want %d", tt.wave, tt.pos, got, tt.want)
		}
	}
}

func TestParseWaveType(t *testing.T) {
	for _, c := range []byte("sqwt") {
		w, err := ParseWaveType(c)
		if err != nil || byte(w) != c {
			t.Errorf("ParseWaveType(%q) = %v, %v", c, w, err)
		}
	}
	if _, err := ParseWaveType('x'); err != ErrBadWave {
		t.Errorf("Expected ErrBadWave, got %v", err)
	}
}

func TestGeneratorDefaults(t *testing.T) {
	out := &recordOutput{}
	g := New(out, &manualTimer{})

	if g.Wave() != Sawtooth || g.Frequency() != 10 || g.State() != Stop {
		t.Errorf("Expected SAWTOOTH 10 Hz STOP, got %s %d %s", g.Wave(), g.Frequency(), g.State())
	}
	if out.last() != IdleLevel {
		t.Errorf("Expected idle level %d, got %d", IdleLevel, out.last())
	}
}

func TestTickWrapsPosition(t *testing.T) {
	out := &recordOutput{}
	g := New(out, &manualTimer{})
	g.Configure(Sawtooth, 10)

	for i := 0; i < 3*LUTLen+7; i++ {
		g.Tick()
		if p := g.Position(); p >= LUTLen {
			t.Fatalf("Position %d out of range after %d ticks", p, i+1)
		}
	}
	if g.Position() != 7 {
		t.Errorf("Expected position 7, got %d", g.Position())
	}
	// first sample of the fourth period
	if got := out.samples[1+3*LUTLen]; got != 0 {
		t.Errorf("Expected sawtooth restart at 0, got %d", got)
	}
}

func TestWaveChangeRestartsTable(t *testing.T) {
	out := &recordOutput{}
	g := New(out, &manualTimer{})

	for i := 0; i < 42; i++ {
		g.Tick()
	}
	g.SetWave(Sine)
	if g.Position() != 0 {
		t.Fatalf("Expected position 0 after wave change, got %d", g.Position())
	}
	g.Tick()
	if out.last() != Sample(Sine, 0) {
		t.Errorf("Expected first sine sample %d, got %d", Sample(Sine, 0), out.last())
	}
}

func TestFrequencyChange(t *testing.T) {
	timer := &manualTimer{}
	g := New(&recordOutput{}, timer)

	g.SetFrequency(50)
	if timer.period != 200 {
		t.Errorf("Expected period 200 ticks at 50 Hz, got %d", timer.period)
	}
	// 100 samples of 200 us is one 20 ms cycle
	if LUTLen*timer.period != core.TimerFromMS(20) {
		t.Errorf("Expected a 20 ms cycle, got %d ticks", LUTLen*timer.period)
	}

	g.SetFrequency(500)
	if g.Frequency() != MaxFrequency || timer.period != 100 {
		t.Errorf("Expected clamp to 100 Hz / 100 ticks, got %d Hz / %d", g.Frequency(), timer.period)
	}
	g.SetFrequency(1)
	if g.Frequency() != MinFrequency || timer.period != 1000 {
		t.Errorf("Expected clamp to 10 Hz / 1000 ticks, got %d Hz / %d", g.Frequency(), timer.period)
	}
}

func TestRunStop(t *testing.T) {
	out := &recordOutput{}
	timer := &manualTimer{}
	g := New(out, timer)

	g.Run()
	g.Run()
	if !timer.running || timer.starts != 1 {
		t.Errorf("Expected timer started once, got running=%v starts=%d", timer.running, timer.starts)
	}
	if timer.period != PeriodFor(DefaultFrequency) {
		t.Errorf("Expected period %d, got %d", PeriodFor(DefaultFrequency), timer.period)
	}

	g.Tick()
	g.Stop()
	if timer.running || g.State() != Stop {
		t.Error("Expected timer stopped")
	}
	if out.last() != IdleLevel {
		t.Errorf("Expected idle level after stop, got %d", out.last())
	}
}

func TestSchedulerTimer(t *testing.T) {
	core.ResetTimers()
	core.SetTime(1000)
	defer core.ResetTimers()

	var ticks int
	var st SchedulerTimer
	st.Start(100, func() { ticks++ })

	core.SetTime(1050)
	core.ProcessTimers()
	if ticks != 0 {
		t.Fatalf("Expected no tick before the period, got %d", ticks)
	}

	core.SetTime(1100)
	core.ProcessTimers()
	if ticks != 1 {
		t.Fatalf("Expected 1 tick, got %d", ticks)
	}

	// late dispatch catches up on missed periods
	core.SetTime(1450)
	core.ProcessTimers()
	if ticks != 4 {
		t.Fatalf("Expected 4 ticks, got %d", ticks)
	}

	st.SetPeriod(200)
	core.SetTime(1500)
	core.ProcessTimers()
	if ticks != 5 {
		t.Fatalf("Expected 5 ticks, got %d", ticks)
	}
	core.SetTime(1650)
	core.ProcessTimers()
	if ticks != 5 {
		t.Fatalf("Expected new period to apply, got %d ticks", ticks)
	}

	st.Stop()
	core.SetTime(5000)
	core.ProcessTimers()
	if ticks != 5 {
		t.Errorf("Expected no ticks after stop, got %d", ticks)
	}
}
