// Package wavegen is a lookup-table function generator: a periodic timer
// replays one of four waveforms to an 8-bit DAC, configured over a serial console.
package wavegen

import (
	"errors"
	"sync/atomic"

	"boxfill/core"
)

// WaveType selects the emitted waveform. Values are the console letters.
type WaveType uint8

const (
	Sine     WaveType = 's'
	Square   WaveType = 'q'
	Sawtooth WaveType = 'w'
	Triangle WaveType = 't'
)

func (w WaveType) String() string {
	switch w {
	case Sine:
		return "SINE"
	case Square:
		return "SQUARE"
	case Sawtooth:
		return "SAWTOOTH"
	case Triangle:
		return "TRIANGLE"
	default:
		return "UNKNOWN"
	}
}

// ErrBadWave is returned for a letter that names no waveform
var ErrBadWave = errors.New("wavegen: unknown wave type")

// ParseWaveType maps a console letter to a waveform
func ParseWaveType(c byte) (WaveType, error) {
	switch w := WaveType(c); w {
	case Sine, Square, Sawtooth, Triangle:
		return w, nil
	}
	return 0, ErrBadWave
}

// MajorState is whether samples are being emitted
type MajorState uint8

const (
	Stop MajorState = iota
	Run
)

func (s MajorState) String() string {
	if s == Run {
		return "RUN"
	}
	return "STOP"
}

// Generator limits and defaults
const (
	MinFrequency     = 10  // Hz
	MaxFrequency     = 100 // Hz
	DefaultFrequency = 10
	DefaultWave      = Sawtooth
	IdleLevel        = 127 // DAC mid-scale while stopped
)

// SampleOutput receives one sample per timer tick
type SampleOutput interface {
	WriteSample(v uint8)
}

// SampleTimer calls tick every period timer ticks until stopped
type SampleTimer interface {
	Start(period uint32, tick func())
	Stop()
	SetPeriod(period uint32)
}

// PeriodFor returns the tick interval that plays one full table at hz
func PeriodFor(hz uint32) uint32 {
	return core.TimerFreq / (hz * LUTLen)
}

// ClampFrequency rounds an out-of-range frequency to the nearest bound
func ClampFrequency(hz uint32) uint32 {
	if hz < MinFrequency {
		return MinFrequency
	}
	if hz > MaxFrequency {
		return MaxFrequency
	}
	return hz
}

// Generator holds the waveform state shared between the sample tick and the console.
// Fields are single words read atomically by Tick; multi-field changes happen
// inside core.Critical.
type Generator struct {
	out   SampleOutput
	timer SampleTimer

	wave  uint32
	freq  uint32
	pos   uint32
	state uint32
}

// New returns a stopped generator with the default wave and frequency,
// its output parked at IdleLevel.
func New(out SampleOutput, timer SampleTimer) *Generator {
	g := &Generator{
		out:   out,
		timer: timer,
		wave:  uint32(DefaultWave),
		freq:  DefaultFrequency,
	}
	out.WriteSample(IdleLevel)
	return g
}

// Tick emits the current sample and advances the table position.
// Called from the sample timer.
func (g *Generator) Tick() {
	pos := atomic.LoadUint32(&g.pos)
	if pos >= LUTLen {
		pos = 0
	}
	g.out.WriteSample(Sample(WaveType(atomic.LoadUint32(&g.wave)), pos))

	pos++
	if pos >= LUTLen {
		pos = 0
	}
	atomic.StoreUint32(&g.pos, pos)
}

// Configure switches waveform and frequency together. The frequency is
// clamped to the supported range; the table restarts at position 0.
func (g *Generator) Configure(wave WaveType, hz uint32) {
	hz = ClampFrequency(hz)
	period := PeriodFor(hz)

	core.Critical(func() {
		atomic.StoreUint32(&g.wave, uint32(wave))
		atomic.StoreUint32(&g.pos, 0)
		atomic.StoreUint32(&g.freq, hz)
		g.timer.SetPeriod(period)
	})
	core.RecordEvent(core.EvtWaveConfig, uint8(wave), core.GetTime(), hz, period)
}

// SetWave switches waveform, restarting the table at position 0
func (g *Generator) SetWave(wave WaveType) {
	g.Configure(wave, g.Frequency())
}

// SetFrequency changes the frequency, clamped to the supported range
func (g *Generator) SetFrequency(hz uint32) {
	hz = ClampFrequency(hz)
	period := PeriodFor(hz)

	core.Critical(func() {
		atomic.StoreUint32(&g.freq, hz)
		g.timer.SetPeriod(period)
	})
	core.RecordEvent(core.EvtWaveConfig, uint8(g.Wave()), core.GetTime(), hz, period)
}

// Run starts emitting samples. Running again is a no-op.
func (g *Generator) Run() {
	if !atomic.CompareAndSwapUint32(&g.state, uint32(Stop), uint32(Run)) {
		return
	}
	g.timer.Start(PeriodFor(g.Frequency()), g.Tick)
	core.RecordEvent(core.EvtWaveRun, 1, core.GetTime(), g.Frequency(), 0)
}

// Stop halts the timer and parks the output at IdleLevel
func (g *Generator) Stop() {
	if atomic.SwapUint32(&g.state, uint32(Stop)) == uint32(Run) {
		core.RecordEvent(core.EvtWaveRun, 0, core.GetTime(), g.Frequency(), 0)
	}
	g.timer.Stop()
	g.out.WriteSample(IdleLevel)
}

// Wave returns the selected waveform
func (g *Generator) Wave() WaveType { return WaveType(atomic.LoadUint32(&g.wave)) }

// Frequency returns the frequency in Hz
func (g *Generator) Frequency() uint32 { return atomic.LoadUint32(&g.freq) }

// Position returns the next table index to be emitted
func (g *Generator) Position() uint32 { return atomic.LoadUint32(&g.pos) }

// State returns whether the generator is running
func (g *Generator) State() MajorState { return MajorState(atomic.LoadUint32(&g.state)) }

// Period returns the current sample interval in timer ticks
func (g *Generator) Period() uint32 { return PeriodFor(g.Frequency()) }
