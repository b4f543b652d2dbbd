package wavegen

import "math"

// Table geometry: one waveform period is LUTLen samples of 0..Amplitude
const (
	LUTLen    = 100
	Amplitude = 255
)

var (
	sineLUT     [LUTLen]uint8
	sawtoothLUT [LUTLen]uint8
	triangleLUT [LUTLen]uint8
)

func init() {
	for i := 0; i < LUTLen; i++ {
		f := float64(i) / LUTLen

		sineLUT[i] = uint8((0.5 + 0.5*math.Sin(2*math.Pi*f)) * Amplitude)
		sawtoothLUT[i] = uint8(f * Amplitude)
		if f < 0.5 {
			triangleLUT[i] = uint8(Amplitude * f * 2)
		} else {
			triangleLUT[i] = uint8(Amplitude * (1 - f) * 2)
		}
	}
}

// Sample returns the output level of wave at table position pos.
// Square has no table: low for the first half of the period, high for the second.
func Sample(wave WaveType, pos uint32) uint8 {
	if pos >= LUTLen {
		pos %= LUTLen
	}
	switch wave {
	case Sine:
		return sineLUT[pos]
	case Square:
		if pos < LUTLen/2 {
			return 0
		}
		return Amplitude
	case Sawtooth:
		return sawtoothLUT[pos]
	case Triangle:
		return triangleLUT[pos]
	}
	return IdleLevel
}
