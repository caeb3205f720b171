package audio

import "math"

// Oscillator waveforms. Stored as float parameters and truncated on read.
const (
	waveSine = iota
	waveSaw
	waveSquare
	waveTriangle
	wavePulse
	waveNoise
)

const twoPi = 2 * math.Pi

// polyBLEP returns the polynomial band-limited step correction for a phase t
// in [0,1) with phase increment dt. Added at a falling discontinuity and
// subtracted at a rising one.
func polyBLEP(t, dt float64) float64 {
	if t < dt {
		t /= dt
		return t + t - t*t - 1
	}
	if t > 1-dt {
		t = (t - 1) / dt
		return t*t + t + t + 1
	}
	return 0
}

// oscSample evaluates one waveform sample at phase (0..1) with increment dt.
// Saw, square and pulse are PolyBLEP-corrected at their discontinuities.
// Noise is handled by the caller, which owns the shift register.
func oscSample(wave int, phase, dt, pw float64) float64 {
	switch wave {
	case waveSine:
		return math.Sin(twoPi * phase)
	case waveSaw:
		return 2*phase - 1 - polyBLEP(phase, dt)
	case waveSquare:
		v := -1.0
		if phase < 0.5 {
			v = 1
		}
		v += polyBLEP(phase, dt)
		v -= polyBLEP(math.Mod(phase+0.5, 1), dt)
		return v
	case waveTriangle:
		if phase < 0.5 {
			return 4*phase - 1
		}
		return 3 - 4*phase
	case wavePulse:
		v := -1.0
		if phase < pw {
			v = 1
		}
		v += polyBLEP(phase, dt)
		v -= polyBLEP(math.Mod(phase-pw+1, 1), dt)
		return v
	default:
		return 0
	}
}

const (
	noiseSeed = 0x7FFFFF
	noiseMask = 0x7FFFFF
)

// stepNoise advances a 23-bit LFSR (taps 23,18) and returns white noise in [-1,1].
func stepNoise(sr *uint32) float64 {
	bit := ((*sr >> 22) ^ (*sr >> 17)) & 1
	*sr = ((*sr << 1) | bit) & noiseMask
	return float64(*sr&1)*2 - 1
}

// midiToFreq converts a (possibly fractional) MIDI note number to Hz.
func midiToFreq(note float64) float64 {
	return 440 * math.Pow(2, (note-69)/12)
}
