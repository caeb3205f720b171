package audio

import (
	"math"
	"testing"
)

func TestOscSampleRange(t *testing.T) {
	const dt = 440.0 / testRate
	for wave := waveSine; wave <= wavePulse; wave++ {
		phase := 0.0
		for i := 0; i < 2000; i++ {
			v := oscSample(wave, phase, dt, 0.3)
			// PolyBLEP correction may overshoot slightly at the edges
			if math.Abs(v) > 1.3 {
				t.Fatalf("wave %d sample out of range at phase %v: %v", wave, phase, v)
			}
			phase += dt
			if phase >= 1 {
				phase -= 1
			}
		}
	}
}

func TestPolyBLEPZeroAwayFromEdges(t *testing.T) {
	const dt = 0.01
	for _, phase := range []float64{0.1, 0.3, 0.5, 0.7, 0.9} {
		if got := polyBLEP(phase, dt); got != 0 {
			t.Errorf("correction should be zero at phase %v, got %v", phase, got)
		}
	}
	if got := polyBLEP(0.001, dt); got == 0 {
		t.Error("expected a correction just after the wrap point")
	}
	if got := polyBLEP(0.999, dt); got == 0 {
		t.Error("expected a correction just before the wrap point")
	}
}

func TestSawBandLimiting(t *testing.T) {
	// the corrected saw must not step the full 2.0 at the wrap point
	const dt = 1000.0 / testRate
	phase := 0.0
	prev := oscSample(waveSaw, phase, dt, 0.5)
	maxStep := 0.0
	for i := 0; i < testRate/100; i++ {
		phase += dt
		if phase >= 1 {
			phase -= 1
		}
		v := oscSample(waveSaw, phase, dt, 0.5)
		if step := math.Abs(v - prev); step > maxStep {
			maxStep = step
		}
		prev = v
	}
	if maxStep > 1.5 {
		t.Errorf("saw discontinuity not smoothed: max step %v", maxStep)
	}
}

func TestNoiseIsBipolarAndVaries(t *testing.T) {
	sr := uint32(noiseSeed)
	var pos, neg int
	for i := 0; i < 10000; i++ {
		v := stepNoise(&sr)
		switch v {
		case 1:
			pos++
		case -1:
			neg++
		default:
			t.Fatalf("unexpected noise value: %v", v)
		}
	}
	if pos == 0 || neg == 0 {
		t.Errorf("noise is stuck: %d positive, %d negative", pos, neg)
	}
}

func TestMidiToFreq(t *testing.T) {
	if want, got := 440.0, midiToFreq(69); math.Abs(want-got) > 1e-9 {
		t.Errorf("want %v, got %v", want, got)
	}
	if want, got := 880.0, midiToFreq(81); math.Abs(want-got) > 1e-9 {
		t.Errorf("want %v, got %v", want, got)
	}
	if want, got := 261.625565, midiToFreq(60); math.Abs(want-got) > 1e-5 {
		t.Errorf("want %v, got %v", want, got)
	}
}
