package audio

import (
	"math"
	"testing"
)

func TestModFrameRanges(t *testing.T) {
	m := modBus{sampleRate: testRate}
	ps := paramSnapshot{
		lfoRate:  5,
		lfoWave:  lfoSine,
		lfoPitch: 2,
		lfoAmp:   1,
		vibRate:  6,
		vibDepth: 0.5,
	}
	for i := 0; i < testRate; i++ {
		f := m.step(&ps)
		if f.Lfo < -1 || f.Lfo > 1 {
			t.Fatalf("lfo out of range: %v", f.Lfo)
		}
		if f.Amp < 0 || f.Amp > 1 {
			t.Fatalf("amp multiplier out of range: %v", f.Amp)
		}
		if math.Abs(f.Pitch) > 2.5 {
			t.Fatalf("pitch offset beyond depth+vibrato: %v", f.Pitch)
		}
	}
}

func TestModFrameZeroDepths(t *testing.T) {
	m := modBus{sampleRate: testRate}
	ps := paramSnapshot{lfoRate: 5, lfoWave: lfoTriangle, vibRate: 6}
	for i := 0; i < 1000; i++ {
		f := m.step(&ps)
		if f.Pitch != 0 || f.Filter != 0 || f.PW != 0 {
			t.Fatalf("depths are zero but frame modulates: %+v", f)
		}
		if f.Amp != 1 {
			t.Fatalf("amp should be unity with zero depth, got %v", f.Amp)
		}
	}
}

func TestLfoWaveforms(t *testing.T) {
	for _, wave := range []int{lfoSine, lfoTriangle, lfoSquare, lfoSaw} {
		m := modBus{sampleRate: testRate}
		ps := paramSnapshot{lfoRate: 2, lfoWave: wave}
		var lo, hi float64
		for i := 0; i < testRate; i++ {
			f := m.step(&ps)
			lo = math.Min(lo, f.Lfo)
			hi = math.Max(hi, f.Lfo)
		}
		if lo > -0.9 || hi < 0.9 {
			t.Errorf("wave %d does not span its bipolar range: [%v, %v]", wave, lo, hi)
		}
	}
}
