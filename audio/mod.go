package audio

import "math"

// LFO waveforms.
const (
	lfoSine = iota
	lfoTriangle
	lfoSquare
	lfoSaw
)

// ModFrame is the shared modulation value set for a single sample. The
// renderer computes one frame and passes it by value to every voice, so all
// voices see the same LFO for a given sample and none can mutate it.
type ModFrame struct {
	Lfo    float64 // raw bipolar LFO value
	Pitch  float64 // pitch offset in semitones (LFO depth + vibrato)
	Filter float64 // cutoff offset in octaves
	Amp    float64 // amplitude multiplier
	PW     float64 // pulse width offset
}

// modBus owns the one LFO and vibrato phase per synth.
type modBus struct {
	sampleRate float64
	phase      float64
	vibPhase   float64
}

func (m *modBus) step(ps *paramSnapshot) ModFrame {
	m.phase += ps.lfoRate / m.sampleRate
	if m.phase >= 1 {
		m.phase -= 1
	}
	m.vibPhase += ps.vibRate / m.sampleRate
	if m.vibPhase >= 1 {
		m.vibPhase -= 1
	}

	var lfo float64
	switch ps.lfoWave {
	case lfoSine:
		lfo = math.Sin(twoPi * m.phase)
	case lfoTriangle:
		if m.phase < 0.5 {
			lfo = 4*m.phase - 1
		} else {
			lfo = 3 - 4*m.phase
		}
	case lfoSquare:
		if m.phase < 0.5 {
			lfo = 1
		} else {
			lfo = -1
		}
	case lfoSaw:
		lfo = 2*m.phase - 1
	}

	vibrato := math.Sin(twoPi*m.vibPhase) * ps.vibDepth
	return ModFrame{
		Lfo:    lfo,
		Pitch:  lfo*ps.lfoPitch + vibrato,
		Filter: lfo * ps.lfoFilter,
		Amp:    1 - (lfo*0.5+0.5)*ps.lfoAmp,
		PW:     lfo * ps.lfoPW,
	}
}
