package audio

import "math"

const (
	maxUnison     = 8
	startRampSecs = 0.005
	centerGain    = math.Sqrt2 / 2
)

// Voice owns the DSP state for one sounding note. The voice pool owns the
// struct; the render context calls prepare/process on voices it holds, the
// control path only touches envelope stages and the glide target.
type Voice struct {
	sampleRate float64

	note    int
	gain    float64 // velocity gain
	seq     uint64  // allocation order, for oldest-first stealing
	current float64 // gliding note number
	target  float64

	phases   [maxUnison]float64
	phase2   float64
	subPhase float64
	noiseSR  uint32

	ampEnv  envelope
	filtEnv envelope
	lp      [2]float64 // one-pole low-pass memory per channel

	ramp    float64
	rampInc float64

	// per-buffer cache, rebuilt by prepare
	wave1, wave2   int
	tune1, tune2   float64
	pw1, pw2       float64
	level1, level2 float64
	subLevel       float64
	noiseLevel     float64
	unison         int
	unisonGain     float64
	detune         [maxUnison]float64
	panL, panR     [maxUnison]float64
	glideStep      float64
	bendSemis      float64
	cutoffBase     float64
	track          float64
	envOct         float64
	resBoost       float64
	drive          float64
	maxCutoff      float64
}

func newVoice(sampleRate float64) *Voice {
	return &Voice{
		sampleRate: sampleRate,
		noiseSR:    noiseSeed,
	}
}

func (v *Voice) start(note, velocity int, from float64, seq uint64, ps *paramSnapshot) {
	v.note = note
	v.seq = seq
	v.target = float64(note)
	if ps.glide > 0 {
		v.current = from
	} else {
		v.current = v.target
	}
	vel := float64(velocity) / 127
	v.gain = 1 - ps.velocity + ps.velocity*vel
	v.lp[0] = 0
	v.lp[1] = 0
	v.ramp = 0
	v.rampInc = 1 / (startRampSecs * v.sampleRate)
	v.ampEnv.trigger()
	v.filtEnv.trigger()
}

// retrigger restarts the envelopes of an already-active note, preserving an
// audible level and the filter state so the transition is continuous.
func (v *Voice) retrigger(velocity int, ps *paramSnapshot) {
	vel := float64(velocity) / 127
	v.gain = 1 - ps.velocity + ps.velocity*vel
	v.ampEnv.retrigger()
	v.filtEnv.retrigger()
}

func (v *Voice) noteOff() {
	v.ampEnv.release()
	v.filtEnv.release()
}

func (v *Voice) finished() bool { return v.ampEnv.done() }

// prepare rebuilds the per-buffer cache from a parameter snapshot: envelope
// coefficients, oscillator tuning, unison detune/pan tables and glide rate.
func (v *Voice) prepare(ps *paramSnapshot) {
	sr := v.sampleRate
	v.ampEnv.configure(ps.ampAttack, ps.ampDecay, ps.ampSustain, ps.ampRelease, sr)
	v.filtEnv.configure(ps.fltAttack, ps.fltDecay, ps.fltSustain, ps.fltRelease, sr)

	v.wave1 = int(ps.osc1Wave)
	v.wave2 = int(ps.osc2Wave)
	v.tune1 = math.Pow(2, ps.osc1Octave+ps.osc1Semi/12+ps.osc1Fine/1200)
	v.tune2 = math.Pow(2, ps.osc2Octave+ps.osc2Semi/12+ps.osc2Fine/1200)
	v.pw1 = ps.osc1PW
	v.pw2 = ps.osc2PW
	v.level1 = ps.osc1Level
	v.level2 = ps.osc2Level
	v.subLevel = ps.subLevel
	v.noiseLevel = ps.noiseLevel

	n := int(ps.unisonVoices)
	if n < 1 {
		n = 1
	}
	if n > maxUnison {
		n = maxUnison
	}
	v.unison = n
	v.unisonGain = 1 / math.Sqrt(float64(n))
	for i := 0; i < n; i++ {
		// symmetric offsets in -1..1, scaled by detune cents and pan spread
		off := 0.0
		if n > 1 {
			off = -1 + 2*float64(i)/float64(n-1)
		}
		v.detune[i] = math.Pow(2, off*ps.unisonDetune/1200)
		l, r := equalPowerPan(off * ps.unisonSpread)
		v.panL[i] = l
		v.panR[i] = r
	}

	if ps.glide > 0 {
		// constant glide rate in semitones per second
		v.glideStep = 12 / (ps.glide * sr)
	} else {
		v.glideStep = 0
	}
	v.bendSemis = ps.bend * ps.bendRange
	v.cutoffBase = ps.cutoff
	v.track = ps.filterTrack
	v.envOct = ps.filterEnv
	v.resBoost = ps.resonance
	v.drive = ps.filterDrive
	v.maxCutoff = math.Min(20000, 0.45*sr)
}

// equalPowerPan maps pan in [-1,1] to left/right gains.
func equalPowerPan(p float64) (float64, float64) {
	if p < -1 {
		p = -1
	}
	if p > 1 {
		p = 1
	}
	theta := (p + 1) * math.Pi / 4
	return math.Cos(theta), math.Sin(theta)
}

// process renders one stereo sample. mod is the shared modulation frame for
// this sample; the voice reads it and never writes it.
func (v *Voice) process(mod ModFrame) (float64, float64) {
	if v.glideStep > 0 && v.current != v.target {
		if v.current < v.target {
			v.current += v.glideStep
			if v.current > v.target {
				v.current = v.target
			}
		} else {
			v.current -= v.glideStep
			if v.current < v.target {
				v.current = v.target
			}
		}
	} else if v.glideStep == 0 {
		v.current = v.target
	}

	base := midiToFreq(v.current + v.bendSemis + mod.Pitch)

	var l, r float64
	freq1 := base * v.tune1
	pw1 := clampPW(v.pw1 + mod.PW)
	for i := 0; i < v.unison; i++ {
		dt := freq1 * v.detune[i] / v.sampleRate
		var s float64
		if v.wave1 == waveNoise {
			s = stepNoise(&v.noiseSR)
		} else {
			s = oscSample(v.wave1, v.phases[i], dt, pw1)
			v.phases[i] += dt
			if v.phases[i] >= 1 {
				v.phases[i] -= 1
			}
		}
		l += s * v.panL[i]
		r += s * v.panR[i]
	}
	l *= v.unisonGain * v.level1
	r *= v.unisonGain * v.level1

	if v.level2 > 0 {
		freq2 := base * v.tune2
		dt := freq2 / v.sampleRate
		var s float64
		if v.wave2 == waveNoise {
			s = stepNoise(&v.noiseSR)
		} else {
			s = oscSample(v.wave2, v.phase2, dt, clampPW(v.pw2+mod.PW))
			v.phase2 += dt
			if v.phase2 >= 1 {
				v.phase2 -= 1
			}
		}
		l += s * v.level2 * centerGain
		r += s * v.level2 * centerGain
	}

	if v.subLevel > 0 {
		// sub tracks one octave below the osc1 fundamental
		dt := freq1 / 2 / v.sampleRate
		s := math.Sin(twoPi*v.subPhase) * v.subLevel
		v.subPhase += dt
		if v.subPhase >= 1 {
			v.subPhase -= 1
		}
		l += s * centerGain
		r += s * centerGain
	}

	if v.noiseLevel > 0 {
		s := stepNoise(&v.noiseSR) * v.noiseLevel
		l += s * centerGain
		r += s * centerGain
	}

	fenv := v.filtEnv.next()
	cutoff := v.cutoffBase *
		math.Pow(2, v.track*(v.current-69)/12) *
		math.Pow(2, v.envOct*fenv) *
		math.Pow(2, mod.Filter)
	if cutoff < 20 {
		cutoff = 20
	}
	if cutoff > v.maxCutoff {
		cutoff = v.maxCutoff
	}
	g := 1 - math.Exp(-twoPi*cutoff/v.sampleRate)

	// resonance is a pre-filter gain boost, not a resonant pole
	boost := 1 + 2*v.resBoost
	l = v.filterChannel(0, l*boost, g)
	r = v.filterChannel(1, r*boost, g)

	amp := v.ampEnv.next() * v.gain * mod.Amp
	if v.ramp < 1 {
		v.ramp += v.rampInc
		if v.ramp > 1 {
			v.ramp = 1
		}
	}
	amp *= v.ramp

	return l * amp, r * amp
}

func (v *Voice) filterChannel(ch int, in, g float64) float64 {
	if v.drive > 0 {
		in = math.Tanh(in * (1 + 3*v.drive))
	}
	v.lp[ch] += g * (in - v.lp[ch])
	return v.lp[ch]
}

func clampPW(pw float64) float64 {
	if pw < 0.05 {
		return 0.05
	}
	if pw > 0.95 {
		return 0.95
	}
	return pw
}
