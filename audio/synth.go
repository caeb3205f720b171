package audio

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"
)

const queueSize = 128

// Synth is a polyphonic subtractive engine implementing Source. NoteOn,
// NoteOff, AllNotesOff and SetParameter run on the control context; Read runs
// on the render context and never blocks, locks or errors.
type Synth struct {
	name       string
	sampleRate float64
	channels   int

	params *Params

	active   sync.Map // note (int) -> *Voice
	activeN  atomic.Int32
	seq      atomic.Uint64
	lastNote atomic.Uint64 // float bits, portamento start pitch

	// released transfers voice ownership control -> render; recycled hands
	// finished voices back. Each is single-producer/single-consumer.
	released  *voiceQueue
	recycled  *voiceQueue
	releasing []*Voice
	scratch   []*Voice

	mod    modBus
	delay  *delayLine
	reverb *reverb
	ps     paramSnapshot
}

// New creates an engine. Sample rate and channel count are fixed for the
// instance's lifetime; this is the only place the engine can fail.
func New(name string, sampleRate, channels int) (*Synth, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate: %d", sampleRate)
	}
	if channels != 1 && channels != 2 {
		return nil, fmt.Errorf("invalid channel count: %d", channels)
	}
	s := &Synth{
		name:       name,
		sampleRate: float64(sampleRate),
		channels:   channels,
		params:     newParams(synthParams),
		released:   newVoiceQueue(queueSize),
		recycled:   newVoiceQueue(queueSize),
		mod:        modBus{sampleRate: float64(sampleRate)},
		delay:      newDelayLine(float64(sampleRate)),
		reverb:     newReverb(),
	}
	s.lastNote.Store(math.Float64bits(60))
	return s, nil
}

func (s *Synth) Name() string { return s.name }

// SetParameter clamps value to the parameter's range; unknown names are
// ignored. Get reports the last value set.
func (s *Synth) SetParameter(name string, value float64) { s.params.Set(name, value) }
func (s *Synth) Set(name string, value float64)          { s.params.Set(name, value) }
func (s *Synth) Get(name string) (float64, bool)         { return s.params.Get(name) }
func (s *Synth) Parameters() []string                    { return s.params.Names() }

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// NoteOn starts or retriggers a note. At the polyphony limit the oldest
// active voice is stolen; if nothing is stealable the note doesn't sound.
func (s *Synth) NoteOn(note, velocity int) {
	note = clampInt(note, 0, 127)
	velocity = clampInt(velocity, 1, 127)

	var ps paramSnapshot
	s.snapshot(&ps)

	if v, ok := s.active.Load(note); ok {
		v.(*Voice).retrigger(velocity, &ps)
		return
	}

	maxVoices := int(ps.voices)
	if int(s.activeN.Load()) >= maxVoices {
		if !s.stealOldest() {
			return
		}
	}

	v := s.recycled.pop()
	if v == nil {
		v = newVoice(s.sampleRate)
	}
	from := math.Float64frombits(s.lastNote.Load())
	v.start(note, velocity, from, s.seq.Add(1), &ps)
	s.active.Store(note, v)
	s.activeN.Add(1)
	s.lastNote.Store(math.Float64bits(float64(note)))
}

// stealOldest moves the active voice with the smallest allocation sequence
// into release and reports whether a voice was freed.
func (s *Synth) stealOldest() bool {
	var victim *Voice
	victimNote := -1
	s.active.Range(func(k, val any) bool {
		v := val.(*Voice)
		if victim == nil || v.seq < victim.seq {
			victim = v
			victimNote = k.(int)
		}
		return true
	})
	if victim == nil {
		return false
	}
	if _, ok := s.active.LoadAndDelete(victimNote); !ok {
		return false
	}
	s.activeN.Add(-1)
	victim.noteOff()
	s.released.push(victim)
	return true
}

// NoteOff moves an active note into release. The voice keeps sounding on the
// render context until its release envelope reaches silence.
func (s *Synth) NoteOff(note int) {
	note = clampInt(note, 0, 127)
	v, ok := s.active.LoadAndDelete(note)
	if !ok {
		return
	}
	s.activeN.Add(-1)
	voice := v.(*Voice)
	voice.noteOff()
	s.released.push(voice)
}

// AllNotesOff releases every active note. Voices fade out through their
// release envelopes; there is no hard cut.
func (s *Synth) AllNotesOff() {
	s.active.Range(func(k, _ any) bool {
		s.NoteOff(k.(int))
		return true
	})
}

// Read fills count interleaved samples starting at offset. It always writes
// exactly count samples; with no voices the buffer is silence.
func (s *Synth) Read(buf []float32, offset, count int) int {
	out := buf[offset : offset+count]
	frames := count / s.channels

	s.snapshot(&s.ps)

	// take ownership of newly released voices; only this context mutates
	// the releasing list from here on
	for v := s.released.pop(); v != nil; v = s.released.pop() {
		s.releasing = append(s.releasing, v)
	}

	s.scratch = s.scratch[:0]
	s.active.Range(func(_, v any) bool {
		s.scratch = append(s.scratch, v.(*Voice))
		return true
	})

	for _, v := range s.scratch {
		v.prepare(&s.ps)
	}
	for _, v := range s.releasing {
		v.prepare(&s.ps)
	}

	panL, panR := equalPowerPan(s.ps.pan)

	for f := 0; f < frames; f++ {
		frame := s.mod.step(&s.ps)

		var l, r float64
		for _, v := range s.scratch {
			a, b := v.process(frame)
			l += a
			r += b
		}
		for i := 0; i < len(s.releasing); {
			v := s.releasing[i]
			if v.finished() {
				last := len(s.releasing) - 1
				s.releasing[i] = s.releasing[last]
				s.releasing[last] = nil
				s.releasing = s.releasing[:last]
				s.recycled.tryPush(v)
				continue
			}
			a, b := v.process(frame)
			l += a
			r += b
			i++
		}

		l, r = s.delay.process(l, r, s.ps.delayTime, s.ps.delayFeedback, s.ps.delayMix)
		if s.ps.reverbMix > 0 {
			wet := s.reverb.process((l+r)*0.5, s.ps.reverbSize, s.ps.reverbDamp)
			l = l*(1-s.ps.reverbMix) + wet*s.ps.reverbMix
			r = r*(1-s.ps.reverbMix) + wet*s.ps.reverbMix
		}

		l = softClip(l * panL * s.ps.level)
		r = softClip(r * panR * s.ps.level)

		if s.channels == 1 {
			out[f] = float32((l + r) * 0.5)
		} else {
			out[2*f] = float32(l)
			out[2*f+1] = float32(r)
		}
	}
	return count
}

// ActiveVoices reports the number of voices counted as active (not releasing).
func (s *Synth) ActiveVoices() int { return int(s.activeN.Load()) }

// paramSnapshot holds one coherent copy of the parameter table, loaded once
// per Read so every sample in a buffer sees the same configuration.
type paramSnapshot struct {
	osc1Wave, osc1Octave, osc1Semi, osc1Fine, osc1Level, osc1PW float64
	osc2Wave, osc2Octave, osc2Semi, osc2Fine, osc2Level, osc2PW float64
	subLevel, noiseLevel                                        float64
	unisonVoices, unisonDetune, unisonSpread                    float64
	cutoff, resonance, filterEnv, filterTrack, filterDrive      float64
	ampAttack, ampDecay, ampSustain, ampRelease                 float64
	fltAttack, fltDecay, fltSustain, fltRelease                 float64
	lfoRate                                                     float64
	lfoWave                                                     int
	lfoPitch, lfoFilter, lfoAmp, lfoPW                          float64
	vibRate, vibDepth                                           float64
	bend, bendRange                                             float64
	glide                                                       float64
	delayTime, delayFeedback, delayMix                          float64
	reverbSize, reverbDamp, reverbMix                           float64
	pan, level, voices, velocity                                float64
}

func (s *Synth) snapshot(ps *paramSnapshot) {
	p := s.params
	ps.osc1Wave = p.load(pOsc1Wave)
	ps.osc1Octave = p.load(pOsc1Octave)
	ps.osc1Semi = p.load(pOsc1Semi)
	ps.osc1Fine = p.load(pOsc1Fine)
	ps.osc1Level = p.load(pOsc1Level)
	ps.osc1PW = p.load(pOsc1PW)
	ps.osc2Wave = p.load(pOsc2Wave)
	ps.osc2Octave = p.load(pOsc2Octave)
	ps.osc2Semi = p.load(pOsc2Semi)
	ps.osc2Fine = p.load(pOsc2Fine)
	ps.osc2Level = p.load(pOsc2Level)
	ps.osc2PW = p.load(pOsc2PW)
	ps.subLevel = p.load(pSubLevel)
	ps.noiseLevel = p.load(pNoiseLevel)
	ps.unisonVoices = p.load(pUnisonVoices)
	ps.unisonDetune = p.load(pUnisonDetune)
	ps.unisonSpread = p.load(pUnisonSpread)
	ps.cutoff = p.load(pCutoff)
	ps.resonance = p.load(pResonance)
	ps.filterEnv = p.load(pFilterEnv)
	ps.filterTrack = p.load(pFilterTrack)
	ps.filterDrive = p.load(pFilterDrive)
	ps.ampAttack = p.load(pAmpAttack)
	ps.ampDecay = p.load(pAmpDecay)
	ps.ampSustain = p.load(pAmpSustain)
	ps.ampRelease = p.load(pAmpRelease)
	ps.fltAttack = p.load(pFltAttack)
	ps.fltDecay = p.load(pFltDecay)
	ps.fltSustain = p.load(pFltSustain)
	ps.fltRelease = p.load(pFltRelease)
	ps.lfoRate = p.load(pLfoRate)
	ps.lfoWave = int(p.load(pLfoWave))
	ps.lfoPitch = p.load(pLfoPitch)
	ps.lfoFilter = p.load(pLfoFilter)
	ps.lfoAmp = p.load(pLfoAmp)
	ps.lfoPW = p.load(pLfoPW)
	ps.vibRate = p.load(pVibRate)
	ps.vibDepth = p.load(pVibDepth)
	ps.bend = p.load(pBend)
	ps.bendRange = p.load(pBendRange)
	ps.glide = p.load(pGlide)
	ps.delayTime = p.load(pDelayTime)
	ps.delayFeedback = p.load(pDelayFeedback)
	ps.delayMix = p.load(pDelayMix)
	ps.reverbSize = p.load(pReverbSize)
	ps.reverbDamp = p.load(pReverbDamp)
	ps.reverbMix = p.load(pReverbMix)
	ps.pan = p.load(pPan)
	ps.level = p.load(pLevel)
	ps.voices = p.load(pVoices)
	ps.velocity = p.load(pVelocity)
}
