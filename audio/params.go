package audio

import (
	"math"
	"sort"
	"strings"
	"sync/atomic"
)

// Params stores the flat, case-insensitive parameter table. The control path
// clamps and stores; the render path does plain atomic loads, so a value may
// be one buffer stale, which is inaudible.
type Params struct {
	index map[string]int
	defs  []paramDef
	vals  []atomic.Uint64
}

type paramDef struct {
	name          string
	min, max, def float64
}

func newParams(defs []paramDef) *Params {
	p := &Params{
		index: make(map[string]int, len(defs)),
		defs:  defs,
		vals:  make([]atomic.Uint64, len(defs)),
	}
	for i, d := range defs {
		p.index[d.name] = i
		p.vals[i].Store(math.Float64bits(d.def))
	}
	return p
}

// Set clamps value to the parameter's range and stores it. Unknown names are
// a no-op: this sits on a hot path and never errors.
func (p *Params) Set(name string, value float64) {
	i, ok := p.index[strings.ToLower(name)]
	if !ok {
		return
	}
	d := p.defs[i]
	if value < d.min {
		value = d.min
	}
	if value > d.max {
		value = d.max
	}
	p.vals[i].Store(math.Float64bits(value))
}

func (p *Params) Get(name string) (float64, bool) {
	i, ok := p.index[strings.ToLower(name)]
	if !ok {
		return 0, false
	}
	return p.load(i), true
}

func (p *Params) load(i int) float64 {
	return math.Float64frombits(p.vals[i].Load())
}

func (p *Params) Names() []string {
	names := make([]string, 0, len(p.defs))
	for _, d := range p.defs {
		names = append(names, d.name)
	}
	sort.Strings(names)
	return names
}

// Parameter indices. Must stay in sync with synthParams below.
const (
	pOsc1Wave = iota
	pOsc1Octave
	pOsc1Semi
	pOsc1Fine
	pOsc1Level
	pOsc1PW
	pOsc2Wave
	pOsc2Octave
	pOsc2Semi
	pOsc2Fine
	pOsc2Level
	pOsc2PW
	pSubLevel
	pNoiseLevel
	pUnisonVoices
	pUnisonDetune
	pUnisonSpread
	pCutoff
	pResonance
	pFilterEnv
	pFilterTrack
	pFilterDrive
	pAmpAttack
	pAmpDecay
	pAmpSustain
	pAmpRelease
	pFltAttack
	pFltDecay
	pFltSustain
	pFltRelease
	pLfoRate
	pLfoWave
	pLfoPitch
	pLfoFilter
	pLfoAmp
	pLfoPW
	pVibRate
	pVibDepth
	pBend
	pBendRange
	pGlide
	pDelayTime
	pDelayFeedback
	pDelayMix
	pReverbSize
	pReverbDamp
	pReverbMix
	pPan
	pLevel
	pVoices
	pVelocity
	numParams
)

var synthParams = []paramDef{
	{"osc1.wave", 0, 5, waveSaw},
	{"osc1.octave", -3, 3, 0},
	{"osc1.semi", -12, 12, 0},
	{"osc1.fine", -100, 100, 0},
	{"osc1.level", 0, 1, 0.8},
	{"osc1.pw", 0.05, 0.95, 0.5},
	{"osc2.wave", 0, 5, waveSquare},
	{"osc2.octave", -3, 3, 0},
	{"osc2.semi", -12, 12, 0},
	{"osc2.fine", -100, 100, 0},
	{"osc2.level", 0, 1, 0},
	{"osc2.pw", 0.05, 0.95, 0.5},
	{"sub.level", 0, 1, 0},
	{"noise.level", 0, 1, 0},
	{"unison.voices", 1, maxUnison, 1},
	{"unison.detune", 0, 100, 12},
	{"unison.spread", 0, 1, 0.5},
	{"cutoff", 20, 20000, 8000},
	{"resonance", 0, 1, 0},
	{"filter.env", -5, 5, 0},
	{"filter.track", 0, 1, 0},
	{"filter.drive", 0, 1, 0},
	{"amp.attack", 0.0005, 15, 0.005},
	{"amp.decay", 0.0005, 15, 0.1},
	{"amp.sustain", 0, 1, 0.8},
	{"amp.release", 0.0005, 15, 0.2},
	{"filter.attack", 0.0005, 15, 0.005},
	{"filter.decay", 0.0005, 15, 0.2},
	{"filter.sustain", 0, 1, 1},
	{"filter.release", 0.0005, 15, 0.2},
	{"lfo.rate", 0.01, 20, 2},
	{"lfo.wave", 0, 3, lfoSine},
	{"lfo.pitch", 0, 12, 0},
	{"lfo.filter", 0, 4, 0},
	{"lfo.amp", 0, 1, 0},
	{"lfo.pw", 0, 0.45, 0},
	{"vib.rate", 0.1, 12, 5},
	{"vib.depth", 0, 1, 0},
	{"bend", -1, 1, 0},
	{"bend.range", 0, 24, 2},
	{"glide", 0, 5, 0},
	{"delay.time", 0.01, 2, 0.3},
	{"delay.feedback", 0, 0.95, 0.4},
	{"delay.mix", 0, 1, 0},
	{"reverb.size", 0, 1, 0.5},
	{"reverb.damp", 0, 1, 0.5},
	{"reverb.mix", 0, 1, 0},
	{"pan", -1, 1, 0},
	{"level", 0, 2, 0.8},
	{"voices", 1, 32, 16},
	{"velocity", 0, 1, 1},
}
