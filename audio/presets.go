package audio

import (
	"fmt"
	"sort"
)

type preset map[string]float64

var presets = map[string]preset{
	"fat-bass": {
		"osc1.wave":      waveSaw,
		"osc2.wave":      waveSquare,
		"osc2.octave":    -1,
		"osc2.level":     0.5,
		"sub.level":      0.4,
		"unison.voices":  3,
		"unison.detune":  9,
		"cutoff":         700,
		"filter.env":     2,
		"filter.decay":   0.25,
		"filter.sustain": 0.1,
		"amp.decay":      0.3,
		"amp.sustain":    0.6,
		"amp.release":    0.15,
	},
	"glide-lead": {
		"osc1.wave":   waveSquare,
		"osc1.pw":     0.3,
		"glide":       0.08,
		"vib.rate":    5.5,
		"vib.depth":   0.2,
		"cutoff":      3000,
		"delay.time":  0.28,
		"delay.mix":   0.25,
		"voices":      1,
		"amp.release": 0.3,
	},
	"soft-pad": {
		"osc1.wave":     waveTriangle,
		"osc2.wave":     waveSine,
		"osc2.level":    0.6,
		"osc2.fine":     7,
		"unison.voices": 5,
		"unison.detune": 15,
		"unison.spread": 0.8,
		"cutoff":        1800,
		"amp.attack":    0.8,
		"amp.release":   1.5,
		"lfo.rate":      0.4,
		"lfo.filter":    0.6,
		"reverb.mix":    0.35,
	},
}

// LoadPreset applies a named parameter bundle through the device's Set path.
func LoadPreset(name string, d Device) error {
	p, ok := presets[name]
	if !ok {
		return fmt.Errorf("unknown preset: %v", name)
	}
	for k, v := range p {
		d.Set(k, v)
	}
	return nil
}

func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
