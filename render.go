package main

import (
	"fmt"
	"os"

	wav "github.com/youpy/go-wav"

	"polyvox/audio"
)

// seconds of release tail rendered after the notes go off
const renderTail = 3.0

// renderWav bounces notes offline through a fresh engine configured with the
// live parameter values and writes a 16-bit WAV file.
func renderWav(env *env, path string, seconds float64, notes []int) error {
	if seconds <= 0 {
		return fmt.Errorf("render length must be positive: %v", seconds)
	}
	synth, err := audio.New("bounce", env.sampleRate, env.channels)
	if err != nil {
		return err
	}
	for _, name := range env.synth.Parameters() {
		if v, ok := env.synth.Get(name); ok {
			synth.Set(name, v)
		}
	}
	for _, note := range notes {
		synth.NoteOn(note, 100)
	}

	holdFrames := int(seconds * float64(env.sampleRate))
	tailFrames := int(renderTail * float64(env.sampleRate))
	totalFrames := holdFrames + tailFrames

	buf := make([]float32, 512*env.channels)
	samples := make([]wav.Sample, 0, totalFrames)

	rendered := 0
	for rendered < totalFrames {
		n := len(buf) / env.channels
		if rendered < holdFrames && rendered+n > holdFrames {
			n = holdFrames - rendered
		}
		if rendered+n > totalFrames {
			n = totalFrames - rendered
		}
		synth.Read(buf, 0, n*env.channels)
		for f := 0; f < n; f++ {
			var s wav.Sample
			for c := 0; c < env.channels; c++ {
				s.Values[c] = int(buf[f*env.channels+c] * 32767)
			}
			samples = append(samples, s)
		}
		rendered += n
		if rendered == holdFrames {
			synth.AllNotesOff()
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := wav.NewWriter(f, uint32(totalFrames), uint16(env.channels), uint32(env.sampleRate), 16)
	return w.WriteSamples(samples)
}
