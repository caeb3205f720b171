package audio

import "math"

// delayLine is a stereo feedback delay.
type delayLine struct {
	sampleRate float64
	bufL, bufR []float64
	pos        int
}

func newDelayLine(sampleRate float64) *delayLine {
	size := int(2 * sampleRate) // max delay time is 2s
	return &delayLine{
		sampleRate: sampleRate,
		bufL:       make([]float64, size),
		bufR:       make([]float64, size),
	}
}

func (d *delayLine) process(l, r, time, feedback, mix float64) (float64, float64) {
	n := int(time * d.sampleRate)
	if n < 1 {
		n = 1
	}
	if n >= len(d.bufL) {
		n = len(d.bufL) - 1
	}
	read := d.pos - n
	if read < 0 {
		read += len(d.bufL)
	}
	wetL := d.bufL[read]
	wetR := d.bufR[read]
	d.bufL[d.pos] = l + wetL*feedback
	d.bufR[d.pos] = r + wetR*feedback
	d.pos++
	if d.pos >= len(d.bufL) {
		d.pos = 0
	}
	return l + wetL*mix, r + wetR*mix
}

// Comb delay lengths are primes so the echoes don't line up into a pitch,
// with scaled per-comb decay for smooth damping.
var (
	combDelays = [4]int{1687, 1601, 2053, 2251}
	combScales = [4]float64{0.97, 0.95, 0.93, 0.91}
)

const reverbAttenuation = 0.3

// reverb is a bank of 4 parallel feedback combs with a one-pole damping
// filter in each loop. A comb-style approximation, not a full room model.
type reverb struct {
	bufs  [4][]float64
	pos   [4]int
	state [4]float64
}

func newReverb() *reverb {
	rv := &reverb{}
	for i := range rv.bufs {
		rv.bufs[i] = make([]float64, combDelays[i])
	}
	return rv
}

func (rv *reverb) process(in, size, damp float64) float64 {
	decay := 0.1 + 0.89*size
	var out float64
	for i := range rv.bufs {
		buf := rv.bufs[i]
		d := buf[rv.pos[i]]
		// damping low-pass inside the feedback loop
		rv.state[i] = d*(1-damp) + rv.state[i]*damp
		buf[rv.pos[i]] = in + rv.state[i]*decay*combScales[i]
		out += d
		rv.pos[i]++
		if rv.pos[i] >= len(buf) {
			rv.pos[i] = 0
		}
	}
	return out * reverbAttenuation
}

const clipThreshold = 0.8

// softClip passes samples below the threshold and drives the remainder
// through tanh so overloads saturate instead of hard-clipping.
func softClip(x float64) float64 {
	ax := math.Abs(x)
	if ax <= clipThreshold {
		return x
	}
	head := 1 - clipThreshold
	y := clipThreshold + head*math.Tanh((ax-clipThreshold)/head)
	if x < 0 {
		return -y
	}
	return y
}
