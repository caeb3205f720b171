package audio

import "math"

type envelopeStage int

const (
	stageAttack envelopeStage = iota
	stageDecay
	stageSustain
	stageRelease
	stageDone
)

const (
	// Attack aims past 1.0 so the curve crosses the top instead of
	// approaching it asymptotically forever.
	attackTarget = 1.08
	stageEpsilon = 1e-3
	silenceLevel = 1e-4
)

// envelope is an exponential ADSR: every stage is a one-pole move toward a
// target, giving the fast-start/slow-finish curve that avoids the clicks of
// linear ramps.
type envelope struct {
	attackCoef  float64
	decayCoef   float64
	releaseCoef float64
	sustain     float64

	stage envelopeStage
	level float64
}

func envCoef(seconds, sampleRate float64) float64 {
	if seconds <= 0 {
		return 0
	}
	return math.Exp(-1 / (seconds * sampleRate))
}

func (e *envelope) configure(attack, decay, sustain, release, sampleRate float64) {
	e.attackCoef = envCoef(attack, sampleRate)
	e.decayCoef = envCoef(decay, sampleRate)
	e.releaseCoef = envCoef(release, sampleRate)
	e.sustain = sustain
}

func (e *envelope) trigger() {
	e.stage = stageAttack
	e.level = 0
}

// retrigger restarts the attack without zeroing an audible level, so fast
// repeated notes don't click.
func (e *envelope) retrigger() {
	e.stage = stageAttack
	if e.level < stageEpsilon {
		e.level = 0
	}
}

func (e *envelope) release() {
	if e.stage != stageDone {
		e.stage = stageRelease
	}
}

func (e *envelope) done() bool { return e.stage == stageDone }

func (e *envelope) next() float64 {
	switch e.stage {
	case stageAttack:
		e.level = attackTarget + (e.level-attackTarget)*e.attackCoef
		if e.level >= 1 {
			e.level = 1
			e.stage = stageDecay
		}
	case stageDecay:
		e.level = e.sustain + (e.level-e.sustain)*e.decayCoef
		if e.level <= e.sustain+stageEpsilon {
			e.level = e.sustain
			e.stage = stageSustain
		}
	case stageSustain:
		e.level = e.sustain
	case stageRelease:
		e.level *= e.releaseCoef
		if e.level < silenceLevel {
			e.level = 0
			e.stage = stageDone
		}
	case stageDone:
		e.level = 0
	}
	return e.level
}
