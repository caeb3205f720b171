package audio

// Source is the contract every instrument engine implements. Control-path
// methods (NoteOn, NoteOff, AllNotesOff, SetParameter) may be called from any
// goroutine; Read is called from the audio callback and must fill exactly
// count interleaved samples without blocking.
type Source interface {
	Name() string
	NoteOn(note, velocity int)
	NoteOff(note int)
	AllNotesOff()
	SetParameter(name string, value float64)
	Read(buf []float32, offset, count int) int
}

// Device exposes the parameter surface to the REPL and presets.
type Device interface {
	Set(name string, value float64)
	Get(name string) (float64, bool)
}
