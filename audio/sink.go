package audio

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// Output drives Sources from an audio backend.
type Output interface {
	AddSources(sources ...Source)
	Start() error
	Stop() error
}

// Sink plays Sources through portaudio. The callback pulls interleaved
// float32 samples from each source and mixes them into the stream buffer.
type Sink struct {
	sources  []Source
	scratch  []float32
	channels int
	stream   *portaudio.Stream
}

func NewSink(sampleRate, channels, bufferSize int) (*Sink, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("portaudio init: %w", err)
	}
	s := &Sink{
		channels: channels,
		scratch:  make([]float32, bufferSize*channels),
	}
	stream, err := portaudio.OpenDefaultStream(0, channels, float64(sampleRate), bufferSize, s.process)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("open stream: %w", err)
	}
	s.stream = stream
	return s, nil
}

func (s *Sink) AddSources(sources ...Source) {
	s.sources = append(s.sources, sources...)
}

func (s *Sink) Start() error {
	return s.stream.Start()
}

func (s *Sink) Stop() error {
	err := s.stream.Close()
	portaudio.Terminate()
	return err
}

func (s *Sink) process(out []float32) {
	for i := range out {
		out[i] = 0
	}
	if len(s.scratch) < len(out) {
		s.scratch = make([]float32, len(out))
	}
	for _, src := range s.sources {
		src.Read(s.scratch, 0, len(out))
		for i := range out {
			out[i] += s.scratch[i]
		}
	}
}
