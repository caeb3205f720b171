package audio

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/ebitengine/oto/v3"
)

// OtoSink plays Sources through oto, for hosts without portaudio. oto pulls
// bytes through io.Reader, so the sink bridges the Read contract to float32
// little-endian frames.
type OtoSink struct {
	ctx      *oto.Context
	player   *oto.Player
	sources  []Source
	scratch  []float32
	mix      []float32
	channels int
}

func NewOtoSink(sampleRate, channels int) (*OtoSink, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return nil, fmt.Errorf("oto context: %w", err)
	}
	<-ready
	s := &OtoSink{ctx: ctx, channels: channels}
	s.player = ctx.NewPlayer(s)
	return s, nil
}

func (s *OtoSink) AddSources(sources ...Source) {
	s.sources = append(s.sources, sources...)
}

func (s *OtoSink) Start() error {
	s.player.Play()
	return nil
}

func (s *OtoSink) Stop() error {
	return s.player.Close()
}

// Read implements io.Reader for oto. Always returns len(p) bytes; with no
// sources the output is silence.
func (s *OtoSink) Read(p []byte) (int, error) {
	count := len(p) / 4
	if len(s.mix) < count {
		s.mix = make([]float32, count)
		s.scratch = make([]float32, count)
	}
	mix := s.mix[:count]
	for i := range mix {
		mix[i] = 0
	}
	for _, src := range s.sources {
		src.Read(s.scratch, 0, count)
		for i := range mix {
			mix[i] += s.scratch[i]
		}
	}
	for i, v := range mix {
		binary.LittleEndian.PutUint32(p[4*i:], math.Float32bits(v))
	}
	return count * 4, nil
}
