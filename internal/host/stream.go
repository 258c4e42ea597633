package host

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	ebitaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

// bytesPerFrame is one stereo frame of 32-bit float samples.
const bytesPerFrame = 8

// StreamReader adapts a SampleSource to the little-endian float32 stereo
// byte stream expected by the audio player.
type StreamReader struct {
	mu     sync.Mutex
	source SampleSource
	buf    []float32
}

// NewStreamReader wraps source.
func NewStreamReader(source SampleSource) *StreamReader {
	return &StreamReader{source: source}
}

// Read implements io.Reader. Partial frames at the end of p are not filled.
func (r *StreamReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	frames := len(p) / bytesPerFrame
	if frames == 0 {
		return 0, nil
	}

	need := frames * 2
	if cap(r.buf) < need {
		r.buf = make([]float32, need)
	}
	r.buf = r.buf[:need]
	r.source.Process(r.buf)

	for i, v := range r.buf {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(v))
	}

	return frames * bytesPerFrame, nil
}

// Close implements io.Closer.
func (r *StreamReader) Close() error { return nil }

// Player plays a SampleSource on the default audio device.
type Player struct {
	player *ebitaudio.Player
	reader io.ReadCloser
}

var (
	audioContextOnce sync.Once
	audioContext     *ebitaudio.Context
	audioSampleRate  int
)

func sharedAudioContext(sampleRate int) (*ebitaudio.Context, error) {
	audioContextOnce.Do(func() {
		audioSampleRate = sampleRate
		audioContext = ebitaudio.NewContext(sampleRate)
	})
	if audioSampleRate != sampleRate {
		return nil, fmt.Errorf("host: audio context already initialized at %d Hz (requested %d Hz)", audioSampleRate, sampleRate)
	}

	return audioContext, nil
}

// NewPlayer opens the shared audio context at sampleRate and prepares a
// player pulling from source. bufferSize sets the device buffer; zero keeps
// the platform default.
func NewPlayer(sampleRate int, source SampleSource, bufferSize time.Duration) (*Player, error) {
	ctx, err := sharedAudioContext(sampleRate)
	if err != nil {
		return nil, err
	}

	reader := NewStreamReader(source)
	pl, err := ctx.NewPlayerF32(reader)
	if err != nil {
		return nil, fmt.Errorf("host: new player: %w", err)
	}
	if bufferSize > 0 {
		pl.SetBufferSize(bufferSize)
	}

	return &Player{player: pl, reader: reader}, nil
}

// Play starts or resumes playback.
func (p *Player) Play() { p.player.Play() }

// Pause pauses playback.
func (p *Player) Pause() { p.player.Pause() }

// IsPlaying reports whether the player is running.
func (p *Player) IsPlaying() bool { return p.player.IsPlaying() }

// Position returns the current playback position.
func (p *Player) Position() time.Duration { return p.player.Position() }

// Stop pauses and releases the player.
func (p *Player) Stop() error {
	p.player.Pause()
	if err := p.player.Close(); err != nil {
		return fmt.Errorf("host: close player: %w", err)
	}

	return p.reader.Close()
}
