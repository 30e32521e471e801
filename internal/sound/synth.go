// Package sound turns engine cues into short synthesized effects played
// through the system speaker.
package sound

import (
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/Garsondee/arena-blitz/internal/game"
)

// SampleRate is the output rate of every voice.
const SampleRate = beep.SampleRate(44100)

// Device is the audio output. The default is the beep speaker.
type Device interface {
	Init(rate beep.SampleRate, bufferSize int) error
	Play(s beep.Streamer)
	Lock()
	Unlock()
	Close()
}

type speakerDevice struct{}

func (speakerDevice) Init(rate beep.SampleRate, bufferSize int) error {
	return speaker.Init(rate, bufferSize)
}
func (speakerDevice) Play(s beep.Streamer) { speaker.Play(s) }
func (speakerDevice) Lock()                { speaker.Lock() }
func (speakerDevice) Unlock()              { speaker.Unlock() }
func (speakerDevice) Close()               { speaker.Close() }

// Synth implements game.SoundPlayer. The device opens lazily on the first
// init cue; until then, and after a failed open, cues are dropped.
type Synth struct {
	mu          sync.Mutex
	device      Device
	mixer       *beep.Mixer
	rng         *rand.Rand
	logger      *log.Logger
	muted       bool
	initialized bool
	failed      bool
}

// Option configures a Synth.
type Option func(*Synth)

// WithDevice replaces the speaker, mainly for tests.
func WithDevice(d Device) Option {
	return func(s *Synth) { s.device = d }
}

// WithLogger reports device failures to l.
func WithLogger(l *log.Logger) Option {
	return func(s *Synth) { s.logger = l }
}

// Muted drops every cue without touching the device.
func Muted(m bool) Option {
	return func(s *Synth) { s.muted = m }
}

// New returns a synth with the device still closed.
func New(opts ...Option) *Synth {
	s := &Synth{
		device: speakerDevice{},
		mixer:  &beep.Mixer{},
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())), // #nosec G404 -- noise texture only
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

var _ game.SoundPlayer = (*Synth)(nil)

// Play queues the voice for cue. It never blocks on audio output.
func (s *Synth) Play(cue game.SoundCue) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.muted {
		return
	}
	if cue == game.CueInit && !s.initialized && !s.failed {
		s.open()
	}
	if !s.initialized {
		return
	}
	v := Voice(cue, SampleRate, s.rng)
	if v == nil {
		return
	}
	s.device.Lock()
	s.mixer.Add(v)
	s.device.Unlock()
}

func (s *Synth) open() {
	if err := s.device.Init(SampleRate, SampleRate.N(time.Second/10)); err != nil {
		s.failed = true
		if s.logger != nil {
			s.logger.Warn("audio disabled", "err", err)
		}
		return
	}
	s.device.Play(s.mixer)
	s.initialized = true
	if s.logger != nil {
		s.logger.Debug("audio device open", "rate", int(SampleRate))
	}
}

// Active returns how many voices are still playing.
func (s *Synth) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return 0
	}
	s.device.Lock()
	defer s.device.Unlock()
	return s.mixer.Len()
}

// Close stops playback and releases the device.
func (s *Synth) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	s.device.Lock()
	s.mixer.Clear()
	s.device.Unlock()
	s.device.Close()
	s.initialized = false
}
