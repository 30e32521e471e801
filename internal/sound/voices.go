package sound

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/Garsondee/arena-blitz/internal/game"
)

// Cue shapes.
const (
	initDuration  = 60 * time.Millisecond
	shootDuration = 90 * time.Millisecond
	hitDuration   = 70 * time.Millisecond
	dieDuration   = 380 * time.Millisecond

	shortAttack = 4 * time.Millisecond
)

// sweep is a sine or square oscillator whose frequency glides linearly
// from one pitch to another over its lifetime.
type sweep struct {
	from, to float64
	square   bool
	phase    float64
	pos      int
	total    int
	rate     beep.SampleRate
}

func newSweep(from, to float64, d time.Duration, square bool, rate beep.SampleRate) *sweep {
	return &sweep{from: from, to: to, square: square, total: rate.N(d), rate: rate}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.pos >= s.total {
			return i, i > 0
		}
		val := math.Sin(2 * math.Pi * s.phase)
		if s.square {
			val = 1
			if s.phase >= 0.5 {
				val = -1
			}
		}
		samples[i][0] = val
		samples[i][1] = val

		freq := s.from + (s.to-s.from)*float64(s.pos)/float64(s.total)
		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// noiseBurst is white noise with a fixed length.
func noiseBurst(d time.Duration, rate beep.SampleRate, rng *rand.Rand) beep.Streamer {
	return beep.Take(rate.N(d), beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			v := rng.Float64()*2 - 1
			samples[i][0] = v
			samples[i][1] = v
		}
		return len(samples), true
	}))
}

// decay applies a short linear attack and a linear fade to silence over d.
func decay(s beep.Streamer, d, attack time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(d)
	att := rate.N(attack)
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		n, ok := s.Stream(samples)
		for i := 0; i < n; i++ {
			gain := 1.0
			switch {
			case pos < att:
				gain = float64(pos) / float64(att)
			case total > att:
				gain = float64(total-pos) / float64(total-att)
			}
			if gain < 0 {
				gain = 0
			}
			samples[i][0] *= gain
			samples[i][1] *= gain
			pos++
		}
		return n, ok
	})
}

// withVolume scales s linearly; vol <= 0 silences it.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Voice builds the finite streamer for one cue, or nil when the cue has no sound.
func Voice(cue game.SoundCue, rate beep.SampleRate, rng *rand.Rand) beep.Streamer {
	switch cue {
	case game.CueInit:
		tone, err := generators.SineTone(rate, 660)
		if err != nil {
			return nil
		}
		return withVolume(decay(beep.Take(rate.N(initDuration), tone), initDuration, shortAttack, rate), 0.3)
	case game.CueShoot:
		return withVolume(decay(newSweep(880, 220, shootDuration, true, rate), shootDuration, shortAttack, rate), 0.25)
	case game.CueHit:
		body := newSweep(180, 120, hitDuration, false, rate)
		return withVolume(beep.Mix(
			decay(noiseBurst(hitDuration, rate, rng), hitDuration, shortAttack, rate),
			decay(body, hitDuration, shortAttack, rate),
		), 0.3)
	case game.CueDie:
		return withVolume(beep.Seq(
			decay(noiseBurst(40*time.Millisecond, rate, rng), 40*time.Millisecond, shortAttack, rate),
			decay(newSweep(420, 60, dieDuration, false, rate), dieDuration, shortAttack, rate),
		), 0.4)
	default:
		return nil
	}
}
