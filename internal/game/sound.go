package game

// SoundCue names an audio event raised by the simulation.
type SoundCue uint8

const (
	CueInit  SoundCue = iota // match started; players may lazily open the audio device
	CueShoot                 // a character fired
	CueHit                   // a projectile struck a character
	CueDie                   // a character's health reached zero
)

func (c SoundCue) String() string {
	switch c {
	case CueInit:
		return "init"
	case CueShoot:
		return "shoot"
	case CueHit:
		return "hit"
	case CueDie:
		return "die"
	default:
		return "unknown"
	}
}

// SoundPlayer receives cues fire-and-forget. Implementations must not block the tick.
type SoundPlayer interface {
	Play(cue SoundCue)
}

// NopSound discards every cue.
type NopSound struct{}

func (NopSound) Play(SoundCue) {}
