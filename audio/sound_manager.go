package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(48000)

	contactDuration = 40 * time.Millisecond
	wallDuration    = 25 * time.Millisecond
	minInterval     = 30 * time.Millisecond // Tones closer than this are dropped

	contactBaseHz = 440.0
	contactMaxHz  = 1320.0
	wallHz        = 220.0
)

// SoundManager plays short tones for contacts; every method is a no-op until Initialize succeeds
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	volume      float64
	last        time.Time
	now         func() time.Time
}

// NewSoundManager creates a manager at the given volume in [0, 1]
func NewSoundManager(volume float64) *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: min(1, max(0, volume)),
		now:    time.Now,
	}
}

// Initialize sets up the speaker
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100))
	if err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	sm.initialized = false
}

// PlayContact plays a tone whose pitch rises with penetration depth
func (sm *SoundManager) PlayContact(depth float64) {
	sm.play(ContactTone(depth, sm.volume))
}

// PlayWall plays a low tick for an arena bounce
func (sm *SoundManager) PlayWall() {
	sm.play(WallTone(sm.volume))
}

func (sm *SoundManager) play(s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || s == nil {
		return
	}
	now := sm.now()
	if now.Sub(sm.last) < minInterval {
		return
	}
	sm.last = now

	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// ContactTone returns a finite sine burst; depth maps to pitch, saturating at 1 world unit
func ContactTone(depth, volume float64) beep.Streamer {
	t := min(1, max(0, math.Abs(depth)))
	return tone(contactBaseHz+t*(contactMaxHz-contactBaseHz), contactDuration, volume)
}

// WallTone returns the bounce tick
func WallTone(volume float64) beep.Streamer {
	return tone(wallHz, wallDuration, volume)
}

func tone(freq float64, d time.Duration, volume float64) beep.Streamer {
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return nil
	}
	return newVolume(beep.Take(sampleRate.N(d), sine), volume)
}

// newVolume maps a linear volume onto beep's log scale
// math.Log2(0) is -Inf, so 0 volume is made silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
