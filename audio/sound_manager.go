package audio

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/akmonengine/jiggle"
	"github.com/akmonengine/jiggle/logger"
)

const sampleRate = beep.SampleRate(44100)

// SoundManager plays the synthesized effects through the speaker. A
// failed speaker init flips it into silent mode instead of returning
// an error to the caller: sound is a sink, never a dependency.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	silent      atomic.Bool
}

// NewSoundManager creates a manager; call Initialize before use.
func NewSoundManager() *SoundManager {
	return &SoundManager{mixer: &beep.Mixer{}}
}

// Initialize sets up the speaker. Failure switches to silent mode.
func (sm *SoundManager) Initialize() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*50)); err != nil {
		logger.Sugar.Warnw("audio disabled", "err", err)
		sm.silent.Store(true)
		return
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
}

// Cleanup silences the mixer.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

func (sm *SoundManager) play(s beep.Streamer) {
	if sm.silent.Load() || !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// PlayThud plays the smack impact for a given hit intensity.
func (sm *SoundManager) PlayThud(intensity float64) {
	sm.play(ThudSound(sampleRate, intensity))
}

// PlayBoom plays the explosion.
func (sm *SoundManager) PlayBoom() {
	sm.play(BoomSound(sampleRate))
}

// PlayShimmer plays the respawn cue.
func (sm *SoundManager) PlayShimmer() {
	sm.play(ShimmerSound(sampleRate))
}

// AttachTo subscribes the manager to a session's event stream.
func (sm *SoundManager) AttachTo(session *jiggle.Session) {
	session.Events.Subscribe(jiggle.HIT, func(event jiggle.Event) {
		if hit, ok := event.(jiggle.HitEvent); ok {
			sm.PlayThud(hit.Intensity)
		}
	})
	session.Events.Subscribe(jiggle.EXPLODE, func(event jiggle.Event) {
		sm.PlayBoom()
	})
	session.Events.Subscribe(jiggle.RESPAWN_START, func(event jiggle.Event) {
		sm.PlayShimmer()
	})
}
