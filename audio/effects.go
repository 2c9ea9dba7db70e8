// Package audio is the sound sink for session events: short
// synthesized effects, no sample assets. It degrades to silence when
// no audio backend is available; the simulation never depends on it.
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveNoise
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// newOscillator creates a finite oscillator streamer.
func newOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, false
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase) // keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// newEnvelope shapes a streamer with linear attack and release ramps.
func newEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, false
		}

		vol := 1.0
		releaseStart := e.totalSamples - e.releaseSamples
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		} else if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = float64(e.totalSamples-e.position) / float64(e.releaseSamples)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// gain scales a streamer by a constant volume.
type gain struct {
	streamer beep.Streamer
	vol      float64
}

func newGain(s beep.Streamer, vol float64) beep.Streamer {
	return &gain{streamer: s, vol: vol}
}

func (g *gain) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = g.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		samples[i][0] *= g.vol
		samples[i][1] *= g.vol
	}
	return n, ok
}

func (g *gain) Err() error { return g.streamer.Err() }

// ThudSound is the smack impact: a low sine whose pitch and volume
// scale with hit intensity, plus a short noise transient.
func ThudSound(rate beep.SampleRate, intensity float64) beep.Streamer {
	if intensity < 0 {
		intensity = 0
	}
	if intensity > 1 {
		intensity = 1
	}

	freq := 70.0 + 80.0*intensity
	body := newEnvelope(
		newOscillator(freq, 200*time.Millisecond, WaveSine, rate),
		200*time.Millisecond, 4*time.Millisecond, 150*time.Millisecond, rate)
	slap := newEnvelope(
		newOscillator(0, 40*time.Millisecond, WaveNoise, rate),
		40*time.Millisecond, time.Millisecond, 35*time.Millisecond, rate)

	return beep.Mix(
		newGain(body, 0.5+0.4*intensity),
		newGain(slap, 0.15+0.2*intensity),
	)
}

// BoomSound is the explosion: a long noise wash over a very low sine.
func BoomSound(rate beep.SampleRate) beep.Streamer {
	rumble := newEnvelope(
		newOscillator(48, 900*time.Millisecond, WaveSine, rate),
		900*time.Millisecond, 5*time.Millisecond, 700*time.Millisecond, rate)
	blast := newEnvelope(
		newOscillator(0, 700*time.Millisecond, WaveNoise, rate),
		700*time.Millisecond, 2*time.Millisecond, 600*time.Millisecond, rate)

	return beep.Mix(
		newGain(rumble, 0.8),
		newGain(blast, 0.5),
	)
}

// ShimmerSound is the respawn cue: three rising sine blips.
func ShimmerSound(rate beep.SampleRate) beep.Streamer {
	blip := func(freq float64) beep.Streamer {
		return newGain(newEnvelope(
			newOscillator(freq, 120*time.Millisecond, WaveSine, rate),
			120*time.Millisecond, 8*time.Millisecond, 80*time.Millisecond, rate), 0.35)
	}
	return beep.Seq(blip(523.25), blip(659.25), blip(783.99))
}
