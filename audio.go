package main

import (
	"github.com/pkg/errors"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	// playback rate and tone
	sampleRate = 22050
	toneHz     = 440

	// samples queued per 60 Hz frame
	frameSamples = sampleRate / 60
)

/// Beeper plays a square wave while the sound timer is running. The zero
/// value is a silent beeper.
///
type Beeper struct {
	id   sdl.AudioDeviceID
	spec sdl.AudioSpec

	// one frame of tone, and the phase it ended on
	buf   []byte
	phase int
}

/// NewBeeper opens the default audio device.
///
func NewBeeper() (*Beeper, error) {
	spec := &sdl.AudioSpec{
		Freq:     sampleRate,
		Format:   sdl.AUDIO_U8,
		Channels: 1,
		Samples:  512,
	}

	b := &Beeper{buf: make([]byte, frameSamples)}

	var err error
	if b.id, err = sdl.OpenAudioDevice("", false, spec, &b.spec, 0); err != nil {
		return nil, errors.Wrap(err, "opening audio device")
	}

	// start playing immediately, the queue is empty
	sdl.PauseAudioDevice(b.id, false)

	return b, nil
}

/// Beep keeps about two frames of tone queued while on, and drops
/// whatever is queued when off.
///
func (b *Beeper) Beep(on bool) error {
	if b.id == 0 {
		return nil
	}

	if !on {
		sdl.ClearQueuedAudio(b.id)
		return nil
	}

	if sdl.GetQueuedAudioSize(b.id) >= uint32(2*len(b.buf)) {
		return nil
	}

	// fill in the next frame of the square wave
	period := sampleRate / toneHz
	for i := range b.buf {
		if b.phase < period/2 {
			b.buf[i] = b.spec.Silence + 48
		} else {
			b.buf[i] = b.spec.Silence - 48
		}

		b.phase = (b.phase + 1) % period
	}

	return sdl.QueueAudio(b.id, b.buf)
}

/// Close the audio device.
///
func (b *Beeper) Close() {
	if b.id != 0 {
		sdl.CloseAudioDevice(b.id)
		b.id = 0
	}
}
