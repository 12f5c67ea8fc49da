package main

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const toneSampleRate = beep.SampleRate(44100)

// tonePlayer 用正弦波播放简单提示音
type tonePlayer struct {
	enabled bool
}

func newTonePlayer() *tonePlayer {
	return &tonePlayer{}
}

func (t *tonePlayer) init() error {
	if err := speaker.Init(toneSampleRate, toneSampleRate.N(time.Second/10)); err != nil {
		return err
	}
	t.enabled = true
	return nil
}

func (t *tonePlayer) play(freq int, d time.Duration) {
	if !t.enabled {
		return
	}
	sine, err := generators.SineTone(toneSampleRate, float64(freq))
	if err != nil {
		return
	}
	speaker.Play(beep.Take(toneSampleRate.N(d), sine))
}

// hit 受伤：短促低音
func (t *tonePlayer) hit() {
	t.play(220, 80*time.Millisecond)
}

// wave 新波次：较长高音
func (t *tonePlayer) wave() {
	t.play(880, 300*time.Millisecond)
}

func (t *tonePlayer) close() {
	if t.enabled {
		speaker.Close()
		t.enabled = false
	}
}
