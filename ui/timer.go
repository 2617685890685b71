package ui

import (
	"fmt"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
)

// timer shows the time elapsed since it was last Set
type timer struct {
	label     string
	startTime time.Time
	mtx       *sync.Mutex
	text      *canvas.Text
	stop      chan struct{}
}

func newTimer(label string) *timer {
	return &timer{
		label:     label,
		startTime: time.Time{},
		mtx:       &sync.Mutex{},
		text:      canvas.NewText(label+" --:--", nil),
		stop:      make(chan struct{}),
	}
}

func (t *timer) Set(start time.Time) {
	t.mtx.Lock()
	t.startTime = start
	t.mtx.Unlock()
}

func (t *timer) Stop() {
	close(t.stop)
}

func (t *timer) elapsedText(now time.Time) string {
	t.mtx.Lock()
	defer t.mtx.Unlock()

	if t.startTime.IsZero() {
		return t.label + " --:--"
	}
	elapsed := now.Sub(t.startTime)
	minutes := int(elapsed.Minutes())
	seconds := int(elapsed.Seconds()) % 60
	return fmt.Sprintf("%s %02d:%02d", t.label, minutes, seconds)
}

func (t *timer) Go() {
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-t.stop:
				return
			case now := <-ticker.C:
				text := t.elapsedText(now)
				fyne.Do(func() {
					t.text.Text = text
					t.text.Refresh()
				})
			}
		}
	}()
}

// rate counts frames and reports frames per second
type rate struct {
	mtx    sync.Mutex
	frames int
	since  time.Time
}

func (r *rate) Add() {
	r.mtx.Lock()
	r.frames++
	r.mtx.Unlock()
}

// Take returns the rate since the last Take and resets the count
func (r *rate) Take(now time.Time) float64 {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	var fps float64
	if !r.since.IsZero() {
		if d := now.Sub(r.since).Seconds(); d > 0 {
			fps = float64(r.frames) / d
		}
	}
	r.frames = 0
	r.since = now
	return fps
}
