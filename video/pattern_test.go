// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package video

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type recorder struct {
	mu      sync.Mutex
	events  []string
	pos     float32
	time    time.Duration
	length  time.Duration
	changed chan struct{}
}

func newRecorder() *recorder {
	return &recorder{changed: make(chan struct{}, 64)}
}

func (r *recorder) callbacks() Callbacks {
	add := func(ev string) {
		r.mu.Lock()
		r.events = append(r.events, ev)
		r.mu.Unlock()
		select {
		case r.changed <- struct{}{}:
		default:
		}
	}
	return Callbacks{
		OnPositionChanged: func(p float32) {
			r.mu.Lock()
			r.pos = p
			r.mu.Unlock()
			add("position")
		},
		OnPlaying: func() { add("playing") },
		OnPaused:  func() { add("paused") },
		OnTimeChanged: func(t time.Duration) {
			r.mu.Lock()
			r.time = t
			r.mu.Unlock()
			add("time")
		},
		OnLengthChanged: func(d time.Duration) {
			r.mu.Lock()
			r.length = d
			r.mu.Unlock()
			add("length")
		},
	}
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

func TestPatternPlayerTransport(t *testing.T) {
	p, err := NewPatternPlayer(WithFrameSize(8, 4), WithLength(10*time.Second))
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	rec := newRecorder()
	p.Subscribe(rec.callbacks())

	p.Advance(time.Second) // paused: no effect
	if p.Time() != 0 {
		t.Errorf("Time() = %v while paused, want 0", p.Time())
	}

	if err := p.Play(); err != nil {
		t.Fatal(err)
	}
	if !p.Playing() {
		t.Error("Playing() = false after Play")
	}
	p.Advance(5 * time.Second)
	if p.Position() != 0.5 {
		t.Errorf("Position() = %v, want 0.5", p.Position())
	}
	if err := p.Pause(); err != nil {
		t.Fatal(err)
	}

	want := []string{"playing", "time", "position", "paused"}
	got := rec.snapshot()
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("events[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestPatternPlayerSeekClamps(t *testing.T) {
	p, err := NewPatternPlayer(WithFrameSize(2, 2), WithLength(4*time.Second))
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	tests := []struct {
		pos  float32
		want time.Duration
	}{
		{0.25, time.Second},
		{-3, 0},
		{7, 4 * time.Second},
	}
	for _, tt := range tests {
		if err := p.Seek(tt.pos); err != nil {
			t.Fatal(err)
		}
		if got := p.Time(); got != tt.want {
			t.Errorf("Seek(%v) Time() = %v, want %v", tt.pos, got, tt.want)
		}
	}
}

func TestPatternPlayerEndOfMedia(t *testing.T) {
	p, err := NewPatternPlayer(WithFrameSize(2, 2), WithLength(time.Second))
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	rec := newRecorder()
	p.Subscribe(rec.callbacks())
	_ = p.Play()
	p.Advance(3 * time.Second)

	if p.Playing() {
		t.Error("Playing() = true past end of media")
	}
	if p.Time() != time.Second {
		t.Errorf("Time() = %v, want length", p.Time())
	}
	events := rec.snapshot()
	if events[len(events)-1] != "paused" {
		t.Errorf("last event = %q, want paused", events[len(events)-1])
	}

	// Play at the end restarts.
	_ = p.Play()
	if p.Time() != 0 {
		t.Errorf("Time() after replay = %v, want 0", p.Time())
	}
}

func TestPatternPlayerUnsubscribe(t *testing.T) {
	p, err := NewPatternPlayer(WithFrameSize(2, 2))
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	rec := newRecorder()
	unsubscribe := p.Subscribe(rec.callbacks())
	unsubscribe()
	_ = p.Play()
	if n := len(rec.snapshot()); n != 0 {
		t.Errorf("received %d events after unsubscribe", n)
	}
}

func TestPatternPlayerStartAndClose(t *testing.T) {
	p, err := NewPatternPlayer(WithFrameSize(4, 4), WithFrameRate(200), WithLength(time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	rec := newRecorder()
	p.Subscribe(rec.callbacks())

	if err := p.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	_ = p.Play()

	seq := p.Frame().Sequence()
	deadline := time.After(5 * time.Second)
	for p.Frame().Sequence() < seq+3 {
		select {
		case <-rec.changed:
		case <-deadline:
			t.Fatal("decode goroutine produced no frames")
		}
	}

	if err := p.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("second Close() = %v", err)
	}
	if err := p.Play(); !errors.Is(err, ErrClosed) {
		t.Errorf("Play after Close = %v, want ErrClosed", err)
	}
	rec.mu.Lock()
	length := rec.length
	rec.mu.Unlock()
	if length != time.Hour {
		t.Errorf("OnLengthChanged = %v, want 1h", length)
	}
}

func TestSolidPattern(t *testing.T) {
	p, err := NewPatternPlayer(WithFrameSize(2, 2), WithPixelFormat(PixelFormatRGBA32), WithPattern(Solid(10, 20, 30)))
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	var pix []byte
	p.Frame().WriteFrame(func(b []byte, _ int) {
		pix = append(pix, b...)
	})
	for i := 0; i < len(pix); i += 4 {
		if pix[i] != 10 || pix[i+1] != 20 || pix[i+2] != 30 || pix[i+3] != 255 {
			t.Fatalf("pixel %d = %v", i/4, pix[i:i+4])
		}
	}
}

func TestColorBarsFillsFrame(t *testing.T) {
	const w, h = 16, 2
	pix := make([]byte, w*h*3)
	ColorBars(pix, w*3, w, h, PixelFormatBGR24, 0)
	// First bar is white, last is near-black.
	if pix[0] != 255 || pix[1] != 255 || pix[2] != 255 {
		t.Errorf("first pixel = %v, want white", pix[0:3])
	}
	last := (w - 1) * 3
	if pix[last] != 16 {
		t.Errorf("last pixel = %v, want 16", pix[last:last+3])
	}
}
