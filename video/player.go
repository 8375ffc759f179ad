// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package video

import (
	"errors"
	"sync"
	"time"
)

// ErrClosed is returned by transport controls after Close.
var ErrClosed = errors.New("video: player closed")

// Callbacks receive playback notifications. They run on the player's
// goroutine; nil fields are skipped.
type Callbacks struct {
	// OnPositionChanged reports the playback position in [0, 1].
	OnPositionChanged func(pos float32)

	OnPlaying func()
	OnPaused  func()

	// OnTimeChanged reports the playback time.
	OnTimeChanged func(t time.Duration)

	// OnLengthChanged reports the media duration once known.
	OnLengthChanged func(d time.Duration)
}

// Player is a video source with transport controls.
type Player interface {
	// Frame returns the surface the player decodes into.
	Frame() *FrameSurface

	Play() error
	Pause() error

	// Seek moves to a normalized position in [0, 1].
	Seek(pos float32) error

	// SeekTime moves to an absolute time.
	SeekTime(t time.Duration) error

	Playing() bool
	Position() float32
	Time() time.Duration
	Length() time.Duration

	// Subscribe registers cb and returns a function that unregisters it.
	Subscribe(cb Callbacks) (unsubscribe func())

	Close() error
}

// subscribers is a set of Callbacks safe for concurrent use.
type subscribers struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]Callbacks
}

func (s *subscribers) add(cb Callbacks) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subs == nil {
		s.subs = make(map[int]Callbacks)
	}
	id := s.nextID
	s.nextID++
	s.subs[id] = cb
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// each calls fn for every subscriber outside the lock.
func (s *subscribers) each(fn func(Callbacks)) {
	s.mu.Lock()
	list := make([]Callbacks, 0, len(s.subs))
	for _, cb := range s.subs {
		list = append(list, cb)
	}
	s.mu.Unlock()
	for _, cb := range list {
		fn(cb)
	}
}

func (s *subscribers) positionChanged(pos float32) {
	s.each(func(cb Callbacks) {
		if cb.OnPositionChanged != nil {
			cb.OnPositionChanged(pos)
		}
	})
}

func (s *subscribers) playing() {
	s.each(func(cb Callbacks) {
		if cb.OnPlaying != nil {
			cb.OnPlaying()
		}
	})
}

func (s *subscribers) paused() {
	s.each(func(cb Callbacks) {
		if cb.OnPaused != nil {
			cb.OnPaused()
		}
	})
}

func (s *subscribers) timeChanged(t time.Duration) {
	s.each(func(cb Callbacks) {
		if cb.OnTimeChanged != nil {
			cb.OnTimeChanged(t)
		}
	})
}

func (s *subscribers) lengthChanged(d time.Duration) {
	s.each(func(cb Callbacks) {
		if cb.OnLengthChanged != nil {
			cb.OnLengthChanged(d)
		}
	})
}
