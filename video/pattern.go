// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package video

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// PatternFunc renders the test pattern for time t into pix.
type PatternFunc func(pix []byte, stride, width, height int, format PixelFormat, t time.Duration)

// PatternOption configures a PatternPlayer.
type PatternOption func(*patternOptions)

type patternOptions struct {
	width, height int
	format        PixelFormat
	fps           float64
	length        time.Duration
	pattern       PatternFunc
}

func defaultPatternOptions() patternOptions {
	return patternOptions{
		width:   1280,
		height:  720,
		format:  PixelFormatBGR24,
		fps:     30,
		length:  2 * time.Minute,
		pattern: ColorBars,
	}
}

// WithFrameSize sets the decoded frame size.
func WithFrameSize(width, height int) PatternOption {
	return func(o *patternOptions) {
		o.width, o.height = width, height
	}
}

// WithPixelFormat sets the decoded pixel format.
func WithPixelFormat(f PixelFormat) PatternOption {
	return func(o *patternOptions) {
		o.format = f
	}
}

// WithFrameRate sets the decode rate in frames per second.
func WithFrameRate(fps float64) PatternOption {
	return func(o *patternOptions) {
		if fps > 0 {
			o.fps = fps
		}
	}
}

// WithLength sets the media duration.
func WithLength(d time.Duration) PatternOption {
	return func(o *patternOptions) {
		if d > 0 {
			o.length = d
		}
	}
}

// WithPattern sets the frame generator.
func WithPattern(fn PatternFunc) PatternOption {
	return func(o *patternOptions) {
		if fn != nil {
			o.pattern = fn
		}
	}
}

// PatternPlayer is a Player that generates frames instead of decoding.
// Playback stops at the end of the media.
type PatternPlayer struct {
	opts  patternOptions
	frame *FrameSurface
	subs  subscribers

	mu      sync.Mutex
	playing bool
	t       time.Duration
	closed  bool

	cancel context.CancelFunc
	group  *errgroup.Group
}

var _ Player = (*PatternPlayer)(nil)

// NewPatternPlayer creates a paused player at time zero and renders its
// first frame.
func NewPatternPlayer(opts ...PatternOption) (*PatternPlayer, error) {
	o := defaultPatternOptions()
	for _, opt := range opts {
		opt(&o)
	}
	frame, err := NewFrameSurface(o.width, o.height, o.format)
	if err != nil {
		return nil, err
	}
	p := &PatternPlayer{opts: o, frame: frame}
	p.render(0)
	return p, nil
}

// Start launches the decode goroutine and announces the media length.
// The goroutine stops when ctx is canceled or Close is called.
func (p *PatternPlayer) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrClosed
	}
	if p.group != nil {
		p.mu.Unlock()
		return nil
	}
	ctx, p.cancel = context.WithCancel(ctx)
	p.group, ctx = errgroup.WithContext(ctx)
	g := p.group
	p.mu.Unlock()

	p.subs.lengthChanged(p.opts.length)
	interval := time.Duration(float64(time.Second) / p.opts.fps)
	g.Go(func() error {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				p.Advance(interval)
			}
		}
	})
	slogger().Info("video: pattern player started",
		"width", p.opts.width, "height", p.opts.height, "format", p.opts.format.String(), "fps", p.opts.fps)
	return nil
}

// Advance moves playback forward by dt if playing and renders the frame.
// The decode goroutine calls it once per tick; tests call it directly.
func (p *PatternPlayer) Advance(dt time.Duration) {
	p.mu.Lock()
	if !p.playing || p.closed {
		p.mu.Unlock()
		return
	}
	p.t += dt
	ended := p.t >= p.opts.length
	if ended {
		p.t = p.opts.length
		p.playing = false
	}
	t := p.t
	p.mu.Unlock()

	p.render(t)
	p.notifyTime(t)
	if ended {
		slogger().Debug("video: end of media")
		p.subs.paused()
	}
}

func (p *PatternPlayer) render(t time.Duration) {
	o := p.opts
	p.frame.WriteFrame(func(pix []byte, stride int) {
		o.pattern(pix, stride, o.width, o.height, o.format, t)
	})
}

func (p *PatternPlayer) notifyTime(t time.Duration) {
	p.subs.timeChanged(t)
	p.subs.positionChanged(p.position(t))
}

func (p *PatternPlayer) position(t time.Duration) float32 {
	return float32(float64(t) / float64(p.opts.length))
}

// Frame returns the surface frames are rendered into.
func (p *PatternPlayer) Frame() *FrameSurface { return p.frame }

// Play starts or resumes playback. Playing at the end restarts from zero.
func (p *PatternPlayer) Play() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrClosed
	}
	if p.playing {
		p.mu.Unlock()
		return nil
	}
	if p.t >= p.opts.length {
		p.t = 0
	}
	p.playing = true
	p.mu.Unlock()

	p.subs.playing()
	return nil
}

// Pause stops playback.
func (p *PatternPlayer) Pause() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrClosed
	}
	if !p.playing {
		p.mu.Unlock()
		return nil
	}
	p.playing = false
	p.mu.Unlock()

	p.subs.paused()
	return nil
}

// Seek moves to pos, clamped to [0, 1].
func (p *PatternPlayer) Seek(pos float32) error {
	pos = min(max(pos, 0), 1)
	return p.SeekTime(time.Duration(float64(pos) * float64(p.opts.length)))
}

// SeekTime moves to t, clamped to the media length.
func (p *PatternPlayer) SeekTime(t time.Duration) error {
	t = min(max(t, 0), p.opts.length)
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrClosed
	}
	p.t = t
	p.mu.Unlock()

	p.render(t)
	p.notifyTime(t)
	return nil
}

// Playing reports whether playback is running.
func (p *PatternPlayer) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// Position returns the normalized playback position.
func (p *PatternPlayer) Position() float32 {
	return p.position(p.Time())
}

// Time returns the playback time.
func (p *PatternPlayer) Time() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.t
}

// Length returns the media duration.
func (p *PatternPlayer) Length() time.Duration { return p.opts.length }

// Subscribe registers playback callbacks.
func (p *PatternPlayer) Subscribe(cb Callbacks) func() {
	return p.subs.add(cb)
}

// Close stops the decode goroutine and waits for it to exit.
// Close is idempotent.
func (p *PatternPlayer) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.playing = false
	cancel, g := p.cancel, p.group
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if g != nil {
		return g.Wait()
	}
	return nil
}

// ColorBars is the default pattern: eight vertical bars scrolling
// horizontally over time.
func ColorBars(pix []byte, stride, width, height int, format PixelFormat, t time.Duration) {
	bars := [8][3]byte{
		{255, 255, 255}, {255, 255, 0}, {0, 255, 255}, {0, 255, 0},
		{255, 0, 255}, {255, 0, 0}, {0, 0, 255}, {16, 16, 16},
	}
	bpp := format.BytesPerPixel()
	shift := int(t.Milliseconds() / 10)
	for y := 0; y < height; y++ {
		row := pix[y*stride : y*stride+width*bpp]
		for x := 0; x < width; x++ {
			c := bars[((x+shift)%width)*len(bars)/width]
			i := x * bpp
			switch format {
			case PixelFormatRGBA32:
				row[i+0], row[i+1], row[i+2], row[i+3] = c[0], c[1], c[2], 0xff
			default:
				row[i+0], row[i+1], row[i+2] = c[2], c[1], c[0]
			}
		}
	}
}

// Solid returns a pattern filling the frame with one RGB color.
func Solid(r, g, b byte) PatternFunc {
	return func(pix []byte, stride, width, height int, format PixelFormat, _ time.Duration) {
		bpp := format.BytesPerPixel()
		for y := 0; y < height; y++ {
			row := pix[y*stride : y*stride+width*bpp]
			for i := 0; i < len(row); i += bpp {
				if format == PixelFormatRGBA32 {
					row[i+0], row[i+1], row[i+2], row[i+3] = r, g, b, 0xff
				} else {
					row[i+0], row[i+1], row[i+2] = b, g, r
				}
			}
		}
	}
}
