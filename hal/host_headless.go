package hal

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"
)

// HeadlessConfig controls the no-window host backend.
type HeadlessConfig struct {
	// Hz paces SwapBuffers. Zero renders as fast as possible.
	Hz int
	// Frames closes the window after this many presented frames.
	// Zero keeps it open until the context is done.
	Frames uint64
	// Supersample renders at N times the window size.
	Supersample int
}

var ErrNoFrame = errors.New("headless: no frame presented")

// Headless is a HAL that rasterizes in software into an in-memory
// framebuffer instead of opening a window. The close signal is the frame
// budget running out or the context being cancelled.
type Headless struct {
	ctx    context.Context
	cfg    HeadlessConfig
	logger Logger

	win *headlessWindow
	gpu *softGPU
}

// NewHeadless returns a headless HAL. Cancelling ctx closes its window.
func NewHeadless(ctx context.Context, cfg HeadlessConfig, logger Logger) *Headless {
	if cfg.Supersample <= 0 {
		cfg.Supersample = 1
	}
	if logger == nil {
		logger = Discard
	}
	return &Headless{
		ctx:    ctx,
		cfg:    cfg,
		logger: logger,
		gpu:    newSoftGPU(logger, cfg.Supersample),
	}
}

func (h *Headless) Logger() Logger       { return h.logger }
func (h *Headless) Windowing() Windowing { return h }
func (h *Headless) Context() Context     { return h.gpu }
func (h *Headless) Pipeline() Pipeline   { return h.gpu }
func (h *Headless) Buffers() Buffers     { return h.gpu }

// Supersample returns the framebuffer scale relative to the window size.
func (h *Headless) Supersample() int { return h.cfg.Supersample }

// Frames returns the number of presented frames.
func (h *Headless) Frames() uint64 {
	if h.win == nil {
		return 0
	}
	return h.win.frames
}

// Snapshot returns a copy of the last presented frame at framebuffer
// resolution (window size times Supersample). It stays available after the
// window is destroyed.
func (h *Headless) Snapshot() (*image.RGBA, error) {
	if h.win == nil || h.win.frames == 0 {
		return nil, ErrNoFrame
	}
	return h.win.fb.snapshot(), nil
}

func (h *Headless) CreateWindow(width, height int, title string) (Window, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("headless: invalid window size %dx%d", width, height)
	}
	if h.win != nil {
		return nil, errors.New("headless: window already created")
	}
	if err := h.ctx.Err(); err != nil {
		return nil, fmt.Errorf("headless: %w", err)
	}

	w := &headlessWindow{
		ctx:    h.ctx,
		width:  width,
		height: height,
		title:  title,
		budget: h.cfg.Frames,
		fb:     newHostFramebuffer(width*h.cfg.Supersample, height*h.cfg.Supersample),
	}
	if h.cfg.Hz > 0 {
		d := time.Second / time.Duration(h.cfg.Hz)
		if d <= 0 {
			return nil, fmt.Errorf("headless: invalid hz: %d", h.cfg.Hz)
		}
		w.ticker = time.NewTicker(d)
	}
	h.win = w
	return w, nil
}

func (h *Headless) PollEvents() {
	if h.win == nil {
		return
	}
	select {
	case <-h.ctx.Done():
		h.win.closing = true
	default:
	}
}

func (h *Headless) Terminate() {}

type headlessWindow struct {
	ctx           context.Context
	width, height int
	title         string
	budget        uint64
	fb            *hostFramebuffer
	ticker        *time.Ticker

	frames    uint64
	closing   bool
	destroyed bool
}

func (w *headlessWindow) ShouldClose() bool {
	if w.closing || w.destroyed {
		return true
	}
	return w.budget > 0 && w.frames >= w.budget
}

func (w *headlessWindow) SwapBuffers() {
	if w.destroyed {
		return
	}
	if w.ticker != nil {
		select {
		case <-w.ctx.Done():
			w.closing = true
			return
		case <-w.ticker.C:
		}
	}
	w.fb.present()
	w.frames++
}

func (w *headlessWindow) Size() (int, int) { return w.width, w.height }

func (w *headlessWindow) Destroy() {
	if w.ticker != nil {
		w.ticker.Stop()
	}
	w.destroyed = true
}
