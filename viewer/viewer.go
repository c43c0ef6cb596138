// Package viewer drives the animated lifecycle around a scene group. It
// loads pixel content asynchronously, builds geometry for the configured
// mode, and renders frames on a ticker until disposed. All methods are
// safe for concurrent use.
package viewer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chewxy/math32"

	"github.com/glyphforge/a3d"
	"github.com/glyphforge/a3d/render"
	"github.com/glyphforge/a3d/scene"
)

// Source supplies the pixel buffer to view. svgsource.Source implements it
// for inline markup, file, and URL content; any loader with the same shape
// can stand in.
type Source interface {
	Load(ctx context.Context) (*a3d.Pixmap, error)
}

// Tunables for the turntable animation and pointer interaction.
const (
	defaultFrameRate     = 15
	defaultRotationSpeed = 0.6 // radians per second around Y

	wobbleAmplitude = 0.15 // radians of X tilt
	wobbleRate      = 0.5  // wobble cycles scale against wall-clock seconds

	dragScale = 0.01            // radians per pointer unit
	maxTilt   = math32.Pi / 2.2 // keep the model from flipping over
)

// Config selects the content, conversion, and presentation of a viewer.
// The zero value views nothing; at least one of Source or Pixmap must be
// set. Fields left zero fall back to the package defaults.
type Config struct {
	// Source loads the pixel content when the viewer starts. Ignored
	// when Pixmap is set.
	Source Source

	// Pixmap supplies pre-rasterized content directly.
	Pixmap *a3d.Pixmap

	// Mode picks the geometry style. The zero value is ModePoints.
	Mode scene.Mode

	// Width and Height bound the character grid (and, for the default
	// terminal target, the surface). Zero derives them from the content
	// aspect ratio with a width of a3d.DefaultWidth.
	Width  int
	Height int

	// Conversion controls, applied in grid mode.
	Ramp        a3d.Ramp
	Contrast    float64
	Invert      bool
	EdgeEnhance bool

	// Depth and Density feed the scene builder. Zero keeps the builder
	// defaults.
	Depth   float32
	Density float32

	// Ink tints glyph tiles in grid mode.
	Ink a3d.RGBA

	// AutoRotate spins the model around Y with a sinusoidal X wobble.
	// When off, Drag rotates the model instead.
	AutoRotate bool

	// RotationSpeed is the Y angular velocity in radians per second.
	// Zero uses the default.
	RotationSpeed float32

	// CameraDistance fixes the eye distance. Zero frames the model
	// bounds automatically.
	CameraDistance float32

	// BackgroundColor fills styled cells behind the model on the
	// default terminal target. The zero value leaves the terminal
	// background untouched.
	BackgroundColor a3d.RGBA

	// FrameRate is the tick frequency in frames per second. Zero uses
	// the default.
	FrameRate int

	// Target receives the rendered frames. Nil creates a terminal
	// target on stdout once loading completes. The viewer owns the
	// target either way: it is resized to the content dimensions on
	// attach and released on Dispose.
	Target render.Target

	// OnLoad fires once when the viewer reaches Ready. OnError fires
	// once with the failure when it reaches Error instead. Never both
	// for the same start.
	OnLoad  func()
	OnError func(error)
}

func (c *Config) applyDefaults() {
	if c.FrameRate <= 0 {
		c.FrameRate = defaultFrameRate
	}
	if c.RotationSpeed == 0 {
		c.RotationSpeed = defaultRotationSpeed
	}
}

// Viewer owns one load-render-dispose cycle of a scene group.
type Viewer struct {
	mu     sync.Mutex
	cfg    Config
	state  State
	err    error
	gen    uint64
	cancel context.CancelFunc

	group  *scene.Group
	camera *scene.Camera
	target render.Target

	rotX, rotY float32
	epoch      time.Time
}

// New prepares a viewer in the Uninitialized state. Call Start to begin
// loading.
func New(cfg Config) *Viewer {
	cfg.applyDefaults()
	return &Viewer{
		cfg:    cfg,
		state:  StateUninitialized,
		target: cfg.Target,
		epoch:  time.Now(),
	}
}

// State reports the current lifecycle state.
func (v *Viewer) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Err returns the failure that moved the viewer to StateError, or nil.
func (v *Viewer) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.err
}

// Start begins loading content and returns immediately. Completion is
// reported through the OnLoad and OnError callbacks and the State and Err
// accessors. Start fails only when the viewer has already been started or
// disposed.
func (v *Viewer) Start(ctx context.Context) error {
	v.mu.Lock()
	if v.state != StateUninitialized {
		state := v.state
		v.mu.Unlock()
		return fmt.Errorf("viewer: start from %s state", state)
	}
	v.state = StateLoading
	v.gen++
	gen := v.gen
	cfg := v.cfg
	ctx, v.cancel = context.WithCancel(ctx)
	v.mu.Unlock()

	go v.load(ctx, gen, cfg)
	return nil
}

// load runs the asynchronous half of Start. cfg is a snapshot taken when
// the attempt began, so a concurrent Reconfigure cannot race it.
func (v *Viewer) load(ctx context.Context, gen uint64, cfg Config) {
	pm, err := acquire(ctx, cfg)
	if err != nil {
		v.fail(gen, err)
		return
	}
	group, w, h, err := build(pm, cfg)
	if err != nil {
		v.fail(gen, err)
		return
	}

	v.mu.Lock()
	if v.gen != gen || v.state != StateLoading {
		v.mu.Unlock()
		group.Dispose()
		return
	}
	if v.target == nil {
		v.target = render.NewTerminal(w, h, render.WithBackground(cfg.BackgroundColor))
	}
	v.target.Resize(w, h)
	cam := scene.NewCamera(cfg.CameraDistance)
	cam.SetAspect(cellAspect(w, h))
	cam.FitBounds(group.Bounds())
	v.group = group
	v.camera = cam
	v.state = StateReady
	onLoad := cfg.OnLoad
	v.mu.Unlock()

	a3d.Logger().Info("viewer: ready", "surface_width", w, "surface_height", h, "mode", cfg.Mode)
	if onLoad != nil {
		onLoad()
	}
	go v.run(ctx, gen, cfg.FrameRate)
}

// acquire resolves the configured content into a pixmap.
func acquire(ctx context.Context, cfg Config) (*a3d.Pixmap, error) {
	switch {
	case cfg.Pixmap != nil:
		return cfg.Pixmap, nil
	case cfg.Source != nil:
		return cfg.Source.Load(ctx)
	}
	return nil, a3d.ErrNoContent
}

// build constructs the scene group and reports the surface dimensions the
// target should adopt.
func build(pm *a3d.Pixmap, cfg Config) (*scene.Group, int, int, error) {
	sc := scene.Config{
		Mode:      cfg.Mode,
		Depth:     cfg.Depth,
		Density:   cfg.Density,
		Ramp:      cfg.Ramp,
		GridWidth: cfg.Width,
		Ink:       cfg.Ink,
	}
	if cfg.Mode == scene.ModeGrid {
		var opts []a3d.ConvertOption
		if cfg.Width > 0 {
			opts = append(opts, a3d.WithWidth(cfg.Width))
		}
		if cfg.Height > 0 {
			opts = append(opts, a3d.WithHeight(cfg.Height))
		}
		if len(cfg.Ramp) > 0 {
			opts = append(opts, a3d.WithRamp(cfg.Ramp))
		}
		if cfg.Contrast > 0 {
			opts = append(opts, a3d.WithContrast(cfg.Contrast))
		}
		if cfg.Invert {
			opts = append(opts, a3d.WithInvert(true))
		}
		if cfg.EdgeEnhance {
			opts = append(opts, a3d.WithEdgeEnhance(true))
		}
		grid, err := a3d.Convert(pm, opts...)
		if err != nil {
			return nil, 0, 0, err
		}
		group, err := scene.BuildFromGrid(grid, sc)
		if err != nil {
			return nil, 0, 0, err
		}
		return group, grid.Width, grid.Height, nil
	}

	group, err := scene.Build(pm, sc)
	if err != nil {
		return nil, 0, 0, err
	}
	w, h := cfg.Width, cfg.Height
	if w <= 0 {
		w = a3d.DefaultWidth
	}
	if h <= 0 {
		h = w / 2
	}
	return group, w, h, nil
}

// fail records a load failure unless a newer start or a disposal has
// already superseded this attempt.
func (v *Viewer) fail(gen uint64, err error) {
	v.mu.Lock()
	if v.gen != gen || v.state != StateLoading {
		v.mu.Unlock()
		return
	}
	v.state = StateError
	v.err = err
	onError := v.cfg.OnError
	v.mu.Unlock()

	a3d.Logger().Error("viewer: load failed", "err", err)
	if onError != nil {
		onError(err)
	}
}

// run ticks frames until the context is canceled or the viewer leaves the
// Ready state.
func (v *Viewer) run(ctx context.Context, gen uint64, frameRate int) {
	interval := time.Second / time.Duration(frameRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := float32(now.Sub(last).Seconds())
			last = now
			if !v.tick(gen, now, dt) {
				return
			}
		}
	}
}

// tick advances the turntable and renders one frame. A frame that cannot
// be produced is dropped, never raised.
func (v *Viewer) tick(gen uint64, now time.Time, dt float32) bool {
	v.mu.Lock()
	if v.gen != gen || v.state != StateReady {
		v.mu.Unlock()
		return false
	}
	if v.cfg.AutoRotate {
		v.rotY += v.cfg.RotationSpeed * dt
		v.rotX = wobbleAmplitude * math32.Sin(float32(now.Sub(v.epoch).Seconds())*2*math32.Pi*wobbleRate)
	}
	group, cam, target := v.group, v.camera, v.target
	if group != nil {
		group.SetRotation(scene.V3(v.rotX, v.rotY, 0))
	}
	v.mu.Unlock()

	if group == nil || cam == nil || target == nil {
		return true
	}
	target.Render(group, cam)
	return true
}

// Drag rotates the model by a pointer delta. It only applies when the
// viewer is Ready and auto-rotation is off; the X tilt is clamped so the
// model cannot flip.
func (v *Viewer) Drag(dx, dy float32) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.state != StateReady || v.cfg.AutoRotate {
		return
	}
	v.rotY += dx * dragScale
	v.rotX += dy * dragScale
	if v.rotX > maxTilt {
		v.rotX = maxTilt
	}
	if v.rotX < -maxTilt {
		v.rotX = -maxTilt
	}
	if v.group != nil {
		v.group.SetRotation(scene.V3(v.rotX, v.rotY, 0))
	}
}

// Resize adapts the camera aspect and the target viewport to a new
// surface size. Geometry is not rebuilt.
func (v *Viewer) Resize(width, height int) {
	v.mu.Lock()
	cam, target := v.camera, v.target
	v.mu.Unlock()

	if target != nil {
		target.Resize(width, height)
	}
	if cam != nil {
		cam.SetAspect(cellAspect(width, height))
	}
}

// Dispose stops the tick loop, cancels any in-flight load, and releases
// the scene group and target. It is idempotent and safe in every state.
func (v *Viewer) Dispose() {
	v.mu.Lock()
	if v.state == StateDisposed {
		v.mu.Unlock()
		return
	}
	v.state = StateDisposed
	v.gen++
	cancel := v.cancel
	group := v.group
	target := v.target
	v.cancel = nil
	v.group = nil
	v.camera = nil
	v.target = nil
	v.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if group != nil {
		group.Dispose()
	}
	if target != nil {
		target.Release()
	}
	a3d.Logger().Debug("viewer: disposed")
}

// Reconfigure disposes the current cycle and starts a fresh one with a new
// configuration. Callbacks fire again for the new attempt.
func (v *Viewer) Reconfigure(ctx context.Context, cfg Config) error {
	v.Dispose()

	cfg.applyDefaults()
	v.mu.Lock()
	v.cfg = cfg
	v.state = StateUninitialized
	v.err = nil
	v.target = cfg.Target
	v.rotX = 0
	v.rotY = 0
	v.mu.Unlock()

	return v.Start(ctx)
}

// cellAspect converts a character-cell surface size into a projection
// aspect ratio, accounting for cells being twice as tall as wide.
func cellAspect(width, height int) float32 {
	if width <= 0 || height <= 0 {
		return 1
	}
	return float32(width) / (float32(height) * float32(a3d.CharAspect))
}
