// Command a3d converts vector artwork into character-grid art, printed
// once or animated as rotating glyph geometry in the terminal.
//
// Usage:
//
//	a3d logo.svg
//	a3d -url https://example.com/logo.svg -view -mode points
//	a3d -color -width 100 gopher.png
//	cat logo.svg | a3d -invert -width 120 -
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/muesli/termenv"

	"github.com/glyphforge/a3d"
	"github.com/glyphforge/a3d/render"
	"github.com/glyphforge/a3d/scene"
	"github.com/glyphforge/a3d/svgsource"
	"github.com/glyphforge/a3d/viewer"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("a3d: ")

	var (
		profilePath = flag.String("profile", "", "YAML preset file")
		urlFlag     = flag.String("url", "", "fetch the input from a URL")
		width       = flag.Int("width", 0, "grid width in cells (0 derives a default)")
		height      = flag.Int("height", 0, "grid height in cells (0 derives from the aspect ratio)")
		ramp        = flag.String("ramp", "standard", "ramp name (detailed, standard, simple, blocks, minimal) or literal glyphs")
		contrast    = flag.Float64("contrast", 1.0, "contrast factor around mid gray")
		invert      = flag.Bool("invert", false, "map dark source areas to light glyphs")
		edges       = flag.Bool("edges", false, "darken cells along detected edges")
		colorize    = flag.Bool("color", false, "color grid output from the source buffer")
		mode        = flag.String("mode", "grid", "geometry mode: grid, points, mesh, wireframe")
		depth       = flag.Float64("depth", 10, "extrusion depth")
		density     = flag.Float64("density", 0.6, "point sampling density (points mode)")
		view        = flag.Bool("view", false, "animate in the terminal until interrupted")
		rotate      = flag.Bool("rotate", true, "auto-rotate in view mode")
		speed       = flag.Float64("speed", 0.6, "rotation speed in radians per second")
		distance    = flag.Float64("distance", 0, "camera distance (0 frames the model)")
		background  = flag.String("bg", "", "background color as #rrggbb (view mode)")
		fps         = flag.Int("fps", 15, "frames per second in view mode")
		dumpRaster  = flag.String("dump-raster", "", "write the rasterized buffer to a PNG file")
		verbose     = flag.Bool("v", false, "log pipeline details to stderr")
	)
	flag.Parse()

	if *verbose {
		a3d.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	cfg := defaultProfile()
	if *profilePath != "" {
		var err error
		if cfg, err = loadProfile(*profilePath); err != nil {
			log.Fatal(err)
		}
	}
	// Explicit flags win over the preset.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "url":
			cfg.URL = *urlFlag
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "ramp":
			cfg.Ramp = *ramp
		case "contrast":
			cfg.Contrast = *contrast
		case "invert":
			cfg.Invert = *invert
		case "edges":
			cfg.EdgeEnhance = *edges
		case "color":
			cfg.Color = *colorize
		case "mode":
			cfg.Mode = *mode
		case "depth":
			cfg.Depth = *depth
		case "density":
			cfg.Density = *density
		case "rotate":
			cfg.Rotate = *rotate
		case "speed":
			cfg.RotationSpeed = *speed
		case "distance":
			cfg.CameraDistance = *distance
		case "bg":
			cfg.Background = *background
		case "fps":
			cfg.FPS = *fps
		}
	})
	if flag.NArg() > 0 {
		cfg.Input = flag.Arg(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *view, *dumpRaster); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg profile, view bool, dumpRaster string) error {
	pm, err := loadContent(ctx, cfg)
	if err != nil {
		return err
	}
	if dumpRaster != "" {
		if err := pm.SavePNG(dumpRaster); err != nil {
			return err
		}
		log.Printf("raster written to %s (%dx%d)", dumpRaster, pm.Width(), pm.Height())
	}

	r, err := resolveRamp(cfg.Ramp)
	if err != nil {
		return err
	}
	m, err := scene.ParseMode(cfg.Mode)
	if err != nil {
		return err
	}

	if view {
		return runViewer(ctx, cfg, pm, r, m)
	}
	if m == scene.ModeGrid {
		return printGrid(cfg, pm, r)
	}
	return printFrame(cfg, pm, r, m)
}

// loadContent resolves the configured input into a pixel buffer. The
// input name "-" reads markup from stdin.
func loadContent(ctx context.Context, cfg profile) (*a3d.Pixmap, error) {
	src := svgsource.Source{URL: cfg.URL}
	switch {
	case cfg.Input == "-":
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, err
		}
		src.Markup = string(data)
	case cfg.Input != "":
		src.Path = cfg.Input
	}
	return src.Load(ctx)
}

func printGrid(cfg profile, pm *a3d.Pixmap, ramp a3d.Ramp) error {
	opts := []a3d.ConvertOption{a3d.WithRamp(ramp)}
	if cfg.Width > 0 {
		opts = append(opts, a3d.WithWidth(cfg.Width))
	}
	if cfg.Height > 0 {
		opts = append(opts, a3d.WithHeight(cfg.Height))
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
		return err
	}
	if !cfg.Color {
		fmt.Print(grid.Text)
		return nil
	}
	fmt.Print(colorizeGrid(grid, pm, termenv.NewOutput(os.Stdout)))
	return nil
}

// colorizeGrid styles every glyph with its cell's average source color,
// batching equal-colored runs into one escape sequence. Profiles without
// color fall back to the plain text.
func colorizeGrid(grid *a3d.Grid, pm *a3d.Pixmap, out *termenv.Output) string {
	p := out.Profile
	if p == termenv.Ascii {
		return grid.Text
	}
	colors := a3d.CellColors(pm, grid.Width, grid.Height)

	var b strings.Builder
	b.Grow(len(grid.Text))
	for y, row := range grid.Rows() {
		x := 0
		for x < len(row) {
			col := colors[y][x]
			run := x
			for run < len(row) && colors[y][run] == col {
				run++
			}
			seg := string(row[x:run])
			if col.A > 0 {
				b.WriteString(out.String(seg).Foreground(p.FromColor(col.Color())).String())
			} else {
				b.WriteString(seg)
			}
			x = run
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// printFrame renders a single still of the 3D modes and prints it.
func printFrame(cfg profile, pm *a3d.Pixmap, ramp a3d.Ramp, mode scene.Mode) error {
	group, err := scene.Build(pm, scene.Config{
		Mode:      mode,
		Depth:     float32(cfg.Depth),
		Density:   float32(cfg.Density),
		Ramp:      ramp,
		GridWidth: cfg.Width,
	})
	if err != nil {
		return err
	}
	defer group.Dispose()

	w, h := surfaceDims(cfg)
	t := render.NewTerminal(w, h, render.WithWriter(io.Discard))
	defer t.Release()

	cam := scene.NewCamera(float32(cfg.CameraDistance))
	cam.SetAspect(float32(w) / (float32(h) * float32(a3d.CharAspect)))
	cam.FitBounds(group.Bounds())
	t.Render(group, cam)
	fmt.Print(t.Snapshot())
	return nil
}

func runViewer(ctx context.Context, cfg profile, pm *a3d.Pixmap, ramp a3d.Ramp, mode scene.Mode) error {
	var bg a3d.RGBA
	if cfg.Background != "" {
		var err error
		if bg, err = parseHexColor(cfg.Background); err != nil {
			return err
		}
	}

	errc := make(chan error, 1)
	v := viewer.New(viewer.Config{
		Pixmap:          pm,
		Mode:            mode,
		Width:           cfg.Width,
		Height:          cfg.Height,
		Ramp:            ramp,
		Contrast:        cfg.Contrast,
		Invert:          cfg.Invert,
		EdgeEnhance:     cfg.EdgeEnhance,
		Depth:           float32(cfg.Depth),
		Density:         float32(cfg.Density),
		AutoRotate:      cfg.Rotate,
		RotationSpeed:   float32(cfg.RotationSpeed),
		CameraDistance:  float32(cfg.CameraDistance),
		BackgroundColor: bg,
		FrameRate:       cfg.FPS,
		OnError:         func(err error) { errc <- err },
	})
	defer v.Dispose()

	if err := v.Start(ctx); err != nil {
		return err
	}
	select {
	case <-ctx.Done():
		return nil
	case err := <-errc:
		return err
	}
}

func surfaceDims(cfg profile) (int, int) {
	w, h := cfg.Width, cfg.Height
	if w <= 0 {
		w = a3d.DefaultWidth
	}
	if h <= 0 {
		h = w / 2
	}
	return w, h
}
