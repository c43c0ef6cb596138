package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/glyphforge/a3d"
)

// profile holds every tunable of the command so presets can be stored in
// YAML and selectively overridden by flags.
type profile struct {
	Input          string  `yaml:"input"`
	URL            string  `yaml:"url"`
	Width          int     `yaml:"width"`
	Height         int     `yaml:"height"`
	Ramp           string  `yaml:"ramp"`
	Contrast       float64 `yaml:"contrast"`
	Invert         bool    `yaml:"invert"`
	EdgeEnhance    bool    `yaml:"edge_enhance"`
	Color          bool    `yaml:"color"`
	Mode           string  `yaml:"mode"`
	Depth          float64 `yaml:"depth"`
	Density        float64 `yaml:"density"`
	Rotate         bool    `yaml:"rotate"`
	RotationSpeed  float64 `yaml:"rotation_speed"`
	CameraDistance float64 `yaml:"camera_distance"`
	Background     string  `yaml:"background"`
	FPS            int     `yaml:"fps"`
}

func defaultProfile() profile {
	return profile{
		Ramp:          "standard",
		Contrast:      1.0,
		Mode:          "grid",
		Depth:         10,
		Density:       0.6,
		Rotate:        true,
		RotationSpeed: 0.6,
		FPS:           15,
	}
}

// loadProfile reads a YAML preset over the defaults, so a preset only
// needs to name the fields it changes.
func loadProfile(path string) (profile, error) {
	p := defaultProfile()
	data, err := os.ReadFile(path)
	if err != nil {
		return p, err
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parse profile %s: %w", path, err)
	}
	return p, nil
}

// resolveRamp accepts a built-in ramp name or literal glyphs ordered
// darkest to lightest.
func resolveRamp(s string) (a3d.Ramp, error) {
	if r, ok := a3d.RampNamed(strings.ToLower(s)); ok {
		return r, nil
	}
	return a3d.NewRamp(s)
}

// parseHexColor reads #rgb or #rrggbb notation. The leading # is optional.
func parseHexColor(s string) (a3d.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return a3d.RGBA{}, fmt.Errorf("color %q: want #rgb or #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return a3d.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return a3d.RGBA{
		R: float64(v>>16&0xff) / 255,
		G: float64(v>>8&0xff) / 255,
		B: float64(v&0xff) / 255,
		A: 1,
	}, nil
}
