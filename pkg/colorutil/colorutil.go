// Package colorutil provides shared color utilities for the drawing surface
// and exporters.
package colorutil

import (
	"fmt"
	"image/color"
	"strings"
)

// Common stroke and fill colors used throughout the application.
var (
	Black   = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Red     = color.RGBA{R: 224, G: 49, B: 49, A: 255}
	Green   = color.RGBA{R: 47, G: 158, B: 68, A: 255}
	Blue    = color.RGBA{R: 25, G: 113, B: 194, A: 255}
	Yellow  = color.RGBA{R: 252, G: 196, B: 25, A: 255}
	Orange  = color.RGBA{R: 232, G: 89, B: 12, A: 255}
	Magenta = color.RGBA{R: 190, G: 75, B: 219, A: 255}
)

var named = map[string]color.RGBA{
	"black":   Black,
	"white":   White,
	"red":     Red,
	"green":   Green,
	"blue":    Blue,
	"yellow":  Yellow,
	"orange":  Orange,
	"magenta": Magenta,
}

// Parse converts a color string to an RGBA color. Accepted forms are
// "#rgb", "#rrggbb", "#rrggbbaa", and the named colors above. Unknown
// strings fall back to black so a bad option value never breaks rendering.
func Parse(s string) color.RGBA {
	c, err := TryParse(s)
	if err != nil {
		return Black
	}
	return c
}

// TryParse is Parse with an explicit error for malformed input.
func TryParse(s string) (color.RGBA, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if c, ok := named[s]; ok {
		return c, nil
	}
	if !strings.HasPrefix(s, "#") {
		return color.RGBA{}, fmt.Errorf("unknown color %q", s)
	}

	hex := s[1:]
	var r, g, b, a uint8
	a = 255
	switch len(hex) {
	case 3:
		if _, err := fmt.Sscanf(hex, "%1x%1x%1x", &r, &g, &b); err != nil {
			return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
		}
		r *= 17
		g *= 17
		b *= 17
	case 6:
		if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
			return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
		}
	case 8:
		if _, err := fmt.Sscanf(hex, "%02x%02x%02x%02x", &r, &g, &b, &a); err != nil {
			return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
		}
	default:
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	return color.RGBA{R: r, G: g, B: b, A: a}, nil
}

// Format returns the "#rrggbb" form of a color, or "#rrggbbaa" when the
// alpha channel is not fully opaque.
func Format(c color.RGBA) string {
	if c.A != 255 {
		return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// WithOpacity scales a color's alpha channel by the given factor in [0, 1].
func WithOpacity(c color.RGBA, opacity float64) color.RGBA {
	if opacity >= 1 {
		return c
	}
	if opacity < 0 {
		opacity = 0
	}
	c.A = uint8(float64(c.A) * opacity)
	return c
}

// Blend alpha-blends src over dst using the src alpha channel.
func Blend(dst, src color.RGBA) color.RGBA {
	alpha := float64(src.A) / 255.0
	inv := 1 - alpha
	return color.RGBA{
		R: uint8(float64(src.R)*alpha + float64(dst.R)*inv),
		G: uint8(float64(src.G)*alpha + float64(dst.G)*inv),
		B: uint8(float64(src.B)*alpha + float64(dst.B)*inv),
		A: 255,
	}
}
