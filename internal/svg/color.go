package svg

import (
	"fmt"
	"strings"
)

// Color is a CSS color value: a named/hex string, or an RGB(A) triple.
// The zero value is "none".
type Color struct {
	set     bool
	literal string
	hasRGB  bool
	r, g, b uint8
	hasA    bool
	a       float64
}

// NoColor is the absent color. A fill or stroke that is never set emits
// no attribute; one set to NoColor emits "none".
var NoColor = Color{}

// NamedColor wraps an arbitrary CSS color string (e.g. "red", "#3c3").
func NamedColor(name string) Color {
	return Color{set: true, literal: name}
}

// RGB builds an opaque rgb(...) color.
func RGB(r, g, b uint8) Color {
	return Color{set: true, hasRGB: true, r: r, g: g, b: b}
}

// RGBA builds a translucent rgba(...) color.
func RGBA(r, g, b uint8, alpha float64) Color {
	return Color{set: true, hasRGB: true, hasA: true, r: r, g: g, b: b, a: alpha}
}

// IsSet reports whether the color carries a value (vs. the zero value).
func (c Color) IsSet() bool { return c.set }

func (c Color) String() string {
	if !c.set {
		return "none"
	}
	if c.hasRGB {
		if c.hasA {
			return fmt.Sprintf("rgba(%d,%d,%d,%s)", c.r, c.g, c.b, formatOpacity(c.a))
		}
		return fmt.Sprintf("rgb(%d,%d,%d)", c.r, c.g, c.b)
	}
	return c.literal
}

func formatOpacity(a float64) string {
	s := fmt.Sprintf("%g", a)
	if !strings.Contains(s, ".") && !strings.Contains(s, "e") {
		return s
	}
	return s
}

// StrokeLineCap mirrors the SVG stroke-linecap attribute.
type StrokeLineCap int

const (
	LineCapUnset StrokeLineCap = iota
	LineCapButt
	LineCapRound
	LineCapSquare
)

func (c StrokeLineCap) String() string {
	switch c {
	case LineCapButt:
		return "butt"
	case LineCapRound:
		return "round"
	case LineCapSquare:
		return "square"
	default:
		return ""
	}
}

// StrokeLineJoin mirrors the SVG stroke-linejoin attribute.
type StrokeLineJoin int

const (
	LineJoinUnset StrokeLineJoin = iota
	LineJoinArcs
	LineJoinBevel
	LineJoinMiter
	LineJoinMiterClip
	LineJoinRound
)

func (j StrokeLineJoin) String() string {
	switch j {
	case LineJoinArcs:
		return "arcs"
	case LineJoinBevel:
		return "bevel"
	case LineJoinMiter:
		return "miter"
	case LineJoinMiterClip:
		return "miter-clip"
	case LineJoinRound:
		return "round"
	default:
		return ""
	}
}
