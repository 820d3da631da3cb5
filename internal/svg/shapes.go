package svg

import (
	"fmt"
	"strconv"
	"strings"
)

// Point is a position in the SVG user coordinate plane.
type Point struct {
	X, Y float64
}

// pathProps holds the stroke/fill attributes shared by every shape, the Go
// equivalent of the original's PathProps<Owner> CRTP mixin.
type pathProps struct {
	fill          Color
	fillSet       bool
	stroke        Color
	strokeSet     bool
	strokeWidth   float64
	strokeWidthOK bool
	lineCap       StrokeLineCap
	lineJoin      StrokeLineJoin
}

func (p *pathProps) setFill(c Color) {
	p.fill = c
	p.fillSet = true
}

func (p *pathProps) setStroke(c Color) {
	p.stroke = c
	p.strokeSet = true
}

func (p *pathProps) setStrokeWidth(w float64) {
	p.strokeWidth = w
	p.strokeWidthOK = true
}

func (p *pathProps) renderAttrs(b *strings.Builder) {
	if p.fillSet {
		fmt.Fprintf(b, ` fill="%s"`, p.fill)
	}
	if p.strokeSet {
		fmt.Fprintf(b, ` stroke="%s"`, p.stroke)
	}
	if p.strokeWidthOK {
		fmt.Fprintf(b, ` stroke-width="%s"`, formatNumber(p.strokeWidth))
	}
	if p.lineCap != LineCapUnset {
		fmt.Fprintf(b, ` stroke-linecap="%s"`, p.lineCap)
	}
	if p.lineJoin != LineJoinUnset {
		fmt.Fprintf(b, ` stroke-linejoin="%s"`, p.lineJoin)
	}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Shape is anything that can render itself as one SVG element.
type Shape interface {
	renderShape(b *strings.Builder, indent string)
}

// Circle models an SVG <circle>.
type Circle struct {
	pathProps
	Center Point
	Radius float64
}

func NewCircle() *Circle {
	c := &Circle{Radius: 1}
	return c
}

func (c *Circle) SetCenter(p Point) *Circle            { c.Center = p; return c }
func (c *Circle) SetRadius(r float64) *Circle          { c.Radius = r; return c }
func (c *Circle) SetFillColor(col Color) *Circle       { c.setFill(col); return c }
func (c *Circle) SetStrokeColor(col Color) *Circle     { c.setStroke(col); return c }
func (c *Circle) SetStrokeWidth(w float64) *Circle     { c.setStrokeWidth(w); return c }
func (c *Circle) SetStrokeLineCap(v StrokeLineCap) *Circle {
	c.lineCap = v
	return c
}
func (c *Circle) SetStrokeLineJoin(v StrokeLineJoin) *Circle {
	c.lineJoin = v
	return c
}

func (c *Circle) renderShape(b *strings.Builder, indent string) {
	b.WriteString(indent)
	fmt.Fprintf(b, `<circle cx="%s" cy="%s" r="%s"`,
		formatNumber(c.Center.X), formatNumber(c.Center.Y), formatNumber(c.Radius))
	c.renderAttrs(b)
	b.WriteString("/>\n")
}

// Polyline models an SVG <polyline>.
type Polyline struct {
	pathProps
	Points []Point
}

func NewPolyline() *Polyline { return &Polyline{} }

func (p *Polyline) AddPoint(pt Point) *Polyline {
	p.Points = append(p.Points, pt)
	return p
}
func (p *Polyline) SetFillColor(col Color) *Polyline   { p.setFill(col); return p }
func (p *Polyline) SetStrokeColor(col Color) *Polyline { p.setStroke(col); return p }
func (p *Polyline) SetStrokeWidth(w float64) *Polyline { p.setStrokeWidth(w); return p }
func (p *Polyline) SetStrokeLineCap(v StrokeLineCap) *Polyline {
	p.lineCap = v
	return p
}
func (p *Polyline) SetStrokeLineJoin(v StrokeLineJoin) *Polyline {
	p.lineJoin = v
	return p
}

func (p *Polyline) renderShape(b *strings.Builder, indent string) {
	b.WriteString(indent)
	b.WriteString(`<polyline points="`)
	for i, pt := range p.Points {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(formatNumber(pt.X))
		b.WriteByte(',')
		b.WriteString(formatNumber(pt.Y))
	}
	b.WriteByte('"')
	p.renderAttrs(b)
	b.WriteString("/>\n")
}

// Text models an SVG <text>.
type Text struct {
	pathProps
	Pos        Point
	Offset     Point
	FontSize   uint32
	FontFamily string
	FontWeight string
	Data       string
}

func NewText() *Text { return &Text{FontSize: 1} }

func (t *Text) SetPosition(p Point) *Text      { t.Pos = p; return t }
func (t *Text) SetOffset(p Point) *Text        { t.Offset = p; return t }
func (t *Text) SetFontSize(sz uint32) *Text    { t.FontSize = sz; return t }
func (t *Text) SetFontFamily(f string) *Text   { t.FontFamily = f; return t }
func (t *Text) SetFontWeight(w string) *Text   { t.FontWeight = w; return t }
func (t *Text) SetData(d string) *Text         { t.Data = d; return t }
func (t *Text) SetFillColor(col Color) *Text   { t.setFill(col); return t }
func (t *Text) SetStrokeColor(col Color) *Text { t.setStroke(col); return t }
func (t *Text) SetStrokeWidth(w float64) *Text { t.setStrokeWidth(w); return t }
func (t *Text) SetStrokeLineCap(v StrokeLineCap) *Text {
	t.lineCap = v
	return t
}
func (t *Text) SetStrokeLineJoin(v StrokeLineJoin) *Text {
	t.lineJoin = v
	return t
}

func (t *Text) renderShape(b *strings.Builder, indent string) {
	b.WriteString(indent)
	fmt.Fprintf(b, `<text x="%s" y="%s" dx="%s" dy="%s" font-size="%d"`,
		formatNumber(t.Pos.X), formatNumber(t.Pos.Y),
		formatNumber(t.Offset.X), formatNumber(t.Offset.Y), t.FontSize)
	if t.FontFamily != "" {
		fmt.Fprintf(b, ` font-family="%s"`, escapeAttr(t.FontFamily))
	}
	if t.FontWeight != "" {
		fmt.Fprintf(b, ` font-weight="%s"`, escapeAttr(t.FontWeight))
	}
	t.renderAttrs(b)
	b.WriteByte('>')
	b.WriteString(EscapeText(t.Data))
	b.WriteString("</text>\n")
}
