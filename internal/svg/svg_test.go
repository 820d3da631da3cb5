package svg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeText(t *testing.T) {
	assert.Equal(t, "A &amp; &lt;B&gt; &quot;C&quot; &apos;D&apos;",
		EscapeText(`A & <B> "C" 'D'`))
}

func TestCircleRender(t *testing.T) {
	c := NewCircle().SetCenter(Point{X: 1, Y: 2}).SetRadius(3).
		SetFillColor(RGB(255, 0, 0)).SetStrokeColor(NamedColor("black")).
		SetStrokeWidth(1)

	doc := &Document{}
	doc.Add(c)
	out := doc.Render()
	assert.Contains(t, out, `<circle cx="1" cy="2" r="3" fill="rgb(255,0,0)" stroke="black" stroke-width="1"/>`)
}

func TestPolylineRender(t *testing.T) {
	p := NewPolyline().AddPoint(Point{X: 0, Y: 0}).AddPoint(Point{X: 1, Y: 1}).
		SetStrokeColor(NamedColor("green")).SetStrokeWidth(2).
		SetStrokeLineCap(LineCapRound).SetStrokeLineJoin(LineJoinRound)

	doc := &Document{}
	doc.Add(p)
	out := doc.Render()
	assert.Contains(t, out, `<polyline points="0,0 1,1" stroke="green" stroke-width="2" stroke-linecap="round" stroke-linejoin="round"/>`)
}

func TestTextEscapesData(t *testing.T) {
	text := NewText().SetPosition(Point{X: 1, Y: 2}).SetData(`Bus "X" & Co`)
	doc := &Document{}
	doc.Add(text)
	out := doc.Render()
	assert.Contains(t, out, "Bus &quot;X&quot; &amp; Co")
}

func TestDocumentStructure(t *testing.T) {
	doc := &Document{}
	doc.Add(NewCircle())
	out := doc.Render()
	assert.Contains(t, out, `<?xml version="1.0" encoding="UTF-8" ?>`)
	assert.Contains(t, out, `<svg xmlns="http://www.w3.org/2000/svg" version="1.1">`)
	assert.Contains(t, out, "</svg>")
}
