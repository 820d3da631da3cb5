package jsonval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoundTrip(t *testing.T) {
	text := `{"name":"A","lat":55.611087,"stops":[1,2,3],"is_roundtrip":true,"note":null}`
	v, err := Parse(text)
	require.NoError(t, err)

	require.True(t, v.IsDict())
	name, ok := v.GetString("name")
	require.True(t, ok)
	assert.Equal(t, "A", name)

	lat, ok := v.Get("lat")
	require.True(t, ok)
	assert.InDelta(t, 55.611087, lat.AsFloat(), 1e-9)

	stops, ok := v.Get("stops")
	require.True(t, ok)
	assert.Len(t, stops.AsArray(), 3)
	assert.Equal(t, int64(2), stops.AsArray()[1].AsInt())

	flag, ok := v.Get("is_roundtrip")
	require.True(t, ok)
	assert.True(t, flag.AsBool())

	note, ok := v.Get("note")
	require.True(t, ok)
	assert.True(t, note.IsNull())

	assert.Equal(t, text, Write(v))
}

func TestWritePreservesMemberOrder(t *testing.T) {
	v := Dict(
		Field("request_id", Int(7)),
		Field("buses", Array(String("A"), String("B"))),
	)
	assert.Equal(t, `{"request_id":7,"buses":["A","B"]}`, Write(v))
}

func TestWriteEscaping(t *testing.T) {
	v := String("A & <B> \"C\" 'D'")
	got := Write(v)
	assert.Contains(t, got, `\"`)
	// ampersand, angle brackets and apostrophes are untouched by JSON
	// escaping itself (that's the SVG layer's job); only the JSON-mandated
	// characters are escaped here.
	assert.Equal(t, `"A & <B> \"C\" 'D'"`, got)
}

func TestParseErrors(t *testing.T) {
	cases := []string{
		``,
		`{`,
		`{"a":}`,
		`[1,2,`,
		`"unterminated`,
		`tru`,
		`{"a" 1}`,
	}
	for _, c := range cases {
		_, err := Parse(c)
		assert.Error(t, err, "expected error for %q", c)
	}
}

func TestParseEscapesAndUnicode(t *testing.T) {
	v, err := Parse(`"line1\nline2\t\\"`)
	require.NoError(t, err)
	assert.Equal(t, "line1\nline2\t\\", v.AsString())

	v, err = Parse("\"caf\\u00e9\"") // JSON text: "caf" followed by a \u escape
	require.NoError(t, err)
	assert.Equal(t, "café", v.AsString())
}
