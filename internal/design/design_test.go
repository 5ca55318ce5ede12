package design

import (
	"encoding/json"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseShapes(t *testing.T) {
	assert.Equal(t, DotClassyRounded, ParseDotShape("Classy-Rounded"))
	assert.Equal(t, DotSquare, ParseDotShape("hexagon"))

	assert.Equal(t, EyeDot, ParseEyeShape("circle"))
	assert.Equal(t, EyeExtraRounded, ParseEyeShape("rounded"))
	assert.Equal(t, EyeDiamond, ParseEyeShape("diamond"))
	assert.Equal(t, EyeSquare, ParseEyeShape(""))

	assert.Equal(t, FrameBubble, ParseFrameStyle("bubble"))
	assert.Equal(t, FrameNone, ParseFrameStyle("zigzag"))
}

func TestParseColor(t *testing.T) {
	fallback := color.RGBA{1, 2, 3, 255}
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"#FF0000", color.RGBA{255, 0, 0, 255}},
		{"00ff00", color.RGBA{0, 255, 0, 255}},
		{"#abc", color.RGBA{0xaa, 0xbb, 0xcc, 255}},
		{"transparent", color.RGBA{}},
		{"", fallback},
		{"#12345", fallback},
		{"#zzzzzz", fallback},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseColor(tt.in, fallback))
		})
	}
}

func TestNormalizeHex(t *testing.T) {
	got, ok := NormalizeHex(" #ABCDEF ")
	require.True(t, ok)
	assert.Equal(t, "#abcdef", got)

	_, ok = NormalizeHex("#12")
	assert.False(t, ok)
	assert.Equal(t, "#0a0b0c", Hex(color.RGBA{10, 11, 12, 255}))
}

func TestDesignJSONKeys(t *testing.T) {
	d := Default()
	d.Logo = URLLogo("https://cdn.example.com/logo.png")

	raw, err := json.Marshal(d)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Equal(t, "#000000", m["color"])
	assert.Equal(t, "#FFFFFF", m["bgColor"])
	assert.Equal(t, "square", m["dotShape"])
	assert.Equal(t, "square", m["eyeShape"])
	assert.Equal(t, "none", m["frameStyle"])
	assert.Equal(t, "https://cdn.example.com/logo.png", m["logo"])
}

func TestLogoJSON(t *testing.T) {
	t.Run("none is null", func(t *testing.T) {
		raw, err := json.Marshal(NoLogo())
		require.NoError(t, err)
		assert.Equal(t, "null", string(raw))
	})

	t.Run("upload round trips through a data URI", func(t *testing.T) {
		l := UploadLogo(Upload{ID: "a", ContentType: "image/png", Data: []byte{1, 2, 3}})
		raw, err := json.Marshal(l)
		require.NoError(t, err)
		assert.Contains(t, string(raw), "data:image/png;base64,")

		var back Logo
		require.NoError(t, json.Unmarshal(raw, &back))
		u, ok := back.Upload()
		require.True(t, ok)
		assert.Equal(t, []byte{1, 2, 3}, u.Data)
		assert.Equal(t, "image/png", u.ContentType)
	})

	t.Run("entered data URI keeps its kind", func(t *testing.T) {
		l := URLLogo(" data:image/png;base64,AQID ")
		require.Equal(t, LogoUpload, l.Kind())
		u, _ := l.Upload()
		assert.Equal(t, []byte{1, 2, 3}, u.Data)

		raw, err := json.Marshal(l)
		require.NoError(t, err)
		var back Logo
		require.NoError(t, json.Unmarshal(raw, &back))
		assert.Equal(t, LogoUpload, back.Kind())
		assert.Equal(t, l.Key(), back.Key())

		assert.Equal(t, LogoNone, URLLogo("data:image/png;base64").Kind())
	})

	t.Run("serialised browser file is absent", func(t *testing.T) {
		var l Logo
		require.NoError(t, json.Unmarshal([]byte(`{}`), &l))
		assert.Equal(t, LogoNone, l.Kind())
	})
}

func TestParseDesign(t *testing.T) {
	d, err := Parse(`{"color":"#ff0000","eyeShape":"circle","dotShape":"dots"}`)
	require.NoError(t, err)
	assert.Equal(t, "#ff0000", d.Color)
	assert.Equal(t, DefaultBgColor, d.BgColor)
	assert.Equal(t, EyeDot, d.EyeShape)
	assert.Equal(t, DotDots, d.DotShape)

	d, err = Parse("")
	require.NoError(t, err)
	assert.Equal(t, Default().Fingerprint(), d.Fingerprint())

	_, err = Parse("{broken")
	assert.Error(t, err)
}

func TestParseDataURI(t *testing.T) {
	mt, data, err := ParseDataURI("data:image/svg+xml;utf8,%3Csvg%3E")
	require.NoError(t, err)
	assert.Equal(t, "image/svg+xml", mt)
	assert.Equal(t, "<svg>", string(data))

	_, _, err = ParseDataURI("https://example.com")
	assert.ErrorIs(t, err, ErrInvalidDataURI)
}

func TestFingerprintIgnoresFrame(t *testing.T) {
	a := Default()
	b := Default()
	b.FrameStyle = FrameBubble
	b.FrameText = "Hi"
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	b.DotShape = DotDots
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}
