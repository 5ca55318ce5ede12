package design

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ParseColor parses a hex colour ("#rrggbb", "#rgb", with or without the
// hash) or the keyword "transparent". Anything else yields fallback.
func ParseColor(s string, fallback color.RGBA) color.RGBA {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	if strings.EqualFold(s, "transparent") {
		return color.RGBA{}
	}
	hex, ok := NormalizeHex(s)
	if !ok {
		return fallback
	}
	r, _ := strconv.ParseUint(hex[1:3], 16, 8)
	g, _ := strconv.ParseUint(hex[3:5], 16, 8)
	b, _ := strconv.ParseUint(hex[5:7], 16, 8)
	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255}
}

// NormalizeHex canonicalises free-text hex entry to "#rrggbb".
func NormalizeHex(s string) (string, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return "", false
	}
	if _, err := strconv.ParseUint(s, 16, 32); err != nil {
		return "", false
	}
	return "#" + strings.ToLower(s), true
}

// Hex formats c as "#rrggbb".
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
