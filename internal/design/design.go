// Package design models the visual configuration of a QR code: colours,
// module and eye shapes, the optional centre logo and the preview frame.
package design

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DotShape is the drawing style of the data modules.
type DotShape string

const (
	DotSquare        DotShape = "square"
	DotRounded       DotShape = "rounded"
	DotDots          DotShape = "dots"
	DotClassy        DotShape = "classy"
	DotClassyRounded DotShape = "classy-rounded"
	DotExtraRounded  DotShape = "extra-rounded"
)

// DotShapes lists the selectable module styles in display order.
var DotShapes = []DotShape{DotSquare, DotRounded, DotDots, DotClassy, DotClassyRounded, DotExtraRounded}

// ParseDotShape maps user input to a DotShape, defaulting to square.
func ParseDotShape(s string) DotShape {
	v := DotShape(strings.ToLower(strings.TrimSpace(s)))
	for _, d := range DotShapes {
		if d == v {
			return d
		}
	}
	return DotSquare
}

// EyeShape is the drawing style shared by the outer ring and inner dot of
// the three finder patterns.
type EyeShape string

const (
	EyeSquare       EyeShape = "square"
	EyeDot          EyeShape = "dot"
	EyeExtraRounded EyeShape = "extra-rounded"
	EyeLeaf         EyeShape = "leaf"
	EyeDiamond      EyeShape = "diamond"
)

// EyeShapes lists the selectable eye styles in display order.
var EyeShapes = []EyeShape{EyeSquare, EyeDot, EyeExtraRounded, EyeLeaf, EyeDiamond}

// ParseEyeShape maps user input to an EyeShape. The names used by the wider
// picker ("circle", "rounded") collapse onto their canonical shapes.
func ParseEyeShape(s string) EyeShape {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case "circle":
		return EyeDot
	case "rounded":
		return EyeExtraRounded
	default:
		for _, e := range EyeShapes {
			if string(e) == v {
				return e
			}
		}
	}
	return EyeSquare
}

// FrameStyle selects the decorative frame drawn around the live preview.
type FrameStyle string

const (
	FrameNone    FrameStyle = "none"
	FrameClassic FrameStyle = "classic"
	FrameRounded FrameStyle = "rounded"
	FrameBubble  FrameStyle = "bubble"
	FrameBanner  FrameStyle = "banner"
)

// FrameStyles lists the selectable frames in display order.
var FrameStyles = []FrameStyle{FrameNone, FrameClassic, FrameRounded, FrameBubble, FrameBanner}

// ParseFrameStyle maps user input to a FrameStyle, defaulting to none.
func ParseFrameStyle(s string) FrameStyle {
	v := FrameStyle(strings.ToLower(strings.TrimSpace(s)))
	for _, f := range FrameStyles {
		if f == v {
			return f
		}
	}
	return FrameNone
}

const (
	DefaultColor          = "#000000"
	DefaultBgColor        = "#FFFFFF"
	DefaultFrameText      = "Scan Me"
	DefaultFrameColor     = "#2563eb"
	DefaultFrameTextColor = "#ffffff"
	DefaultFramePosition  = "bottom"

	// MaxFrameText is the longest caption the frame input accepts.
	MaxFrameText = 20
)

// Design is the full visual configuration of one QR code.
type Design struct {
	Color          string
	BgColor        string
	DotShape       DotShape
	EyeShape       EyeShape
	Logo           Logo
	FrameStyle     FrameStyle
	FrameText      string
	FrameColor     string
	FrameTextColor string
	FramePosition  string
}

// Default returns the configuration a fresh wizard session starts with.
func Default() Design {
	return Design{
		Color:          DefaultColor,
		BgColor:        DefaultBgColor,
		DotShape:       DotSquare,
		EyeShape:       EyeSquare,
		FrameStyle:     FrameNone,
		FrameText:      DefaultFrameText,
		FrameColor:     DefaultFrameColor,
		FrameTextColor: DefaultFrameTextColor,
		FramePosition:  DefaultFramePosition,
	}
}

// Normalized fills absent fields with their defaults.
func (d Design) Normalized() Design {
	def := Default()
	if d.Color == "" {
		d.Color = def.Color
	}
	if d.BgColor == "" {
		d.BgColor = def.BgColor
	}
	if d.DotShape == "" {
		d.DotShape = def.DotShape
	}
	if d.EyeShape == "" {
		d.EyeShape = def.EyeShape
	}
	if d.FrameStyle == "" {
		d.FrameStyle = def.FrameStyle
	}
	if d.FrameColor == "" {
		d.FrameColor = def.FrameColor
	}
	if d.FrameTextColor == "" {
		d.FrameTextColor = def.FrameTextColor
	}
	if d.FramePosition == "" {
		d.FramePosition = def.FramePosition
	}
	return d
}

// Fingerprint identifies everything that changes the rendered raster. Frame
// fields are left out: frames never reach the raster.
func (d Design) Fingerprint() string {
	return strings.Join([]string{
		d.Color, d.BgColor, string(d.DotShape), string(d.EyeShape), d.Logo.Key(),
	}, "|")
}

type wireDesign struct {
	Color          string     `json:"color"`
	BgColor        string     `json:"bgColor"`
	DotShape       DotShape   `json:"dotShape"`
	EyeShape       EyeShape   `json:"eyeShape"`
	Logo           Logo       `json:"logo"`
	FrameStyle     FrameStyle `json:"frameStyle"`
	FrameText      string     `json:"frameText"`
	FrameColor     string     `json:"frameColor"`
	FrameTextColor string     `json:"frameTextColor"`
	FramePosition  string     `json:"framePosition"`
}

// MarshalJSON keeps the key names the backend stores in design_json.
func (d Design) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireDesign(d))
}

// UnmarshalJSON accepts records written by any dashboard revision; unknown
// shape names fall back to the defaults.
func (d *Design) UnmarshalJSON(b []byte) error {
	var w wireDesign
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*d = Design(w)
	if d.DotShape != "" {
		d.DotShape = ParseDotShape(string(d.DotShape))
	}
	if d.EyeShape != "" {
		d.EyeShape = ParseEyeShape(string(d.EyeShape))
	}
	if d.FrameStyle != "" {
		d.FrameStyle = ParseFrameStyle(string(d.FrameStyle))
	}
	return nil
}

// Parse decodes a persisted design_json value. An empty value yields the
// default design.
func Parse(raw string) (Design, error) {
	if strings.TrimSpace(raw) == "" {
		return Default(), nil
	}
	var d Design
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return Default(), fmt.Errorf("decode design: %w", err)
	}
	return d.Normalized(), nil
}
