// Package palette resolves the color strings carried by Renderable
// components. It has no graphics dependencies so every frontend can share it.
package palette

import (
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Missing is drawn for colors that cannot be resolved
var Missing = color.RGBA{255, 0, 255, 255}

// Parse resolves "#rgb", "#rrggbb", "#rrggbbaa" or an SVG color name
func Parse(s string) (color.RGBA, bool) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		return parseHex(s[1:])
	}
	c, ok := colornames.Map[strings.ToLower(s)]
	return c, ok
}

// Lookup is Parse with Missing for unknown colors
func Lookup(s string) color.RGBA {
	if c, ok := Parse(s); ok {
		return c
	}
	return Missing
}

func parseHex(h string) (color.RGBA, bool) {
	switch len(h) {
	case 3:
		v, err := strconv.ParseUint(h, 16, 16)
		if err != nil {
			return color.RGBA{}, false
		}
		r, g, b := uint8(v>>8&0xf), uint8(v>>4&0xf), uint8(v&0xf)
		return color.RGBA{r * 17, g * 17, b * 17, 255}, true
	case 6, 8:
		v, err := strconv.ParseUint(h, 16, 32)
		if err != nil {
			return color.RGBA{}, false
		}
		if len(h) == 6 {
			v = v<<8 | 0xff
		}
		return color.RGBA{uint8(v >> 24), uint8(v >> 16), uint8(v >> 8), uint8(v)}, true
	}
	return color.RGBA{}, false
}

// Luma approximates perceived brightness in [0, 255]
func Luma(c color.RGBA) uint8 {
	return uint8((299*uint32(c.R) + 587*uint32(c.G) + 114*uint32(c.B)) / 1000)
}
