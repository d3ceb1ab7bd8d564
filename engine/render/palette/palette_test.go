package palette_test

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/1siamBot/dungeon-engine/engine/render/palette"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in     string
		want   color.RGBA
		wantOK bool
	}{
		{in: "#f00", want: color.RGBA{255, 0, 0, 255}, wantOK: true},
		{in: "#555", want: color.RGBA{85, 85, 85, 255}, wantOK: true},
		{in: "#1a2b3c", want: color.RGBA{0x1a, 0x2b, 0x3c, 255}, wantOK: true},
		{in: "#1a2b3c80", want: color.RGBA{0x1a, 0x2b, 0x3c, 0x80}, wantOK: true},
		{in: "Crimson", want: color.RGBA{220, 20, 60, 255}, wantOK: true},
		{in: " royalblue ", want: color.RGBA{65, 105, 225, 255}, wantOK: true},
		{in: "#12", wantOK: false},
		{in: "#zzz", wantOK: false},
		{in: "notacolor", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := palette.Parse(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestLookupFallsBack(t *testing.T) {
	assert.Equal(t, palette.Missing, palette.Lookup(""))
	assert.Equal(t, color.RGBA{255, 255, 0, 255}, palette.Lookup("#ff0"))
}

func TestLuma(t *testing.T) {
	assert.Equal(t, uint8(255), palette.Luma(color.RGBA{255, 255, 255, 255}))
	assert.Equal(t, uint8(0), palette.Luma(color.RGBA{A: 255}))
}
