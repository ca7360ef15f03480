package chart

import (
	"image/color"
	"math"
	"testing"

	"curvelab/hal"
	"curvelab/plot/engine"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
		ok   bool
	}{
		{"#ff8c00", color.RGBA{0xFF, 0x8C, 0x00, 0xFF}, true},
		{" #F00 ", color.RGBA{0xFF, 0x00, 0x00, 0xFF}, true},
		{"#11223344", color.RGBA{0x11, 0x22, 0x33, 0xFF}, true},
		{"rgb(0, 128, 255)", color.RGBA{0x00, 0x80, 0xFF, 0xFF}, true},
		{"rgba(1,2,3,0.5)", color.RGBA{1, 2, 3, 0xFF}, true},
		{"Teal", color.RGBA{0x00, 0x80, 0x80, 0xFF}, true},
		{"#12", color.RGBA{}, false},
		{"#gggggg", color.RGBA{}, false},
		{"rgb(300, 0, 0)", color.RGBA{}, false},
		{"chartreuse-ish", color.RGBA{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseColor(tt.in)
		assert.Equal(t, tt.ok, ok, "ParseColor(%q)", tt.in)
		assert.Equal(t, tt.want, got, "ParseColor(%q)", tt.in)
	}
	assert.Equal(t, DefaultSeriesColor, ColorOr("nope", DefaultSeriesColor))
}

func TestNiceStep(t *testing.T) {
	assert.InDelta(t, 1.0, niceStep(0.8), 1e-12)
	assert.Equal(t, 2.0, niceStep(1.5))
	assert.Equal(t, 5.0, niceStep(3))
	assert.Equal(t, 10.0, niceStep(7))
	assert.InDelta(t, 0.05, niceStep(0.04), 1e-12)
	assert.Equal(t, 1.0, niceStep(0))
	assert.Equal(t, 1.0, niceStep(math.NaN()))
}

func TestFmtAxis(t *testing.T) {
	assert.Equal(t, "0", fmtAxis(1e-15))
	assert.Equal(t, "5.00", fmtAxis(5))
	assert.Equal(t, "-20", fmtAxis(-20))
	assert.Equal(t, "0.500", fmtAxis(0.5))
	assert.Equal(t, "", fmtAxis(math.Inf(1)))
}

func TestClipLineToRect(t *testing.T) {
	x0, y0, x1, y1, ok := clipLineToRect(-10, 5, 20, 5, 0, 0, 10, 10)
	require.True(t, ok)
	assert.InDeltaSlice(t, []float64{0, 5, 10, 5}, []float64{x0, y0, x1, y1}, 1e-9)

	_, _, _, _, ok = clipLineToRect(-5, -5, -1, -1, 0, 0, 10, 10)
	assert.False(t, ok)
}

func countColor(fb hal.Framebuffer, c color.RGBA) int {
	want := hal.RGB565(c.R, c.G, c.B)
	buf := fb.Buffer()
	n := 0
	for y := 0; y < fb.Height(); y++ {
		for x := 0; x < fb.Width(); x++ {
			off := y*fb.StrideBytes() + x*2
			if uint16(buf[off])|uint16(buf[off+1])<<8 == want {
				n++
			}
		}
	}
	return n
}

func parabola() *engine.Result {
	res := &engine.Result{
		Title:  "Parabola",
		Color:  "#00ff00",
		Series: engine.Series{Kind: engine.SeriesCurve},
		X:      engine.Axis{Title: "x", Min: -5, Max: 5},
		Y:      engine.Axis{Title: "y", Min: -1, Max: 25},
	}
	for i := 0; i <= 100; i++ {
		x := -5 + 10*float64(i)/100
		res.Series.Points = append(res.Series.Points, engine.Point{X: x, Y: x * x})
	}
	return res
}

func TestRaster_DrawCurve(t *testing.T) {
	fb := hal.NewFramebuffer(160, 120)
	r := NewRaster(NewFramebufferDisplay(fb), DefaultStyle())

	require.NoError(t, r.Draw(parabola()))
	green := color.RGBA{0x00, 0xFF, 0x00, 0xFF}
	assert.Greater(t, countColor(fb, green), 50)
}

func TestRaster_DrawContourMarkers(t *testing.T) {
	fb := hal.NewFramebuffer(160, 120)
	r := NewRaster(NewFramebufferDisplay(fb), DefaultStyle())

	res := &engine.Result{
		Series: engine.Series{Kind: engine.SeriesContour, Points: []engine.Point{
			{X: 0, Y: 0},
			{X: math.NaN(), Y: 1},
			{X: 100, Y: 100},
		}},
		X: engine.Axis{Min: -1, Max: 1},
		Y: engine.Axis{Min: -1, Max: 1},
	}
	require.NoError(t, r.Draw(res))
	assert.Equal(t, 4, countColor(fb, DefaultSeriesColor))
}

func TestRaster_NonFiniteBreaksCurve(t *testing.T) {
	fb := hal.NewFramebuffer(160, 120)
	r := NewRaster(NewFramebufferDisplay(fb), DefaultStyle())

	res := parabola()
	for i := range res.Series.Points {
		res.Series.Points[i].Y = math.NaN()
	}
	require.NoError(t, r.Draw(res))
	assert.Zero(t, countColor(fb, color.RGBA{0x00, 0xFF, 0x00, 0xFF}))
}

func TestRaster_ViewportAndBadRange(t *testing.T) {
	fb := hal.NewFramebuffer(100, 80)
	style := DefaultStyle()
	style.Background = color.RGBA{0x10, 0x20, 0x30, 0xFF}
	r := NewRaster(NewFramebufferDisplay(fb), style)
	r.SetViewport(0, 0, 50, 80)

	res := parabola()
	res.X.Min, res.X.Max = 3, 3
	require.NoError(t, r.Draw(res))

	// Right half is outside the viewport and stays untouched.
	buf := fb.Buffer()
	off := 10*fb.StrideBytes() + 75*2
	assert.Zero(t, uint16(buf[off])|uint16(buf[off+1])<<8)
	assert.Zero(t, countColor(fb, color.RGBA{0x00, 0xFF, 0x00, 0xFF}))
	assert.Greater(t, countColor(fb, style.Background), 0)
}

func TestRaster_NilResultClears(t *testing.T) {
	fb := hal.NewFramebuffer(20, 10)
	style := DefaultStyle()
	style.Background = color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}
	r := NewRaster(NewFramebufferDisplay(fb), style)
	require.NoError(t, r.Draw(nil))
	assert.Equal(t, 200, countColor(fb, style.Background))
}
