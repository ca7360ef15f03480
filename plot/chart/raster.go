package chart

import (
	"fmt"
	"image/color"
	"math"

	"curvelab/plot/engine"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// Sink consumes one evaluated frame.
type Sink interface {
	Draw(res *engine.Result) error
}

type rectFiller interface {
	FillRectangle(x, y, width, height int16, c color.RGBA) error
}

// Raster draws results into a rectangular viewport of a display. Draw does
// not call Display; the caller presents once the whole frame is composed.
type Raster struct {
	d     drivers.Displayer
	font  tinyfont.Fonter
	style Style

	x, y, w, h int16

	lineH  int16
	ascent int16
}

var _ Sink = (*Raster)(nil)

// NewRaster returns a Raster whose viewport covers the whole display.
func NewRaster(d drivers.Displayer, style Style) *Raster {
	w, h := d.Size()
	r := &Raster{d: d, font: &proggy.TinySZ8pt7b, style: style, w: w, h: h}
	r.lineH = int16(r.font.GetYAdvance())
	if r.lineH <= 0 {
		r.lineH = 10
	}
	r.ascent = r.lineH * 3 / 4
	return r
}

// SetViewport restricts drawing to the given rectangle.
func (r *Raster) SetViewport(x, y, w, h int16) {
	r.x, r.y, r.w, r.h = x, y, w, h
}

// LineHeight is the text line advance in pixels.
func (r *Raster) LineHeight() int16 { return r.lineH }

func (r *Raster) TextWidth(s string) int16 {
	_, outbox := tinyfont.LineWidth(r.font, s)
	return int16(outbox)
}

// Text draws s with its top edge at y.
func (r *Raster) Text(x, y int16, s string, c color.RGBA) {
	tinyfont.WriteLine(r.d, r.font, x, y+r.ascent, s, c)
}

// TextClipped draws as much of s as fits in maxW pixels.
func (r *Raster) TextClipped(x, y, maxW int16, s string, c color.RGBA) {
	if maxW <= 0 || s == "" {
		return
	}
	rs := []rune(s)
	for len(rs) > 0 && r.TextWidth(string(rs)) > maxW {
		rs = rs[:len(rs)-1]
	}
	if len(rs) > 0 {
		r.Text(x, y, string(rs), c)
	}
}

func (r *Raster) FillRect(x, y, w, h int16, c color.RGBA) {
	if f, ok := r.d.(rectFiller); ok {
		_ = f.FillRectangle(x, y, w, h, c)
		return
	}
	for py := y; py < y+h; py++ {
		for px := x; px < x+w; px++ {
			r.d.SetPixel(px, py, c)
		}
	}
}

// plotArea is the data rectangle in display pixels plus the data bounds.
type plotArea struct {
	x, y, w, h             int16
	xMin, xMax, yMin, yMax float64
}

func (a plotArea) toPixel(x, y float64) (float64, float64) {
	px := (x - a.xMin) / (a.xMax - a.xMin) * float64(a.w-1)
	py := (a.yMax - y) / (a.yMax - a.yMin) * float64(a.h-1)
	return px, py
}

// Draw renders res into the viewport.
func (r *Raster) Draw(res *engine.Result) error {
	r.FillRect(r.x, r.y, r.w, r.h, r.style.Background)
	if res == nil {
		return nil
	}

	titleH := r.lineH + 2
	r.TextClipped(r.x+2, r.y+1, r.w-4, res.Title, r.style.Text)

	leftMargin := r.TextWidth("-00.00") + 4
	bottomMargin := r.lineH + 2
	a := plotArea{
		x:    r.x + leftMargin,
		y:    r.y + titleH,
		w:    r.w - leftMargin - 2,
		h:    r.h - titleH - bottomMargin,
		xMin: res.X.Min, xMax: res.X.Max,
		yMin: res.Y.Min, yMax: res.Y.Max,
	}
	if a.w <= 2 || a.h <= 2 {
		return nil
	}
	r.FillRect(a.x, a.y, a.w, a.h, r.style.Panel)

	if !validRange(a.xMin, a.xMax) || !validRange(a.yMin, a.yMax) {
		r.TextClipped(a.x+2, a.y+2, a.w-4, fmt.Sprintf("bad axis range x=[%g,%g] y=[%g,%g]", a.xMin, a.xMax, a.yMin, a.yMax), r.style.Error)
		return nil
	}

	r.drawGrid(a, leftMargin)
	r.drawAxes(a)

	c := ColorOr(res.Color, DefaultSeriesColor)
	switch res.Series.Kind {
	case engine.SeriesCurve:
		r.drawCurve(a, res.Series.Points, c)
	case engine.SeriesContour:
		r.drawMarkers(a, res.Series.Points, c)
	}

	if t := res.Y.Title; t != "" {
		r.TextClipped(a.x+2, a.y+1, a.w-4, t, r.style.Dim)
	}
	if t := res.X.Title; t != "" {
		tw := r.TextWidth(t)
		r.TextClipped(a.x+a.w-tw-2, a.y+a.h-r.lineH-1, tw, t, r.style.Dim)
	}
	return nil
}

func validRange(lo, hi float64) bool {
	return lo < hi && !math.IsInf(lo, 0) && !math.IsInf(hi, 0) && !math.IsNaN(lo) && !math.IsNaN(hi)
}

// maxGridLines bounds the grid loops for pathological ranges.
const maxGridLines = 256

func (r *Raster) drawGrid(a plotArea, leftMargin int16) {
	xPxPerUnit := float64(a.w-1) / (a.xMax - a.xMin)
	yPxPerUnit := float64(a.h-1) / (a.yMax - a.yMin)
	if xPxPerUnit <= 0 || yPxPerUnit <= 0 || math.IsInf(xPxPerUnit, 0) || math.IsInf(yPxPerUnit, 0) {
		return
	}

	stepX := niceStep(48 / xPxPerUnit)
	stepY := niceStep(32 / yPxPerUnit)

	xStart := math.Ceil(a.xMin/stepX) * stepX
	for n, x := 0, xStart; x <= a.xMax && n < maxGridLines; n, x = n+1, x+stepX {
		px, _ := a.toPixel(x, 0)
		ix := roundInt16(px)
		for y := int16(0); y < a.h; y++ {
			r.d.SetPixel(a.x+ix, a.y+y, r.style.Grid)
		}
		label := fmtAxis(x)
		w := r.TextWidth(label)
		lx := a.x + ix - w/2
		if lx < r.x {
			lx = r.x
		}
		r.Text(lx, a.y+a.h+1, label, r.style.Dim)
	}

	yStart := math.Ceil(a.yMin/stepY) * stepY
	for n, y := 0, yStart; y <= a.yMax && n < maxGridLines; n, y = n+1, y+stepY {
		_, py := a.toPixel(0, y)
		iy := roundInt16(py)
		for x := int16(0); x < a.w; x++ {
			r.d.SetPixel(a.x+x, a.y+iy, r.style.Grid)
		}
		label := fmtAxis(y)
		w := r.TextWidth(label)
		lx := a.x - w - 2
		if lx < a.x-leftMargin {
			lx = a.x - leftMargin
		}
		r.Text(lx, a.y+iy-r.lineH/2, label, r.style.Dim)
	}
}

func (r *Raster) drawAxes(a plotArea) {
	if a.xMin <= 0 && a.xMax >= 0 {
		px, _ := a.toPixel(0, 0)
		x := roundInt16(px)
		for y := int16(0); y < a.h; y++ {
			r.d.SetPixel(a.x+x, a.y+y, r.style.Axis)
		}
	}
	if a.yMin <= 0 && a.yMax >= 0 {
		_, py := a.toPixel(0, 0)
		y := roundInt16(py)
		for x := int16(0); x < a.w; x++ {
			r.d.SetPixel(a.x+x, a.y+y, r.style.Axis)
		}
	}
}

func (r *Raster) drawCurve(a plotArea, pts []engine.Point, c color.RGBA) {
	prevOK := false
	var prevX, prevY float64
	xMax := float64(a.w - 1)
	yMax := float64(a.h - 1)
	for _, p := range pts {
		if !finite(p.X) || !finite(p.Y) {
			prevOK = false
			continue
		}

		curX, curY := a.toPixel(p.X, p.Y)
		if prevOK {
			cx0, cy0, cx1, cy1, ok := clipLineToRect(prevX, prevY, curX, curY, 0, 0, xMax, yMax)
			if ok {
				r.drawLine(
					a.x+roundInt16(cx0),
					a.y+roundInt16(cy0),
					a.x+roundInt16(cx1),
					a.y+roundInt16(cy1),
					c,
				)
			}
		} else if curX >= 0 && curX <= xMax && curY >= 0 && curY <= yMax {
			r.d.SetPixel(a.x+roundInt16(curX), a.y+roundInt16(curY), c)
		}
		prevOK = true
		prevX = curX
		prevY = curY
	}
}

func (r *Raster) drawMarkers(a plotArea, pts []engine.Point, c color.RGBA) {
	for _, p := range pts {
		if !finite(p.X) || !finite(p.Y) {
			continue
		}
		px, py := a.toPixel(p.X, p.Y)
		ix, iy := roundInt16(px), roundInt16(py)
		for dy := int16(0); dy < 2; dy++ {
			for dx := int16(0); dx < 2; dx++ {
				x, y := ix+dx, iy+dy
				if x < 0 || x >= a.w || y < 0 || y >= a.h {
					continue
				}
				r.d.SetPixel(a.x+x, a.y+y, c)
			}
		}
	}
}

func (r *Raster) drawLine(x0, y0, x1, y1 int16, c color.RGBA) {
	dx := int(math.Abs(float64(x1 - x0)))
	dy := -int(math.Abs(float64(y1 - y0)))
	sx := int16(-1)
	if x0 < x1 {
		sx = 1
	}
	sy := int16(-1)
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		r.d.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}
