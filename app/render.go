package app

import (
	"fmt"
	"strings"

	"curvelab/plot/chart"
)

const (
	panelPad          = 2
	maxVisibleSliders = 6
)

func panelHeight(rows int, lh int16) int16 {
	// sliders, then the variables line and the status line
	return int16(rows+2)*lh + 2*panelPad
}

// firstVisible keeps the selected slider inside a window of rows entries.
func firstVisible(sel, n, rows int) int {
	if rows <= 0 || n <= rows {
		return 0
	}
	f := sel - rows/2
	if f < 0 {
		f = 0
	}
	if f > n-rows {
		f = n - rows
	}
	return f
}

func (v *Viewer) render() error {
	if v.raster == nil {
		return nil
	}
	r := v.raster
	st := v.cfg.Style
	w, h := v.disp.Size()
	lh := r.LineHeight()

	rows := len(v.bp.Params)
	if rows > maxVisibleSliders {
		rows = maxVisibleSliders
	}
	for rows > 0 && panelHeight(rows, lh) > h/2 {
		rows--
	}
	panelH := panelHeight(rows, lh)
	chartH := h - panelH

	r.SetViewport(0, 0, w, chartH)
	if err := r.Draw(v.last); err != nil {
		return err
	}

	r.FillRect(0, chartH, w, panelH, st.Panel)
	y := chartH + panelPad
	first := firstVisible(v.sel, len(v.bp.Params), rows)
	for i := first; i < first+rows; i++ {
		v.drawSlider(i, y, w)
		y += lh
	}
	v.drawVars(y, w)
	y += lh
	v.drawStatus(y, w)

	return v.disp.Display()
}

func (v *Viewer) drawSlider(i int, y, w int16) {
	r := v.raster
	st := v.cfg.Style
	lh := r.LineHeight()
	p := v.bp.Params[i]
	val := v.values[p.Name]

	fg, knob, prefix := st.Dim, st.Axis, "  "
	if i == v.sel {
		fg, knob, prefix = st.Text, chart.ColorOr(v.bp.Color, chart.DefaultSeriesColor), "> "
	}

	textW := w * 2 / 5
	r.TextClipped(panelPad, y, textW, prefix+p.Label+" "+fmtValue(val), fg)

	x0 := panelPad + textW + 4
	x1 := w - panelPad - 1
	if x1-x0 <= 4 {
		return
	}
	r.FillRect(x0, y+lh/2, x1-x0, 1, st.Grid)
	kx := x0 + int16(fraction(p, val)*float64(x1-x0-3))
	r.FillRect(kx, y+2, 3, lh-4, knob)
}

func (v *Viewer) drawVars(y, w int16) {
	if v.last == nil || len(v.last.Vars) == 0 {
		return
	}
	parts := make([]string, 0, len(v.last.Vars))
	for _, b := range v.last.Vars {
		parts = append(parts, b.Name+"="+fmtValue(b.Value))
	}
	v.raster.TextClipped(panelPad, y, w-2*panelPad, strings.Join(parts, "  "), v.cfg.Style.Dim)
}

func (v *Viewer) drawStatus(y, w int16) {
	st := v.cfg.Style
	if err := v.Err(); err != nil {
		v.raster.TextClipped(panelPad, y, w-2*panelPad, err.Error(), st.Error)
		return
	}
	if v.last == nil {
		return
	}
	s := v.last.Series
	v.raster.TextClipped(panelPad, y, w-2*panelPad, fmt.Sprintf("%s, %d points", s.Kind, len(s.Points)), st.Dim)
}
