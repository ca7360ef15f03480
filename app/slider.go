package app

import (
	"math"
	"strconv"
	"strings"

	"curvelab/plot/blueprint"
)

const fallbackStep = 0.1

// stepValue moves v by n steps of p.Step. The result sits on the step grid
// anchored at p.Min and is clamped to [p.Min, p.Max].
func stepValue(p blueprint.Param, v float64, n int) float64 {
	step := p.Step
	if !(step > 0) || math.IsInf(step, 0) {
		step = fallbackStep
	}
	if math.IsNaN(v) {
		v = p.Min
	}
	k := math.Round((v-p.Min)/step) + float64(n)
	return p.Clamp(roundToStep(p.Min+k*step, step))
}

// roundToStep trims float noise to the number of decimals step is written with.
func roundToStep(v, step float64) float64 {
	s := strconv.FormatFloat(step, 'f', -1, 64)
	i := strings.IndexByte(s, '.')
	if i < 0 {
		return v
	}
	d := len(s) - i - 1
	if d > 12 {
		return v
	}
	scale := math.Pow(10, float64(d))
	r := math.Round(v*scale) / scale
	if math.IsInf(r, 0) || math.IsNaN(r) {
		return v
	}
	return r
}

// fraction is v's position between p.Min and p.Max in [0, 1].
func fraction(p blueprint.Param, v float64) float64 {
	if !(p.Max > p.Min) {
		return 0
	}
	f := (v - p.Min) / (p.Max - p.Min)
	switch {
	case math.IsNaN(f) || f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}

func fmtValue(v float64) string {
	return strconv.FormatFloat(v, 'g', 5, 64)
}
