package engine

import "math"

// interpEpsilon is the smallest corner difference that is interpolated;
// closer values snap to the first corner.
const interpEpsilon = 1e-6

type corner struct {
	x, y, v float64
}

// marchingSquares emits one point per sign-changing cell edge. Cells with a
// non-finite corner are skipped. Points from neighbouring cells are not
// merged, so a shared edge contributes twice.
func marchingSquares(g *grid) []Point {
	var pts []Point
	for j := 0; j < g.res; j++ {
		y0, y1 := g.ys[j], g.ys[j+1]
		for i := 0; i < g.res; i++ {
			x0, x1 := g.xs[i], g.xs[i+1]
			// Counter-clockwise from bottom-left: BL, BR, TR, TL.
			c := [4]corner{
				{x0, y0, g.at(i, j)},
				{x1, y0, g.at(i+1, j)},
				{x1, y1, g.at(i+1, j+1)},
				{x0, y1, g.at(i, j+1)},
			}
			if !finiteCorners(c) {
				continue
			}
			code := cellCode(c)
			if code == 0 || code == 15 {
				continue
			}
			for e := 0; e < 4; e++ {
				a, b := c[e], c[(e+1)%4]
				if (a.v > 0) != (b.v > 0) {
					pts = append(pts, interpolate(a, b))
				}
			}
		}
	}
	return pts
}

func finiteCorners(c [4]corner) bool {
	for _, k := range c {
		if math.IsNaN(k.v) || math.IsInf(k.v, 0) {
			return false
		}
	}
	return true
}

// cellCode sets bit n when corner n is above zero.
func cellCode(c [4]corner) int {
	code := 0
	for n, k := range c {
		if k.v > 0 {
			code |= 1 << n
		}
	}
	return code
}

func interpolate(a, b corner) Point {
	if math.Abs(a.v-b.v) < interpEpsilon {
		return Point{X: a.x, Y: a.y}
	}
	t := (0 - a.v) / (b.v - a.v)
	return Point{X: a.x + t*(b.x-a.x), Y: a.y + t*(b.y-a.y)}
}
