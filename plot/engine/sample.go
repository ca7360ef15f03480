package engine

import "curvelab/plot/expr"

// sweep evaluates f at steps+1 evenly spaced x values covering [xMin, xMax].
func sweep(f expr.Node, scope *expr.Scope, xMin, xMax float64, steps int) ([]Point, error) {
	if steps < 1 {
		steps = 1
	}
	env := &expr.Env{Scope: scope, HasX: true}
	pts := make([]Point, steps+1)
	for i := 0; i <= steps; i++ {
		x := xMin + (xMax-xMin)*float64(i)/float64(steps)
		env.X = x
		y, err := f.Eval(env)
		if err != nil {
			return nil, err
		}
		pts[i] = Point{X: x, Y: y}
	}
	return pts, nil
}

// grid holds diff(x, y) = left - right sampled on (res+1)x(res+1) nodes,
// row-major from the bottom row up.
type grid struct {
	res    int
	xs, ys []float64
	val    []float64
}

func (g *grid) at(i, j int) float64 { return g.val[j*(g.res+1)+i] }

func sampleGrid(left, right expr.Node, scope *expr.Scope, xa, ya Axis, res int) (*grid, error) {
	n := res + 1
	g := &grid{
		res: res,
		xs:  make([]float64, n),
		ys:  make([]float64, n),
		val: make([]float64, n*n),
	}
	for i := 0; i < n; i++ {
		g.xs[i] = xa.Min + (xa.Max-xa.Min)*float64(i)/float64(res)
		g.ys[i] = ya.Min + (ya.Max-ya.Min)*float64(i)/float64(res)
	}

	env := &expr.Env{Scope: scope, HasX: true, HasY: true}
	for j := 0; j < n; j++ {
		env.Y = g.ys[j]
		for i := 0; i < n; i++ {
			env.X = g.xs[i]
			l, err := left.Eval(env)
			if err != nil {
				return nil, err
			}
			r, err := right.Eval(env)
			if err != nil {
				return nil, err
			}
			g.val[j*n+i] = l - r
		}
	}
	return g, nil
}
