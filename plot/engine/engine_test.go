package engine_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"curvelab/plot/blueprint"
	"curvelab/plot/engine"
	"curvelab/plot/expr"
)

func TestEvaluate_ExplicitParabola(t *testing.T) {
	bp := blueprint.Parse("equation: x**2\nsteps: 4\naxis:\n  x: { min: 0, max: 4 }\n")

	res, err := engine.Evaluate(bp, bp.Defaults())
	require.NoError(t, err)
	assert.Equal(t, engine.SeriesCurve, res.Series.Kind)
	assert.Equal(t, []engine.Point{{0, 0}, {1, 1}, {2, 4}, {3, 9}, {4, 16}}, res.Series.Points)
	assert.Equal(t, engine.Axis{Min: 0, Max: 4}, res.X)
	assert.Equal(t, engine.Axis{Min: -10, Max: 10}, res.Y)
	assert.Equal(t, blueprint.DefaultColor, res.Color)
}

func TestEvaluate_ExplicitSpacing(t *testing.T) {
	bp := blueprint.Parse("equation: sin(x) * a\nsteps: 37\nparams:\n  a: { value: 2 }\naxis:\n  x: { min: -3, max: 5 }\n")

	res, err := engine.Evaluate(bp, bp.Defaults())
	require.NoError(t, err)
	pts := res.Series.Points
	require.Len(t, pts, 38)
	assert.Equal(t, -3.0, pts[0].X)
	assert.Equal(t, 5.0, pts[len(pts)-1].X)

	dx := 8.0 / 37
	for i := 1; i < len(pts); i++ {
		assert.Greater(t, pts[i].X, pts[i-1].X)
		assert.InDelta(t, dx, pts[i].X-pts[i-1].X, 1e-12)
		assert.InDelta(t, 2*math.Sin(pts[i].X), pts[i].Y, 1e-12)
	}
}

func TestEvaluate_ExplicitDefaultDomainAndNonFinite(t *testing.T) {
	bp := blueprint.Parse("equation: 1 / x\nsteps: 2\n")

	res, err := engine.Evaluate(bp, nil)
	require.NoError(t, err)
	require.Len(t, res.Series.Points, 3)
	assert.Equal(t, engine.Point{X: -10, Y: -0.1}, res.Series.Points[0])
	assert.True(t, math.IsInf(res.Series.Points[1].Y, 1))
	assert.Equal(t, engine.Point{X: 10, Y: 0.1}, res.Series.Points[2])
}

func TestEvaluate_ImplicitCircle(t *testing.T) {
	bp := blueprint.Parse("equation: x**2 + y**2 = 1.5**2\naxis:\n  x: { min: -2, max: 2 }\n  y: { min: -2, max: 2 }\n")

	res, err := engine.Evaluate(bp, bp.Defaults())
	require.NoError(t, err)
	assert.Equal(t, engine.SeriesContour, res.Series.Kind)
	require.NotEmpty(t, res.Series.Points)

	const cell = 4.0 / 120
	for _, p := range res.Series.Points {
		assert.InDelta(t, 1.5, math.Hypot(p.X, p.Y), cell, "point %v", p)
		assert.True(t, p.X >= -2 && p.X <= 2 && p.Y >= -2 && p.Y <= 2, "point %v outside grid", p)
	}

	// Every quadrant of the circle is traced.
	var quadrants [4]int
	for _, p := range res.Series.Points {
		q := 0
		if p.X < 0 {
			q |= 1
		}
		if p.Y < 0 {
			q |= 2
		}
		quadrants[q]++
	}
	for q, n := range quadrants {
		assert.Positive(t, n, "quadrant %d", q)
	}
}

func TestEvaluate_ImplicitSingularitiesAreSkipped(t *testing.T) {
	// 1/x is infinite on the x = 0 column; log(y) is NaN below y = 0.
	bp := blueprint.Parse("equation: 1/x + log(y) = 1\naxis:\n  x: { min: -1, max: 1 }\n  y: { min: -1, max: 1 }\n")

	res, err := engine.New(engine.Options{GridResolution: 20}).Evaluate(bp, nil)
	require.NoError(t, err)
	for _, p := range res.Series.Points {
		assert.GreaterOrEqual(t, p.Y, 0.0, "point %v from a cell with a NaN corner", p)
		assert.False(t, math.IsNaN(p.X) || math.IsNaN(p.Y))
	}
}

func TestEvaluate_VariablesInDeclarationOrder(t *testing.T) {
	bp := blueprint.Parse(`equation: Z + W * 0 + x * 0
steps: 1
params:
  R: { value: 10, min: 0, max: 50 }
  X: { value: 15, min: 0, max: 50 }
vars:
  Z: sqrt(R**2 + X**2)
  W: Z * 2
`)

	res, err := engine.Evaluate(bp, bp.Defaults())
	require.NoError(t, err)
	require.Len(t, res.Vars, 2)
	assert.Equal(t, "Z", res.Vars[0].Name)
	assert.Equal(t, math.Sqrt(325), res.Vars[0].Value)
	assert.InDelta(t, 18.0278, res.Vars[0].Value, 1e-4)
	assert.Equal(t, 2*math.Sqrt(325), res.Vars[1].Value)
	for _, p := range res.Series.Points {
		assert.Equal(t, math.Sqrt(325), p.Y)
	}

	// A parameter change re-evaluates Z without re-parsing.
	res, err = engine.Evaluate(bp, blueprint.Assignment{"R": 20, "X": 15})
	require.NoError(t, err)
	assert.Equal(t, math.Sqrt(625), res.Vars[0].Value)
	assert.Equal(t, 25.0, res.Series.Points[0].Y)
}

func TestEvaluate_ForwardReferenceFails(t *testing.T) {
	bp := blueprint.Parse("equation: a\nvars:\n  a: b + 1\n  b: 2\n")

	_, err := engine.Evaluate(bp, nil)
	var eqErr *engine.EquationError
	require.ErrorAs(t, err, &eqErr)
	assert.Equal(t, `variable "a"`, eqErr.Source)
	assert.Equal(t, "b + 1", eqErr.Expr)
	assert.ErrorIs(t, err, expr.ErrUnknownName)
}

func TestEvaluate_Errors(t *testing.T) {
	tests := []struct {
		name string
		text string
		want error
	}{
		{name: "UnknownIdentifier", text: "equation: foo * x", want: expr.ErrUnknownName},
		{name: "Syntax", text: "equation: x +* 2", want: expr.ErrParse},
		{name: "Empty", text: "title: nothing", want: expr.ErrParse},
		{name: "ImplicitRightSide", text: "equation: x = ", want: expr.ErrParse},
		{name: "ImplicitUnknown", text: "equation: x**2 + y**2 = r", want: expr.ErrUnknownName},
		{name: "YInExplicit", text: "equation: x + y", want: expr.ErrUnknownName},
		{name: "BadVariable", text: "equation: x\nvars:\n  v: (1", want: expr.ErrParse},
		{name: "Arity", text: "equation: pow(x)", want: expr.ErrArity},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bp := blueprint.Parse(tc.text)
			res, err := engine.Evaluate(bp, bp.Defaults())
			assert.Nil(t, res)
			assert.ErrorIs(t, err, engine.ErrEquation)
			assert.ErrorIs(t, err, tc.want)
			assert.True(t, errors.Is(err, tc.want))
		})
	}
}

func TestEvaluate_Deterministic(t *testing.T) {
	bp := blueprint.Parse("equation: sin(a*x) = cos(y)\nparams:\n  a: { value: 1.7 }\n")
	params := blueprint.Assignment{"a": 2.3}

	first, err := engine.Evaluate(bp, params)
	require.NoError(t, err)
	second, err := engine.Evaluate(bp, params)
	require.NoError(t, err)
	require.Equal(t, len(first.Series.Points), len(second.Series.Points))
	for i := range first.Series.Points {
		a, b := first.Series.Points[i], second.Series.Points[i]
		assert.Equal(t, math.Float64bits(a.X), math.Float64bits(b.X))
		assert.Equal(t, math.Float64bits(a.Y), math.Float64bits(b.Y))
	}
}

func TestEvaluate_AssignmentFallbacks(t *testing.T) {
	bp := blueprint.Parse("equation: a + x * 0\nsteps: 1\nparams:\n  a: { value: 3 }\n")

	res, err := engine.Evaluate(bp, blueprint.Assignment{"unrelated": 100})
	require.NoError(t, err)
	assert.Equal(t, 3.0, res.Series.Points[0].Y)

	res, err = engine.Evaluate(bp, blueprint.Assignment{"a": -1})
	require.NoError(t, err)
	assert.Equal(t, -1.0, res.Series.Points[0].Y)
}
