package engine

import (
	"fmt"

	"curvelab/plot/blueprint"
	"curvelab/plot/expr"
)

const (
	// DefaultGridResolution is the number of implicit-mode cells per axis.
	DefaultGridResolution = 120

	defaultMin = -10
	defaultMax = 10
)

type Options struct {
	// GridResolution is the implicit-mode cell count per axis; the grid has
	// GridResolution+1 nodes per axis. Zero means DefaultGridResolution.
	GridResolution int
}

// Engine evaluates blueprints. The zero value is ready to use.
type Engine struct {
	opts Options
}

func New(opts Options) *Engine {
	return &Engine{opts: opts}
}

var defaultEngine = &Engine{}

// Evaluate evaluates bp with the default options.
func Evaluate(bp *blueprint.Blueprint, params blueprint.Assignment) (*Result, error) {
	return defaultEngine.Evaluate(bp, params)
}

// Evaluate builds the evaluation context for params and samples bp's equation.
//
// A declared parameter missing from params takes its declared value;
// entries of params that bp does not declare are ignored. Any invalid
// expression aborts the whole call with an *EquationError.
func (e *Engine) Evaluate(bp *blueprint.Blueprint, params blueprint.Assignment) (*Result, error) {
	if bp == nil {
		return nil, &EquationError{Source: "equation", Err: fmt.Errorf("%w: no blueprint", expr.ErrParse)}
	}

	res := &Result{Title: bp.Title, Color: bp.Color}
	res.X.Title = bp.Axis.X.Title
	res.X.Min, res.X.Max = bp.Axis.X.Range(defaultMin, defaultMax)
	res.Y.Title = bp.Axis.Y.Title
	res.Y.Min, res.Y.Max = bp.Axis.Y.Range(defaultMin, defaultMax)

	scope, vars, err := buildScope(bp, params)
	if err != nil {
		return nil, err
	}
	res.Vars = vars

	left, right, implicit := expr.SplitEquation(bp.Equation)
	if !implicit {
		f, err := compile("equation", right)
		if err != nil {
			return nil, err
		}
		pts, err := sweep(f, scope, res.X.Min, res.X.Max, bp.Steps)
		if err != nil {
			return nil, &EquationError{Source: "equation", Expr: right, Err: err}
		}
		res.Series = Series{Kind: SeriesCurve, Points: pts}
		return res, nil
	}

	lf, err := compile("left side", left)
	if err != nil {
		return nil, err
	}
	rf, err := compile("right side", right)
	if err != nil {
		return nil, err
	}
	g, err := sampleGrid(lf, rf, scope, res.X, res.Y, e.gridResolution())
	if err != nil {
		return nil, &EquationError{Source: "equation", Expr: bp.Equation, Err: err}
	}
	res.Series = Series{Kind: SeriesContour, Points: marchingSquares(g)}
	return res, nil
}

func (e *Engine) gridResolution() int {
	if e == nil || e.opts.GridResolution <= 0 {
		return DefaultGridResolution
	}
	return e.opts.GridResolution
}

// buildScope binds the library, then every parameter, then every derived
// variable in declaration order.
func buildScope(bp *blueprint.Blueprint, params blueprint.Assignment) (*expr.Scope, []Binding, error) {
	scope := expr.Library()
	for _, p := range bp.Params {
		v, ok := params[p.Name]
		if !ok {
			v = p.Value
		}
		scope = scope.With(p.Name, v)
	}

	vars := make([]Binding, 0, len(bp.Vars))
	for _, v := range bp.Vars {
		source := fmt.Sprintf("variable %q", v.Name)
		n, err := compile(source, v.Expr)
		if err != nil {
			return nil, nil, err
		}
		val, err := n.Eval(expr.NewEnv(scope))
		if err != nil {
			return nil, nil, &EquationError{Source: source, Expr: v.Expr, Err: err}
		}
		scope = scope.With(v.Name, val)
		vars = append(vars, Binding{Name: v.Name, Value: val})
	}
	return scope, vars, nil
}

func compile(source, src string) (expr.Node, error) {
	n, err := expr.Parse(src)
	if err != nil {
		return nil, &EquationError{Source: source, Expr: src, Err: err}
	}
	return n, nil
}
