// Package engine evaluates a parsed blueprint against a parameter assignment
// and produces a plot-ready series.
//
// Explicit equations (no top-level '=') are swept over x. Implicit equations
// "left = right" are sampled on a uniform grid and their zero contour is
// extracted with marching squares. Evaluation is a pure function of its
// inputs: the package holds no mutable state.
package engine
