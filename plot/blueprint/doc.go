// Package blueprint parses the declarative text that describes one plot.
//
// A blueprint is a loosely indented, YAML-like document:
//
//	title: Impedance
//	equation: Z * sin(x)
//	steps: 400
//	params:
//	  R: { label: "Resistance", value: 10, min: 0, max: 50, step: 1 }
//	vars:
//	  Z: sqrt(R**2 + X**2)
//	axis:
//	  x: { title: "t", min: 0, max: 2*PI }
//
// Parsing is total: malformed or missing fields fall back to their defaults
// and expressions are stored verbatim for the engine to evaluate.
package blueprint
