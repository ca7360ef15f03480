package expr

import (
	"fmt"
	"math"
)

type builtin struct {
	minArgs int
	maxArgs int // -1: variadic
	call    func(args []float64) float64
}

func (b builtin) arity() string {
	switch {
	case b.maxArgs < 0:
		return fmt.Sprintf("at least %d arguments", b.minArgs)
	case b.minArgs == b.maxArgs && b.minArgs == 1:
		return "1 argument"
	case b.minArgs == b.maxArgs:
		return fmt.Sprintf("%d arguments", b.minArgs)
	default:
		return fmt.Sprintf("%d..%d arguments", b.minArgs, b.maxArgs)
	}
}

func unary(fn func(float64) float64) builtin {
	return builtin{minArgs: 1, maxArgs: 1, call: func(args []float64) float64 { return fn(args[0]) }}
}

var constants = []struct {
	name  string
	value float64
}{
	{"PI", math.Pi},
	{"E", math.E},
}

var library = map[string]builtin{
	"sin":   unary(math.Sin),
	"cos":   unary(math.Cos),
	"tan":   unary(math.Tan),
	"exp":   unary(math.Exp),
	"sqrt":  unary(math.Sqrt),
	"abs":   unary(math.Abs),
	"log":   unary(math.Log),
	"log10": unary(math.Log10),
	"floor": unary(math.Floor),
	"ceil":  unary(math.Ceil),
	"round": unary(round),
	"pow":   {minArgs: 2, maxArgs: 2, call: func(args []float64) float64 { return pow(args[0], args[1]) }},
	"min":   {minArgs: 0, maxArgs: -1, call: minOf},
	"max":   {minArgs: 0, maxArgs: -1, call: maxOf},
}

// IsReserved reports whether name belongs to the math library or is one of
// the sweep variables x and y.
func IsReserved(name string) bool {
	if name == "x" || name == "y" {
		return true
	}
	if _, ok := library[name]; ok {
		return true
	}
	for _, c := range constants {
		if c.name == name {
			return true
		}
	}
	return false
}

// round rounds half-way cases towards +Inf.
func round(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	r := math.Floor(x)
	if x-r >= 0.5 {
		r++
	}
	return r
}

// pow differs from math.Pow where the two disagree with IEEE 754 pow:
// 1**NaN and (±1)**±Inf are NaN.
func pow(x, y float64) float64 {
	if math.IsNaN(y) {
		return math.NaN()
	}
	if math.IsInf(y, 0) && math.Abs(x) == 1 {
		return math.NaN()
	}
	return math.Pow(x, y)
}

func minOf(args []float64) float64 {
	m := math.Inf(1)
	for _, v := range args {
		if math.IsNaN(v) {
			return v
		}
		if v < m {
			m = v
		}
	}
	return m
}

func maxOf(args []float64) float64 {
	m := math.Inf(-1)
	for _, v := range args {
		if math.IsNaN(v) {
			return v
		}
		if v > m {
			m = v
		}
	}
	return m
}
