package blueprint

const (
	// DefaultSteps is the explicit-mode sample count.
	DefaultSteps = 500
	// DefaultColor is the series color used when the blueprint sets none.
	DefaultColor = "#ff8c00"

	defaultParamMin  = -10
	defaultParamMax  = 10
	defaultParamStep = 0.1
)

// Blueprint is the parsed description of one plot. It must not be modified
// after Parse returns it.
type Blueprint struct {
	Title    string
	Equation string
	Steps    int
	Color    string

	// Params are the slider parameters in declaration order.
	Params []Param
	// Vars are the derived variables in declaration order.
	Vars []Var
	Axis Axis

	// Warnings lists definitions that were skipped while parsing.
	Warnings []string
}

// Param is one slider.
type Param struct {
	Name  string
	Label string
	Value float64
	Min   float64
	Max   float64
	Step  float64
}

// Clamp returns v limited to [p.Min, p.Max].
func (p Param) Clamp(v float64) float64 {
	if v < p.Min {
		return p.Min
	}
	if v > p.Max {
		return p.Max
	}
	return v
}

// Var is a derived variable: Expr is kept verbatim.
type Var struct {
	Name string
	Expr string
}

type Axis struct {
	X AxisSpec
	Y AxisSpec
}

// AxisSpec holds the optional per-axis settings.
type AxisSpec struct {
	Title  string
	Min    float64
	Max    float64
	HasMin bool
	HasMax bool
}

// Range returns the axis bounds, using defMin/defMax for unset ends.
func (a AxisSpec) Range(defMin, defMax float64) (lo, hi float64) {
	lo, hi = defMin, defMax
	if a.HasMin {
		lo = a.Min
	}
	if a.HasMax {
		hi = a.Max
	}
	return lo, hi
}

// Assignment maps parameter names to their current values.
type Assignment map[string]float64

// Clone returns a copy of a.
func (a Assignment) Clone() Assignment {
	out := make(Assignment, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Param returns the parameter called name.
func (b *Blueprint) Param(name string) (Param, bool) {
	for _, p := range b.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// Defaults returns the initial assignment: every parameter at its declared value.
func (b *Blueprint) Defaults() Assignment {
	out := make(Assignment, len(b.Params))
	for _, p := range b.Params {
		out[p.Name] = p.Value
	}
	return out
}

// ParamNames returns the parameter names in slider order.
func (b *Blueprint) ParamNames() []string {
	out := make([]string, len(b.Params))
	for i, p := range b.Params {
		out[i] = p.Name
	}
	return out
}
