package expr

// Scope is an immutable, insertion-ordered name->value table.
//
// With returns a new Scope; the receiver is never modified, so a Scope can be
// shared between goroutines.
type Scope struct {
	names  []string
	values []float64
	index  map[string]int
}

// Library returns the base scope holding the math constants PI and E.
func Library() *Scope {
	s := &Scope{index: make(map[string]int, len(constants))}
	for _, c := range constants {
		s.names = append(s.names, c.name)
		s.values = append(s.values, c.value)
		s.index[c.name] = len(s.names) - 1
	}
	return s
}

// With returns a copy of s with name bound to v. Rebinding a name shadows the
// earlier binding but keeps its position.
func (s *Scope) With(name string, v float64) *Scope {
	out := &Scope{index: make(map[string]int, s.Len()+1)}
	if s != nil {
		out.names = append(make([]string, 0, len(s.names)+1), s.names...)
		out.values = append(make([]float64, 0, len(s.values)+1), s.values...)
		for k, i := range s.index {
			out.index[k] = i
		}
	}
	if i, ok := out.index[name]; ok {
		out.values[i] = v
		return out
	}
	out.names = append(out.names, name)
	out.values = append(out.values, v)
	out.index[name] = len(out.names) - 1
	return out
}

// Lookup returns the value bound to name.
func (s *Scope) Lookup(name string) (float64, bool) {
	if s == nil {
		return 0, false
	}
	i, ok := s.index[name]
	if !ok {
		return 0, false
	}
	return s.values[i], true
}

func (s *Scope) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names)
}

// Names returns the bound names in insertion order.
func (s *Scope) Names() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.names...)
}

// Env is the evaluation environment: a scope plus the sweep variables.
//
// X and Y are only visible to expressions when HasX/HasY are set; they take
// precedence over scope bindings of the same name.
type Env struct {
	Scope *Scope

	X, Y       float64
	HasX, HasY bool
}

// NewEnv returns an environment without sweep variables.
func NewEnv(s *Scope) *Env { return &Env{Scope: s} }

func (e *Env) Lookup(name string) (float64, bool) {
	if e == nil {
		return 0, false
	}
	switch {
	case name == "x" && e.HasX:
		return e.X, true
	case name == "y" && e.HasY:
		return e.Y, true
	}
	return e.Scope.Lookup(name)
}

// EvalString parses and evaluates src against s.
func EvalString(src string, s *Scope) (float64, error) {
	n, err := Parse(src)
	if err != nil {
		return 0, err
	}
	return n.Eval(NewEnv(s))
}
