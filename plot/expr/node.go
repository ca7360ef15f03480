package expr

import (
	"fmt"
	"strconv"
	"strings"
)

// Node is a parsed expression.
type Node interface {
	Eval(env *Env) (float64, error)
	String() string
}

type numberNode struct{ v float64 }

func (n numberNode) Eval(_ *Env) (float64, error) { return n.v, nil }

func (n numberNode) String() string { return strconv.FormatFloat(n.v, 'g', -1, 64) }

type identNode struct{ name string }

func (n identNode) Eval(e *Env) (float64, error) {
	if v, ok := e.Lookup(n.name); ok {
		return v, nil
	}
	if _, ok := library[n.name]; ok {
		return 0, fmt.Errorf("%w: function %q used as a value", ErrUnknownName, n.name)
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownName, n.name)
}

func (n identNode) String() string { return n.name }

type unaryNode struct {
	op byte
	x  Node
}

func (n unaryNode) Eval(e *Env) (float64, error) {
	v, err := n.x.Eval(e)
	if err != nil {
		return 0, err
	}
	if n.op == '-' {
		return -v, nil
	}
	return v, nil
}

func (n unaryNode) String() string { return "(" + string(n.op) + n.x.String() + ")" }

type binaryNode struct {
	op    byte
	left  Node
	right Node
}

func (n binaryNode) Eval(e *Env) (float64, error) {
	a, err := n.left.Eval(e)
	if err != nil {
		return 0, err
	}
	b, err := n.right.Eval(e)
	if err != nil {
		return 0, err
	}
	switch n.op {
	case '+':
		return a + b, nil
	case '-':
		return a - b, nil
	case '*':
		return a * b, nil
	case '/':
		return a / b, nil
	case '^':
		return pow(a, b), nil
	default:
		return 0, fmt.Errorf("%w: unknown operator %q", ErrParse, n.op)
	}
}

func (n binaryNode) String() string {
	op := string(n.op)
	if n.op == '^' {
		op = "**"
	}
	return "(" + n.left.String() + " " + op + " " + n.right.String() + ")"
}

type callNode struct {
	name string
	args []Node
}

func (n callNode) Eval(e *Env) (float64, error) {
	fn, ok := library[n.name]
	if !ok {
		if _, bound := e.Lookup(n.name); bound {
			return 0, fmt.Errorf("%w: %q is not a function", ErrUnknownName, n.name)
		}
		return 0, fmt.Errorf("%w %q", ErrUnknownName, n.name)
	}
	if len(n.args) < fn.minArgs || (fn.maxArgs >= 0 && len(n.args) > fn.maxArgs) {
		return 0, fmt.Errorf("%w: %s takes %s, got %d", ErrArity, n.name, fn.arity(), len(n.args))
	}

	var buf [4]float64
	args := buf[:0]
	for _, a := range n.args {
		v, err := a.Eval(e)
		if err != nil {
			return 0, err
		}
		args = append(args, v)
	}
	return fn.call(args), nil
}

func (n callNode) String() string {
	parts := make([]string, len(n.args))
	for i, a := range n.args {
		parts[i] = a.String()
	}
	return n.name + "(" + strings.Join(parts, ", ") + ")"
}

// Idents returns the distinct identifiers referenced by n as values, in first-use order.
// Function names in call position are not included.
func Idents(n Node) []string {
	var out []string
	seen := make(map[string]bool)
	var walk func(Node)
	walk = func(n Node) {
		switch n := n.(type) {
		case identNode:
			if !seen[n.name] {
				seen[n.name] = true
				out = append(out, n.name)
			}
		case unaryNode:
			walk(n.x)
		case binaryNode:
			walk(n.left)
			walk(n.right)
		case callNode:
			for _, a := range n.args {
				walk(a)
			}
		}
	}
	walk(n)
	return out
}
