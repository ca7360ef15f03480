package blueprint

import (
	"fmt"
	"strings"

	"curvelab/plot/expr"
)

type section uint8

const (
	sectionRoot section = iota
	sectionParams
	sectionVars
	sectionAxis
)

type parser struct {
	bp      *Blueprint
	section section
}

// Parse converts blueprint text into a Blueprint. It never fails: anything it
// cannot understand keeps its default.
func Parse(text string) *Blueprint {
	p := &parser{bp: &Blueprint{Steps: DefaultSteps, Color: DefaultColor}}
	for _, line := range strings.Split(text, "\n") {
		p.line(strings.TrimRight(line, "\r"))
	}
	return p.bp
}

func (p *parser) line(raw string) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return
	}

	indented := raw[0] == ' ' || raw[0] == '\t'
	k, v, found := strings.Cut(trimmed, ":")
	if !indented {
		p.section = sectionRoot
		if found {
			p.header(strings.ToLower(strings.TrimSpace(k)), strings.TrimSpace(v))
		}
		return
	}
	if !found {
		return
	}

	name := strings.TrimSpace(k)
	value := strings.TrimSpace(v)
	switch p.section {
	case sectionParams:
		p.param(name, value)
	case sectionVars:
		p.variable(name, value)
	case sectionAxis:
		p.axis(strings.ToLower(name), value)
	}
}

func (p *parser) header(key, value string) {
	switch key {
	case "params", "parameters":
		p.section = sectionParams
	case "vars", "variables":
		p.section = sectionVars
	case "axis":
		p.section = sectionAxis
	case "title":
		p.bp.Title = unquote(value)
	case "equation":
		p.bp.Equation = strings.TrimSpace(unquote(value))
	case "color":
		if c := unquote(value); c != "" {
			p.bp.Color = c
		}
	case "steps":
		if f, ok := ParseNumber(value); ok && f >= 1 && f <= maxSteps {
			p.bp.Steps = int(f)
		}
	}
}

// maxSteps keeps int(f) well defined.
const maxSteps = 1 << 24

func (p *parser) param(name, literal string) {
	if !p.checkName("parameter", name) {
		return
	}
	if p.varIndex(name) >= 0 {
		p.warnf("parameter %q skipped: already declared as a variable", name)
		return
	}

	prm := Param{Name: name, Label: name, Min: defaultParamMin, Max: defaultParamMax, Step: defaultParamStep}
	hasValue := false
	if fields, ok := parseObject(literal); ok {
		if s, ok := fields["label"]; ok && s != "" {
			prm.Label = s
		}
		if f, ok := ParseNumber(fields["min"]); ok {
			prm.Min = f
		}
		if f, ok := ParseNumber(fields["max"]); ok {
			prm.Max = f
		}
		if f, ok := ParseNumber(fields["step"]); ok && f > 0 {
			prm.Step = f
		}
		if f, ok := ParseNumber(fields["value"]); ok {
			prm.Value = f
			hasValue = true
		}
	}
	if prm.Min > prm.Max {
		prm.Min, prm.Max = prm.Max, prm.Min
	}
	if !hasValue {
		prm.Value = prm.Clamp(0)
	}

	for i := range p.bp.Params {
		if p.bp.Params[i].Name == name {
			p.bp.Params[i] = prm
			return
		}
	}
	p.bp.Params = append(p.bp.Params, prm)
}

func (p *parser) variable(name, src string) {
	if !p.checkName("variable", name) {
		return
	}
	if _, ok := p.bp.Param(name); ok {
		p.warnf("variable %q skipped: already declared as a parameter", name)
		return
	}
	if i := p.varIndex(name); i >= 0 {
		p.bp.Vars[i].Expr = src
		return
	}
	p.bp.Vars = append(p.bp.Vars, Var{Name: name, Expr: src})
}

func (p *parser) axis(key, literal string) {
	var spec *AxisSpec
	switch key {
	case "x":
		spec = &p.bp.Axis.X
	case "y":
		spec = &p.bp.Axis.Y
	default:
		return
	}

	fields, ok := parseObject(literal)
	if !ok {
		return
	}
	if s, ok := fields["title"]; ok {
		spec.Title = s
	} else if s, ok := fields["label"]; ok {
		spec.Title = s
	}
	if f, ok := ParseNumber(fields["min"]); ok {
		spec.Min, spec.HasMin = f, true
	}
	if f, ok := ParseNumber(fields["max"]); ok {
		spec.Max, spec.HasMax = f, true
	}
}

func (p *parser) checkName(kind, name string) bool {
	switch {
	case !expr.IsIdent(name):
		p.warnf("%s %q skipped: not an identifier", kind, name)
		return false
	case expr.IsReserved(name):
		p.warnf("%s %q skipped: name is reserved", kind, name)
		return false
	}
	return true
}

func (p *parser) varIndex(name string) int {
	for i, v := range p.bp.Vars {
		if v.Name == name {
			return i
		}
	}
	return -1
}

func (p *parser) warnf(format string, args ...any) {
	p.bp.Warnings = append(p.bp.Warnings, fmt.Sprintf(format, args...))
}
