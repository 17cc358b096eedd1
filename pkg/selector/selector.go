// Package selector filters particles with user supplied boolean expressions
// such as `status == 1 && abs(pid) == 11 && pt > 20`.
package selector

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/sbinet-staging/lhetools/pkg/lhe"
)

// Env is the set of names visible to a selection expression.
type Env struct {
	PID     int64   `expr:"pid"`
	Status  int32   `expr:"status"`
	Mother1 int32   `expr:"mother1"`
	Mother2 int32   `expr:"mother2"`
	Px      float64 `expr:"px"`
	Py      float64 `expr:"py"`
	Pz      float64 `expr:"pz"`
	E       float64 `expr:"e"`
	M       float64 `expr:"m"`
	Pt      float64 `expr:"pt"`
	Eta     float64 `expr:"eta"`
	Phi     float64 `expr:"phi"`
}

// NewEnv builds the expression environment of p.
func NewEnv(p *lhe.Particle) Env {
	env := Env{
		PID:     p.PID,
		Status:  p.Status,
		Mother1: p.Mothers[0],
		Mother2: p.Mothers[1],
		Px:      p.Px,
		Py:      p.Py,
		Pz:      p.Pz,
		E:       p.E,
		M:       p.M,
	}

	p4 := p.P4()
	env.Pt = p4.Pt()
	if env.Pt > 0 {
		env.Eta = p4.Eta()
		env.Phi = p4.Phi()
	}
	return env
}

// Selector evaluates a compiled expression. A nil or empty Selector
// accepts every particle.
type Selector struct {
	program *vm.Program
	rawExpr string
}

// New compiles exprStr. An empty string yields a selector that matches
// everything.
func New(exprStr string) (*Selector, error) {
	if exprStr == "" {
		return &Selector{}, nil
	}

	program, err := expr.Compile(exprStr, expr.Env(Env{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("failed to compile selection %q: %w", exprStr, err)
	}

	return &Selector{
		program: program,
		rawExpr: exprStr,
	}, nil
}

// Active reports whether the selector filters anything.
func (s *Selector) Active() bool {
	return s != nil && s.program != nil
}

// String returns the source expression.
func (s *Selector) String() string {
	if s == nil {
		return ""
	}
	return s.rawExpr
}

// Match reports whether p passes the selection.
func (s *Selector) Match(p *lhe.Particle) (bool, error) {
	if !s.Active() {
		return true, nil
	}

	output, err := expr.Run(s.program, NewEnv(p))
	if err != nil {
		return false, fmt.Errorf("failed to evaluate selection %q: %w", s.rawExpr, err)
	}

	ok, _ := output.(bool)
	return ok, nil
}

// Filter returns the particles of ps that pass the selection, in order.
func (s *Selector) Filter(ps []lhe.Particle) ([]lhe.Particle, error) {
	if !s.Active() {
		return ps, nil
	}

	var out []lhe.Particle
	for i := range ps {
		ok, err := s.Match(&ps[i])
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, ps[i])
		}
	}
	return out, nil
}
