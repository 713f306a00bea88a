// Package live binds geometry to scalar cells.
//
// A [Source] is anything the scene can stage. [Static] wraps an object that
// never changes. [Derive] wraps a derivation function that is run again on
// every [Source.Resolve], so what gets drawn always reflects the current
// values of the cells the function reads. Nothing is cached and nothing is
// patched: each resolve builds a fresh object.
//
// The scene's render loop resolves every staged source once per frame. There
// is no subscription or callback registration; the declared inputs exist only
// so the binding graph can be drawn.
//
//	xk := value.NewCell("x_k", 3.4)
//	dot := live.Derive("xk_dot", func() (shape.Object, error) {
//	    return shape.NewDot(axes.C2P(xk.Get(), f(xk.Get()))), nil
//	}, xk)
package live

import (
	"github.com/matzehuels/mathscene/pkg/errors"
	"github.com/matzehuels/mathscene/pkg/geom"
	"github.com/matzehuels/mathscene/pkg/shape"
)

// Input is something a source reads from: a cell or another source.
type Input interface {
	Label() string
}

// Source is a stageable object.
type Source interface {
	Input
	// Resolve returns the object as of now.
	Resolve() (shape.Object, error)
	// Inputs lists what Resolve reads.
	Inputs() []Input
}

// StaticSource is an object that never changes.
type StaticSource struct {
	label string
	obj   shape.Object
}

// Static wraps obj.
func Static(label string, obj shape.Object) *StaticSource {
	return &StaticSource{label: label, obj: obj}
}

func (s *StaticSource) Label() string                  { return s.label }
func (s *StaticSource) Inputs() []Input                { return nil }
func (s *StaticSource) Resolve() (shape.Object, error) { return s.obj, nil }

// Object returns the wrapped object.
func (s *StaticSource) Object() shape.Object { return s.obj }

// DeriveFunc builds an object from current state. It must not mutate any
// cell.
type DeriveFunc func() (shape.Object, error)

// Derived is an object recomputed on every query.
type Derived struct {
	label  string
	fn     DeriveFunc
	inputs []Input
}

// Derive binds fn. inputs should name every cell and source fn reads.
func Derive(label string, fn DeriveFunc, inputs ...Input) *Derived {
	return &Derived{label: label, fn: fn, inputs: inputs}
}

func (d *Derived) Label() string   { return d.label }
func (d *Derived) Inputs() []Input { return d.inputs }

// Resolve runs the derivation. A failing derivation is reported as
// UNDEFINED_DERIVATION; it is never retried or replaced by a stale object.
func (d *Derived) Resolve() (shape.Object, error) {
	obj, err := d.fn()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUndefined, err, "derive %s", d.label)
	}
	if obj == nil {
		return nil, errors.New(errors.ErrCodeUndefined, "derive %s: no object", d.label)
	}
	return obj, nil
}

// GroupSource resolves several sources together.
type GroupSource struct {
	label   string
	members []Source
}

// Group combines sources so they can be animated as one.
func Group(label string, members ...Source) *GroupSource {
	return &GroupSource{label: label, members: members}
}

func (g *GroupSource) Label() string { return g.label }

// Members returns the grouped sources.
func (g *GroupSource) Members() []Source { return g.members }

func (g *GroupSource) Inputs() []Input {
	out := make([]Input, len(g.members))
	for i, m := range g.members {
		out[i] = m
	}
	return out
}

// Resolve resolves every member.
func (g *GroupSource) Resolve() (shape.Object, error) {
	grp := shape.NewGroup()
	for _, m := range g.members {
		obj, err := m.Resolve()
		if err != nil {
			return nil, err
		}
		grp.Add(obj)
	}
	return grp, nil
}

// Bounds resolves s and returns its bounds. Derivations that position one
// object relative to another use it.
func Bounds(s Source) (geom.Bounds, error) {
	obj, err := s.Resolve()
	if err != nil {
		return geom.Bounds{}, err
	}
	return obj.Bounds(), nil
}
