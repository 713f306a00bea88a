// Package value provides scalar state cells: named, mutable float64 values
// that drive derived geometry.
//
// A cell has exactly one owner, the scene that animates it. Everything that
// depends on a cell reads it on demand; there are no change callbacks. The
// revision counter lets a reader tell whether anything changed since it last
// looked.
package value

import (
	"fmt"
	"math"
)

// Cell is a named mutable scalar.
type Cell struct {
	name string
	v    float64
	rev  uint64
}

// NewCell creates a cell holding v.
func NewCell(name string, v float64) *Cell {
	return &Cell{name: name, v: v}
}

// Name returns the cell's name.
func (c *Cell) Name() string { return c.name }

// Label identifies the cell in binding graphs.
func (c *Cell) Label() string { return c.name }

// Get returns the current value.
func (c *Cell) Get() float64 { return c.v }

// Set commits v and bumps the revision, even when v equals the current value.
func (c *Cell) Set(v float64) {
	c.v = v
	c.rev++
}

// Revision counts committed Sets.
func (c *Cell) Revision() uint64 { return c.rev }

// Changed reports whether the cell was set after revision since.
func (c *Cell) Changed(since uint64) bool { return c.rev > since }

func (c *Cell) String() string {
	return fmt.Sprintf("%s=%g", c.name, c.v)
}

// Pair groups two cells that together describe a point, such as the
// endpoint of an arrow.
type Pair struct {
	X, Y *Cell
}

// NewPair creates cells name.x and name.y.
func NewPair(name string, x, y float64) Pair {
	return Pair{X: NewCell(name+".x", x), Y: NewCell(name+".y", y)}
}

// Get returns both values.
func (p Pair) Get() (x, y float64) { return p.X.Get(), p.Y.Get() }

// Snapshot is a cell's value at a point in time.
type Snapshot struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Snap captures the current value of each cell.
func Snap(cells []*Cell) []Snapshot {
	out := make([]Snapshot, len(cells))
	for i, c := range cells {
		out[i] = Snapshot{Name: c.name, Value: c.v}
	}
	return out
}

// Lerp interpolates between a and b. At t=1 it returns b exactly.
func Lerp(a, b, t float64) float64 {
	if t == 1 {
		return b
	}
	return a + (b-a)*t
}

// Finite reports whether v is neither NaN nor infinite.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
