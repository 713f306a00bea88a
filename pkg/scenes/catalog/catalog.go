// Package catalog lists every scene script.
//
// It exists to break the import cycle between pkg/scenes and the script
// packages, which import it.
package catalog

import (
	"github.com/matzehuels/mathscene/pkg/scenes"
	"github.com/matzehuels/mathscene/pkg/scenes/gradient"
	"github.com/matzehuels/mathscene/pkg/scenes/latex"
	"github.com/matzehuels/mathscene/pkg/scenes/matvec"
)

// All is every registered scene, in listing order.
var All = []*scenes.Definition{
	gradient.Definition,
	matvec.Definition,
	latex.Definition,
}

// Find returns the scene with the given name, or nil.
func Find(name string) *scenes.Definition {
	return scenes.Find(name, All)
}

// Lookup returns the scene with the given name or a SCENE_NOT_FOUND error.
func Lookup(name string) (*scenes.Definition, error) {
	return scenes.Lookup(name, All)
}

// Names lists every scene name.
func Names() []string {
	return scenes.Names(All)
}
