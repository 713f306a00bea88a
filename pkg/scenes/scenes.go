// Package scenes defines how scene scripts are described, parameterised and
// checked.
//
// Each script lives in its own subpackage and exports a [Definition]. The
// catalog package collects them; this package cannot import them back.
//
//	def := catalog.Find("gd-quadratic-bound")
//	script, err := def.New(scenes.Defaults)
package scenes

import (
	"context"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/mathscene/pkg/errors"
	"github.com/matzehuels/mathscene/pkg/scene"
)

// Decode fills a script's parameter struct. Fields it does not mention keep
// their defaults.
type Decode func(v any) error

// Defaults leaves every parameter at its default.
func Defaults(any) error { return nil }

// FromTOML decodes the primitive found at path in a parsed TOML document,
// such as the [scenes.gd-quadratic-bound] table of the config file. Keys the
// parameter struct does not know are rejected.
func FromTOML(md toml.MetaData, prim toml.Primitive, path ...string) Decode {
	return func(v any) error {
		if err := md.PrimitiveDecode(prim, v); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode %s", strings.Join(path, "."))
		}
		var unknown []string
		for _, key := range md.Undecoded() {
			if hasPrefix(key, path) && len(key) > len(path) {
				unknown = append(unknown, key.String())
			}
		}
		if len(unknown) > 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "unknown parameters: %s", strings.Join(unknown, ", "))
		}
		return nil
	}
}

func hasPrefix(key toml.Key, path []string) bool {
	if len(key) < len(path) {
		return false
	}
	for i, p := range path {
		if key[i] != p {
			return false
		}
	}
	return true
}

// Check is the outcome of one property check.
type Check struct {
	Property string
	Detail   string
	Err      error
}

// OK reports whether the property holds.
func (c Check) OK() bool { return c.Err == nil }

// Definition describes a script.
type Definition struct {
	Name        string
	Description string
	// New builds the script from its parameters.
	New func(decode Decode) (scene.Script, error)
	// Check verifies the mathematical properties the script illustrates.
	Check func(ctx context.Context, decode Decode) []Check
}

// Find returns the definition with the given name, or nil.
func Find(name string, defs []*Definition) *Definition {
	for _, d := range defs {
		if d.Name == name {
			return d
		}
	}
	return nil
}

// Lookup is Find with a SCENE_NOT_FOUND error listing the alternatives.
func Lookup(name string, defs []*Definition) (*Definition, error) {
	if d := Find(name, defs); d != nil {
		return d, nil
	}
	return nil, errors.New(errors.ErrCodeSceneNotFound, "unknown scene %q (available: %s)",
		name, strings.Join(Names(defs), ", "))
}

// Names lists definition names in order.
func Names(defs []*Definition) []string {
	out := make([]string, len(defs))
	for i, d := range defs {
		out[i] = d.Name
	}
	return out
}

// Verify records a check for cond, formatting detail as its message.
func Verify(property string, ok bool, detail string) Check {
	c := Check{Property: property, Detail: detail}
	if !ok {
		c.Err = errors.New(errors.ErrCodeInternal, "%s does not hold: %s", property, detail)
	}
	return c
}

// Failed records a check that could not be evaluated.
func Failed(property string, err error) Check {
	return Check{Property: property, Detail: errors.UserMessage(err), Err: err}
}

// Steps runs fns in order and stops at the first error. Scripts use it to
// keep Construct flat.
func Steps(fns ...func() error) error {
	for _, fn := range fns {
		if err := fn(); err != nil {
			return err
		}
	}
	return nil
}
