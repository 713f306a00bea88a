package shape

import (
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/mathscene/pkg/geom"
)

const (
	// baseEm is the height of a line of text at scale 1, in scene units.
	baseEm        = 0.5
	fontCharWidth = 0.55
)

func textWidth(s string, em float64) float64 {
	return float64(max(1, utf8.RuneCountInString(s))) * em * fontCharWidth
}

// Text is a run of TeX source. Source is kept verbatim; Display is what gets
// drawn.
type Text struct {
	Source  string
	Display string
	Scale   float64
	Color   Color
	Math    bool
	center  geom.Vec2
}

// Tex creates text-mode TeX.
func Tex(src string) *Text {
	return &Text{Source: src, Display: PlainTeX(src), Scale: 1, Color: White}
}

// MathTex creates math-mode TeX.
func MathTex(src string) *Text {
	t := Tex(src)
	t.Math = true
	return t
}

// Scaled multiplies the text size by s, keeping its centre.
func (t *Text) Scaled(s float64) *Text { t.Scale *= s; return t }

// WithColor sets the text colour.
func (t *Text) WithColor(c Color) *Text { t.Color = c; return t }

// Em returns the line height in scene units.
func (t *Text) Em() float64 { return baseEm * t.Scale }

func (t *Text) Shift(v geom.Vec2) { t.center = t.center.Add(v) }

func (t *Text) Bounds() geom.Bounds {
	return geom.Rect(t.center, textWidth(t.Display, t.Em()), t.Em())
}

func (t *Text) Primitives() []Primitive {
	return []Primitive{{
		Kind: KindText, Center: t.center, Text: t.Display, FontSize: t.Em(),
		Fill: t.Color, FillOpacity: 1, Opacity: 1,
	}}
}

var texSymbols = map[string]string{
	"star":   "⋆",
	"le":     "≤",
	"leq":    "≤",
	"ge":     "≥",
	"geq":    "≥",
	"int":    "∫",
	"sum":    "Σ",
	"cdot":   "·",
	"times":  "×",
	"infty":  "∞",
	"prime":  "′",
	"alpha":  "α",
	"beta":   "β",
	"eta":    "η",
	"lambda": "λ",
	"nabla":  "∇",
	"to":     "→",
	"approx": "≈",
	"arg":    "arg ",
	"min":    "min",
	"max":    "max",
	"quad":   "  ",
	",":      " ",
	";":      " ",
	" ":      " ",
	"\\":     "; ",
}

var superscripts = map[rune]rune{
	'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴', '5': '⁵', '6': '⁶', '7': '⁷', '8': '⁸', '9': '⁹',
	'+': '⁺', '-': '⁻', 'n': 'ⁿ', 'i': 'ⁱ', '⋆': '⋆', '*': '*', 'T': 'ᵀ',
}

var subscripts = map[rune]rune{
	'0': '₀', '1': '₁', '2': '₂', '3': '₃', '4': '₄', '5': '₅', '6': '₆', '7': '₇', '8': '₈', '9': '₉',
	'+': '₊', '-': '₋', 'k': 'ₖ', 'i': 'ᵢ', 'j': 'ⱼ', 'n': 'ₙ', 'x': 'ₓ', 'y': 'ᵧ',
}

// PlainTeX maps the small TeX subset used in scene formulas to plain text:
// symbols become their Unicode glyphs, \frac{a}{b} becomes a/b, and short
// scripts use Unicode super/subscripts where every character has one.
// Anything it does not recognise is passed through without the backslash.
func PlainTeX(src string) string {
	p := texParser{src: src}
	return strings.TrimSpace(p.parse(false))
}

type texParser struct {
	src string
	pos int
}

func (p *texParser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

// parse consumes until end of input or, inside a group, the closing brace.
func (p *texParser) parse(inGroup bool) string {
	var b strings.Builder
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch c {
		case '}':
			p.pos++
			if inGroup {
				return b.String()
			}
		case '{':
			p.pos++
			b.WriteString(p.parse(true))
		case '\\':
			p.pos++
			b.WriteString(p.command())
		case '^', '_':
			p.pos++
			b.WriteString(script(p.atom(), c == '^'))
		case '&':
			p.pos++
			b.WriteByte(' ')
		default:
			r, n := utf8.DecodeRuneInString(p.src[p.pos:])
			p.pos += n
			b.WriteRune(r)
		}
	}
	return b.String()
}

// atom reads one group, command or character.
func (p *texParser) atom() string {
	switch c := p.peek(); c {
	case 0:
		return ""
	case '{':
		p.pos++
		return p.parse(true)
	case '\\':
		p.pos++
		return p.command()
	default:
		r, n := utf8.DecodeRuneInString(p.src[p.pos:])
		p.pos += n
		return string(r)
	}
}

func (p *texParser) command() string {
	start := p.pos
	for p.pos < len(p.src) && isLetter(p.src[p.pos]) {
		p.pos++
	}
	if p.pos == start && p.pos < len(p.src) {
		p.pos++
	}
	name := p.src[start:p.pos]

	switch name {
	case "frac":
		num, den := p.atom(), p.atom()
		return wrap(num) + "/" + wrap(den)
	case "text", "mathrm", "textbf", "mathbf", "operatorname":
		return p.atom()
	case "begin":
		env := p.atom()
		if env == "pmatrix" {
			return "("
		}
		return ""
	case "end":
		env := p.atom()
		if env == "pmatrix" {
			return ")"
		}
		return ""
	case "\\":
		// optional spacing argument, e.g. \\[3pt]
		if p.peek() == '[' {
			if end := strings.IndexByte(p.src[p.pos:], ']'); end >= 0 {
				p.pos += end + 1
			}
		}
		return texSymbols[name]
	case "left", "right":
		return ""
	}
	if s, ok := texSymbols[name]; ok {
		if isLetter(name[0]) && name != "quad" && p.peek() == ' ' {
			p.pos++
			return s + " "
		}
		return s
	}
	return name
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func wrap(s string) string {
	if utf8.RuneCountInString(s) <= 1 {
		return s
	}
	return "(" + s + ")"
}

func script(s string, sup bool) string {
	table := subscripts
	prefix := "_"
	if sup {
		table, prefix = superscripts, "^"
	}
	var b strings.Builder
	for _, r := range s {
		m, ok := table[r]
		if !ok {
			return prefix + wrap(s)
		}
		b.WriteRune(m)
	}
	return b.String()
}
