// Package patterndsl compiles a compact textual pattern syntax (character
// classes, alternation, concatenation, the `*`/`+`/`?` postfix operators)
// into pattern.Pattern values.
//
// LAB_2/regexlib earned its keep by hand-parsing this exact kind of syntax
// with a recursive-descent Pratt parser (regexlib/parser.go) so regex
// strings could be compiled without the caller ever touching an AST node.
// The teacher's other real dependency, github.com/alecthomas/participle/v2,
// is a struct-tag-driven grammar compiler: internal/interpreter/parser.go
// used it to turn Go struct tags into a recursive-descent parser for the
// robot-script grammar. This package plays the same part for pattern
// literals that participle played there — lexengine's default groups are
// declared with these compact strings instead of nested pattern.Or/Seq/
// Many calls, while the underlying pattern.Pattern constructors (required
// by spec §4.A/§6 as the canonical, reflection-free API) remain available
// and are what this package ultimately produces.
package patterndsl

import (
	"fmt"

	"dfalang/pattern"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var dslLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Escape", Pattern: `\\.`},
	{Name: "Punct", Pattern: `[][()|*+?^-]`},
	{Name: "Char", Pattern: `[^][()|*+?^\-\\]`},
})

type exprNode struct {
	Concats []*concatNode `parser:"@@ ('|' @@)*"`
}

type concatNode struct {
	Atoms []*postfixNode `parser:"@@+"`
}

type postfixNode struct {
	Atom *atomNode `parser:"@@"`
	Op   string    `parser:"@('*' | '+' | '?')?"`
}

type atomNode struct {
	Class *classNode `parser:"(  @@"`
	Group *exprNode  `parser:" | '(' @@ ')'"`
	Lit   *string    `parser:" | @(Char|Escape) )"`
}

type classNode struct {
	Negate bool             `parser:"'[' @'^'?"`
	Items  []*classItemNode `parser:"@@+ ']'"`
}

type classItemNode struct {
	Lo string  `parser:"@(Char|Escape)"`
	Hi *string `parser:"('-' @(Char|Escape))?"`
}

var dslParser = participle.MustBuild[exprNode](
	participle.Lexer(dslLexer),
)

// Compile parses expr and returns the equivalent pattern.Pattern.
func Compile(expr string) (pattern.Pattern, error) {
	ast, err := dslParser.ParseString("", expr)
	if err != nil {
		return pattern.None(), fmt.Errorf("patterndsl: parse %q: %w", expr, err)
	}
	return ast.toPattern(), nil
}

// MustCompile is Compile, panicking on error — for the package-level
// pattern literals lexengine declares at init time, where a malformed
// literal is a programmer error, not a runtime condition.
func MustCompile(expr string) pattern.Pattern {
	p, err := Compile(expr)
	if err != nil {
		panic(err)
	}
	return p
}

func unescape(tok string) rune {
	r := []rune(tok)
	if len(r) == 2 && r[0] == '\\' {
		switch r[1] {
		case 'n':
			return '\n'
		case 't':
			return '\t'
		case 'r':
			return '\r'
		default:
			return r[1]
		}
	}
	return r[0]
}

func (n *exprNode) toPattern() pattern.Pattern {
	out := n.Concats[0].toPattern()
	for _, c := range n.Concats[1:] {
		out = pattern.Or(out, c.toPattern())
	}
	return out
}

func (n *concatNode) toPattern() pattern.Pattern {
	out := n.Atoms[0].toPattern()
	for _, a := range n.Atoms[1:] {
		out = pattern.Seq(out, a.toPattern())
	}
	return out
}

func (n *postfixNode) toPattern() pattern.Pattern {
	p := n.Atom.toPattern()
	switch n.Op {
	case "*":
		return pattern.Many(p)
	case "+":
		return pattern.Many1(p)
	case "?":
		return pattern.Opt(p)
	default:
		return p
	}
}

func (n *atomNode) toPattern() pattern.Pattern {
	switch {
	case n.Class != nil:
		return n.Class.toPattern()
	case n.Group != nil:
		return n.Group.toPattern()
	default:
		return pattern.Char(unescape(*n.Lit))
	}
}

func (n *classNode) toPattern() pattern.Pattern {
	if !n.Negate {
		items := make([]pattern.Pattern, len(n.Items))
		for i, it := range n.Items {
			items[i] = it.toPattern()
		}
		return pattern.OrAll(items...)
	}
	// Negated classes are complemented via pattern.NoneOf, which only
	// knows how to exclude individual code points — a range inside a
	// negated class would need general interval complementation this
	// package does not implement, since lexengine never needs one.
	chars := make([]rune, 0, len(n.Items))
	for _, it := range n.Items {
		if it.Hi != nil {
			panic("patterndsl: negated classes support single characters only, not ranges")
		}
		chars = append(chars, unescape(it.Lo))
	}
	return pattern.NoneOf(string(chars))
}

func (it *classItemNode) toPattern() pattern.Pattern {
	lo := unescape(it.Lo)
	if it.Hi != nil {
		return pattern.Range(lo, unescape(*it.Hi))
	}
	return pattern.Char(lo)
}
