// Package ast defines the tree the scanner's actions build. It is a pure
// data definition — no construction logic lives here, only the closed set
// of node types lexengine's actions are allowed to produce.
//
// LAB_3_Drone/ast/ast.go closes its Statement/Expression sum types with
// unexported marker methods (statementNode(), expressionNode()) rather than
// a type-tag field or reflection; this package follows the same idiom for
// Node and the narrower Identifier/TextSegment sum types, since
// spec §9's "Sum types... implement as tagged variants with exhaustive
// dispatch" describes exactly that pattern.
package ast

// Node is the root of every tree this module produces. It deliberately
// carries no methods beyond the marker — callers operate on concrete types
// via a type switch (see printer.Print), not virtual dispatch, because the
// actions that build a Node already know exactly which one they built.
type Node interface {
	isNode()
}

// Identifier is the narrower sum type stored in ParserState.identBody while
// a suffix check is pending: Var, Cons, Wildcard, Operator, or Modifier.
// InvalidIdentifier, which a failed suffix check builds directly, also
// implements it.
type Identifier interface {
	Node
	isIdentifier()
}

// Var is a lowercase-led identifier, e.g. "foo" or "x'".
type Var struct {
	Name string
}

func (*Var) isNode()       {}
func (*Var) isIdentifier() {}

// Cons is an uppercase-led identifier, e.g. "Foo".
type Cons struct {
	Name string
}

func (*Cons) isNode()       {}
func (*Cons) isIdentifier() {}

// Wildcard is the bare "_" token.
type Wildcard struct{}

func (*Wildcard) isNode()       {}
func (*Wildcard) isIdentifier() {}

// Operator is a run of operator characters, e.g. "+" or "<=>".
type Operator struct {
	Name string
}

func (*Operator) isNode()       {}
func (*Operator) isIdentifier() {}

// Modifier is an operator immediately followed by "=", e.g. "+=".
type Modifier struct {
	Name string
}

func (*Modifier) isNode()       {}
func (*Modifier) isIdentifier() {}

// InvalidIdentifier is an identifier or operator immediately followed by
// non-breaker characters: Body is the token that was being built when the
// suffix check fired, Tail is the offending run of characters.
type InvalidIdentifier struct {
	Body Identifier
	Tail string
}

func (*InvalidIdentifier) isNode()       {}
func (*InvalidIdentifier) isIdentifier() {}

// App is left-associative juxtaposition-as-application: Fn applied to Arg,
// separated by Spacing code points of whitespace in the source text.
type App struct {
	Fn      Node
	Spacing int
	Arg     Node
}

func (*App) isNode() {}

// Number is digit+ optionally preceded by a base: "16_ff" has Base "16" and
// Digits "ff"; "42" alone has Base nil and Digits "42".
type Number struct {
	Base   *string
	Digits string
}

func (*Number) isNode() {}

// DanglingBase is what "16_" with no digits after the underscore produces.
type DanglingBase struct {
	Digits string
}

func (*DanglingBase) isNode() {}

// QuoteSize distinguishes single- from triple-quoted text literals.
type QuoteSize int

const (
	SingleQuote QuoteSize = 1
	TripleQuote QuoteSize = 3
)

// TextSegment is one piece of a Text literal's body.
type TextSegment interface {
	isTextSegment()
}

// PlainSegment is a literal run of characters inside a Text literal.
type PlainSegment struct {
	Text string
}

func (*PlainSegment) isTextSegment() {}

// UnicodeEscapeSegment is a `\u` escape; Hex is the zero to four characters
// matched after it (any characters other than a quote, backtick, newline or
// backslash, not only hex digits), already stripped of the leading `\u`.
type UnicodeEscapeSegment struct {
	Hex string
}

func (*UnicodeEscapeSegment) isTextSegment() {}

// Text is a quoted literal built from zero or more segments, in source
// order.
type Text struct {
	Quote    QuoteSize
	Segments []TextSegment
}

func (*Text) isNode() {}

// Group is a parenthesized expression. LeftOffset and RightOffset are the
// whitespace widths immediately inside "(" and immediately before ")";
// Inner is nil for "()".
type Group struct {
	LeftOffset  int
	Inner       Node
	RightOffset int
}

func (*Group) isNode() {}

// UnclosedGroup is what an open "(" still open at EOF produces. LeftOffset
// is nil when the left offset was folded into the surrounding context
// instead of being recorded on this node (see lexengine's eof action for
// PARENSED).
type UnclosedGroup struct {
	LeftOffset *int
	Inner      Node
}

func (*UnclosedGroup) isNode() {}

// UnmatchedClose is a ")" with no corresponding open group.
type UnmatchedClose struct{}

func (*UnmatchedClose) isNode() {}

// Line is one line of a block that may be empty (Body nil) or carry a
// result (Body non-nil), plus the whitespace trailing it before the
// newline or EOF that ended it.
type Line struct {
	Body           Node
	TrailingOffset int
}

// RequiredLine is the distinguished first-line slot of a block or module:
// the slot itself is always present, even when no line ever carried real
// content (an empty module still has a RequiredLine with a nil Body).
type RequiredLine struct {
	Body           Node
	TrailingOffset int
}

// Block is a maximal run of lines sharing one indentation level.
// LeadingEmptyLines records the width of each blank line immediately
// before FirstLine.
type Block struct {
	Indent            int
	LeadingEmptyLines []int
	FirstLine         *RequiredLine
	Lines             []Line
}

func (*Block) isNode() {}

// InvalidIndentationBlock wraps a Block whose indentation did not match any
// enclosing open block.
type InvalidIndentationBlock struct {
	Block *Block
}

func (*InvalidIndentationBlock) isNode() {}

// Module is the root of a successful parse, the same shape as Block but
// for the unindented top level: LeadingEmptyLines records blank lines
// before the first real content, exactly as Block.LeadingEmptyLines does,
// so a module starting with blank lines still orders them ahead of
// FirstLine instead of folding them into OtherLines out of sequence.
// TrailingNewline records whether the source text's last byte was itself
// a newline — the scanner's EOF sentinel otherwise makes "the last line
// ended at a newline, with nothing after it" and "the last line ended at
// EOF with no newline at all" indistinguishable from TrailingOffset
// alone, and the printer needs to tell them apart to round-trip
// byte-for-byte.
type Module struct {
	LeadingEmptyLines []int
	FirstLine         *RequiredLine
	OtherLines        []Line
	TrailingNewline   bool
}

func (*Module) isNode() {}

// Unrecognized is a single code point the active group's DFA could not
// match under any rule.
type Unrecognized struct {
	Char rune
}

func (*Unrecognized) isNode() {}
