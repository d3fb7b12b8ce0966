package lexengine

import (
	"bytes"
	"strings"
	"testing"

	"dfalang/ast"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, input string) *ast.Module {
	t.Helper()
	p := New()
	mod, err := p.Run(input)
	require.NoError(t, err)
	require.NotNil(t, mod)
	return mod
}

func strPtr(s string) *string { return &s }

func TestApplicationIsLeftAssociativeJuxtaposition(t *testing.T) {
	mod := parse(t, "foo bar")
	app, ok := mod.FirstLine.Body.(*ast.App)
	require.True(t, ok)
	assert.Equal(t, &ast.Var{Name: "foo"}, app.Fn)
	assert.Equal(t, 1, app.Spacing)
	assert.Equal(t, &ast.Var{Name: "bar"}, app.Arg)
	assert.Equal(t, 0, mod.FirstLine.TrailingOffset)
	assert.False(t, mod.TrailingNewline)
}

func TestNumberWithBase(t *testing.T) {
	mod := parse(t, "16_ff")
	n, ok := mod.FirstLine.Body.(*ast.Number)
	require.True(t, ok)
	assert.Equal(t, strPtr("16"), n.Base)
	assert.Equal(t, "ff", n.Digits)
}

func TestNumberDanglingBase(t *testing.T) {
	mod := parse(t, "16_")
	n, ok := mod.FirstLine.Body.(*ast.DanglingBase)
	require.True(t, ok)
	assert.Equal(t, "16", n.Digits)
}

func TestNumberPlain(t *testing.T) {
	mod := parse(t, "42")
	n, ok := mod.FirstLine.Body.(*ast.Number)
	require.True(t, ok)
	assert.Nil(t, n.Base)
	assert.Equal(t, "42", n.Digits)
}

func TestParenthesizedGroup(t *testing.T) {
	mod := parse(t, "(a b)")
	g, ok := mod.FirstLine.Body.(*ast.Group)
	require.True(t, ok)
	assert.Equal(t, 0, g.LeftOffset)
	assert.Equal(t, 0, g.RightOffset)
	app, ok := g.Inner.(*ast.App)
	require.True(t, ok)
	assert.Equal(t, &ast.Var{Name: "a"}, app.Fn)
	assert.Equal(t, 1, app.Spacing)
	assert.Equal(t, &ast.Var{Name: "b"}, app.Arg)
}

func TestGroupOffsetsAroundParens(t *testing.T) {
	mod := parse(t, "(  a  )")
	g, ok := mod.FirstLine.Body.(*ast.Group)
	require.True(t, ok)
	assert.Equal(t, 2, g.LeftOffset)
	assert.Equal(t, 2, g.RightOffset)
	assert.Equal(t, &ast.Var{Name: "a"}, g.Inner)
}

func TestUnclosedGroupAtEOF(t *testing.T) {
	mod := parse(t, "(a")
	u, ok := mod.FirstLine.Body.(*ast.UnclosedGroup)
	require.True(t, ok)
	require.NotNil(t, u.LeftOffset)
	assert.Equal(t, 0, *u.LeftOffset)
	assert.Equal(t, &ast.Var{Name: "a"}, u.Inner)
}

func TestUnmatchedCloseInNormal(t *testing.T) {
	mod := parse(t, ")")
	_, ok := mod.FirstLine.Body.(*ast.UnmatchedClose)
	assert.True(t, ok)
}

// TestIndentedContinuationFoldsIntoApp is the central off-side-rule case:
// a line followed by a deeper-indented block is one App, not two sibling
// lines.
func TestIndentedContinuationFoldsIntoApp(t *testing.T) {
	mod := parse(t, "a\n  b\n  c\n")
	app, ok := mod.FirstLine.Body.(*ast.App)
	require.True(t, ok)
	assert.Equal(t, &ast.Var{Name: "a"}, app.Fn)

	block, ok := app.Arg.(*ast.Block)
	require.True(t, ok)
	assert.Equal(t, 2, block.Indent)
	require.NotNil(t, block.FirstLine)
	assert.Equal(t, &ast.Var{Name: "b"}, block.FirstLine.Body)
	require.Len(t, block.Lines, 1)
	assert.Equal(t, &ast.Var{Name: "c"}, block.Lines[0].Body)
	assert.True(t, mod.TrailingNewline)
	assert.Empty(t, mod.OtherLines)
}

func TestSiblingLinesAtSameIndentStayUnjoined(t *testing.T) {
	mod := parse(t, "a\nb\n")
	assert.Equal(t, &ast.Var{Name: "a"}, mod.FirstLine.Body)
	require.Len(t, mod.OtherLines, 1)
	assert.Equal(t, &ast.Var{Name: "b"}, mod.OtherLines[0].Body)
}

func TestDedentAfterNestedBlockResumesSiblingLines(t *testing.T) {
	mod := parse(t, "a\n  b\nc\n")
	app, ok := mod.FirstLine.Body.(*ast.App)
	require.True(t, ok)
	block, ok := app.Arg.(*ast.Block)
	require.True(t, ok)
	assert.Equal(t, &ast.Var{Name: "b"}, block.FirstLine.Body)
	assert.Empty(t, block.Lines)

	require.Len(t, mod.OtherLines, 1)
	assert.Equal(t, &ast.Var{Name: "c"}, mod.OtherLines[0].Body)
}

func TestMultiLevelDedentClosesEachBlockInTurn(t *testing.T) {
	mod := parse(t, "a\n  b\n    c\nd\n")
	outer, ok := mod.FirstLine.Body.(*ast.App)
	require.True(t, ok)
	outerBlock, ok := outer.Arg.(*ast.Block)
	require.True(t, ok)
	assert.Equal(t, 2, outerBlock.Indent)

	inner, ok := outerBlock.FirstLine.Body.(*ast.App)
	require.True(t, ok)
	assert.Equal(t, &ast.Var{Name: "b"}, inner.Fn)
	innerBlock, ok := inner.Arg.(*ast.Block)
	require.True(t, ok)
	assert.Equal(t, 4, innerBlock.Indent)
	assert.Equal(t, &ast.Var{Name: "c"}, innerBlock.FirstLine.Body)

	require.Len(t, mod.OtherLines, 1)
	assert.Equal(t, &ast.Var{Name: "d"}, mod.OtherLines[0].Body)
}

// TestBlankLineInterruptsContinuation: a blank line between two
// same-indent tokens ends any pending continuation and is itself
// recorded, without conjuring a spurious extra line for the real content
// that follows.
func TestBlankLineInterruptsContinuation(t *testing.T) {
	mod := parse(t, "a\n\nb\n")
	assert.Equal(t, &ast.Var{Name: "a"}, mod.FirstLine.Body)
	require.Len(t, mod.OtherLines, 2)
	assert.Nil(t, mod.OtherLines[0].Body)
	assert.Equal(t, &ast.Var{Name: "b"}, mod.OtherLines[1].Body)
}

func TestLeadingBlankLineAtModuleStart(t *testing.T) {
	mod := parse(t, "\na\n")
	require.Len(t, mod.LeadingEmptyLines, 1)
	assert.Equal(t, &ast.Var{Name: "a"}, mod.FirstLine.Body)
	assert.Empty(t, mod.OtherLines)
}

func TestMultipleLeadingBlankLines(t *testing.T) {
	mod := parse(t, "\n\na\n")
	require.Len(t, mod.LeadingEmptyLines, 2)
	assert.Equal(t, &ast.Var{Name: "a"}, mod.FirstLine.Body)
	assert.Empty(t, mod.OtherLines)
}

func TestTextLiteralWithPlainSegment(t *testing.T) {
	mod := parse(t, "'hello'")
	text, ok := mod.FirstLine.Body.(*ast.Text)
	require.True(t, ok)
	assert.Equal(t, ast.SingleQuote, text.Quote)
	require.Len(t, text.Segments, 1)
	assert.Equal(t, &ast.PlainSegment{Text: "hello"}, text.Segments[0])
}

// TestTripleQuotedTextToleratesEmbeddedSingleQuote exercises TEXT's own
// closeOrPlainQuote tie-break: a lone "'" inside a triple-quoted literal
// is plain text, not a closer.
func TestTripleQuotedTextToleratesEmbeddedSingleQuote(t *testing.T) {
	mod := parse(t, "'''x'y'''")
	text, ok := mod.FirstLine.Body.(*ast.Text)
	require.True(t, ok)
	assert.Equal(t, ast.TripleQuote, text.Quote)
	require.Len(t, text.Segments, 3)
	assert.Equal(t, &ast.PlainSegment{Text: "x"}, text.Segments[0])
	assert.Equal(t, &ast.PlainSegment{Text: "'"}, text.Segments[1])
	assert.Equal(t, &ast.PlainSegment{Text: "y"}, text.Segments[2])
}

func TestTextUnicodeEscape(t *testing.T) {
	mod := parse(t, "'a\\u1f2ab'")
	text, ok := mod.FirstLine.Body.(*ast.Text)
	require.True(t, ok)
	require.Len(t, text.Segments, 3)
	assert.Equal(t, &ast.PlainSegment{Text: "a"}, text.Segments[0])
	assert.Equal(t, &ast.UnicodeEscapeSegment{Hex: "1f2a"}, text.Segments[1])
	assert.Equal(t, &ast.PlainSegment{Text: "b"}, text.Segments[2])
}

func TestUnterminatedTextAtEOF(t *testing.T) {
	mod := parse(t, "'abc")
	text, ok := mod.FirstLine.Body.(*ast.Text)
	require.True(t, ok)
	require.Len(t, text.Segments, 1)
	assert.Equal(t, &ast.PlainSegment{Text: "abc"}, text.Segments[0])
}

func TestModifierFoldsTrailingEquals(t *testing.T) {
	mod := parse(t, "+=")
	m, ok := mod.FirstLine.Body.(*ast.Modifier)
	require.True(t, ok)
	assert.Equal(t, "+", m.Name)
}

func TestNoModOperatorsSkipModifierCheck(t *testing.T) {
	mod := parse(t, "==")
	op, ok := mod.FirstLine.Body.(*ast.Operator)
	require.True(t, ok)
	assert.Equal(t, "==", op.Name)
}

func TestInvalidIdentifierSuffix(t *testing.T) {
	mod := parse(t, "foo$")
	inv, ok := mod.FirstLine.Body.(*ast.InvalidIdentifier)
	require.True(t, ok)
	assert.Equal(t, &ast.Var{Name: "foo"}, inv.Body)
	assert.Equal(t, "$", inv.Tail)
}

// TestBacktickBreaksIdentifier: a backtick ends an identifier cleanly
// (submitted on its own) rather than being swallowed into its
// InvalidIdentifier tail, since it is one of identBreaker's members.
func TestBacktickBreaksIdentifier(t *testing.T) {
	mod := parse(t, "foo`")
	app, ok := mod.FirstLine.Body.(*ast.App)
	require.True(t, ok)
	assert.Equal(t, &ast.Var{Name: "foo"}, app.Fn)
	u, ok := app.Arg.(*ast.Unrecognized)
	require.True(t, ok)
	assert.Equal(t, '`', u.Char)
}

// TestModifierDoesNotDoubleFireOnRepeatedEquals: after "+", the "==" run is
// matched whole by the invalidSuffix rule OPERATOR_MOD_CHECK inherits from
// OPERATOR_SFX_CHECK, which is longer than the single-"=" modifier rule, so
// the modifier rule never fires and the operator keeps "==" as its tail.
func TestModifierDoesNotDoubleFireOnRepeatedEquals(t *testing.T) {
	mod := parse(t, "+==")
	inv, ok := mod.FirstLine.Body.(*ast.InvalidIdentifier)
	require.True(t, ok)
	op, ok := inv.Body.(*ast.Operator)
	require.True(t, ok)
	assert.Equal(t, "+", op.Name)
	assert.Equal(t, "==", inv.Tail)
}

func TestUnrecognizedCharacter(t *testing.T) {
	mod := parse(t, "@")
	u, ok := mod.FirstLine.Body.(*ast.Unrecognized)
	require.True(t, ok)
	assert.Equal(t, '@', u.Char)
}

func TestEmptyInput(t *testing.T) {
	mod := parse(t, "")
	assert.Nil(t, mod.FirstLine.Body)
	assert.Equal(t, 0, mod.FirstLine.TrailingOffset)
	assert.Empty(t, mod.OtherLines)
	assert.False(t, mod.TrailingNewline)
}

// TestWhitespaceOnlyInputKeepsTrailingWidth guards against losing the
// whitespace width when the entire module has no tokens at all: there is
// no newline to route it through submitLine, so onEOF must hand it to
// submitModule directly.
func TestWhitespaceOnlyInputKeepsTrailingWidth(t *testing.T) {
	mod := parse(t, "   ")
	assert.Nil(t, mod.FirstLine.Body)
	assert.Equal(t, 3, mod.FirstLine.TrailingOffset)
	assert.Empty(t, mod.OtherLines)
	assert.False(t, mod.TrailingNewline)
}

func TestWhitespaceThenNewlineInput(t *testing.T) {
	mod := parse(t, "  \n")
	assert.Nil(t, mod.FirstLine.Body)
	assert.Equal(t, 2, mod.FirstLine.TrailingOffset)
	assert.Empty(t, mod.OtherLines)
	assert.True(t, mod.TrailingNewline)
}

func TestTrailingNewlineAbsentIsRecorded(t *testing.T) {
	mod := parse(t, "a")
	assert.False(t, mod.TrailingNewline)
}

func TestTrailingNewlinePresentIsRecorded(t *testing.T) {
	mod := parse(t, "a\n")
	assert.True(t, mod.TrailingNewline)
}

// TestGroupStackInvariantHoldsAtEOF checks that a successful parse leaves
// no open groups beyond NORMAL — nothing in this package should ever
// raise InternalError on well-formed input.
func TestGroupStackInvariantHoldsAtEOF(t *testing.T) {
	p := New()
	_, err := p.Run("foo (bar 'baz\\u00e9') qux\n  nested\n")
	require.NoError(t, err)
}

func TestGetResultReturnsLastSuccessfulParse(t *testing.T) {
	p := New()
	mod, err := p.Run("x")
	require.NoError(t, err)
	assert.Same(t, mod, p.GetResult())
}

// TestExportGroupDOTWritesGraphviz checks the debug path a caller reaches
// for when two rules in a group seem to be colliding: the output is a
// digraph naming the group's own start state, not an error.
func TestExportGroupDOTWritesGraphviz(t *testing.T) {
	p := New()
	var buf bytes.Buffer
	err := p.ExportGroupDOT(&buf, "NORMAL")
	require.NoError(t, err)
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "digraph G {"))
	assert.Contains(t, out, "_start")
}

func TestExportGroupDOTRejectsUnknownGroup(t *testing.T) {
	p := New()
	var buf bytes.Buffer
	err := p.ExportGroupDOT(&buf, "NOPE")
	assert.Error(t, err)
}
