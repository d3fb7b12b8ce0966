// Package printer reconstructs source text from a parsed tree. It is the
// inverse of lexengine: where lexengine consumes text and discards nothing
// (every whitespace width is captured somewhere — App.Spacing, Group's
// offsets, Line.TrailingOffset, Block.LeadingEmptyLines), Print reinstates
// exactly that whitespace, so a successfully parsed input round-trips
// byte-for-byte. This mirrors LAB_3_Drone/ast/ast.go's tree being walked by
// a single exhaustive type switch rather than a virtual Print method on
// every node, since printer — like that package's evaluator — is the one
// place allowed to know every concrete type in the sum.
package printer

import (
	"fmt"
	"strings"

	"dfalang/ast"
)

// Print renders mod back to source text.
func Print(mod *ast.Module) string {
	var b strings.Builder
	for _, w := range mod.LeadingEmptyLines {
		printTrailing(&b, w)
	}
	printRequiredLine(&b, mod.FirstLine)
	for _, line := range mod.OtherLines {
		printLine(&b, line)
	}
	out := b.String()
	// Every line writer ends its line with printTrailing's newline,
	// including the very last one — there is no other place in this walk
	// where "this was the last line and it had no newline" can be
	// expressed. Module.TrailingNewline (ast.go) is what distinguishes
	// that case, recorded straight from the source text rather than
	// inferred from which scanner rule happened to observe EOF.
	if !mod.TrailingNewline {
		out = strings.TrimSuffix(out, "\n")
	}
	return out
}

func printRequiredLine(b *strings.Builder, line *ast.RequiredLine) {
	if line.Body != nil {
		printNode(b, line.Body)
	}
	if !endsInBlock(line.Body) {
		printTrailing(b, line.TrailingOffset)
	}
}

func printLine(b *strings.Builder, line ast.Line) {
	if line.Body != nil {
		printNode(b, line.Body)
	}
	if !endsInBlock(line.Body) {
		printTrailing(b, line.TrailingOffset)
	}
}

// endsInBlock reports whether n's rightmost leaf is a Block: a line whose
// content is (or ends in an application of) a nested block already got its
// closing newline from that block's own last inner line, so the enclosing
// line must not add a second one.
func endsInBlock(n ast.Node) bool {
	switch v := n.(type) {
	case *ast.Block, *ast.InvalidIndentationBlock:
		return true
	case *ast.App:
		return endsInBlock(v.Arg)
	default:
		return false
	}
}

// isBlockNode reports whether n is a block-shaped node (not one that
// merely ends in one via a chain of App — that distinction is
// endsInBlock's job instead).
func isBlockNode(n ast.Node) bool {
	switch n.(type) {
	case *ast.Block, *ast.InvalidIndentationBlock:
		return true
	default:
		return false
	}
}

// printTrailing writes the whitespace at the end of a line followed by the
// newline that ended it. It always emits the newline, including for a
// Module's final line; TrailingOffset alone cannot tell whether that line
// ended at a newline or at EOF, so Print drops the final newline itself
// when Module.TrailingNewline is false.
func printTrailing(b *strings.Builder, offset int) {
	b.WriteString(spaces(offset))
	b.WriteByte('\n')
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}

func printNode(b *strings.Builder, n ast.Node) {
	switch v := n.(type) {
	case *ast.Var:
		b.WriteString(v.Name)
	case *ast.Cons:
		b.WriteString(v.Name)
	case *ast.Wildcard:
		b.WriteByte('_')
	case *ast.Operator:
		b.WriteString(v.Name)
	case *ast.Modifier:
		b.WriteString(v.Name)
		b.WriteByte('=')
	case *ast.InvalidIdentifier:
		printNode(b, v.Body)
		b.WriteString(v.Tail)
	case *ast.App:
		printNode(b, v.Fn)
		if isBlockNode(v.Arg) {
			// An indentation-continuation App: the newline and the
			// block's own indent are the separator, not a same-line
			// run of spaces — Spacing is always 0 here by construction
			// (see lexengine's onBlockBegin/submitBlock).
			b.WriteByte('\n')
		} else {
			b.WriteString(spaces(v.Spacing))
		}
		printNode(b, v.Arg)
	case *ast.Number:
		if v.Base != nil {
			b.WriteString(*v.Base)
			b.WriteByte('_')
		}
		b.WriteString(v.Digits)
	case *ast.DanglingBase:
		b.WriteString(v.Digits)
		b.WriteByte('_')
	case *ast.Text:
		printText(b, v)
	case *ast.Group:
		b.WriteByte('(')
		b.WriteString(spaces(v.LeftOffset))
		if v.Inner != nil {
			printNode(b, v.Inner)
		}
		b.WriteString(spaces(v.RightOffset))
		b.WriteByte(')')
	case *ast.UnclosedGroup:
		b.WriteByte('(')
		if v.LeftOffset != nil {
			b.WriteString(spaces(*v.LeftOffset))
		}
		if v.Inner != nil {
			printNode(b, v.Inner)
		}
	case *ast.UnmatchedClose:
		b.WriteByte(')')
	case *ast.Block:
		printBlock(b, v)
	case *ast.InvalidIndentationBlock:
		printBlock(b, v.Block)
	case *ast.Unrecognized:
		b.WriteRune(v.Char)
	default:
		panic(fmt.Sprintf("printer: unhandled node type %T", n))
	}
}

func printText(b *strings.Builder, t *ast.Text) {
	quote := "'"
	if t.Quote == ast.TripleQuote {
		quote = "'''"
	}
	b.WriteString(quote)
	for _, seg := range t.Segments {
		switch s := seg.(type) {
		case *ast.PlainSegment:
			b.WriteString(s.Text)
		case *ast.UnicodeEscapeSegment:
			b.WriteString(`\u`)
			b.WriteString(s.Hex)
		default:
			panic(fmt.Sprintf("printer: unhandled text segment type %T", seg))
		}
	}
	b.WriteString(quote)
}

// printBlock reinstates a block's leading empty lines, its first line, and
// its remaining lines, each prefixed by the block's shared indent — the
// one width off-side-rule blocks record once for every line they contain,
// rather than per line. A Block only ever appears embedded as some line's
// Body (via App or directly), so the indent prefix belongs here and not in
// printLine/printRequiredLine, which both also run at the unindented
// module level.
func printBlock(b *strings.Builder, block *ast.Block) {
	indent := spaces(block.Indent)
	for _, w := range block.LeadingEmptyLines {
		b.WriteString(indent)
		printTrailing(b, w)
	}
	if block.FirstLine != nil {
		b.WriteString(indent)
		printRequiredLine(b, block.FirstLine)
	}
	for _, line := range block.Lines {
		b.WriteString(indent)
		printLine(b, line)
	}
}
