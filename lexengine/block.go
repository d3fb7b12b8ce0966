package lexengine

import "dfalang/ast"

// onBlockBegin opens a new block at indent, saving the enclosing
// context's result and block exactly as spec §3/§9 require: "astStack...
// saved result values when entering a nested context (group or block)."
// A block is a nested context in precisely the same sense a parenthesized
// group is.
func (st *ParserState) onBlockBegin(indent int) {
	st.pushAST()
	st.pushLastOffset()
	st.blockStack = append(st.blockStack, st.currentBlock)
	st.currentBlock = &blockState{isValid: true, indent: indent}
}

// onBlockEnd closes blocks down to newIndent, per spec §4.G. If newIndent
// falls between two existing indent levels, a fresh block is opened and
// marked invalid — there is no enclosing block at exactly that indent.
//
// Each level being closed may still hold an unsubmitted result — a line
// whose indentation increase was read as "this nested block continues the
// line above" (onBlockBegin preserves the enclosing line's pending result
// across the nested block exactly as pushAST preserves it across a
// parenthesized group) rather than as "this line is done." That result
// only becomes submittable once we know no further continuation follows,
// which is exactly when a shallower indent — or EOF — is reached. So each
// iteration finalizes the level it is about to leave before leaving it,
// and one more finalization happens for the level the loop stops at.
//
// trailing is the width carried over from the newline (or EOF) that
// triggered this dedent, per §4.E's single lastOffset accumulator — it
// belongs to whichever line is about to be finalized first. A dedent that
// closes more than one level at once collapses every level after the
// first at the very same lexical point, with nothing textual between
// them, so only the first submitLine call spends it; the rest get 0.
func (st *ParserState) onBlockEnd(newIndent int, trailing int) {
	for newIndent < st.currentBlock.indent {
		if st.result != nil {
			st.submitLine(trailing)
			trailing = 0
		}
		st.submitBlock()
	}
	if st.result != nil {
		st.submitLine(trailing)
	}
	if newIndent > st.currentBlock.indent {
		st.onBlockBegin(newIndent)
		st.currentBlock.isValid = false
	}
}

// submitLine files the line just ended into the current block, per
// spec §4.G: an empty result becomes a blank Line entry (or, before the
// block's first real content, a leading empty line); a nonempty result
// becomes firstLine if this is the block's first content, else another
// Line entry.
func (st *ParserState) submitLine(trailingOffset int) {
	b := st.currentBlock
	if st.result == nil {
		if b.firstLine == nil {
			b.emptyLines = append(b.emptyLines, trailingOffset)
		} else {
			b.lines = append(b.lines, ast.Line{TrailingOffset: trailingOffset})
		}
		return
	}
	body := st.result
	st.result = nil
	if b.firstLine == nil {
		b.firstLine = &ast.RequiredLine{Body: body, TrailingOffset: trailingOffset}
	} else {
		b.lines = append(b.lines, ast.Line{Body: body, TrailingOffset: trailingOffset})
	}
}

// submitBlock closes the current (nested) block, restores the enclosing
// context, and folds the finished block into it via app — the mechanism
// that produces scenario 5's App(Var("a"), spacing, Block(...)).
func (st *ParserState) submitBlock() {
	b := st.currentBlock
	var node ast.Node = &ast.Block{
		Indent:            b.indent,
		LeadingEmptyLines: b.emptyLines,
		FirstLine:         b.firstLine,
		Lines:             b.lines,
	}
	if !b.isValid {
		node = &ast.InvalidIndentationBlock{Block: node.(*ast.Block)}
	}

	st.popAST()
	st.popLastOffset()
	n := len(st.blockStack) - 1
	st.currentBlock = st.blockStack[n]
	st.blockStack = st.blockStack[:n]

	st.app(node)
}

// submitModule finalizes the module-level block (never itself wrapped in
// InvalidIndentationBlock, since onBlockEnd(0) never submits it) into the
// parse result, the same way submitBlock finalizes a nested one. trailing
// is onEOF's width for the line EOF just ended; it is only actually used
// below when the module turns out to have no line data at all — onBlockEnd
// already spent it via submitLine for every other shape of input, at
// which point b.firstLine is non-nil and this parameter is moot.
func (st *ParserState) submitModule(trailing int) {
	b := st.currentBlock

	first := b.firstLine
	if first == nil {
		first = &ast.RequiredLine{TrailingOffset: trailing}
	}

	st.module = &ast.Module{
		LeadingEmptyLines: b.emptyLines,
		FirstLine:         first,
		OtherLines:        b.lines,
		TrailingNewline:   st.inputEndsWithNewline,
	}
	st.finished = true
}
