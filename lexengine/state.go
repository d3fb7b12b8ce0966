package lexengine

import "dfalang/ast"

// blockState is the off-side-rule accumulator for one indentation level
// (spec §4.G's BlockState).
type blockState struct {
	isValid    bool
	indent     int
	emptyLines []int
	firstLine  *ast.RequiredLine
	lines      []ast.Line
}

// textState is one text literal being built; textStateStack supports
// literals interrupted by nothing in this grammar today, but the stack is
// kept (rather than a single field) because TEXT is entered and exited by
// the same group-push/pop machinery every other nested context uses, and a
// future escape form could legitimately recurse into it.
type textState struct {
	quote    ast.QuoteSize
	segments []ast.TextSegment
}

// ParserState is the single mutable value every action reads and writes,
// per spec §9's "colocate all mutable state in one ParserState value owned
// by the driver and passed to actions by exclusive reference." Nothing in
// this package keeps state anywhere else.
type ParserState struct {
	result   ast.Node // Option<AST>: nil means "nothing accumulated yet"
	astStack []ast.Node

	lastOffset      int
	lastOffsetStack []int

	identBody ast.Identifier

	numberPart1 *string
	numberPart2 string

	textStateStack []*textState

	groupLeftOffsetStack []int

	blockStack   []*blockState
	currentBlock *blockState

	// pendingTrailing is the whitespace width between the end of whatever
	// is still sitting in result and the newline that was just seen,
	// captured at that newline and not yet filed into a Line — the line
	// it belongs to isn't finalized until the following indentation
	// comparison decides whether it continues into a nested block (in
	// which case this width is simply never consumed: the expression
	// isn't done) or is submitted as-is (equal/less), per spec §4.G.
	// Only meaningful while pendingLineOpen is true.
	pendingTrailing int

	// pendingLineOpen is set by newlineInNormal and cleared by whichever
	// NEWLINE rule first resolves the line it refers to: onEmptyLine (if
	// a result was still live), onEOFLine, or onBlockNewline. A second,
	// third, ... blank line within the same run only ever clears it
	// once — the flag, not result's nilness, is what distinguishes
	// "already filed" from "a genuinely blank line with nothing to
	// file," since both look identical from result alone.
	pendingLineOpen bool

	// inputEndsWithNewline records whether the raw input's last byte was
	// '\n', independent of which group happened to observe EOF — the
	// printer needs this to decide whether to reinstate a trailing
	// newline the scanner's EOF sentinel otherwise makes indistinguishable
	// from "the last line just ended at EOF with no newline at all."
	inputEndsWithNewline bool

	finished bool
	module   *ast.Module
}

func newParserState() *ParserState {
	return &ParserState{}
}

// pushAST saves result and clears it, for entering a nested context
// (group or block) that accumulates its own independent expression.
func (st *ParserState) pushAST() {
	st.astStack = append(st.astStack, st.result)
	st.result = nil
}

// popAST restores the most recently pushed result, discarding whatever the
// nested context accumulated into the current result slot (the caller is
// expected to have already consumed it, e.g. into a Group or Block node).
func (st *ParserState) popAST() {
	if len(st.astStack) == 0 {
		panic(&InternalError{Reason: "popAST: stack is empty"})
	}
	n := len(st.astStack) - 1
	st.result = st.astStack[n]
	st.astStack = st.astStack[:n]
}

func (st *ParserState) pushLastOffset() {
	st.lastOffsetStack = append(st.lastOffsetStack, st.lastOffset)
	st.lastOffset = 0
}

func (st *ParserState) popLastOffset() {
	if len(st.lastOffsetStack) == 0 {
		panic(&InternalError{Reason: "popLastOffset: stack is empty"})
	}
	n := len(st.lastOffsetStack) - 1
	st.lastOffset = st.lastOffsetStack[n]
	st.lastOffsetStack = st.lastOffsetStack[:n]
}

// useLastOffset reads and clears lastOffset, per spec §4.E.
func (st *ParserState) useLastOffset() int {
	v := st.lastOffset
	st.lastOffset = 0
	return v
}

// onWhitespace records matched whitespace width (plus shift, which is
// negative when the match includes a non-whitespace terminator that must
// not count, e.g. the trailing newline of "(whitespace|pass) >> newline").
func (st *ParserState) onWhitespace(matchLen int, shift int) {
	st.lastOffset += matchLen + shift
}

// app appends t to result per spec §4.E: left-associative
// juxtaposition-as-application, with the pending inter-token whitespace
// consumed into the new App node's Spacing.
func (st *ParserState) app(t ast.Node) {
	if st.result == nil {
		st.result = t
		return
	}
	st.result = &ast.App{Fn: st.result, Spacing: st.useLastOffset(), Arg: t}
}

func (st *ParserState) pushGroupLeftOffset(v int) {
	st.groupLeftOffsetStack = append(st.groupLeftOffsetStack, v)
}

func (st *ParserState) popGroupLeftOffset() int {
	if len(st.groupLeftOffsetStack) == 0 {
		panic(&InternalError{Reason: "popGroupLeftOffset: stack is empty"})
	}
	n := len(st.groupLeftOffsetStack) - 1
	v := st.groupLeftOffsetStack[n]
	st.groupLeftOffsetStack = st.groupLeftOffsetStack[:n]
	return v
}

func (st *ParserState) pushText(quote ast.QuoteSize) {
	st.textStateStack = append(st.textStateStack, &textState{quote: quote})
}

func (st *ParserState) currentText() *textState {
	if len(st.textStateStack) == 0 {
		panic(&InternalError{Reason: "currentText: no text literal is being built"})
	}
	return st.textStateStack[len(st.textStateStack)-1]
}

func (st *ParserState) popText() *textState {
	if len(st.textStateStack) == 0 {
		panic(&InternalError{Reason: "popText: stack is empty"})
	}
	n := len(st.textStateStack) - 1
	t := st.textStateStack[n]
	st.textStateStack = st.textStateStack[:n]
	return t
}
