package lexengine

import "dfalang/ast"

// This file is spec §4.F: one function per trigger → effect pair. Each
// action is grounded the same way internal/interpreter/parser.go's
// Statement.Exec/Expr.Eval handlers are — a plain function closing over the
// shared mutable context, switching on which concrete rule fired rather
// than on a token type, since here the DFA rule index already told the
// scanner which handler to call.

// beginIdent stores an identifier-shaped token and enters the suffix
// check, shared by the variable/constructor/wildcard rules.
func beginIdent(body ast.Identifier) Action {
	return func(c *Ctx) {
		c.state.identBody = body
		c.Begin("IDENT_SFX_CHECK")
	}
}

func identVariable(c *Ctx) { beginIdent(&ast.Var{Name: c.CurrentMatch()})(c) }
func identConstructor(c *Ctx) { beginIdent(&ast.Cons{Name: c.CurrentMatch()})(c) }
func identWildcard(c *Ctx) { beginIdent(&ast.Wildcard{})(c) }

// identInvalidSuffix and identSubmit are IDENT_SFX_CHECK's two rules; they
// are also OPERATOR_SFX_CHECK's two rules (same shape, different identBody
// contents), so both groups' rule tables reference these same functions.
func identInvalidSuffix(c *Ctx) {
	body := c.state.identBody
	tail := c.CurrentMatch()
	c.state.identBody = nil
	c.App(&ast.InvalidIdentifier{Body: body, Tail: tail})
	c.End()
}

func identSubmit(c *Ctx) {
	body := c.state.identBody
	c.state.identBody = nil
	c.App(body)
	c.End()
}

// submitIdent is onEOF's first step. In practice identBody is always nil
// by the time onEOF runs — EOF inside a suffix-check group is itself
// caught by that group's own Pass rule before control ever reaches
// NORMAL's eof handling — but onEOF calls it unconditionally per §4.G.
func submitIdent(c *Ctx) {
	if c.state.identBody == nil {
		return
	}
	body := c.state.identBody
	c.state.identBody = nil
	c.App(body)
}

// operatorGeneric is NORMAL's catch-all run-of-operator-characters rule:
// enter OPERATOR_MOD_CHECK so a lone trailing "=" can still be folded into
// a Modifier.
func operatorGeneric(c *Ctx) {
	c.state.identBody = &ast.Operator{Name: c.CurrentMatch()}
	c.Begin("OPERATOR_MOD_CHECK")
}

// operatorNoMod handles the noModOperator literals ("==", ">=", "=", ",",
// "...", ...): these already denote a complete operator, so they skip
// OPERATOR_MOD_CHECK and go straight to the suffix check.
func operatorNoMod(c *Ctx) {
	c.state.identBody = &ast.Operator{Name: c.CurrentMatch()}
	c.Begin("OPERATOR_SFX_CHECK")
}

// operatorMarkModifier is OPERATOR_MOD_CHECK's own rule: a bare trailing
// "=" promotes the pending Operator to a Modifier, then replaces
// OPERATOR_MOD_CHECK with OPERATOR_SFX_CHECK, whose rules run the ordinary
// suffix check and submit the Modifier. A run of two or more "=" never
// reaches this rule: the inherited invalidSuffix rule matches the longer
// run and wins by longest match.
func operatorMarkModifier(c *Ctx) {
	op := c.state.identBody.(*ast.Operator)
	c.state.identBody = &ast.Modifier{Name: op.Name}
	c.End()
	c.Begin("OPERATOR_SFX_CHECK")
}

// openParen records the whitespace immediately inside "(" and enters
// PARENSED.
func openParen(c *Ctx) {
	leftOffset := c.MatchLen() - 1
	c.state.pushGroupLeftOffset(leftOffset)
	c.state.pushAST()
	c.state.pushLastOffset()
	c.Begin("PARENSED")
}

// unmatchedClose is a ")" seen in NORMAL, with no open group to close.
func unmatchedClose(c *Ctx) {
	c.App(&ast.UnmatchedClose{})
}

// closeParen is PARENSED's own ")" rule.
func closeParen(c *Ctx) {
	st := c.state
	leftOffset := st.popGroupLeftOffset()
	rightOffset := st.useLastOffset()
	inner := st.result
	st.popAST()
	st.popLastOffset()
	st.app(&ast.Group{LeftOffset: leftOffset, Inner: inner, RightOffset: rightOffset})
	c.End()
}

// parensedEOF is spec §4.F's Groups/Parentheses "eof" case: an open "("
// still open when EOF arrives.
func parensedEOF(c *Ctx) {
	st := c.state
	leftOffset := st.popGroupLeftOffset()

	var node ast.Node
	foldLeft := false
	if st.result != nil {
		inner := st.result
		node = &ast.UnclosedGroup{LeftOffset: &leftOffset, Inner: inner}
	} else {
		node = &ast.UnclosedGroup{}
		foldLeft = true
	}

	st.popAST()
	st.popLastOffset()
	if foldLeft {
		st.lastOffset += leftOffset
	}
	st.app(node)
	c.End()
	c.Rewind()
}

// numberDigits is NORMAL's digit+ rule: stash the digits and check for a
// base separator.
func numberDigits(c *Ctx) {
	c.state.numberPart2 = c.CurrentMatch()
	c.Begin("NUMBER_PHASE2")
}

// numberWithBase is NUMBER_PHASE2's `_[alnum]+` rule: the digits seen so
// far become the base, and the digits after '_' become the number itself.
func numberWithBase(c *Ctx) {
	st := c.state
	base := st.numberPart2
	st.numberPart1 = &base
	digits := c.CurrentMatch()[1:] // drop the leading '_'
	c.App(&ast.Number{Base: st.numberPart1, Digits: digits})
	st.numberPart1 = nil
	st.numberPart2 = ""
	c.End()
}

func numberDanglingBase(c *Ctx) {
	st := c.state
	c.App(&ast.DanglingBase{Digits: st.numberPart2})
	st.numberPart2 = ""
	c.End()
}

func numberPlain(c *Ctx) {
	st := c.state
	c.App(&ast.Number{Digits: st.numberPart2})
	st.numberPart2 = ""
	c.End()
}

// openText pushes a fresh text literal and enters TEXT. single and triple
// share this shape, differing only in quote size.
func openText(quote ast.QuoteSize) Action {
	return func(c *Ctx) {
		c.state.pushText(quote)
		c.Begin("TEXT")
	}
}

// closeOrPlainQuote is TEXT's "'" / "'''" rule: matched is the quote mark
// itself, which is treated as a plain segment rather than a closer if its
// length doesn't match the text literal currently being built.
func closeOrPlainQuote(matchedSize ast.QuoteSize) Action {
	return func(c *Ctx) {
		st := c.state
		ts := st.currentText()
		if matchedSize != ts.quote {
			ts.segments = append(ts.segments, &ast.PlainSegment{Text: c.CurrentMatch()})
			return
		}
		ts = st.popText()
		c.App(&ast.Text{Quote: ts.quote, Segments: ts.segments})
		c.End()
	}
}

func textPlain(c *Ctx) {
	ts := c.state.currentText()
	ts.segments = append(ts.segments, &ast.PlainSegment{Text: c.CurrentMatch()})
}

func textUnicodeEscape(c *Ctx) {
	ts := c.state.currentText()
	hex := c.CurrentMatch()[2:] // drop the leading "\u"
	ts.segments = append(ts.segments, &ast.UnicodeEscapeSegment{Hex: hex})
}

// textEOF finalizes an unterminated text literal rather than inventing an
// AST variant spec §3 never lists for it, and like parensedEOF rewinds so
// the outer context sees EOF too.
func textEOF(c *Ctx) {
	ts := c.state.popText()
	c.App(&ast.Text{Quote: ts.quote, Segments: ts.segments})
	c.End()
	c.Rewind()
}

// newlineInNormal is NORMAL's "newline" rule. It does not finalize the
// line yet — a pending result must stay live in case the next line turns
// out to be a deeper indent, in which case it becomes the Fn half of an
// App whose Arg is the nested Block rather than a line of its own (spec
// §8 scenario: "a" followed by an indented block is one line, not two).
// The whitespace consumed before this newline is stashed in
// pendingTrailing, and pendingLineOpen marks it live, for whichever
// NEWLINE rule eventually resolves the line's fate.
func newlineInNormal(c *Ctx) {
	c.state.pendingTrailing = c.state.useLastOffset()
	c.state.pendingLineOpen = true
	c.Begin("NEWLINE")
}

// onEOF is spec §4.G's onEOF: finalize a pending identifier, close every
// open block, and produce the Module. trailing is the width belonging to
// whatever line EOF just ended; it is handed to submitModule too, since a
// module with no content at all never routes it through submitLine.
func onEOF(c *Ctx, trailing int) {
	submitIdent(c)
	c.state.onBlockEnd(0, trailing)
	c.state.submitModule(trailing)
}

// normalEOF is the supplemented direct NORMAL-group "eof" rule (see
// SPEC_FULL.md): EOF reached with no preceding newline at all, so the
// trailing width is whatever has accumulated since the last real token.
func normalEOF(c *Ctx) {
	onEOF(c, c.state.useLastOffset())
}

// onEmptyLine is NEWLINE's rule 1: a line that is itself blank. A line
// still pending from before the newline that led here is finalized first,
// gated on pendingLineOpen rather than result's nilness — a pending line
// that was itself blank (result nil) still needs exactly one submitLine
// call, and pendingLineOpen is what tells this apart from "already filed
// by an earlier blank line in this same run." Then the blank line this
// rule matched is recorded in its own right.
func onEmptyLine(c *Ctx) {
	st := c.state
	if st.pendingLineOpen {
		st.submitLine(st.pendingTrailing)
		st.pendingLineOpen = false
	}
	st.onWhitespace(c.MatchLen()-1, 0)
	st.submitLine(st.useLastOffset())
}

// onEOFLine is NEWLINE's rule 2: trailing whitespace then EOF, with no
// further content. If a line is still open from the newline that led
// here, its stashed width is folded in; otherwise (it was already filed
// by an intervening blank line) only the whitespace just before EOF
// counts.
func onEOFLine(c *Ctx) {
	st := c.state
	st.onWhitespace(c.MatchLen()-1, 0)
	trailing := st.useLastOffset()
	if st.pendingLineOpen {
		trailing += st.pendingTrailing
		st.pendingLineOpen = false
	}
	c.End()
	onEOF(c, trailing)
}

// onBlockNewline is NEWLINE's rule 3: real content follows, and the
// whitespace just consumed is that line's indentation.
func onBlockNewline(c *Ctx) {
	c.End()
	st := c.state
	st.onWhitespace(c.MatchLen(), 0)
	newIndent := st.useLastOffset()

	hadPending := st.pendingLineOpen
	trailing := 0
	if hadPending {
		trailing = st.pendingTrailing
	}
	st.pendingLineOpen = false

	switch {
	case newIndent > st.currentBlock.indent:
		// Deeper: the pending result (if any) stays live, to be app'd
		// with the nested block once it closes. trailing is not
		// consumed — once this line becomes an App's Fn half, its own
		// trailing width is moot.
		st.onBlockBegin(newIndent)
	case newIndent < st.currentBlock.indent:
		st.onBlockEnd(newIndent, trailing)
	default:
		// Same level: if a line was genuinely left open by the newline
		// that led here, it's now complete. If not — an intervening
		// blank line already filed it — there is nothing left to file;
		// filing again here would duplicate that blank line's entry.
		if hadPending {
			st.submitLine(trailing)
		}
	}
}
