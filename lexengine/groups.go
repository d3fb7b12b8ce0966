package lexengine

import (
	"dfalang/pattern"
	"dfalang/patterndsl"
)

// This file wires the named groups spec §4.D/§4.F describe: their rule
// lists, declared in the order that breaks ties, and their parent links.
// Character classes whose members collide with patterndsl's own
// metacharacters (`[`, `]`, `(`, `)`, `|`, `*`, `+`, `?`, `^`, `-`, `\`) are
// built directly from pattern.* instead of through a DSL literal. Where a
// class is free of collisions (plain identifier shapes), a DSL literal is
// used instead, the way internal/interpreter/parser.go prefers a struct-tag
// grammar over hand-assembled parser calls wherever the grammar allows it.

const (
	identBreaker   = "^!@#$%^&*()-=+[]{}|;:<>,./`" + " \t\r\n\\"
	operatorChars  = `!$%&*+-/<>?^~|:\`
	operatorErr    = operatorChars + "=,."
	textExcludeSet = "'`\n\\"
	wsChars        = " \t\r"
)

var (
	variablePattern    = patterndsl.MustCompile(`[a-z][a-zA-Z0-9_]*'*`)
	constructorPattern = patterndsl.MustCompile(`[A-Z][a-zA-Z0-9_]*'*`)
	wildcardPattern    = patterndsl.MustCompile(`_`)
	digitsPattern      = patterndsl.MustCompile(`[0-9]+`)

	whitespacePattern  = pattern.Many1(pattern.AnyOf(wsChars))
	optionalWhitespace = pattern.Opt(whitespacePattern)
	newlineCharPattern = pattern.Char('\n')

	operatorPattern    = pattern.Many1(pattern.AnyOf(operatorChars))
	operatorErrPattern = pattern.Many1(pattern.AnyOf(operatorErr))
	noModOperator      = pattern.OrAll(
		pattern.Str("=="),
		pattern.Str(">="),
		pattern.Str("<="),
		pattern.Str("/="),
		pattern.Str("..."),
		pattern.Str(".."),
		pattern.Str("="),
		pattern.Str("."),
		pattern.Str(","),
	)

	numberBasePattern     = pattern.Seq(pattern.Char('_'), pattern.Many1(alnum()))
	numberDanglingBasePat = pattern.Char('_')

	openParenPattern = pattern.Seq(pattern.Char('('), optionalWhitespace)
	closeParenChar   = pattern.Char(')')

	singleQuotePattern = pattern.Char('\'')
	tripleQuotePattern = pattern.Str("'''")
	textPlainPattern   = pattern.Many1(pattern.NoneOf(textExcludeSet))
	textEscapePattern  = pattern.Seq(pattern.Str(`\u`), upTo(4, pattern.NoneOf(textExcludeSet)))
)

func alnum() pattern.Pattern {
	return pattern.OrAll(
		pattern.Range('a', 'z'),
		pattern.Range('A', 'Z'),
		pattern.Range('0', '9'),
	)
}

// upTo builds "zero to n repetitions of p", used for TEXT's bounded
// unicode-escape body (spec §4.F: "up to four chars"). The pattern algebra
// has no native bounded-repetition combinator, so this nests Opt the way a
// hand-expanded `p?p?p?p?` would, kept local to lexengine rather than added
// to package pattern since spec §4.A names the exact operation set pattern
// must expose and bounded-repeat isn't one of them.
func upTo(n int, p pattern.Pattern) pattern.Pattern {
	if n == 0 {
		return pattern.Pass()
	}
	return pattern.Opt(pattern.Seq(p, upTo(n-1, p)))
}

// registerExpressionRules adds the rules common to NORMAL and PARENSED:
// everything that can start an expression, plus the whitespace that glues
// tokens together. newline/eof handling differs between the two and is
// registered by the caller.
func registerExpressionRules(g *Group) {
	g.rule("variable", variablePattern, identVariable)
	g.rule("constructor", constructorPattern, identConstructor)
	g.rule("wildcard", wildcardPattern, identWildcard)
	g.rule("noModOperator", noModOperator, operatorNoMod)
	g.rule("operator", operatorPattern, operatorGeneric)
	g.rule("digits", digitsPattern, numberDigits)
	g.rule("tripleQuote", tripleQuotePattern, openText(3))
	g.rule("singleQuote", singleQuotePattern, openText(1))
	g.rule("openParen", openParenPattern, openParen)
	g.rule("whitespace", whitespacePattern, skipWhitespace)
}

func skipWhitespace(c *Ctx) { c.state.onWhitespace(c.MatchLen(), 0) }

// buildGroups constructs the full forest spec §4.D describes and returns it
// keyed by name, for Ctx.Begin to look up at runtime.
func buildGroups() map[string]*Group {
	normal := defineGroup("NORMAL")
	identSfx := defineGroup("IDENT_SFX_CHECK")
	operatorSfx := defineGroup("OPERATOR_SFX_CHECK")
	operatorMod := defineGroup("OPERATOR_MOD_CHECK")
	numberPhase2 := defineGroup("NUMBER_PHASE2")
	text := defineGroup("TEXT")
	parensed := defineGroup("PARENSED")
	newline := defineGroup("NEWLINE")

	operatorMod.setParent(operatorSfx)
	parensed.setParent(normal)

	registerExpressionRules(normal)
	normal.rule("closeParen", closeParenChar, unmatchedClose)
	normal.rule("newline", newlineCharPattern, newlineInNormal)
	normal.rule("eof", pattern.EOFPattern(), normalEOF)

	registerExpressionRules(parensed)
	parensed.rule("closeParen", closeParenChar, closeParen)
	parensed.rule("eof", pattern.EOFPattern(), parensedEOF)

	identSfx.rule("invalidSuffix", pattern.Many1(pattern.NoneOf(identBreaker)), identInvalidSuffix)
	identSfx.rule("pass", pattern.Pass(), identSubmit)

	operatorSfx.rule("invalidSuffix", operatorErrPattern, identInvalidSuffix)
	operatorSfx.rule("pass", pattern.Pass(), identSubmit)

	operatorMod.rule("modifier", pattern.Char('='), operatorMarkModifier)

	numberPhase2.rule("withBase", numberBasePattern, numberWithBase)
	numberPhase2.rule("danglingBase", numberDanglingBasePat, numberDanglingBase)
	numberPhase2.rule("pass", pattern.Pass(), numberPlain)

	text.rule("tripleQuote", tripleQuotePattern, closeOrPlainQuote(3))
	text.rule("singleQuote", singleQuotePattern, closeOrPlainQuote(1))
	text.rule("unicodeEscape", textEscapePattern, textUnicodeEscape)
	text.rule("plain", textPlainPattern, textPlain)
	text.rule("eof", pattern.EOFPattern(), textEOF)

	newline.rule("emptyLine", pattern.Seq(optionalWhitespace, newlineCharPattern), onEmptyLine)
	newline.rule("eofLine", pattern.Seq(optionalWhitespace, pattern.EOFPattern()), onEOFLine)
	newline.rule("blockNewline", optionalWhitespace, onBlockNewline)

	return map[string]*Group{
		"NORMAL":             normal,
		"IDENT_SFX_CHECK":    identSfx,
		"OPERATOR_SFX_CHECK": operatorSfx,
		"OPERATOR_MOD_CHECK": operatorMod,
		"NUMBER_PHASE2":      numberPhase2,
		"TEXT":               text,
		"PARENSED":           parensed,
		"NEWLINE":            newline,
	}
}
