package dfa

import (
	"testing"

	"dfalang/pattern"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run feeds s through d starting at d.Start, exactly like the scanner's
// advance loop (sans longest-match bookkeeping), and reports the rule
// index accepted when input is exhausted, or -1.
func run(d *DFA, s string) int {
	cur := d.Start
	for _, r := range s {
		next, ok := d.Step(cur, r)
		if !ok {
			return -1
		}
		cur = next
	}
	return d.AcceptRule(cur)
}

func TestCompileLongestMatchAndTieBreak(t *testing.T) {
	rules := []Rule{
		{Name: "dots3", Pattern: pattern.Str("...")},
		{Name: "dots2", Pattern: pattern.Str("..")},
		{Name: "dot1", Pattern: pattern.Str(".")},
	}
	d := Compile(rules)

	assert.Equal(t, 0, run(d, "..."), "longest match must win over earlier-declared shorter rules")
	assert.Equal(t, 1, run(d, ".."))
	assert.Equal(t, 2, run(d, "."))
	assert.Equal(t, -1, run(d, "x"))
}

func TestCompileDeclarationOrderTieBreak(t *testing.T) {
	rules := []Rule{
		{Name: "first", Pattern: pattern.Many1(pattern.Range('a', 'z'))},
		{Name: "second", Pattern: pattern.Many1(pattern.Range('a', 'z'))},
	}
	d := Compile(rules)
	assert.Equal(t, 0, run(d, "hello"), "equal-length matches must prefer the earlier-declared rule")
}

func TestCompilePassEnablesFallthrough(t *testing.T) {
	rules := []Rule{
		{Name: "digits", Pattern: pattern.Many1(pattern.Range('0', '9'))},
		{Name: "fallback", Pattern: pattern.Pass()},
	}
	d := Compile(rules)
	assert.Equal(t, 1, run(d, ""), "Pass must accept immediately with zero input consumed")
	assert.Equal(t, 0, run(d, "123"))
}

func TestCompileEOFSentinel(t *testing.T) {
	rules := []Rule{
		{Name: "eof", Pattern: pattern.EOFPattern()},
	}
	d := Compile(rules)
	cur := d.Start
	next, ok := d.Step(cur, pattern.EOF)
	require.True(t, ok)
	assert.Equal(t, 0, d.AcceptRule(next))
}

func TestMinimizePreservesLanguagePerRule(t *testing.T) {
	rules := []Rule{
		{Name: "ident", Pattern: pattern.Seq(pattern.Range('a', 'z'), pattern.Many(pattern.Range('a', 'z')))},
		{Name: "number", Pattern: pattern.Many1(pattern.Range('0', '9'))},
	}
	nfaStart, b := buildRuleSetNFA(rules)
	alphabet := newAlphabet(b.states)
	raw, rawStart := subsetConstruct(nfaStart, alphabet)
	rawDFA := &DFA{Alphabet: alphabet, States: raw, Start: rawStart, Rules: rules}

	min := Compile(rules)

	assert.LessOrEqual(t, len(min.States), len(rawDFA.States), "minimize must never grow the automaton")
	assert.True(t, Equivalent(rawDFA, min), "minimization must not change the accepted language")
}

func TestMinimizeKeepsDistinctRuleTagsApart(t *testing.T) {
	rules := []Rule{
		{Name: "let", Pattern: pattern.Str("let")},
		{Name: "ident", Pattern: pattern.Many1(pattern.Range('a', 'z'))},
	}
	d := Compile(rules)
	// "let" matches both rules at length 3; rule 0 (declared first) must win.
	assert.Equal(t, 0, run(d, "let"))
	assert.Equal(t, 1, run(d, "lets"))
}

func TestNoneMatchesNothing(t *testing.T) {
	rules := []Rule{{Name: "none", Pattern: pattern.None()}}
	d := Compile(rules)
	assert.Equal(t, -1, run(d, "a"))
	assert.Equal(t, -1, run(d, ""))
}

func TestComplementFlipsAcceptance(t *testing.T) {
	rules := []Rule{{Name: "a", Pattern: pattern.Char('a')}}
	d := Compile(rules)
	comp := d.Complement()

	startAccepts := comp.States[comp.Start].acceptRule >= 0
	assert.True(t, startAccepts, "empty string is not 'a', so complement must accept it")
}
