package lexengine

import (
	"fmt"
	"io"
	"log/slog"

	"dfalang/ast"
	"dfalang/dfa"
)

// Parser drives one parse at a time over the group forest built once at
// construction, the same shape cmd/labyrinth/main.go expects of
// internal/interpreter's Parser: build once, Run repeatedly.
type Parser struct {
	groups map[string]*Group
	result *ast.Module
	logger *slog.Logger
}

// Option configures a Parser at construction, the functional-options shape
// internal/interpreter and LAB_3_Drone/evaluator both build their
// constructors around. There is nothing to configure about the grammar
// itself (spec §6 fixes it), so the only option today is diagnostic output.
type Option func(*Parser)

// WithLogger attaches a structured logger that NewParser uses to report
// compiled-group sizes as each group's DFA is built lazily on first use.
// The core stays silent without one — slog.Logger is nil by default, and
// every call site checks before logging, so no log line ever appears
// unless a caller opts in.
func WithLogger(l *slog.Logger) Option {
	return func(p *Parser) { p.logger = l }
}

// NewParser builds the group forest (spec §6's "Parser::new() initializes
// the NORMAL group and all derived groups"). Compilation of each group's
// DFA is still deferred to first use (spec §4.B).
func NewParser(opts ...Option) *Parser {
	p := &Parser{groups: buildGroups()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// New is NewParser with no options, for callers that don't need a logger.
func New() *Parser {
	return NewParser()
}

// Run parses input to completion and returns its Module, or a non-nil
// error only for the two invariant violations spec §7 calls fatal — never
// for malformed input, which is always represented in the tree itself.
func (p *Parser) Run(input string) (mod *ast.Module, err error) {
	defer func() {
		if r := recover(); r != nil {
			ie, ok := r.(*InternalError)
			if !ok {
				panic(r)
			}
			err = ie
		}
	}()

	state := newParserState()
	state.inputEndsWithNewline = len(input) > 0 && input[len(input)-1] == '\n'
	state.onBlockBegin(0)

	gs := newGroupStack(p.groups["NORMAL"])
	sc := newScanner(input)
	c := &Ctx{state: state, scanner: sc, groups: gs, byName: p.groups, logger: p.logger}

	for !state.finished {
		sc.advance(gs.current(), c)
	}

	if len(gs.frames) != 1 {
		return nil, fmt.Errorf("lexengine: internal error: group stack not empty at end of parse (depth %d)", len(gs.frames))
	}

	p.result = state.module
	return state.module, nil
}

// GetResult returns the most recently produced Module, or nil if Run has
// not yet succeeded, per spec §6's getResult().
func (p *Parser) GetResult() *ast.Module { return p.result }

// ExportGroupDOT compiles the named group (triggering it, if this is the
// first thing to touch it) and writes its automaton to w via dfa.ExportDOT,
// the same debug path LAB_2/regexlib's cmd/regexviz exposes for a single
// compiled pattern, generalized here to any of this module's named groups.
func (p *Parser) ExportGroupDOT(w io.Writer, name string) error {
	g, ok := p.groups[name]
	if !ok {
		return fmt.Errorf("lexengine: no such group %q", name)
	}
	dfa.ExportDOT(w, g.compile(p.logger))
	return nil
}
