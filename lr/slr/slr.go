/*
Package slr provides a table-driven shift-reduce parser. Clients have to use
the tools of package lr to prepare the parse table. The parser utilizes this
table to create a right derivation for a given input, provided through a
tokenizer interface.

This parser is intended for small to moderate grammars, e.g. for configuration
input or small domain-specific languages. Despite its name, the driver runs
any deterministic table package lr is able to construct: SLR(1), LALR(1) or
canonical LR(1).

The main focus for this implementation is adaptability and on-the-fly usage.
Clients are able to construct the parse tables from a grammar and use the
parser directly, without a code-generation or compile step.

Usage

Clients construct a grammar, usually by using a grammar builder:

	b := lr.NewGrammarBuilder[string, string, int]("Var")
	b.LHS("Var").N("Sign").T("a").End()  // Var  ➞ Sign a
	b.LHS("Sign").T("+").End()           // Sign ➞ +
	b.LHS("Sign").T("-").End()           // Sign ➞ -
	b.LHS("Sign").Epsilon()              // Sign ➞
	g, err := b.Grammar()

This grammar is subjected to grammar analysis and table generation.

	table, err := g.SLR1Table()
	if err != nil { … }                  // cannot use an SLR parser

Finally parse some input:

	p := slr.NewParser(table.Compact(), reducer)
	value, err := p.Parse(tokenizer)

On every reduction the reducer is called with the rule and the values of the
right-hand side symbols; its result becomes the value of the left-hand side.
Values of terminals are the tokens themselves.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package slr

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/lrtables"
	"github.com/npillmayer/lrtables/lr"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/exp/constraints"
)

// tracer traces with key 'lrtables.slr'.
func tracer() tracing.Trace {
	return tracing.Select("lrtables.slr")
}

// Tokenizer is the interface the parser relies on to receive input tokens.
// At the end of input, NextToken returns io.EOF.
type Tokenizer[T any] interface {
	NextToken() (lrtables.Token[T], error)
}

// Reducer is called for every reduction. args holds the values of the
// right-hand side symbols, span the input positions covered by them.
type Reducer[T, N constraints.Ordered, A any] func(rule lr.Production[T, N, A], args []interface{},
	span lrtables.Span) (interface{}, error)

// Parser is a shift-reduce parser. Create and initialize one with slr.NewParser(…).
// Parsers are not safe for concurrent use.
type Parser[T, N constraints.Ordered, A any] struct {
	table   *lr.CompactTable[T, N, A]
	reducer Reducer[T, N, A]
	stack   []stackitem // parser stack
}

// We store states together with semantic values on the parse stack.
type stackitem struct {
	state int           // ID of a table row
	value interface{}   // token or result of a reduction
	span  lrtables.Span // input span over which this symbol reaches
}

// NewParser creates a parser for a table. If reducer is nil, all reductions
// yield nil.
func NewParser[T, N constraints.Ordered, A any](table *lr.CompactTable[T, N, A],
	reducer Reducer[T, N, A]) *Parser[T, N, A] {
	//
	return &Parser[T, N, A]{
		table:   table,
		reducer: reducer,
		stack:   make([]stackitem, 0, 128),
	}
}

// SyntaxError is returned for input which the parse table does not accept.
type SyntaxError[T constraints.Ordered] struct {
	Token    lrtables.Token[T] // offending token, nil at end of input
	State    int
	Expected []lr.Lookahead[T]
}

func (e *SyntaxError[T]) Error() string {
	exp := make([]string, len(e.Expected))
	for i, la := range e.Expected {
		exp[i] = la.String()
	}
	if e.Token == nil {
		return fmt.Sprintf("syntax error: unexpected end of input, expected one of [%s]",
			strings.Join(exp, " "))
	}
	return fmt.Sprintf("syntax error at %v: unexpected %q, expected one of [%s]",
		e.Token.Span(), e.Token.Lexeme(), strings.Join(exp, " "))
}

// ErrNotInitialized is returned for parsers without a table.
var ErrNotInitialized = errors.New("parser not initialized")

// Parse starts a new parse, reading tokens from scan. It returns the value of
// the start symbol, as computed by the reducer.
func (p *Parser[T, N, A]) Parse(scan Tokenizer[T]) (interface{}, error) {
	tracer().Debugf("~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~")
	if p.table == nil {
		tracer().Errorf("SLR parser not initialized")
		return nil, ErrNotInitialized
	}
	p.stack = append(p.stack[:0], stackitem{state: p.table.Initial})
	token, la, err := next(scan)
	if err != nil {
		return nil, err
	}
	for {
		tos := p.stack[len(p.stack)-1]
		action := p.table.Action(tos.state, la)
		tracer().Debugf("action(%d, %v) = %v", tos.state, la, action)
		switch action.Kind {
		case lr.Shift:
			p.stack = append(p.stack, stackitem{state: action.State, value: token, span: token.Span()})
			if token, la, err = next(scan); err != nil {
				return nil, err
			}
		case lr.Reduce:
			if err = p.reduce(action.Rule, position(token, tos)); err != nil {
				return nil, err
			}
		case lr.Accept:
			rule := p.table.G.Rule(action.Rule)
			if rule.Augmented {
				return p.stack[len(p.stack)-1].value, nil
			}
			value, _, err := p.apply(rule, position(token, tos))
			return value, err
		default:
			return nil, &SyntaxError[T]{Token: token, State: tos.state, Expected: p.table.Expected(tos.state)}
		}
	}
}

// next reads the next token and converts it to a lookahead.
func next[T constraints.Ordered](scan Tokenizer[T]) (lrtables.Token[T], lr.Lookahead[T], error) {
	token, err := scan.NextToken()
	if errors.Is(err, io.EOF) {
		return nil, lr.EOF[T](), nil
	}
	if err != nil {
		return nil, lr.Lookahead[T]{}, err
	}
	tracer().Debugf("got token %q/%v from scanner", token.Lexeme(), token.Kind())
	return token, lr.LA(token.Kind()), nil
}

// position is the input position just before the lookahead, where an
// epsilon-derivation takes place.
func position[T any](token lrtables.Token[T], tos stackitem) uint64 {
	if token != nil {
		return token.Span().From()
	}
	return tos.span.To()
}

// reduce performs a reduce action for a rule
//
//    LHS ➞ X1 … Xn   (with X being terminals or non-terminals)
//
// Symbols X1 to Xn are represented on the stack as states
//
//    [TOS]  Sn(Xn, span_n) … S1(X1, span1)  …
//
func (p *Parser[T, N, A]) reduce(id lr.RuleID, pos uint64) error {
	rule := p.table.G.Rule(id)
	tracer().Infof("reduce %v", rule)
	value, span, err := p.apply(rule, pos)
	if err != nil {
		return err
	}
	tos := p.stack[len(p.stack)-1]
	nextstate, ok := p.table.Goto(tos.state, rule.LHS)
	if !ok {
		return fmt.Errorf("no goto for state %d and %v", tos.state, rule.LHS)
	}
	tracer().Debugf("reduced to next state = %d", nextstate)
	p.stack = append(p.stack, stackitem{state: nextstate, value: value, span: span})
	return nil
}

// apply pops the handle of a rule off the stack and calls the reducer.
func (p *Parser[T, N, A]) apply(rule lr.Production[T, N, A], pos uint64) (interface{}, lrtables.Span, error) {
	n := len(rule.RHS.Body)
	handle := p.stack[len(p.stack)-n:]
	args := make([]interface{}, n)
	var span lrtables.Span
	for i, item := range handle {
		args[i] = item.value
		span = span.Extend(item.span)
	}
	p.stack = p.stack[:len(p.stack)-n]
	if n == 0 { // epsilon was just before lookahead
		span = lrtables.Span{pos, pos}
	}
	if p.reducer == nil {
		return nil, span, nil
	}
	value, err := p.reducer(rule, args, span)
	return value, span, err
}
