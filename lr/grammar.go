package lr

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Errors reported by New.
var (
	ErrNoStartRule        = errors.New("start symbol has no rule set")
	ErrInvalidNonterminal = errors.New("invalid non-terminal")
)

// RuleID identifies a production of a grammar.
type RuleID int

// NoRule is a RuleID which identifies no rule.
const NoRule RuleID = -1

// Rhs is the right-hand side of a production: a sequence of symbols, possibly
// empty, plus an opaque payload which is carried into parse tables untouched.
type Rhs[T, N constraints.Ordered, A any] struct {
	Body    []Symbol[T, N]
	Payload A
}

// IsEpsilon returns true for empty right-hand sides.
func (rhs Rhs[T, N, A]) IsEpsilon() bool {
	return len(rhs.Body) == 0
}

func (rhs Rhs[T, N, A]) String() string {
	if len(rhs.Body) == 0 {
		return "ε"
	}
	syms := make([]string, len(rhs.Body))
	for i, A := range rhs.Body {
		syms[i] = A.String()
	}
	return strings.Join(syms, " ")
}

// Production is a rule of a grammar as handed out to clients.
// The synthetic rule S' ➞ S of an augmented grammar has Augmented set and no
// meaningful LHS.
type Production[T, N constraints.Ordered, A any] struct {
	ID        RuleID
	LHS       N
	RHS       Rhs[T, N, A]
	Augmented bool
}

func (p Production[T, N, A]) String() string {
	if p.Augmented {
		return fmt.Sprintf("S' ➞ %v", p.RHS)
	}
	return fmt.Sprintf("%v ➞ %v", p.LHS, p.RHS)
}

type rule[T, N constraints.Ordered, A any] struct {
	lhs int // index into nonterms, -1 for the augmented start rule
	rhs Rhs[T, N, A]
}

// Grammar is a context-free grammar. Grammars are immutable after creation and
// safe for concurrent read access.
//
// Rules are numbered by non-terminal order first and declaration order
// second. An augmented start rule, if present, comes last.
type Grammar[T, N constraints.Ordered, A any] struct {
	start     N
	startInx  int
	nonterms  []N
	ntIndex   map[N]int
	terminals []T
	rules     []rule[T, N, A]
	byLHS     [][]RuleID
	augmented RuleID
}

// New creates a grammar from a start symbol and a set of rules. Every
// non-terminal occuring in a right-hand side must be a key of rules, and so must
// start. An empty list of alternatives for a non-terminal is legal.
//
// If start is referenced from any right-hand side, the grammar is augmented with
// a synthetic rule S' ➞ start.
func New[T, N constraints.Ordered, A any](start N, rules map[N][]Rhs[T, N, A]) (*Grammar[T, N, A], error) {
	if _, ok := rules[start]; !ok {
		return nil, fmt.Errorf("%w: %v", ErrNoStartRule, start)
	}
	g := &Grammar[T, N, A]{
		start:     start,
		nonterms:  maps.Keys(rules),
		ntIndex:   make(map[N]int, len(rules)),
		augmented: NoRule,
	}
	slices.Sort(g.nonterms)
	for i, n := range g.nonterms {
		g.ntIndex[n] = i
	}
	g.startInx = g.ntIndex[start]
	g.byLHS = make([][]RuleID, len(g.nonterms))
	terms := make(map[T]struct{})
	recursive := false
	for i, n := range g.nonterms {
		for _, rhs := range rules[n] {
			for _, A := range rhs.Body {
				if A.IsTerminal() {
					terms[A.Terminal()] = struct{}{}
					continue
				}
				if _, ok := g.ntIndex[A.Nonterminal()]; !ok {
					return nil, fmt.Errorf("%w: %v in rule for %v", ErrInvalidNonterminal, A.Nonterminal(), n)
				}
				if A.Nonterminal() == start {
					recursive = true
				}
			}
			body := make([]Symbol[T, N], len(rhs.Body))
			copy(body, rhs.Body)
			id := RuleID(len(g.rules))
			g.rules = append(g.rules, rule[T, N, A]{lhs: i, rhs: Rhs[T, N, A]{Body: body, Payload: rhs.Payload}})
			g.byLHS[i] = append(g.byLHS[i], id)
		}
	}
	g.terminals = maps.Keys(terms)
	slices.Sort(g.terminals)
	if recursive {
		g.augmented = RuleID(len(g.rules))
		g.rules = append(g.rules, rule[T, N, A]{
			lhs: -1,
			rhs: Rhs[T, N, A]{Body: []Symbol[T, N]{NonTerm[T](start)}},
		})
	}
	tracer().Infof("grammar has %d non-terminals, %d terminals and %d rules (augmented=%v)",
		len(g.nonterms), len(g.terminals), len(g.rules), recursive)
	return g, nil
}

// Start returns the start symbol of g.
func (g *Grammar[T, N, A]) Start() N {
	return g.start
}

// Nonterminals returns the non-terminals of g in ascending order.
func (g *Grammar[T, N, A]) Nonterminals() []N {
	return slices.Clone(g.nonterms)
}

// Terminals returns all terminals occuring in rules of g, in ascending order.
func (g *Grammar[T, N, A]) Terminals() []T {
	return slices.Clone(g.terminals)
}

// IsNonterminal checks if n is a non-terminal of g.
func (g *Grammar[T, N, A]) IsNonterminal(n N) bool {
	_, ok := g.ntIndex[n]
	return ok
}

// RuleCount returns the number of rules, including an augmented start rule.
func (g *Grammar[T, N, A]) RuleCount() int {
	return len(g.rules)
}

// Rules returns the IDs of all rules for non-terminal n, in declaration order.
func (g *Grammar[T, N, A]) Rules(n N) []RuleID {
	inx, ok := g.ntIndex[n]
	if !ok {
		return nil
	}
	return slices.Clone(g.byLHS[inx])
}

// Rule returns the production with the given ID. It panics for invalid IDs.
func (g *Grammar[T, N, A]) Rule(id RuleID) Production[T, N, A] {
	r := g.rule(id)
	p := Production[T, N, A]{ID: id, RHS: r.rhs}
	if r.lhs < 0 {
		p.Augmented = true
	} else {
		p.LHS = g.nonterms[r.lhs]
	}
	return p
}

// AugmentedRule returns the synthetic start rule S' ➞ S, if g has one.
func (g *Grammar[T, N, A]) AugmentedRule() (RuleID, bool) {
	return g.augmented, g.augmented != NoRule
}

// IsAugmented returns true if g has a synthetic start rule.
func (g *Grammar[T, N, A]) IsAugmented() bool {
	return g.augmented != NoRule
}

func (g *Grammar[T, N, A]) rule(id RuleID) *rule[T, N, A] {
	if id < 0 || int(id) >= len(g.rules) {
		panic(fmt.Sprintf("rule ID %d out of range", id))
	}
	return &g.rules[id]
}

func (g *Grammar[T, N, A]) isStartRule(id RuleID) bool {
	return g.rule(id).lhs == g.startInx
}

// Peek returns the symbol after the dot of an item, if any.
func (g *Grammar[T, N, A]) Peek(i Item) (Symbol[T, N], bool) {
	body := g.rule(i.Rule).rhs.Body
	if i.Dot >= len(body) {
		return Symbol[T, N]{}, false
	}
	return body[i.Dot], true
}

// IsComplete returns true if the dot of item i is at the end of its rule.
func (g *Grammar[T, N, A]) IsComplete(i Item) bool {
	return i.Dot >= len(g.rule(i.Rule).rhs.Body)
}

// RuleString returns a readable representation of a rule.
func (g *Grammar[T, N, A]) RuleString(id RuleID) string {
	return g.Rule(id).String()
}

// ItemString returns a readable representation of an item, e.g. "[E ➞ E • + T]".
func (g *Grammar[T, N, A]) ItemString(i Item) string {
	p := g.Rule(i.Rule)
	var b strings.Builder
	b.WriteString("[")
	if p.Augmented {
		b.WriteString("S'")
	} else {
		b.WriteString(fmt.Sprintf("%v", p.LHS))
	}
	b.WriteString(" ➞")
	for k, A := range p.RHS.Body {
		if k == i.Dot {
			b.WriteString(" •")
		}
		b.WriteString(" ")
		b.WriteString(A.String())
	}
	if i.Dot >= len(p.RHS.Body) {
		b.WriteString(" •")
	}
	b.WriteString("]")
	return b.String()
}

// Dump is a debugging helper: it traces all rules of g.
func (g *Grammar[T, N, A]) Dump() {
	tracer().Debugf("--- grammar, start = %v ------------------------------", g.start)
	for id := range g.rules {
		tracer().Debugf("%3d: %s", id, g.RuleString(RuleID(id)))
	}
	tracer().Debugf("-------------------------------------------------------")
}
