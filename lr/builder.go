package lr

import (
	"golang.org/x/exp/constraints"
)

// GrammarBuilder is a helper to build grammars in a readable way.
//
//     b := lr.NewGrammarBuilder[string, string, int]("S")
//     b.LHS("S").N("E").End()              // S ➞ E
//     b.LHS("E").N("E").T("+").N("T").End() // E ➞ E + T
//     …
//     g, err := b.Grammar()
//
type GrammarBuilder[T, N constraints.Ordered, A any] struct {
	start N
	rules map[N][]Rhs[T, N, A]
}

// NewGrammarBuilder gets a new grammar builder, given the start symbol.
func NewGrammarBuilder[T, N constraints.Ordered, A any](start N) *GrammarBuilder[T, N, A] {
	return &GrammarBuilder[T, N, A]{
		start: start,
		rules: make(map[N][]Rhs[T, N, A]),
	}
}

// RuleBuilder collects the right-hand side of a rule. It is created by
// GrammarBuilder.LHS and finished with End or Epsilon.
type RuleBuilder[T, N constraints.Ordered, A any] struct {
	gb      *GrammarBuilder[T, N, A]
	lhs     N
	body    []Symbol[T, N]
	payload A
}

// LHS starts a new rule for non-terminal n.
func (gb *GrammarBuilder[T, N, A]) LHS(n N) *RuleBuilder[T, N, A] {
	return &RuleBuilder[T, N, A]{gb: gb, lhs: n}
}

// Declare makes n a non-terminal without adding a rule for it.
func (gb *GrammarBuilder[T, N, A]) Declare(n N) *GrammarBuilder[T, N, A] {
	if _, ok := gb.rules[n]; !ok {
		gb.rules[n] = nil
	}
	return gb
}

// N appends a non-terminal to the right-hand side.
func (rb *RuleBuilder[T, N, A]) N(n N) *RuleBuilder[T, N, A] {
	rb.body = append(rb.body, NonTerm[T](n))
	return rb
}

// T appends a terminal to the right-hand side.
func (rb *RuleBuilder[T, N, A]) T(t T) *RuleBuilder[T, N, A] {
	rb.body = append(rb.body, Term[T, N](t))
	return rb
}

// Payload attaches a payload to the rule.
func (rb *RuleBuilder[T, N, A]) Payload(a A) *RuleBuilder[T, N, A] {
	rb.payload = a
	return rb
}

// End ends the rule and adds it to the grammar builder.
func (rb *RuleBuilder[T, N, A]) End() Rhs[T, N, A] {
	rhs := Rhs[T, N, A]{Body: rb.body, Payload: rb.payload}
	rb.gb.rules[rb.lhs] = append(rb.gb.rules[rb.lhs], rhs)
	return rhs
}

// Epsilon ends a rule with an empty right-hand side. Symbols added before are
// dropped.
func (rb *RuleBuilder[T, N, A]) Epsilon() Rhs[T, N, A] {
	rb.body = nil
	return rb.End()
}

// Grammar creates the grammar from the rules collected so far.
// See New for possible errors.
func (gb *GrammarBuilder[T, N, A]) Grammar() (*Grammar[T, N, A], error) {
	return New(gb.start, gb.rules)
}
