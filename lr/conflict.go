package lr

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// ConflictKind distinguishes shift/reduce from reduce/reduce conflicts.
type ConflictKind int8

// Kinds of conflicts
const (
	ShiftReduce ConflictKind = iota
	ReduceReduce
)

// RuleRef identifies a rule involved in a conflict. It is a copy and does not
// reference the grammar.
type RuleRef[N constraints.Ordered] struct {
	ID        RuleID
	LHS       N
	Augmented bool
	Text      string // readable form of the rule
}

func (r RuleRef[N]) String() string {
	return r.Text
}

// Conflict describes a table cell where two different actions collide.
// It is returned as an error from table construction; use errors.As to get
// hold of it.
//
// For shift/reduce conflicts Shift is the destination state of the shift and
// Reduce the rule to reduce. For reduce/reduce conflicts Reduce and Reduce2
// are the colliding rules, Reduce being the one entered first. Accept counts as
// a reduction of the rule it completes.
type Conflict[T, N constraints.Ordered] struct {
	Kind      ConflictKind
	State     int
	Lookahead Lookahead[T]
	Shift     int
	Reduce    RuleRef[N]
	Reduce2   RuleRef[N]
	existing  Action
	incoming  Action
}

// Actions returns the colliding actions: the one already present in the table
// and the one about to be entered.
func (c *Conflict[T, N]) Actions() (Action, Action) {
	return c.existing, c.incoming
}

func (c *Conflict[T, N]) Error() string {
	if c.Kind == ShiftReduce {
		return fmt.Sprintf("shift/reduce conflict in state %d on %v: shift %d vs. reduce %v",
			c.State, c.Lookahead, c.Shift, c.Reduce)
	}
	return fmt.Sprintf("reduce/reduce conflict in state %d on %v: reduce %v vs. reduce %v",
		c.State, c.Lookahead, c.Reduce, c.Reduce2)
}

func ruleRef[T, N constraints.Ordered, A any](g *Grammar[T, N, A], id RuleID) RuleRef[N] {
	p := g.Rule(id)
	return RuleRef[N]{ID: id, LHS: p.LHS, Augmented: p.Augmented, Text: p.String()}
}

func newConflict[T, N constraints.Ordered, A any](g *Grammar[T, N, A], state int, la Lookahead[T],
	existing, incoming Action) *Conflict[T, N] {
	//
	c := &Conflict[T, N]{State: state, Lookahead: la, existing: existing, incoming: incoming}
	switch {
	case existing.Kind == Shift:
		c.Kind = ShiftReduce
		c.Shift = existing.State
		c.Reduce = ruleRef(g, incoming.Rule)
	case incoming.Kind == Shift:
		c.Kind = ShiftReduce
		c.Shift = incoming.State
		c.Reduce = ruleRef(g, existing.Rule)
	default:
		c.Kind = ReduceReduce
		c.Reduce = ruleRef(g, existing.Rule)
		c.Reduce2 = ruleRef(g, incoming.Rule)
	}
	return c
}

// --- Resolving conflicts ---------------------------------------------------

// Resolver is asked to decide a conflict during table construction. It
// returns the action to put into the table, or false to leave the conflict
// unresolved, which aborts table construction.
type Resolver[T, N constraints.Ordered, A any] func(g *Grammar[T, N, A], c *Conflict[T, N]) (Action, bool)

// ResolveByPriority creates a resolver which decides reduce/reduce conflicts by
// the priority of the rules' right-hand sides, as computed by prio. The rule with
// the lower priority value wins, ties stay unresolved. Shift/reduce conflicts
// are decided in favour of shifting.
func ResolveByPriority[T, N constraints.Ordered, A any](prio func(Rhs[T, N, A]) int) Resolver[T, N, A] {
	return func(g *Grammar[T, N, A], c *Conflict[T, N]) (Action, bool) {
		existing, incoming := c.Actions()
		if c.Kind == ShiftReduce {
			if existing.Kind == Shift {
				return existing, true
			}
			return incoming, true
		}
		p1 := prio(g.Rule(existing.Rule).RHS)
		p2 := prio(g.Rule(incoming.Rule).RHS)
		switch {
		case p1 < p2:
			return existing, true
		case p2 < p1:
			return incoming, true
		}
		return Action{}, false
	}
}

// --- Options ---------------------------------------------------------------

// Option configures table construction.
type Option[T, N constraints.Ordered, A any] func(*config[T, N, A])

type config[T, N constraints.Ordered, A any] struct {
	resolver Resolver[T, N, A]
}

// WithResolver plugs in a conflict resolver. Without a resolver, every conflict
// aborts table construction.
func WithResolver[T, N constraints.Ordered, A any](r Resolver[T, N, A]) Option[T, N, A] {
	return func(conf *config[T, N, A]) {
		conf.resolver = r
	}
}

func configure[T, N constraints.Ordered, A any](opts []Option[T, N, A]) *config[T, N, A] {
	conf := &config[T, N, A]{}
	for _, opt := range opts {
		opt(conf)
	}
	return conf
}
