package lr

import (
	"fmt"
	"io"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ActionKind is the kind of a parser action.
type ActionKind int8

// Kinds of parser actions. NoAction is the empty table cell, i.e. a syntax error.
const (
	NoAction ActionKind = iota
	Shift
	Reduce
	Accept
)

// Action is an entry of the ACTION table.
//
// For Shift, State is the state to push. For Reduce, Rule is the rule to reduce.
// For Accept, Rule is the rule which completes the parse: either a start rule
// which the driver still has to reduce, or the augmented rule S' ➞ S, which
// needs no reduction.
type Action struct {
	Kind  ActionKind
	State int
	Rule  RuleID
}

// ShiftAction creates a shift action.
func ShiftAction(state int) Action {
	return Action{Kind: Shift, State: state, Rule: NoRule}
}

// ReduceAction creates a reduce action.
func ReduceAction(rule RuleID) Action {
	return Action{Kind: Reduce, State: -1, Rule: rule}
}

// AcceptAction creates an accept action.
func AcceptAction(rule RuleID) Action {
	return Action{Kind: Accept, State: -1, Rule: rule}
}

func (a Action) String() string {
	switch a.Kind {
	case Shift:
		return fmt.Sprintf("s%d", a.State)
	case Reduce:
		return fmt.Sprintf("r%d", a.Rule)
	case Accept:
		return "acc"
	}
	return ""
}

// State is a row of a parse table.
type State[T, N constraints.Ordered] struct {
	Actions   map[T]Action
	EndMarker Action
	Goto      map[N]int
}

func newState[T, N constraints.Ordered]() *State[T, N] {
	return &State[T, N]{
		Actions: make(map[T]Action),
		Goto:    make(map[N]int),
	}
}

// Action returns the action for a lookahead.
func (s *State[T, N]) Action(la Lookahead[T]) Action {
	if la.EndMarker {
		return s.EndMarker
	}
	return s.Actions[la.Terminal]
}

func (s *State[T, N]) set(la Lookahead[T], a Action) {
	if la.EndMarker {
		s.EndMarker = a
	} else {
		s.Actions[la.Terminal] = a
	}
}

// Terminals returns the terminals with an action in s, in ascending order.
func (s *State[T, N]) Terminals() []T {
	terms := maps.Keys(s.Actions)
	slices.Sort(terms)
	return terms
}

// Table is a deterministic LR parse table: ACTION and GOTO entries for every
// state of an automaton. It references its (immutable) grammar, so reductions
// may be resolved to right-hand sides and payloads.
type Table[T, N constraints.Ordered, A any] struct {
	G       *Grammar[T, N, A]
	States  []*State[T, N]
	Initial int
}

// Action returns the action for state and lookahead.
func (t *Table[T, N, A]) Action(state int, la Lookahead[T]) Action {
	if state < 0 || state >= len(t.States) {
		return Action{}
	}
	return t.States[state].Action(la)
}

// Goto returns the GOTO entry for state and non-terminal n.
func (t *Table[T, N, A]) Goto(state int, n N) (int, bool) {
	if state < 0 || state >= len(t.States) {
		return -1, false
	}
	to, ok := t.States[state].Goto[n]
	return to, ok
}

// Rule returns the production for a rule ID of a Reduce or Accept action.
func (t *Table[T, N, A]) Rule(id RuleID) Production[T, N, A] {
	return t.G.Rule(id)
}

// --- Building tables -------------------------------------------------------

type tableBuilder[T, N constraints.Ordered, A any] struct {
	g      *Grammar[T, N, A]
	conf   *config[T, N, A]
	states []*State[T, N]
}

func newTableBuilder[T, N constraints.Ordered, A any](g *Grammar[T, N, A], size int,
	opts []Option[T, N, A]) *tableBuilder[T, N, A] {
	//
	tb := &tableBuilder[T, N, A]{
		g:      g,
		conf:   configure(opts),
		states: make([]*State[T, N], size),
	}
	for i := range tb.states {
		tb.states[i] = newState[T, N]()
	}
	return tb
}

// setAction enters an action into the table. If the cell is already occupied by
// a different action, the resolver is consulted; without a decision the conflict
// is returned.
func (tb *tableBuilder[T, N, A]) setAction(state int, la Lookahead[T], a Action) error {
	s := tb.states[state]
	old := s.Action(la)
	if old.Kind == NoAction || old == a {
		s.set(la, a)
		return nil
	}
	c := newConflict(tb.g, state, la, old, a)
	if tb.conf.resolver != nil {
		if win, ok := tb.conf.resolver(tb.g, c); ok {
			tracer().Infof("resolved %v: %v", c, win)
			s.set(la, win)
			return nil
		}
	}
	tracer().Errorf("%v", c)
	return c
}

// reduceOrAccept enters the action for a completed item under lookahead la.
func (tb *tableBuilder[T, N, A]) reduceOrAccept(state int, i Item, la Lookahead[T]) error {
	if tb.g.isAccepting(i) {
		if !la.EndMarker {
			return nil // start rule followed by more input, not an accept
		}
		return tb.setAction(state, la, AcceptAction(i.Rule))
	}
	return tb.setAction(state, la, ReduceAction(i.Rule))
}

// transitions enters shifts and gotos for the edges of a state.
func (tb *tableBuilder[T, N, A]) transitions(state int, edges []Edge[T, N]) error {
	for _, e := range edges {
		if e.Label.IsTerminal() {
			if err := tb.setAction(state, LA(e.Label.Terminal()), ShiftAction(e.To)); err != nil {
				return err
			}
		} else {
			tb.states[state].Goto[e.Label.Nonterminal()] = e.To
		}
	}
	return nil
}

func (tb *tableBuilder[T, N, A]) table() *Table[T, N, A] {
	return &Table[T, N, A]{G: tb.g, States: tb.states, Initial: 0}
}

// BuildTable constructs an SLR(1) table from the LR(0) automaton of g and the
// FOLLOW sets of g. Shift and goto entries come from the automaton's
// transitions; for every completed item [A ➞ α •] a reduction is entered for all
// lookaheads in FOLLOW(A). Completing the start rule on end of input is an
// accept.
//
// The first conflict aborts construction and is returned as a *Conflict,
// unless a resolver (see WithResolver) decides it.
func BuildTable[T, N constraints.Ordered, A any](g *Grammar[T, N, A], A0 *LR0Automaton[T, N],
	follow *FollowSets[T, N], opts ...Option[T, N, A]) (*Table[T, N, A], error) {
	//
	if follow == nil {
		follow = g.FollowSets(nil)
	} else if follow.owner != interface{}(g) {
		panic("FOLLOW sets have been computed for a different grammar")
	}
	tracer().Debugf("=== build SLR(1) table ==========================================")
	tb := newTableBuilder(g, len(A0.States), opts)
	for _, s := range A0.States {
		if err := tb.transitions(s.ID, s.Edges); err != nil {
			return nil, err
		}
		for _, i := range g.completeItems(s.Items.Items()) {
			if g.isAccepting(i) {
				if err := tb.reduceOrAccept(s.ID, i, EOF[T]()); err != nil {
					return nil, err
				}
				continue
			}
			lhs := g.rule(i.Rule).lhs
			for _, la := range follow.lookaheads(lhs) {
				if err := tb.reduceOrAccept(s.ID, i, la); err != nil {
					return nil, err
				}
			}
		}
	}
	return tb.table(), nil
}

// SLR1Table builds the LR(0) automaton and FOLLOW sets of g and constructs an
// SLR(1) table from them. See BuildTable.
func (g *Grammar[T, N, A]) SLR1Table(opts ...Option[T, N, A]) (*Table[T, N, A], error) {
	return BuildTable(g, g.LR0Automaton(), g.FollowSets(nil), opts...)
}

// --- Export ----------------------------------------------------------------

// TableAsHTML exports a table in HTML format, one row per state, with ACTION
// columns for all terminals and end of input, followed by GOTO columns.
func TableAsHTML[T, N constraints.Ordered, A any](t *Table[T, N, A], w io.Writer) error {
	terms := t.G.Terminals()
	nonterms := t.G.Nonterminals()
	write := func(s string) error {
		_, err := io.WriteString(w, s)
		return err
	}
	if err := write("<html><body>\n<table border=1 cellspacing=0 cellpadding=5>\n<tr bgcolor=#cccccc><td></td>\n"); err != nil {
		return err
	}
	for _, a := range terms {
		write(fmt.Sprintf("<td>%v</td>", a))
	}
	write("<td>#eof</td>")
	for _, n := range nonterms {
		write(fmt.Sprintf("<td><i>%v</i></td>", n))
	}
	write("</tr>\n")
	for id, s := range t.States {
		write(fmt.Sprintf("<tr><td>state %d</td>\n", id))
		for _, a := range terms {
			write(htmlCell(s.Actions[a].String()))
		}
		write(htmlCell(s.EndMarker.String()))
		for _, n := range nonterms {
			td := ""
			if to, ok := s.Goto[n]; ok {
				td = fmt.Sprintf("%d", to)
			}
			write(htmlCell(td))
		}
		write("</tr>\n")
	}
	return write("</table></body></html>\n")
}

func htmlCell(td string) string {
	if td == "" {
		td = "&nbsp;"
	}
	return "<td>" + td + "</td>\n"
}
