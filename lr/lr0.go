package lr

import (
	"fmt"
	"io"
	"strings"

	"github.com/emirpasic/gods/queues/linkedlistqueue"
	"github.com/npillmayer/schuko/gconf"
	"golang.org/x/exp/constraints"
)

// Edge is a transition of an automaton, labeled with a grammar symbol.
type Edge[T, N constraints.Ordered] struct {
	Label Symbol[T, N]
	To    int
}

// LR0State is a state of the characteristic finite state machine (CFSM).
type LR0State[T, N constraints.Ordered] struct {
	ID     int
	Items  ItemSet
	Edges  []Edge[T, N] // in order of first appearance of the label in Items
	Accept bool         // contains a completed start item
}

// Goto returns the target state of the transition labeled X.
func (s *LR0State[T, N]) Goto(X Symbol[T, N]) (int, bool) {
	for _, e := range s.Edges {
		if e.Label == X {
			return e.To, true
		}
	}
	return -1, false
}

// LR0Automaton is the canonical collection of LR(0) item sets together with
// its GOTO transitions. States are numbered in order of discovery, the start
// state has ID 0.
type LR0Automaton[T, N constraints.Ordered] struct {
	States []*LR0State[T, N]
	Start  int
	render func(Item) string
}

// startKernel returns the items of the start state before closure.
func (g *Grammar[T, N, A]) startKernel() []Item {
	if g.IsAugmented() {
		return []Item{{Rule: g.augmented}}
	}
	kernel := make([]Item, 0, len(g.byLHS[g.startInx]))
	for _, r := range g.byLHS[g.startInx] {
		kernel = append(kernel, Item{Rule: r})
	}
	return kernel
}

// isAccepting checks if an item completes a parse.
func (g *Grammar[T, N, A]) isAccepting(i Item) bool {
	if !g.IsComplete(i) {
		return false
	}
	if g.IsAugmented() {
		return i.Rule == g.augmented
	}
	return g.isStartRule(i.Rule)
}

// LR0Automaton constructs the characteristic finite state machine for g.
//
// States are explored breadth first. For every state, transitions are
// created for the symbols after the dot in order of their first appearance
// in the state's item set; equal item sets are merged into a single state.
func (g *Grammar[T, N, A]) LR0Automaton() *LR0Automaton[T, N] {
	tracer().Debugf("=== build CFSM ==================================================")
	dump := gconf.GetBool("lr-dump-states")
	A0 := &LR0Automaton[T, N]{render: g.ItemString}
	known := make(map[string][]int)
	addState := func(items ItemSet) *LR0State[T, N] {
		key := items.Key()
		for _, id := range known[key] {
			if A0.States[id].Items.Equals(items) {
				return A0.States[id]
			}
		}
		s := &LR0State[T, N]{ID: len(A0.States), Items: items}
		for _, i := range items.Items() {
			if g.isAccepting(i) {
				s.Accept = true
			}
		}
		A0.States = append(A0.States, s)
		known[key] = append(known[key], s.ID)
		if dump {
			tracer().Debugf("state %d:\n%s", s.ID, g.ItemSetString(items))
		}
		return s
	}
	queue := linkedlistqueue.New()
	s0 := addState(g.Closure(g.startKernel()...))
	queue.Enqueue(s0)
	for !queue.Empty() {
		x, _ := queue.Dequeue()
		s := x.(*LR0State[T, N])
		for _, X := range g.nextSymbols(s.Items.Items()) {
			gotoset := g.Goto(s.Items, X)
			n := len(A0.States)
			target := addState(gotoset)
			if target.ID == n {
				queue.Enqueue(target)
			}
			tracer().Debugf("goto(%d, %v) = %d", s.ID, X, target.ID)
			s.Edges = append(s.Edges, Edge[T, N]{Label: X, To: target.ID})
		}
	}
	tracer().Infof("CFSM has %d states", len(A0.States))
	return A0
}

// Size returns the number of states.
func (A0 *LR0Automaton[T, N]) Size() int {
	return len(A0.States)
}

// Goto returns the target state of a transition from state with symbol X.
func (A0 *LR0Automaton[T, N]) Goto(state int, X Symbol[T, N]) (int, bool) {
	if state < 0 || state >= len(A0.States) {
		return -1, false
	}
	return A0.States[state].Goto(X)
}

// ToGraphViz exports the CFSM to the Graphviz Dot format.
func (A0 *LR0Automaton[T, N]) ToGraphViz(w io.Writer) error {
	var b strings.Builder
	b.WriteString(`digraph {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [shape=Mrecord, style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	for _, s := range A0.States {
		b.WriteString(fmt.Sprintf("s%03d [fillcolor=%s label=\"{%03d | %s}\"]\n",
			s.ID, nodecolor(s.Accept), s.ID, A0.itemsForGraphviz(s.Items)))
	}
	for _, s := range A0.States {
		for _, e := range s.Edges {
			b.WriteString(fmt.Sprintf("s%03d -> s%03d [label=\"%s\"]\n",
				s.ID, e.To, escapeGraphviz(e.Label.String())))
		}
	}
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func nodecolor(accept bool) string {
	if accept {
		return "lightgray"
	}
	return "white"
}

func (A0 *LR0Automaton[T, N]) itemsForGraphviz(S ItemSet) string {
	var b strings.Builder
	for _, i := range S.Items() {
		b.WriteString(escapeGraphviz(A0.render(i)))
		b.WriteString("\\l")
	}
	return b.String()
}

var graphvizEscaper = strings.NewReplacer(
	`"`, `\"`,
	`{`, `\{`,
	`}`, `\}`,
	`|`, `\|`,
	`<`, `\<`,
	`>`, `\>`,
)

func escapeGraphviz(s string) string {
	return graphvizEscaper.Replace(s)
}
