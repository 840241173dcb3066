package lr

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestClosure(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtables.lr")
	defer teardown()
	//
	g := makeExprGrammar(t)
	start := g.Rules("S")[0]
	C := g.Closure(Item{Rule: start})
	if C.Size() != 7 {
		t.Errorf("expected closure of start item to contain 7 items, has %d:\n%s", C.Size(), g.ItemSetString(C))
	}
	if C.Items()[0] != (Item{Rule: start}) {
		t.Errorf("expected start item to come first")
	}
	G := g.Goto(C, Term[string, string]("+"))
	if !G.Empty() {
		t.Errorf("expected goto(C, +) to be empty")
	}
}

func TestLR0Automaton(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtables.lr")
	defer teardown()
	//
	g := makeExprGrammar(t)
	A0 := g.LR0Automaton()
	if A0.Size() != 12 {
		t.Fatalf("expected CFSM to have 12 states, has %d", A0.Size())
	}
	for sym, expected := range map[string]int{"E": 1, "T": 2, "F": 3} {
		if to, ok := A0.Goto(0, NonTerm[string](sym)); !ok || to != expected {
			t.Errorf("expected goto(0, %s) = %d, have %d", sym, expected, to)
		}
	}
	if to, _ := A0.Goto(0, Term[string, string]("(")); to != 4 {
		t.Errorf("expected goto(0, '(') = 4, have %d", to)
	}
	if !A0.States[1].Accept {
		t.Errorf("expected state 1 to contain the completed start item")
	}
	var buf bytes.Buffer
	if err := A0.ToGraphViz(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "s000 -> s001 [label=\"E\"]") {
		t.Errorf("expected Graphviz output to contain edge 0 → 1")
	}
}

func TestLR0AutomatonIsDeterministic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtables.lr")
	defer teardown()
	//
	g := makeExprGrammar(t)
	A, B := g.LR0Automaton(), g.LR0Automaton()
	if A.Size() != B.Size() {
		t.Fatalf("expected equal number of states, have %d and %d", A.Size(), B.Size())
	}
	for i := range A.States {
		if !A.States[i].Items.Equals(B.States[i].Items) {
			t.Errorf("item sets of state %d differ", i)
		}
		if len(A.States[i].Edges) != len(B.States[i].Edges) {
			t.Errorf("edges of state %d differ", i)
			continue
		}
		for k, e := range A.States[i].Edges {
			if e != B.States[i].Edges[k] {
				t.Errorf("edge %d of state %d differs", k, i)
			}
		}
	}
}

func TestSLR1Table(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtables.lr")
	defer teardown()
	//
	g := makeExprGrammar(t)
	table, err := g.SLR1Table()
	if err != nil {
		t.Fatal(err)
	}
	start := g.Rules("S")[0]
	tests := []struct {
		state  int
		la     Lookahead[string]
		action Action
	}{
		{0, LA("id"), ShiftAction(5)},
		{0, LA("("), ShiftAction(4)},
		{0, LA("+"), Action{}},
		{1, LA("+"), ShiftAction(6)},
		{1, EOF[string](), AcceptAction(start)},
		{2, LA("*"), ShiftAction(7)},
		{2, LA("+"), ReduceAction(g.Rules("E")[1])},
		{2, EOF[string](), ReduceAction(g.Rules("E")[1])},
		{5, LA(")"), ReduceAction(g.Rules("F")[1])},
		{8, LA(")"), ShiftAction(11)},
	}
	for _, tt := range tests {
		if a := table.Action(tt.state, tt.la); a != tt.action {
			t.Errorf("expected action(%d, %v) = %v, have %v", tt.state, tt.la, tt.action, a)
		}
	}
	if to, ok := table.Goto(4, "E"); !ok || to != 8 {
		t.Errorf("expected goto(4, E) = 8, have %d", to)
	}
	if _, ok := table.Goto(5, "E"); ok {
		t.Errorf("expected no goto(5, E)")
	}
	var buf bytes.Buffer
	if err := TableAsHTML(table, &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "<td>acc</td>") {
		t.Errorf("expected HTML table to contain an accept entry")
	}
}

// Dangling else:
//
//     S ➞ if E then S  |  if E then S else S  |  x
//     E ➞ e
//
func makeDanglingElse(t *testing.T) *Grammar[string, string, int] {
	b := NewGrammarBuilder[string, string, int]("S")
	b.LHS("S").T("if").N("E").T("then").N("S").Payload(2).End()
	b.LHS("S").T("if").N("E").T("then").N("S").T("else").N("S").Payload(1).End()
	b.LHS("S").T("x").End()
	b.LHS("E").T("e").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestShiftReduceConflict(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtables.lr")
	defer teardown()
	//
	g := makeDanglingElse(t)
	table, err := g.SLR1Table()
	if table != nil {
		t.Errorf("expected no table for conflicting grammar")
	}
	var c *Conflict[string, string]
	if !errors.As(err, &c) {
		t.Fatalf("expected a conflict, have %v", err)
	}
	if c.Kind != ShiftReduce {
		t.Errorf("expected shift/reduce conflict, have %v", c.Kind)
	}
	if c.Lookahead != LA("else") {
		t.Errorf("expected conflict on 'else', have %v", c.Lookahead)
	}
	if c.Reduce.LHS != "S" || c.Reduce.ID != g.Rules("S")[0] {
		t.Errorf("expected reduction of S ➞ if E then S, have %v", c.Reduce)
	}
	t.Logf("conflict: %v", c)
}

func TestReduceReduceConflict(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtables.lr")
	defer teardown()
	//
	b := NewGrammarBuilder[string, string, int]("S")
	b.LHS("S").N("A").End()
	b.LHS("S").N("B").End()
	b.LHS("A").T("x").End()
	b.LHS("B").T("x").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	_, err = g.SLR1Table()
	var c *Conflict[string, string]
	if !errors.As(err, &c) {
		t.Fatalf("expected a conflict, have %v", err)
	}
	if c.Kind != ReduceReduce || !c.Lookahead.EndMarker {
		t.Errorf("expected reduce/reduce conflict on end of input, have %v", c)
	}
	if c.Reduce.LHS != "A" || c.Reduce2.LHS != "B" {
		t.Errorf("expected conflict between A ➞ x and B ➞ x, have %v", c)
	}
}

func TestAcceptReduceConflict(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtables.lr")
	defer teardown()
	//
	b := NewGrammarBuilder[string, string, int]("S")
	b.LHS("S").N("A").End()
	b.LHS("S").T("x").End()
	b.LHS("A").T("x").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	_, err = g.SLR1Table()
	var c *Conflict[string, string]
	if !errors.As(err, &c) {
		t.Fatalf("expected a conflict, have %v", err)
	}
	if c.Kind != ReduceReduce || !c.Lookahead.EndMarker {
		t.Errorf("expected reduce/reduce conflict on end of input, have %v", c)
	}
}

func TestResolver(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtables.lr")
	defer teardown()
	//
	g := makeDanglingElse(t)
	prio := func(rhs Rhs[string, string, int]) int { return rhs.Payload }
	table, err := g.SLR1Table(WithResolver(ResolveByPriority(prio)))
	if err != nil {
		t.Fatalf("expected resolver to decide the conflict, have %v", err)
	}
	found := false
	for _, s := range table.States {
		if a := s.Actions["else"]; a.Kind == Shift {
			found = true
		} else if a.Kind == Reduce {
			t.Errorf("expected no reduction on 'else'")
		}
	}
	if !found {
		t.Errorf("expected a shift on 'else'")
	}
}

func TestCompactTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtables.lr")
	defer teardown()
	//
	g := makeExprGrammar(t)
	table, err := g.SLR1Table()
	if err != nil {
		t.Fatal(err)
	}
	ct := table.Compact()
	if ct.StateCount() != len(table.States) {
		t.Fatalf("expected %d states, have %d", len(table.States), ct.StateCount())
	}
	las := []Lookahead[string]{EOF[string]()}
	for _, a := range g.Terminals() {
		las = append(las, LA(a))
	}
	for i := range table.States {
		for _, la := range las {
			if ct.Action(i, la) != table.Action(i, la) {
				t.Errorf("action(%d, %v) differs: %v vs %v", i, la, ct.Action(i, la), table.Action(i, la))
			}
		}
		for _, n := range g.Nonterminals() {
			to1, ok1 := ct.Goto(i, n)
			to2, ok2 := table.Goto(i, n)
			if ok1 != ok2 || (ok1 && to1 != to2) {
				t.Errorf("goto(%d, %s) differs", i, n)
			}
		}
	}
	if a := ct.Action(0, LA("unknown")); a.Kind != NoAction {
		t.Errorf("expected no action for unknown terminal")
	}
	expected := ct.Expected(0)
	if len(expected) != 2 {
		t.Errorf("expected 2 possible lookaheads in state 0, have %v", expected)
	}
}
