package lr

import (
	"sort"

	"github.com/emirpasic/gods/queues/linkedlistqueue"
	"github.com/npillmayer/lrtables/lr/iteratable"
	"github.com/npillmayer/schuko/gconf"
	"golang.org/x/exp/constraints"
)

// LR1Item is an LR(0) item together with a lookahead.
type LR1Item[T constraints.Ordered] struct {
	Item
	Lookahead Lookahead[T]
}

// LR1State is a state of a canonical LR(1) or an LALR(1) automaton.
type LR1State[T, N constraints.Ordered] struct {
	ID    int
	Items []LR1Item[T] // in order of insertion
	Edges []Edge[T, N]
}

// Core returns the LR(0) items of s, without lookaheads.
func (s *LR1State[T, N]) Core() ItemSet {
	core := NewItemSet()
	for _, i := range s.Items {
		core.items.Add(i.Item)
	}
	return core
}

// LR1Automaton is a collection of LR(1) item sets with transitions. The start
// state has ID 0.
type LR1Automaton[T, N constraints.Ordered] struct {
	States []*LR1State[T, N]
	Start  int
}

// Size returns the number of states.
func (A1 *LR1Automaton[T, N]) Size() int {
	return len(A1.States)
}

type lr1Digest[T constraints.Ordered] struct {
	Items []LR1Item[T]
}

func sortLR1Items[T constraints.Ordered](items []LR1Item[T]) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Item != items[j].Item {
			return items[i].Item.less(items[j].Item)
		}
		return items[i].Lookahead.compare(items[j].Lookahead) < 0
	})
}

func lr1Key[T constraints.Ordered](S *iteratable.Set[LR1Item[T]]) string {
	items := S.Values()
	sortLR1Items(items)
	return digest(lr1Digest[T]{Items: items})
}

// closure1 computes the LR(1) closure: for an item [A ➞ α • B β, a], items
// [B ➞ • γ, b] are added for every b in FIRST(β a).
func (g *Grammar[T, N, A]) closure1(first *FirstSets[T, N], kernel []LR1Item[T]) *iteratable.Set[LR1Item[T]] {
	C := iteratable.NewSet[LR1Item[T]](len(kernel))
	C.Add(kernel...)
	C.IterateOnce()
	for C.Next() {
		i := C.Item()
		B, ok := g.Peek(i.Item)
		if !ok || B.IsTerminal() {
			continue
		}
		beta := g.rule(i.Rule).rhs.Body[i.Dot+1:]
		terms, nullable := first.OfSequence(beta)
		las := make([]Lookahead[T], 0, terms.Size()+1)
		for _, t := range terms.Values() {
			las = append(las, LA(t))
		}
		if nullable {
			las = append(las, i.Lookahead)
		}
		for _, r := range g.byLHS[g.ntIndex[B.Nonterminal()]] {
			for _, la := range las {
				C.Add(LR1Item[T]{Item: Item{Rule: r}, Lookahead: la})
			}
		}
	}
	return C
}

func (g *Grammar[T, N, A]) goto1(first *FirstSets[T, N], items []LR1Item[T], X Symbol[T, N]) *iteratable.Set[LR1Item[T]] {
	var kernel []LR1Item[T]
	for _, i := range items {
		if B, ok := g.Peek(i.Item); ok && B == X {
			kernel = append(kernel, LR1Item[T]{Item: i.Advance(), Lookahead: i.Lookahead})
		}
	}
	return g.closure1(first, kernel)
}

// LR1Automaton constructs the canonical collection of LR(1) item sets for g.
func (g *Grammar[T, N, A]) LR1Automaton() *LR1Automaton[T, N] {
	tracer().Debugf("=== build LR(1) automaton =======================================")
	dump := gconf.GetBool("lr-dump-states")
	first := g.FirstSets()
	A1 := &LR1Automaton[T, N]{}
	known := make(map[string][]int)
	addState := func(S *iteratable.Set[LR1Item[T]]) (*LR1State[T, N], bool) {
		key := lr1Key(S)
		for _, id := range known[key] {
			other := A1.States[id]
			if len(other.Items) == S.Size() && S.Difference(setOf(other.Items)).Empty() {
				return other, false
			}
		}
		s := &LR1State[T, N]{ID: len(A1.States), Items: S.Values()}
		A1.States = append(A1.States, s)
		known[key] = append(known[key], s.ID)
		if dump {
			for _, i := range s.Items {
				tracer().Debugf("state %d: %s, %v", s.ID, g.ItemString(i.Item), i.Lookahead)
			}
		}
		return s, true
	}
	kernel := make([]LR1Item[T], 0, 4)
	for _, i := range g.startKernel() {
		kernel = append(kernel, LR1Item[T]{Item: i, Lookahead: EOF[T]()})
	}
	s0, _ := addState(g.closure1(first, kernel))
	queue := linkedlistqueue.New()
	queue.Enqueue(s0)
	for !queue.Empty() {
		x, _ := queue.Dequeue()
		s := x.(*LR1State[T, N])
		for _, X := range g.nextSymbols(itemsOf(s.Items)) {
			target, isNew := addState(g.goto1(first, s.Items, X))
			if isNew {
				queue.Enqueue(target)
			}
			s.Edges = append(s.Edges, Edge[T, N]{Label: X, To: target.ID})
		}
	}
	tracer().Infof("LR(1) automaton has %d states", len(A1.States))
	return A1
}

func setOf[T constraints.Ordered](items []LR1Item[T]) *iteratable.Set[LR1Item[T]] {
	S := iteratable.NewSet[LR1Item[T]](len(items))
	S.Add(items...)
	return S
}

func itemsOf[T constraints.Ordered](items []LR1Item[T]) []Item {
	lr0 := make([]Item, len(items))
	for k, i := range items {
		lr0[k] = i.Item
	}
	return lr0
}

// LALR1 merges the states of a canonical LR(1) automaton which have equal
// cores. Merged states are numbered in order of the first canonical state
// with a given core.
func (A1 *LR1Automaton[T, N]) LALR1() *LR1Automaton[T, N] {
	merged := &LR1Automaton[T, N]{}
	byCore := make(map[string]int)
	mapping := make([]int, len(A1.States))
	sets := make([]*iteratable.Set[LR1Item[T]], 0, len(A1.States))
	for _, s := range A1.States {
		key := s.Core().Key()
		id, ok := byCore[key]
		if !ok {
			id = len(merged.States)
			byCore[key] = id
			merged.States = append(merged.States, &LR1State[T, N]{ID: id})
			sets = append(sets, iteratable.NewSet[LR1Item[T]](len(s.Items)))
			for _, e := range s.Edges {
				merged.States[id].Edges = append(merged.States[id].Edges, e)
			}
		}
		sets[id].Add(s.Items...)
		mapping[s.ID] = id
	}
	for id, s := range merged.States {
		s.Items = sets[id].Values()
		for k := range s.Edges {
			s.Edges[k].To = mapping[s.Edges[k].To]
		}
	}
	merged.Start = mapping[A1.Start]
	tracer().Infof("LALR(1) automaton has %d states", len(merged.States))
	return merged
}

// BuildLR1Table constructs a table from an LR(1) automaton of g, either
// canonical or LALR(1). Reductions are entered for the lookaheads of
// completed items. Conflicts are handled as for BuildTable.
func BuildLR1Table[T, N constraints.Ordered, A any](g *Grammar[T, N, A], A1 *LR1Automaton[T, N],
	opts ...Option[T, N, A]) (*Table[T, N, A], error) {
	//
	tb := newTableBuilder(g, len(A1.States), opts)
	for _, s := range A1.States {
		if err := tb.transitions(s.ID, s.Edges); err != nil {
			return nil, err
		}
		for _, i := range s.Items {
			if !g.IsComplete(i.Item) {
				continue
			}
			if err := tb.reduceOrAccept(s.ID, i.Item, i.Lookahead); err != nil {
				return nil, err
			}
		}
	}
	t := tb.table()
	t.Initial = A1.Start
	return t, nil
}

// LR1Table constructs a canonical LR(1) table for g.
func (g *Grammar[T, N, A]) LR1Table(opts ...Option[T, N, A]) (*Table[T, N, A], error) {
	tracer().Debugf("=== build LR(1) table ===========================================")
	return BuildLR1Table(g, g.LR1Automaton(), opts...)
}

// LALR1Table constructs an LALR(1) table for g, by merging the states of the
// canonical LR(1) automaton with equal cores.
func (g *Grammar[T, N, A]) LALR1Table(opts ...Option[T, N, A]) (*Table[T, N, A], error) {
	tracer().Debugf("=== build LALR(1) table ==========================================")
	return BuildLR1Table(g, g.LR1Automaton().LALR1(), opts...)
}
