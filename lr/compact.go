package lr

import (
	"github.com/npillmayer/lrtables/lr/sparse"
	"golang.org/x/exp/constraints"
)

// CompactTable is a parse table stored in two sparse matrices. ACTION has one
// column per terminal, in terminal order, plus a last column for end of input.
// GOTO has one column per non-terminal.
type CompactTable[T, N constraints.Ordered, A any] struct {
	G        *Grammar[T, N, A]
	Initial  int
	terms    []T
	termCol  map[T]int
	ntCol    map[N]int
	actions  *sparse.IntMatrix
	gototab  *sparse.IntMatrix
	stateCnt int
}

// Actions are encoded as (state or rule) << 2 | kind.
func encodeAction(a Action) int32 {
	switch a.Kind {
	case Shift:
		return int32(a.State)<<2 | int32(Shift)
	case Reduce, Accept:
		return int32(a.Rule)<<2 | int32(a.Kind)
	}
	return sparse.DefaultNullValue
}

func decodeAction(v int32) Action {
	if v == sparse.DefaultNullValue {
		return Action{}
	}
	kind := ActionKind(v & 3)
	if kind == Shift {
		return ShiftAction(int(v >> 2))
	}
	if kind == Accept {
		return AcceptAction(RuleID(v >> 2))
	}
	return ReduceAction(RuleID(v >> 2))
}

// Compact converts t to a compact table.
func (t *Table[T, N, A]) Compact() *CompactTable[T, N, A] {
	ct := &CompactTable[T, N, A]{
		G:        t.G,
		Initial:  t.Initial,
		terms:    t.G.Terminals(),
		termCol:  make(map[T]int),
		ntCol:    make(map[N]int),
		stateCnt: len(t.States),
	}
	for j, a := range ct.terms {
		ct.termCol[a] = j
	}
	for j, n := range t.G.Nonterminals() {
		ct.ntCol[n] = j
	}
	eof := len(ct.terms)
	ct.actions = sparse.NewIntMatrix(len(t.States), eof+1, sparse.DefaultNullValue)
	ct.gototab = sparse.NewIntMatrix(len(t.States), len(ct.ntCol), sparse.DefaultNullValue)
	for i, s := range t.States {
		for a, action := range s.Actions {
			ct.actions.Set(i, ct.termCol[a], encodeAction(action))
		}
		if s.EndMarker.Kind != NoAction {
			ct.actions.Set(i, eof, encodeAction(s.EndMarker))
		}
		for n, to := range s.Goto {
			ct.gototab.Set(i, ct.ntCol[n], int32(to))
		}
	}
	tracer().Infof("compact table: %d actions, %d gotos", ct.actions.ValueCount(), ct.gototab.ValueCount())
	return ct
}

// StateCount returns the number of states (rows) of the table.
func (ct *CompactTable[T, N, A]) StateCount() int {
	return ct.stateCnt
}

func (ct *CompactTable[T, N, A]) column(la Lookahead[T]) (int, bool) {
	if la.EndMarker {
		return len(ct.terms), true
	}
	j, ok := ct.termCol[la.Terminal]
	return j, ok
}

// Action returns the action for a state and a lookahead. Unknown terminals
// yield NoAction.
func (ct *CompactTable[T, N, A]) Action(state int, la Lookahead[T]) Action {
	j, ok := ct.column(la)
	if !ok || state < 0 || state >= ct.stateCnt {
		return Action{}
	}
	return decodeAction(ct.actions.Value(state, j))
}

// Goto returns the GOTO entry for state and non-terminal n.
func (ct *CompactTable[T, N, A]) Goto(state int, n N) (int, bool) {
	j, ok := ct.ntCol[n]
	if !ok || state < 0 || state >= ct.stateCnt {
		return -1, false
	}
	v := ct.gototab.Value(state, j)
	if v == ct.gototab.NullValue() {
		return -1, false
	}
	return int(v), true
}

// Expected lists the lookaheads with an action in state, in column order.
func (ct *CompactTable[T, N, A]) Expected(state int) []Lookahead[T] {
	if state < 0 || state >= ct.stateCnt {
		return nil
	}
	var las []Lookahead[T]
	ct.actions.EachInRow(state, func(j int, _ int32) {
		if j == len(ct.terms) {
			las = append(las, EOF[T]())
		} else {
			las = append(las, LA(ct.terms[j]))
		}
	})
	return las
}
