package lr

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// FirstEntry is the FIRST set of a non-terminal: the terminals which may start
// a derivation from it, and whether it derives the empty string.
type FirstEntry[T constraints.Ordered] struct {
	Terminals *TermSet[T]
	Epsilon   bool
}

// FollowEntry is the FOLLOW set of a non-terminal: the terminals which may
// follow it in a sentential form, and whether end of input may follow it.
type FollowEntry[T constraints.Ordered] struct {
	Terminals *TermSet[T]
	EndMarker bool
}

// FirstSets holds FIRST sets for every non-terminal of a grammar.
type FirstSets[T, N constraints.Ordered] struct {
	owner   interface{} // the grammar these sets have been computed for
	index   map[N]int
	entries []FirstEntry[T]
}

// FollowSets holds FOLLOW sets for every non-terminal of a grammar.
type FollowSets[T, N constraints.Ordered] struct {
	owner   interface{}
	index   map[N]int
	entries []FollowEntry[T]
}

// FirstSets computes FIRST sets for all non-terminals of g by fixed-point
// iteration.
func (g *Grammar[T, N, A]) FirstSets() *FirstSets[T, N] {
	first := make([]FirstEntry[T], len(g.nonterms))
	for i := range first {
		first[i].Terminals = NewTermSet[T]()
	}
	rounds := 0
	for changed := true; changed; rounds++ {
		changed = false
		for _, r := range g.rules {
			if r.lhs < 0 {
				continue
			}
			e := &first[r.lhs]
			nullable := true
			for _, A := range r.rhs.Body {
				if A.IsTerminal() {
					changed = e.Terminals.add(A.Terminal()) || changed
					nullable = false
					break
				}
				B := &first[g.ntIndex[A.Nonterminal()]]
				changed = e.Terminals.union(B.Terminals) || changed
				if !B.Epsilon {
					nullable = false
					break
				}
			}
			if nullable && !e.Epsilon {
				e.Epsilon = true
				changed = true
			}
		}
	}
	tracer().Debugf("FIRST sets stable after %d rounds", rounds)
	return &FirstSets[T, N]{owner: g, index: g.ntIndex, entries: first}
}

// FollowSets computes FOLLOW sets for all non-terminals of g. If first is nil,
// FIRST sets are computed on the fly. first must have been computed for g,
// otherwise FollowSets panics.
func (g *Grammar[T, N, A]) FollowSets(first *FirstSets[T, N]) *FollowSets[T, N] {
	if first == nil {
		first = g.FirstSets()
	} else if first.owner != interface{}(g) {
		panic("FIRST sets have been computed for a different grammar")
	}
	follow := make([]FollowEntry[T], len(g.nonterms))
	for i := range follow {
		follow[i].Terminals = NewTermSet[T]()
	}
	follow[g.startInx].EndMarker = true
	rounds := 0
	for changed := true; changed; rounds++ {
		changed = false
		for _, r := range g.rules {
			if r.lhs < 0 {
				continue // S' ➞ S contributes end of input only
			}
			lhs := &follow[r.lhs]
			tail := NewTermSet[T]() // FIRST of the suffix after the current symbol
			open := true            // suffix is nullable
			body := r.rhs.Body
			for k := len(body) - 1; k >= 0; k-- {
				if body[k].IsTerminal() {
					tail = NewTermSet(body[k].Terminal())
					open = false
					continue
				}
				b := g.ntIndex[body[k].Nonterminal()]
				B := &follow[b]
				changed = B.Terminals.union(tail) || changed
				if open {
					changed = B.Terminals.union(lhs.Terminals) || changed
					if lhs.EndMarker && !B.EndMarker {
						B.EndMarker = true
						changed = true
					}
				}
				fb := first.entries[b]
				if fb.Epsilon {
					tail = tail.copy()
					tail.union(fb.Terminals)
				} else {
					tail = fb.Terminals.copy()
					open = false
				}
			}
		}
	}
	tracer().Debugf("FOLLOW sets stable after %d rounds", rounds)
	return &FollowSets[T, N]{owner: g, index: g.ntIndex, entries: follow}
}

// Of returns the FIRST set of non-terminal n.
func (fs *FirstSets[T, N]) Of(n N) (FirstEntry[T], bool) {
	inx, ok := fs.index[n]
	if !ok {
		return FirstEntry[T]{}, false
	}
	return fs.entries[inx], true
}

// Nullable returns true if n derives the empty string.
func (fs *FirstSets[T, N]) Nullable(n N) bool {
	e, ok := fs.Of(n)
	return ok && e.Epsilon
}

// OfSequence computes FIRST of a sequence of symbols. The boolean result is
// true if the whole sequence derives the empty string.
func (fs *FirstSets[T, N]) OfSequence(syms []Symbol[T, N]) (*TermSet[T], bool) {
	S := NewTermSet[T]()
	for _, A := range syms {
		if A.IsTerminal() {
			S.add(A.Terminal())
			return S, false
		}
		inx, ok := fs.index[A.Nonterminal()]
		if !ok {
			panic(fmt.Sprintf("unknown non-terminal %v", A.Nonterminal()))
		}
		e := fs.entries[inx]
		S.union(e.Terminals)
		if !e.Epsilon {
			return S, false
		}
	}
	return S, true
}

// Equals compares two sets of FIRST sets, entry by entry.
func (fs *FirstSets[T, N]) Equals(other *FirstSets[T, N]) bool {
	if len(fs.entries) != len(other.entries) {
		return false
	}
	for n, inx := range fs.index {
		e, ok := other.Of(n)
		if !ok || e.Epsilon != fs.entries[inx].Epsilon || !e.Terminals.Equals(fs.entries[inx].Terminals) {
			return false
		}
	}
	return true
}

// Of returns the FOLLOW set of non-terminal n.
func (fs *FollowSets[T, N]) Of(n N) (FollowEntry[T], bool) {
	inx, ok := fs.index[n]
	if !ok {
		return FollowEntry[T]{}, false
	}
	return fs.entries[inx], true
}

// Equals compares two sets of FOLLOW sets, entry by entry.
func (fs *FollowSets[T, N]) Equals(other *FollowSets[T, N]) bool {
	if len(fs.entries) != len(other.entries) {
		return false
	}
	for n, inx := range fs.index {
		e, ok := other.Of(n)
		if !ok || e.EndMarker != fs.entries[inx].EndMarker || !e.Terminals.Equals(fs.entries[inx].Terminals) {
			return false
		}
	}
	return true
}

// lookaheads returns the FOLLOW set of the non-terminal with index inx as a
// list of lookaheads, terminals first.
func (fs *FollowSets[T, N]) lookaheads(inx int) []Lookahead[T] {
	e := fs.entries[inx]
	las := make([]Lookahead[T], 0, e.Terminals.Size()+1)
	for _, t := range e.Terminals.Values() {
		las = append(las, LA(t))
	}
	if e.EndMarker {
		las = append(las, EOF[T]())
	}
	return las
}
