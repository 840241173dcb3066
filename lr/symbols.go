package lr

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"golang.org/x/exp/constraints"
)

// Symbol is a grammar symbol, either a terminal or a non-terminal.
// Symbols are values and may be compared with ==.
type Symbol[T, N constraints.Ordered] struct {
	t    T
	n    N
	term bool
}

// Term creates a terminal symbol.
func Term[T, N constraints.Ordered](t T) Symbol[T, N] {
	return Symbol[T, N]{t: t, term: true}
}

// NonTerm creates a non-terminal symbol.
func NonTerm[T, N constraints.Ordered](n N) Symbol[T, N] {
	return Symbol[T, N]{n: n}
}

// IsTerminal returns true if this symbol represents a terminal.
func (A Symbol[T, N]) IsTerminal() bool {
	return A.term
}

// Terminal returns the terminal value of A. For non-terminals it returns
// the zero value of T.
func (A Symbol[T, N]) Terminal() T {
	return A.t
}

// Nonterminal returns the non-terminal value of A. For terminals it returns
// the zero value of N.
func (A Symbol[T, N]) Nonterminal() N {
	return A.n
}

// Compare orders symbols: terminals come before non-terminals, and within
// each kind the order of T or N applies.
func (A Symbol[T, N]) Compare(B Symbol[T, N]) int {
	if A.term != B.term {
		if A.term {
			return -1
		}
		return 1
	}
	if A.term {
		return compare(A.t, B.t)
	}
	return compare(A.n, B.n)
}

func (A Symbol[T, N]) String() string {
	if A.term {
		return fmt.Sprintf("%v", A.t)
	}
	return fmt.Sprintf("%v", A.n)
}

func compare[K constraints.Ordered](a, b K) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// comparator creates a gods comparator for an ordered type.
func comparator[K constraints.Ordered]() utils.Comparator {
	return func(a, b interface{}) int {
		return compare(a.(K), b.(K))
	}
}

// --- Lookaheads ------------------------------------------------------------

// Lookahead is an input symbol a parser may see next: either a terminal or the
// end-of-input marker.
type Lookahead[T constraints.Ordered] struct {
	Terminal  T
	EndMarker bool
}

// LA creates a lookahead for terminal t.
func LA[T constraints.Ordered](t T) Lookahead[T] {
	return Lookahead[T]{Terminal: t}
}

// EOF creates the end-of-input lookahead.
func EOF[T constraints.Ordered]() Lookahead[T] {
	return Lookahead[T]{EndMarker: true}
}

func (la Lookahead[T]) compare(other Lookahead[T]) int {
	if la.EndMarker != other.EndMarker {
		if la.EndMarker {
			return 1
		}
		return -1
	}
	return compare(la.Terminal, other.Terminal)
}

func (la Lookahead[T]) String() string {
	if la.EndMarker {
		return "#eof"
	}
	return fmt.Sprintf("%v", la.Terminal)
}

// --- Sets of terminals -----------------------------------------------------

// TermSet is an ordered set of terminals. Iteration over it is deterministic.
type TermSet[T constraints.Ordered] struct {
	set *treeset.Set
}

// NewTermSet creates a set of terminals.
func NewTermSet[T constraints.Ordered](terms ...T) *TermSet[T] {
	S := &TermSet[T]{set: treeset.NewWith(comparator[T]())}
	for _, t := range terms {
		S.set.Add(t)
	}
	return S
}

// add returns true if t was not present before.
func (S *TermSet[T]) add(t T) bool {
	if S.set.Contains(t) {
		return false
	}
	S.set.Add(t)
	return true
}

// union adds all terminals of other and reports if S has grown.
func (S *TermSet[T]) union(other *TermSet[T]) bool {
	if other == nil || S == other {
		return false
	}
	grown := false
	for _, x := range other.set.Values() {
		if !S.set.Contains(x) {
			S.set.Add(x)
			grown = true
		}
	}
	return grown
}

// copy returns an independent copy of S.
func (S *TermSet[T]) copy() *TermSet[T] {
	c := &TermSet[T]{set: treeset.NewWith(comparator[T]())}
	c.set.Add(S.set.Values()...)
	return c
}

// Contains checks if t is a member of S.
func (S *TermSet[T]) Contains(t T) bool {
	return S != nil && S.set.Contains(t)
}

// Size returns the number of terminals in S.
func (S *TermSet[T]) Size() int {
	if S == nil {
		return 0
	}
	return S.set.Size()
}

// Values returns the terminals of S in ascending order.
func (S *TermSet[T]) Values() []T {
	if S == nil {
		return nil
	}
	vals := make([]T, 0, S.set.Size())
	it := S.set.Iterator()
	for it.Next() {
		vals = append(vals, it.Value().(T))
	}
	return vals
}

// Equals checks if two sets contain the same terminals.
func (S *TermSet[T]) Equals(other *TermSet[T]) bool {
	if S.Size() != other.Size() {
		return false
	}
	for _, t := range S.Values() {
		if !other.Contains(t) {
			return false
		}
	}
	return true
}

func (S *TermSet[T]) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i, t := range S.Values() {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(fmt.Sprintf("%v", t))
	}
	b.WriteString("}")
	return b.String()
}
