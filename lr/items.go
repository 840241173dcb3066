package lr

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cnf/structhash"
	"github.com/npillmayer/lrtables/lr/iteratable"
)

// Item is an LR(0) item: a rule with a dot position 0 ≤ Dot ≤ len(body).
// Items are handles into the rule arena of a grammar.
type Item struct {
	Rule RuleID
	Dot  int
}

// Advance returns the item with the dot moved one symbol to the right.
func (i Item) Advance() Item {
	return Item{Rule: i.Rule, Dot: i.Dot + 1}
}

func (i Item) less(j Item) bool {
	if i.Rule != j.Rule {
		return i.Rule < j.Rule
	}
	return i.Dot < j.Dot
}

// ItemSet is a set of items which remembers the order of insertion.
// Two item sets are equal if they contain the same items, regardless of order.
type ItemSet struct {
	items *iteratable.Set[Item]
}

// NewItemSet creates an item set containing the given items.
func NewItemSet(items ...Item) ItemSet {
	S := ItemSet{items: iteratable.NewSet[Item](len(items))}
	S.items.Add(items...)
	return S
}

// Items returns the items of S in order of insertion.
func (S ItemSet) Items() []Item {
	if S.items == nil {
		return nil
	}
	return S.items.Values()
}

// Size returns the number of items in S.
func (S ItemSet) Size() int {
	if S.items == nil {
		return 0
	}
	return S.items.Size()
}

// Empty is true for an item set without items.
func (S ItemSet) Empty() bool {
	return S.Size() == 0
}

// Contains checks if S contains item i.
func (S ItemSet) Contains(i Item) bool {
	return S.items != nil && S.items.Contains(i)
}

// Equals checks if S and other contain the same items.
func (S ItemSet) Equals(other ItemSet) bool {
	if S.Size() != other.Size() {
		return false
	}
	if S.Size() == 0 {
		return true
	}
	return S.items.Equals(other.items)
}

// sorted returns the items of S ordered by rule and dot.
func (S ItemSet) sorted() []Item {
	items := S.Items()
	sort.Slice(items, func(i, j int) bool { return items[i].less(items[j]) })
	return items
}

type itemSetDigest struct {
	Items []Item
}

// Key returns a canonical key for S. Item sets which are equal have equal keys.
func (S ItemSet) Key() string {
	return digest(itemSetDigest{Items: S.sorted()})
}

func digest(x interface{}) string {
	h, err := structhash.Hash(x, 1)
	if err != nil {
		panic(fmt.Sprintf("cannot hash item set: %v", err))
	}
	return h
}

// Closure computes the closure of a set of items: for every item with a
// non-terminal B after the dot, all items [B ➞ • γ] are added, until nothing
// changes. The result lists the given items first.
func (g *Grammar[T, N, A]) Closure(items ...Item) ItemSet {
	C := NewItemSet(items...)
	g.closure(C)
	return C
}

func (g *Grammar[T, N, A]) closure(C ItemSet) {
	C.items.IterateOnce()
	for C.items.Next() {
		i := C.items.Item()
		B, ok := g.Peek(i)
		if !ok || B.IsTerminal() {
			continue
		}
		for _, r := range g.byLHS[g.ntIndex[B.Nonterminal()]] {
			C.items.Add(Item{Rule: r})
		}
	}
}

// Goto computes the item set reached from S by symbol X: the closure of all
// items of S with X after the dot, with the dot moved over X.
// The result is empty if no item of S expects X.
func (g *Grammar[T, N, A]) Goto(S ItemSet, X Symbol[T, N]) ItemSet {
	kernel := make([]Item, 0, 4)
	for _, i := range S.Items() {
		if B, ok := g.Peek(i); ok && B == X {
			kernel = append(kernel, i.Advance())
		}
	}
	if len(kernel) == 0 {
		return NewItemSet()
	}
	return g.Closure(kernel...)
}

// nextSymbols lists the symbols after the dot of the items of S, in order of
// first appearance.
func (g *Grammar[T, N, A]) nextSymbols(items []Item) []Symbol[T, N] {
	syms := make([]Symbol[T, N], 0, len(items))
	seen := make(map[Symbol[T, N]]bool, len(items))
	for _, i := range items {
		if A, ok := g.Peek(i); ok && !seen[A] {
			seen[A] = true
			syms = append(syms, A)
		}
	}
	return syms
}

// ItemSetString returns a readable representation of an item set, one item per line.
func (g *Grammar[T, N, A]) ItemSetString(S ItemSet) string {
	var b strings.Builder
	for _, i := range S.Items() {
		b.WriteString(g.ItemString(i))
		b.WriteString("\n")
	}
	return b.String()
}

// completeItems filters items with the dot at the end.
func (g *Grammar[T, N, A]) completeItems(items []Item) []Item {
	var complete []Item
	for _, i := range items {
		if g.IsComplete(i) {
			complete = append(complete, i)
		}
	}
	return complete
}
