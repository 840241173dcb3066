package iteratable

// Set is an insertion-ordered set of comparable items. The zero value is not
// usable; create sets with NewSet.
type Set[E comparable] struct {
	items  []E
	index  map[E]int
	cursor int // position of the next item to visit; 0 means "before first"
}

// NewSet creates an empty set, optionally with room for capacity items.
func NewSet[E comparable](capacity int) *Set[E] {
	if capacity < 0 {
		capacity = 0
	}
	return &Set[E]{
		items: make([]E, 0, capacity),
		index: make(map[E]int, capacity),
	}
}

// Add adds items to the set. It returns true if at least one of them
// had not been present before.
func (s *Set[E]) Add(items ...E) bool {
	added := false
	for _, e := range items {
		if _, ok := s.index[e]; ok {
			continue
		}
		s.index[e] = len(s.items)
		s.items = append(s.items, e)
		added = true
	}
	return added
}

// Contains checks if item e is present.
func (s *Set[E]) Contains(e E) bool {
	_, ok := s.index[e]
	return ok
}

// Size returns the number of items in s.
func (s *Set[E]) Size() int {
	return len(s.items)
}

// Empty is true for a set of size 0.
func (s *Set[E]) Empty() bool {
	return len(s.items) == 0
}

// Values returns a copy of the items, in order of insertion.
func (s *Set[E]) Values() []E {
	vals := make([]E, len(s.items))
	copy(vals, s.items)
	return vals
}

// First returns the first item inserted. It panics on an empty set.
func (s *Set[E]) First() E {
	return s.items[0]
}

// Copy returns a shallow copy of s, with its iteration reset.
func (s *Set[E]) Copy() *Set[E] {
	c := NewSet[E](len(s.items))
	c.Add(s.items...)
	return c
}

// Union adds all items of other to s and returns s.
func (s *Set[E]) Union(other *Set[E]) *Set[E] {
	if other != nil {
		s.Add(other.items...)
	}
	return s
}

// Difference returns a new set with all the items of s not contained in other.
func (s *Set[E]) Difference(other *Set[E]) *Set[E] {
	d := NewSet[E](0)
	for _, e := range s.items {
		if other == nil || !other.Contains(e) {
			d.Add(e)
		}
	}
	return d
}

// Equals checks if s and other contain the same items, regardless of their
// order of insertion.
func (s *Set[E]) Equals(other *Set[E]) bool {
	if s == other {
		return true
	}
	if other == nil || len(s.items) != len(other.items) {
		return false
	}
	for _, e := range s.items {
		if !other.Contains(e) {
			return false
		}
	}
	return true
}

// --- Iteration -------------------------------------------------------------

// IterateOnce starts a new iteration over the items of s.
func (s *Set[E]) IterateOnce() {
	s.cursor = 0
}

// Next moves to the next item. Items added after the start of the iteration
// will be visited, too.
func (s *Set[E]) Next() bool {
	if s.cursor >= len(s.items) {
		return false
	}
	s.cursor++
	return true
}

// Item returns the current item of an iteration.
func (s *Set[E]) Item() E {
	return s.items[s.cursor-1]
}
