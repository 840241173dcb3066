/*
Package sparse implements a simple type for sparse integer matrices.
It is mainly used for compact parser tables (GOTO-table and ACTION-table).

This implementation stores triplets (row, column, value), ordered by row and
column (COO, a.k.a. triplet-encoding). Lookup uses binary search.

   https://medium.com/@jmaxg3/101-ways-to-store-a-sparse-matrix-c7f2bf15a229
   https://www.coin-or.org/Ipopt/documentation/node38.html


License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sparse

import (
	"fmt"
	"sort"
	"strings"
)

// IntMatrix is a type for a sparse matrix of int32 values. Construct with
//
//     M := NewIntMatrix(10, 10, -1)  // last parameter is M's null-value
//
// Now
//
//     M.Set(2, 3, 4711)              // set a value
//     v := M.Value(2, 3)             // returns 4711
//     cnt := M.ValueCount()          // returns 1 (one position set)
//     v = M.Value(9, 9)              // returns -1, i.e. the null-value
//
// Setting a position to the null-value removes it.
type IntMatrix struct {
	values  []triplet
	rowcnt  int
	colcnt  int
	nullval int32
}

type triplet struct {
	row, col int
	value    int32
}

// DefaultNullValue is the default empty-value for matrices (min int32).
const DefaultNullValue = -2147483648

// NewIntMatrix creates a new matrix for int32, size m x n. The 3rd argument is a null-value,
// indicating empty entries (use DefaultNullValue if you haven't any specific
// requirements).
func NewIntMatrix(m, n int, nullValue int32) *IntMatrix {
	return &IntMatrix{
		values:  []triplet{},
		rowcnt:  m,
		colcnt:  n,
		nullval: nullValue,
	}
}

// M returns the row count.
func (m *IntMatrix) M() int {
	return m.rowcnt
}

// N returns the column count.
func (m *IntMatrix) N() int {
	return m.colcnt
}

// NullValue returns this matrix' null value
func (m *IntMatrix) NullValue() int32 {
	return m.nullval
}

// ValueCount returns the number of non-null values in the matrix.
func (m *IntMatrix) ValueCount() int {
	return len(m.values)
}

// search returns the position of (i,j) or the position where it would be inserted.
func (m *IntMatrix) search(i, j int) (int, bool) {
	k := sort.Search(len(m.values), func(k int) bool {
		t := m.values[k]
		return t.row > i || t.row == i && t.col >= j
	})
	return k, k < len(m.values) && m.values[k].row == i && m.values[k].col == j
}

// Value returns the value at position (i,j), or NullValue
func (m *IntMatrix) Value(i, j int) int32 {
	if k, found := m.search(i, j); found {
		return m.values[k].value
	}
	return m.nullval
}

// Set a value in the matrix at position (i,j). Indices outside of the matrix
// dimensions will panic.
func (m *IntMatrix) Set(i, j int, value int32) *IntMatrix {
	if i < 0 || i >= m.rowcnt || j < 0 || j >= m.colcnt {
		panic(fmt.Sprintf("sparse.IntMatrix.Set(%d,%d) out of bounds %dx%d", i, j, m.rowcnt, m.colcnt))
	}
	k, found := m.search(i, j)
	switch {
	case found && value == m.nullval:
		m.values = append(m.values[:k], m.values[k+1:]...)
	case found:
		m.values[k].value = value
	case value != m.nullval:
		m.values = append(m.values, triplet{})
		copy(m.values[k+1:], m.values[k:])
		m.values[k] = triplet{row: i, col: j, value: value}
	}
	return m
}

// EachInRow calls f for every non-null value in row i, in column order.
func (m *IntMatrix) EachInRow(i int, f func(j int, value int32)) {
	k, _ := m.search(i, 0)
	for ; k < len(m.values) && m.values[k].row == i; k++ {
		f(m.values[k].col, m.values[k].value)
	}
}

func (m *IntMatrix) String() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("IntMatrix %dx%d {", m.rowcnt, m.colcnt))
	for _, t := range m.values {
		b.WriteString(fmt.Sprintf(" (%d,%d)=%d", t.row, t.col, t.value))
	}
	b.WriteString(" }")
	return b.String()
}
