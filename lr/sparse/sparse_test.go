package sparse

import "testing"

func TestMatrixSetAndGet(t *testing.T) {
	M := NewIntMatrix(10, 10, DefaultNullValue)
	M.Set(2, 3, 4711).Set(0, 9, 1).Set(2, 1, -5)
	if v := M.Value(2, 3); v != 4711 {
		t.Errorf("expected M(2,3)=4711, is %d", v)
	}
	if v := M.Value(9, 9); v != M.NullValue() {
		t.Errorf("expected M(9,9) to be null, is %d", v)
	}
	if M.ValueCount() != 3 {
		t.Errorf("expected 3 values, have %d", M.ValueCount())
	}
	M.Set(2, 3, 7)
	if v := M.Value(2, 3); v != 7 || M.ValueCount() != 3 {
		t.Errorf("expected overwrite of M(2,3) with 7, have %d (count %d)", v, M.ValueCount())
	}
	M.Set(2, 3, M.NullValue())
	if M.ValueCount() != 2 || M.Value(2, 3) != M.NullValue() {
		t.Errorf("expected M(2,3) to be deleted, matrix is %v", M)
	}
}

func TestMatrixRow(t *testing.T) {
	M := NewIntMatrix(3, 5, -1)
	M.Set(1, 4, 40).Set(1, 0, 0).Set(2, 2, 22).Set(0, 1, 1)
	var cols []int
	M.EachInRow(1, func(j int, v int32) {
		cols = append(cols, j)
	})
	if len(cols) != 2 || cols[0] != 0 || cols[1] != 4 {
		t.Errorf("expected columns [0 4] in row 1, got %v", cols)
	}
}

func TestMatrixBounds(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected Set out of bounds to panic")
		}
	}()
	NewIntMatrix(2, 2, -1).Set(2, 0, 1)
}
