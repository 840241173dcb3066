package lrtables

import "testing"

func TestSpanExtend(t *testing.T) {
	s := Span{4, 7}
	if x := s.Extend(Span{2, 5}); x != (Span{2, 7}) {
		t.Errorf("expected (2…7), got %v", x)
	}
	if x := s.Extend(Span{}); x != s {
		t.Errorf("expected null span not to contribute, got %v", x)
	}
	if x := (Span{}).Extend(s); x != s {
		t.Errorf("expected extension of null span to be %v, got %v", s, x)
	}
	if s.Len() != 3 {
		t.Errorf("expected length 3, got %d", s.Len())
	}
}
