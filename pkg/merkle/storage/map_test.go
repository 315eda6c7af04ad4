package storage

import "testing"

func TestMapInsertGetRemove(t *testing.T) {
	s := NewMap[string, int]()

	if _, had, _ := s.Insert("a", 1); had {
		t.Fatal("expected no previous value")
	}
	if prev, had, _ := s.Insert("a", 2); !had || prev != 1 {
		t.Fatalf("Insert returned (%d, %v), want (1, true)", prev, had)
	}
	if v, ok, _ := s.Get("a"); !ok || v != 2 {
		t.Fatalf("Get returned (%d, %v), want (2, true)", v, ok)
	}
	if ok, _ := s.ContainsKey("a"); !ok {
		t.Fatal("expected ContainsKey(a) true")
	}
	if removed, had, _ := s.Remove("a"); !had || removed != 2 {
		t.Fatalf("Remove returned (%d, %v), want (2, true)", removed, had)
	}
	if ok, _ := s.ContainsKey("a"); ok {
		t.Fatal("expected ContainsKey(a) false after remove")
	}
	if _, ok, _ := s.Get("missing"); ok {
		t.Fatal("expected Get(missing) ok=false")
	}
}
