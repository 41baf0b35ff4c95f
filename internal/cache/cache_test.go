package cache

import "testing"

func TestScopeGetSet(t *testing.T) {
	s := NewScope[string, int]()

	if _, ok := s.Get("a"); ok {
		t.Fatalf("empty scope should miss")
	}
	s.Set("a", 1)
	s.Set("b", 2)
	if v, ok := s.Get("a"); !ok || v != 1 {
		t.Fatalf("Get(a) = %d, %v", v, ok)
	}
	if s.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", s.Size())
	}

	s.Set("a", 3) // overwrite
	if v, _ := s.Get("a"); v != 3 {
		t.Fatalf("overwrite failed, got %d", v)
	}
	if s.Size() != 2 {
		t.Fatalf("Size() after overwrite = %d", s.Size())
	}

	s.Delete("a")
	if _, ok := s.Get("a"); ok {
		t.Fatalf("deleted key should miss")
	}
}

func TestScopeStructKeys(t *testing.T) {
	type key struct{ Year, Value int }
	s := NewScope[key, string]()
	s.Set(key{2026, 2}, "feb")
	if v, ok := s.Get(key{2026, 2}); !ok || v != "feb" {
		t.Fatalf("struct key lookup failed: %q, %v", v, ok)
	}
	if _, ok := s.Get(key{2026, 3}); ok {
		t.Fatalf("distinct struct key should miss")
	}
}
