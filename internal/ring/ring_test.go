package ring

import "testing"

func TestOverflowDropsOldest(t *testing.T) {
	r := New(2)
	r.Push("a")
	r.Push("b")
	r.Push("c")
	all := r.All()
	if len(all) != 2 || all[0] != "b" || all[1] != "c" {
		t.Fatalf("All() = %v, want [b c]", all)
	}
}

func TestCursorCycles(t *testing.T) {
	r := New(3)
	r.Push("a")
	r.Push("b")
	r.Push("c")
	if v, _ := r.Current(); v != "c" {
		t.Fatalf("Current() = %q, want c", v)
	}
	if v, _ := r.Prev(); v != "b" {
		t.Fatalf("Prev() = %q, want b", v)
	}
	if v, _ := r.Prev(); v != "a" {
		t.Fatalf("Prev() = %q, want a", v)
	}
	if v, _ := r.Next(); v != "b" {
		t.Fatalf("Next() = %q, want b", v)
	}
}

func TestCoalesceAppendsToTop(t *testing.T) {
	r := New(5)
	r.Push("foo")
	r.CoalesceTop("bar", false)
	if v, _ := r.Current(); v != "foobar" {
		t.Fatalf("Current() = %q, want foobar", v)
	}
	if r.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", r.Len())
	}
}
