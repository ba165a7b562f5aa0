package modes

import "testing"

func TestGroupExclusivity(t *testing.T) {
	tbl := NewTable()
	_ = tbl.Define(Mode{Name: "wrap", Group: "linebreak", Scope: ScopeBuffer})
	_ = tbl.Define(Mode{Name: "nowrap", Group: "linebreak", Scope: ScopeBuffer})

	s := NewSet()
	if _, err := tbl.Apply(s, "wrap", Set, 1, "buf", nil); err != nil {
		t.Fatal(err)
	}
	if _, err := tbl.Apply(s, "nowrap", Set, 1, "buf", nil); err != nil {
		t.Fatal(err)
	}
	if s.IsSet("wrap") {
		t.Fatal("enabling nowrap should have disabled wrap")
	}
	if !s.IsSet("nowrap") {
		t.Fatal("nowrap should be enabled")
	}
}

func TestSetOnAlreadySetIsNoOp(t *testing.T) {
	tbl := NewTable()
	_ = tbl.Define(Mode{Name: "x", Scope: ScopeBuffer})
	s := NewSet()
	hookCalls := 0
	hook := func(string, map[string]bool) { hookCalls++ }

	changed, _ := tbl.Apply(s, "x", Set, 1, "", hook)
	if !changed || hookCalls != 1 {
		t.Fatalf("first set should change and fire hook, got changed=%v calls=%d", changed, hookCalls)
	}
	changed, _ = tbl.Apply(s, "x", Set, 1, "", hook)
	if changed || hookCalls != 1 {
		t.Fatalf("second set on already-set mode must be a no-op: changed=%v calls=%d", changed, hookCalls)
	}
}

func TestChangeScopeRefusedForMultiMemberGroup(t *testing.T) {
	tbl := NewTable()
	_ = tbl.Define(Mode{Name: "a", Group: "g", Scope: ScopeBuffer})
	_ = tbl.Define(Mode{Name: "b", Group: "g", Scope: ScopeBuffer})
	if err := tbl.ChangeScope("a", ScopeGlobal); err != ErrScopeMismatch {
		t.Fatalf("expected ErrScopeMismatch, got %v", err)
	}
}

func TestNArgGreaterThanOneClearsScopeThenSets(t *testing.T) {
	tbl := NewTable()
	_ = tbl.Define(Mode{Name: "a", Scope: ScopeBuffer})
	_ = tbl.Define(Mode{Name: "b", Scope: ScopeBuffer})
	s := NewSet()
	_, _ = tbl.Apply(s, "a", Set, 1, "", nil)
	_, _ = tbl.Apply(s, "b", Set, 2, "", nil)
	if s.IsSet("a") || !s.IsSet("b") {
		t.Fatal("n>1 should clear scope then set only the target mode")
	}
}
