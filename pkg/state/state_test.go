package state

import (
	"testing"

	"github.com/vango-dev/hyperoop/pkg/history"
)

func TestWrapSetNotifies(t *testing.T) {
	backing := Map{"value": 1}
	calls := 0
	v := Wrap(backing, func() { calls++ })

	v.Set("value", 2)
	if backing["value"] != 2 || calls != 1 {
		t.Errorf("backing = %v calls = %d", backing, calls)
	}

	v.Set("value", 2)
	if calls != 1 {
		t.Errorf("unchanged write notified, calls = %d", calls)
	}

	v.Set("other", nil)
	if !v.Has("other") || calls != 2 {
		t.Errorf("writing nil to an absent key should store it, calls = %d", calls)
	}
}

func TestWrapDelete(t *testing.T) {
	backing := Map{"a": 1}
	calls := 0
	v := Wrap(backing, func() { calls++ })

	v.Delete("missing")
	if calls != 0 {
		t.Error("deleting an absent key notified")
	}
	v.Delete("a")
	if v.Has("a") || calls != 1 {
		t.Errorf("backing = %v calls = %d", backing, calls)
	}
}

func TestWrapNilCallback(t *testing.T) {
	v := Wrap(Map{}, nil)
	v.Set("a", 1)
	v.Delete("a")
	if v.Len() != 0 {
		t.Errorf("Len = %d", v.Len())
	}
}

func TestWrapHistoryWithoutLog(t *testing.T) {
	if v := WrapHistory(Map{}, nil, nil); v != nil {
		t.Error("WrapHistory without a log should return nil")
	}
}

func TestReversibleSet(t *testing.T) {
	backing := Map{"value": 2}
	hist := history.New(10)
	calls := 0
	v := WrapHistory(backing, func() { calls++ }, hist)

	v.Set("value", 3)
	if backing["value"] != 3 || calls != 1 {
		t.Fatalf("write not applied at registration: %v calls=%d", backing, calls)
	}
	if hist.UndoLength() != 1 {
		t.Fatalf("UndoLength = %d", hist.UndoLength())
	}

	hist.Undo()
	if backing["value"] != 2 || calls != 2 {
		t.Errorf("after undo %v calls=%d", backing, calls)
	}
	hist.Redo()
	if backing["value"] != 3 || calls != 3 {
		t.Errorf("after redo %v calls=%d", backing, calls)
	}
}

func TestReversibleSetNewKey(t *testing.T) {
	backing := Map{}
	hist := history.New(0)
	v := WrapHistory(backing, nil, hist)

	v.Set("fresh", "x")
	hist.Undo()
	if _, ok := backing["fresh"]; ok {
		t.Error("undo should delete a key that did not exist")
	}
}

func TestReversibleDelete(t *testing.T) {
	backing := Map{"a": "keep"}
	hist := history.New(0)
	v := WrapHistory(backing, nil, hist)

	v.Delete("a")
	if v.Has("a") {
		t.Fatal("delete not applied")
	}
	hist.Undo()
	if backing["a"] != "keep" {
		t.Errorf("undo delete restored %v", backing["a"])
	}

	v.Delete("nope")
	if hist.UndoLength() != 0 || hist.RedoLength() != 1 {
		t.Errorf("deleting an absent key touched history: undo %d, redo %d, want 0 and 1",
			hist.UndoLength(), hist.RedoLength())
	}

	hist.Redo()
	if v.Has("a") {
		t.Error("redo after a no-op delete should remove the key again")
	}
}

func TestFuncValueRewrite(t *testing.T) {
	calls := 0
	hist := history.New(0)
	backing := Map{"h": func() {}}
	live := Wrap(backing, func() { calls++ })
	rev := WrapHistory(backing, func() { calls++ }, hist)

	live.Set("h", live.Get("h"))
	rev.Set("h", rev.Get("h"))
	if calls != 0 || hist.UndoLength() != 0 {
		t.Errorf("writing back the same func: calls = %d, records = %d", calls, hist.UndoLength())
	}

	live.Set("h", func() {})
	if calls != 1 {
		t.Errorf("a new func should notify, calls = %d", calls)
	}
}

func TestReversibleNoOpWrite(t *testing.T) {
	items := []string{"a"}
	backing := Map{"items": items}
	hist := history.New(0)
	calls := 0
	v := WrapHistory(backing, func() { calls++ }, hist)

	v.Set("items", items)
	if hist.UndoLength() != 0 || calls != 0 {
		t.Errorf("same slice write recorded: UndoLength=%d calls=%d", hist.UndoLength(), calls)
	}

	v.Set("items", append([]string(nil), items...))
	if hist.UndoLength() != 1 {
		t.Errorf("fresh slice should count as a change")
	}
}

func TestViewsShareBacking(t *testing.T) {
	backing := Map{"n": 0}
	hist := history.New(5)
	live := Wrap(backing, nil)
	remember := WrapHistory(backing, nil, hist)

	live.Set("n", 1)
	if remember.Get("n") != 1 {
		t.Error("live write not visible through the reversible view")
	}
	remember.Set("n", 2)
	if live.Get("n") != 2 {
		t.Error("reversible write not visible through the live view")
	}
	hist.Undo()
	if live.Get("n") != 1 {
		t.Errorf("undo restored %v, want 1", live.Get("n"))
	}
}

func TestAccessors(t *testing.T) {
	v := Wrap(Map{"b": 2, "a": "x"}, nil)

	if keys := v.Keys(); len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Errorf("Keys = %v", keys)
	}
	if got := Value[int](v, "b"); got != 2 {
		t.Errorf("Value[int] = %d", got)
	}
	if got := Value[int](v, "a"); got != 0 {
		t.Errorf("Value[int] of a string = %d, want 0", got)
	}
	if _, ok := v.Lookup("zzz"); ok {
		t.Error("Lookup of missing key")
	}
	if v.Reversible() {
		t.Error("live view is not reversible")
	}

	m := Map{"k": 1}
	c := m.Clone()
	c["k"] = 2
	if m["k"] != 1 {
		t.Error("Clone shares storage")
	}
}
