package action

import (
	"testing"

	"github.com/vango-dev/hyperoop/pkg/history"
	"github.com/vango-dev/hyperoop/pkg/state"
)

// countingRenderer records how many renders were requested.
type countingRenderer struct {
	n int
}

func (r *countingRenderer) ScheduleRender() { r.n++ }

func TestNewDefaults(t *testing.T) {
	a := New(nil)

	if a.State() == nil {
		t.Fatal("State() is nil")
	}
	if a.Remember() != nil {
		t.Error("Remember() should be nil without a history")
	}
	if a.History() != nil || a.Renderer() != nil {
		t.Error("History and Renderer should start nil")
	}

	// Writes before Init must not panic.
	a.State().Set("x", 1)
	if a.State().Get("x") != 1 {
		t.Error("write before Init lost")
	}
}

func TestWithHistoryDepth(t *testing.T) {
	a := New(state.Map{}, WithHistoryDepth(3))
	if a.History() == nil || a.History().Depth() != 3 {
		t.Fatalf("History = %v", a.History())
	}
	if a.Remember() == nil {
		t.Error("Remember() should be available with a history")
	}
}

func TestInitKeepsState(t *testing.T) {
	a := New(state.Map{"value": 1}, WithHistoryDepth(5))
	a.State().Set("value", 2)

	r := &countingRenderer{}
	a.Init(r)
	a.Init(r)

	if got := a.State().Get("value"); got != 2 {
		t.Errorf("value = %v after Init, want 2", got)
	}
	a.Remember().Set("value", 3)
	if r.n != 1 {
		t.Errorf("renders = %d, want 1", r.n)
	}
	if a.State().Get("value") != 3 {
		t.Error("views do not share backing state")
	}
}

func TestLiveWritesScheduleRender(t *testing.T) {
	a := New(state.Map{"value": 1})
	r := &countingRenderer{}
	a.Init(r)

	for i := 0; i < 4; i++ {
		a.State().Set("value", state.Value[int](a.State(), "value")+1)
	}
	if r.n != 4 {
		t.Errorf("ScheduleRender calls = %d, want 4", r.n)
	}
	if a.State().Get("value") != 5 {
		t.Errorf("value = %v, want 5", a.State().Get("value"))
	}

	a.State().Set("value", 5)
	if r.n != 4 {
		t.Error("unchanged write scheduled a render")
	}
}

func TestSetBatches(t *testing.T) {
	a := New(state.Map{"a": 1, "b": 0})
	r := &countingRenderer{}
	a.Init(r)

	a.Set(state.Map{"a": 1, "b": 2}, false)

	if r.n != 1 {
		t.Errorf("renders = %d, want 1", r.n)
	}
	if a.State().Get("a") != 1 || a.State().Get("b") != 2 {
		t.Errorf("state = a:%v b:%v", a.State().Get("a"), a.State().Get("b"))
	}
}

func TestSetNoChange(t *testing.T) {
	h := history.New(5)
	a := New(state.Map{"a": 1}, WithHistory(h))
	r := &countingRenderer{}
	a.Init(r)

	a.Set(state.Map{"a": 1}, true)
	a.Set(state.Map{}, false)

	if r.n != 0 || h.UndoLength() != 0 {
		t.Errorf("renders = %d records = %d, want 0/0", r.n, h.UndoLength())
	}
}

func TestSetRemember(t *testing.T) {
	a := New(state.Map{"value": 2}, WithHistoryDepth(1))
	r := &countingRenderer{}
	a.Init(r)

	a.Set(state.Map{"value": 3, "added": true}, true)
	if a.State().Get("value") != 3 || a.State().Get("added") != true {
		t.Fatalf("set not applied")
	}
	if r.n != 1 || a.History().UndoLength() != 1 {
		t.Fatalf("renders = %d records = %d, want 1/1", r.n, a.History().UndoLength())
	}

	a.History().Undo()
	if a.State().Get("value") != 2 {
		t.Errorf("value after undo = %v, want 2", a.State().Get("value"))
	}
	if a.State().Has("added") {
		t.Error("undo should remove keys the set introduced")
	}
	if r.n != 2 {
		t.Errorf("renders = %d, want 2", r.n)
	}

	a.History().Redo()
	if a.State().Get("value") != 3 || !a.State().Has("added") {
		t.Error("redo did not re-apply the batch")
	}
}

func TestSetRememberWithoutHistory(t *testing.T) {
	a := New(state.Map{"value": 1})
	r := &countingRenderer{}
	a.Init(r)

	a.Set(state.Map{"value": 9}, true)
	if a.State().Get("value") != 9 || r.n != 1 {
		t.Errorf("value = %v renders = %d", a.State().Get("value"), r.n)
	}
}

func TestSubActionsForwardToParent(t *testing.T) {
	parent := New(state.Map{}, WithHistoryDepth(10))
	first := &countingRenderer{}
	parent.Init(first)

	sub := NewSub(state.Map{"value": 1}, parent)
	if sub.History() != parent.History() {
		t.Fatal("sub container should share the parent's history")
	}
	if sub.Renderer() == nil {
		t.Fatal("sub container should be attached")
	}

	sub.State().Set("value", 2)
	if first.n != 1 {
		t.Errorf("parent renders = %d, want 1", first.n)
	}

	// Re-initialising the parent redirects the sub container too.
	second := &countingRenderer{}
	parent.Init(second)
	sub.Remember().Set("value", 3)
	if second.n != 1 || first.n != 1 {
		t.Errorf("renders first=%d second=%d, want 1/1", first.n, second.n)
	}

	parent.Remember().Set("p", "x")
	parent.History().Undo()
	parent.History().Undo()
	if sub.State().Get("value") != 2 || parent.State().Has("p") {
		t.Error("undo should span parent and sub container")
	}
}

func TestSubActionsWithoutParentRenderer(t *testing.T) {
	parent := New(state.Map{})
	sub := NewSub(state.Map{"v": 1}, parent)

	if sub.Renderer() != nil {
		t.Error("sub container must not attach before the parent has a renderer")
	}
	if sub.Remember() != nil {
		t.Error("no shared history means no reversible view")
	}

	r := &countingRenderer{}
	sub.Init(r)
	sub.State().Set("v", 2)
	if r.n != 1 {
		t.Errorf("renders = %d, want 1", r.n)
	}
}

func TestRendererFunc(t *testing.T) {
	n := 0
	var r Renderer = RendererFunc(func() { n++ })
	r.ScheduleRender()
	if n != 1 {
		t.Errorf("n = %d", n)
	}
}
