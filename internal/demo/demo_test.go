package demo

import (
	"strings"
	"testing"

	"github.com/vango-dev/hyperoop/pkg/dom/memdom"
	"github.com/vango-dev/hyperoop/pkg/loop"
	"github.com/vango-dev/hyperoop/pkg/render"
)

func mount(t *testing.T, app *App) (*memdom.Element, *loop.Loop) {
	t.Helper()
	doc := memdom.NewDocument()
	l := loop.New()
	render.Init(doc.Body(), app.View, app.Actions, render.WithScheduler(l))
	l.Drain()
	return doc.Body(), l
}

func click(t *testing.T, body *memdom.Element, l *loop.Loop, selector string) {
	t.Helper()
	el := body.QuerySelector(selector)
	if el == nil {
		t.Fatalf("no element matches %q in %s", selector, body.InnerHTML())
	}
	el.DispatchEvent("click")
	l.Drain()
}

func typeText(body *memdom.Element, l *loop.Loop, text string) {
	input := body.QuerySelector("#new-todo")
	input.SetProperty("value", text)
	input.DispatchEvent("input")
	l.Drain()
}

func itemTexts(body *memdom.Element) string {
	var out []string
	for _, li := range body.QuerySelectorAll("li") {
		text := li.TextContent()
		if cls, _ := li.GetAttribute("class"); cls == "done" {
			text += "*"
		}
		out = append(out, text)
	}
	return strings.Join(out, ",")
}

func TestNew(t *testing.T) {
	for _, name := range Names() {
		app, err := New(name, 0)
		if err != nil {
			t.Fatalf("New(%q) error = %v", name, err)
		}
		if app.Name != name {
			t.Errorf("New(%q).Name = %q", name, app.Name)
		}
	}

	for _, tt := range []struct{ depth, want int }{{20, 20}, {0, 0}, {-1, 0}} {
		app, err := New("todo-hist", tt.depth)
		if err != nil {
			t.Fatalf("New(todo-hist, %d) error = %v", tt.depth, err)
		}
		if got := app.History().Depth(); got != tt.want {
			t.Errorf("New(todo-hist, %d) depth = %d, want %d (0 is unbounded)", tt.depth, got, tt.want)
		}
	}
	if app, _ := New("todo", 0); app.History() != nil {
		t.Error("todo should have no history")
	}
	if _, err := New("chess", 0); err == nil {
		t.Error("New(chess) should fail")
	}
}

func TestCounter(t *testing.T) {
	body, l := mount(t, Counter())

	if got := body.QuerySelector("h1").TextContent(); got != "0" {
		t.Fatalf("h1 = %q, want 0", got)
	}
	for i := 0; i < 3; i++ {
		click(t, body, l, "#inc")
	}
	click(t, body, l, "#dec")

	if got := body.QuerySelector("h1").TextContent(); got != "2" {
		t.Errorf("h1 = %q, want 2", got)
	}
}

func TestTodo(t *testing.T) {
	body, l := mount(t, Todo())

	typeText(body, l, "milk")
	click(t, body, l, "#add")

	typeText(body, l, "eggs")
	ev := memdom.NewEvent("keyup")
	ev.Key = "Enter"
	body.QuerySelector("#new-todo").Dispatch(ev)
	l.Drain()

	if got := itemTexts(body); got != "milk,eggs" {
		t.Fatalf("items = %s, want milk,eggs", got)
	}
	if v := body.QuerySelector("#new-todo").Property("value"); v != "" {
		t.Errorf("input value = %v, want empty after add", v)
	}

	click(t, body, l, "#todo-1")
	if got := itemTexts(body); got != "milk*,eggs" {
		t.Errorf("items = %s, want milk*,eggs", got)
	}

	click(t, body, l, "#filter-Done")
	if got := itemTexts(body); got != "milk*" {
		t.Errorf("Done filter = %s, want milk*", got)
	}
	if body.QuerySelector("#filter-Done") != nil || body.QuerySelector("#filter-All") == nil {
		t.Error("filter links should exclude the active filter")
	}

	click(t, body, l, "#filter-Todo")
	if got := itemTexts(body); got != "eggs" {
		t.Errorf("Todo filter = %s, want eggs", got)
	}

	if body.QuerySelector("#undo") != nil {
		t.Error("todo without history shows an undo link")
	}
}

func TestTodoHistory(t *testing.T) {
	body, l := mount(t, TodoHistory(10))

	if body.QuerySelector("#undo") != nil || body.QuerySelector("#redo") != nil {
		t.Fatal("fresh list shows undo or redo")
	}

	typeText(body, l, "a")
	click(t, body, l, "#add")
	typeText(body, l, "b")
	click(t, body, l, "#add")
	click(t, body, l, "#todo-1")

	if got := itemTexts(body); got != "a*,b" {
		t.Fatalf("items = %s, want a*,b", got)
	}

	click(t, body, l, "#undo")
	if got := itemTexts(body); got != "a,b" {
		t.Errorf("after undo items = %s, want a,b", got)
	}
	if body.QuerySelector("#redo") == nil {
		t.Error("redo link missing after undo")
	}

	click(t, body, l, "#undo")
	if got := itemTexts(body); got != "a" {
		t.Errorf("after second undo items = %s, want a", got)
	}

	click(t, body, l, "#redo")
	click(t, body, l, "#redo")
	if got := itemTexts(body); got != "a*,b" {
		t.Errorf("after redo items = %s, want a*,b", got)
	}
	if body.QuerySelector("#redo") != nil {
		t.Error("redo link still shown with nothing to redo")
	}
}
