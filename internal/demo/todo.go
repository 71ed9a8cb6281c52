package demo

import (
	"slices"
	"strconv"

	"github.com/vango-dev/hyperoop/pkg/action"
	"github.com/vango-dev/hyperoop/pkg/dom"
	"github.com/vango-dev/hyperoop/pkg/state"
	"github.com/vango-dev/hyperoop/pkg/vdom"
)

// Filter names in display order.
var filterNames = []string{"All", "Done", "Todo"}

var filters = map[string]func(item *action.Actions) bool{
	"All":  func(*action.Actions) bool { return true },
	"Done": func(it *action.Actions) bool { return state.Value[bool](it.State(), "done") },
	"Todo": func(it *action.Actions) bool { return !state.Value[bool](it.State(), "done") },
}

type todoList struct {
	acts     *action.Actions
	remember bool
}

// Todo is a filterable todo list.
func Todo() *App {
	return newTodo("todo", action.New(todoState()), false)
}

// TodoHistory is Todo with undo and redo. Adding an item and toggling one are
// both undoable; typing and filtering are not.
func TodoHistory(depth int) *App {
	return newTodo("todo-hist", action.New(todoState(), action.WithHistoryDepth(depth)), true)
}

func todoState() state.Map {
	return state.Map{
		"todos":       []*action.Actions{},
		"filter":      "All",
		"input":       "",
		"placeholder": "Do that thing...",
	}
}

func newTodo(name string, acts *action.Actions, remember bool) *App {
	t := &todoList{acts: acts, remember: remember}
	return &App{Name: name, Actions: acts, View: t.view}
}

func (t *todoList) items() []*action.Actions {
	return state.Value[[]*action.Actions](t.acts.State(), "todos")
}

func (t *todoList) filtered() []*action.Actions {
	keep := filters[state.Value[string](t.acts.State(), "filter")]
	if keep == nil {
		keep = filters["All"]
	}
	var out []*action.Actions
	for _, it := range t.items() {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

func (t *todoList) unusedFilters() []string {
	current := state.Value[string](t.acts.State(), "filter")
	var out []string
	for _, name := range filterNames {
		if name != current {
			out = append(out, name)
		}
	}
	return out
}

func (t *todoList) add() {
	todos := t.items()
	item := action.NewSub(state.Map{
		"id":    len(todos) + 1,
		"done":  false,
		"value": state.Value[string](t.acts.State(), "input"),
	}, t.acts)

	t.acts.Set(state.Map{
		"input": "",
		"todos": append(slices.Clip(todos), item),
	}, t.remember)
}

func (t *todoList) toggle(item *action.Actions) {
	v := item.State()
	if t.remember && item.Remember() != nil {
		v = item.Remember()
	}
	v.Set("done", !state.Value[bool](item.State(), "done"))
}

func (t *todoList) view() *vdom.VNode {
	s := t.acts.State()

	var controls []any
	for _, name := range t.unusedFilters() {
		name := name
		controls = append(controls, linkButton("filter-"+name, name, func() {
			t.acts.State().Set("filter", name)
		}))
	}
	if h := t.acts.History(); h != nil {
		if h.UndoLength() > 0 {
			controls = append(controls, linkButton("undo", "Undo", h.Undo))
		}
		if h.RedoLength() > 0 {
			controls = append(controls, linkButton("redo", "Redo", h.Redo))
		}
	}

	return vdom.Div(
		vdom.H1("Todo"),
		vdom.P(controls...),
		vdom.Div(vdom.Class("flex"),
			vdom.Input(
				vdom.ID("new-todo"),
				vdom.Type("text"),
				vdom.OnKeyUp(func(e dom.Event) {
					if keyName(e) == "Enter" {
						t.add()
					}
				}),
				vdom.OnInput(func(e dom.Event) {
					t.acts.State().Set("input", targetValue(e))
				}),
				vdom.Value(state.Value[string](s, "input")),
				vdom.Placeholder(state.Value[string](s, "placeholder")),
			),
			vdom.Button(vdom.ID("add"), vdom.OnClick(t.add), "＋"),
		),
		vdom.Div(vdom.Ul(vdom.Keyed(t.filtered(), todoID, t.itemView))),
	)
}

func (t *todoList) itemView(item *action.Actions) *vdom.VNode {
	s := item.State()
	id := strconv.Itoa(state.Value[int](s, "id"))
	return vdom.Li(
		vdom.ID("todo-"+id),
		vdom.ClassIf(state.Value[bool](s, "done"), "done"),
		vdom.OnClick(func() { t.toggle(item) }),
		state.Value[string](s, "value"),
	)
}

func todoID(item *action.Actions) any {
	return state.Value[int](item.State(), "id")
}

func linkButton(id, label string, onclick func()) *vdom.VNode {
	return vdom.Span(
		vdom.A(vdom.ID(id), vdom.Href("#"), vdom.OnClick(onclick), label),
		" ",
	)
}
