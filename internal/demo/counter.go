package demo

import (
	"github.com/vango-dev/hyperoop/pkg/action"
	"github.com/vango-dev/hyperoop/pkg/state"
	"github.com/vango-dev/hyperoop/pkg/vdom"
)

// Counter is a number with increment and decrement buttons.
func Counter() *App {
	acts := action.New(state.Map{"count": 0})

	add := func(d int) func() {
		return func() {
			s := acts.State()
			s.Set("count", state.Value[int](s, "count")+d)
		}
	}

	view := func() *vdom.VNode {
		return vdom.Div(
			vdom.H1(state.Value[int](acts.State(), "count")),
			vdom.Button(vdom.ID("dec"), vdom.OnClick(add(-1)), "-"),
			vdom.Button(vdom.ID("inc"), vdom.OnClick(add(1)), "+"),
		)
	}

	return &App{Name: "counter", Actions: acts, View: view}
}
