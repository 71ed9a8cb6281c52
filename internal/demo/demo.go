// Package demo holds the example apps served by the hyperoop command: a
// counter, a todo list, and a todo list with undo and redo whose items are
// dependent action containers sharing the list's history.
package demo

import (
	"fmt"

	"github.com/vango-dev/hyperoop/internal/errors"
	"github.com/vango-dev/hyperoop/pkg/action"
	"github.com/vango-dev/hyperoop/pkg/dom"
	"github.com/vango-dev/hyperoop/pkg/dom/memdom"
	"github.com/vango-dev/hyperoop/pkg/history"
	"github.com/vango-dev/hyperoop/pkg/vdom"
)

// App is a view bound to its action container.
type App struct {
	Name    string
	Actions *action.Actions
	View    vdom.Lazy
}

// History returns the app's history log, or nil.
func (a *App) History() *history.Log {
	return a.Actions.History()
}

// Names lists the available apps.
func Names() []string {
	return []string{"counter", "todo", "todo-hist"}
}

// New builds the app called name. depth bounds the undo history of
// todo-hist; zero or less leaves it unbounded.
func New(name string, depth int) (*App, error) {
	switch name {
	case "counter":
		return Counter(), nil
	case "todo":
		return Todo(), nil
	case "todo-hist":
		return TodoHistory(depth), nil
	}
	return nil, errors.Newf(errors.CategoryCLI, "unknown app %q", name).
		WithSuggestion(fmt.Sprintf("Use one of %v", Names()))
}

// targetValue reads the value property of the event's target.
func targetValue(e dom.Event) string {
	el, ok := e.Target().(dom.Element)
	if !ok {
		return ""
	}
	switch v := el.Property("value").(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// keyName returns the key of a keyboard event, or "".
func keyName(e dom.Event) string {
	if ev, ok := e.(*memdom.Event); ok {
		return ev.Key
	}
	return ""
}
