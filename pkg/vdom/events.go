package vdom

import (
	"strings"

	"github.com/vango-dev/hyperoop/pkg/dom"
)

// Lifecycle prop names.
const (
	HookCreate  = "oncreate"
	HookUpdate  = "onupdate"
	HookRemove  = "onremove"
	HookDestroy = "ondestroy"
)

// CreateHook runs after the element was created and inserted.
type CreateHook func(el dom.Element)

// UpdateHook runs after an existing element's props were reconciled. It
// receives the props of the previous pass.
type UpdateHook func(el dom.Element, old Props)

// RemoveHook runs instead of the removal; the element is detached only when
// done is called.
type RemoveHook func(el dom.Element, done func())

// DestroyHook runs for an element and each of its descendants right before
// they are detached.
type DestroyHook func(el dom.Element)

// IsLifecycleProp reports whether name is one of the lifecycle hook props.
func IsLifecycleProp(name string) bool {
	switch name {
	case HookCreate, HookUpdate, HookRemove, HookDestroy:
		return true
	}
	return false
}

// IsEventProp reports whether name is an event handler prop.
func IsEventProp(name string) bool {
	return strings.HasPrefix(name, "on") && !IsLifecycleProp(name)
}

// CreateHookOf returns the oncreate hook held in v, or nil.
func CreateHookOf(v any) CreateHook {
	switch fn := v.(type) {
	case CreateHook:
		return fn
	case func(dom.Element):
		return fn
	case func():
		if fn != nil {
			return func(dom.Element) { fn() }
		}
	}
	return nil
}

// UpdateHookOf returns the onupdate hook held in v, or nil.
func UpdateHookOf(v any) UpdateHook {
	switch fn := v.(type) {
	case UpdateHook:
		return fn
	case func(dom.Element, Props):
		return fn
	case func(dom.Element):
		if fn != nil {
			return func(el dom.Element, _ Props) { fn(el) }
		}
	case func():
		if fn != nil {
			return func(dom.Element, Props) { fn() }
		}
	}
	return nil
}

// RemoveHookOf returns the onremove hook held in v, or nil.
func RemoveHookOf(v any) RemoveHook {
	switch fn := v.(type) {
	case RemoveHook:
		return fn
	case func(dom.Element, func()):
		return fn
	}
	return nil
}

// DestroyHookOf returns the ondestroy hook held in v, or nil.
func DestroyHookOf(v any) DestroyHook {
	switch fn := v.(type) {
	case DestroyHook:
		return fn
	case func(dom.Element):
		return fn
	case func():
		if fn != nil {
			return func(dom.Element) { fn() }
		}
	}
	return nil
}

// OnCreate sets the oncreate lifecycle hook.
func OnCreate(fn CreateHook) Attr { return attr(HookCreate, fn) }

// OnUpdate sets the onupdate lifecycle hook.
func OnUpdate(fn UpdateHook) Attr { return attr(HookUpdate, fn) }

// OnRemove sets the onremove lifecycle hook.
func OnRemove(fn RemoveHook) Attr { return attr(HookRemove, fn) }

// OnDestroy sets the ondestroy lifecycle hook.
func OnDestroy(fn DestroyHook) Attr { return attr(HookDestroy, fn) }

// event creates an EventHandler with the given name and handler.
// The name is prefixed with "on" (e.g., "click" becomes "onclick").
func event(name string, handler any) EventHandler {
	return EventHandler{Event: "on" + name, Handler: handler}
}

// On handles events of an arbitrary type.
func On(eventType string, handler any) EventHandler { return event(eventType, handler) }

// OnClick handles click events.
func OnClick(handler any) EventHandler { return event("click", handler) }

// OnDblClick handles double-click events.
func OnDblClick(handler any) EventHandler { return event("dblclick", handler) }

// OnInput handles input events (fired when value changes).
func OnInput(handler any) EventHandler { return event("input", handler) }

// OnChange handles change events (fired when value is committed).
func OnChange(handler any) EventHandler { return event("change", handler) }

// OnKeyDown handles keydown events.
func OnKeyDown(handler any) EventHandler { return event("keydown", handler) }

// OnKeyUp handles keyup events.
func OnKeyUp(handler any) EventHandler { return event("keyup", handler) }

// OnSubmit handles form submit events.
func OnSubmit(handler any) EventHandler { return event("submit", handler) }

// OnFocus handles focus events.
func OnFocus(handler any) EventHandler { return event("focus", handler) }

// OnBlur handles blur events.
func OnBlur(handler any) EventHandler { return event("blur", handler) }
