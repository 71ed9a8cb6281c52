package render

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/vango-dev/hyperoop/internal/identity"
	"github.com/vango-dev/hyperoop/pkg/dom"
	"github.com/vango-dev/hyperoop/pkg/vdom"
)

// specialAttrNames are always written as attributes even when the element
// exposes a property of the same name.
var specialAttrNames = map[string]bool{
	"list":       true,
	"type":       true,
	"draggable":  true,
	"spellcheck": true,
	"translate":  true,
}

// updateElement applies the difference between oldProps and props, then
// queues the element's oncreate (while recycling) or onupdate hook.
func (r *Renderer) updateElement(el dom.Element, oldProps, props vdom.Props, svg bool) {
	for _, name := range unionKeys(oldProps, props) {
		value := props[name]

		var current any
		if name == "value" || name == "checked" {
			current = el.Property(name)
		} else {
			current = oldProps[name]
		}

		if !identity.Same(value, current) {
			r.updateAttribute(el, name, value, oldProps[name], svg)
		}
	}

	if r.recycling {
		if hook := vdom.CreateHookOf(props[vdom.HookCreate]); hook != nil {
			r.lifecycle = append(r.lifecycle, func() { hook(el) })
		}
		return
	}
	if hook := vdom.UpdateHookOf(props[vdom.HookUpdate]); hook != nil {
		r.lifecycle = append(r.lifecycle, func() { hook(el, oldProps) })
	}
}

// updateAttribute writes one prop to el. A nil or false value removes the
// attribute.
func (r *Renderer) updateAttribute(el dom.Element, name string, value, old any, svg bool) {
	switch {
	case name == "key" || vdom.IsLifecycleProp(name):
		return
	case name == "style":
		updateStyle(el.Style(), value, old)
		return
	case strings.HasPrefix(name, "on"):
		r.updateEvent(el, name[2:], value)
		return
	}

	if el.HasProperty(name) && !specialAttrNames[name] && !svg {
		prop := value
		if prop == nil {
			prop = ""
		}
		el.SetProperty(name, prop)
	} else if value != nil && value != false {
		el.SetAttribute(attrName(name), attrString(value))
	}

	if value == nil || value == false {
		el.RemoveAttribute(attrName(name))
	}
}

// updateStyle applies a style prop. A string is written as cssText; a map is
// diffed against the previous map, clearing properties that disappeared.
func updateStyle(style dom.Style, value, old any) {
	if text, ok := value.(string); ok {
		style.SetCSSText(text)
		return
	}
	if _, ok := old.(string); ok {
		style.SetCSSText("")
	}

	next := styleMap(value)
	prev := styleMap(old)
	for name := range prev {
		if _, ok := next[name]; !ok {
			next[name] = ""
		}
	}
	names := make([]string, 0, len(next))
	for name := range next {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if strings.HasPrefix(name, "-") {
			style.SetProperty(name, next[name])
		} else {
			style.Set(name, next[name])
		}
	}
}

func styleMap(v any) map[string]string {
	out := make(map[string]string)
	switch m := v.(type) {
	case vdom.Style:
		for k, val := range m {
			out[k] = val
		}
	case map[string]string:
		for k, val := range m {
			out[k] = val
		}
	case map[string]any:
		for k, val := range m {
			if val != nil {
				out[k] = attrString(val)
			} else {
				out[k] = ""
			}
		}
	}
	return out
}

// updateEvent stores handler for eventType and keeps the shared listener
// registered while any handler for that type exists. A nil or false handler
// removes it.
func (r *Renderer) updateEvent(el dom.Element, eventType string, handler any) {
	handlers := r.events[el]
	if handlers == nil {
		handlers = make(map[string]any)
		r.events[el] = handlers
	}

	_, had := handlers[eventType]
	if handler == nil || handler == false {
		if had {
			delete(handlers, eventType)
			el.RemoveEventListener(eventType, r.listener)
		}
		return
	}

	handlers[eventType] = handler
	if !had {
		el.AddEventListener(eventType, r.listener)
	}
}

// dispatcher is the one listener the renderer registers. It looks the current
// handler up on every event, so replacing a handler never touches the DOM.
type dispatcher struct {
	r *Renderer
}

func (d *dispatcher) HandleEvent(e dom.Event) {
	handler := d.r.events[e.CurrentTarget()][e.Type()]
	switch fn := handler.(type) {
	case func(dom.Event):
		fn(e)
	case func():
		fn()
	case dom.EventListener:
		fn.HandleEvent(e)
	default:
		if handler != nil {
			d.r.logger.Warn("unsupported event handler", "event", e.Type(), "type", fmt.Sprintf("%T", handler))
		}
	}
}

func attrName(name string) string {
	switch name {
	case "className":
		return "class"
	case "htmlFor":
		return "for"
	}
	return name
}

// attrString formats an attribute value.
func attrString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		if val {
			return ""
		}
		return "false"
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(v)
	}
}
