package memdom

import (
	"fmt"

	"github.com/vango-dev/hyperoop/pkg/dom"
)

type propKind uint8

const (
	propString     propKind = iota // reflects to a string attribute
	propBool                       // reflects to a boolean (presence) attribute
	propLiveString                 // live value, attribute is only the default
	propLiveBool                   // live flag, attribute is only the default
)

type propDef struct {
	attr string
	kind propKind
}

var globalProps = map[string]propDef{
	"id":              {"id", propString},
	"className":       {"class", propString},
	"title":           {"title", propString},
	"lang":            {"lang", propString},
	"dir":             {"dir", propString},
	"hidden":          {"hidden", propBool},
	"tabIndex":        {"tabindex", propString},
	"accessKey":       {"accesskey", propString},
	"draggable":       {"draggable", propString},
	"spellcheck":      {"spellcheck", propString},
	"translate":       {"translate", propString},
	"contentEditable": {"contenteditable", propString},
}

var formControlProps = map[string]propDef{
	"name":     {"name", propString},
	"disabled": {"disabled", propBool},
}

var tagProps = map[string]map[string]propDef{
	"input": {
		"value":       {"value", propLiveString},
		"checked":     {"checked", propLiveBool},
		"type":        {"type", propString},
		"list":        {"list", propString},
		"placeholder": {"placeholder", propString},
		"readOnly":    {"readonly", propBool},
		"required":    {"required", propBool},
		"multiple":    {"multiple", propBool},
		"autofocus":   {"autofocus", propBool},
		"min":         {"min", propString},
		"max":         {"max", propString},
		"step":        {"step", propString},
	},
	"textarea": {
		"value":       {"value", propLiveString},
		"placeholder": {"placeholder", propString},
		"readOnly":    {"readonly", propBool},
		"rows":        {"rows", propString},
		"cols":        {"cols", propString},
	},
	"select": {
		"value":    {"value", propLiveString},
		"multiple": {"multiple", propBool},
	},
	"option": {
		"value":    {"value", propString},
		"selected": {"selected", propLiveBool},
		"label":    {"label", propString},
	},
	"button": {
		"type":  {"type", propString},
		"value": {"value", propString},
	},
	"a": {
		"href":     {"href", propString},
		"target":   {"target", propString},
		"rel":      {"rel", propString},
		"download": {"download", propString},
	},
	"img": {
		"src":    {"src", propString},
		"alt":    {"alt", propString},
		"width":  {"width", propString},
		"height": {"height", propString},
	},
	"form": {
		"action": {"action", propString},
		"method": {"method", propString},
	},
	"label":  {"htmlFor": {"for", propString}},
	"link":   {"href": {"href", propString}, "rel": {"rel", propString}},
	"script": {"src": {"src", propString}, "type": {"type", propString}},
	"iframe": {"src": {"src", propString}},
}

var formControls = map[string]bool{
	"input": true, "textarea": true, "select": true, "option": true, "button": true,
}

func (e *Element) propDef(name string) (propDef, bool) {
	if e.ns != dom.HTMLNamespace {
		return propDef{}, false
	}
	if def, ok := tagProps[e.tag][name]; ok {
		return def, true
	}
	if formControls[e.tag] {
		if def, ok := formControlProps[name]; ok {
			return def, true
		}
	}
	def, ok := globalProps[name]
	return def, ok
}

// HasProperty reports whether name is a DOM property of the element.
func (e *Element) HasProperty(name string) bool {
	_, ok := e.propDef(name)
	return ok
}

// Property reads a DOM property. Unknown names read back whatever was stored
// with SetProperty.
func (e *Element) Property(name string) any {
	def, ok := e.propDef(name)
	if !ok {
		return e.props[name]
	}
	switch def.kind {
	case propLiveString:
		if v, ok := e.props[name]; ok {
			return v
		}
		v, _ := e.GetAttribute(def.attr)
		return v
	case propLiveBool:
		if v, ok := e.props[name]; ok {
			return v
		}
		_, present := e.GetAttribute(def.attr)
		return present
	case propBool:
		_, present := e.GetAttribute(def.attr)
		return present
	default:
		v, _ := e.GetAttribute(def.attr)
		return v
	}
}

// SetProperty assigns a DOM property. Reflected properties update their
// attribute; live properties (value, checked, selected) do not.
func (e *Element) SetProperty(name string, value any) {
	def, ok := e.propDef(name)
	if !ok {
		e.setProp(name, value)
		return
	}
	switch def.kind {
	case propLiveString:
		e.setProp(name, stringify(value))
	case propLiveBool:
		e.setProp(name, truthy(value))
	case propBool:
		if truthy(value) {
			e.setAttr(def.attr, "")
		} else {
			e.removeAttr(def.attr)
		}
	default:
		e.SetAttribute(def.attr, stringify(value))
	}
}

func (e *Element) setProp(name string, value any) {
	if e.props == nil {
		e.props = make(map[string]any)
	}
	e.props[name] = value
}

func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}

func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case int:
		return val != 0
	case float64:
		return val != 0
	default:
		return true
	}
}
