package vdom

import (
	"fmt"
	"strings"
)

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// Key creates a key attribute for reconciliation.
// The key is converted to a string using fmt.Sprintf.
func Key(key any) Attr {
	return attr("key", fmt.Sprintf("%v", key))
}

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// ClassIf sets the class attribute only when cond holds.
func ClassIf(cond bool, class string) Attr {
	if !cond {
		return Attr{}
	}
	return Class(class)
}

// Style is a style mapping keyed by script property name ("backgroundColor")
// or CSS custom property ("--accent").
type Style map[string]string

// StyleAttr sets the style attribute from a CSS string.
func StyleAttr(style string) Attr { return attr("style", style) }

// StyleMap sets the style attribute from a mapping; the renderer merges it
// per property.
func StyleMap(style Style) Attr { return attr("style", style) }

// Data creates a data-* attribute.
// Example: Data("id", "123") → data-id="123"
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Href sets the href attribute.
func Href(url string) Attr { return attr("href", url) }

// Name sets the name attribute.
func Name(name string) Attr { return attr("name", name) }

// Value sets the value property.
func Value(value string) Attr { return attr("value", value) }

// Type sets the type attribute.
func Type(t string) Attr { return attr("type", t) }

// Placeholder sets the placeholder attribute.
func Placeholder(text string) Attr { return attr("placeholder", text) }

// For sets the label's for attribute.
func For(id string) Attr { return attr("for", id) }

// Disabled toggles the disabled attribute.
func Disabled(on bool) Attr { return attr("disabled", on) }

// Checked toggles the checked property.
func Checked(on bool) Attr { return attr("checked", on) }

// Hidden toggles the hidden attribute.
func Hidden(on bool) Attr { return attr("hidden", on) }

// AttrOf creates an arbitrary attribute.
func AttrOf(key string, value any) Attr { return attr(key, value) }
