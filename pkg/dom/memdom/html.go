package memdom

import (
	"strings"

	"github.com/vango-dev/hyperoop/pkg/dom"
)

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// rawTextElements hold text that is serialised without escaping.
var rawTextElements = map[string]bool{
	"script": true,
	"style":  true,
}

// OuterHTML serialises the element and its descendants.
func (e *Element) OuterHTML() string {
	var b strings.Builder
	writeNode(&b, e, false)
	return b.String()
}

// InnerHTML serialises the element's descendants.
func (e *Element) InnerHTML() string {
	var b strings.Builder
	raw := rawTextElements[e.tag]
	for _, c := range e.children {
		writeNode(&b, c, raw)
	}
	return b.String()
}

// SetInnerHTML replaces the element's children with nodes parsed from markup.
func (e *Element) SetInnerHTML(markup string) error {
	nodes, err := e.doc.ParseFragment(markup, e)
	if err != nil {
		return err
	}
	for _, c := range e.ChildNodes() {
		e.RemoveChild(c)
	}
	for _, n := range nodes {
		e.AppendChild(n)
	}
	return nil
}

func writeNode(b *strings.Builder, n dom.Node, raw bool) {
	switch v := n.(type) {
	case *Text:
		if raw {
			b.WriteString(v.data)
		} else {
			b.WriteString(escapeText(v.data))
		}
	case *Element:
		b.WriteByte('<')
		b.WriteString(v.tag)
		for _, a := range v.attrs {
			b.WriteByte(' ')
			b.WriteString(a.name)
			b.WriteString(`="`)
			b.WriteString(escapeAttr(a.value))
			b.WriteByte('"')
		}
		b.WriteByte('>')
		if v.ns == dom.HTMLNamespace && voidElements[v.tag] {
			return
		}
		childRaw := rawTextElements[v.tag]
		for _, c := range v.children {
			writeNode(b, c, childRaw)
		}
		b.WriteString("</")
		b.WriteString(v.tag)
		b.WriteByte('>')
	}
}

// escapeText escapes text content the way browsers serialise it.
func escapeText(s string) string {
	if !strings.ContainsAny(s, "&<>\u00a0") {
		return s
	}
	var buf strings.Builder
	buf.Grow(len(s) + 8)
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '\u00a0':
			buf.WriteString("&nbsp;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}

// escapeAttr escapes an attribute value the way browsers serialise it.
func escapeAttr(s string) string {
	if !strings.ContainsAny(s, "&\"\u00a0") {
		return s
	}
	var buf strings.Builder
	buf.Grow(len(s) + 8)
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '"':
			buf.WriteString("&quot;")
		case '\u00a0':
			buf.WriteString("&nbsp;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
