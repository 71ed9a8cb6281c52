package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/vango-dev/hyperoop/pkg/dom"
	"github.com/vango-dev/hyperoop/pkg/vdom"
)

// HTML renders node to markup. Lazy nodes are evaluated; event handlers and
// lifecycle hooks are dropped.
func HTML(node *vdom.VNode) (string, error) {
	var b strings.Builder
	if err := WriteHTML(&b, node); err != nil {
		return "", err
	}
	return b.String(), nil
}

// WriteHTML writes node as markup to w.
func WriteHTML(w io.Writer, node *vdom.VNode) error {
	hw := &htmlWriter{w: w}
	hw.node(vdom.Resolve(node), false)
	return hw.err
}

type htmlWriter struct {
	w   io.Writer
	err error
}

func (hw *htmlWriter) write(s string) {
	if hw.err != nil {
		return
	}
	_, hw.err = io.WriteString(hw.w, s)
}

func (hw *htmlWriter) node(node *vdom.VNode, svg bool) {
	switch node.Kind {
	case vdom.KindText:
		hw.write(escapeHTML(node.Text))
		return
	case vdom.KindLazy:
		hw.node(vdom.Resolve(node), svg)
		return
	}

	svg = svg || node.Tag == "svg"
	hw.write("<" + node.Tag)
	hw.attributes(node.Props)
	hw.write(">")

	if !svg && vdom.IsVoidElement(node.Tag) {
		return
	}
	for _, child := range node.Children {
		hw.node(vdom.Resolve(child), svg)
	}
	hw.write("</" + node.Tag + ">")
}

func (hw *htmlWriter) attributes(props vdom.Props) {
	for _, key := range sortedKeys(props) {
		value := props[key]
		if key == "key" || vdom.IsLifecycleProp(key) || strings.HasPrefix(key, "on") {
			continue
		}
		if value == nil || value == false {
			continue
		}

		name := attrName(key)
		if value == true {
			hw.write(" " + name)
			continue
		}

		var text string
		if key == "style" {
			text = styleText(value)
			if text == "" {
				continue
			}
		} else {
			text = attrString(value)
		}
		hw.write(fmt.Sprintf(` %s="%s"`, name, escapeAttr(text)))
	}
}

// styleText renders a style prop as cssText.
func styleText(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	m := styleMap(v)
	names := make([]string, 0, len(m))
	for name, val := range m {
		if val != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, dom.CSSName(name)+": "+m[name])
	}
	return strings.Join(parts, "; ")
}

// escapeHTML escapes text content.
func escapeHTML(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}

// escapeAttr escapes a double-quoted attribute value, including whitespace
// that would otherwise be normalised by the parser.
func escapeAttr(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\n':
			buf.WriteString("&#10;")
		case '\r':
			buf.WriteString("&#13;")
		case '\t':
			buf.WriteString("&#9;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
