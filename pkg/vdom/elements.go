package vdom

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

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// createElement builds an element from factory arguments.
// Arguments can be: Props, Attr, []Attr, EventHandler, or any child H accepts.
func createElement(tag string, args []any) *VNode {
	props := Props{}
	var children []any

	for _, arg := range args {
		switch v := arg.(type) {
		case Props:
			for k, val := range v {
				props[k] = val
			}
		case Attr:
			if !v.IsEmpty() {
				props[v.Key] = v.Value
			}
		case []Attr:
			for _, a := range v {
				if !a.IsEmpty() {
					props[a.Key] = a.Value
				}
			}
		case EventHandler:
			props[v.Event] = v.Handler
		default:
			children = append(children, arg)
		}
	}

	return H(tag, props, children...)
}

// Document structure elements

func Head(args ...any) *VNode  { return createElement("head", args) }
func Body(args ...any) *VNode  { return createElement("body", args) }
func Title(args ...any) *VNode { return createElement("title", args) }

// Content sectioning elements

func Header(args ...any) *VNode  { return createElement("header", args) }
func Footer(args ...any) *VNode  { return createElement("footer", args) }
func Main(args ...any) *VNode    { return createElement("main", args) }
func Section(args ...any) *VNode { return createElement("section", args) }
func H1(args ...any) *VNode      { return createElement("h1", args) }
func H2(args ...any) *VNode      { return createElement("h2", args) }

// Text content elements

func Div(args ...any) *VNode  { return createElement("div", args) }
func P(args ...any) *VNode    { return createElement("p", args) }
func Span(args ...any) *VNode { return createElement("span", args) }
func Ul(args ...any) *VNode   { return createElement("ul", args) }
func Li(args ...any) *VNode   { return createElement("li", args) }
func A(args ...any) *VNode    { return createElement("a", args) }
func Br(args ...any) *VNode   { return createElement("br", args) }

// Form elements

func Form(args ...any) *VNode   { return createElement("form", args) }
func Input(args ...any) *VNode  { return createElement("input", args) }
func Button(args ...any) *VNode { return createElement("button", args) }
func Label(args ...any) *VNode  { return createElement("label", args) }
func Select(args ...any) *VNode { return createElement("select", args) }
func Option(args ...any) *VNode { return createElement("option", args) }

// Media elements

func Img(args ...any) *VNode { return createElement("img", args) }
func Svg(args ...any) *VNode { return createElement("svg", args) }

// CustomElement creates an element with a custom tag name.
func CustomElement(tag string, args ...any) *VNode {
	return createElement(tag, args)
}
