package vdom

import (
	"fmt"
	"strconv"
)

// H builds a node description.
//
// A string name produces an element whose key is taken from props["key"].
// A Component name is called with the props (never nil) and the flattened
// children and its result returned. A LazyComponent name produces a lazy node.
// Any other name is a programming error and panics.
func H(name any, props Props, children ...any) *VNode {
	if props == nil {
		props = Props{}
	}
	kids := Flatten(children...)

	switch fn := name.(type) {
	case string:
		return &VNode{
			Kind:     KindElement,
			Tag:      fn,
			Props:    props,
			Children: kids,
			Key:      keyOf(props["key"]),
		}
	case Component:
		return fn(props, kids)
	case func(Props, []*VNode) *VNode:
		return fn(props, kids)
	case LazyComponent:
		return LazyNode(fn(props, kids))
	case func(Props, []*VNode) Lazy:
		return LazyNode(fn(props, kids))
	default:
		panic(fmt.Sprintf("vdom: H called with unsupported name of type %T", name))
	}
}

// LazyNode wraps a lazy function in a node.
func LazyNode(l Lazy) *VNode {
	return &VNode{Kind: KindLazy, Lazy: l}
}

// Flatten turns a children argument list into nodes. Slices are expanded
// depth-first, nil and booleans are skipped, strings (including empty ones)
// and numbers become text nodes and lazy functions become lazy nodes.
func Flatten(children ...any) []*VNode {
	out := make([]*VNode, 0, len(children))
	return appendChildren(out, children)
}

func appendChildren(out []*VNode, children []any) []*VNode {
	for _, child := range children {
		out = appendChild(out, child)
	}
	return out
}

func appendChild(out []*VNode, child any) []*VNode {
	switch v := child.(type) {
	case nil, bool:
		return out
	case *VNode:
		if v != nil {
			out = append(out, v)
		}
	case []*VNode:
		for _, c := range v {
			if c != nil {
				out = append(out, c)
			}
		}
	case []any:
		out = appendChildren(out, v)
	case []string:
		for _, s := range v {
			out = append(out, Text(s))
		}
	case string:
		out = append(out, Text(v))
	case int:
		out = append(out, Text(strconv.Itoa(v)))
	case int8, int16, int32, int64:
		out = append(out, Text(fmt.Sprint(v)))
	case uint, uint8, uint16, uint32, uint64:
		out = append(out, Text(fmt.Sprint(v)))
	case float32:
		out = append(out, Text(strconv.FormatFloat(float64(v), 'f', -1, 32)))
	case float64:
		out = append(out, Text(strconv.FormatFloat(v, 'f', -1, 64)))
	case Lazy:
		if v != nil {
			out = append(out, LazyNode(v))
		}
	case func() *VNode:
		if v != nil {
			out = append(out, LazyNode(v))
		}
	case fmt.Stringer:
		out = append(out, Text(v.String()))
	default:
		panic(fmt.Sprintf("vdom: unsupported child of type %T", child))
	}
	return out
}

func keyOf(v any) string {
	switch k := v.(type) {
	case nil:
		return ""
	case string:
		return k
	default:
		return fmt.Sprint(k)
	}
}
