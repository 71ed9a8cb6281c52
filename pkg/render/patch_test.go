package render

import (
	"strings"
	"testing"

	"github.com/vango-dev/hyperoop/pkg/action"
	"github.com/vango-dev/hyperoop/pkg/dom"
	"github.com/vango-dev/hyperoop/pkg/dom/memdom"
	"github.com/vango-dev/hyperoop/pkg/loop"
	"github.com/vango-dev/hyperoop/pkg/state"
	"github.com/vango-dev/hyperoop/pkg/vdom"
)

// keyedList renders the "items" list as keyed <li> elements and counts
// oncreate calls.
func keyedList(acts *action.Actions, created *int) vdom.Lazy {
	return func() *vdom.VNode {
		items := state.Value[[]string](acts.State(), "items")
		lis := make([]any, 0, len(items))
		for _, item := range items {
			lis = append(lis, vdom.Li(
				vdom.Key(item),
				vdom.OnCreate(func(dom.Element) { *created++ }),
				item,
			))
		}
		return vdom.Ul(lis...)
	}
}

func liTexts(body *memdom.Element) string {
	var out []string
	for _, li := range body.QuerySelectorAll("li") {
		out = append(out, li.TextContent())
	}
	return strings.Join(out, ",")
}

func liByText(body *memdom.Element) map[string]*memdom.Element {
	out := make(map[string]*memdom.Element)
	for _, li := range body.QuerySelectorAll("li") {
		out[li.TextContent()] = li
	}
	return out
}

func TestKeyedReorder(t *testing.T) {
	tests := []struct {
		name string
		from []string
		to   []string
	}{
		{"rotate right", []string{"a", "b", "c", "d", "e"}, []string{"e", "a", "b", "c", "d"}},
		{"rotate left", []string{"a", "b", "c", "d", "e"}, []string{"b", "c", "d", "e", "a"}},
		{"reverse", []string{"a", "b", "c"}, []string{"c", "b", "a"}},
		{"swap", []string{"a", "b", "c"}, []string{"b", "a", "c"}},
		{"identity", []string{"a", "b"}, []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acts := action.New(state.Map{"items": tt.from})
			created := 0
			body, _, l := mount(t, keyedList(acts, &created), acts)
			if created != len(tt.from) {
				t.Fatalf("first pass created %d, want %d", created, len(tt.from))
			}
			before := liByText(body)

			created = 0
			acts.State().Set("items", tt.to)
			l.Drain()

			if got, want := liTexts(body), strings.Join(tt.to, ","); got != want {
				t.Errorf("order = %s, want %s", got, want)
			}
			if created != 0 {
				t.Errorf("reorder created %d elements, want 0", created)
			}
			for text, li := range liByText(body) {
				if before[text] != li {
					t.Errorf("element for %q was replaced", text)
				}
			}
		})
	}
}

func TestKeyedInsertAndRemove(t *testing.T) {
	acts := action.New(state.Map{"items": []string{"a", "b", "c"}})
	created := 0
	body, _, l := mount(t, keyedList(acts, &created), acts)
	before := liByText(body)

	created = 0
	acts.State().Set("items", []string{"c", "x", "a"})
	l.Drain()

	if got := liTexts(body); got != "c,x,a" {
		t.Errorf("order = %s, want c,x,a", got)
	}
	if created != 1 {
		t.Errorf("created %d, want 1", created)
	}
	after := liByText(body)
	if after["a"] != before["a"] || after["c"] != before["c"] {
		t.Error("kept keyed elements were replaced")
	}
	if before["b"].ParentNode() != nil {
		t.Error("removed element is still attached")
	}
}

func TestUnkeyedChildrenPatchInPlace(t *testing.T) {
	acts := action.New(state.Map{"items": []string{"a", "b", "c"}})
	view := func() *vdom.VNode {
		items := state.Value[[]string](acts.State(), "items")
		return vdom.Ul(vdom.Range(items, func(s string, _ int) *vdom.VNode { return vdom.Li(s) }))
	}
	body, _, l := mount(t, view, acts)
	first := body.QuerySelector("li")

	acts.State().Set("items", []string{"z"})
	l.Drain()

	if got := liTexts(body); got != "z" {
		t.Errorf("items = %s, want z", got)
	}
	if body.QuerySelector("li") != first {
		t.Error("first <li> was not reused")
	}

	acts.State().Set("items", []string{"z", "y", "x", "w"})
	l.Drain()
	if got := liTexts(body); got != "z,y,x,w" {
		t.Errorf("items = %s, want z,y,x,w", got)
	}
}

func TestLifecycleOrder(t *testing.T) {
	var calls []string
	hook := func(name string) vdom.CreateHook {
		return func(dom.Element) { calls = append(calls, name) }
	}
	view := func() *vdom.VNode {
		return vdom.Div(vdom.OnCreate(hook("outer")),
			vdom.Span(vdom.OnCreate(hook("first"))),
			vdom.P(vdom.OnCreate(hook("second")),
				vdom.Span(vdom.OnCreate(hook("inner"))),
			),
		)
	}
	mount(t, view, nil)

	want := "inner,second,first,outer"
	if got := strings.Join(calls, ","); got != want {
		t.Errorf("oncreate order = %s, want %s", got, want)
	}
}

func TestOnCreateSeesAttachedElement(t *testing.T) {
	var parent dom.Node
	view := func() *vdom.VNode {
		return vdom.Div(vdom.Span(vdom.OnCreate(func(el dom.Element) { parent = el.ParentNode() })))
	}
	body, _, _ := mount(t, view, nil)

	if parent == nil || parent != dom.Node(body.QuerySelector("div")) {
		t.Errorf("oncreate ran before the element was attached")
	}
}

func TestOnUpdateReceivesOldProps(t *testing.T) {
	acts := action.New(state.Map{"title": "one"})
	var seen []string
	view := func() *vdom.VNode {
		return vdom.Div(
			vdom.AttrOf("title", acts.State().Get("title")),
			vdom.OnUpdate(func(el dom.Element, old vdom.Props) {
				title, _ := el.GetAttribute("title")
				seen = append(seen, old["title"].(string)+"->"+title)
			}),
		)
	}
	_, _, l := mount(t, view, acts)
	if len(seen) != 0 {
		t.Fatalf("onupdate ran on creation: %v", seen)
	}

	acts.State().Set("title", "two")
	l.Drain()

	if len(seen) != 1 || seen[0] != "one->two" {
		t.Errorf("onupdate calls = %v, want [one->two]", seen)
	}
}

func TestOnRemoveDefersRemoval(t *testing.T) {
	acts := action.New(state.Map{"show": true})
	var done func()
	view := func() *vdom.VNode {
		return vdom.Div(vdom.If(state.Value[bool](acts.State(), "show"),
			vdom.P(vdom.OnRemove(func(el dom.Element, d func()) { done = d }), "bye"),
		))
	}
	body, _, l := mount(t, view, acts)
	p := body.QuerySelector("p")

	acts.State().Set("show", false)
	l.Drain()

	if done == nil {
		t.Fatal("onremove was not called")
	}
	if p.ParentNode() == nil {
		t.Fatal("element removed before done was called")
	}

	done()
	if p.ParentNode() != nil {
		t.Error("element still attached after done")
	}
	done()
	if n := len(body.QuerySelector("div").ChildNodes()); n != 0 {
		t.Errorf("div has %d children, want 0", n)
	}
}

func TestOnDestroyRunsForSubtree(t *testing.T) {
	acts := action.New(state.Map{"show": true})
	var calls []string
	destroy := func(name string) vdom.DestroyHook {
		return func(dom.Element) { calls = append(calls, name) }
	}
	view := func() *vdom.VNode {
		return vdom.Div(vdom.If(state.Value[bool](acts.State(), "show"),
			vdom.Section(vdom.OnDestroy(destroy("section")),
				vdom.P(vdom.OnDestroy(destroy("p")), vdom.Span(vdom.OnDestroy(destroy("span")))),
			),
		))
	}
	body, _, l := mount(t, view, acts)

	acts.State().Set("show", false)
	l.Drain()

	if got := strings.Join(calls, ","); got != "span,p,section" {
		t.Errorf("ondestroy order = %s, want span,p,section", got)
	}
	if body.QuerySelector("section") != nil {
		t.Error("section still attached")
	}
}

func TestRecycleExistingMarkup(t *testing.T) {
	doc := memdom.NewDocument()
	body := doc.Body()
	if err := body.SetInnerHTML(`<div id="app"><P>hello</P></div>`); err != nil {
		t.Fatal(err)
	}
	div := body.QuerySelector("div")
	p := body.QuerySelector("p")

	var created []string
	var updated int
	view := func() *vdom.VNode {
		return vdom.Div(vdom.ID("app"),
			vdom.OnCreate(func(dom.Element) { created = append(created, "div") }),
			vdom.OnUpdate(func(dom.Element, vdom.Props) { updated++ }),
			vdom.P(vdom.OnCreate(func(dom.Element) { created = append(created, "p") }), "hello"),
		)
	}

	l := loop.New()
	m := newTestMetrics(t)
	r := Init(body, view, nil, WithScheduler(l), WithLogger(quietLogger()), WithMetrics(m))
	l.Drain()

	if body.QuerySelector("div") != div || body.QuerySelector("p") != p {
		t.Error("existing elements were replaced")
	}
	if got := strings.Join(created, ","); got != "p,div" {
		t.Errorf("oncreate calls = %s, want p,div", got)
	}
	if updated != 0 {
		t.Errorf("onupdate ran %d times while recycling", updated)
	}
	if got := counterValue(m.created); got != 0 {
		t.Errorf("nodes created = %v, want 0", got)
	}

	r.ScheduleRender()
	l.Drain()
	if updated != 1 || len(created) != 2 {
		t.Errorf("second pass: updated = %d, created = %v", updated, created)
	}
}

func TestRecycleDropsKeys(t *testing.T) {
	doc := memdom.NewDocument()
	body := doc.Body()
	if err := body.SetInnerHTML(`<ul><li>a</li><li>b</li></ul>`); err != nil {
		t.Fatal(err)
	}
	before := liByText(body)

	acts := action.New(state.Map{"items": []string{"a", "b"}})
	created := 0
	l := loop.New()
	Init(body, keyedList(acts, &created), acts, WithScheduler(l), WithLogger(quietLogger()))
	l.Drain()

	after := liByText(body)
	if after["a"] != before["a"] || after["b"] != before["b"] {
		t.Error("recycled list items were replaced")
	}
	if created != 2 {
		t.Errorf("oncreate ran %d times, want 2", created)
	}

	created = 0
	acts.State().Set("items", []string{"b", "a"})
	l.Drain()
	if got := liTexts(body); got != "b,a" {
		t.Errorf("order = %s, want b,a", got)
	}
	if created != 0 {
		t.Errorf("reorder after recycling created %d", created)
	}
}

func TestSVGNamespace(t *testing.T) {
	view := func() *vdom.VNode {
		return vdom.Svg(vdom.AttrOf("viewBox", "0 0 10 10"),
			vdom.H("circle", vdom.Props{"cx": 5, "class": "dot"}),
		)
	}
	body, _, _ := mount(t, view, nil)

	svg := body.QuerySelector("svg")
	circle := body.QuerySelector("circle")
	if svg.NamespaceURI() != dom.SVGNamespace || circle.NamespaceURI() != dom.SVGNamespace {
		t.Fatalf("namespaces = %q, %q", svg.NamespaceURI(), circle.NamespaceURI())
	}
	if v, _ := svg.GetAttribute("viewBox"); v != "0 0 10 10" {
		t.Errorf("viewBox = %q", v)
	}
	if v, _ := circle.GetAttribute("cx"); v != "5" {
		t.Errorf("cx = %q", v)
	}
}

func TestLazyChildren(t *testing.T) {
	acts := action.New(state.Map{"n": 1})
	calls := 0
	child := func() *vdom.VNode {
		calls++
		return vdom.Span(state.Value[int](acts.State(), "n"))
	}
	view := func() *vdom.VNode { return vdom.Div(vdom.Lazy(child)) }
	body, _, l := mount(t, view, acts)

	acts.State().Set("n", 2)
	l.Drain()

	if got := body.InnerHTML(); got != "<div><span>2</span></div>" {
		t.Errorf("InnerHTML = %q", got)
	}
	if calls != 2 {
		t.Errorf("lazy child evaluated %d times, want 2", calls)
	}
}
