package render

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/vango-dev/hyperoop/pkg/action"
	"github.com/vango-dev/hyperoop/pkg/state"
	"github.com/vango-dev/hyperoop/pkg/vdom"
)

func spanBool(span sdktrace.ReadOnlySpan, key string) (bool, bool) {
	for _, kv := range span.Attributes() {
		if kv.Key == attribute.Key(key) {
			return kv.Value.AsBool(), true
		}
	}
	return false, false
}

func TestRenderSpans(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	defer tp.Shutdown(context.Background())

	acts := action.New(state.Map{"text": "a"})
	view := func() *vdom.VNode {
		return vdom.Div(acts.State().Get("text"))
	}
	body, _, l := mount(t, view, acts,
		WithTracer(tp.Tracer("render-test")),
		WithErrorHandler(func(error) {}),
	)

	acts.State().Set("text", "b")
	l.Drain()

	div := body.QuerySelector("div")
	div.RemoveChild(div.ChildNodes()[0])
	acts.State().Set("text", "c")
	l.Drain()

	spans := sr.Ended()
	if len(spans) != 3 {
		t.Fatalf("recorded %d spans, want 3", len(spans))
	}

	for _, span := range spans {
		if span.Name() != "hyperoop.render" {
			t.Errorf("span name = %q", span.Name())
		}
	}

	if v, ok := spanBool(spans[0], "hyperoop.recycling"); !ok || !v {
		t.Errorf("first pass recycling = %v (set %v), want true", v, ok)
	}
	if v, _ := spanBool(spans[1], "hyperoop.recycling"); v {
		t.Error("second pass should not be recycling")
	}
	if v, ok := spanBool(spans[1], "hyperoop.skipped"); !ok || v {
		t.Errorf("second pass skipped = %v (set %v), want false", v, ok)
	}

	if spans[1].Status().Code == codes.Error {
		t.Error("second pass marked as error")
	}
	if spans[2].Status().Code != codes.Error {
		t.Errorf("failed pass status = %v, want error", spans[2].Status().Code)
	}
	if len(spans[2].Events()) == 0 {
		t.Error("failed pass has no recorded error event")
	}
}
