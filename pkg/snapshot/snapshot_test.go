package snapshot

import (
	"context"
	"testing"

	"github.com/vango-dev/hyperoop/internal/errors"
	"github.com/vango-dev/hyperoop/pkg/dom/memdom"
	"github.com/vango-dev/hyperoop/pkg/vdom"
)

func TestCaptureAndMount(t *testing.T) {
	ctx := context.Background()
	store := NewS3Store(newFakeS3(), "bucket", "")

	node := vdom.Ul(vdom.ID("list"), vdom.Li(vdom.Key("a"), "one"), vdom.Li(vdom.Key("b"), "two"))
	if err := Capture(ctx, store, "list", node); err != nil {
		t.Fatalf("Capture() error = %v", err)
	}

	doc := memdom.NewDocument()
	body := doc.Body()
	body.AppendChild(doc.CreateTextNode("stale"))

	if err := Mount(ctx, store, "list", body); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if got := body.InnerHTML(); got != `<ul id="list"><li>one</li><li>two</li></ul>` {
		t.Errorf("InnerHTML() = %q", got)
	}
}

func TestMountMissing(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	doc := memdom.NewDocument()
	if err := Mount(context.Background(), store, "nope", doc.Body()); !errors.HasCode(err, "E020") {
		t.Errorf("Mount() error = %v, want E020", err)
	}
}
