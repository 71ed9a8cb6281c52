// Package snapshot stores pre-rendered markup so that a later mount can
// recycle it instead of building the DOM from scratch.
//
// FileStore keeps one file per snapshot in a directory, BoltStore one key in
// a bbolt database, RedisStore one string key under a prefix and S3Store one
// object under a key prefix.
//
//	store, _ := snapshot.NewFileStore("snapshots")
//	snapshot.Capture(ctx, store, "todo", view())
//	...
//	snapshot.Mount(ctx, store, "todo", doc.Body())
package snapshot

import (
	"context"
	"strings"

	"github.com/vango-dev/hyperoop/internal/errors"
	"github.com/vango-dev/hyperoop/pkg/dom/memdom"
	"github.com/vango-dev/hyperoop/pkg/render"
	"github.com/vango-dev/hyperoop/pkg/vdom"
)

// Store persists named markup snapshots.
type Store interface {
	Save(ctx context.Context, name string, markup []byte) error

	// Load returns the markup saved under name, or an E020 error.
	Load(ctx context.Context, name string) ([]byte, error)

	// Delete removes name. Deleting a missing snapshot is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the saved names in lexical order.
	List(ctx context.Context) ([]string, error)
}

// ValidateName rejects names that could escape the store's namespace.
func ValidateName(name string) error {
	if name == "" || name == "." || strings.Contains(name, "..") ||
		strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return errors.New("E022").WithDetailf("name %q", name)
	}
	return nil
}

// Capture renders node to markup and saves it under name.
func Capture(ctx context.Context, store Store, name string, node *vdom.VNode) error {
	markup, err := render.HTML(node)
	if err != nil {
		return errors.New("E021").Wrap(err)
	}
	return store.Save(ctx, name, []byte(markup))
}

// Mount loads the snapshot name into container, replacing its children.
func Mount(ctx context.Context, store Store, name string, container *memdom.Element) error {
	markup, err := store.Load(ctx, name)
	if err != nil {
		return err
	}
	return container.SetInnerHTML(string(markup))
}
