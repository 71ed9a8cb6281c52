// Package state wraps a plain key/value map so that writes and deletes
// notify a callback, optionally recording each change in a history log.
//
// Two views can share one backing map: a live view that commits immediately
// and a reversible view whose changes become undo/redo records. A write is
// visible through both; only reversible writes can be undone.
package state

import (
	"sort"

	"github.com/vango-dev/hyperoop/internal/identity"
	"github.com/vango-dev/hyperoop/pkg/history"
)

// Map is the backing state.
type Map map[string]any

// Clone returns a shallow copy of m.
func (m Map) Clone() Map {
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// View is a change-notifying view over a Map.
type View struct {
	target Map
	after  func()
	hist   *history.Log
}

// Wrap returns a view whose writes commit to target and then call after.
func Wrap(target Map, after func()) *View {
	return &View{target: target, after: after}
}

// WrapHistory returns a view whose writes are added to hist as reversible
// records. The record is applied as soon as it is added. WrapHistory returns
// nil when hist is nil.
func WrapHistory(target Map, after func(), hist *history.Log) *View {
	if hist == nil {
		return nil
	}
	return &View{target: target, after: after, hist: hist}
}

// Reversible reports whether writes through v are recorded.
func (v *View) Reversible() bool {
	return v.hist != nil
}

// Get returns the value stored under key, or nil.
func (v *View) Get(key string) any {
	return v.target[key]
}

// Lookup returns the value stored under key and whether it is present.
func (v *View) Lookup(key string) (any, bool) {
	val, ok := v.target[key]
	return val, ok
}

// Has reports whether key is present.
func (v *View) Has(key string) bool {
	_, ok := v.target[key]
	return ok
}

// Keys returns the present keys in sorted order.
func (v *View) Keys() []string {
	keys := make([]string, 0, len(v.target))
	for k := range v.target {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of present keys.
func (v *View) Len() int {
	return len(v.target)
}

// Set stores value under key. Writing the value already stored under a
// present key does nothing.
func (v *View) Set(key string, value any) {
	old, was := v.target[key]
	if was && identity.Same(old, value) {
		return
	}

	if v.hist == nil {
		v.target[key] = value
		v.notify()
		return
	}

	v.hist.Add(history.Record{
		Redo: func() {
			v.target[key] = value
			v.notify()
		},
		Undo: func() {
			if was {
				v.target[key] = old
			} else {
				delete(v.target, key)
			}
			v.notify()
		},
	})
}

// Delete removes key. Deleting an absent key does nothing.
func (v *View) Delete(key string) {
	old, was := v.target[key]
	if !was {
		return
	}

	if v.hist == nil {
		delete(v.target, key)
		v.notify()
		return
	}

	v.hist.Add(history.Record{
		Redo: func() {
			delete(v.target, key)
			v.notify()
		},
		Undo: func() {
			v.target[key] = old
			v.notify()
		},
	})
}

func (v *View) notify() {
	if v.after != nil {
		v.after()
	}
}

// Value returns the value under key converted to T, or the zero T when the
// key is absent or holds another type.
func Value[T any](v *View, key string) T {
	val, _ := v.target[key].(T)
	return val
}
