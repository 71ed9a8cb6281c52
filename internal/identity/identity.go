// Package identity decides whether two dynamically typed values are the same
// for change detection.
//
// Comparable values compare with ==. Maps and slices
// compare by reference. Functions compare by closure: handing back the func
// value that was read is no change, while a freshly built closure is.
package identity

import (
	"reflect"
	"unsafe"
)

// Same reports whether a and b hold the same value.
func Same(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}

	switch va.Kind() {
	case reflect.Func:
		return closure(a) == closure(b)
	case reflect.Map, reflect.Slice:
		if va.IsNil() || vb.IsNil() {
			return va.IsNil() && vb.IsNil()
		}
		return va.UnsafePointer() == vb.UnsafePointer() && va.Len() == vb.Len()
	}

	if !va.Comparable() {
		return false
	}
	return va.Equal(vb)
}

// closure returns the data word of an interface holding a func, which points
// at the closure the func value refers to.
func closure(fn any) unsafe.Pointer {
	return (*[2]unsafe.Pointer)(unsafe.Pointer(&fn))[1]
}
