package module

import (
	"fmt"
	"reflect"
)

// PortSet is whatever a module hands out from Ports: a single port value or
// a struct (or struct pointer) of them, like spamcheck's Ports{Checker}
type PortSet = any

// PortsOf finds the first value in m.Ports() that satisfies T. The set itself
// is tried first, then each exported field in declaration order. Nil
// interface fields never match
func PortsOf[T any](m Module) (T, bool) {
	var zero T
	p := m.Ports()
	if p == nil {
		return zero, false
	}
	if v, ok := p.(T); ok {
		return v, true
	}

	rv := reflect.ValueOf(p)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return zero, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return zero, false
	}
	for i := range rv.NumField() {
		f := rv.Field(i)
		if !f.CanInterface() || (f.Kind() == reflect.Interface && f.IsNil()) {
			continue
		}
		if v, ok := f.Interface().(T); ok {
			return v, true
		}
	}
	return zero, false
}

// MustPortsOf is PortsOf for wiring code where a missing port is a bug
func MustPortsOf[T any](m Module) T {
	if v, ok := PortsOf[T](m); ok {
		return v
	}
	panic(fmt.Sprintf("module %s: requested port not found (%s)", m.Name(), reflect.TypeFor[T]()))
}
