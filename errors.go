package sortable

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrTypeMismatch is matched (via errors.Is) by every *TypeError.
var ErrTypeMismatch = errors.New("sortable: type mismatch")

// TypeError reports an argument whose runtime type does not fit the
// operation. It is returned before any state changes.
type TypeError struct {
	Op   string // operation that rejected the value, e.g. "SetItems"
	Want string
	Got  string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("sortable: %s: required %s, but entered %s", e.Op, e.Want, e.Got)
}

// Is makes errors.Is(err, ErrTypeMismatch) true.
func (e *TypeError) Is(target error) bool {
	return target == ErrTypeMismatch
}

func typeMismatch(op, want string, got any) *TypeError {
	return &TypeError{Op: op, Want: want, Got: describeType(got)}
}

// describeType names v's dynamic type the way error messages print it.
func describeType(v any) string {
	if v == nil {
		return "nil"
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Func, reflect.Interface, reflect.Chan:
		if rv.IsNil() {
			return "nil " + rv.Type().String()
		}
	}
	return rv.Type().String()
}

// toItems converts any slice or array into a backing slice.
func toItems(op string, v any) ([]any, error) {
	if items, ok := v.([]any); ok {
		return items, nil
	}
	if v == nil {
		return nil, typeMismatch(op, "slice", v)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		items := make([]any, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}
		return items, nil
	}
	return nil, typeMismatch(op, "slice", v)
}
