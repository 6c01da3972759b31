package persistence

import (
	"errors"
	"reflect"
)

var errInvalidDest = errors.New("load destination must be a non-nil pointer")

func newLike(dest any) (any, error) {
	rv := reflect.ValueOf(dest)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return nil, errInvalidDest
	}
	return reflect.New(rv.Elem().Type()).Interface(), nil
}

func assign(dest, scratch any) bool {
	reflect.ValueOf(dest).Elem().Set(reflect.ValueOf(scratch).Elem())
	return true
}
