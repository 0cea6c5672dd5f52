package domain

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// DecodeCollection unmarshals a stored collection into target, which must be a
// non-nil pointer. Decoding is all or nothing: on error target is left
// unchanged, even when encoding/json had already decoded some elements.
func DecodeCollection(raw []byte, target any) error {
	dst := reflect.ValueOf(target)
	if dst.Kind() != reflect.Pointer || dst.IsNil() {
		return fmt.Errorf("decode collection: target must be a non-nil pointer, got %T", target)
	}

	tmp := reflect.New(dst.Elem().Type())
	if err := json.Unmarshal(raw, tmp.Interface()); err != nil {
		return err
	}
	dst.Elem().Set(tmp.Elem())
	return nil
}
