package sluggable

import (
	"fmt"
	"reflect"
)

// AttributeReader is implemented by records that expose attributes by name
// instead of (or in addition to) struct fields, e.g. map-backed models.
type AttributeReader interface {
	ReadAttribute(name string) (any, error)
}

// AttributeWriter is implemented by records that accept writes by name.
type AttributeWriter interface {
	WriteAttribute(name, value string) error
}

// Identifiable is implemented by records that may already be persisted.
// The returned field excludes the record itself from existence checks, so
// regenerating the slug of a stored record does not collide with its own row.
// ok is false for records that have not been persisted yet.
type Identifiable interface {
	SlugIdentity() (field Field, ok bool)
}

// SourceFunc computes a source value from a record. It covers derived values
// and data the record does not export.
type SourceFunc func(record any) (any, error)

type readFunc func(record any) (any, error)

type writeFunc func(record any, value string) error

var (
	errorType           = reflect.TypeOf((*error)(nil)).Elem()
	attributeReaderType = reflect.TypeOf((*AttributeReader)(nil)).Elem()
	attributeWriterType = reflect.TypeOf((*AttributeWriter)(nil)).Elem()
)

// baseType strips pointers from t.
func baseType(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

func implements(t, iface reflect.Type) bool {
	return t.Implements(iface) || reflect.PointerTo(t).Implements(iface)
}

// addressable returns a pointer-receiver-capable value for record.
func addressable(record any) (reflect.Value, error) {
	rv := reflect.ValueOf(record)
	if !rv.IsValid() {
		return reflect.Value{}, ErrNilRecord
	}
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return reflect.Value{}, ErrNilRecord
		}
		if rv.Elem().Kind() != reflect.Pointer {
			return rv, nil
		}
		rv = rv.Elem()
	}
	p := reflect.New(rv.Type())
	p.Elem().Set(rv)
	return p, nil
}

// newReader resolves name on t to a field, a zero-argument method or the
// AttributeReader interface. ok is false when none of them applies.
func newReader(t reflect.Type, name string) (readFunc, bool) {
	if t.Kind() == reflect.Struct {
		if f, found := t.FieldByName(name); found && f.IsExported() {
			index := f.Index
			return func(record any) (any, error) {
				rv, err := addressable(record)
				if err != nil {
					return nil, err
				}
				fv, err := rv.Elem().FieldByIndexErr(index)
				if err != nil {
					return nil, nil
				}
				return fv.Interface(), nil
			}, true
		}
	}

	if m, found := reflect.PointerTo(t).MethodByName(name); found && isGetter(m.Type) {
		return func(record any) (any, error) {
			rv, err := addressable(record)
			if err != nil {
				return nil, err
			}
			out := rv.MethodByName(name).Call(nil)
			if len(out) == 2 && !out[1].IsNil() {
				return nil, out[1].Interface().(error)
			}
			return out[0].Interface(), nil
		}, true
	}

	if implements(t, attributeReaderType) {
		return func(record any) (any, error) {
			rv, err := addressable(record)
			if err != nil {
				return nil, err
			}
			return rv.Interface().(AttributeReader).ReadAttribute(name)
		}, true
	}

	return nil, false
}

// isGetter reports whether a method type (receiver included) takes no
// arguments and returns a value or a value and an error.
func isGetter(mt reflect.Type) bool {
	if mt.NumIn() != 1 {
		return false
	}
	switch mt.NumOut() {
	case 1:
		return true
	case 2:
		return mt.Out(1) == errorType
	}
	return false
}

// newWriter resolves the target field on t: an exported string field, a
// Set<Name>(string) method or the AttributeWriter interface.
func newWriter(t reflect.Type, name string) (writeFunc, bool) {
	if t.Kind() == reflect.Struct {
		if f, found := t.FieldByName(name); found && f.IsExported() && f.Type.Kind() == reflect.String {
			index := f.Index
			return func(record any, value string) error {
				rv := reflect.ValueOf(record)
				if rv.Kind() != reflect.Pointer || rv.IsNil() {
					return fmt.Errorf("cannot set field %s on non-pointer %T", name, record)
				}
				fv, err := reflect.Indirect(rv).FieldByIndexErr(index)
				if err != nil {
					return err
				}
				fv.SetString(value)
				return nil
			}, true
		}
	}

	setter := "Set" + name
	if m, found := reflect.PointerTo(t).MethodByName(setter); found && isSetter(m.Type) {
		return func(record any, value string) error {
			rv := reflect.ValueOf(record)
			if rv.Kind() != reflect.Pointer || rv.IsNil() {
				return fmt.Errorf("cannot call %s on non-pointer %T", setter, record)
			}
			out := rv.MethodByName(setter).Call([]reflect.Value{reflect.ValueOf(value).Convert(m.Type.In(1))})
			if len(out) == 1 && !out[0].IsNil() {
				return out[0].Interface().(error)
			}
			return nil
		}, true
	}

	if implements(t, attributeWriterType) {
		return func(record any, value string) error {
			w, ok := record.(AttributeWriter)
			if !ok {
				return fmt.Errorf("%T does not implement AttributeWriter", record)
			}
			return w.WriteAttribute(name, value)
		}, true
	}

	return nil, false
}

func isSetter(mt reflect.Type) bool {
	if mt.NumIn() != 2 || mt.In(1).Kind() != reflect.String {
		return false
	}
	switch mt.NumOut() {
	case 0:
		return true
	case 1:
		return mt.Out(0) == errorType
	}
	return false
}

// stringify converts a source value to text. Nil values and nil pointers are
// empty.
func stringify(v any) string {
	v = deref(v)
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}

// deref follows pointers; a nil pointer becomes an untyped nil.
func deref(v any) any {
	rv := reflect.ValueOf(v)
	for rv.IsValid() && rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return nil
	}
	return rv.Interface()
}

func isNilRecord(record any) bool {
	if record == nil {
		return true
	}
	rv := reflect.ValueOf(record)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
