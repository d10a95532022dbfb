package rtl

import (
	"log"
	"reflect"
)

// A Visitor receives one named value. Width is the number of bits the value
// occupies.
type Visitor func(name string, width int, value uint64)

// A Probe exports named values for introspection. Visiting must not change
// the state of the probed object.
type Probe interface {
	Probe(visit Visitor)
}

// Flatten visits every boolean, integer and nested struct field of v. Field
// names are joined to the prefix with dots. Unexported fields are included.
func Flatten(prefix string, v any, visit Visitor) {
	flattenValue(prefix, reflect.ValueOf(v), visit)
}

func flattenValue(name string, v reflect.Value, visit Visitor) {
	switch v.Kind() {
	case reflect.Bool:
		visit(name, 1, BoolToUint(v.Bool()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64, reflect.Uintptr:
		visit(name, v.Type().Bits(), v.Uint())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32,
		reflect.Int64:
		visit(name, v.Type().Bits(), uint64(v.Int()))
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			flattenValue(name+"."+t.Field(i).Name, v.Field(i), visit)
		}
	case reflect.Pointer:
		if !v.IsNil() {
			flattenValue(name, v.Elem(), visit)
		}
	default:
		log.Panicf("cannot probe %s of kind %s", name, v.Kind())
	}
}

// ProbeSignal visits a signal under its own name.
func ProbeSignal[T comparable](s *Signal[T], visit Visitor) {
	Flatten(s.Name(), s.Read(), visit)
}

// BoolToUint converts a bool to 0 or 1.
func BoolToUint(b bool) uint64 {
	if b {
		return 1
	}

	return 0
}
