package layout

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrUnsupportedType is returned for types that embed references
	// (pointers, slices, maps, strings, ...) which cannot survive a
	// byte-for-byte round trip through a file.
	ErrUnsupportedType = errors.New("layout: type embeds a reference")
	// ErrPlatformSized is returned in strict mode for int, uint and uintptr.
	ErrPlatformSized = errors.New("layout: platform-sized integer")
	// ErrPadding is returned in strict mode for structs with implicit padding.
	ErrPadding = errors.New("layout: implicit padding")
)

// Check reports whether values of t can be reinterpreted from raw mapped
// bytes. In strict mode t must also have the same layout on every
// architecture: no platform-sized integers and no implicit padding.
//
// Explicit padding fields (for example `_ [4]byte`) are data, not padding.
func Check(t reflect.Type, strict bool) error {
	return check(t, t.String(), strict)
}

func check(t reflect.Type, path string, strict bool) error {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return nil
	case reflect.Int, reflect.Uint, reflect.Uintptr:
		if strict {
			return fmt.Errorf("%w: %s is %s", ErrPlatformSized, path, t.Kind())
		}
		return nil
	case reflect.Array:
		return check(t.Elem(), path+"[]", strict)
	case reflect.Struct:
		return checkStruct(t, path, strict)
	default:
		return fmt.Errorf("%w: %s is %s", ErrUnsupportedType, path, t.Kind())
	}
}

func checkStruct(t reflect.Type, path string, strict bool) error {
	var end uintptr
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		fpath := path + "." + f.Name
		if err := check(f.Type, fpath, strict); err != nil {
			return err
		}
		if strict && f.Offset != end {
			return fmt.Errorf("%w: %d bytes before %s", ErrPadding, f.Offset-end, fpath)
		}
		end = f.Offset + f.Type.Size()
	}
	if strict && end != t.Size() {
		return fmt.Errorf("%w: %d trailing bytes in %s", ErrPadding, t.Size()-end, path)
	}
	return nil
}
