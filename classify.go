package packer

import (
	"encoding/binary"
	"reflect"

	"github.com/puzpuzpuz/xsync/v4"
)

// classifyCache avoids repeating the interface probes and binary.Size
// reflection walk for the same reflect.Type on every call. Grounded on
// the teacher's sizeCache in fixed.go, generalized from caching a POD
// size to caching a full category classification.
var classifyCache = xsync.NewMap[reflect.Type, Category]()

var (
	pairLikeType       = reflect.TypeFor[PairLike]()
	tupleLikeType      = reflect.TypeFor[TupleLike]()
	variantLikeType    = reflect.TypeFor[VariantLike]()
	seqLikeType        = reflect.TypeFor[SeqLike]()
	unsizedSeqLikeType = reflect.TypeFor[UnsizedSeqLike]()
	asoLikeType        = reflect.TypeFor[AsoLike]()
	setLikeType        = reflect.TypeFor[SetLike]()
	selferType         = reflect.TypeFor[Selfer]()
)

// implementsEither reports whether t or *t implements iface.
func implementsEither(t, iface reflect.Type) bool {
	if t.Implements(iface) {
		return true
	}
	if t.Kind() != reflect.Ptr {
		return reflect.PointerTo(t).Implements(iface)
	}
	return false
}

// ClassifyType returns the wire Category for a Go type, panicking with
// ErrUnsupportedType if the type has no serializable representation.
// This is the Go realization of the original's compile-time
// static_assert diagnostics: since Go has no such mechanism, the
// failure surfaces as a panic the first time the type is classified.
func ClassifyType(t reflect.Type) Category {
	if cat, ok := classifyCache.Load(t); ok {
		return cat
	}
	cat := computeClassifyType(t)
	classifyCache.Store(t, cat)
	return cat
}

func computeClassifyType(t reflect.Type) Category {
	switch t.Kind() {
	case reflect.Bool, reflect.Int8, reflect.Uint8:
		return CategoryByte8
	case reflect.Int16, reflect.Uint16:
		return CategoryByte16
	case reflect.Int32, reflect.Uint32:
		return CategoryByte32
	case reflect.Int, reflect.Int64, reflect.Uint, reflect.Uint64, reflect.Uintptr:
		return CategoryByte64
	case reflect.Float32:
		return CategoryFloat32
	case reflect.Float64:
		return CategoryFloat64
	case reflect.String:
		return CategorySeqContainer
	case reflect.Slice, reflect.Array:
		return CategorySeqContainer
	case reflect.Map:
		return CategoryAsoContainer
	case reflect.Struct:
		return classifyStruct(t)
	default:
		panic(&UnsupportedTypeError{Type: t})
	}
}

func classifyStruct(t reflect.Type) Category {
	if t.NumField() == 0 {
		return CategoryEmpty
	}
	if implementsEither(t, selferType) {
		return CategoryCustom
	}
	if implementsEither(t, pairLikeType) {
		return CategoryPair
	}
	if implementsEither(t, tupleLikeType) {
		return CategoryTuple
	}
	if implementsEither(t, variantLikeType) {
		return CategoryVariant
	}
	if implementsEither(t, seqLikeType) || implementsEither(t, unsizedSeqLikeType) {
		return CategorySeqContainer
	}
	if implementsEither(t, asoLikeType) || implementsEither(t, setLikeType) {
		return CategoryAsoContainer
	}
	for i := 0; i < t.NumField(); i++ {
		if f := t.Field(i); !f.IsExported() && f.Name != "_" {
			panic(&UnsupportedTypeError{Type: t})
		}
	}
	if isPOD(t) {
		return CategoryPOD
	}
	panic(&UnsupportedTypeError{Type: t})
}

// isPOD reports whether t is a fixed-layout struct/array binary.Size
// can measure: composed entirely of fixed-size numeric fields, no
// slices, maps, strings, pointers, or interfaces.
func isPOD(t reflect.Type) bool {
	zero := reflect.New(t).Elem().Interface()
	return binary.Size(zero) != -1
}

// valueForInterface returns rv (or its address) as an any satisfying
// iface. Custom container methods are pointer-receiver; Pair/Tuple/
// Variant methods are value-receiver. Panics if neither rv's type nor
// its pointer implements iface, which classification should already
// have ruled out.
func valueForInterface(rv reflect.Value, iface reflect.Type) any {
	t := rv.Type()
	if t.Implements(iface) {
		return rv.Interface()
	}
	pt := reflect.PointerTo(t)
	if pt.Implements(iface) {
		if rv.CanAddr() {
			return rv.Addr().Interface()
		}
		ptr := reflect.New(t)
		ptr.Elem().Set(rv)
		return ptr.Interface()
	}
	panic(&UnsupportedTypeError{Type: t})
}

// UnsupportedTypeError reports a Go type with no serializable shape.
type UnsupportedTypeError struct {
	Type reflect.Type
}

func (e *UnsupportedTypeError) Error() string {
	return ErrUnsupportedType.Error() + ": " + e.Type.String()
}

func (e *UnsupportedTypeError) Unwrap() error { return ErrUnsupportedType }
