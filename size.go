package packer

import (
	"encoding/binary"
	"reflect"
)

// SizeOf returns the exact number of bytes EncodeValue will emit for v,
// computed recursively without materializing the encoding. User
// aggregates call this from inside their own PackedSize implementation,
// mirroring the teacher's non-recursive public size entry point.
func SizeOf(v any) int {
	if v == nil {
		return 0
	}
	return sizeOfValue(reflect.ValueOf(v))
}

func sizeOfValue(rv reflect.Value) int {
	t := rv.Type()
	switch cat := ClassifyType(t); cat {
	case CategoryEmpty:
		return 0
	case CategoryByte8, CategoryByte16, CategoryByte32, CategoryByte64, CategoryFloat32, CategoryFloat64:
		return byteWidth(cat)
	case CategoryPOD:
		return HeaderSize + binary.Size(rv.Interface())
	case CategoryPair:
		first, second := valueForInterface(rv, pairLikeType).(PairLike).Elems()
		return HeaderSize + sizeOfAny(first) + sizeOfAny(second)
	case CategoryVariant:
		vl := valueForInterface(rv, variantLikeType).(VariantLike)
		return HeaderSize + 4 + sizeOfAny(vl.ActiveValue())
	case CategoryTuple:
		elems := valueForInterface(rv, tupleLikeType).(TupleLike).Elems()
		total := HeaderSize
		for _, e := range elems {
			total += sizeOfAny(e)
		}
		return total
	case CategorySeqContainer:
		return HeaderSize + sizeOfSeq(rv, t)
	case CategoryAsoContainer:
		return HeaderSize + sizeOfAso(rv, t)
	case CategoryCustom:
		return valueForInterface(rv, selferType).(SelfSizer).PackedSize()
	default:
		panic(&UnsupportedTypeError{Type: t})
	}
}

func sizeOfAny(v any) int {
	if v == nil {
		return 0
	}
	return sizeOfValue(reflect.ValueOf(v))
}

func sizeOfSeq(rv reflect.Value, t reflect.Type) int {
	switch {
	case t.Kind() == reflect.String:
		return rv.Len()
	case t.Kind() == reflect.Slice || t.Kind() == reflect.Array:
		elemType := t.Elem()
		n := rv.Len()
		if w := byteWidth(ClassifyType(elemType)); w > 0 {
			return n * w
		}
		total := 0
		for i := 0; i < n; i++ {
			total += sizeOfValue(rv.Index(i))
		}
		return total
	default:
		return sizeOfCustomSeq(rv, t)
	}
}

func sizeOfCustomSeq(rv reflect.Value, t reflect.Type) int {
	if implementsEither(t, seqLikeType) {
		sl := valueForInterface(rv, seqLikeType).(SeqLike)
		n := sl.SeqLen()
		if w := byteWidth(ClassifyType(sl.ElemType())); w > 0 {
			return n * w
		}
		total := 0
		for i := 0; i < n; i++ {
			total += sizeOfAny(sl.SeqAt(i))
		}
		return total
	}
	usl := valueForInterface(rv, unsizedSeqLikeType).(UnsizedSeqLike)
	total := 0
	usl.SeqEach(func(v any) bool {
		total += sizeOfAny(v)
		return true
	})
	return total
}

func sizeOfAso(rv reflect.Value, t reflect.Type) int {
	switch {
	case t.Kind() == reflect.Map:
		total := 0
		iter := rv.MapRange()
		for iter.Next() {
			total += HeaderSize + sizeOfValue(iter.Key()) + sizeOfValue(iter.Value())
		}
		return total
	default:
		return sizeOfCustomAso(rv, t)
	}
}

func sizeOfCustomAso(rv reflect.Value, t reflect.Type) int {
	if implementsEither(t, setLikeType) {
		sl := valueForInterface(rv, setLikeType).(SetLike)
		total := 0
		sl.SetEach(func(v any) bool {
			total += sizeOfAny(v)
			return true
		})
		return total
	}
	al := valueForInterface(rv, asoLikeType).(AsoLike)
	total := 0
	al.AsoEach(func(k, v any) bool {
		total += HeaderSize + sizeOfAny(k) + sizeOfAny(v)
		return true
	})
	return total
}
