package packer

import (
	"bytes"
	"encoding/binary"
	"math"
	"reflect"
)

// EncodeValue writes v's wire representation into w, dispatching on v's
// structural category. This is the package's recursive encode entry
// point; SizeOf mirrors its byte accounting exactly.
func EncodeValue[T any](w BufferWriter, v T) {
	encodeValue(w, reflect.ValueOf(v))
}

func encodeValue(w BufferWriter, rv reflect.Value) {
	t := rv.Type()
	switch cat := ClassifyType(t); cat {
	case CategoryEmpty:
		return
	case CategoryByte8, CategoryByte16, CategoryByte32, CategoryByte64, CategoryFloat32, CategoryFloat64:
		writePrimitive(w, rv, cat)
	case CategoryPOD:
		encodePOD(w, rv)
	case CategoryPair:
		first, second := valueForInterface(rv, pairLikeType).(PairLike).Elems()
		WriteHeader(w, newHeader(CategoryPair, CategoryEmpty, 2))
		encodeAny(w, first)
		encodeAny(w, second)
	case CategoryVariant:
		vl := valueForInterface(rv, variantLikeType).(VariantLike)
		active := vl.ActiveValue()
		WriteHeader(w, newHeader(CategoryVariant, categoryOfAny(active), uint32(len(vl.Alternatives()))))
		writeU32(w, uint32(vl.ActiveIndex()))
		encodeAny(w, active)
	case CategoryTuple:
		elems := valueForInterface(rv, tupleLikeType).(TupleLike).Elems()
		WriteHeader(w, newHeader(CategoryTuple, CategoryEmpty, uint32(len(elems))))
		for _, e := range elems {
			encodeAny(w, e)
		}
	case CategorySeqContainer:
		encodeSeq(w, rv, t)
	case CategoryAsoContainer:
		encodeAso(w, rv, t)
	case CategoryCustom:
		EncodeSelf(w, valueForInterface(rv, selferType).(Selfer))
	default:
		panic(&UnsupportedTypeError{Type: t})
	}
}

// encodeAny encodes a dynamically typed element, used wherever the
// static element type is only known per-value (pair sides, tuple
// elements, the active alternative of a variant, associative-container
// keys/values surfaced through AsoLike/SetLike).
func encodeAny(w BufferWriter, v any) {
	if v == nil {
		return
	}
	encodeValue(w, reflect.ValueOf(v))
}

func categoryOfAny(v any) Category {
	if v == nil {
		return CategoryEmpty
	}
	return ClassifyType(reflect.TypeOf(v))
}

func writeU32(w BufferWriter, v uint32) {
	var buf [4]byte
	Order.PutUint32(buf[:], v)
	w.WriteRaw(buf[:])
}

func writePrimitive(w BufferWriter, rv reflect.Value, cat Category) {
	switch cat {
	case CategoryByte8:
		w.WriteRaw([]byte{byte(uint64Bits(rv))})
	case CategoryByte16:
		var buf [2]byte
		Order.PutUint16(buf[:], uint16(uint64Bits(rv)))
		w.WriteRaw(buf[:])
	case CategoryByte32:
		var buf [4]byte
		Order.PutUint32(buf[:], uint32(uint64Bits(rv)))
		w.WriteRaw(buf[:])
	case CategoryByte64:
		var buf [8]byte
		Order.PutUint64(buf[:], uint64Bits(rv))
		w.WriteRaw(buf[:])
	case CategoryFloat32:
		var buf [4]byte
		Order.PutUint32(buf[:], math.Float32bits(float32(rv.Float())))
		w.WriteRaw(buf[:])
	case CategoryFloat64:
		var buf [8]byte
		Order.PutUint64(buf[:], math.Float64bits(rv.Float()))
		w.WriteRaw(buf[:])
	}
}

func encodePOD(w BufferWriter, rv reflect.Value) {
	v := rv.Interface()
	width := binary.Size(v)
	WriteHeader(w, newHeader(CategoryPOD, CategoryEmpty, uint32(width)))
	buf, err := binary.Append(nil, Order, v)
	if err != nil {
		panic(err)
	}
	w.WriteRaw(buf)
}

func encodeSeq(w BufferWriter, rv reflect.Value, t reflect.Type) {
	switch {
	case t.Kind() == reflect.String:
		s := rv.String()
		WriteHeader(w, newHeader(CategorySeqContainer, CategoryByte8, uint32(len(s))))
		w.WriteRaw([]byte(s))
	case t.Kind() == reflect.Slice || t.Kind() == reflect.Array:
		elemType := t.Elem()
		elemCat := ClassifyType(elemType)
		n := rv.Len()
		WriteHeader(w, newHeader(CategorySeqContainer, elemCat, uint32(n)))
		for i := 0; i < n; i++ {
			encodeValue(w, rv.Index(i))
		}
	default:
		encodeCustomSeq(w, rv, t)
	}
}

// encodeCustomSeq handles both sized (SeqLike) and unsized
// (UnsizedSeqLike) custom containers. An unsized container's length is
// unknown until fully walked, so its elements are first serialized into
// a scratch bufWriter over a pooled bytes.Buffer; once the count is
// known the real header is
// written to w followed by the scratch bytes, grounded on the pooled
// scratch-buffer pattern in bufpool.go.
func encodeCustomSeq(w BufferWriter, rv reflect.Value, t reflect.Type) {
	if implementsEither(t, seqLikeType) {
		sl := valueForInterface(rv, seqLikeType).(SeqLike)
		n := sl.SeqLen()
		WriteHeader(w, newHeader(CategorySeqContainer, ClassifyType(sl.ElemType()), uint32(n)))
		for i := 0; i < n; i++ {
			encodeAny(w, sl.SeqAt(i))
		}
		return
	}
	usl := valueForInterface(rv, unsizedSeqLikeType).(UnsizedSeqLike)
	elemCat := ClassifyType(usl.ElemType())
	buf := scratchBufPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer scratchBufPool.Put(buf)
	scratch := &bufWriter{buf: buf}
	count := 0
	usl.SeqEach(func(v any) bool {
		encodeAny(scratch, v)
		count++
		return true
	})
	WriteHeader(w, newHeader(CategorySeqContainer, elemCat, uint32(count)))
	w.WriteRaw(buf.Bytes())
}

// bufWriter adapts a *bytes.Buffer to BufferWriter for the scratch-pass
// encode of an unsized iterable, whose length is unknown until fully
// walked.
type bufWriter struct {
	buf *bytes.Buffer
}

func (w *bufWriter) WriteRaw(p []byte) int { w.buf.Write(p); return len(p) }
func (w *bufWriter) Count() int            { return w.buf.Len() }
func (w *bufWriter) Cap() int              { return -1 }

func encodeAso(w BufferWriter, rv reflect.Value, t reflect.Type) {
	switch {
	case t.Kind() == reflect.Map:
		keys := rv.MapKeys()
		WriteHeader(w, newHeader(CategoryAsoContainer, CategoryPair, uint32(len(keys))))
		for _, k := range keys {
			WriteHeader(w, newHeader(CategoryPair, CategoryEmpty, 2))
			encodeValue(w, k)
			encodeValue(w, rv.MapIndex(k))
		}
	default:
		encodeCustomAso(w, rv, t)
	}
}

func encodeCustomAso(w BufferWriter, rv reflect.Value, t reflect.Type) {
	if implementsEither(t, setLikeType) {
		sl := valueForInterface(rv, setLikeType).(SetLike)
		WriteHeader(w, newHeader(CategoryAsoContainer, ClassifyType(sl.ElemType()), uint32(sl.SetLen())))
		sl.SetEach(func(v any) bool {
			encodeAny(w, v)
			return true
		})
		return
	}
	al := valueForInterface(rv, asoLikeType).(AsoLike)
	WriteHeader(w, newHeader(CategoryAsoContainer, CategoryPair, uint32(al.AsoLen())))
	al.AsoEach(func(k, v any) bool {
		WriteHeader(w, newHeader(CategoryPair, CategoryEmpty, 2))
		encodeAny(w, k)
		encodeAny(w, v)
		return true
	})
}
