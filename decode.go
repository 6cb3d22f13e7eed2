package packer

import (
	"bytes"
	"encoding/binary"
	"math"
	"reflect"
)

var variantType = reflect.TypeFor[Variant]()

// DecodeValue reads a T back out of r, dispatching on T's structural
// category. Any decode problem — a bad tag, a length mismatch, a
// truncated stream — yields the zero value of T rather than an error or
// panic, per the package's soft-failure decode policy. A panic can only
// escape from precheckType, before the recover below is installed,
// which happens only when T itself has no serializable shape: that is
// programmer misuse, not a data-dependent decode failure, and is
// surfaced as a diagnostic rather than swallowed.
func DecodeValue[T any](r BufferReader) (result T) {
	rt := reflect.TypeFor[T]()
	precheckType(rt)
	defer func() {
		if recover() != nil {
			result = reflect.Zero(rt).Interface().(T)
		}
	}()
	return decodeValue(r, rt).Interface().(T)
}

// precheckType walks T's entire reachable type tree and classifies each
// node, so that an ErrUnsupportedType panic for the type itself happens
// here — outside any recover — rather than mid-decode where it would
// otherwise be mistaken for a corrupt-payload soft failure.
func precheckType(rt reflect.Type) {
	switch cat := ClassifyType(rt); cat {
	case CategoryPair, CategoryTuple:
		if rt.Kind() == reflect.Struct {
			for i := 0; i < rt.NumField(); i++ {
				precheckType(rt.Field(i).Type)
			}
		}
	case CategoryVariant:
		if rt != variantType {
			for _, alt := range callOnZero(rt, "Alternatives").Interface().([]reflect.Type) {
				precheckType(alt)
			}
		}
	case CategorySeqContainer:
		switch {
		case rt.Kind() == reflect.String:
		case rt.Kind() == reflect.Slice || rt.Kind() == reflect.Array:
			precheckType(rt.Elem())
		case implementsEither(rt, seqLikeType):
			precheckType(seqContainerElemType(rt))
		case implementsEither(rt, unsizedSeqLikeType):
			precheckType(seqContainerElemType(rt))
		}
	case CategoryAsoContainer:
		switch {
		case rt.Kind() == reflect.Map:
			precheckType(rt.Key())
			precheckType(rt.Elem())
		case implementsEither(rt, setLikeType):
			precheckType(seqContainerElemType(rt))
		case implementsEither(rt, asoLikeType):
			kt, vt := asoContainerKeyValTypes(rt)
			precheckType(kt)
			precheckType(vt)
		}
	}
}

// callOnZero constructs an addressable zero value of rt (taking its
// pointer, since every container's type-discovery method is pointer-
// receiver) and calls the named niladic method on it.
func callOnZero(rt reflect.Type, method string) reflect.Value {
	return reflect.New(rt).MethodByName(method).Call(nil)[0]
}

func seqContainerElemType(rt reflect.Type) reflect.Type {
	return callOnZero(rt, "ElemType").Interface().(reflect.Type)
}

func asoContainerKeyValTypes(rt reflect.Type) (reflect.Type, reflect.Type) {
	kt := callOnZero(rt, "KeyType").Interface().(reflect.Type)
	vt := callOnZero(rt, "ValType").Interface().(reflect.Type)
	return kt, vt
}

func decodeValue(r BufferReader, rt reflect.Type) reflect.Value {
	switch cat := ClassifyType(rt); cat {
	case CategoryEmpty:
		return reflect.Zero(rt)
	case CategoryByte8, CategoryByte16, CategoryByte32, CategoryByte64, CategoryFloat32, CategoryFloat64:
		return decodePrimitive(r, rt, cat)
	case CategoryPOD:
		return decodePOD(r, rt)
	case CategoryPair:
		return decodePair(r, rt)
	case CategoryVariant:
		return decodeVariantValue(r, rt)
	case CategoryTuple:
		return decodeTuple(r, rt)
	case CategorySeqContainer:
		return decodeSeq(r, rt)
	case CategoryAsoContainer:
		return decodeAso(r, rt)
	case CategoryCustom:
		return decodeCustom(r, rt)
	default:
		panic(&UnsupportedTypeError{Type: rt})
	}
}

func setNumeric(rt reflect.Type, bits uint64, width int) reflect.Value {
	rv := reflect.New(rt).Elem()
	switch {
	case rt.Kind() == reflect.Bool:
		rv.SetBool(bits != 0)
	case isUnsignedKind(rt.Kind()):
		rv.SetUint(bits)
	default:
		rv.SetInt(signExtend(bits, width))
	}
	return rv
}

func decodePrimitive(r BufferReader, rt reflect.Type, cat Category) reflect.Value {
	width := byteWidth(cat)
	buf := r.ReadRaw(width)
	if len(buf) != width {
		return reflect.Zero(rt)
	}
	switch cat {
	case CategoryByte8:
		return setNumeric(rt, uint64(buf[0]), 1)
	case CategoryByte16:
		return setNumeric(rt, uint64(Order.Uint16(buf)), 2)
	case CategoryByte32:
		return setNumeric(rt, uint64(Order.Uint32(buf)), 4)
	case CategoryByte64:
		return setNumeric(rt, Order.Uint64(buf), 8)
	case CategoryFloat32:
		rv := reflect.New(rt).Elem()
		rv.SetFloat(float64(math.Float32frombits(Order.Uint32(buf))))
		return rv
	case CategoryFloat64:
		rv := reflect.New(rt).Elem()
		rv.SetFloat(math.Float64frombits(Order.Uint64(buf)))
		return rv
	default:
		return reflect.Zero(rt)
	}
}

func decodePOD(r BufferReader, rt reflect.Type) reflect.Value {
	h, ok := ReadHeader(r)
	if !ok || h.Main() != CategoryPOD {
		return reflect.Zero(rt)
	}
	want := binary.Size(reflect.New(rt).Elem().Interface())
	if want < 0 || int(h.Length) < want {
		return reflect.Zero(rt)
	}
	buf := r.ReadRaw(int(h.Length))
	if len(buf) != int(h.Length) {
		return reflect.Zero(rt)
	}
	rv := reflect.New(rt)
	if err := binary.Read(bytes.NewReader(buf[:want]), Order, rv.Interface()); err != nil {
		return reflect.Zero(rt)
	}
	return rv.Elem()
}

func decodePair(r BufferReader, rt reflect.Type) reflect.Value {
	h, ok := ReadHeader(r)
	if !ok || h.Main() != CategoryPair || h.Length != 2 {
		return reflect.Zero(rt)
	}
	if rt.Kind() != reflect.Struct || rt.NumField() < 2 {
		return reflect.Zero(rt)
	}
	first := decodeValue(r, rt.Field(0).Type)
	second := decodeValue(r, rt.Field(1).Type)
	rv := reflect.New(rt).Elem()
	rv.Field(0).Set(first)
	rv.Field(1).Set(second)
	return rv
}

func decodeTuple(r BufferReader, rt reflect.Type) reflect.Value {
	h, ok := ReadHeader(r)
	if !ok || h.Main() != CategoryTuple || rt.Kind() != reflect.Struct || int(h.Length) != rt.NumField() {
		return reflect.Zero(rt)
	}
	rv := reflect.New(rt).Elem()
	for i := 0; i < rt.NumField(); i++ {
		rv.Field(i).Set(decodeValue(r, rt.Field(i).Type))
	}
	return rv
}

// decodeVariantValue reconstructs a variant holder from the wire. A
// VariantN target (VariantBuilder) has a real, statically known arity
// via Alternatives(), so the wire's declared length and discriminator
// are checked against it before anything is decoded: an arity or
// out-of-range mismatch yields the target's zero value rather than
// guessing at a shape the type can't hold. The type-erased Variant has
// no such static arity and instead reconstructs whatever alternative
// the wire says is active from its category alone (see decodeDynamic);
// its Alternatives() after decode is therefore always length 1 — the
// single alternative actually present on the wire, not the original
// encode-time set, which the type-erased shape has nowhere to keep.
func decodeVariantValue(r BufferReader, rt reflect.Type) reflect.Value {
	h, ok := ReadHeader(r)
	if !ok || h.Main() != CategoryVariant {
		return reflect.Zero(rt)
	}
	idx, ok := readU32(r)
	if !ok {
		return reflect.Zero(rt)
	}
	if rt == variantType {
		value, valType := decodeDynamic(r, h.Sub())
		return reflect.ValueOf(NewVariant([]reflect.Type{valType}, int(idx), value))
	}
	ptr := reflect.New(rt)
	vl, ok := ptr.Interface().(VariantLike)
	if !ok {
		return reflect.Zero(rt)
	}
	alts := vl.Alternatives()
	if int(h.Length) != len(alts) || idx >= uint32(len(alts)) {
		return reflect.Zero(rt)
	}
	vb, ok := ptr.Interface().(VariantBuilder)
	if !ok {
		return reflect.Zero(rt)
	}
	value := decodeValue(r, alts[idx])
	vb.SetActive(int(idx), value.Interface())
	return ptr.Elem()
}

// decodeDynamic reconstructs a value from wire bytes knowing only its
// Category, used when no static Go target type is available (a
// Variant's active alternative). It returns a natural Go type for the
// category alongside the value.
func decodeDynamic(r BufferReader, cat Category) (any, reflect.Type) {
	switch cat {
	case CategoryByte8:
		buf := r.ReadRaw(1)
		if len(buf) != 1 {
			return uint8(0), reflect.TypeFor[uint8]()
		}
		return buf[0], reflect.TypeFor[uint8]()
	case CategoryByte16:
		buf := r.ReadRaw(2)
		if len(buf) != 2 {
			return uint16(0), reflect.TypeFor[uint16]()
		}
		return Order.Uint16(buf), reflect.TypeFor[uint16]()
	case CategoryByte32:
		buf := r.ReadRaw(4)
		if len(buf) != 4 {
			return uint32(0), reflect.TypeFor[uint32]()
		}
		return Order.Uint32(buf), reflect.TypeFor[uint32]()
	case CategoryByte64:
		buf := r.ReadRaw(8)
		if len(buf) != 8 {
			return int64(0), reflect.TypeFor[int64]()
		}
		return int64(Order.Uint64(buf)), reflect.TypeFor[int64]()
	case CategoryFloat32:
		buf := r.ReadRaw(4)
		if len(buf) != 4 {
			return float32(0), reflect.TypeFor[float32]()
		}
		return math.Float32frombits(Order.Uint32(buf)), reflect.TypeFor[float32]()
	case CategoryFloat64:
		buf := r.ReadRaw(8)
		if len(buf) != 8 {
			return float64(0), reflect.TypeFor[float64]()
		}
		return math.Float64frombits(Order.Uint64(buf)), reflect.TypeFor[float64]()
	case CategorySeqContainer:
		return decodeDynamicSeq(r)
	default:
		return nil, reflect.TypeFor[any]()
	}
}

func decodeDynamicSeq(r BufferReader) (any, reflect.Type) {
	h, ok := ReadHeader(r)
	if !ok || h.Main() != CategorySeqContainer {
		return nil, reflect.TypeFor[any]()
	}
	n := int(h.Length)
	if h.Sub() == CategoryByte8 {
		buf := r.ReadRaw(n)
		return string(buf), reflect.TypeFor[string]()
	}
	vals := make([]any, 0, n)
	elemType := reflect.TypeFor[any]()
	for i := 0; i < n; i++ {
		v, t := decodeDynamic(r, h.Sub())
		vals = append(vals, v)
		elemType = t
	}
	return vals, reflect.SliceOf(elemType)
}

func decodeSeq(r BufferReader, rt reflect.Type) reflect.Value {
	h, ok := ReadHeader(r)
	if !ok || h.Main() != CategorySeqContainer {
		return reflect.Zero(rt)
	}
	n := int(h.Length)
	switch {
	case rt.Kind() == reflect.String:
		if !IsSubtypeCompatible(h.Sub(), CategoryByte8) {
			return reflect.Zero(rt)
		}
		buf := r.ReadRaw(n)
		if len(buf) != n {
			return reflect.Zero(rt)
		}
		return reflect.ValueOf(string(buf)).Convert(rt)
	case rt.Kind() == reflect.Slice:
		elemType := rt.Elem()
		if !IsSubtypeCompatible(h.Sub(), ClassifyType(elemType)) {
			return reflect.Zero(rt)
		}
		sl := reflect.MakeSlice(rt, 0, n)
		for i := 0; i < n; i++ {
			sl = reflect.Append(sl, decodeValue(r, elemType))
		}
		return sl
	case rt.Kind() == reflect.Array:
		elemType := rt.Elem()
		if !IsSubtypeCompatible(h.Sub(), ClassifyType(elemType)) {
			return reflect.Zero(rt)
		}
		arr := reflect.New(rt).Elem()
		for i := 0; i < n; i++ {
			v := decodeValue(r, elemType)
			if i < rt.Len() {
				arr.Index(i).Set(v)
			}
		}
		return arr
	default:
		return decodeCustomSeq(r, rt, h, n)
	}
}

func decodeCustomSeq(r BufferReader, rt reflect.Type, h Header, n int) reflect.Value {
	ptr := reflect.New(rt)
	var elemType reflect.Type
	switch v := ptr.Interface().(type) {
	case SeqLike:
		elemType = v.ElemType()
	case UnsizedSeqLike:
		elemType = v.ElemType()
	default:
		return reflect.Zero(rt)
	}
	if !IsSubtypeCompatible(h.Sub(), ClassifyType(elemType)) {
		return reflect.Zero(rt)
	}
	builder, ok := ptr.Interface().(SeqBuilder)
	if !ok {
		return reflect.Zero(rt)
	}
	for i := 0; i < n; i++ {
		builder.SeqAppend(decodeValue(r, elemType).Interface())
	}
	return ptr.Elem()
}

func decodeAso(r BufferReader, rt reflect.Type) reflect.Value {
	h, ok := ReadHeader(r)
	if !ok || h.Main() != CategoryAsoContainer {
		return reflect.Zero(rt)
	}
	n := int(h.Length)
	if rt.Kind() == reflect.Map {
		if !IsSubtypeCompatible(h.Sub(), CategoryPair) {
			return reflect.Zero(rt)
		}
		keyType, valType := rt.Key(), rt.Elem()
		m := reflect.MakeMapWithSize(rt, n)
		for i := 0; i < n; i++ {
			ph, ok := ReadHeader(r)
			if !ok || ph.Main() != CategoryPair || ph.Length != 2 {
				return reflect.Zero(rt)
			}
			k := decodeValue(r, keyType)
			v := decodeValue(r, valType)
			m.SetMapIndex(k, v)
		}
		return m
	}
	return decodeCustomAso(r, rt, h, n)
}

func decodeCustomAso(r BufferReader, rt reflect.Type, h Header, n int) reflect.Value {
	ptr := reflect.New(rt)
	if sl, ok := ptr.Interface().(SetLike); ok {
		elemType := sl.ElemType()
		if !IsSubtypeCompatible(h.Sub(), ClassifyType(elemType)) {
			return reflect.Zero(rt)
		}
		builder, ok := ptr.Interface().(SetBuilder)
		if !ok {
			return reflect.Zero(rt)
		}
		for i := 0; i < n; i++ {
			builder.SetInsert(decodeValue(r, elemType).Interface())
		}
		return ptr.Elem()
	}
	al, ok := ptr.Interface().(AsoLike)
	if !ok {
		return reflect.Zero(rt)
	}
	if !IsSubtypeCompatible(h.Sub(), CategoryPair) {
		return reflect.Zero(rt)
	}
	keyType, valType := al.KeyType(), al.ValType()
	builder, ok := ptr.Interface().(AsoBuilder)
	if !ok {
		return reflect.Zero(rt)
	}
	for i := 0; i < n; i++ {
		ph, ok := ReadHeader(r)
		if !ok || ph.Main() != CategoryPair || ph.Length != 2 {
			return reflect.Zero(rt)
		}
		k := decodeValue(r, keyType)
		v := decodeValue(r, valType)
		builder.AsoInsert(k.Interface(), v.Interface())
	}
	return ptr.Elem()
}

// decodeCustom hands the stream straight to the user's decode hook; the
// engine does not consume a header for custom aggregates.
func decodeCustom(r BufferReader, rt reflect.Type) reflect.Value {
	ptr := reflect.New(rt)
	dec, ok := ptr.Interface().(SelfDecoder)
	if !ok {
		return reflect.Zero(rt)
	}
	DecodeSelf(r, dec)
	return ptr.Elem()
}

func readU32(r BufferReader) (uint32, bool) {
	buf := r.ReadRaw(4)
	if len(buf) != 4 {
		return 0, false
	}
	return Order.Uint32(buf), true
}
