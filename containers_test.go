package packer

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPairElems(t *testing.T) {
	p := Pair[string, int32]{First: "a", Second: 7}
	first, second := p.Elems()
	assert.Equal(t, "a", first)
	assert.Equal(t, int32(7), second)
}

func TestTupleElems(t *testing.T) {
	tup := Tuple4[string, uint32, string, uint32]{V0: "192.168.10.1", V1: 3768, V2: "202.113.76.68", V3: 80}
	elems := tup.Elems()
	assert.Equal(t, []any{"192.168.10.1", uint32(3768), "202.113.76.68", uint32(80)}, elems)
}

func TestVariant(t *testing.T) {
	alts := []reflect.Type{reflect.TypeFor[int32](), reflect.TypeFor[byte](), reflect.TypeFor[string]()}
	v := NewVariant(alts, 2, "serialization")
	assert.Equal(t, 2, v.ActiveIndex())
	assert.Equal(t, "serialization", v.ActiveValue())
	assert.Equal(t, alts, v.Alternatives())
}

func TestVariant3ActiveValue(t *testing.T) {
	v := NewVariant3[int32, byte, string](2, "serialization")
	assert.Equal(t, 2, v.ActiveIndex())
	assert.Equal(t, "serialization", v.ActiveValue())
	assert.Equal(t, []reflect.Type{
		reflect.TypeFor[int32](), reflect.TypeFor[byte](), reflect.TypeFor[string](),
	}, v.Alternatives())
}

// TestVariant3RoundTrip checks that a fixed-arity variant's full
// alternative-type shape survives encode/decode, unlike the
// type-erased Variant (see TestScenarioS3ShapeLoss).
func TestVariant3RoundTrip(t *testing.T) {
	original := NewVariant3[int32, byte, string](2, "serialization")

	w := &GrowingWriter{}
	EncodeValue(w, original)
	assert.Equal(t, SizeOf(original), w.Count())

	got := DecodeValue[Variant3[int32, byte, string]](NewBoundedReader(w.Bytes()))
	assert.Equal(t, original, got)
	assert.Equal(t, 2, got.ActiveIndex())
	assert.Equal(t, "serialization", got.ActiveValue())
	assert.Len(t, got.Alternatives(), 3)
}

// TestVariant3DecodeArityMismatchYieldsZero covers boundary property
// 7: decoding a variant whose on-wire arity differs from the target
// variant's arity yields the target's default, not a best-effort
// partial decode. Variant2 is encoded (wire arity 2) and decoded as a
// Variant3 (target arity 3).
func TestVariant3DecodeArityMismatchYieldsZero(t *testing.T) {
	wireShape := NewVariant2[int32, string](1, "mismatched")

	w := &GrowingWriter{}
	EncodeValue(w, wireShape)

	got := DecodeValue[Variant3[int32, byte, string]](NewBoundedReader(w.Bytes()))
	assert.Equal(t, Variant3[int32, byte, string]{}, got)
}

// TestVariant3DecodeIndexOutOfRangeYieldsZero covers the other half of
// boundary property 7: an arity that matches but a discriminator
// outside [0, length) is equally a shape violation.
func TestVariant3DecodeIndexOutOfRangeYieldsZero(t *testing.T) {
	original := NewVariant3[int32, byte, string](2, "serialization")

	w := &GrowingWriter{}
	EncodeValue(w, original)
	wire := w.Bytes()

	// Overwrite the discriminator (the 4 bytes right after the header)
	// with an index at the arity boundary, which is out of range for a
	// zero-based 3-alternative variant.
	Order.PutUint32(wire[HeaderSize:HeaderSize+4], 3)

	got := DecodeValue[Variant3[int32, byte, string]](NewBoundedReader(wire))
	assert.Equal(t, Variant3[int32, byte, string]{}, got)
}

func TestSinglyLinkedList(t *testing.T) {
	var l SinglyLinkedList[int]
	l.PushBack(1)
	l.PushBack(2)
	l.PushBack(3)
	l.PushBack(4)

	var got []any
	l.SeqEach(func(v any) bool {
		got = append(got, v)
		return true
	})
	assert.Equal(t, []any{1, 2, 3, 4}, got)
	assert.Equal(t, reflect.TypeFor[int](), l.ElemType())

	t.Run("SeqEachStopsEarly", func(t *testing.T) {
		var count int
		l.SeqEach(func(v any) bool {
			count++
			return count < 2
		})
		assert.Equal(t, 2, count)
	})

	t.Run("SeqAppend", func(t *testing.T) {
		var l2 SinglyLinkedList[int]
		l2.SeqAppend(5)
		l2.SeqAppend(6)
		var out []any
		l2.SeqEach(func(v any) bool { out = append(out, v); return true })
		assert.Equal(t, []any{5, 6}, out)
	})
}

func TestDeque(t *testing.T) {
	var d Deque[int]
	d.PushBack(2)
	d.PushBack(3)
	d.PushFront(1)
	d.PushBack(4)

	assert.Equal(t, 4, d.Len())
	assert.Equal(t, 1, d.At(0))
	assert.Equal(t, 4, d.At(3))
	assert.Equal(t, reflect.TypeFor[int](), d.ElemType())

	assert.Equal(t, 4, d.SeqLen())
	assert.Equal(t, 2, d.SeqAt(1))

	d.SeqAppend(5)
	assert.Equal(t, 5, d.Len())
	assert.Equal(t, 5, d.At(4))
}

func TestMultiMap(t *testing.T) {
	var m MultiMap[string, int]
	m.Insert("a", 1)
	m.Insert("a", 2)
	m.Insert("b", 3)

	assert.Equal(t, 3, m.Len())
	assert.Equal(t, 3, m.AsoLen())
	assert.Equal(t, reflect.TypeFor[string](), m.KeyType())
	assert.Equal(t, reflect.TypeFor[int](), m.ValType())

	var pairs [][2]any
	m.AsoEach(func(k, v any) bool {
		pairs = append(pairs, [2]any{k, v})
		return true
	})
	assert.Len(t, pairs, 3)

	m.AsoInsert("c", 4)
	assert.Equal(t, 4, m.Len())
}

func TestSet(t *testing.T) {
	var s Set[int]
	s.Insert(1)
	s.Insert(2)
	s.Insert(2)

	assert.Equal(t, 3, s.Len(), "Set does not dedupe on Insert; it's an insertion-ordered bag")
	assert.Equal(t, 3, s.SetLen())
	assert.Equal(t, reflect.TypeFor[int](), s.ElemType())

	var got []any
	s.SetEach(func(v any) bool { got = append(got, v); return true })
	assert.Equal(t, []any{1, 2, 2}, got)

	s.SetInsert(3)
	assert.Equal(t, 4, s.Len())
}
