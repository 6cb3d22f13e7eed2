package packer

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyPrimitives(t *testing.T) {
	cases := []struct {
		v   any
		cat Category
	}{
		{int8(0), CategoryByte8},
		{uint8(0), CategoryByte8},
		{true, CategoryByte8},
		{int16(0), CategoryByte16},
		{uint16(0), CategoryByte16},
		{int32(0), CategoryByte32},
		{uint32(0), CategoryByte32},
		{int(0), CategoryByte64},
		{int64(0), CategoryByte64},
		{uint64(0), CategoryByte64},
		{float32(0), CategoryFloat32},
		{float64(0), CategoryFloat64},
		{"", CategorySeqContainer},
		{[]int32{}, CategorySeqContainer},
		{[4]byte{}, CategorySeqContainer},
		{map[string]int32{}, CategoryAsoContainer},
	}
	for _, c := range cases {
		t.Run(reflect.TypeOf(c.v).String(), func(t *testing.T) {
			assert.Equal(t, c.cat, ClassifyType(reflect.TypeOf(c.v)))
		})
	}
}

func TestClassifyEmptyStruct(t *testing.T) {
	type empty struct{}
	assert.Equal(t, CategoryEmpty, ClassifyType(reflect.TypeFor[empty]()))
}

func TestClassifyPOD(t *testing.T) {
	type pod struct {
		A int32
		B uint64
		C [4]byte
	}
	assert.Equal(t, CategoryPOD, ClassifyType(reflect.TypeFor[pod]()))
}

func TestClassifyPair(t *testing.T) {
	assert.Equal(t, CategoryPair, ClassifyType(reflect.TypeFor[Pair[string, int32]]()))
}

func TestClassifyTuple(t *testing.T) {
	assert.Equal(t, CategoryTuple, ClassifyType(reflect.TypeFor[Tuple4[string, uint32, string, uint32]]()))
}

func TestClassifyVariant(t *testing.T) {
	assert.Equal(t, CategoryVariant, ClassifyType(reflect.TypeFor[Variant]()))
	assert.Equal(t, CategoryVariant, ClassifyType(reflect.TypeFor[Variant3[int32, byte, string]]()))
}

func TestClassifyCustomContainers(t *testing.T) {
	assert.Equal(t, CategorySeqContainer, ClassifyType(reflect.TypeFor[SinglyLinkedList[int]]()))
	assert.Equal(t, CategorySeqContainer, ClassifyType(reflect.TypeFor[Deque[int]]()))
	assert.Equal(t, CategoryAsoContainer, ClassifyType(reflect.TypeFor[MultiMap[string, int]]()))
	assert.Equal(t, CategoryAsoContainer, ClassifyType(reflect.TypeFor[Set[int]]()))
}

func TestClassifyUnsupportedPanics(t *testing.T) {
	t.Run("channel", func(t *testing.T) {
		assert.Panics(t, func() { ClassifyType(reflect.TypeFor[chan int]()) })
	})
	t.Run("function", func(t *testing.T) {
		assert.Panics(t, func() { ClassifyType(reflect.TypeFor[func()]()) })
	})
	t.Run("struct with no hooks and non-POD field", func(t *testing.T) {
		type bad struct {
			Ch chan int
		}
		assert.Panics(t, func() { ClassifyType(reflect.TypeFor[bad]()) })
	})
}

func TestClassifyCacheStable(t *testing.T) {
	rt := reflect.TypeFor[int32]()
	first := ClassifyType(rt)
	second := ClassifyType(rt)
	assert.Equal(t, first, second)
}

func TestImplementsEither(t *testing.T) {
	assert.True(t, implementsEither(reflect.TypeFor[Pair[int, int]](), pairLikeType))
	assert.True(t, implementsEither(reflect.TypeFor[Deque[int]](), seqLikeType))
	assert.False(t, implementsEither(reflect.TypeFor[int](), seqLikeType))
}
