package packer

import "reflect"

// Pair is a two-element product type, the Go analogue of std::pair.
type Pair[A, B any] struct {
	First  A
	Second B
}

func (p Pair[A, B]) Elems() (any, any) { return p.First, p.Second }

// PairLike is implemented by any two-element product type the
// classifier should treat as CategoryPair.
type PairLike interface {
	Elems() (any, any)
}

// TupleLike is implemented by fixed-arity tuple types. Go has no
// variadic generics, so each arity from 2 through 6 is a distinct
// hand-written type; all of them satisfy TupleLike uniformly.
type TupleLike interface {
	Elems() []any
}

type (
	Tuple2[A, B any] struct {
		V0 A
		V1 B
	}
	Tuple3[A, B, C any] struct {
		V0 A
		V1 B
		V2 C
	}
	Tuple4[A, B, C, D any] struct {
		V0 A
		V1 B
		V2 C
		V3 D
	}
	Tuple5[A, B, C, D, E any] struct {
		V0 A
		V1 B
		V2 C
		V3 D
		V4 E
	}
	Tuple6[A, B, C, D, E, F any] struct {
		V0 A
		V1 B
		V2 C
		V3 D
		V4 E
		V5 F
	}
)

func (t Tuple2[A, B]) Elems() []any       { return []any{t.V0, t.V1} }
func (t Tuple3[A, B, C]) Elems() []any    { return []any{t.V0, t.V1, t.V2} }
func (t Tuple4[A, B, C, D]) Elems() []any { return []any{t.V0, t.V1, t.V2, t.V3} }
func (t Tuple5[A, B, C, D, E]) Elems() []any {
	return []any{t.V0, t.V1, t.V2, t.V3, t.V4}
}
func (t Tuple6[A, B, C, D, E, F]) Elems() []any {
	return []any{t.V0, t.V1, t.V2, t.V3, t.V4, t.V5}
}

// Variant holds exactly one value out of a closed set of alternative
// types, the Go analogue of std::variant. Go has no sum types, so the
// active alternative is tracked at runtime by index.
type Variant struct {
	alternatives []reflect.Type // every possible alternative, in declaration order
	active       int
	value        any
}

// NewVariant builds a Variant whose alternative set is alts, holding
// value at index active.
func NewVariant(alts []reflect.Type, active int, value any) Variant {
	return Variant{alternatives: alts, active: active, value: value}
}

func (v Variant) ActiveIndex() int            { return v.active }
func (v Variant) ActiveValue() any            { return v.value }
func (v Variant) Alternatives() []reflect.Type { return v.alternatives }

// VariantLike is implemented by sum-type holders.
type VariantLike interface {
	ActiveIndex() int
	ActiveValue() any
	Alternatives() []reflect.Type
}

// VariantBuilder is implemented by fixed-arity variant types, letting
// decode set the active alternative by index once the wire index has
// been checked against Alternatives(), without switching on the
// concrete field layout of VariantN.
type VariantBuilder interface {
	SetActive(idx int, v any)
}

// VariantN is the fixed-arity analogue of Variant: the alternative set
// is the type parameter list itself, so Alternatives() always reports
// the full declared shape and decode can check the wire discriminator
// against a real, statically known arity instead of trusting it.
type (
	Variant2[A, B any] struct {
		active int
		v0     A
		v1     B
	}
	Variant3[A, B, C any] struct {
		active int
		v0     A
		v1     B
		v2     C
	}
	Variant4[A, B, C, D any] struct {
		active int
		v0     A
		v1     B
		v2     C
		v3     D
	}
	Variant5[A, B, C, D, E any] struct {
		active int
		v0     A
		v1     B
		v2     C
		v3     D
		v4     E
	}
	Variant6[A, B, C, D, E, F any] struct {
		active int
		v0     A
		v1     B
		v2     C
		v3     D
		v4     E
		v5     F
	}
)

func NewVariant2[A, B any](idx int, v any) Variant2[A, B] {
	r := Variant2[A, B]{active: idx}
	r.SetActive(idx, v)
	return r
}

func NewVariant3[A, B, C any](idx int, v any) Variant3[A, B, C] {
	r := Variant3[A, B, C]{active: idx}
	r.SetActive(idx, v)
	return r
}

func NewVariant4[A, B, C, D any](idx int, v any) Variant4[A, B, C, D] {
	r := Variant4[A, B, C, D]{active: idx}
	r.SetActive(idx, v)
	return r
}

func NewVariant5[A, B, C, D, E any](idx int, v any) Variant5[A, B, C, D, E] {
	r := Variant5[A, B, C, D, E]{active: idx}
	r.SetActive(idx, v)
	return r
}

func NewVariant6[A, B, C, D, E, F any](idx int, v any) Variant6[A, B, C, D, E, F] {
	r := Variant6[A, B, C, D, E, F]{active: idx}
	r.SetActive(idx, v)
	return r
}

func (v Variant2[A, B]) ActiveIndex() int { return v.active }
func (v Variant2[A, B]) ActiveValue() any {
	if v.active == 0 {
		return v.v0
	}
	return v.v1
}
func (v Variant2[A, B]) Alternatives() []reflect.Type {
	return []reflect.Type{reflect.TypeFor[A](), reflect.TypeFor[B]()}
}
func (v *Variant2[A, B]) SetActive(idx int, val any) {
	v.active = idx
	switch idx {
	case 0:
		v.v0 = val.(A)
	case 1:
		v.v1 = val.(B)
	}
}

func (v Variant3[A, B, C]) ActiveIndex() int { return v.active }
func (v Variant3[A, B, C]) ActiveValue() any {
	switch v.active {
	case 0:
		return v.v0
	case 1:
		return v.v1
	default:
		return v.v2
	}
}
func (v Variant3[A, B, C]) Alternatives() []reflect.Type {
	return []reflect.Type{reflect.TypeFor[A](), reflect.TypeFor[B](), reflect.TypeFor[C]()}
}
func (v *Variant3[A, B, C]) SetActive(idx int, val any) {
	v.active = idx
	switch idx {
	case 0:
		v.v0 = val.(A)
	case 1:
		v.v1 = val.(B)
	case 2:
		v.v2 = val.(C)
	}
}

func (v Variant4[A, B, C, D]) ActiveIndex() int { return v.active }
func (v Variant4[A, B, C, D]) ActiveValue() any {
	switch v.active {
	case 0:
		return v.v0
	case 1:
		return v.v1
	case 2:
		return v.v2
	default:
		return v.v3
	}
}
func (v Variant4[A, B, C, D]) Alternatives() []reflect.Type {
	return []reflect.Type{reflect.TypeFor[A](), reflect.TypeFor[B](), reflect.TypeFor[C](), reflect.TypeFor[D]()}
}
func (v *Variant4[A, B, C, D]) SetActive(idx int, val any) {
	v.active = idx
	switch idx {
	case 0:
		v.v0 = val.(A)
	case 1:
		v.v1 = val.(B)
	case 2:
		v.v2 = val.(C)
	case 3:
		v.v3 = val.(D)
	}
}

func (v Variant5[A, B, C, D, E]) ActiveIndex() int { return v.active }
func (v Variant5[A, B, C, D, E]) ActiveValue() any {
	switch v.active {
	case 0:
		return v.v0
	case 1:
		return v.v1
	case 2:
		return v.v2
	case 3:
		return v.v3
	default:
		return v.v4
	}
}
func (v Variant5[A, B, C, D, E]) Alternatives() []reflect.Type {
	return []reflect.Type{
		reflect.TypeFor[A](), reflect.TypeFor[B](), reflect.TypeFor[C](),
		reflect.TypeFor[D](), reflect.TypeFor[E](),
	}
}
func (v *Variant5[A, B, C, D, E]) SetActive(idx int, val any) {
	v.active = idx
	switch idx {
	case 0:
		v.v0 = val.(A)
	case 1:
		v.v1 = val.(B)
	case 2:
		v.v2 = val.(C)
	case 3:
		v.v3 = val.(D)
	case 4:
		v.v4 = val.(E)
	}
}

func (v Variant6[A, B, C, D, E, F]) ActiveIndex() int { return v.active }
func (v Variant6[A, B, C, D, E, F]) ActiveValue() any {
	switch v.active {
	case 0:
		return v.v0
	case 1:
		return v.v1
	case 2:
		return v.v2
	case 3:
		return v.v3
	case 4:
		return v.v4
	default:
		return v.v5
	}
}
func (v Variant6[A, B, C, D, E, F]) Alternatives() []reflect.Type {
	return []reflect.Type{
		reflect.TypeFor[A](), reflect.TypeFor[B](), reflect.TypeFor[C](),
		reflect.TypeFor[D](), reflect.TypeFor[E](), reflect.TypeFor[F](),
	}
}
func (v *Variant6[A, B, C, D, E, F]) SetActive(idx int, val any) {
	v.active = idx
	switch idx {
	case 0:
		v.v0 = val.(A)
	case 1:
		v.v1 = val.(B)
	case 2:
		v.v2 = val.(C)
	case 3:
		v.v3 = val.(D)
	case 4:
		v.v4 = val.(E)
	case 5:
		v.v5 = val.(F)
	}
}

var (
	_ VariantLike    = Variant2[int32, string]{}
	_ VariantBuilder = (*Variant2[int32, string])(nil)
	_ VariantLike    = Variant3[int32, byte, string]{}
	_ VariantBuilder = (*Variant3[int32, byte, string])(nil)
)

// SeqLike is implemented by custom sequence containers whose length is
// known without walking the whole structure.
type SeqLike interface {
	SeqLen() int
	SeqAt(i int) any
	ElemType() reflect.Type
}

// UnsizedSeqLike is implemented by custom sequence containers with no
// cheap length, such as a singly linked list. The encoder falls back
// to a scratch buffer to discover the encoded size.
type UnsizedSeqLike interface {
	SeqEach(yield func(v any) bool)
	ElemType() reflect.Type
}

// SeqBuilder is implemented by custom sequence containers that can be
// built up element by element during decode.
type SeqBuilder interface {
	SeqAppend(v any)
}

// AsoLike is implemented by custom keyed containers, including
// multi-valued ones.
type AsoLike interface {
	AsoLen() int
	AsoEach(yield func(k, v any) bool)
	KeyType() reflect.Type
	ValType() reflect.Type
}

// AsoBuilder is implemented by custom keyed containers that support
// decode-time insertion, possibly of duplicate keys.
type AsoBuilder interface {
	AsoInsert(k, v any)
}

// SinglyLinkedList is a forward-only, unsized sequence: pushes are
// O(1) at the tail, but there is no cheap Len, mirroring
// std::forward_list. This deliberately has no Len method so the
// classifier routes it through the scratch-buffer encode path.
type SinglyLinkedList[T any] struct {
	head, tail *slNode[T]
}

type slNode[T any] struct {
	v    T
	next *slNode[T]
}

func (l *SinglyLinkedList[T]) PushBack(v T) {
	n := &slNode[T]{v: v}
	if l.tail == nil {
		l.head, l.tail = n, n
		return
	}
	l.tail.next = n
	l.tail = n
}

func (l *SinglyLinkedList[T]) SeqEach(yield func(v any) bool) {
	for n := l.head; n != nil; n = n.next {
		if !yield(n.v) {
			return
		}
	}
}

func (l *SinglyLinkedList[T]) SeqAppend(v any)       { l.PushBack(v.(T)) }
func (l *SinglyLinkedList[T]) ElemType() reflect.Type { return reflect.TypeFor[T]() }

var (
	_ UnsizedSeqLike = (*SinglyLinkedList[int])(nil)
	_ SeqBuilder     = (*SinglyLinkedList[int])(nil)
)

// Deque is a sized double-ended sequence: elements may be pushed at
// either end, and the length is always known up front.
type Deque[T any] struct {
	items []T
}

func (d *Deque[T]) PushBack(v T)  { d.items = append(d.items, v) }
func (d *Deque[T]) PushFront(v T) { d.items = append([]T{v}, d.items...) }
func (d *Deque[T]) Len() int      { return len(d.items) }
func (d *Deque[T]) At(i int) T    { return d.items[i] }

func (d *Deque[T]) SeqLen() int        { return len(d.items) }
func (d *Deque[T]) SeqAt(i int) any    { return d.items[i] }
func (d *Deque[T]) SeqAppend(v any)    { d.items = append(d.items, v.(T)) }
func (d *Deque[T]) ElemType() reflect.Type { return reflect.TypeFor[T]() }

var (
	_ SeqLike    = (*Deque[int])(nil)
	_ SeqBuilder = (*Deque[int])(nil)
)

// MultiMap is a keyed container that permits duplicate keys, the Go
// analogue of std::unordered_multimap.
type MultiMap[K comparable, V any] struct {
	entries []Pair[K, V]
}

func (m *MultiMap[K, V]) Insert(k K, v V) {
	m.entries = append(m.entries, Pair[K, V]{First: k, Second: v})
}

func (m *MultiMap[K, V]) Len() int { return len(m.entries) }

func (m *MultiMap[K, V]) AsoLen() int { return len(m.entries) }

func (m *MultiMap[K, V]) AsoEach(yield func(k, v any) bool) {
	for _, e := range m.entries {
		if !yield(e.First, e.Second) {
			return
		}
	}
}

func (m *MultiMap[K, V]) AsoInsert(k, v any) {
	m.entries = append(m.entries, Pair[K, V]{First: k.(K), Second: v.(V)})
}

func (m *MultiMap[K, V]) KeyType() reflect.Type { return reflect.TypeFor[K]() }
func (m *MultiMap[K, V]) ValType() reflect.Type { return reflect.TypeFor[V]() }

var (
	_ AsoLike    = (*MultiMap[string, int])(nil)
	_ AsoBuilder = (*MultiMap[string, int])(nil)
)

// Set is a keyed container with bare-value insertion: the element
// category is the value type directly, not a pair.
type Set[T comparable] struct {
	items []T
}

func (s *Set[T]) Insert(v T) { s.items = append(s.items, v) }
func (s *Set[T]) Len() int   { return len(s.items) }

func (s *Set[T]) SetLen() int { return len(s.items) }

func (s *Set[T]) SetEach(yield func(v any) bool) {
	for _, v := range s.items {
		if !yield(v) {
			return
		}
	}
}

func (s *Set[T]) SetInsert(v any)        { s.items = append(s.items, v.(T)) }
func (s *Set[T]) ElemType() reflect.Type { return reflect.TypeFor[T]() }

// SetLike and SetBuilder classify Set as its own flavor of associative
// container: bare values rather than key/value pairs.
type SetLike interface {
	SetLen() int
	SetEach(yield func(v any) bool)
	ElemType() reflect.Type
}

type SetBuilder interface {
	SetInsert(v any)
}

var (
	_ SetLike    = (*Set[int])(nil)
	_ SetBuilder = (*Set[int])(nil)
)
