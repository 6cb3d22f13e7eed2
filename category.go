package packer

// Category classifies a Go value for the purposes of the tagged wire
// format. Every encoded value that carries a Header starts with a 1-byte
// Header.Type whose low nibble is the value's own Category and whose
// high nibble is the Category of its element (for containers), active
// alternative (for variants), or zero (for everything else).
type Category uint8

const (
	CategoryEmpty Category = iota
	CategoryByte8
	CategoryByte16
	CategoryByte32
	CategoryByte64
	CategoryFloat32
	CategoryFloat64
	CategoryPOD
	CategoryPair
	CategoryVariant
	CategoryTuple
	CategorySeqContainer
	CategoryAsoContainer
	CategoryCustom
)

func (c Category) String() string {
	switch c {
	case CategoryEmpty:
		return "empty"
	case CategoryByte8:
		return "byte8"
	case CategoryByte16:
		return "byte16"
	case CategoryByte32:
		return "byte32"
	case CategoryByte64:
		return "byte64"
	case CategoryFloat32:
		return "float32"
	case CategoryFloat64:
		return "float64"
	case CategoryPOD:
		return "pod"
	case CategoryPair:
		return "pair"
	case CategoryVariant:
		return "variant"
	case CategoryTuple:
		return "tuple"
	case CategorySeqContainer:
		return "seq_container"
	case CategoryAsoContainer:
		return "aso_container"
	case CategoryCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// numericRank orders the integer/float categories for subtype
// compatibility: a value encoded with a narrower category may be
// decoded into a wider-declared slot of the same family.
func (c Category) numericRank() (family int, rank int, ok bool) {
	switch c {
	case CategoryByte8:
		return 0, 1, true
	case CategoryByte16:
		return 0, 2, true
	case CategoryByte32:
		return 0, 3, true
	case CategoryByte64:
		return 0, 4, true
	case CategoryFloat32:
		return 1, 1, true
	case CategoryFloat64:
		return 1, 2, true
	default:
		return 0, 0, false
	}
}

// IsSubtypeCompatible reports whether a value encoded on the wire with
// category wire may be decoded into a slot declared with category
// target. Numeric categories widen (wire rank <= target rank, same
// family); every other category must match exactly.
func IsSubtypeCompatible(wire, target Category) bool {
	if wire == target {
		return true
	}
	wf, wr, wok := wire.numericRank()
	tf, tr, tok := target.numericRank()
	if !wok || !tok || wf != tf {
		return false
	}
	return wr <= tr
}

// byteWidth returns the wire width of a numeric category in bytes, or
// 0 if cat is not one of the integral/floating categories.
func byteWidth(cat Category) int {
	switch cat {
	case CategoryByte8:
		return 1
	case CategoryByte16:
		return 2
	case CategoryByte32:
		return 4
	case CategoryByte64:
		return 8
	case CategoryFloat32:
		return 4
	case CategoryFloat64:
		return 8
	default:
		return 0
	}
}

// Header precedes every encoded value on the wire except numeric
// primitives, empty structs and custom aggregates.
type Header struct {
	Type   uint8
	Length uint32
}

const HeaderSize = 5

// packType combines a main and sub category into one byte: the lower
// nibble carries the main category, the upper nibble the sub category.
func packType(main, sub Category) uint8 {
	return uint8(main)&0x0f | uint8(sub)<<4
}

func (h Header) Main() Category { return Category(h.Type & 0x0f) }
func (h Header) Sub() Category  { return Category(h.Type >> 4) }

func newHeader(main, sub Category, length uint32) Header {
	return Header{Type: packType(main, sub), Length: length}
}

// WriteHeader writes a 5-byte Header: 1 byte type tag, 4 byte length.
func WriteHeader(w BufferWriter, h Header) {
	var buf [HeaderSize]byte
	buf[0] = h.Type
	Order.PutUint32(buf[1:], h.Length)
	w.WriteRaw(buf[:])
}

// ReadHeader reads a 5-byte Header. ok is false if fewer than
// HeaderSize bytes remained; callers must treat that as a soft
// decode failure, not an error.
func ReadHeader(r BufferReader) (h Header, ok bool) {
	buf := r.ReadRaw(HeaderSize)
	if len(buf) != HeaderSize {
		return Header{}, false
	}
	h.Type = buf[0]
	h.Length = Order.Uint32(buf[1:])
	return h, true
}

// EnvelopeHeader wraps the whole encoded payload exactly once.
type EnvelopeHeader struct {
	Version  uint16
	Checksum uint32
	Length   uint32
}

const EnvelopeHeaderSize = 10

// MakeVersion packs a (major, minor) pair the way the wire format
// requires: major occupies the high byte, minor the low byte.
func MakeVersion(major, minor uint8) uint16 {
	return uint16(major)<<8 | uint16(minor)
}

// CurrentVersion is the version this package writes into new envelopes.
// Called as MakeVersion(1, 0) rather than MakeVersion(0, 1): spec.md
// §3.3 prose names the current version as the tuple (0, 1), but its S1
// worked example gives the on-wire bytes as `00 01`. Those two bytes
// are Order (little-endian) Uint16(0x0100) — MakeVersion(1, 0), major
// in the high byte — not Uint16(0x0001). The (major, minor) argument
// order here is inverted relative to the prose so the emitted bytes
// match the worked example exactly; treat the worked example as
// authoritative if the two ever read as contradictory again.
var CurrentVersion = MakeVersion(1, 0)

func WriteEnvelopeHeader(w BufferWriter, h EnvelopeHeader) {
	var buf [EnvelopeHeaderSize]byte
	Order.PutUint16(buf[0:], h.Version)
	Order.PutUint32(buf[2:], h.Checksum)
	Order.PutUint32(buf[6:], h.Length)
	w.WriteRaw(buf[:])
}

func ReadEnvelopeHeader(r BufferReader) (h EnvelopeHeader, ok bool) {
	buf := r.ReadRaw(EnvelopeHeaderSize)
	if len(buf) != EnvelopeHeaderSize {
		return EnvelopeHeader{}, false
	}
	h.Version = Order.Uint16(buf[0:])
	h.Checksum = Order.Uint32(buf[2:])
	h.Length = Order.Uint32(buf[6:])
	return h, true
}
