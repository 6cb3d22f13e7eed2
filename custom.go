package packer

// SelfSizer is implemented by a user-defined aggregate that knows its
// own encoded size without being walked field by field by the
// classifier. The Go analogue of the original's member get_size().
type SelfSizer interface {
	PackedSize() int
}

// SelfEncoder is implemented by a user-defined aggregate that writes
// its own fields, typically via repeated calls to EncodeValue. The Go
// analogue of the original's member serialize(writer).
type SelfEncoder interface {
	PackSelf(w BufferWriter)
}

// SelfDecoder is implemented by a user-defined aggregate that reads
// its own fields back, typically via repeated calls to DecodeValue.
// It is always checked against a pointer receiver, since filling in
// fields requires mutation; decode allocates a zero value with
// reflect.New and calls UnpackSelf on the address. The Go analogue of
// the original's static member deserialize(reader).
type SelfDecoder interface {
	UnpackSelf(r BufferReader)
}

// Selfer is satisfied by an aggregate that fully owns its own wire
// representation on the encode side.
type Selfer interface {
	SelfSizer
	SelfEncoder
}

// EncodeSelf writes v's self-described fields into w and returns how
// many bytes the writer actually accepted. It does not call PackedSize
// or compare the two. A short write only happens against a
// BoundedWriter that ran out of room; per the package's truncation
// policy this is never reported as an error, only as a smaller
// returned count.
func EncodeSelf(w BufferWriter, v Selfer) int {
	before := w.Count()
	v.PackSelf(w)
	return w.Count() - before
}

// DecodeSelf reads v's self-described fields back from r.
func DecodeSelf(r BufferReader, v SelfDecoder) {
	v.UnpackSelf(r)
}
