package packer

// options carries the envelope's pluggable strategies. Defaults match
// spec.md §1's "identity by default": no checksum, no transform.
type options struct {
	checksum  Checksum
	transform Transform
}

func defaultOptions() *options {
	return &options{checksum: EmptyChecksum{}, transform: IdentityTransform{}}
}

// Option configures Serialize/Deserialize.
type Option func(*options)

// WithChecksum selects the envelope integrity strategy. The same
// strategy must be supplied to the matching Deserialize call.
func WithChecksum(c Checksum) Option { return func(o *options) { o.checksum = c } }

// WithTransform selects the byte-level transform applied to the payload
// between the encoder and the envelope. The same transform must be
// supplied to the matching Deserialize call.
func WithTransform(t Transform) Option { return func(o *options) { o.transform = t } }

func resolveOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Serialize encodes v and wraps it in an envelope: version, checksum,
// payload length, payload. The returned slice always starts at the
// envelope header.
func Serialize[T any](v T, opts ...Option) []byte {
	o := resolveOptions(opts)
	scratch := &GrowingWriter{}
	EncodeValue(scratch, v)
	payload, err := o.transform.Encode(scratch.Bytes())
	if err != nil {
		panic(err)
	}
	w := &GrowingWriter{}
	WriteEnvelopeHeader(w, EnvelopeHeader{
		Version:  CurrentVersion,
		Checksum: o.checksum.Sum(payload),
		Length:   uint32(len(payload)),
	})
	w.WriteRaw(payload)
	return w.Bytes()
}

// SerializeInto encodes v into dst, truncating silently if dst is too
// small for the envelope plus payload. Callers that need transactional
// behavior should size dst with SizeOf(v) + EnvelopeHeaderSize first.
func SerializeInto[T any](dst []byte, v T, opts ...Option) []byte {
	o := resolveOptions(opts)
	scratch := &GrowingWriter{}
	EncodeValue(scratch, v)
	payload, err := o.transform.Encode(scratch.Bytes())
	if err != nil {
		panic(err)
	}
	w := NewBoundedWriter(dst)
	WriteEnvelopeHeader(w, EnvelopeHeader{
		Version:  CurrentVersion,
		Checksum: o.checksum.Sum(payload),
		Length:   uint32(len(payload)),
	})
	w.WriteRaw(payload)
	return w.Bytes()
}

// Deserialize reads an enveloped T back out of data. Any rejection —
// version mismatch, checksum mismatch, truncated payload, a transform
// that cannot invert its input — yields the zero value of T.
func Deserialize[T any](data []byte, opts ...Option) (result T) {
	o := resolveOptions(opts)
	r := NewBoundedReader(data)
	env, ok := ReadEnvelopeHeader(r)
	if !ok || env.Version != CurrentVersion {
		return result
	}
	payload := r.ReadRaw(int(env.Length))
	if len(payload) != int(env.Length) {
		return result
	}
	if env.Checksum != o.checksum.Sum(payload) {
		return result
	}
	decoded, err := o.transform.Decode(payload)
	if err != nil {
		return result
	}
	return DecodeValue[T](NewBoundedReader(decoded))
}
