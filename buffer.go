package packer

// BufferWriter is the raw byte-region write capability the encoder
// drives. Implementations never return an error: a BoundedWriter
// silently truncates past capacity (discoverable via Count), while a
// GrowingWriter never runs out of room.
type BufferWriter interface {
	// WriteRaw appends p and returns how many bytes were actually
	// written, which may be less than len(p) for a bounded writer.
	WriteRaw(p []byte) int
	// Count returns the number of bytes written so far.
	Count() int
	// Cap returns the writer's total capacity, or -1 if unbounded.
	Cap() int
}

// BufferReader is the raw byte-region read capability the decoder
// drives. Implementations never return an error: a short read simply
// returns fewer bytes than requested.
type BufferReader interface {
	// ReadRaw returns up to n bytes starting at the current position
	// and advances past them. The returned slice may be shorter than
	// n if fewer bytes remain.
	ReadRaw(n int) []byte
	// Seek moves the read position to pos, clamped to [0, Cap()].
	// It reports whether pos was within bounds before clamping.
	Seek(pos int) bool
	// Count returns the current read position.
	Count() int
	// Remaining returns the number of unread bytes.
	Remaining() int
	// Cap returns the reader's total size.
	Cap() int
}
