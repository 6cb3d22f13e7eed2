package packer

import (
	"bytes"
	"sync"
)

// scratchBufPool backs encodeCustomSeq's scratch pass: an
// UnsizedSeqLike container's element count isn't known until it has
// been fully walked, so its elements are encoded into one of these
// pooled buffers first, and the real seq_container header (which needs
// that count) is written to the destination BufferWriter only once the
// scratch pass is done. Pooling avoids an allocation per encoded
// container; a 4KB default covers most container payloads without
// growing.
var scratchBufPool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, 4096))
	},
}
