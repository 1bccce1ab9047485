package fastpng

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"
)

// An Inflater consumes a compressed stream in successive pushes and exposes
// the decompressed bytes once the final push has flushed it. One instance
// serves one decode call; it is not reusable.
type Inflater interface {
	// Push appends p to the compressed stream. The final push signals end of
	// input and flushes the decompressor; p is usually empty then.
	Push(p []byte, final bool) error
	// Bytes returns the complete decompressed buffer. Valid only after a
	// successful final Push.
	Bytes() []byte
}

// zlibInflater stages compressed pushes and inflates the whole stream at the
// final push. Staging keeps only the compressed bytes around, which is the
// small side of the stream; the decompressed buffer exists once, after flush.
type zlibInflater struct {
	compressed bytes.Buffer
	out        []byte
}

func newZlibInflater() *zlibInflater { return &zlibInflater{} }

func (z *zlibInflater) Push(p []byte, final bool) error {
	z.compressed.Write(p)
	if !final {
		return nil
	}
	r, err := zlib.NewReader(&z.compressed)
	if err != nil {
		return err
	}
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	z.out = out
	return nil
}

func (z *zlibInflater) Bytes() []byte { return z.out }

// inflate decompresses a complete, self-contained zlib stream in one call.
// Used for zTXt payloads, which are tiny and never chunked.
func inflate(p []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(p))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}
