// Package fastpng decodes the PNG container down to raw, unfiltered pixel
// bytes. It parses the chunk stream, feeds the image payload through a zlib
// collaborator, reverses the per-scanline filters, and returns the pixel
// buffer together with the declared header fields and textual metadata.
// Adam7 interlacing and palette images are detected and rejected; chunk CRCs
// are discarded unless verification is switched on.
package fastpng

// ImageRecord is the result of a decode: header fields as declared by the
// file, textual metadata, and the raw unfiltered pixel buffer in row-major
// order with no padding between rows or pixels.
type ImageRecord struct {
	Width  uint32
	Height uint32

	BitDepth          uint8
	ColorType         uint8
	CompressionMethod uint8
	FilterMethod      uint8
	InterlaceMethod   uint8

	// Metadata holds keyword/text pairs from tEXt and zTXt chunks. A keyword
	// appearing more than once keeps the last value.
	Metadata map[string]string

	// Pixels is Height rows of Width pixels, bytesPerPixel bytes each.
	Pixels []byte
}

// Decoder lifecycle. A Decoder runs the pipeline at most once and caches the
// outcome.
const (
	stateNotStarted = iota
	stateInProgress
	stateDone
	stateFailed
)

// A Decoder decodes one in-memory PNG file. The first call to Decode runs the
// full pipeline; the outcome, success or failure, is cached and returned
// unchanged by every later call. A Decoder is not safe for concurrent use;
// decode independent inputs with independent Decoders.
type Decoder struct {
	// VerifyChecksums enables CRC-32 validation of every chunk against its
	// trailer. Off by default: the trailer is read and discarded.
	VerifyChecksums bool

	// Inflater overrides the zlib collaborator used for the image payload.
	// Leave nil for the default.
	Inflater Inflater

	data  []byte
	state int
	rec   *ImageRecord
	err   error
}

// NewDecoder wraps a complete PNG file held in data. The buffer must not be
// mutated while the Decoder is in use.
func NewDecoder(data []byte) *Decoder {
	return &Decoder{data: data}
}

// Decode parses the buffer and returns the finished record.
func (d *Decoder) Decode() (*ImageRecord, error) {
	switch d.state {
	case stateDone:
		return d.rec, nil
	case stateFailed:
		return nil, d.err
	case stateInProgress:
		return nil, FormatError("decode re-entered while in progress")
	}
	d.state = stateInProgress

	inf := d.Inflater
	if inf == nil {
		inf = newZlibInflater()
	}
	p := &parser{cur: cursor{data: d.data}, inf: inf, verify: d.VerifyChecksums}
	rec, err := p.run()
	if err != nil {
		d.state, d.err = stateFailed, err
		return nil, err
	}
	d.state, d.rec = stateDone, rec
	return rec, nil
}

// Decode is the one-shot form: it decodes a complete PNG file held in data.
func Decode(data []byte) (*ImageRecord, error) {
	return NewDecoder(data).Decode()
}
