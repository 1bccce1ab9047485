package fastpng

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
)

const pngHeader = "\x89PNG\r\n\x1a\n"

var errChunkOrder = FormatError("chunk out of order")

// cursor is an index over an immutable input buffer. Every read is
// bounds-checked so truncated input surfaces as a BoundsError instead of a
// panic.
type cursor struct {
	data []byte
	pos  int
}

func (c *cursor) take(n int) ([]byte, error) {
	if n < 0 || n > len(c.data)-c.pos {
		return nil, &BoundsError{Offset: c.pos, Want: n, Have: len(c.data) - c.pos}
	}
	p := c.data[c.pos : c.pos+n]
	c.pos += n
	return p, nil
}

func (c *cursor) takeUint32() (uint32, error) {
	p, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(p), nil
}

// parser holds the per-decode state of the chunk loop. One parser serves one
// decode call.
type parser struct {
	cur      cursor
	rec      *ImageRecord
	inf      Inflater
	verify   bool
	seenIHDR bool
	done     bool
}

func (p *parser) run() (*ImageRecord, error) {
	if err := p.checkSignature(); err != nil {
		return nil, err
	}
	p.rec = &ImageRecord{Metadata: make(map[string]string)}
	for !p.done {
		if err := p.parseChunk(); err != nil {
			return nil, err
		}
	}
	if !p.seenIHDR {
		return nil, FormatError("missing IHDR chunk")
	}
	if err := p.inf.Push(nil, true); err != nil {
		return nil, &DecompressionError{Err: err}
	}
	if err := p.defilter(p.inf.Bytes()); err != nil {
		return nil, err
	}
	return p.rec, nil
}

func (p *parser) checkSignature() error {
	sig, err := p.cur.take(len(pngHeader))
	if err != nil {
		return err
	}
	for i := 0; i < len(pngHeader); i++ {
		if sig[i] != pngHeader[i] {
			return &SignatureError{Pos: i, Expected: pngHeader[i], Actual: sig[i]}
		}
	}
	return nil
}

// parseChunk reads one (length, type, payload, crc) record and dispatches on
// the type tag. Whatever the dispatch did, the bytes it consumed must equal
// the declared length exactly.
func (p *parser) parseChunk() error {
	length, err := p.cur.takeUint32()
	if err != nil {
		return err
	}
	tag, err := p.cur.take(4)
	if err != nil {
		return err
	}
	start := p.cur.pos

	switch string(tag) {
	case "IHDR":
		err = p.parseIHDR()
	case "PLTE":
		err = UnsupportedError("palette (indexed-color) image")
	case "IDAT":
		if !p.seenIHDR {
			err = errChunkOrder
			break
		}
		var data []byte
		if data, err = p.cur.take(int(length)); err == nil {
			err = p.inf.Push(data, false)
		}
	case "tEXt":
		err = p.parseTEXt(length)
	case "zTXt":
		err = p.parseZTXt(length)
	case "IEND":
		p.done = true
	default:
		// Ignore this chunk (of a known length).
		_, err = p.cur.take(int(length))
	}
	if err != nil {
		return err
	}

	if consumed := p.cur.pos - start; consumed != int(length) {
		return &LengthMismatchError{Tag: string(tag), Declared: length, Consumed: consumed}
	}

	crc, err := p.cur.takeUint32()
	if err != nil {
		return err
	}
	if p.verify {
		// The CRC covers the type tag and the payload, not the length word.
		if crc32.ChecksumIEEE(p.cur.data[start-4:start+int(length)]) != crc {
			return &ChecksumError{Tag: string(tag)}
		}
	}
	return nil
}

// parseIHDR decodes the fixed 13-byte header payload. A declared IHDR length
// other than 13 is caught by the caller's consumed-vs-declared check.
func (p *parser) parseIHDR() error {
	b, err := p.cur.take(13)
	if err != nil {
		return err
	}
	r := p.rec
	r.Width = binary.BigEndian.Uint32(b[:4])
	r.Height = binary.BigEndian.Uint32(b[4:8])
	r.BitDepth = b[8]
	r.ColorType = b[9]
	r.CompressionMethod = b[10]
	r.FilterMethod = b[11]
	r.InterlaceMethod = b[12]
	if r.CompressionMethod != cmDeflate {
		return UnsupportedError(fmt.Sprintf("compression method %d", r.CompressionMethod))
	}
	p.seenIHDR = true
	return nil
}

func (p *parser) parseTEXt(length uint32) error {
	b, err := p.cur.take(int(length))
	if err != nil {
		return err
	}
	keyword, value, ok := bytes.Cut(b, []byte{0})
	if !ok {
		return FormatError("tEXt chunk missing keyword terminator")
	}
	p.rec.Metadata[string(keyword)] = string(value)
	return nil
}

// parseZTXt handles compressed textual metadata: keyword, NUL, a one-byte
// compression method, then a zlib stream holding the text.
func (p *parser) parseZTXt(length uint32) error {
	b, err := p.cur.take(int(length))
	if err != nil {
		return err
	}
	keyword, rest, ok := bytes.Cut(b, []byte{0})
	if !ok || len(rest) < 1 {
		return FormatError("zTXt chunk missing keyword terminator")
	}
	if rest[0] != cmDeflate {
		return UnsupportedError(fmt.Sprintf("zTXt compression method %d", rest[0]))
	}
	text, err := inflate(rest[1:])
	if err != nil {
		return &DecompressionError{Err: err}
	}
	p.rec.Metadata[string(keyword)] = string(text)
	return nil
}
