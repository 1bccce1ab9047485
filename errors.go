package fastpng

import "fmt"

// A SignatureError reports that the fixed 8-byte PNG signature did not match.
type SignatureError struct {
	Pos      int
	Expected byte
	Actual   byte
}

func (e *SignatureError) Error() string {
	return fmt.Sprintf("fastpng: bad signature at byte %d: expected 0x%02x, got 0x%02x",
		e.Pos, e.Expected, e.Actual)
}

// An UnsupportedError reports a valid PNG feature this decoder does not implement.
type UnsupportedError string

func (e UnsupportedError) Error() string { return "fastpng: unsupported feature: " + string(e) }

// A LengthMismatchError reports a chunk whose payload parse consumed a number
// of bytes different from the declared chunk length.
type LengthMismatchError struct {
	Tag      string
	Declared uint32
	Consumed int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("fastpng: chunk %q: declared length %d, consumed %d",
		e.Tag, e.Declared, e.Consumed)
}

// A DecompressionError reports a failure from the zlib collaborator.
type DecompressionError struct {
	Err error
}

func (e *DecompressionError) Error() string { return "fastpng: decompress: " + e.Err.Error() }

func (e *DecompressionError) Unwrap() error { return e.Err }

// A BoundsError reports a read past the end of the input buffer, typically a
// truncated file or a missing IEND chunk.
type BoundsError struct {
	Offset int
	Want   int
	Have   int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("fastpng: truncated input: need %d bytes at offset %d, %d available",
		e.Want, e.Offset, e.Have)
}

// A ChecksumError reports a chunk whose CRC-32 trailer does not match its type
// and payload bytes. Only produced when Decoder.VerifyChecksums is set.
type ChecksumError struct {
	Tag string
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("fastpng: chunk %q: invalid checksum", e.Tag)
}

// A FormatError reports input that violates the container structure in some
// other way.
type FormatError string

func (e FormatError) Error() string { return "fastpng: invalid format: " + string(e) }
