package fastpng

import (
	"bytes"
	"image/png"
	"testing"
)

func benchmarkInput(b *testing.B) []byte {
	b.Helper()
	return encodePNG(b, makeTestImage(256, 256))
}

func BenchmarkStdlibPNG(b *testing.B) {
	data := benchmarkInput(b)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := png.Decode(bytes.NewReader(data)); err != nil {
			b.Fatalf("stdlib decode failed: %v", err)
		}
	}
}

func BenchmarkFastPNG(b *testing.B) {
	data := benchmarkInput(b)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := Decode(data); err != nil {
			b.Fatalf("decode failed: %v", err)
		}
	}
}
