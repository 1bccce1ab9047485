package main

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	fastpng "github.com/MANOJ-M-01/fast-png"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprint(os.Stderr, "Usage: fast-png <input.png>\n")
		os.Exit(1)
	}

	inputPath := os.Args[1]
	base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))

	data, err := os.ReadFile(inputPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "read error:", err)
		os.Exit(1)
	}

	rec, err := fastpng.Decode(data)
	if err != nil {
		fmt.Fprintln(os.Stderr, "decode error:", err)
		os.Exit(1)
	}

	fmt.Printf("%s: %dx%d, bit depth %d, color type %d, %d pixel bytes\n",
		inputPath, rec.Width, rec.Height, rec.BitDepth, rec.ColorType, len(rec.Pixels))
	for k, v := range rec.Metadata {
		fmt.Printf("  %s: %s\n", k, v)
	}

	// Round-trip through the stdlib encoder as a smoke check.
	img, err := rec.Image()
	if err != nil {
		fmt.Fprintln(os.Stderr, "convert error:", err)
		os.Exit(1)
	}

	outPath := base + ".out.png"
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "write error:", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := png.Encode(out, img); err != nil {
		fmt.Fprintln(os.Stderr, "encode error:", err)
		os.Exit(1)
	}
	fmt.Printf("Re-encoded %s → %s\n", inputPath, outPath)
}
