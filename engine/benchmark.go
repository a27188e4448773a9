package engine

import (
	"bytes"
	"fmt"

	"github.com/Vallyiast/Projet-PNG-GIF-ITI4-INSA/compressor/deflate"
	"github.com/Vallyiast/Projet-PNG-GIF-ITI4-INSA/compressor/lzw"
)

// SyntheticImage produces a flattened greyscale test image: a dark
// background with a grey square and a darker square nested inside it.
// The long runs of identical bytes make dictionary growth easy to observe.
func SyntheticImage(height, width int) []byte {
	image := make([]byte, height*width)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var value byte
			switch {
			case y >= 2*height/5 && y < 3*height/5 && x >= 2*width/5 && x < 3*width/5:
				value = 100
			case y >= height/5 && y < 4*height/5 && x >= width/5 && x < 4*width/5:
				value = 200
			}
			image[y*width+x] = value
		}
	}
	return image
}

// Benchmark runs the pipeline over content, prints stage-by-stage sizes and
// verifies the round trip.
func Benchmark(content []byte) error {
	fmt.Printf("Size without compression (in bits): %v\n", len(content)*8)

	tokens := lzw.Encode(content)
	fmt.Printf("Number of tokens after dictionary coding: %v\n", len(tokens))

	bits, tree, err := deflate.Deflate(content)
	if err != nil {
		return err
	}
	fmt.Printf("Entropy-coded payload (in bits): %v\n", len(bits))

	compressed, err := deflate.Compress(content)
	if err != nil {
		return err
	}
	fmt.Printf("Packed size with frequency table (in bytes): %v\n", len(compressed))
	fmt.Printf("Compression ratio: %.2f%%\n", float32(len(compressed))/float32(len(content))*100)

	restored, err := deflate.Inflate(bits, tree)
	if err != nil {
		return err
	}
	fmt.Printf("Compression/decompression successful: %v\n", bytes.Equal(content, restored))
	return nil
}
