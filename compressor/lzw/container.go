package lzw

import (
	"bytes"
	"fmt"

	"github.com/icza/bitio"
)

// Pack serializes a token sequence at a fixed bit width: a 32-bit token
// count, an 8-bit width, then every token packed at that width.
func Pack(tokens []Token) ([]byte, error) {
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	width := tokenWidth(tokens)
	w.WriteBits(uint64(len(tokens)), 32)
	w.WriteBits(uint64(width), 8)
	for _, token := range tokens {
		w.WriteBits(uint64(token), width)
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unpack reverses Pack.
func Unpack(data []byte) ([]Token, error) {
	r := bitio.NewReader(bytes.NewReader(data))
	count, err := r.ReadBits(32)
	if err != nil {
		return nil, fmt.Errorf("lzw: reading token count: %w", err)
	}
	width, err := r.ReadBits(8)
	if err != nil {
		return nil, fmt.Errorf("lzw: reading token width: %w", err)
	}
	if count == 0 {
		return nil, nil
	}
	// Both header fields are untrusted. Pack never writes a width outside
	// 9..32, and count tokens at that width must fit in the remaining input;
	// checking before the allocation keeps a crafted count from requesting
	// gigabytes.
	if width < 9 || width > 32 {
		return nil, fmt.Errorf("lzw: token width %d out of range", width)
	}
	if count > uint64(len(data))*8/width {
		return nil, fmt.Errorf("lzw: token count %d exceeds the %d-byte input", count, len(data))
	}
	tokens := make([]Token, 0, count)
	for i := uint64(0); i < count; i++ {
		token, err := r.ReadBits(byte(width))
		if err != nil {
			return nil, fmt.Errorf("lzw: reading token %d of %d: %w", i, count, err)
		}
		tokens = append(tokens, Token(token))
	}
	return tokens, nil
}
