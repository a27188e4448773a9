package deflate

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"github.com/icza/bitio"

	"github.com/Vallyiast/Projet-PNG-GIF-ITI4-INSA/compressor/huffman"
	"github.com/Vallyiast/Projet-PNG-GIF-ITI4-INSA/compressor/lzw"
)

// Deflate runs the logical pipeline: dictionary substitution, token
// frequency analysis, tree construction and entropy coding. The returned
// tree must accompany the bitstring for Inflate; it is not recoverable
// from the bits alone.
func Deflate(content []byte) (huffman.BitString, huffman.Tree, error) {
	tokens := lzw.Encode(content)
	tree, err := huffman.Build(huffman.Count(tokens))
	if err != nil {
		return "", nil, err
	}
	bits, err := huffman.Encode(tokens, huffman.Codes(tree))
	if err != nil {
		return "", nil, err
	}
	return bits, tree, nil
}

// Inflate is the mirror of Deflate.
func Inflate(bits huffman.BitString, tree huffman.Tree) ([]byte, error) {
	tokens, err := huffman.Decode(bits, tree)
	if err != nil {
		return nil, err
	}
	return lzw.Decode(tokens)
}

// Compress runs Deflate and packs the result into a self-contained byte
// stream: the token frequency table followed by the payload bits. Because
// tree construction is deterministic, the frequency table alone lets the
// decoder rebuild the exact tree.
//
// Layout, written with bitio:
//
//	u32  distinct token count
//	then per distinct token, in ascending token order:
//	u32  token
//	u32  frequency
//	u64  payload length in bits
//	     payload bits
func Compress(content []byte) ([]byte, error) {
	if len(content) == 0 {
		return packEmpty()
	}
	bits, tree, err := Deflate(content)
	if err != nil {
		return nil, err
	}
	tokenFreq := huffman.Frequencies(tree)
	keys := make([]huffman.Token, 0, len(tokenFreq))
	for token := range tokenFreq {
		keys = append(keys, token)
	}
	slices.Sort(keys)
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	w.WriteBits(uint64(len(keys)), 32)
	for _, token := range keys {
		w.WriteBits(uint64(token), 32)
		w.WriteBits(uint64(tokenFreq[token]), 32)
	}
	w.WriteBits(uint64(len(bits)), 64)
	for i := 0; i < len(bits); i++ {
		w.WriteBool(bits[i] == '1')
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decompress reverses Compress: it reads back the frequency table, rebuilds
// the tree and runs the pipeline in the opposite direction.
func Decompress(data []byte) ([]byte, error) {
	r := bitio.NewReader(bytes.NewReader(data))
	count, err := r.ReadBits(32)
	if err != nil {
		return nil, fmt.Errorf("deflate: reading token count: %w", err)
	}
	if count == 0 {
		return nil, nil
	}
	tokenFreq := make(map[huffman.Token]int, count)
	for i := uint64(0); i < count; i++ {
		token, err := r.ReadBits(32)
		if err != nil {
			return nil, fmt.Errorf("deflate: reading token %d of %d: %w", i, count, err)
		}
		freq, err := r.ReadBits(32)
		if err != nil {
			return nil, fmt.Errorf("deflate: reading frequency %d of %d: %w", i, count, err)
		}
		tokenFreq[huffman.Token(token)] = int(freq)
	}
	bitCount, err := r.ReadBits(64)
	if err != nil {
		return nil, fmt.Errorf("deflate: reading payload length: %w", err)
	}
	// The length field is untrusted; cap it by the bits actually present
	// before allocating or looping.
	if bitCount > uint64(len(data))*8 {
		return nil, fmt.Errorf("deflate: payload length %d bits exceeds the %d-byte input", bitCount, len(data))
	}
	var bits strings.Builder
	bits.Grow(int(bitCount))
	for i := uint64(0); i < bitCount; i++ {
		b, err := r.ReadBool()
		if err != nil {
			return nil, fmt.Errorf("deflate: reading payload bit %d of %d: %w", i, bitCount, err)
		}
		if b {
			bits.WriteByte('1')
		} else {
			bits.WriteByte('0')
		}
	}
	tree, err := huffman.Build(tokenFreq)
	if err != nil {
		return nil, err
	}
	return Inflate(huffman.BitString(bits.String()), tree)
}

func packEmpty() ([]byte, error) {
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	w.WriteBits(0, 32)
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
