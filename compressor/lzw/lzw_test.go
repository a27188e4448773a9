package lzw

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"

	"github.com/icza/bitio"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	inputs := []string{
		"TOBEORNOTTOBEORTOBEORNOT",
		"a",
		"ab",
		"aaaaaa",
		"abababab",
		"fheizmezajmezajimzeajimomoimimim",
		"the quick brown fox jumps over the lazy dog",
		"\x00\x00\x00\xff\xff\xff\x00\x00\x00",
	}
	for _, input := range inputs {
		tokens := Encode([]byte(input))
		restored, err := Decode(tokens)
		if err != nil {
			t.Errorf("Decode(Encode(%q)): %v", input, err)
			continue
		}
		if string(restored) != input {
			t.Errorf("round trip of %q: got %q", input, restored)
		}
	}
}

func TestEncodeCompressesRepeatedInput(t *testing.T) {
	input := []byte("TOBEORNOTTOBEORTOBEORNOT")
	tokens := Encode(input)
	if len(tokens) >= len(input) {
		t.Errorf("Encode produced %d tokens for %d symbols, want fewer", len(tokens), len(input))
	}
	if len(tokens) >= 24 {
		t.Errorf("Encode produced %d tokens, want fewer than 24", len(tokens))
	}
}

func TestEncodeLearnsLateSubstring(t *testing.T) {
	// A substring repeated many times late in the stream should be emitted
	// as ever fewer tokens once the dictionary has grown entries for it.
	input := []byte("0123456789")
	for i := 0; i < 50; i++ {
		input = append(input, "pattern"...)
	}
	tokens := Encode(input)
	if len(tokens) >= len(input) {
		t.Errorf("Encode produced %d tokens for %d symbols, want strictly fewer", len(tokens), len(input))
	}
}

func TestEncodeEmptyInput(t *testing.T) {
	if tokens := Encode(nil); len(tokens) != 0 {
		t.Errorf("Encode(nil) = %v, want empty", tokens)
	}
	restored, err := Decode(nil)
	if err != nil || len(restored) != 0 {
		t.Errorf("Decode(nil) = %v, %v, want empty, nil", restored, err)
	}
}

func TestDecodeSelfReferentialToken(t *testing.T) {
	// "aaa" encodes to [97, 256]: token 256 refers to the entry the encoder
	// defined while emitting token 97 and never recorded before using it.
	tokens := Encode([]byte("aaa"))
	want := []Token{'a', 256}
	if len(tokens) != len(want) || tokens[0] != want[0] || tokens[1] != want[1] {
		t.Fatalf("Encode(\"aaa\") = %v, want %v", tokens, want)
	}
	restored, err := Decode(tokens)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if string(restored) != "aaa" {
		t.Errorf("Decode = %q, want \"aaa\"", restored)
	}
}

func TestDecodeInvalidToken(t *testing.T) {
	// 258 is two past the next unassigned id after one implicit insertion.
	if _, err := Decode([]Token{'a', 258}); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Decode with unbound token: err = %v, want ErrInvalidToken", err)
	}
	if _, err := Decode([]Token{1000}); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Decode with unbound leading token: err = %v, want ErrInvalidToken", err)
	}
}

func TestRoundTripRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 20; trial++ {
		input := make([]byte, rng.Intn(4096))
		for i := range input {
			// A reduced alphabet forces repetitions.
			input[i] = byte(rng.Intn(8))
		}
		restored, err := Decode(Encode(input))
		if err != nil {
			t.Fatalf("trial %d: %v", trial, err)
		}
		if !bytes.Equal(restored, input) {
			t.Fatalf("trial %d: round trip mismatch", trial)
		}
	}
}

func TestPackUnpackRoundTrip(t *testing.T) {
	inputs := [][]Token{
		nil,
		{0},
		{'T', 'O', 'B', 'E', 256, 258, 260, 265, 259, 261, 263},
		{511, 512, 1 << 15},
	}
	for _, tokens := range inputs {
		packed, err := Pack(tokens)
		if err != nil {
			t.Fatalf("Pack(%v): %v", tokens, err)
		}
		restored, err := Unpack(packed)
		if err != nil {
			t.Fatalf("Unpack(Pack(%v)): %v", tokens, err)
		}
		if len(restored) != len(tokens) {
			t.Fatalf("Unpack returned %d tokens, want %d", len(restored), len(tokens))
		}
		for i := range tokens {
			if restored[i] != tokens[i] {
				t.Errorf("token %d: got %d, want %d", i, restored[i], tokens[i])
			}
		}
	}
}

func TestUnpackTruncated(t *testing.T) {
	packed, err := Pack([]Token{'a', 'b', 'c', 256})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Unpack(packed[:len(packed)-2]); err == nil {
		t.Error("Unpack of truncated data succeeded, want error")
	}
	if _, err := Unpack(nil); err == nil {
		t.Error("Unpack(nil) succeeded, want error")
	}
}

func TestUnpackOverstatedTokenCount(t *testing.T) {
	// A crafted count field must be bounded by the input size before the
	// token slice is allocated.
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	w.WriteBits(1<<32-1, 32) // token count: absurd
	w.WriteBits(9, 8)
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := Unpack(buf.Bytes()); err == nil {
		t.Error("Unpack with overstated token count succeeded, want error")
	}
}

func TestUnpackBadTokenWidth(t *testing.T) {
	for _, width := range []uint64{0, 8, 33, 255} {
		var buf bytes.Buffer
		w := bitio.NewWriter(&buf)
		w.WriteBits(1, 32)
		w.WriteBits(width, 8)
		w.WriteBits('a', 32)
		if err := w.Close(); err != nil {
			t.Fatal(err)
		}
		if _, err := Unpack(buf.Bytes()); err == nil {
			t.Errorf("Unpack with token width %d succeeded, want error", width)
		}
	}
}

func TestWriterReaderRoundTrip(t *testing.T) {
	input := []byte("TOBEORNOTTOBEORTOBEORNOT")
	var compressed bytes.Buffer
	w := NewWriter(&compressed)
	if _, err := w.Write(input); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	r := NewReader(&compressed)
	defer r.Close()
	restored := make([]byte, 0, len(input))
	buf := make([]byte, 7)
	for {
		n, err := r.Read(buf)
		restored = append(restored, buf[:n]...)
		if err != nil {
			break
		}
	}
	if !bytes.Equal(restored, input) {
		t.Errorf("writer/reader round trip = %q, want %q", restored, input)
	}
}
