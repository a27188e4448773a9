package container

import (
	"bytes"
	"errors"
	"testing"
)

func TestWrapUnwrapRoundTrip(t *testing.T) {
	payload := []byte{0x01, 0x02, 0xfe, 0x00, 0x42}
	framed, err := Wrap("lzw,deflate", payload)
	if err != nil {
		t.Fatal(err)
	}
	algorithms, unwrapped, err := Unwrap(framed)
	if err != nil {
		t.Fatal(err)
	}
	if algorithms != "lzw,deflate" {
		t.Errorf("algorithm chain = %q, want \"lzw,deflate\"", algorithms)
	}
	if !bytes.Equal(unwrapped, payload) {
		t.Errorf("payload = %v, want %v", unwrapped, payload)
	}
}

func TestWrapEmptyPayload(t *testing.T) {
	framed, err := Wrap("deflate", nil)
	if err != nil {
		t.Fatal(err)
	}
	_, unwrapped, err := Unwrap(framed)
	if err != nil {
		t.Fatal(err)
	}
	if len(unwrapped) != 0 {
		t.Errorf("payload = %v, want empty", unwrapped)
	}
}

func TestUnwrapBadMagic(t *testing.T) {
	if _, _, err := Unwrap([]byte{0x00, 0x01, 0x02, 0x03}); !errors.Is(err, ErrBadMagic) {
		t.Errorf("err = %v, want ErrBadMagic", err)
	}
	if _, _, err := Unwrap(nil); !errors.Is(err, ErrBadMagic) {
		t.Errorf("Unwrap(nil): err = %v, want ErrBadMagic", err)
	}
}

func TestUnwrapDetectsCorruption(t *testing.T) {
	framed, err := Wrap("deflate", []byte("payload bytes"))
	if err != nil {
		t.Fatal(err)
	}
	flipped := append([]byte(nil), framed...)
	flipped[len(flipped)-1] ^= 0x40
	if _, _, err := Unwrap(flipped); !errors.Is(err, ErrChecksum) {
		t.Errorf("flipped payload bit: err = %v, want ErrChecksum", err)
	}
	truncated := framed[:len(framed)-2]
	if _, _, err := Unwrap(truncated); !errors.Is(err, ErrChecksum) {
		t.Errorf("truncated payload: err = %v, want ErrChecksum", err)
	}
}
