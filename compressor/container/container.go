package container

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
)

// File framing around a compressed payload. The codec packages deal in raw
// byte streams; this is the adapter the engine uses when those streams hit
// disk.
//
//	2 bytes  magic "RS"
//	1 byte   algorithm chain length
//	n bytes  algorithm chain, e.g. "deflate" or "lzw,deflate"
//	4 bytes  crc32 (IEEE) of the payload, little endian
//	8 bytes  payload length, little endian
//	         payload
const (
	magic0 = 0x52
	magic1 = 0x53
)

var (
	ErrBadMagic = errors.New("container: bad magic bytes")
	ErrChecksum = errors.New("container: checksum mismatch")
)

// Wrap frames payload together with the algorithm chain that produced it.
func Wrap(algorithms string, payload []byte) ([]byte, error) {
	if len(algorithms) > 255 {
		return nil, fmt.Errorf("container: algorithm chain %q too long", algorithms)
	}
	framed := make([]byte, 0, 3+len(algorithms)+12+len(payload))
	framed = append(framed, magic0, magic1, byte(len(algorithms)))
	framed = append(framed, algorithms...)
	var tail [12]byte
	binary.LittleEndian.PutUint32(tail[0:4], crc32.ChecksumIEEE(payload))
	binary.LittleEndian.PutUint64(tail[4:12], uint64(len(payload)))
	framed = append(framed, tail[:]...)
	framed = append(framed, payload...)
	return framed, nil
}

// Unwrap checks the framing and returns the algorithm chain and payload.
func Unwrap(data []byte) (string, []byte, error) {
	if len(data) < 3 || data[0] != magic0 || data[1] != magic1 {
		return "", nil, ErrBadMagic
	}
	nameLen := int(data[2])
	if len(data) < 3+nameLen+12 {
		return "", nil, fmt.Errorf("container: truncated header: %w", ErrBadMagic)
	}
	algorithms := string(data[3 : 3+nameLen])
	checksum := binary.LittleEndian.Uint32(data[3+nameLen : 3+nameLen+4])
	payloadLen := binary.LittleEndian.Uint64(data[3+nameLen+4 : 3+nameLen+12])
	payload := data[3+nameLen+12:]
	if uint64(len(payload)) != payloadLen {
		return "", nil, fmt.Errorf("container: payload is %d bytes, header says %d: %w", len(payload), payloadLen, ErrChecksum)
	}
	if crc32.ChecksumIEEE(payload) != checksum {
		return "", nil, ErrChecksum
	}
	return algorithms, payload, nil
}
