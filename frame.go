package coolled

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Wire framing constants. A frame is STX, the escaped length-prefixed
// payload, ETX. Payload bytes below 0x04 collide with the framing bytes and
// are escaped as 0x02 followed by the value plus 0x04.
const (
	frameSTX     = 0x01
	frameETX     = 0x03
	escapePrefix = 0x02
	escapeOffset = 0x04

	// MaxChunkData is the largest slice of a content payload carried by a
	// single chunk.
	MaxChunkData = 128

	chunkHeaderLen = 6
)

// Escape replaces the framing bytes 0x01, 0x02 and 0x03 inside data with
// their two-byte escape sequences. 0x02 must be handled first so the bytes
// introduced by the other substitutions are not escaped again.
func Escape(data []byte) []byte {
	data = bytes.ReplaceAll(data, []byte{0x02}, []byte{0x02, 0x06})
	data = bytes.ReplaceAll(data, []byte{0x01}, []byte{0x02, 0x05})
	return bytes.ReplaceAll(data, []byte{0x03}, []byte{0x02, 0x07})
}

// Unescape reverses Escape: a 0x02 byte means the following byte's value
// minus 0x04 is the true byte. A frame ending in a bare 0x02 is malformed.
func Unescape(data []byte) ([]byte, error) {
	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		if data[i] == escapePrefix {
			if i+1 >= len(data) {
				return nil, fmt.Errorf("truncated escape sequence at offset %d: %w", i, ErrFraming)
			}
			out = append(out, data[i+1]-escapeOffset)
			i++
			continue
		}
		out = append(out, data[i])
	}
	return out, nil
}

// EncodeFrame wraps a raw payload in the sign's wire frame:
// STX, escape(big-endian length ++ payload), ETX.
func EncodeFrame(payload []byte) []byte {
	prefixed := make([]byte, 2, 2+len(payload))
	binary.BigEndian.PutUint16(prefixed, uint16(len(payload)))
	prefixed = append(prefixed, payload...)

	escaped := Escape(prefixed)
	frame := make([]byte, 0, len(escaped)+2)
	frame = append(frame, frameSTX)
	frame = append(frame, escaped...)
	return append(frame, frameETX)
}

// DecodeFrame is the inverse of EncodeFrame. It returns the raw payload and
// the frame's declared payload length. The declared length is informational:
// devices have been observed emitting frames where it disagrees with the
// actual payload size, so callers decide whether to treat a mismatch as an
// error.
func DecodeFrame(frame []byte) (payload []byte, declared int, err error) {
	decoded, err := Unescape(frame)
	if err != nil {
		return nil, 0, err
	}
	if len(decoded) < 4 {
		return nil, 0, fmt.Errorf("frame too short (%d bytes): %w", len(decoded), ErrFraming)
	}
	if decoded[0] != frameSTX {
		return nil, 0, fmt.Errorf("opening byte 0x%02X != 0x01: %w", decoded[0], ErrFraming)
	}
	if decoded[len(decoded)-1] != frameETX {
		return nil, 0, fmt.Errorf("closing byte 0x%02X != 0x03: %w", decoded[len(decoded)-1], ErrFraming)
	}
	declared = int(binary.BigEndian.Uint16(decoded[1:3]))
	return decoded[3 : len(decoded)-1], declared, nil
}

// XORChecksum folds data into a single byte by XOR. Order-sensitive in the
// sense that any single bit flip in the input flips the same bit in the
// result.
func XORChecksum(data []byte) byte {
	var sum byte
	for _, b := range data {
		sum ^= b
	}
	return sum
}

// ChopUpData splits a content payload into chunks of at most MaxChunkData
// bytes. Each chunk carries a six-byte header (reserved zero byte, total
// payload length, chunk index, chunk size), a trailing XOR checksum over
// header and data, and the hardware command byte prepended in front of it
// all. The command byte is not part of the checksum. Payloads over 65535
// bytes do not fit the header's length field and are rejected.
func ChopUpData(data []byte, command byte) ([][]byte, error) {
	total := len(data)
	if total > 0xFFFF {
		return nil, fmt.Errorf("payload is %d bytes, the chunk header length field holds at most 65535", total)
	}
	count := (total + MaxChunkData - 1) / MaxChunkData
	if count == 0 {
		count = 1
	}

	chunks := make([][]byte, 0, count)
	for idx := 0; idx < count; idx++ {
		piece := data[idx*MaxChunkData:]
		if len(piece) > MaxChunkData {
			piece = piece[:MaxChunkData]
		}

		chunk := make([]byte, 1+chunkHeaderLen, 1+chunkHeaderLen+len(piece)+1)
		chunk[0] = command
		chunk[1] = 0x00 // reserved, meaning unknown
		binary.BigEndian.PutUint16(chunk[2:4], uint16(total))
		binary.BigEndian.PutUint16(chunk[4:6], uint16(idx))
		chunk[6] = byte(len(piece))
		chunk = append(chunk, piece...)
		chunk = append(chunk, XORChecksum(chunk[1:]))
		chunks = append(chunks, chunk)
	}
	return chunks, nil
}
