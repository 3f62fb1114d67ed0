package rtpio

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
)

// PacketMax is the maximum size, in bytes and including the VP8 payload
// descriptor, of a single packetized payload.
const PacketMax = 1300

// pictureIDSpace is the modulus picture ids wrap around at (15 bits).
const pictureIDSpace = 1 << 15

// PacketizeFrame splits a VP8-encoded frame into payload bodies of at most
// PacketMax bytes, each prefixed with its VP8 payload descriptor. Every
// payload in the returned slice shares pictureID; only the first carries
// PartitionStart.
func PacketizeFrame(frame []byte, pictureID uint16) ([][]byte, error) {
	if len(frame) == 0 {
		return nil, ErrEmptyFrame
	}

	descr := VP8PayloadDescriptor{
		PartitionStart: true,
		PartitionID:    0,
		HasPictureID:   true,
		PictureID:      pictureID,
	}

	var payloads [][]byte
	pos := 0
	for pos < len(frame) {
		descrBytes := descr.Marshal()
		if len(descrBytes) >= PacketMax {
			return nil, ErrPacketSizeTooSmall
		}
		size := len(frame) - pos
		if max := PacketMax - len(descrBytes); size > max {
			size = max
		}

		payload := make([]byte, 0, len(descrBytes)+size)
		payload = append(payload, descrBytes...)
		payload = append(payload, frame[pos:pos+size]...)
		payloads = append(payloads, payload)

		descr.PartitionStart = false
		pos += size
	}

	return payloads, nil
}

// NextPictureID generates a random starting picture id in 0..2^15-1, the
// seed for the per-frame counter.
func NextPictureID() (uint16, error) {
	var b [2]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("generate picture id: %w", err)
	}
	return binary.BigEndian.Uint16(b[:]) % pictureIDSpace, nil
}

// IncrementPictureID advances a picture id by one, wrapping at 2^15.
func IncrementPictureID(id uint16) uint16 {
	return (id + 1) % pictureIDSpace
}

// ReassembleFrame strips the VP8 payload descriptor from each payload, in
// order, and concatenates the remaining bytes. Payloads must be supplied
// in transmission order (partition_start first).
func ReassembleFrame(payloads [][]byte) ([]byte, error) {
	var frame []byte
	for i, payload := range payloads {
		descr, data, err := ParseVP8PayloadDescriptor(payload)
		if err != nil {
			return nil, fmt.Errorf("payload %d: %w", i, err)
		}
		if i == 0 && !descr.PartitionStart {
			return nil, fmt.Errorf("payload 0: %w: missing partition start", ErrDescriptorTooShort)
		}
		frame = append(frame, data...)
	}
	return frame, nil
}
