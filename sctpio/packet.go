package sctpio

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
)

const (
	packetHeaderLen = 12
	chunkHeaderLen  = 4
)

var castagnoliTable = crc32.MakeTable(crc32.Castagnoli)

// Chunk is a generic, untyped SCTP chunk: a type byte, a flags byte, and
// a data payload. Its on-wire Length covers header+body (4 + len(Data))
// but never the trailing pad bytes.
type Chunk struct {
	Type  uint8
	Flags uint8
	Data  []byte
}

// Packet is an SCTP packet: a 12-byte header followed by a concatenation
// of chunks, each individually padded to a 4-byte boundary on the wire.
type Packet struct {
	SourcePort      uint16
	DestinationPort uint16
	VerificationTag uint32
	Chunks          []Chunk
}

// Marshal renders the packet to its on-wire bytes, computing the CRC-32C
// checksum over the packet with the checksum field zeroed and emitting it
// little-endian, per RFC 4960's documented byte-swap quirk.
func (p *Packet) Marshal() []byte {
	body := marshalChunks(p.Chunks)

	buf := make([]byte, packetHeaderLen+len(body))
	binary.BigEndian.PutUint16(buf[0:2], p.SourcePort)
	binary.BigEndian.PutUint16(buf[2:4], p.DestinationPort)
	binary.BigEndian.PutUint32(buf[4:8], p.VerificationTag)
	// buf[8:12] (checksum) left zero for the CRC computation.
	copy(buf[packetHeaderLen:], body)

	checksum := crc32.Checksum(buf, castagnoliTable)
	binary.LittleEndian.PutUint32(buf[8:12], checksum)

	return buf
}

// marshalChunks concatenates each chunk's header+data followed by
// zero-pad bytes to the next 4-byte boundary. Pad bytes are present on
// the wire but excluded from each chunk's Length field.
func marshalChunks(chunks []Chunk) []byte {
	var buf []byte
	for _, c := range chunks {
		length := chunkHeaderLen + len(c.Data)
		header := make([]byte, chunkHeaderLen)
		header[0] = c.Type
		header[1] = c.Flags
		binary.BigEndian.PutUint16(header[2:4], uint16(length))

		buf = append(buf, header...)
		buf = append(buf, c.Data...)

		if pad := (4 - length%4) % 4; pad > 0 {
			buf = append(buf, make([]byte, pad)...)
		}
	}
	return buf
}

// Parse decodes an SCTP packet from data, validating the CRC-32C checksum
// and every chunk's declared length against the remaining buffer.
func Parse(data []byte) (*Packet, error) {
	if len(data) < packetHeaderLen {
		return nil, fmt.Errorf("header: %w", ErrTruncated)
	}

	if err := verifyChecksum(data); err != nil {
		return nil, err
	}

	p := &Packet{
		SourcePort:      binary.BigEndian.Uint16(data[0:2]),
		DestinationPort: binary.BigEndian.Uint16(data[2:4]),
		VerificationTag: binary.BigEndian.Uint32(data[4:8]),
	}

	chunks, err := parseChunks(data[packetHeaderLen:])
	if err != nil {
		return nil, err
	}
	p.Chunks = chunks

	return p, nil
}

// verifyChecksum recomputes the CRC-32C over data with the checksum
// field zeroed and compares it, byte-swapped back from little-endian, to
// the embedded verification value.
func verifyChecksum(data []byte) error {
	embedded := binary.LittleEndian.Uint32(data[8:12])

	checkBuf := make([]byte, len(data))
	copy(checkBuf, data)
	for i := 8; i < 12; i++ {
		checkBuf[i] = 0
	}

	computed := crc32.Checksum(checkBuf, castagnoliTable)
	if computed != embedded {
		return ErrBadChecksum
	}
	return nil
}

func parseChunks(data []byte) ([]Chunk, error) {
	var chunks []Chunk
	pos := 0
	for pos < len(data) {
		if len(data)-pos < chunkHeaderLen {
			return nil, fmt.Errorf("chunk header: %w", ErrTruncated)
		}
		typ := data[pos]
		flags := data[pos+1]
		length := int(binary.BigEndian.Uint16(data[pos+2 : pos+4]))
		if length < chunkHeaderLen {
			return nil, fmt.Errorf("chunk length %d shorter than header: %w", length, ErrTruncated)
		}

		bodyLen := length - chunkHeaderLen
		bodyStart := pos + chunkHeaderLen
		bodyEnd := bodyStart + bodyLen
		if bodyEnd > len(data) {
			return nil, fmt.Errorf("chunk length %d exceeds remaining buffer: %w", length, ErrTruncated)
		}

		chunkData := make([]byte, bodyLen)
		copy(chunkData, data[bodyStart:bodyEnd])
		chunks = append(chunks, Chunk{Type: typ, Flags: flags, Data: chunkData})

		pad := (4 - length%4) % 4
		pos = bodyEnd + pad
		if pos > len(data) {
			return nil, fmt.Errorf("chunk padding exceeds remaining buffer: %w", ErrTruncated)
		}
	}
	return chunks, nil
}
