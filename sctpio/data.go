package sctpio

import (
	"encoding/binary"
	"fmt"
)

const dataChunkHeaderLen = 12

// flag bits within a DATA chunk's Flags byte.
const (
	dataFlagEndFragment   uint8 = 1 << 0
	dataFlagBeginFragment uint8 = 1 << 1
	dataFlagUnordered     uint8 = 1 << 2
)

// DataChunk is the typed view of a DATA chunk (type 0): the TSN, stream
// routing, and PPID fields the data-channel manager needs to dispatch an
// incoming payload.
type DataChunk struct {
	Unordered      bool
	BeginFragment  bool
	EndFragment    bool
	TSN            uint32
	StreamID       uint16
	StreamSeq      uint16
	PPID           PayloadProtocolID
	UserData       []byte
}

// Marshal renders the chunk to a generic Chunk ready for Packet.Marshal.
func (d *DataChunk) Marshal() Chunk {
	var flags uint8
	if d.EndFragment {
		flags |= dataFlagEndFragment
	}
	if d.BeginFragment {
		flags |= dataFlagBeginFragment
	}
	if d.Unordered {
		flags |= dataFlagUnordered
	}

	body := make([]byte, dataChunkHeaderLen+len(d.UserData))
	binary.BigEndian.PutUint32(body[0:4], d.TSN)
	binary.BigEndian.PutUint16(body[4:6], d.StreamID)
	binary.BigEndian.PutUint16(body[6:8], d.StreamSeq)
	binary.BigEndian.PutUint32(body[8:12], uint32(d.PPID))
	copy(body[dataChunkHeaderLen:], d.UserData)

	return Chunk{Type: uint8(ChunkTypeData), Flags: flags, Data: body}
}

// ParseDataChunk decodes c as a DATA chunk.
func ParseDataChunk(c Chunk) (*DataChunk, error) {
	if ChunkType(c.Type) != ChunkTypeData {
		return nil, fmt.Errorf("type %d: %w", c.Type, ErrUnknownChunkType)
	}
	if len(c.Data) < dataChunkHeaderLen {
		return nil, fmt.Errorf("data chunk body: %w", ErrTruncated)
	}

	d := &DataChunk{
		EndFragment:   c.Flags&dataFlagEndFragment != 0,
		BeginFragment: c.Flags&dataFlagBeginFragment != 0,
		Unordered:     c.Flags&dataFlagUnordered != 0,
		TSN:           binary.BigEndian.Uint32(c.Data[0:4]),
		StreamID:      binary.BigEndian.Uint16(c.Data[4:6]),
		StreamSeq:     binary.BigEndian.Uint16(c.Data[6:8]),
		PPID:          PayloadProtocolID(binary.BigEndian.Uint32(c.Data[8:12])),
	}
	d.UserData = append([]byte(nil), c.Data[dataChunkHeaderLen:]...)
	return d, nil
}
