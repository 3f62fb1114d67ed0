package sctpio

import (
	"encoding/binary"
	"fmt"
)

// Re-configuration parameter types (RFC 6525 §4). Only the single
// request/response pair the data-channel close handshake needs is typed
// here — add/incoming-stream renegotiation parameters are out of scope,
// since this module never changes a channel's stream count mid-session.
const (
	reconfigParamOutgoingReset uint16 = 13
	reconfigParamResponse      uint16 = 16
)

const reconfigParamHeaderLen = 4 // param type + param length

// ReconfigResultSuccess is the only Result value this package emits:
// RFC 6525's "Success - Performed" code.
const ReconfigResultSuccess uint32 = 1

// ReconfigChunk is the typed view of a RE-CONFIG chunk (type 130): either
// a stream-reset request naming the stream ids to tear down, or the
// response acknowledging a previously sent request, correlated by
// ReqSeq.
type ReconfigChunk struct {
	IsResponse bool
	ReqSeq     uint32
	StreamIDs  []uint16 // request only
	Result     uint32   // response only
}

// Marshal renders the chunk to a generic Chunk ready for Packet.Marshal.
func (r *ReconfigChunk) Marshal() Chunk {
	var paramType uint16
	var body []byte

	if r.IsResponse {
		paramType = reconfigParamResponse
		body = make([]byte, 8)
		binary.BigEndian.PutUint32(body[0:4], r.ReqSeq)
		binary.BigEndian.PutUint32(body[4:8], r.Result)
	} else {
		paramType = reconfigParamOutgoingReset
		body = make([]byte, 4+2*len(r.StreamIDs))
		binary.BigEndian.PutUint32(body[0:4], r.ReqSeq)
		for i, sid := range r.StreamIDs {
			binary.BigEndian.PutUint16(body[4+2*i:6+2*i], sid)
		}
	}

	param := make([]byte, reconfigParamHeaderLen+len(body))
	binary.BigEndian.PutUint16(param[0:2], paramType)
	binary.BigEndian.PutUint16(param[2:4], uint16(len(param)))
	copy(param[reconfigParamHeaderLen:], body)

	return Chunk{Type: uint8(ChunkTypeReconfig), Data: param}
}

// ParseReconfigChunk decodes c as a RE-CONFIG chunk carrying exactly one
// Outgoing SSN Reset Request or Re-configuration Response parameter.
func ParseReconfigChunk(c Chunk) (*ReconfigChunk, error) {
	if ChunkType(c.Type) != ChunkTypeReconfig {
		return nil, fmt.Errorf("type %d: %w", c.Type, ErrUnknownChunkType)
	}
	if len(c.Data) < reconfigParamHeaderLen {
		return nil, fmt.Errorf("reconfig param header: %w", ErrTruncated)
	}

	paramType := binary.BigEndian.Uint16(c.Data[0:2])
	paramLen := int(binary.BigEndian.Uint16(c.Data[2:4]))
	if paramLen < reconfigParamHeaderLen || paramLen > len(c.Data) {
		return nil, fmt.Errorf("reconfig param length %d: %w", paramLen, ErrTruncated)
	}
	body := c.Data[reconfigParamHeaderLen:paramLen]

	switch paramType {
	case reconfigParamResponse:
		if len(body) < 8 {
			return nil, fmt.Errorf("reconfig response body: %w", ErrTruncated)
		}
		return &ReconfigChunk{
			IsResponse: true,
			ReqSeq:     binary.BigEndian.Uint32(body[0:4]),
			Result:     binary.BigEndian.Uint32(body[4:8]),
		}, nil
	case reconfigParamOutgoingReset:
		if len(body) < 4 || (len(body)-4)%2 != 0 {
			return nil, fmt.Errorf("reconfig request body: %w", ErrTruncated)
		}
		r := &ReconfigChunk{ReqSeq: binary.BigEndian.Uint32(body[0:4])}
		for i := 4; i < len(body); i += 2 {
			r.StreamIDs = append(r.StreamIDs, binary.BigEndian.Uint16(body[i:i+2]))
		}
		return r, nil
	default:
		return nil, fmt.Errorf("reconfig param type %d: %w", paramType, ErrUnknownChunkType)
	}
}
