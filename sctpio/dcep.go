package sctpio

import (
	"encoding/binary"
	"fmt"
)

// DCEP message type bytes (the first byte of a PPIDControl payload).
const (
	dcepMessageAck  uint8 = 0x02
	dcepMessageOpen uint8 = 0x03
)

const dcepOpenHeaderLen = 1 + 1 + 2 + 4 + 2 + 2 // type, chanType, priority, reliability, labelLen, protocolLen

// DataChannelOpen is the DATA_CHANNEL_OPEN control message (type 0x03)
// that establishes a new data channel.
type DataChannelOpen struct {
	ChannelType uint8
	Priority    uint16
	Reliability uint32
	Label       string
	Protocol    string
}

// Marshal renders the DATA_CHANNEL_OPEN message body (to be sent as user
// data on PPIDControl).
func (o *DataChannelOpen) Marshal() []byte {
	label := []byte(o.Label)
	protocol := []byte(o.Protocol)

	buf := make([]byte, dcepOpenHeaderLen+len(label)+len(protocol))
	buf[0] = dcepMessageOpen
	buf[1] = o.ChannelType
	binary.BigEndian.PutUint16(buf[2:4], o.Priority)
	binary.BigEndian.PutUint32(buf[4:8], o.Reliability)
	binary.BigEndian.PutUint16(buf[8:10], uint16(len(label)))
	binary.BigEndian.PutUint16(buf[10:12], uint16(len(protocol)))
	copy(buf[12:12+len(label)], label)
	copy(buf[12+len(label):], protocol)

	return buf
}

// ParseDataChannelOpen decodes a DATA_CHANNEL_OPEN message body.
func ParseDataChannelOpen(data []byte) (*DataChannelOpen, error) {
	if len(data) < dcepOpenHeaderLen {
		return nil, fmt.Errorf("dcep open header: %w", ErrInvalidDCEPMessage)
	}
	if data[0] != dcepMessageOpen {
		return nil, fmt.Errorf("message type %#x is not DATA_CHANNEL_OPEN: %w", data[0], ErrInvalidDCEPMessage)
	}

	labelLen := int(binary.BigEndian.Uint16(data[8:10]))
	protocolLen := int(binary.BigEndian.Uint16(data[10:12]))
	want := dcepOpenHeaderLen + labelLen + protocolLen
	if len(data) < want {
		return nil, fmt.Errorf("dcep open label/protocol: %w", ErrInvalidDCEPMessage)
	}

	o := &DataChannelOpen{
		ChannelType: data[1],
		Priority:    binary.BigEndian.Uint16(data[2:4]),
		Reliability: binary.BigEndian.Uint32(data[4:8]),
		Label:       string(data[12 : 12+labelLen]),
		Protocol:    string(data[12+labelLen : 12+labelLen+protocolLen]),
	}
	return o, nil
}

// MarshalDataChannelAck renders the DATA_CHANNEL_ACK message body (type
// 0x02), a single byte with no further fields.
func MarshalDataChannelAck() []byte {
	return []byte{dcepMessageAck}
}

// IsDataChannelAck reports whether data is a DATA_CHANNEL_ACK message.
func IsDataChannelAck(data []byte) bool {
	return len(data) >= 1 && data[0] == dcepMessageAck
}
