package sctpio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataChannelOpenRoundTrip(t *testing.T) {
	o := &DataChannelOpen{
		ChannelType: 0,
		Priority:    128,
		Reliability: 0,
		Label:       "chat",
		Protocol:    "",
	}
	encoded := o.Marshal()

	decoded, err := ParseDataChannelOpen(encoded)
	require.NoError(t, err)
	assert.Equal(t, o.ChannelType, decoded.ChannelType)
	assert.Equal(t, o.Priority, decoded.Priority)
	assert.Equal(t, o.Reliability, decoded.Reliability)
	assert.Equal(t, o.Label, decoded.Label)
	assert.Equal(t, o.Protocol, decoded.Protocol)
}

func TestDataChannelAck(t *testing.T) {
	ack := MarshalDataChannelAck()
	assert.True(t, IsDataChannelAck(ack))
	assert.False(t, IsDataChannelAck([]byte{0x03}))
	assert.False(t, IsDataChannelAck(nil))
}

func TestParseDataChannelOpenRejectsWrongType(t *testing.T) {
	bad := MarshalDataChannelAck()
	_, err := ParseDataChannelOpen(bad)
	assert.ErrorIs(t, err, ErrInvalidDCEPMessage)
}
