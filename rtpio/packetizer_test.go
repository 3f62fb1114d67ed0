package rtpio

import (
	"bytes"
	"testing"

	"github.com/pion/rtp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPacketizeFrameRoundTrip(t *testing.T) {
	frame := bytes.Repeat([]byte{0xCD}, 5000) // spans multiple PacketMax-sized payloads

	payloads, err := PacketizeFrame(frame, 17)
	require.NoError(t, err)
	require.NotEmpty(t, payloads)

	for i, p := range payloads {
		assert.LessOrEqual(t, len(p), PacketMax)
		descr, _, err := ParseVP8PayloadDescriptor(p)
		require.NoError(t, err)
		assert.Equal(t, i == 0, descr.PartitionStart, "only the first payload carries partition start")
		assert.Equal(t, uint16(17), descr.PictureID)
	}

	reassembled, err := ReassembleFrame(payloads)
	require.NoError(t, err)
	assert.Equal(t, frame, reassembled)
}

func TestPacketizeFrameEmpty(t *testing.T) {
	_, err := PacketizeFrame(nil, 0)
	assert.ErrorIs(t, err, ErrEmptyFrame)
}

func TestPacketizeFrameSinglePacket(t *testing.T) {
	frame := []byte{1, 2, 3, 4}
	payloads, err := PacketizeFrame(frame, 1)
	require.NoError(t, err)
	require.Len(t, payloads, 1)

	descr, data, err := ParseVP8PayloadDescriptor(payloads[0])
	require.NoError(t, err)
	assert.True(t, descr.PartitionStart)
	assert.Equal(t, frame, data)
}

func TestPictureIDWraparound(t *testing.T) {
	assert.Equal(t, uint16(0), IncrementPictureID(pictureIDSpace-1))
	assert.Equal(t, uint16(5), IncrementPictureID(4))
}

func TestDepacketizerReordersWithinWindow(t *testing.T) {
	frame := bytes.Repeat([]byte("a VP8 keyframe payload spanning more than one RTP packet "), 60)
	payloads, err := PacketizeFrame(frame, 9)
	require.NoError(t, err)
	require.Greater(t, len(payloads), 1)

	d := NewDepacketizer(4)
	const timestamp = 90000
	var out []byte
	// Feed packets in reverse order to prove the window tolerates it.
	for i := len(payloads) - 1; i >= 0; i-- {
		pkt := &rtp.Packet{
			Header: rtp.Header{
				SequenceNumber: uint16(i),
				Timestamp:      timestamp,
				Marker:         i == len(payloads)-1,
			},
			Payload: payloads[i],
		}
		frameOut, _, err := d.ProcessPacket(pkt)
		require.NoError(t, err)
		if frameOut != nil {
			out = frameOut
		}
	}
	assert.Equal(t, frame, out)
	assert.Zero(t, d.BufferedFrameCount())
}

func TestDepacketizerIncompleteFrameStaysBuffered(t *testing.T) {
	frame := bytes.Repeat([]byte{0x1}, 4000)
	payloads, err := PacketizeFrame(frame, 3)
	require.NoError(t, err)
	require.Greater(t, len(payloads), 1)

	d := NewDepacketizer(4)
	pkt := &rtp.Packet{
		Header:  rtp.Header{SequenceNumber: 0, Timestamp: 1234, Marker: false},
		Payload: payloads[0],
	}
	out, _, err := d.ProcessPacket(pkt)
	require.NoError(t, err)
	assert.Nil(t, out)
	assert.Equal(t, 1, d.BufferedFrameCount())
}
