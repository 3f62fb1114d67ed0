package rtpio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPacketizerVP8(t *testing.T) {
	p, err := NewPacketizer(CodecVP8)
	require.NoError(t, err)
	require.NotNil(t, p)

	p.SetTargetBitrate(500_000)
	assert.Equal(t, uint32(500_000), p.TargetBitrate())

	payloads, err := p.Packetize([]byte{1, 2, 3})
	require.NoError(t, err)
	assert.NotEmpty(t, payloads)
}

func TestNewPacketizerUnimplementedCodecs(t *testing.T) {
	for _, c := range []Codec{CodecOpus, CodecPCMA, CodecPCMU} {
		_, err := NewPacketizer(c)
		assert.ErrorIs(t, err, ErrCodecNotImplemented, c.String())
	}
}

func TestVP8PacketizerAdvancesPictureIDPerFrame(t *testing.T) {
	p, err := NewVP8Packetizer()
	require.NoError(t, err)
	first := p.pictureID

	_, err = p.Packetize([]byte{1})
	require.NoError(t, err)
	assert.Equal(t, IncrementPictureID(first), p.pictureID)
}

func TestSequenceTrackerStartsAtInitial(t *testing.T) {
	var tr SequenceTracker
	assert.Equal(t, uint16(100), tr.Next(100))
	assert.Equal(t, uint16(101), tr.Next(0))
}

func TestCodecString(t *testing.T) {
	assert.Equal(t, "VP8", CodecVP8.String())
	assert.Equal(t, "opus", CodecOpus.String())
}
