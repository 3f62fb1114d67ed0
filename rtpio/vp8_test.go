package rtpio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVP8DescriptorShortPictureIDRoundTrip(t *testing.T) {
	d := VP8PayloadDescriptor{
		PartitionStart: true,
		PartitionID:    0,
		HasPictureID:   true,
		PictureID:      17,
	}

	encoded := d.Marshal()
	// Short form: one byte past the extended control bits.
	require.Len(t, encoded, 3)
	assert.Zero(t, encoded[2]&0x80, "short-form picture id must not set the high bit")

	decoded, rest, err := ParseVP8PayloadDescriptor(append(encoded, 0xAA))
	require.NoError(t, err)
	assert.Equal(t, d.PartitionStart, decoded.PartitionStart)
	assert.Equal(t, d.PartitionID, decoded.PartitionID)
	assert.True(t, decoded.HasPictureID)
	assert.Equal(t, d.PictureID, decoded.PictureID)
	assert.False(t, decoded.LongPictureID)
	assert.Equal(t, []byte{0xAA}, rest)
}

func TestVP8DescriptorLongPictureID(t *testing.T) {
	d := VP8PayloadDescriptor{
		HasPictureID: true,
		PictureID:    200, // >= 128, forces long form
	}
	encoded := d.Marshal()
	require.Len(t, encoded, 4)
	assert.NotZero(t, encoded[2]&0x80, "long-form picture id must set the high bit")

	decoded, _, err := ParseVP8PayloadDescriptor(encoded)
	require.NoError(t, err)
	assert.True(t, decoded.LongPictureID)
	assert.Equal(t, uint16(200), decoded.PictureID)
}

func TestVP8DescriptorAllFields(t *testing.T) {
	d := VP8PayloadDescriptor{
		PartitionStart: true,
		PartitionID:    5,
		HasPictureID:   true,
		PictureID:      42,
		HasTL0PICIDX:   true,
		TL0PICIDX:      7,
		HasTID:         true,
		TID:            2,
		Y:              true,
		HasKeyIdx:      true,
		KeyIdx:         9,
	}
	encoded := d.Marshal()
	decoded, rest, err := ParseVP8PayloadDescriptor(encoded)
	require.NoError(t, err)
	assert.Empty(t, rest)
	assert.Equal(t, d, decoded)
}

func TestVP8DescriptorNoExtended(t *testing.T) {
	d := VP8PayloadDescriptor{PartitionStart: true, PartitionID: 3}
	encoded := d.Marshal()
	assert.Len(t, encoded, 1)
	assert.Zero(t, encoded[0]&0x80)
}

func TestVP8DescriptorTruncated(t *testing.T) {
	cases := [][]byte{
		{},
		{0x80},             // extended flag set, no second byte
		{0x80, 0x80},       // I bit set, no picture id byte
		{0x80, 0x80, 0x80}, // long picture id marker, only one byte follows
		{0x80, 0x40},       // L bit set, no TL0PICIDX byte
		{0x80, 0x20},       // T bit set, no T/K byte
	}
	for _, c := range cases {
		_, _, err := ParseVP8PayloadDescriptor(c)
		assert.ErrorIs(t, err, ErrDescriptorTooShort, "input %v", c)
	}
}
