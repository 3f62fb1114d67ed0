package sctpio

import (
	"encoding/binary"
	"hash/crc32"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPacketRoundTrip(t *testing.T) {
	p := &Packet{
		SourcePort:      5000,
		DestinationPort: 5000,
		VerificationTag: 0,
		Chunks: []Chunk{
			{Type: uint8(ChunkTypeInit), Flags: 0, Data: make([]byte, 78)},
		},
	}

	encoded := p.Marshal()
	// 12-byte header + 82-byte chunk (4-byte chunk header + 78-byte body)
	// + 2 pad bytes to the next multiple of 4 = 96 bytes.
	assert.Len(t, encoded, 96)

	decoded, err := Parse(encoded)
	require.NoError(t, err)
	assert.Equal(t, p.SourcePort, decoded.SourcePort)
	assert.Equal(t, p.DestinationPort, decoded.DestinationPort)
	assert.Equal(t, p.VerificationTag, decoded.VerificationTag)
	require.Len(t, decoded.Chunks, 1)
	assert.Equal(t, p.Chunks[0].Type, decoded.Chunks[0].Type)
	assert.Equal(t, p.Chunks[0].Data, decoded.Chunks[0].Data)

	reencoded := decoded.Marshal()
	assert.Equal(t, encoded, reencoded)
}

func TestPacketChecksumBitFlipFails(t *testing.T) {
	p := &Packet{
		SourcePort: 1, DestinationPort: 2, VerificationTag: 3,
		Chunks: []Chunk{{Type: 1, Flags: 0, Data: []byte("hello")}},
	}
	encoded := p.Marshal()

	for i := range encoded {
		flipped := append([]byte(nil), encoded...)
		flipped[i] ^= 0x01
		_, err := Parse(flipped)
		assert.ErrorIs(t, err, ErrBadChecksum, "byte %d", i)
	}
}

func TestParseTruncatedHeader(t *testing.T) {
	_, err := Parse(make([]byte, 4))
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestParseChunkLengthExceedsBuffer(t *testing.T) {
	p := &Packet{SourcePort: 1, DestinationPort: 2, VerificationTag: 3}
	encoded := p.Marshal()
	// Forge an oversized chunk length with no body following it, then
	// re-stamp a valid checksum so parsing reaches the length check.
	chunk := []byte{0x01, 0x00, 0xFF, 0xFF}
	encoded = append(encoded, chunk...)
	binary.LittleEndian.PutUint32(encoded[8:12], 0)
	binary.LittleEndian.PutUint32(encoded[8:12], crc32.Checksum(encoded, castagnoliTable))
	_, err := Parse(encoded)
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestMultiChunkPaddingPreserved(t *testing.T) {
	p := &Packet{
		SourcePort: 7, DestinationPort: 8, VerificationTag: 9,
		Chunks: []Chunk{
			{Type: 1, Flags: 0, Data: []byte("abc")},   // 7 bytes -> 1 pad
			{Type: 2, Flags: 1, Data: []byte("abcdef")}, // 10 bytes -> 2 pad
		},
	}
	encoded := p.Marshal()
	decoded, err := Parse(encoded)
	require.NoError(t, err)
	require.Len(t, decoded.Chunks, 2)
	assert.Equal(t, []byte("abc"), decoded.Chunks[0].Data)
	assert.Equal(t, []byte("abcdef"), decoded.Chunks[1].Data)
}
