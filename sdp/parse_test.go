package sdp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const threeMediaOffer = "v=0\r\n" +
	"o=- 46117317 2 IN IP4 127.0.0.1\r\n" +
	"s=-\r\n" +
	"t=0 0\r\n" +
	"a=group:BUNDLE audio video data\r\n" +
	"a=msid-semantic: WMS stream1\r\n" +
	"m=audio 9 UDP/TLS/RTP/SAVPF 111\r\n" +
	"c=IN IP4 0.0.0.0\r\n" +
	"a=sendrecv\r\n" +
	"a=mid:audio\r\n" +
	"a=rtcp-mux\r\n" +
	"a=ssrc:1001 cname:abc123\r\n" +
	"a=rtpmap:111 opus/48000/2\r\n" +
	"a=fmtp:111 minptime=10;useinbandfec=1\r\n" +
	"a=candidate:1 1 udp 2113937151 10.0.0.1 5000 typ host\r\n" +
	"a=end-of-candidates\r\n" +
	"a=ice-ufrag:aaaa\r\n" +
	"a=ice-pwd:bbbbbbbbbbbbbbbbbbbbbbbb\r\n" +
	"a=fingerprint:sha-256 AA:BB:CC\r\n" +
	"a=setup:actpass\r\n" +
	"m=video 9 UDP/TLS/RTP/SAVPF 96\r\n" +
	"c=IN IP4 0.0.0.0\r\n" +
	"a=sendrecv\r\n" +
	"a=mid:video\r\n" +
	"a=rtcp-mux\r\n" +
	"a=ssrc:2002 cname:abc123\r\n" +
	"a=rtpmap:96 VP8/90000\r\n" +
	"a=rtcp-fb:96 nack\r\n" +
	"a=candidate:1 1 udp 2113937151 10.0.0.1 5001 typ host\r\n" +
	"a=end-of-candidates\r\n" +
	"a=ice-ufrag:aaaa\r\n" +
	"a=ice-pwd:bbbbbbbbbbbbbbbbbbbbbbbb\r\n" +
	"a=fingerprint:sha-256 AA:BB:CC\r\n" +
	"a=setup:actpass\r\n" +
	"m=application 9 UDP/DTLS/SCTP webrtc-datachannel\r\n" +
	"c=IN IP4 0.0.0.0\r\n" +
	"a=mid:data\r\n" +
	"a=sctp-port:5000\r\n" +
	"a=max-message-size:262144\r\n" +
	"a=candidate:1 1 udp 2113937151 10.0.0.1 5002 typ host\r\n" +
	"a=end-of-candidates\r\n" +
	"a=ice-ufrag:aaaa\r\n" +
	"a=ice-pwd:bbbbbbbbbbbbbbbbbbbbbbbb\r\n" +
	"a=fingerprint:sha-256 AA:BB:CC\r\n" +
	"a=setup:actpass\r\n"

func TestParseThreeMediaOfferPopulatesDomainModel(t *testing.T) {
	d, err := Parse(threeMediaOffer)
	require.NoError(t, err)
	require.Len(t, d.Media, 3)

	audio := d.Media[0]
	assert.Equal(t, KindAudio, audio.Kind)
	assert.Equal(t, DirectionSendRecv, audio.Direction)
	require.Len(t, audio.RTP.Codecs, 1)
	assert.Equal(t, "audio/opus", audio.RTP.Codecs[0].MimeType)
	assert.Equal(t, 2, audio.RTP.Codecs[0].Channels)
	assert.Equal(t, int64(1), audio.RTP.Codecs[0].Parameters["useinbandfec"].Int)
	require.NotNil(t, audio.DTLS)
	assert.Equal(t, DtlsRoleAuto, audio.DTLS.Role)

	video := d.Media[1]
	require.Len(t, video.RTP.Codecs, 1)
	assert.Equal(t, "video/VP8", video.RTP.Codecs[0].MimeType)
	assert.Equal(t, 0, video.RTP.Codecs[0].Channels)
	require.Len(t, video.RTP.Codecs[0].RtcpFeedback, 1)
	assert.Equal(t, "nack", video.RTP.Codecs[0].RtcpFeedback[0].Type)

	data := d.Media[2]
	assert.Equal(t, KindApplication, data.Kind)
	assert.Equal(t, 5000, data.SctpPort)
	require.NotNil(t, data.SctpCapabilities)
	assert.EqualValues(t, 262144, data.SctpCapabilities.MaxMessageSize)

	require.Len(t, d.Group, 1)
	assert.Equal(t, "BUNDLE", d.Group[0].Semantic)
	assert.Equal(t, []string{"audio", "video", "data"}, d.Group[0].Items)
}

func TestSessionDescriptionRoundTrip(t *testing.T) {
	d, err := Parse(threeMediaOffer)
	require.NoError(t, err)

	rendered, err := Render(d)
	require.NoError(t, err)

	reparsed, err := Parse(rendered)
	require.NoError(t, err)

	assert.True(t, Equal(d, reparsed), "parse(render(D)) must be equivalent to D")
}

func TestForbiddenPayloadTypeRejected(t *testing.T) {
	bad := "v=0\r\no=- 1 1 IN IP4 127.0.0.1\r\ns=-\r\nt=0 0\r\n" +
		"m=audio 9 UDP/TLS/RTP/SAVPF 70\r\nc=IN IP4 0.0.0.0\r\n"
	_, err := Parse(bad)
	require.ErrorIs(t, err, ErrForbiddenPayloadType)
}

func TestMediaWithNoFingerprintAndNoSetupOmitsDTLS(t *testing.T) {
	noDTLS := "v=0\r\no=- 1 1 IN IP4 127.0.0.1\r\ns=-\r\nt=0 0\r\n" +
		"m=application 9 UDP/DTLS/SCTP webrtc-datachannel\r\nc=IN IP4 0.0.0.0\r\na=sctp-port:5000\r\n"
	d, err := Parse(noDTLS)
	require.NoError(t, err)
	assert.Nil(t, d.Media[0].DTLS)
}

func TestSessionLevelFingerprintDefaultsToMediaSection(t *testing.T) {
	inherited := "v=0\r\no=- 1 1 IN IP4 127.0.0.1\r\ns=-\r\nt=0 0\r\n" +
		"a=fingerprint:sha-256 AA:BB\r\na=setup:active\r\n" +
		"m=application 9 UDP/DTLS/SCTP webrtc-datachannel\r\nc=IN IP4 0.0.0.0\r\na=sctp-port:5000\r\n"
	d, err := Parse(inherited)
	require.NoError(t, err)
	require.NotNil(t, d.Media[0].DTLS)
	assert.Equal(t, DtlsRoleClient, d.Media[0].DTLS.Role)
	require.Len(t, d.Media[0].DTLS.Fingerprints, 1)
}

func TestCandidateRoundTrip(t *testing.T) {
	c, err := candidateFromSDP("3405893845 1 udp 2113937151 10.0.1.22 49691 typ srflx raddr 10.0.1.22 rport 49691 tcptype active")
	require.NoError(t, err)
	assert.Equal(t, "srflx", c.Type)
	assert.Equal(t, "10.0.1.22", c.RelatedIP)
	assert.Equal(t, 49691, c.RelatedPort)
	assert.Equal(t, "active", c.TCPType)

	back := candidateToSDP(c)
	reparsed, err := candidateFromSDP(back)
	require.NoError(t, err)
	assert.Equal(t, c, reparsed)
}
