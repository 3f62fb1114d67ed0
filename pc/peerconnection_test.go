package pc

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/rtcore/sctpio"
	"github.com/opd-ai/rtcore/sdp"
	"github.com/opd-ai/rtcore/transport"
)

// fakeDatagramTransport mirrors transport's own test double: a minimal
// in-memory DatagramTransport with no real socket behind it.
type fakeDatagramTransport struct {
	mu     sync.Mutex
	sent   [][]byte
	ready  chan struct{}
	closed bool
}

func newFakeDatagramTransport() *fakeDatagramTransport {
	return &fakeDatagramTransport{ready: make(chan struct{})}
}

func (f *fakeDatagramTransport) Send(data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, data)
	return nil
}

func (f *fakeDatagramTransport) SetReadHandler(transport.ReadHandler) {}
func (f *fakeDatagramTransport) Ready() <-chan struct{}               { return f.ready }
func (f *fakeDatagramTransport) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func TestPeerConnectionOfferAnswerSignalingSequence(t *testing.T) {
	offerer := New(Configuration{Host: "203.0.113.1"})
	offerer.AddTransceiver(NewTransceiver(sdp.KindAudio, sdp.DirectionSendRecv))

	offer, err := offerer.CreateOffer()
	require.NoError(t, err)
	require.Len(t, offer.Media, 1)

	require.NoError(t, offerer.SetLocalDescription("offer", offer))
	assert.Equal(t, SignalingHaveLocalOffer, offerer.SignalingState())

	err = offerer.SetRemoteDescription("offer", offer)
	assert.ErrorIs(t, err, ErrInvalidState)

	answerer := New(Configuration{Host: "203.0.113.2"})
	require.NoError(t, answerer.SetRemoteDescription("offer", offer))
	assert.Equal(t, SignalingHaveRemoteOffer, answerer.SignalingState())
	require.Len(t, answerer.Transceivers(), 1)

	answer, err := answerer.CreateAnswer()
	require.NoError(t, err)
	require.NoError(t, answerer.SetLocalDescription("answer", answer))
	assert.Equal(t, SignalingStable, answerer.SignalingState())

	require.NoError(t, offerer.SetRemoteDescription("answer", answer))
	assert.Equal(t, SignalingStable, offerer.SignalingState())

	require.NoError(t, offerer.Close())
	assert.Equal(t, SignalingClosed, offerer.SignalingState())
}

func TestPeerConnectionCreateOfferRequiresTransceiverOrData(t *testing.T) {
	p := New(Configuration{})
	_, err := p.CreateOffer()
	assert.ErrorIs(t, err, ErrNoTransceiversOrData)
}

func TestPeerConnectionCreateAnswerRequiresRemoteOffer(t *testing.T) {
	p := New(Configuration{})
	p.AddTransceiver(NewTransceiver(sdp.KindAudio, sdp.DirectionSendRecv))
	_, err := p.CreateAnswer()
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestPeerConnectionFiresSignalingStateChange(t *testing.T) {
	p := New(Configuration{})
	p.AddTransceiver(NewTransceiver(sdp.KindAudio, sdp.DirectionSendRecv))

	var seen []SignalingState
	p.OnSignalingStateChange(func(s SignalingState) { seen = append(seen, s) })

	offer, err := p.CreateOffer()
	require.NoError(t, err)
	require.NoError(t, p.SetLocalDescription("offer", offer))

	require.Equal(t, []SignalingState{SignalingHaveLocalOffer}, seen)
}

func TestPeerConnectionUpdateIceConnectionStateAdvancesWhenAllTransportsReady(t *testing.T) {
	p := New(Configuration{})
	tr := NewTransceiver(sdp.KindAudio, sdp.DirectionSendRecv)
	harness := transport.NewBundledTransport(newFakeDatagramTransport())
	tr.AttachTransport(harness)
	p.AddTransceiver(tr)

	var seen []transport.IceConnectionState
	p.OnIceConnectionStateChange(func(s transport.IceConnectionState) { seen = append(seen, s) })

	p.UpdateIceConnectionState()
	assert.Equal(t, transport.IceNew, p.IceConnectionState())

	harness.AddLocalCandidate(sdp.IceCandidate{Foundation: "1", Type: "host"})
	harness.AddRemoteCandidate(sdp.IceCandidate{Foundation: "1", Type: "host"})
	p.UpdateIceConnectionState()

	assert.Equal(t, transport.IceChecking, p.IceConnectionState())
	require.Len(t, seen, 1)
	assert.Equal(t, transport.IceChecking, seen[0])

	p.MarkIceCompleted()
	assert.Equal(t, transport.IceCompleted, p.IceConnectionState())
}

func TestPeerConnectionCreateAnswerFailsOnNoCommonCodec(t *testing.T) {
	offerer := New(Configuration{Host: "203.0.113.1"})
	offerTr := NewTransceiver(sdp.KindAudio, sdp.DirectionSendRecv)
	offerTr.LocalCodecs = []sdp.RtpCodecParameters{{PayloadType: 111, MimeType: "audio/opus", ClockRate: 48000}}
	offerer.AddTransceiver(offerTr)

	offer, err := offerer.CreateOffer()
	require.NoError(t, err)

	answerer := New(Configuration{Host: "203.0.113.2"})
	require.NoError(t, answerer.SetRemoteDescription("offer", offer))

	answerTr := answerer.Transceivers()[0]
	answerTr.LocalCodecs = []sdp.RtpCodecParameters{{PayloadType: 0, MimeType: "audio/PCMU", ClockRate: 8000}}

	_, err = answerer.CreateAnswer()
	assert.ErrorIs(t, err, ErrNegotiation)
}

func TestPeerConnectionCloseIsIdempotent(t *testing.T) {
	p := New(Configuration{})
	require.NoError(t, p.Close())
	require.NoError(t, p.Close())
}

func TestPeerConnectionAutoCreatesDataChannelTransportFromRemoteOffer(t *testing.T) {
	offerer := New(Configuration{Host: "203.0.113.1"})
	offerer.EnableDataChannels(transport.NewBundledTransport(newFakeDatagramTransport()), true, func(sctpio.Chunk) error { return nil })

	offer, err := offerer.CreateOffer()
	require.NoError(t, err)
	require.Len(t, offer.Media, 1)
	assert.Equal(t, sdp.KindApplication, offer.Media[0].Kind)

	answerer := New(Configuration{Host: "203.0.113.2"})
	factoryCalled := false
	answerer.SetDataChannelTransportFactory(func() (*transport.BundledTransport, func(sctpio.Chunk) error, bool) {
		factoryCalled = true
		return transport.NewBundledTransport(newFakeDatagramTransport()), func(sctpio.Chunk) error { return nil }, false
	})

	require.NoError(t, answerer.SetRemoteDescription("offer", offer))
	assert.True(t, factoryCalled)

	dc, err := answerer.CreateDataChannel("chat", "", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, uint16(1), dc.StreamID) // controlled side draws odd ids
}

func TestPeerConnectionApplyRemoteSkipsResentIdenticalOffer(t *testing.T) {
	offerer := New(Configuration{Host: "203.0.113.1"})
	offerer.AddTransceiver(NewTransceiver(sdp.KindAudio, sdp.DirectionSendRecv))
	offer, err := offerer.CreateOffer()
	require.NoError(t, err)

	answerer := New(Configuration{Host: "203.0.113.2"})
	require.NoError(t, answerer.SetRemoteDescription("offer", offer))
	require.Len(t, answerer.Transceivers(), 1)
	first := answerer.Transceivers()[0]

	// Resending the identical offer (e.g. a retransmission) must not spin
	// up a second transceiver for the same media section.
	require.NoError(t, answerer.SetRemoteDescription("offer", offer))
	require.Len(t, answerer.Transceivers(), 1)
	assert.Equal(t, first.ID, answerer.Transceivers()[0].ID)
}
