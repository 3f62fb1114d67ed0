package pc

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opd-ai/rtcore/sdp"
)

func TestTransceiverCurrentDirectionBeforeRemoteIsLocalWish(t *testing.T) {
	tr := NewTransceiver(sdp.KindAudio, sdp.DirectionSendRecv)
	assert.Equal(t, sdp.DirectionSendRecv, tr.currentDirection())
}

func TestTransceiverCurrentDirectionIntersectsWithRemote(t *testing.T) {
	cases := []struct {
		local, remote, want sdp.Direction
	}{
		{sdp.DirectionSendRecv, sdp.DirectionSendRecv, sdp.DirectionSendRecv},
		{sdp.DirectionSendRecv, sdp.DirectionRecvOnly, sdp.DirectionSendOnly},
		{sdp.DirectionSendRecv, sdp.DirectionSendOnly, sdp.DirectionRecvOnly},
		{sdp.DirectionSendOnly, sdp.DirectionSendOnly, sdp.DirectionInactive},
		{sdp.DirectionSendOnly, sdp.DirectionRecvOnly, sdp.DirectionSendOnly},
		{sdp.DirectionInactive, sdp.DirectionSendRecv, sdp.DirectionInactive},
	}

	for _, c := range cases {
		tr := NewTransceiver(sdp.KindAudio, c.local)
		tr.ApplyRemote(nil, c.remote)
		assert.Equal(t, c.want, tr.currentDirection(), "local=%s remote=%s", c.local, c.remote)
	}
}
