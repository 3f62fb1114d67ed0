package pc

import "fmt"

// SignalingState is the peer connection's JSEP-style signaling state.
type SignalingState int

const (
	SignalingStable SignalingState = iota
	SignalingHaveLocalOffer
	SignalingHaveRemoteOffer
	SignalingHaveLocalPranswer
	SignalingHaveRemotePranswer
	SignalingClosed
)

func (s SignalingState) String() string {
	switch s {
	case SignalingStable:
		return "stable"
	case SignalingHaveLocalOffer:
		return "have-local-offer"
	case SignalingHaveRemoteOffer:
		return "have-remote-offer"
	case SignalingHaveLocalPranswer:
		return "have-local-pranswer"
	case SignalingHaveRemotePranswer:
		return "have-remote-pranswer"
	case SignalingClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// sdpType is the kind of session description an operation carries.
type sdpType int

const (
	sdpOffer sdpType = iota
	sdpAnswer
	sdpPranswer
)

// signalingOp is which side set the description.
type signalingOp int

const (
	opSetLocal signalingOp = iota
	opSetRemote
)

// nextSignalingState looks up the table from §4.6. setLocal/setRemote with
// a pranswer type is the one extension beyond the table's four named
// transitions: it parks the machine in have-local-pranswer/
// have-remote-pranswer, from which a subsequent answer still resolves to
// stable exactly like the offer path does — consistent with the five
// signaling states §4.6 enumerates but the transition table itself only
// illustrates with offer/answer.
func nextSignalingState(current SignalingState, op signalingOp, kind sdpType) (SignalingState, error) {
	if current == SignalingClosed {
		return current, fmt.Errorf("%w: connection is closed", ErrInvalidState)
	}

	switch current {
	case SignalingStable:
		switch {
		case op == opSetLocal && kind == sdpOffer:
			return SignalingHaveLocalOffer, nil
		case op == opSetRemote && kind == sdpOffer:
			return SignalingHaveRemoteOffer, nil
		}
	case SignalingHaveLocalOffer:
		switch {
		case op == opSetLocal && kind == sdpOffer:
			return SignalingHaveLocalOffer, nil
		case op == opSetRemote && kind == sdpAnswer:
			return SignalingStable, nil
		case op == opSetRemote && kind == sdpPranswer:
			return SignalingHaveRemotePranswer, nil
		}
	case SignalingHaveRemoteOffer:
		switch {
		case op == opSetRemote && kind == sdpOffer:
			return SignalingHaveRemoteOffer, nil
		case op == opSetLocal && kind == sdpAnswer:
			return SignalingStable, nil
		case op == opSetLocal && kind == sdpPranswer:
			return SignalingHaveLocalPranswer, nil
		}
	case SignalingHaveLocalPranswer:
		if op == opSetLocal && kind == sdpAnswer {
			return SignalingStable, nil
		}
	case SignalingHaveRemotePranswer:
		if op == opSetRemote && kind == sdpAnswer {
			return SignalingStable, nil
		}
	}

	return current, fmt.Errorf("%w: %v from %v", ErrInvalidState, describeOp(op, kind), current)
}

func describeOp(op signalingOp, kind sdpType) string {
	side := "setLocal"
	if op == opSetRemote {
		side = "setRemote"
	}
	kindName := [...]string{"offer", "answer", "pranswer"}[kind]
	return side + "(" + kindName + ")"
}
