package sdp

import "errors"

var (
	// ErrMalformed is returned when a required line is missing or a line
	// does not match its expected grammar (m= line, candidate attribute, …).
	ErrMalformed = errors.New("sdp: malformed session description")

	// ErrForbiddenPayloadType is returned when an audio/video m= line
	// references a payload type in the range reserved for RTCP mux.
	ErrForbiddenPayloadType = errors.New("sdp: payload type in forbidden range")

	// ErrUnknownCodec is returned when an a=fmtp line references a payload
	// type absent from the media section's codec list. An a=rtcp-fb line
	// naming such a payload type is ignored rather than rejected.
	ErrUnknownCodec = errors.New("sdp: fmtp references unknown payload type")
)
