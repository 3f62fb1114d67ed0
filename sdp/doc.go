// Package sdp parses and renders the textual session description used to
// negotiate a peer connection: media sections, codec parameters, ICE
// candidates, DTLS fingerprints, and SSRC bindings.
//
// The wire grammar is handled by github.com/pion/sdp/v3 — Parse and Render
// build a pion SessionDescription with its lines in the exact order this
// package requires, then walk or populate it to move data in and out of the
// richer domain model (RtpCodecParameters, IceCandidate, SsrcDescription)
// declared in types.go. Two divergent reference shapes exist for this kind
// of document (one carries only a regex-matched candidate/fingerprint list,
// the other models the full ICE/DTLS/SCTP parameter set with H264 profile
// matching); this package implements the superset of both, following
// DESIGN.md's Open Question decision, except H264 profile matching:
// profile-level-id is carried as an ordinary fmtp parameter.
package sdp
