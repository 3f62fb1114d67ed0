package sdp

// Clone returns a deep copy of d, used by the peer connection to store an
// applied remote description without aliasing the caller's slices/maps.
func (d *SessionDescription) Clone() *SessionDescription {
	if d == nil {
		return nil
	}
	out := *d
	out.Group = cloneGroups(d.Group)
	out.MsidSemantic = cloneGroups(d.MsidSemantic)
	out.Media = make([]*MediaDescription, len(d.Media))
	for i, m := range d.Media {
		out.Media[i] = m.clone()
	}
	return &out
}

func (m *MediaDescription) clone() *MediaDescription {
	if m == nil {
		return nil
	}
	out := *m
	out.Fmt = append([]string{}, m.Fmt...)
	out.SSRC = append([]SsrcDescription{}, m.SSRC...)
	out.SSRCGroup = cloneGroups(m.SSRCGroup)
	out.RTP.HeaderExtensions = append([]HeaderExtension{}, m.RTP.HeaderExtensions...)
	out.RTP.Codecs = make([]RtpCodecParameters, len(m.RTP.Codecs))
	for i, c := range m.RTP.Codecs {
		out.RTP.Codecs[i] = c.clone()
	}
	out.Sctpmap = make(map[int]string, len(m.Sctpmap))
	for k, v := range m.Sctpmap {
		out.Sctpmap[k] = v
	}
	out.IceCandidates = append([]IceCandidate{}, m.IceCandidates...)
	if m.SctpCapabilities != nil {
		sctpCap := *m.SctpCapabilities
		out.SctpCapabilities = &sctpCap
	}
	if m.DTLS != nil {
		dtls := *m.DTLS
		dtls.Fingerprints = append([]DtlsFingerprint{}, m.DTLS.Fingerprints...)
		out.DTLS = &dtls
	}
	return &out
}

func (c RtpCodecParameters) clone() RtpCodecParameters {
	out := c
	out.Parameters = make(map[string]FmtpValue, len(c.Parameters))
	for k, v := range c.Parameters {
		out.Parameters[k] = v
	}
	out.RtcpFeedback = append([]RtcpFeedback{}, c.RtcpFeedback...)
	return out
}

func cloneGroups(groups []GroupDescription) []GroupDescription {
	out := make([]GroupDescription, len(groups))
	for i, g := range groups {
		out[i] = GroupDescription{Semantic: g.Semantic, Items: append([]string{}, g.Items...)}
	}
	return out
}

// Equal reports whether a and b render to the same canonical text — the
// round-trip invariant is defined modulo attribute order within sets the
// format leaves unordered, and re-rendering both sides normalizes that.
func Equal(a, b *SessionDescription) bool {
	if a == nil || b == nil {
		return a == b
	}
	ar, aerr := Render(a)
	br, berr := Render(b)
	if aerr != nil || berr != nil {
		return false
	}
	return ar == br
}
