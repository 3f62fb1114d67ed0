package sdp

import (
	"fmt"
	"strconv"
	"strings"

	psdp "github.com/pion/sdp/v3"
)

// sessionDefaults carries the session-level DTLS/ICE-lite state that each
// media section inherits unless it overrides its own.
type sessionDefaults struct {
	fingerprints []DtlsFingerprint
	role         DtlsRole
	haveRole     bool
	iceLite      bool
}

// Parse parses a textual session description (CRLF or LF line endings
// accepted) into a SessionDescription.
func Parse(raw string) (*SessionDescription, error) {
	parsed := &psdp.SessionDescription{}
	if err := psdp.Unmarshal([]byte(raw), parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	d := &SessionDescription{
		Version: int(parsed.Version),
		Origin:  originToString(parsed.Origin),
		Name:    string(parsed.SessionName),
		Time:    "0 0",
	}
	if len(parsed.TimeDescriptions) > 0 {
		d.Time = fmt.Sprintf("%d %d", parsed.TimeDescriptions[0].Timing.StartTime, parsed.TimeDescriptions[0].Timing.StopTime)
	}
	if parsed.ConnectionInformation != nil && parsed.ConnectionInformation.Address != nil {
		d.Host = parsed.ConnectionInformation.Address.IP.String()
	}

	defaults := sessionDefaults{}
	for _, attr := range parsed.Attributes {
		switch attr.Key {
		case "fingerprint":
			fp, err := parseFingerprint(attr.Value)
			if err != nil {
				return nil, err
			}
			defaults.fingerprints = append(defaults.fingerprints, fp)
		case "ice-lite":
			defaults.iceLite = true
		case "group":
			d.Group = append(d.Group, parseGroup(attr.Value))
		case "msid-semantic":
			d.MsidSemantic = append(d.MsidSemantic, parseGroup(attr.Value))
		case "setup":
			role, ok := setupToRole[attr.Value]
			if !ok {
				return nil, fmt.Errorf("%w: setup %q", ErrMalformed, attr.Value)
			}
			defaults.role = role
			defaults.haveRole = true
		}
	}

	for _, m := range parsed.MediaDescriptions {
		media, err := parseMedia(m, defaults)
		if err != nil {
			return nil, err
		}
		d.Media = append(d.Media, media)
	}

	return d, nil
}

func parseMedia(m *psdp.MediaDescription, defaults sessionDefaults) (*MediaDescription, error) {
	kind := MediaKind(m.MediaName.Media)
	fmtTokens := append([]string{}, m.MediaName.Formats...)

	if kind == KindAudio || kind == KindVideo {
		for _, tok := range fmtTokens {
			pt, err := strconv.Atoi(tok)
			if err != nil || pt < 0 || pt > 255 {
				return nil, fmt.Errorf("%w: payload type %q", ErrMalformed, tok)
			}
			if isForbiddenPayloadType(pt) {
				return nil, ErrForbiddenPayloadType
			}
		}
	}

	media := &MediaDescription{
		Kind:     kind,
		Port:     m.MediaName.Port.Value,
		Profile:  strings.Join(m.MediaName.Protos, "/"),
		Fmt:      fmtTokens,
		Sctpmap:  map[int]string{},
		DTLS: &DtlsParameters{
			Fingerprints: append([]DtlsFingerprint{}, defaults.fingerprints...),
			Role:         defaults.role,
		},
		ICE: IceParameters{Lite: defaults.iceLite},
	}
	haveRole := defaults.haveRole
	haveFingerprint := len(defaults.fingerprints) > 0

	if m.ConnectionInformation != nil && m.ConnectionInformation.Address != nil {
		media.Host = m.ConnectionInformation.Address.IP.String()
	}

	for _, attr := range m.Attributes {
		switch attr.Key {
		case "candidate":
			c, err := candidateFromSDP(attr.Value)
			if err != nil {
				return nil, err
			}
			media.IceCandidates = append(media.IceCandidates, c)
		case "end-of-candidates":
			media.IceCandidatesComplete = true
		case "extmap":
			id, uri, found := strings.Cut(attr.Value, " ")
			if !found {
				return nil, fmt.Errorf("%w: extmap %q", ErrMalformed, attr.Value)
			}
			dir := ""
			if slash := strings.IndexByte(id, '/'); slash >= 0 {
				dir = id[slash+1:]
				id = id[:slash]
			}
			extID, err := strconv.Atoi(id)
			if err != nil {
				return nil, fmt.Errorf("%w: extmap id %q", ErrMalformed, id)
			}
			media.RTP.HeaderExtensions = append(media.RTP.HeaderExtensions, HeaderExtension{
				ID: extID, Direction: dir, URI: uri,
			})
		case "fingerprint":
			fp, err := parseFingerprint(attr.Value)
			if err != nil {
				return nil, err
			}
			media.DTLS.Fingerprints = append(media.DTLS.Fingerprints, fp)
			haveFingerprint = true
		case "ice-options":
			media.IceOptions = attr.Value
		case "ice-pwd":
			media.ICE.Password = attr.Value
		case "ice-ufrag":
			media.ICE.UsernameFragment = attr.Value
		case "max-message-size":
			size, err := strconv.ParseUint(attr.Value, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: max-message-size %q", ErrMalformed, attr.Value)
			}
			media.SctpCapabilities = &SctpCapabilities{MaxMessageSize: size}
		case "mid":
			media.RTP.MuxID = attr.Value
		case "msid":
			media.Msid = attr.Value
		case "rtcp":
			port, rest, found := strings.Cut(attr.Value, " ")
			if !found {
				return nil, fmt.Errorf("%w: rtcp %q", ErrMalformed, attr.Value)
			}
			p, err := strconv.Atoi(port)
			if err != nil {
				return nil, fmt.Errorf("%w: rtcp port %q", ErrMalformed, port)
			}
			media.RtcpPort = p
			media.RtcpHost = hostFromConnSDP(rest)
		case "rtcp-mux":
			media.RtcpMux = true
		case "setup":
			role, ok := setupToRole[attr.Value]
			if !ok {
				return nil, fmt.Errorf("%w: setup %q", ErrMalformed, attr.Value)
			}
			media.DTLS.Role = role
			haveRole = true
		case "rtpmap":
			ptStr, desc, found := strings.Cut(attr.Value, " ")
			if !found {
				return nil, fmt.Errorf("%w: rtpmap %q", ErrMalformed, attr.Value)
			}
			pt, err := strconv.Atoi(ptStr)
			if err != nil {
				return nil, fmt.Errorf("%w: rtpmap payload type %q", ErrMalformed, ptStr)
			}
			codec, err := parseRtpmap(kind, pt, desc)
			if err != nil {
				return nil, err
			}
			media.RTP.Codecs = append(media.RTP.Codecs, codec)
		case "sctpmap":
			ptStr, desc, found := strings.Cut(attr.Value, " ")
			if !found {
				return nil, fmt.Errorf("%w: sctpmap %q", ErrMalformed, attr.Value)
			}
			pt, err := strconv.Atoi(ptStr)
			if err != nil {
				return nil, fmt.Errorf("%w: sctpmap format id %q", ErrMalformed, ptStr)
			}
			media.Sctpmap[pt] = desc
		case "sctp-port":
			p, err := strconv.Atoi(attr.Value)
			if err != nil {
				return nil, fmt.Errorf("%w: sctp-port %q", ErrMalformed, attr.Value)
			}
			media.SctpPort = p
		case "ssrc-group":
			media.SSRCGroup = append(media.SSRCGroup, parseGroup(attr.Value))
		case "ssrc":
			if err := applySSRCAttr(media, attr.Value); err != nil {
				return nil, err
			}
		case "sendrecv", "sendonly", "recvonly", "inactive":
			media.Direction = Direction(attr.Key)
		}
	}

	// fmtp and rtcp-fb require codecs to already be parsed.
	for _, attr := range m.Attributes {
		switch attr.Key {
		case "fmtp":
			ptStr, desc, found := strings.Cut(attr.Value, " ")
			if !found {
				return nil, fmt.Errorf("%w: fmtp %q", ErrMalformed, attr.Value)
			}
			pt, err := strconv.Atoi(ptStr)
			if err != nil {
				return nil, fmt.Errorf("%w: fmtp payload type %q", ErrMalformed, ptStr)
			}
			codec := findCodec(media, pt)
			if codec == nil {
				return nil, ErrUnknownCodec
			}
			codec.Parameters = parseFmtp(desc)
		case "rtcp-fb":
			bits := strings.SplitN(attr.Value, " ", 3)
			if len(bits) < 2 {
				return nil, fmt.Errorf("%w: rtcp-fb %q", ErrMalformed, attr.Value)
			}
			param := ""
			if len(bits) > 2 {
				param = bits[2]
			}
			for i := range media.RTP.Codecs {
				c := &media.RTP.Codecs[i]
				if bits[0] == "*" || bits[0] == strconv.Itoa(c.PayloadType) {
					c.RtcpFeedback = append(c.RtcpFeedback, RtcpFeedback{Type: bits[1], Parameter: param})
				}
			}
		}
	}

	if !haveFingerprint && !haveRole {
		media.DTLS = nil
	}

	return media, nil
}

func applySSRCAttr(media *MediaDescription, value string) error {
	ssrcStr, desc, found := strings.Cut(value, " ")
	if !found {
		return fmt.Errorf("%w: ssrc %q", ErrMalformed, value)
	}
	ssrc, err := strconv.ParseUint(ssrcStr, 10, 32)
	if err != nil {
		return fmt.Errorf("%w: ssrc id %q", ErrMalformed, ssrcStr)
	}
	attr, val, found := strings.Cut(desc, ":")
	if !found {
		return fmt.Errorf("%w: ssrc attribute %q", ErrMalformed, desc)
	}

	var info *SsrcDescription
	for i := range media.SSRC {
		if media.SSRC[i].SSRC == uint32(ssrc) {
			info = &media.SSRC[i]
			break
		}
	}
	if info == nil {
		media.SSRC = append(media.SSRC, SsrcDescription{SSRC: uint32(ssrc)})
		info = &media.SSRC[len(media.SSRC)-1]
	}

	switch attr {
	case "cname":
		info.Cname = val
	case "msid":
		info.Msid = val
	case "mslabel":
		info.Mslabel = val
	case "label":
		info.Label = val
	}
	return nil
}

func parseFingerprint(value string) (DtlsFingerprint, error) {
	algorithm, fingerprint, found := strings.Cut(value, " ")
	if !found {
		return DtlsFingerprint{}, fmt.Errorf("%w: fingerprint %q", ErrMalformed, value)
	}
	return DtlsFingerprint{Algorithm: algorithm, Value: fingerprint}, nil
}

func parseGroup(value string) GroupDescription {
	bits := strings.Fields(value)
	if len(bits) == 0 {
		return GroupDescription{}
	}
	return GroupDescription{Semantic: bits[0], Items: bits[1:]}
}

func hostFromConnSDP(value string) string {
	bits := strings.Fields(value)
	if len(bits) != 3 {
		return ""
	}
	return bits[2]
}
