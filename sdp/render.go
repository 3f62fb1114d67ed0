package sdp

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	psdp "github.com/pion/sdp/v3"
)

// Render produces the CRLF-terminated textual form of d, with lines in the
// exact order the session description format requires: session preamble,
// then per media section the direction/extmap/mid/msid/rtcp block, ssrc
// bindings, codec descriptors, SCTP attributes, ICE candidates, and finally
// the ICE and DTLS credential lines.
func Render(d *SessionDescription) (string, error) {
	out := &psdp.SessionDescription{
		Version:     psdp.Version(d.Version),
		SessionName: psdp.SessionName(d.Name),
	}

	origin, err := parseOriginString(d.Origin)
	if err != nil {
		return "", err
	}
	out.Origin = origin

	start, stop, err := parseTimeString(d.Time)
	if err != nil {
		return "", err
	}
	out.TimeDescriptions = []psdp.TimeDescription{{Timing: psdp.Timing{StartTime: start, StopTime: stop}}}

	if d.Host != "" {
		out.ConnectionInformation = connectionInformation(d.Host)
	}

	for _, g := range d.Group {
		out.Attributes = append(out.Attributes, psdp.Attribute{Key: "group", Value: groupString(g)})
	}
	for _, g := range d.MsidSemantic {
		out.Attributes = append(out.Attributes, psdp.Attribute{Key: "msid-semantic", Value: " " + groupString(g)})
	}

	for _, m := range d.Media {
		rendered, err := renderMedia(m)
		if err != nil {
			return "", err
		}
		out.MediaDescriptions = append(out.MediaDescriptions, rendered)
	}

	return out.Marshal(), nil
}

func renderMedia(m *MediaDescription) (*psdp.MediaDescription, error) {
	port, err := strconv.Atoi(portOrFirstFormat(m.Port))
	if err != nil {
		return nil, fmt.Errorf("%w: media port", ErrMalformed)
	}

	out := &psdp.MediaDescription{
		MediaName: psdp.MediaName{
			Media:   string(m.Kind),
			Port:    psdp.RangedPort{Value: port},
			Protos:  strings.Split(m.Profile, "/"),
			Formats: m.Fmt,
		},
	}
	if m.Host != "" {
		out.ConnectionInformation = connectionInformation(m.Host)
	}

	if m.Direction != "" {
		out.Attributes = append(out.Attributes, psdp.Attribute{Key: string(m.Direction)})
	}
	for _, ext := range m.RTP.HeaderExtensions {
		key := strconv.Itoa(ext.ID)
		if ext.Direction != "" {
			key += "/" + ext.Direction
		}
		out.Attributes = append(out.Attributes, psdp.Attribute{Key: "extmap", Value: key + " " + ext.URI})
	}
	if m.RTP.MuxID != "" {
		out.Attributes = append(out.Attributes, psdp.Attribute{Key: "mid", Value: m.RTP.MuxID})
	}
	if m.Msid != "" {
		out.Attributes = append(out.Attributes, psdp.Attribute{Key: "msid", Value: m.Msid})
	}
	if m.RtcpPort != 0 && m.RtcpHost != "" {
		out.Attributes = append(out.Attributes, psdp.Attribute{
			Key:   "rtcp",
			Value: fmt.Sprintf("%d %s", m.RtcpPort, ipToConnSDP(m.RtcpHost)),
		})
	}
	if m.RtcpMux {
		out.Attributes = append(out.Attributes, psdp.Attribute{Key: "rtcp-mux"})
	}

	for _, g := range m.SSRCGroup {
		out.Attributes = append(out.Attributes, psdp.Attribute{Key: "ssrc-group", Value: groupString(g)})
	}
	for _, s := range m.SSRC {
		for _, attr := range ssrcInfoAttrs {
			v := ssrcAttrValue(s, attr)
			if v != "" {
				out.Attributes = append(out.Attributes, psdp.Attribute{
					Key:   "ssrc",
					Value: fmt.Sprintf("%d %s:%s", s.SSRC, attr, v),
				})
			}
		}
	}

	for _, c := range m.RTP.Codecs {
		out.Attributes = append(out.Attributes, psdp.Attribute{
			Key:   "rtpmap",
			Value: fmt.Sprintf("%d %s", c.PayloadType, rtpmapValue(c)),
		})
		for _, fb := range c.RtcpFeedback {
			v := fmt.Sprintf("%d %s", c.PayloadType, fb.Type)
			if fb.Parameter != "" {
				v += " " + fb.Parameter
			}
			out.Attributes = append(out.Attributes, psdp.Attribute{Key: "rtcp-fb", Value: v})
		}
		if params := fmtpToSDP(c.Parameters); params != "" {
			out.Attributes = append(out.Attributes, psdp.Attribute{
				Key:   "fmtp",
				Value: fmt.Sprintf("%d %s", c.PayloadType, params),
			})
		}
	}

	for pt, desc := range m.Sctpmap {
		out.Attributes = append(out.Attributes, psdp.Attribute{Key: "sctpmap", Value: fmt.Sprintf("%d %s", pt, desc)})
	}
	if m.SctpPort != 0 {
		out.Attributes = append(out.Attributes, psdp.Attribute{Key: "sctp-port", Value: strconv.Itoa(m.SctpPort)})
	}
	if m.SctpCapabilities != nil {
		out.Attributes = append(out.Attributes, psdp.Attribute{
			Key:   "max-message-size",
			Value: strconv.FormatUint(m.SctpCapabilities.MaxMessageSize, 10),
		})
	}

	for _, c := range m.IceCandidates {
		out.Attributes = append(out.Attributes, psdp.Attribute{Key: "candidate", Value: candidateToSDP(c)})
	}
	if m.IceCandidatesComplete {
		out.Attributes = append(out.Attributes, psdp.Attribute{Key: "end-of-candidates"})
	}
	if m.ICE.UsernameFragment != "" {
		out.Attributes = append(out.Attributes, psdp.Attribute{Key: "ice-ufrag", Value: m.ICE.UsernameFragment})
	}
	if m.ICE.Password != "" {
		out.Attributes = append(out.Attributes, psdp.Attribute{Key: "ice-pwd", Value: m.ICE.Password})
	}
	if m.IceOptions != "" {
		out.Attributes = append(out.Attributes, psdp.Attribute{Key: "ice-options", Value: m.IceOptions})
	}

	if m.DTLS != nil {
		for _, fp := range m.DTLS.Fingerprints {
			out.Attributes = append(out.Attributes, psdp.Attribute{
				Key:   "fingerprint",
				Value: fp.Algorithm + " " + fp.Value,
			})
		}
		out.Attributes = append(out.Attributes, psdp.Attribute{Key: "setup", Value: roleToSetup[m.DTLS.Role]})
	}

	return out, nil
}

func ssrcAttrValue(s SsrcDescription, attr string) string {
	switch attr {
	case "cname":
		return s.Cname
	case "msid":
		return s.Msid
	case "mslabel":
		return s.Mslabel
	case "label":
		return s.Label
	}
	return ""
}

func groupString(g GroupDescription) string {
	return g.Semantic + " " + strings.Join(g.Items, " ")
}

func connectionInformation(host string) *psdp.ConnectionInformation {
	addrType := "IP4"
	if strings.Contains(host, ":") {
		addrType = "IP6"
	}
	return &psdp.ConnectionInformation{
		NetworkType: "IN",
		AddressType: addrType,
		Address:     &psdp.Address{IP: net.ParseIP(host)},
	}
}

func ipToConnSDP(host string) string {
	addrType := "IP4"
	if strings.Contains(host, ":") {
		addrType = "IP6"
	}
	return "IN " + addrType + " " + host
}

func portOrFirstFormat(port int) string {
	return strconv.Itoa(port)
}

func parseOriginString(origin string) (psdp.Origin, error) {
	bits := strings.Fields(origin)
	if len(bits) != 6 {
		return psdp.Origin{}, fmt.Errorf("%w: origin %q", ErrMalformed, origin)
	}
	sessionID, err := strconv.ParseUint(bits[1], 10, 64)
	if err != nil {
		return psdp.Origin{}, fmt.Errorf("%w: origin session id %q", ErrMalformed, bits[1])
	}
	sessionVersion, err := strconv.ParseUint(bits[2], 10, 64)
	if err != nil {
		return psdp.Origin{}, fmt.Errorf("%w: origin session version %q", ErrMalformed, bits[2])
	}
	return psdp.Origin{
		Username:       bits[0],
		SessionID:      sessionID,
		SessionVersion: sessionVersion,
		NetworkType:    bits[3],
		AddressType:    bits[4],
		UnicastAddress: bits[5],
	}, nil
}

func originToString(o psdp.Origin) string {
	return fmt.Sprintf("%s %d %d %s %s %s", o.Username, o.SessionID, o.SessionVersion, o.NetworkType, o.AddressType, o.UnicastAddress)
}

func parseTimeString(t string) (uint64, uint64, error) {
	bits := strings.Fields(t)
	if len(bits) != 2 {
		return 0, 0, fmt.Errorf("%w: time %q", ErrMalformed, t)
	}
	start, err := strconv.ParseUint(bits[0], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: time start %q", ErrMalformed, bits[0])
	}
	stop, err := strconv.ParseUint(bits[1], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: time stop %q", ErrMalformed, bits[1])
	}
	return start, stop, nil
}
