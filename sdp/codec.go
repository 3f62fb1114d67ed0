package sdp

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// parseRtpmap parses the value of an a=rtpmap:<pt> line, e.g. "VP8/90000"
// or "opus/48000/2". kind selects the audio channel default of 1; video
// codecs carry no default (Channels stays 0, meaning absent).
func parseRtpmap(kind MediaKind, payloadType int, value string) (RtpCodecParameters, error) {
	name, desc, ok := strings.Cut(value, "/")
	if !ok {
		return RtpCodecParameters{}, fmt.Errorf("%w: rtpmap %q", ErrMalformed, value)
	}
	bits := strings.Split(desc, "/")
	clockRate, err := strconv.ParseUint(bits[0], 10, 32)
	if err != nil {
		return RtpCodecParameters{}, fmt.Errorf("%w: rtpmap clock rate %q", ErrMalformed, bits[0])
	}

	channels := 0
	if kind == KindAudio {
		channels = 1
	}
	if len(bits) > 1 {
		c, err := strconv.Atoi(bits[1])
		if err != nil {
			return RtpCodecParameters{}, fmt.Errorf("%w: rtpmap channels %q", ErrMalformed, bits[1])
		}
		channels = c
	}

	codecChannels := channels
	if kind == KindVideo {
		codecChannels = 0
	}

	return RtpCodecParameters{
		PayloadType: payloadType,
		MimeType:    string(kind) + "/" + name,
		ClockRate:   uint32(clockRate),
		Channels:    codecChannels,
		Parameters:  map[string]FmtpValue{},
	}, nil
}

// rtpmapValue renders the part of a=rtpmap: after the payload type.
func rtpmapValue(c RtpCodecParameters) string {
	_, name, _ := strings.Cut(c.MimeType, "/")
	if c.Channels > 1 {
		return fmt.Sprintf("%s/%d/%d", name, c.ClockRate, c.Channels)
	}
	return fmt.Sprintf("%s/%d", name, c.ClockRate)
}

// parseFmtp parses the value of an a=fmtp:<pt> line: "k=v;k=v;k".
func parseFmtp(value string) map[string]FmtpValue {
	params := map[string]FmtpValue{}
	for _, param := range strings.Split(value, ";") {
		if param == "" {
			continue
		}
		k, v, hasValue := strings.Cut(param, "=")
		if !hasValue {
			params[k] = FmtpValue{IsSet: true}
			continue
		}
		if integerFmtpKeys[k] {
			n, err := strconv.ParseInt(v, 10, 64)
			if err == nil {
				params[k] = FmtpValue{IsSet: true, IsInt: true, Int: n}
				continue
			}
		}
		params[k] = FmtpValue{IsSet: true, String: v}
	}
	return params
}

// fmtpToSDP renders a parameter map back to "k=v;k=v;k", with keys in
// sorted order so rendering is stable across runs.
func fmtpToSDP(params map[string]FmtpValue) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		v := params[k]
		switch {
		case v.IsInt:
			parts = append(parts, fmt.Sprintf("%s=%d", k, v.Int))
		case v.String != "":
			parts = append(parts, fmt.Sprintf("%s=%s", k, v.String))
		default:
			parts = append(parts, k)
		}
	}
	return strings.Join(parts, ";")
}

// findCodec returns a pointer to the codec with the given payload type, or
// nil if the media section carries none.
func findCodec(media *MediaDescription, pt int) *RtpCodecParameters {
	for i := range media.RTP.Codecs {
		if media.RTP.Codecs[i].PayloadType == pt {
			return &media.RTP.Codecs[i]
		}
	}
	return nil
}
