package sdp

import (
	"fmt"
	"strconv"
	"strings"
)

// candidateFromSDP parses the value portion of an a=candidate: line,
// following vsaiortc/sdp.py's candidate_from_sdp field order:
// foundation component protocol priority ip port "typ" type [raddr X] [rport Y] [tcptype Z].
func candidateFromSDP(value string) (IceCandidate, error) {
	bits := strings.Fields(value)
	if len(bits) < 8 || bits[6] != "typ" {
		return IceCandidate{}, fmt.Errorf("%w: candidate %q", ErrMalformed, value)
	}

	component, err := strconv.Atoi(bits[1])
	if err != nil {
		return IceCandidate{}, fmt.Errorf("%w: candidate component %q", ErrMalformed, bits[1])
	}
	priority, err := strconv.ParseUint(bits[3], 10, 32)
	if err != nil {
		return IceCandidate{}, fmt.Errorf("%w: candidate priority %q", ErrMalformed, bits[3])
	}
	port, err := strconv.Atoi(bits[5])
	if err != nil {
		return IceCandidate{}, fmt.Errorf("%w: candidate port %q", ErrMalformed, bits[5])
	}

	c := IceCandidate{
		Foundation: bits[0],
		Component:  component,
		Protocol:   bits[2],
		Priority:   uint32(priority),
		IP:         bits[4],
		Port:       port,
		Type:       bits[7],
	}

	rest := bits[8:]
	for i := 0; i+1 < len(rest); i += 2 {
		switch rest[i] {
		case "raddr":
			c.RelatedIP = rest[i+1]
		case "rport":
			p, err := strconv.Atoi(rest[i+1])
			if err != nil {
				return IceCandidate{}, fmt.Errorf("%w: candidate rport %q", ErrMalformed, rest[i+1])
			}
			c.RelatedPort = p
		case "tcptype":
			c.TCPType = rest[i+1]
		}
	}
	return c, nil
}

// candidateToSDP renders an IceCandidate back to the a=candidate: value,
// the inverse of candidateFromSDP.
func candidateToSDP(c IceCandidate) string {
	parts := []string{
		c.Foundation,
		strconv.Itoa(c.Component),
		c.Protocol,
		strconv.FormatUint(uint64(c.Priority), 10),
		c.IP,
		strconv.Itoa(c.Port),
		"typ",
		c.Type,
	}
	if c.RelatedIP != "" {
		parts = append(parts, "raddr", c.RelatedIP)
	}
	if c.RelatedPort != 0 {
		parts = append(parts, "rport", strconv.Itoa(c.RelatedPort))
	}
	if c.TCPType != "" {
		parts = append(parts, "tcptype", c.TCPType)
	}
	return strings.Join(parts, " ")
}
