package sdp

// MediaKind is the media type named on an m= line.
type MediaKind string

const (
	KindAudio       MediaKind = "audio"
	KindVideo       MediaKind = "video"
	KindApplication MediaKind = "application"
)

// Direction is the a=sendrecv/sendonly/recvonly/inactive attribute.
type Direction string

const (
	DirectionSendRecv Direction = "sendrecv"
	DirectionSendOnly Direction = "sendonly"
	DirectionRecvOnly Direction = "recvonly"
	DirectionInactive Direction = "inactive"
)

// DtlsRole is the negotiated a=setup value, in its already-resolved form:
// auto maps to the wire token actpass, client to active, server to passive.
type DtlsRole string

const (
	DtlsRoleAuto   DtlsRole = "auto"
	DtlsRoleClient DtlsRole = "client"
	DtlsRoleServer DtlsRole = "server"
)

var setupToRole = map[string]DtlsRole{
	"actpass": DtlsRoleAuto,
	"active":  DtlsRoleClient,
	"passive": DtlsRoleServer,
}

var roleToSetup = map[DtlsRole]string{
	DtlsRoleAuto:   "actpass",
	DtlsRoleClient: "active",
	DtlsRoleServer: "passive",
}

// isForbiddenPayloadType reports whether pt lies in the historical RTCP-mux
// reservation, 64..95 inclusive; audio/video m= lines may never reference
// one of these.
func isForbiddenPayloadType(pt int) bool {
	return pt >= 64 && pt <= 95
}

// integerFmtpKeys is the fixed set of fmtp parameter names serialized as
// decimal integers rather than opaque strings.
var integerFmtpKeys = map[string]bool{
	"apt":             true,
	"max-fr":          true,
	"max-fs":          true,
	"maxplaybackrate": true,
	"minptime":        true,
	"stereo":          true,
	"useinbandfec":    true,
}

// FmtpValue is either an integer, a string, or nil (a bare flag parameter
// with no "=value" part — e.g. "level-asymmetry-allowed" alone).
type FmtpValue struct {
	IsSet  bool
	IsInt  bool
	Int    int64
	String string
}

// HeaderExtension is one a=extmap: line.
type HeaderExtension struct {
	ID        int
	Direction string // optional per-extension direction suffix, "" if absent
	URI       string
}

// RtcpFeedback is one a=rtcp-fb: line attached to a codec.
type RtcpFeedback struct {
	Type      string
	Parameter string // "" if absent
}

// RtpCodecParameters describes one payload-type entry: a=rtpmap plus its
// attached a=fmtp and a=rtcp-fb lines.
type RtpCodecParameters struct {
	PayloadType  int
	MimeType     string // "<kind>/<name>", e.g. "video/VP8"
	ClockRate    uint32
	Channels     int // 0 means absent (video, or audio default already applied as 1)
	Parameters   map[string]FmtpValue
	RtcpFeedback []RtcpFeedback
}

// RtpParameters bundles the RTP-level configuration of a media section.
type RtpParameters struct {
	HeaderExtensions []HeaderExtension
	MuxID            string
	Codecs           []RtpCodecParameters
}

// SsrcDescription accumulates the per-SSRC a=ssrc: attributes.
type SsrcDescription struct {
	SSRC    uint32
	Cname   string
	Msid    string
	Mslabel string
	Label   string
}

var ssrcInfoAttrs = []string{"cname", "msid", "mslabel", "label"}

// GroupDescription is an a=group: or a=msid-semantic: line: a semantic tag
// followed by an ordered list of tokens (mids, or the ssrc ids of an
// a=ssrc-group:).
type GroupDescription struct {
	Semantic string
	Items    []string
}

// SctpCapabilities is the a=max-message-size: value.
type SctpCapabilities struct {
	MaxMessageSize uint64
}

// DtlsFingerprint is one a=fingerprint: line.
type DtlsFingerprint struct {
	Algorithm string
	Value     string
}

// DtlsParameters is nil on a MediaDescription whose section carries neither
// its own nor an inherited fingerprint and setup role — per §4.2, that
// signals the section will not use DTLS at all.
type DtlsParameters struct {
	Fingerprints []DtlsFingerprint
	Role         DtlsRole
}

// IceParameters is the per-section ICE credential set; UsernameFragment and
// Password are empty strings when absent (host/relay-only degenerate cases).
type IceParameters struct {
	Lite             bool
	UsernameFragment string
	Password         string
}

// IceCandidate is one a=candidate: line, in vsaiortc's field order:
// foundation component protocol priority ip port typ type [raddr rport] [tcptype].
type IceCandidate struct {
	Foundation string
	Component  int
	Protocol   string
	Priority   uint32
	IP         string
	Port       int
	Type       string
	RelatedIP   string // "" if absent
	RelatedPort int    // 0 if absent
	TCPType     string // "" if absent
}

// MediaDescription is one m= section and everything attached to it.
type MediaDescription struct {
	Kind    MediaKind
	Port    int
	Profile string
	Fmt     []string // payload types as decimal strings for audio/video, opaque tokens for application

	Host      string // "" if the section has no c= line of its own
	Direction Direction
	Msid      string

	RtcpPort int // 0 if absent
	RtcpHost string
	RtcpMux  bool

	SSRC      []SsrcDescription
	SSRCGroup []GroupDescription

	RTP RtpParameters

	SctpCapabilities *SctpCapabilities
	Sctpmap          map[int]string
	SctpPort         int // 0 if absent

	DTLS *DtlsParameters

	ICE                    IceParameters
	IceCandidates          []IceCandidate
	IceCandidatesComplete  bool
	IceOptions             string
}

// SessionDescription is the full parsed (or to-be-rendered) document.
type SessionDescription struct {
	Version      int
	Origin       string
	Name         string
	Time         string
	Host         string
	Group        []GroupDescription
	MsidSemantic []GroupDescription
	Media        []*MediaDescription
}
