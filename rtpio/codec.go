package rtpio

// Codec is a tagged variant replacing duck-typed encoder objects with a
// closed set the compiler can exhaustively switch on.
type Codec int

const (
	CodecOpus Codec = iota
	CodecPCMA
	CodecPCMU
	CodecVP8
)

func (c Codec) String() string {
	switch c {
	case CodecOpus:
		return "opus"
	case CodecPCMA:
		return "PCMA"
	case CodecPCMU:
		return "PCMU"
	case CodecVP8:
		return "VP8"
	default:
		return "unknown"
	}
}

// Packetizer is the uniform capability set every codec variant exposes to
// the peer-connection layer: encode/pack a compressed frame into wire
// payloads, and report/accept a target bitrate.
type Packetizer interface {
	// Packetize splits a single compressed frame into RTP payload
	// bodies (including any codec-specific payload descriptor).
	Packetize(frame []byte) ([][]byte, error)
	TargetBitrate() uint32
	SetTargetBitrate(bps uint32)
}

// NewPacketizer returns the Packetizer for codec, or ErrCodecNotImplemented
// for codecs whose payload framing this package does not implement. Only
// VP8 is implemented here; audio codec payload framing is an external
// collaborator.
func NewPacketizer(codec Codec) (Packetizer, error) {
	switch codec {
	case CodecVP8:
		return NewVP8Packetizer()
	default:
		return nil, ErrCodecNotImplemented
	}
}
