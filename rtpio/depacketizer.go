package rtpio

import (
	"fmt"

	"github.com/opd-ai/rtcore/wire"
	"github.com/pion/rtp"
)

// reorderWindow bounds how many sequence numbers past the partition start
// tryReassemble walks looking for the marker packet: a minimal reorder
// window, not an adaptive jitter buffer. A frame spanning more than
// reorderWindow+1 packets is never reassembled; it stays buffered until
// evicted.
const reorderWindow = 16

// replayWindow bounds how far behind the highest sequence number seen a
// packet may still arrive and be accepted, independent of reorderWindow's
// per-frame reassembly bound.
const replayWindow = 128

// frameAssembly accumulates RTP packets belonging to one VP8 frame
// (identified by RTP timestamp) until partition-start and marker packets
// are both present with no sequence gap between them.
type frameAssembly struct {
	timestamp     uint32
	pictureID     uint16
	packets       map[uint16][]byte // sequence number -> VP8 payload (descriptor stripped)
	haveStart     bool
	startSeq      uint16
	haveMarker    bool
	markerSeq     uint16
}

// Depacketizer reassembles VP8 frames from RTP packets, tolerating
// reordering within a bounded window.
//
// Grounded on av/video/rtp.go's RTPDepacketizer (frame buffering by
// timestamp, start/marker bookkeeping), simplified to use wire's
// serial-number comparisons and pion/rtp.Packet as the wire type.
type Depacketizer struct {
	frames    map[uint32]*frameAssembly
	maxFrames int
	replay    *wire.ReplayDetector
}

// NewDepacketizer creates a Depacketizer that buffers up to maxFrames
// concurrent partial frames (by RTP timestamp) before evicting the
// oldest.
func NewDepacketizer(maxFrames int) *Depacketizer {
	if maxFrames <= 0 {
		maxFrames = 8
	}
	return &Depacketizer{
		frames:    make(map[uint32]*frameAssembly),
		maxFrames: maxFrames,
		replay:    wire.NewReplayDetector(replayWindow, 1<<16),
	}
}

// ProcessPacket feeds one RTP packet carrying a VP8 payload into the
// depacketizer. It returns the reassembled frame and its picture id once
// every packet from partition-start to marker has arrived; otherwise it
// returns (nil, 0, nil).
func (d *Depacketizer) ProcessPacket(pkt *rtp.Packet) ([]byte, uint16, error) {
	if !d.replay.Accept(uint64(pkt.SequenceNumber)) {
		return nil, 0, ErrReplayedPacket
	}

	descr, data, err := ParseVP8PayloadDescriptor(pkt.Payload)
	if err != nil {
		return nil, 0, fmt.Errorf("parse vp8 descriptor: %w", err)
	}

	asm, ok := d.frames[pkt.Timestamp]
	if !ok {
		if len(d.frames) >= d.maxFrames {
			d.evictOldest()
		}
		asm = &frameAssembly{
			timestamp: pkt.Timestamp,
			pictureID: descr.PictureID,
			packets:   make(map[uint16][]byte),
		}
		d.frames[pkt.Timestamp] = asm
	}

	asm.packets[pkt.SequenceNumber] = data
	if descr.PartitionStart {
		asm.haveStart = true
		asm.startSeq = pkt.SequenceNumber
	}
	if pkt.Marker {
		asm.haveMarker = true
		asm.markerSeq = pkt.SequenceNumber
	}

	if !asm.haveStart || !asm.haveMarker {
		return nil, 0, nil
	}

	frame, complete := d.tryReassemble(asm)
	if !complete {
		return nil, 0, nil
	}

	delete(d.frames, pkt.Timestamp)
	return frame, asm.pictureID, nil
}

// tryReassemble walks the sequence range [startSeq, markerSeq] and
// concatenates payloads if every sequence number in that range (mod 2^16)
// is present, within reorderWindow hops.
func (d *Depacketizer) tryReassemble(asm *frameAssembly) ([]byte, bool) {
	var frame []byte
	seq := asm.startSeq
	for hops := 0; ; hops++ {
		if hops > reorderWindow {
			return nil, false
		}
		payload, ok := asm.packets[seq]
		if !ok {
			return nil, false
		}
		frame = append(frame, payload...)
		if seq == asm.markerSeq {
			return frame, true
		}
		seq = wire.Uint16Add(seq, 1)
	}
}

// evictOldest drops the assembly with the smallest RTP timestamp to bound
// memory use when too many frames are in flight concurrently.
func (d *Depacketizer) evictOldest() {
	var oldestTS uint32
	first := true
	for ts := range d.frames {
		if first || wire.Uint32Gt(oldestTS, ts) {
			oldestTS = ts
			first = false
		}
	}
	if !first {
		delete(d.frames, oldestTS)
	}
}

// BufferedFrameCount returns the number of frames currently being
// assembled.
func (d *Depacketizer) BufferedFrameCount() int {
	return len(d.frames)
}
