package bwe

import "github.com/pion/rtcp"

// RembCap extracts the receiver-suggested bandwidth cap carried by a
// Receiver Estimated Maximum Bitrate packet (RFC draft avt-remb). A
// sender-side Controller can use this as an upper bound on the AIMD
// rate alongside the 1.5x-acked-throughput ceiling, the way a
// REMB-only peer (no transport-wide congestion control) signals
// congestion back to the sender.
func RembCap(remb *rtcp.ReceiverEstimatedMaximumBitrate) float64 {
	if remb == nil {
		return 0
	}
	return float64(remb.Bitrate)
}

// ClampToRemb lowers rateBps to the REMB-suggested cap when that cap is
// both known and tighter than the current rate.
func ClampToRemb(rateBps float64, remb *rtcp.ReceiverEstimatedMaximumBitrate) float64 {
	capBps := RembCap(remb)
	if capBps > 0 && capBps < rateBps {
		return capBps
	}
	return rateBps
}
