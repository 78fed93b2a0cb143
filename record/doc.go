// Package record defines the fixed-layout sonar sample and its heuristic decoder.
//
// A capture file carries Size-byte records at arbitrary, unmarked offsets.
// There is no sync word, so the decoder admits a window only when two fields
// fall inside plausible ranges: the channel id and the sample count. Every
// other field is decoded without validation. The gate is a Policy so callers
// can tighten or relax it; it is a heuristic, not a parser, and both false
// positives and false negatives are possible.
//
// Layout (little-endian, byte offsets):
//
//	 0 offset      u64   (ignored on decode; the caller's file offset is stamped)
//	 8 channel     u32   gate: <= MaxChannelID
//	12 sequence    u32
//	16 time_ms     u64
//	24 latitude    f64
//	32 longitude   f64
//	40 depth_m     f32
//	44 samples     u32   gate: <= MaxSampleCount
//	48 sonar_ofs   u64
//	56 sonar_size  u32
//	60 beam_deg    f32
//	64 pitch_deg   f32
//	68 roll_deg    f32
//	72 heave_m     f32
//	76 tx_ofs_m    f32
//	80 rx_ofs_m    f32
//	84 color_id    u16
//	86 reserved    u16
package record
