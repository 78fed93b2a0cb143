package record

import (
	"encoding/binary"
	"math"
)

const (
	// MaxChannelID is the largest channel id the default policy admits.
	MaxChannelID = 16
	// MaxSampleCount is the largest sample count the default policy admits.
	MaxSampleCount = 100_000
)

// Policy is the admission gate applied before a window is decoded.
type Policy struct {
	MaxChannelID   uint32
	MaxSampleCount uint32
}

// DefaultPolicy admits channel ids 0-16 and sample counts 0-100,000.
var DefaultPolicy = Policy{
	MaxChannelID:   MaxChannelID,
	MaxSampleCount: MaxSampleCount,
}

// Admits reports whether the gate fields of window pass the policy.
// window must hold at least Size bytes.
func (p Policy) Admits(window []byte) bool {
	le := binary.LittleEndian
	return le.Uint32(window[offChannel:]) <= p.MaxChannelID &&
		le.Uint32(window[offSampleCount:]) <= p.MaxSampleCount
}

// Decoder decodes records under a fixed Policy. The zero value applies
// DefaultPolicy.
type Decoder struct {
	policy Policy
	set    bool
}

// DefaultDecoder applies DefaultPolicy.
var DefaultDecoder = NewDecoder(DefaultPolicy)

// NewDecoder returns a decoder that applies p as given. A zero Policy admits
// only channel 0 with no samples.
func NewDecoder(p Policy) Decoder {
	return Decoder{policy: p, set: true}
}

// Policy returns the gate used by d.
func (d Decoder) Policy() Policy {
	if !d.set {
		return DefaultPolicy
	}
	return d.policy
}

// TryDecode interprets window[:Size] as a record found at fileOffset.
// It returns false when the window is too short or fails the gate; that is
// the common outcome while scanning and is not an error.
func (d Decoder) TryDecode(window []byte, fileOffset uint64) (Record, bool) {
	if len(window) < Size {
		return Record{}, false
	}
	window = window[:Size]
	if !d.Policy().Admits(window) {
		return Record{}, false
	}
	return decode(window, fileOffset), true
}

// TryDecode decodes with DefaultDecoder.
func TryDecode(window []byte, fileOffset uint64) (Record, bool) {
	return DefaultDecoder.TryDecode(window, fileOffset)
}

func decode(w []byte, fileOffset uint64) Record {
	le := binary.LittleEndian
	f32 := func(off int) float32 { return math.Float32frombits(le.Uint32(w[off:])) }
	f64 := func(off int) float64 { return math.Float64frombits(le.Uint64(w[off:])) }

	return Record{
		Offset:      fileOffset,
		ChannelID:   le.Uint32(w[offChannel:]),
		Sequence:    le.Uint32(w[offSequence:]),
		TimestampMS: le.Uint64(w[offTimestamp:]),
		Latitude:    f64(offLatitude),
		Longitude:   f64(offLongitude),
		DepthM:      f32(offDepth),
		SampleCount: le.Uint32(w[offSampleCount:]),
		SonarOffset: le.Uint64(w[offSonarOffset:]),
		SonarSize:   le.Uint32(w[offSonarSize:]),
		BeamAngle:   f32(offBeamAngle),
		Pitch:       f32(offPitch),
		Roll:        f32(offRoll),
		Heave:       f32(offHeave),
		TxOffset:    f32(offTxOffset),
		RxOffset:    f32(offRxOffset),
		ColorID:     le.Uint16(w[offColorID:]),
	}
}
