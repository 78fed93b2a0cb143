package record

// Size is the serialized width of one record in bytes.
const Size = 88

// Field offsets within a record window.
const (
	offOffset      = 0
	offChannel     = 8
	offSequence    = 12
	offTimestamp   = 16
	offLatitude    = 24
	offLongitude   = 32
	offDepth       = 40
	offSampleCount = 44
	offSonarOffset = 48
	offSonarSize   = 56
	offBeamAngle   = 60
	offPitch       = 64
	offRoll        = 68
	offHeave       = 72
	offTxOffset    = 76
	offRxOffset    = 80
	offColorID     = 84
)

// Record is one decoded sensor sample.
// The JSON names match the column names used by downstream serializers.
type Record struct {
	Offset      uint64  `json:"ofs"`
	ChannelID   uint32  `json:"channel_id"`
	Sequence    uint32  `json:"seq"`
	TimestampMS uint64  `json:"time_ms"`
	Latitude    float64 `json:"lat"`
	Longitude   float64 `json:"lon"`
	DepthM      float32 `json:"depth_m"`
	SampleCount uint32  `json:"sample_cnt"`
	SonarOffset uint64  `json:"sonar_ofs"`
	SonarSize   uint32  `json:"sonar_size"`
	BeamAngle   float32 `json:"beam_deg"`
	Pitch       float32 `json:"pitch_deg"`
	Roll        float32 `json:"roll_deg"`
	Heave       float32 `json:"heave_m"`
	TxOffset    float32 `json:"tx_ofs_m"`
	RxOffset    float32 `json:"rx_ofs_m"`
	ColorID     uint16  `json:"color_id"`
}

// End returns the file offset just past the record.
func (r Record) End() uint64 {
	return r.Offset + Size
}
