package record

import (
	"encoding/binary"
	"math"
)

// Encode serializes r into the fixed layout. The reserved tail is zero.
func Encode(r Record) [Size]byte {
	var buf [Size]byte
	le := binary.LittleEndian

	le.PutUint64(buf[offOffset:], r.Offset)
	le.PutUint32(buf[offChannel:], r.ChannelID)
	le.PutUint32(buf[offSequence:], r.Sequence)
	le.PutUint64(buf[offTimestamp:], r.TimestampMS)
	le.PutUint64(buf[offLatitude:], math.Float64bits(r.Latitude))
	le.PutUint64(buf[offLongitude:], math.Float64bits(r.Longitude))
	le.PutUint32(buf[offDepth:], math.Float32bits(r.DepthM))
	le.PutUint32(buf[offSampleCount:], r.SampleCount)
	le.PutUint64(buf[offSonarOffset:], r.SonarOffset)
	le.PutUint32(buf[offSonarSize:], r.SonarSize)
	le.PutUint32(buf[offBeamAngle:], math.Float32bits(r.BeamAngle))
	le.PutUint32(buf[offPitch:], math.Float32bits(r.Pitch))
	le.PutUint32(buf[offRoll:], math.Float32bits(r.Roll))
	le.PutUint32(buf[offHeave:], math.Float32bits(r.Heave))
	le.PutUint32(buf[offTxOffset:], math.Float32bits(r.TxOffset))
	le.PutUint32(buf[offRxOffset:], math.Float32bits(r.RxOffset))
	le.PutUint16(buf[offColorID:], r.ColorID)

	return buf
}

// AppendEncode appends the encoded form of r to dst.
func AppendEncode(dst []byte, r Record) []byte {
	buf := Encode(r)
	return append(dst, buf[:]...)
}
