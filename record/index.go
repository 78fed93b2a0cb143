package record

import (
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
)

// ChannelIndex maps each channel id to the positions of its records in the
// slice it was built from. Positions are stored in roaring bitmaps, which
// stay compact for the long runs typical of interleaved sonar channels.
type ChannelIndex struct {
	byChannel map[uint32]*roaring.Bitmap
	total     int
}

// NewChannelIndex indexes records by ChannelID.
func NewChannelIndex(records []Record) *ChannelIndex {
	idx := &ChannelIndex{
		byChannel: make(map[uint32]*roaring.Bitmap),
		total:     len(records),
	}
	for i, r := range records {
		bm, ok := idx.byChannel[r.ChannelID]
		if !ok {
			bm = roaring.New()
			idx.byChannel[r.ChannelID] = bm
		}
		bm.Add(uint32(i))
	}
	for _, bm := range idx.byChannel {
		bm.RunOptimize()
	}
	return idx
}

// Len returns the number of indexed records.
func (idx *ChannelIndex) Len() int {
	return idx.total
}

// Channels returns the channel ids present, ascending.
func (idx *ChannelIndex) Channels() []uint32 {
	out := make([]uint32, 0, len(idx.byChannel))
	for ch := range idx.byChannel {
		out = append(out, ch)
	}
	slices.Sort(out)
	return out
}

// Count returns the number of records on channel ch.
func (idx *ChannelIndex) Count(ch uint32) int {
	bm, ok := idx.byChannel[ch]
	if !ok {
		return 0
	}
	return int(bm.GetCardinality())
}

// Positions returns the ascending positions of records on any of channels.
func (idx *ChannelIndex) Positions(channels ...uint32) []uint32 {
	bms := make([]*roaring.Bitmap, 0, len(channels))
	for _, ch := range channels {
		if bm, ok := idx.byChannel[ch]; ok {
			bms = append(bms, bm)
		}
	}
	if len(bms) == 0 {
		return nil
	}
	return roaring.FastOr(bms...).ToArray()
}

// Select returns the records on any of channels, in their original order.
// records must be the slice the index was built from.
func (idx *ChannelIndex) Select(records []Record, channels ...uint32) []Record {
	pos := idx.Positions(channels...)
	out := make([]Record, 0, len(pos))
	for _, p := range pos {
		out = append(out, records[p])
	}
	return out
}
