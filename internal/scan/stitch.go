package scan

import "github.com/hupe1980/sonarscan/record"

// Stitch joins the ScanMany results of consecutive ranges, as produced by
// Split, into one slice in file order. A range that starts inside a record
// kept by an earlier range is rescanned from the end of that record until
// the rescan lands on a record the range already found; from there on both
// scans agree. The result matches a single Chunk.Scan of the whole buffer
// when range starts are multiples of the alignment.
func (d *Dispatcher) Stitch(data []byte, ranges []Range, results [][]record.Record) []record.Record {
	var out []record.Record
	var next uint64
	for i, rs := range results {
		if i < len(ranges) && next > uint64(ranges[i].Start) {
			rs = d.resume(data, next, ranges[i].End, rs)
		}
		out = append(out, rs...)
		if len(rs) > 0 {
			next = rs[len(rs)-1].End()
		}
	}
	return out
}

// resume rescans [from, end) the way a scan that had just finished a record
// at from would, reusing rs once the two agree.
func (d *Dispatcher) resume(data []byte, from uint64, end int, rs []record.Record) []record.Record {
	align := uint64(d.chunk.align())
	var out []record.Record
	j := 0
	for {
		from = (from + align - 1) / align * align
		for j < len(rs) && rs[j].Offset < from {
			j++
		}
		limit := end
		if j < len(rs) {
			limit = int(rs[j].Offset)
		}

		found := d.scanRange(data, Range{Start: int(from), End: limit})
		out = append(out, found...)
		if len(found) > 0 {
			from = found[len(found)-1].End()
		}
		if j == len(rs) {
			return out
		}
		if from <= rs[j].Offset {
			return append(out, rs[j:]...)
		}
	}
}
