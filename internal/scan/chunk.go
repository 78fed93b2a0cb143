package scan

import "github.com/hupe1980/sonarscan/record"

// DefaultAlignment is the cursor stride at which decode attempts are made.
const DefaultAlignment = 4

// Chunk scans a single window.
type Chunk struct {
	Decoder record.Decoder

	// Alignment is measured from the window start. Values <= 0 select
	// DefaultAlignment.
	Alignment int
}

// NewChunk returns a chunk scanner.
func NewChunk(dec record.Decoder, alignment int) Chunk {
	return Chunk{Decoder: dec, Alignment: alignment}
}

// Scan decodes every record found in window. base is the file offset of
// window[0].
func (c Chunk) Scan(window []byte, base uint64) []record.Record {
	return c.ScanLimit(window, base, len(window))
}

// ScanLimit is Scan that stops once the cursor reaches limit. Records that
// start before limit may extend past it as long as window holds them.
func (c Chunk) ScanLimit(window []byte, base uint64, limit int) []record.Record {
	align := c.align()
	limit = min(limit, len(window))

	var out []record.Record
	cursor := 0
	for cursor < limit && len(window)-cursor >= record.Size {
		if rem := cursor % align; rem != 0 {
			cursor += align - rem
			continue
		}
		if r, ok := c.Decoder.TryDecode(window[cursor:], base+uint64(cursor)); ok {
			out = append(out, r)
			cursor += record.Size
			continue
		}
		cursor++
	}
	return out
}

func (c Chunk) align() int {
	if c.Alignment <= 0 {
		return DefaultAlignment
	}
	return c.Alignment
}
