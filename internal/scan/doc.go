// Package scan walks byte windows for fixed-size records and fans range
// scans out over a bounded worker pool.
//
// A Chunk tests aligned cursor positions with a record.Decoder and skips a
// full record on every hit. A Dispatcher runs one Chunk scan per Range and
// returns the results in input order.
package scan
