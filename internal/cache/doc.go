// Package cache provides a bounded cache for small, hot reads.
//
// ReadCache keeps up to a fixed number of reads of at most MaxEntrySize bytes,
// keyed by (offset, size). Entries are retained first come; once the table
// is full, further misses are served from the source without being stored.
// Lookups share a read lock, inserts take the write lock.
package cache
