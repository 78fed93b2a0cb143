// Package capture fetches sonar captures from object stores onto local disk
// so they can be memory mapped.
//
// A Store opens named Objects. LocalStore serves a directory, MemoryStore
// holds captures in memory, and the s3 and minio subpackages serve buckets.
// The Spooler copies an object into a spool directory, decompressing
// ".zst" and ".lz4" captures on the way:
//
//	sp := capture.NewSpooler("/var/spool/sonar", rc)
//	path, err := sp.Fetch(ctx, store, "survey/line-0042.bin.zst")
//	if err != nil {
//	    return err
//	}
//	s, err := sonarscan.Open(path)
//
// Spool files are written atomically, so a crashed fetch never leaves a
// truncated capture behind, and an existing spool file is reused.
package capture
