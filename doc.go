// Package sonarscan locates and decodes records in very large binary sonar
// and navigation captures.
//
// A Scanner memory maps one capture and provides:
//
//   - byte pattern search at near memory bandwidth (SWAR lanes sized to the
//     CPU's vector width, with a scalar fallback)
//   - heuristic decoding of fixed-size records at unknown offsets
//   - parallel scans of many file ranges with results in request order
//   - a bounded cache for small, frequently repeated reads
//
// # Quick Start
//
//	s, err := sonarscan.Open("line-0042.bin")
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	hits, _ := s.Find([]byte{0xAA, 0x55}, 0, s.Len())
//	records, _ := s.ScanAll(ctx, 4<<20)
//
// Captures held in object storage are spooled to local disk first:
//
//	store, _ := s3.New(ctx, "survey-captures")
//	sp := capture.NewSpooler("/var/spool/sonar")
//	s, err := sonarscan.OpenCapture(ctx, sp, store, "line-0042.bin.zst")
//
// # Record Decoding
//
// Records are 88 bytes wide and carry no framing. A window is accepted when
// its channel id and sample count fall inside the decoder Policy (0-16 and
// 0-100,000 by default). The check is a heuristic: it can accept noise and
// can miss records that violate the policy.
//
// # Concurrency
//
// All Scanner methods are safe for concurrent use. Close waits for running
// calls to return before unmapping the file.
package sonarscan
