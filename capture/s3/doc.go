// Package s3 provides an S3 implementation of the capture.Store interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "survey-captures",
//	    s3.WithPrefix("2024/"),
//	    s3.WithRegion("eu-north-1"),
//	)
//	path, err := spooler.Fetch(ctx, store, "line-0042.bin")
//
// # Features
//
//   - Range reads for partial fetches
//   - Parallel ranged downloads through the SDK transfer manager
//   - Configurable prefix for multi-survey buckets
package s3
