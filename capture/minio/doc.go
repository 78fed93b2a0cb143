// Package minio provides a capture.Store backed by the MinIO client.
//
// MinIO works with any S3-compatible storage (Ceph, Garage, SeaweedFS) and is
// handy for on-vessel storage without AWS dependencies.
//
// # Basic Usage
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
//	    Secure: false,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	store := miniocapture.NewStore(client, "captures", "survey-2024/")
//	path, err := spooler.Fetch(ctx, store, "line-0042.bin.zst")
package minio
