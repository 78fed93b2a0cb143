// Package resource holds the process wide limits shared by the read cache
// and the capture spooler: a cache memory budget, a cap on concurrent
// fetches, and a bandwidth limit for spool reads.
//
//	rc := resource.NewController(resource.Config{
//	    MaxConcurrentFetches: 2,
//	    IOLimitBytesPerSec:   64 << 20,
//	})
//	if err := rc.AcquireFetch(ctx); err != nil {
//	    return err
//	}
//	defer rc.ReleaseFetch()
//	body = rc.Reader(ctx, body)
//
// Every method accepts a nil *Controller and then imposes no limit.
package resource
