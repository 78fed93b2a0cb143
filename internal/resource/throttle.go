package resource

import (
	"context"
	"io"
)

// Reader returns r throttled to the controller's IO limit. Each Read is
// shortened to what the limiter grants, so large buffers still make progress.
func (c *Controller) Reader(ctx context.Context, r io.Reader) io.Reader {
	if c == nil || c.io == nil {
		return r
	}
	return &throttledReader{ctx: ctx, r: r, c: c}
}

type throttledReader struct {
	ctx context.Context
	r   io.Reader
	c   *Controller
}

func (t *throttledReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return t.r.Read(p)
	}
	n, err := t.c.waitIO(t.ctx, len(p))
	if err != nil {
		return 0, err
	}
	return t.r.Read(p[:n])
}
