package engine

import (
	"context"
	"time"

	"github.com/grovetools/nvimgui/engine/rpc"
	engineerrors "github.com/grovetools/nvimgui/errors"
)

// AttachOptions tunes AttachWithRetry's bounded retry loop.
type AttachOptions struct {
	Timeout     time.Duration
	Width       int
	Height      int
	Attempts    int
	BaseBackoff time.Duration
}

// AttachWithRetry performs the ui_attach handshake, retrying up to
// opts.Attempts times with linearly increasing backoff before giving
// up. A freshly spawned embedded backend's stdin/stdout pipes can
// accept a write before the process has actually installed its RPC
// dispatch loop, so the first attach attempt racing process startup is
// expected rather than exceptional.
func (t *IoThread) AttachWithRetry(ctx context.Context, opts AttachOptions) (rpc.Response, error) {
	if opts.Attempts < 1 {
		opts.Attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < opts.Attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(opts.BaseBackoff * time.Duration(attempt)):
			case <-ctx.Done():
				return rpc.Response{}, ctx.Err()
			}
		}

		resp, err := t.AttachTimeout(opts.Timeout, opts.Width, opts.Height)
		if err != nil {
			lastErr = err
			continue
		}
		if resp.Error != nil {
			lastErr = engineerrors.AttachRejected(resp.Error)
			continue
		}
		return resp, nil
	}

	return rpc.Response{}, lastErr
}
