package engine

import (
	"context"
	"testing"
	"time"

	"github.com/grovetools/nvimgui/engine/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttachWithRetrySucceedsAfterInitialTimeout(t *testing.T) {
	thread, server := newTestIoThread(t)

	go func() {
		buf := make([]byte, 4096)
		// First attempt: drain the request but never respond, forcing a
		// per-attempt timeout.
		server.Read(buf)

		// Second attempt: respond successfully.
		n, err := server.Read(buf)
		require.NoError(t, err)
		msg, _, err := rpc.Decode(buf[:n])
		require.NoError(t, err)
		req, ok := msg.(rpc.Request)
		require.True(t, ok)

		resp, err := rpc.EncodeResponse(req.ID, nil, int64(1))
		require.NoError(t, err)
		_, err = server.Write(resp)
		require.NoError(t, err)
	}()

	resp, err := thread.AttachWithRetry(context.Background(), AttachOptions{
		Timeout:     50 * time.Millisecond,
		Width:       80,
		Height:      24,
		Attempts:    3,
		BaseBackoff: 10 * time.Millisecond,
	})
	require.NoError(t, err)
	assert.Nil(t, resp.Error)
}

func TestAttachWithRetryExhaustsAttemptsOnBackendRejection(t *testing.T) {
	thread, server := newTestIoThread(t)
	defer server.Close()

	go func() {
		buf := make([]byte, 4096)
		for i := 0; i < 2; i++ {
			n, err := server.Read(buf)
			if err != nil {
				return
			}
			msg, _, err := rpc.Decode(buf[:n])
			require.NoError(t, err)
			req, ok := msg.(rpc.Request)
			require.True(t, ok)

			resp, err := rpc.EncodeResponse(req.ID, "ui_attach failed", nil)
			require.NoError(t, err)
			server.Write(resp)
		}
	}()

	_, err := thread.AttachWithRetry(context.Background(), AttachOptions{
		Timeout:     200 * time.Millisecond,
		Width:       80,
		Height:      24,
		Attempts:    2,
		BaseBackoff: 5 * time.Millisecond,
	})
	require.Error(t, err)
}
