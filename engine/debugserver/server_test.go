package debugserver

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/grovetools/nvimgui/engine"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestServeHTTPSendsLastPublishedSnapshotImmediately(t *testing.T) {
	state := engine.NewEditorState(0.3, 0, 0, logrus.NewEntry(logrus.New()))
	require.NoError(t, state.HandleEvent(engine.GridResizeEvent{Grid: 1, Width: 2, Height: 1}))
	require.NoError(t, state.HandleEvent(engine.WinPosEvent{Grid: 1, StartRow: 0, StartCol: 0, Width: 2, Height: 1}))
	require.NoError(t, state.HandleEvent(engine.GridLineEvent{
		Grid: 1, Row: 0, ColStart: 0,
		Cells: []engine.GridLineCell{{Text: "x", Repeat: 1}},
	}))

	srv := New(logrus.NewEntry(logrus.New()))
	srv.Publish(engine.BuildFrame(state, 16))

	ts := httptest.NewServer(srv)
	defer ts.Close()

	conn := dial(t, ts)
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var got wireFrame
	require.NoError(t, json.Unmarshal(payload, &got))
	require.Len(t, got.Roots, 1)
	assert.Equal(t, 1, got.Roots[0].ID)
	assert.Equal(t, "x", got.Roots[0].Cells[0][0].Text)
}

func TestServeHTTPBeforeAnyPublishSendsNothing(t *testing.T) {
	srv := New(logrus.NewEntry(logrus.New()))
	ts := httptest.NewServer(srv)
	defer ts.Close()

	conn := dial(t, ts)
	conn.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err, "no snapshot has been published yet")
}

func TestPublishFansOutToAllConnectedClients(t *testing.T) {
	state := engine.NewEditorState(0.3, 0, 0, logrus.NewEntry(logrus.New()))
	require.NoError(t, state.HandleEvent(engine.GridResizeEvent{Grid: 1, Width: 1, Height: 1}))
	require.NoError(t, state.HandleEvent(engine.WinPosEvent{Grid: 1, StartRow: 0, StartCol: 0, Width: 1, Height: 1}))
	require.NoError(t, state.HandleEvent(engine.GridLineEvent{
		Grid: 1, Row: 0, ColStart: 0,
		Cells: []engine.GridLineCell{{Text: "a", Repeat: 1}},
	}))

	srv := New(logrus.NewEntry(logrus.New()))
	srv.Publish(engine.BuildFrame(state, 16))

	ts := httptest.NewServer(srv)
	defer ts.Close()

	connA := dial(t, ts)
	connB := dial(t, ts)

	connA.SetReadDeadline(time.Now().Add(2 * time.Second))
	connB.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := connA.ReadMessage() // initial snapshot
	require.NoError(t, err)
	_, _, err = connB.ReadMessage()
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 2, srv.ClientCount())

	require.NoError(t, state.HandleEvent(engine.GridLineEvent{
		Grid: 1, Row: 0, ColStart: 0,
		Cells: []engine.GridLineCell{{Text: "b", Repeat: 1}},
	}))
	srv.Publish(engine.BuildFrame(state, 16))

	for _, conn := range []*websocket.Conn{connA, connB} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, payload, err := conn.ReadMessage()
		require.NoError(t, err)

		var got wireFrame
		require.NoError(t, json.Unmarshal(payload, &got))
		assert.Equal(t, "b", got.Roots[0].Cells[0][0].Text)
	}
}
