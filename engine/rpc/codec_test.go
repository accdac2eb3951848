package rpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueRoundTripScalars(t *testing.T) {
	cases := []interface{}{
		nil, true, false,
		int64(0), int64(127), int64(128), int64(-1), int64(-32), int64(-33),
		int64(-1 << 20), int64(1 << 40),
		"", "short", "a fairly long string that exceeds the fixstr range by a fair bit",
	}
	for _, c := range cases {
		buf, err := EncodeValue(nil, c)
		require.NoError(t, err)
		got, n, err := DecodeValue(buf)
		require.NoError(t, err)
		assert.Equal(t, len(buf), n)
		assert.Equal(t, c, got)
	}
}

func TestValueRoundTripFloat(t *testing.T) {
	buf, err := EncodeValue(nil, float64(3.25))
	require.NoError(t, err)
	got, n, err := DecodeValue(buf)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)
	assert.Equal(t, float64(3.25), got)
}

func TestValueRoundTripArrayAndMap(t *testing.T) {
	in := []interface{}{int64(1), "two", []interface{}{int64(3)}}
	buf, err := EncodeValue(nil, in)
	require.NoError(t, err)
	got, n, err := DecodeValue(buf)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)
	assert.Equal(t, in, got)

	m := map[string]interface{}{"width": int64(80), "height": int64(24)}
	buf2, err := EncodeValue(nil, m)
	require.NoError(t, err)
	got2, _, err := DecodeValue(buf2)
	require.NoError(t, err)
	assert.Equal(t, m, got2)
}

func TestValueRoundTripExtension(t *testing.T) {
	ext := Extension{Type: 5, Data: []byte{1, 2, 3, 4}}
	buf, err := EncodeValue(nil, ext)
	require.NoError(t, err)
	got, _, err := DecodeValue(buf)
	require.NoError(t, err)
	assert.Equal(t, ext, got)
}

func TestDecodeValueShortBufferOnTruncatedString(t *testing.T) {
	buf, err := EncodeValue(nil, "hello world")
	require.NoError(t, err)
	_, _, err = DecodeValue(buf[:len(buf)-2])
	assert.ErrorIs(t, err, ErrShortBuffer)
}

func TestDecodeValueShortBufferOnTruncatedHeader(t *testing.T) {
	_, _, err := DecodeValue([]byte{mUint32, 0x00})
	assert.ErrorIs(t, err, ErrShortBuffer)
}

func TestRequestEnvelopeRoundTrip(t *testing.T) {
	buf, err := EncodeRequest(7, "nvim_ui_attach", []interface{}{int64(80), int64(24)})
	require.NoError(t, err)

	msg, n, err := Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)

	req, ok := msg.(Request)
	require.True(t, ok)
	assert.Equal(t, uint64(7), req.ID)
	assert.Equal(t, "nvim_ui_attach", req.Method)
	assert.Equal(t, []interface{}{int64(80), int64(24)}, req.Params)
}

func TestResponseEnvelopeRoundTrip(t *testing.T) {
	buf, err := EncodeResponse(7, nil, int64(1))
	require.NoError(t, err)

	msg, _, err := Decode(buf)
	require.NoError(t, err)

	resp, ok := msg.(Response)
	require.True(t, ok)
	assert.Equal(t, uint64(7), resp.ID)
	assert.Nil(t, resp.Error)
	assert.Equal(t, int64(1), resp.Result)
}

func TestNotificationEnvelopeRoundTrip(t *testing.T) {
	buf, err := EncodeNotification("redraw", []interface{}{
		[]interface{}{"grid_clear", []interface{}{int64(1)}},
	})
	require.NoError(t, err)

	msg, n, err := Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)

	note, ok := msg.(Notification)
	require.True(t, ok)
	assert.Equal(t, "redraw", note.Method)
	require.Len(t, note.Params, 1)
}

func TestDecodeMultipleEnvelopesFromConcatenatedBuffer(t *testing.T) {
	a, err := EncodeNotification("redraw", nil)
	require.NoError(t, err)
	b, err := EncodeRequest(1, "nvim_ui_attach", nil)
	require.NoError(t, err)

	buf := append(append([]byte{}, a...), b...)

	msg1, n1, err := Decode(buf)
	require.NoError(t, err)
	_, ok := msg1.(Notification)
	assert.True(t, ok)

	msg2, n2, err := Decode(buf[n1:])
	require.NoError(t, err)
	req, ok := msg2.(Request)
	assert.True(t, ok)
	assert.Equal(t, "nvim_ui_attach", req.Method)
	assert.Equal(t, len(buf), n1+n2)
}

func TestDecodePartialEnvelopeReturnsShortBuffer(t *testing.T) {
	buf, err := EncodeRequest(1, "nvim_ui_attach", []interface{}{int64(80), int64(24)})
	require.NoError(t, err)

	_, _, err = Decode(buf[:len(buf)-1])
	assert.ErrorIs(t, err, ErrShortBuffer)
}
