package errors

import "fmt"

// TransportClosed builds the error raised when the duplex is found
// closed during a read or write.
func TransportClosed(reason string) *EngineError {
	return New(ErrCodeTransportFatal, fmt.Sprintf("transport closed: %s", reason))
}

// TransportWriteFailed wraps a write-side I/O error against a
// presumably terminated peer.
func TransportWriteFailed(err error) *EngineError {
	return Wrap(err, ErrCodeTransportFatal, "write failed on transport")
}

// WireDecodeFailed wraps a decode error encountered mid-stream.
func WireDecodeFailed(err error) *EngineError {
	return Wrap(err, ErrCodeWireMalformed, "failed to decode message")
}

// UnsupportedRequestFromBackend marks an inbound Request envelope,
// which this protocol never expects the backend to send.
func UnsupportedRequestFromBackend(method string) *EngineError {
	return New(ErrCodeWireMalformed, fmt.Sprintf("unexpected request from backend: %s", method)).
		WithDetail("method", method)
}

// MalformedEventArgs marks an event whose args didn't match the
// expected shape for its name.
func MalformedEventArgs(event string, reason string) *EngineError {
	return New(ErrCodeSemanticEvent, fmt.Sprintf("malformed args for %s: %s", event, reason)).
		WithDetail("event", event)
}

// ResizeAllocFailed marks a resize or scrollback rebuild that could
// not allocate; the caller should leave the previous rings intact.
func ResizeAllocFailed(grid int, err error) *EngineError {
	return Wrap(err, ErrCodeResourceExhausted, fmt.Sprintf("resize allocation failed for grid %d", grid)).
		WithDetail("grid", grid)
}

// AlreadyAttached marks a second ui_attach call on an already-attached
// engine.
func AlreadyAttached() *EngineError {
	return New(ErrCodeProtocolMisuse, "ui_attach called more than once")
}

// NotAttached marks an outbound call made before attach completed.
func NotAttached() *EngineError {
	return New(ErrCodeProtocolMisuse, "operation attempted before ui_attach completed")
}

// AttachRejected wraps a backend-reported RPC error returned during
// the attach handshake; this is the one error the caller of Attach
// sees directly rather than via logs.
func AttachRejected(backendErr interface{}) *EngineError {
	return New(ErrCodeProtocolMisuse, fmt.Sprintf("ui_attach rejected by backend: %v", backendErr)).
		WithDetail("backendError", backendErr)
}
