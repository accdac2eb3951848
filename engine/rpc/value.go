// Package rpc implements the wire codec for the editor's msgpack-style
// RPC: encoding outbound Request/Notification messages and decoding
// inbound Request/Response/Notification messages, plus the primitive
// value encoding (uint, int, float, bool, str, array, map, ext) those
// envelopes are built from.
//
// This is a from-scratch implementation rather than a wrapper around a
// general-purpose msgpack library, because the wire codec is itself one
// of the components this system specifies (see DESIGN.md) — the same
// role github.com/neovim/go-client's own internal msgpack package plays
// for that client.
package rpc

// Extension is a msgpack "ext" value: an application-defined type tag
// plus opaque bytes. The editor protocol doesn't currently send these to
// the UI, but the format is part of the wire spec, so decode preserves it
// rather than failing.
type Extension struct {
	Type int8
	Data []byte
}

// MessageKind is the leading tag of a top-level RPC envelope.
type MessageKind int

const (
	KindRequest MessageKind = iota
	KindResponse
	KindNotification
)

// Request is an outbound or inbound RPC call. The backend never sends a
// Request to the UI in this protocol (§4.4), but the type exists for
// symmetry and so Decode can report one if that assumption is ever wrong
// rather than silently misparsing it as something else.
type Request struct {
	ID     uint64
	Method string
	Params []interface{}
}

// Response answers a prior Request by msgid.
type Response struct {
	ID     uint64
	Error  interface{}
	Result interface{}
}

// Notification is a fire-and-forget call; `redraw` is the only one this
// system receives, and `input`/`input_mouse`/`command`/`ui_try_resize`
// are the only ones it sends as notifications (ui_attach is the one
// synchronous Request).
type Notification struct {
	Method string
	Params []interface{}
}

// msgpack format-byte boundaries used by both encode.go and decode.go.
const (
	fixintPositiveMax = 0x7f
	fixintNegativeMin = -32

	fixmapPrefix  = 0x80
	fixarrPrefix  = 0x90
	fixstrPrefix  = 0xa0

	mNil       = 0xc0
	mFalse     = 0xc2
	mTrue      = 0xc3
	mBin8      = 0xc4
	mBin16     = 0xc5
	mBin32     = 0xc6
	mExt8      = 0xc7
	mExt16     = 0xc8
	mExt32     = 0xc9
	mFloat32   = 0xca
	mFloat64   = 0xcb
	mUint8     = 0xcc
	mUint16    = 0xcd
	mUint32    = 0xce
	mUint64    = 0xcf
	mInt8      = 0xd0
	mInt16     = 0xd1
	mInt32     = 0xd2
	mInt64     = 0xd3
	mFixext1   = 0xd4
	mFixext2   = 0xd5
	mFixext4   = 0xd6
	mFixext8   = 0xd7
	mFixext16  = 0xd8
	mStr8      = 0xd9
	mStr16     = 0xda
	mStr32     = 0xdb
	mArray16   = 0xdc
	mArray32   = 0xdd
	mMap16     = 0xde
	mMap32     = 0xdf
)
