package rpc

import "fmt"

// Decode classifies and decodes one top-level RPC envelope from the front
// of buf, returning the consumed byte count alongside whichever of
// Request/Response/Notification applies. ErrShortBuffer propagates from
// DecodeValue unchanged so callers retry once more bytes are buffered.
func Decode(buf []byte) (interface{}, int, error) {
	v, n, err := DecodeValue(buf)
	if err != nil {
		return nil, 0, err
	}
	arr, ok := v.([]interface{})
	if !ok || len(arr) == 0 {
		return nil, 0, fmt.Errorf("rpc: envelope is not a non-empty array")
	}

	kind, ok := asInt(arr[0])
	if !ok {
		return nil, 0, fmt.Errorf("rpc: envelope tag is not an integer")
	}

	switch kind {
	case int64(KindRequest):
		if len(arr) != 4 {
			return nil, 0, fmt.Errorf("rpc: request envelope must have 4 elements, got %d", len(arr))
		}
		id, _ := asInt(arr[1])
		method, _ := arr[2].(string)
		params, _ := arr[3].([]interface{})
		return Request{ID: uint64(id), Method: method, Params: params}, n, nil

	case int64(KindResponse):
		if len(arr) != 4 {
			return nil, 0, fmt.Errorf("rpc: response envelope must have 4 elements, got %d", len(arr))
		}
		id, _ := asInt(arr[1])
		return Response{ID: uint64(id), Error: arr[2], Result: arr[3]}, n, nil

	case int64(KindNotification):
		if len(arr) != 3 {
			return nil, 0, fmt.Errorf("rpc: notification envelope must have 3 elements, got %d", len(arr))
		}
		method, _ := arr[1].(string)
		params, _ := arr[2].([]interface{})
		return Notification{Method: method, Params: params}, n, nil

	default:
		return nil, 0, fmt.Errorf("rpc: unknown envelope tag %d", kind)
	}
}

func asInt(v interface{}) (int64, bool) {
	switch t := v.(type) {
	case int64:
		return t, true
	case uint64:
		return int64(t), true
	default:
		return 0, false
	}
}
