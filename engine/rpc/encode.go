package rpc

import (
	"fmt"
	"math"
)

// EncodeValue appends the msgpack encoding of v to buf and returns the
// extended buffer. Supported Go types: nil, bool, the signed/unsigned int
// kinds, float32/float64, string, []byte, []interface{}, map[string]interface{},
// and Extension.
func EncodeValue(buf []byte, v interface{}) ([]byte, error) {
	switch t := v.(type) {
	case nil:
		return append(buf, mNil), nil
	case bool:
		if t {
			return append(buf, mTrue), nil
		}
		return append(buf, mFalse), nil
	case int:
		return encodeInt(buf, int64(t)), nil
	case int8:
		return encodeInt(buf, int64(t)), nil
	case int16:
		return encodeInt(buf, int64(t)), nil
	case int32:
		return encodeInt(buf, int64(t)), nil
	case int64:
		return encodeInt(buf, t), nil
	case uint:
		return encodeUint(buf, uint64(t)), nil
	case uint8:
		return encodeUint(buf, uint64(t)), nil
	case uint16:
		return encodeUint(buf, uint64(t)), nil
	case uint32:
		return encodeUint(buf, uint64(t)), nil
	case uint64:
		return encodeUint(buf, t), nil
	case float32:
		return encodeFloat32(buf, t), nil
	case float64:
		return encodeFloat64(buf, t), nil
	case string:
		return encodeString(buf, t), nil
	case []byte:
		return encodeBin(buf, t), nil
	case Extension:
		return encodeExt(buf, t), nil
	case []interface{}:
		buf = encodeArrayHeader(buf, len(t))
		for _, elem := range t {
			var err error
			buf, err = EncodeValue(buf, elem)
			if err != nil {
				return nil, err
			}
		}
		return buf, nil
	case map[string]interface{}:
		buf = encodeMapHeader(buf, len(t))
		for k, val := range t {
			buf = encodeString(buf, k)
			var err error
			buf, err = EncodeValue(buf, val)
			if err != nil {
				return nil, err
			}
		}
		return buf, nil
	default:
		return nil, fmt.Errorf("rpc: unsupported value type %T", v)
	}
}

func encodeInt(buf []byte, v int64) []byte {
	if v >= 0 && v <= math.MaxInt8 {
		return append(buf, byte(v))
	}
	if v < 0 && v >= fixintNegativeMin {
		return append(buf, byte(v))
	}
	switch {
	case v >= math.MinInt8 && v <= math.MaxInt8:
		return append(buf, mInt8, byte(v))
	case v >= math.MinInt16 && v <= math.MaxInt16:
		return append(buf, mInt16, byte(v>>8), byte(v))
	case v >= math.MinInt32 && v <= math.MaxInt32:
		return append(buf, mInt32, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
	default:
		return append(buf, mInt64,
			byte(v>>56), byte(v>>48), byte(v>>40), byte(v>>32),
			byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
	}
}

func encodeUint(buf []byte, v uint64) []byte {
	switch {
	case v <= fixintPositiveMax:
		return append(buf, byte(v))
	case v <= math.MaxUint8:
		return append(buf, mUint8, byte(v))
	case v <= math.MaxUint16:
		return append(buf, mUint16, byte(v>>8), byte(v))
	case v <= math.MaxUint32:
		return append(buf, mUint32, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
	default:
		return append(buf, mUint64,
			byte(v>>56), byte(v>>48), byte(v>>40), byte(v>>32),
			byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
	}
}

func encodeFloat32(buf []byte, f float32) []byte {
	bits := math.Float32bits(f)
	return append(buf, mFloat32, byte(bits>>24), byte(bits>>16), byte(bits>>8), byte(bits))
}

func encodeFloat64(buf []byte, f float64) []byte {
	bits := math.Float64bits(f)
	return append(buf, mFloat64,
		byte(bits>>56), byte(bits>>48), byte(bits>>40), byte(bits>>32),
		byte(bits>>24), byte(bits>>16), byte(bits>>8), byte(bits))
}

func encodeString(buf []byte, s string) []byte {
	n := len(s)
	switch {
	case n < 32:
		buf = append(buf, fixstrPrefix|byte(n))
	case n <= math.MaxUint8:
		buf = append(buf, mStr8, byte(n))
	case n <= math.MaxUint16:
		buf = append(buf, mStr16, byte(n>>8), byte(n))
	default:
		buf = append(buf, mStr32, byte(n>>24), byte(n>>16), byte(n>>8), byte(n))
	}
	return append(buf, s...)
}

func encodeBin(buf []byte, b []byte) []byte {
	n := len(b)
	switch {
	case n <= math.MaxUint8:
		buf = append(buf, mBin8, byte(n))
	case n <= math.MaxUint16:
		buf = append(buf, mBin16, byte(n>>8), byte(n))
	default:
		buf = append(buf, mBin32, byte(n>>24), byte(n>>16), byte(n>>8), byte(n))
	}
	return append(buf, b...)
}

func encodeExt(buf []byte, e Extension) []byte {
	n := len(e.Data)
	switch n {
	case 1:
		buf = append(buf, mFixext1)
	case 2:
		buf = append(buf, mFixext2)
	case 4:
		buf = append(buf, mFixext4)
	case 8:
		buf = append(buf, mFixext8)
	case 16:
		buf = append(buf, mFixext16)
	default:
		switch {
		case n <= math.MaxUint8:
			buf = append(buf, mExt8, byte(n))
		case n <= math.MaxUint16:
			buf = append(buf, mExt16, byte(n>>8), byte(n))
		default:
			buf = append(buf, mExt32, byte(n>>24), byte(n>>16), byte(n>>8), byte(n))
		}
	}
	buf = append(buf, byte(e.Type))
	return append(buf, e.Data...)
}

func encodeArrayHeader(buf []byte, n int) []byte {
	switch {
	case n < 16:
		return append(buf, fixarrPrefix|byte(n))
	case n <= math.MaxUint16:
		return append(buf, mArray16, byte(n>>8), byte(n))
	default:
		return append(buf, mArray32, byte(n>>24), byte(n>>16), byte(n>>8), byte(n))
	}
}

func encodeMapHeader(buf []byte, n int) []byte {
	switch {
	case n < 16:
		return append(buf, fixmapPrefix|byte(n))
	case n <= math.MaxUint16:
		return append(buf, mMap16, byte(n>>8), byte(n))
	default:
		return append(buf, mMap32, byte(n>>24), byte(n>>16), byte(n>>8), byte(n))
	}
}

// EncodeRequest encodes a [0, msgid, method, params] envelope.
func EncodeRequest(id uint64, method string, params []interface{}) ([]byte, error) {
	buf := encodeArrayHeader(nil, 4)
	buf = encodeUint(buf, 0)
	buf = encodeUint(buf, id)
	buf = encodeString(buf, method)
	return EncodeValue(buf, asValueSlice(params))
}

// EncodeResponse encodes a [1, msgid, error, result] envelope.
func EncodeResponse(id uint64, errVal, result interface{}) ([]byte, error) {
	buf := encodeArrayHeader(nil, 4)
	buf = encodeUint(buf, 1)
	buf = encodeUint(buf, id)
	var err error
	buf, err = EncodeValue(buf, errVal)
	if err != nil {
		return nil, err
	}
	return EncodeValue(buf, result)
}

// EncodeNotification encodes a [2, method, params] envelope.
func EncodeNotification(method string, params []interface{}) ([]byte, error) {
	buf := encodeArrayHeader(nil, 3)
	buf = encodeUint(buf, 2)
	buf = encodeString(buf, method)
	return EncodeValue(buf, asValueSlice(params))
}

func asValueSlice(params []interface{}) []interface{} {
	if params == nil {
		return []interface{}{}
	}
	return params
}
