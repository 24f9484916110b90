package matfile

import (
	"encoding/binary"
	"math"
)

// dataType is the element type code of a Level 5 data element tag.
type dataType uint32

const (
	miInt8       dataType = 1
	miUint8      dataType = 2
	miInt16      dataType = 3
	miUint16     dataType = 4
	miInt32      dataType = 5
	miUint32     dataType = 6
	miSingle     dataType = 7
	miDouble     dataType = 9
	miInt64      dataType = 12
	miUint64     dataType = 13
	miMatrix     dataType = 14
	miCompressed dataType = 15
	miUTF8       dataType = 16
	miUTF16      dataType = 17
	miUTF32      dataType = 18
)

// size returns the byte width of a numeric element type, 0 otherwise.
func (t dataType) size() int {
	switch t {
	case miInt8, miUint8, miUTF8:
		return 1
	case miInt16, miUint16, miUTF16:
		return 2
	case miInt32, miUint32, miSingle, miUTF32:
		return 4
	case miDouble, miInt64, miUint64:
		return 8
	default:
		return 0
	}
}

// decodeNumbers widens a packed element payload to float64.
func decodeNumbers(t dataType, data []byte, order binary.ByteOrder) ([]float64, bool) {
	w := t.size()
	if w == 0 || len(data)%w != 0 {
		return nil, false
	}

	out := make([]float64, len(data)/w)
	for i := range out {
		b := data[i*w:]
		switch t {
		case miInt8:
			out[i] = float64(int8(b[0]))
		case miUint8, miUTF8:
			out[i] = float64(b[0])
		case miInt16:
			out[i] = float64(int16(order.Uint16(b)))
		case miUint16, miUTF16:
			out[i] = float64(order.Uint16(b))
		case miInt32:
			out[i] = float64(int32(order.Uint32(b)))
		case miUint32, miUTF32:
			out[i] = float64(order.Uint32(b))
		case miSingle:
			out[i] = float64(math.Float32frombits(order.Uint32(b)))
		case miDouble:
			out[i] = math.Float64frombits(order.Uint64(b))
		case miInt64:
			out[i] = float64(int64(order.Uint64(b)))
		case miUint64:
			out[i] = float64(order.Uint64(b))
		}
	}
	return out, true
}

// encodeNumbers packs values as element type t.
func encodeNumbers(t dataType, values []float64, order binary.ByteOrder) []byte {
	w := t.size()
	out := make([]byte, len(values)*w)
	for i, v := range values {
		b := out[i*w:]
		switch t {
		case miInt8:
			b[0] = byte(int8(v))
		case miUint8, miUTF8:
			b[0] = byte(v)
		case miInt16:
			order.PutUint16(b, uint16(int16(v)))
		case miUint16, miUTF16:
			order.PutUint16(b, uint16(v))
		case miInt32:
			order.PutUint32(b, uint32(int32(v)))
		case miUint32, miUTF32:
			order.PutUint32(b, uint32(v))
		case miSingle:
			order.PutUint32(b, math.Float32bits(float32(v)))
		case miDouble:
			order.PutUint64(b, math.Float64bits(v))
		case miInt64:
			order.PutUint64(b, uint64(int64(v)))
		case miUint64:
			order.PutUint64(b, uint64(v))
		}
	}
	return out
}

// storageType maps a numeric or char class to the element type used to
// write its payload.
func storageType(c Class) (dataType, bool) {
	switch c {
	case ClassDouble:
		return miDouble, true
	case ClassSingle:
		return miSingle, true
	case ClassInt8:
		return miInt8, true
	case ClassUint8:
		return miUint8, true
	case ClassInt16:
		return miInt16, true
	case ClassUint16, ClassChar:
		return miUint16, true
	case ClassInt32:
		return miInt32, true
	case ClassUint32:
		return miUint32, true
	case ClassInt64:
		return miInt64, true
	case ClassUint64:
		return miUint64, true
	default:
		return 0, false
	}
}
