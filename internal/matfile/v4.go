package matfile

import (
	"encoding/binary"
	"fmt"
	"strings"
)

const v4HeaderLen = 20

// Level 4 precision digit of the type word.
var v4Precision = [...]struct {
	typ   dataType
	class Class
}{
	{miDouble, ClassDouble},
	{miSingle, ClassSingle},
	{miInt32, ClassInt32},
	{miInt16, ClassInt16},
	{miUint16, ClassUint16},
	{miUint8, ClassUint8},
}

// v4Type is the decoded MOPT type word: machine, precision and matrix type.
type v4Type struct {
	machine, precision, kind int
}

func parseV4Type(mopt uint32) (v4Type, bool) {
	if mopt >= 5000 {
		return v4Type{}, false
	}
	t := v4Type{
		machine:   int(mopt / 1000),
		precision: int(mopt/10) % 10,
		kind:      int(mopt % 10),
	}
	if (mopt/100)%10 != 0 || t.machine > 1 || t.precision >= len(v4Precision) || t.kind > 2 {
		return v4Type{}, false
	}
	return t, true
}

// v4Order picks the byte order of one Level 4 header. The machine digit
// must agree with the order the type word was read in.
func v4Order(hdr []byte) (binary.ByteOrder, v4Type, bool) {
	if t, ok := parseV4Type(binary.LittleEndian.Uint32(hdr)); ok && t.machine == 0 {
		return binary.LittleEndian, t, true
	}
	if t, ok := parseV4Type(binary.BigEndian.Uint32(hdr)); ok && t.machine == 1 {
		return binary.BigEndian, t, true
	}
	return nil, v4Type{}, false
}

func decodeV4(data []byte) (*File, error) {
	f := &File{Version: Version4}

	pos := 0
	for pos < len(data) {
		if len(data)-pos < v4HeaderLen {
			return nil, fmt.Errorf("%w: truncated Level 4 header at offset %d", ErrMalformed, pos)
		}
		hdr := data[pos : pos+v4HeaderLen]
		order, t, ok := v4Order(hdr)
		if !ok {
			return nil, fmt.Errorf("%w: bad Level 4 type word at offset %d", ErrMalformed, pos)
		}
		f.ByteOrder = order

		rows := int(int32(order.Uint32(hdr[4:])))
		cols := int(int32(order.Uint32(hdr[8:])))
		imagf := order.Uint32(hdr[12:])
		namlen := int(int32(order.Uint32(hdr[16:])))
		pos += v4HeaderLen

		if rows < 0 || cols < 0 || imagf > 1 || namlen < 1 {
			return nil, fmt.Errorf("%w: bad Level 4 header at offset %d", ErrMalformed, pos-v4HeaderLen)
		}
		if cols > 0 && rows > maxElements/cols {
			return nil, fmt.Errorf("%w: dimensions overflow", ErrMalformed)
		}
		if namlen > len(data)-pos {
			return nil, fmt.Errorf("%w: truncated Level 4 name", ErrMalformed)
		}
		name := strings.TrimRight(string(data[pos:pos+namlen]), "\x00")
		pos += namlen

		prec := v4Precision[t.precision]
		n := rows * cols
		size := n * prec.typ.size()
		parts := 1
		if imagf == 1 {
			parts = 2
		}
		if size*parts > len(data)-pos {
			return nil, fmt.Errorf("%w: truncated Level 4 data for %q", ErrMalformed, name)
		}

		v := Variable{
			Name:    name,
			Dims:    []int{rows, cols},
			Complex: imagf == 1,
		}
		switch t.kind {
		case 0:
			v.Class = prec.class
		case 1:
			v.Class = ClassChar
		default:
			v.Class = ClassSparse
		}

		if t.kind == 0 {
			v.Real, _ = decodeNumbers(prec.typ, data[pos:pos+size], order)
			if v.Complex {
				v.Imag, _ = decodeNumbers(prec.typ, data[pos+size:pos+2*size], order)
			}
		}
		pos += size * parts

		f.Variables = append(f.Variables, v)
	}

	return f, nil
}
