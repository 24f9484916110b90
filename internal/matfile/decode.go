package matfile

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/klauspost/compress/zlib"
)

const (
	headerLen     = 128
	headerTextLen = 116

	// Array flag bits, second byte of the flags word.
	flagComplex = 0x08
	flagGlobal  = 0x04
	flagLogical = 0x02

	maxElements = math.MaxInt32
)

// MaxInflatedBytes caps the decompressed size of one miCOMPRESSED element.
// That is about 33 million double samples.
const MaxInflatedBytes = 256 << 20

// Decode parses a complete MAT-file held in memory.
func Decode(data []byte) (*File, error) {
	v, order, err := detect(data)
	if err != nil {
		return nil, err
	}

	switch v {
	case Version4:
		return decodeV4(data)
	case Version5:
		return decodeV5(data, order)
	default:
		return nil, fmt.Errorf("%w: MAT-file version %s", ErrUnsupported, v)
	}
}

// detect inspects the leading bytes. Level 4 files start with a type word
// whose high bytes are zero; Level 5 and later start with 116 bytes of
// text and carry version and endian indicator at offset 124.
func detect(data []byte) (Version, binary.ByteOrder, error) {
	if len(data) < 4 {
		return 0, nil, fmt.Errorf("%w: %d bytes is too short for a MAT-file", ErrMalformed, len(data))
	}
	if bytes.IndexByte(data[:4], 0) >= 0 {
		return Version4, nil, nil
	}
	if len(data) < headerLen {
		return 0, nil, fmt.Errorf("%w: truncated header", ErrMalformed)
	}

	var order binary.ByteOrder
	switch string(data[126:128]) {
	case "IM":
		order = binary.LittleEndian
	case "MI":
		order = binary.BigEndian
	default:
		return 0, nil, fmt.Errorf("%w: unknown endian indicator %q", ErrMalformed, data[126:128])
	}

	switch order.Uint16(data[124:126]) {
	case 0x0100:
		return Version5, order, nil
	case 0x0200:
		return Version73, order, nil
	default:
		return 0, nil, fmt.Errorf("%w: unknown version word %#04x", ErrMalformed, order.Uint16(data[124:126]))
	}
}

type element struct {
	typ  dataType
	data []byte
}

// elementReader walks consecutive Level 5 data elements.
type elementReader struct {
	buf   []byte
	pos   int
	order binary.ByteOrder
}

func (r *elementReader) remaining() int { return len(r.buf) - r.pos }

// next returns the following element or io.EOF at a clean end.
func (r *elementReader) next() (element, error) {
	if r.remaining() == 0 {
		return element{}, io.EOF
	}
	if r.remaining() < 8 {
		return element{}, fmt.Errorf("%w: truncated tag at offset %d", ErrMalformed, r.pos)
	}

	first := r.order.Uint32(r.buf[r.pos:])

	// Small data element: byte count in the upper half of the first word,
	// payload packed into the second word.
	if n := int(first >> 16); n != 0 {
		if n > 4 {
			return element{}, fmt.Errorf("%w: small element of %d bytes", ErrMalformed, n)
		}
		el := element{typ: dataType(first & 0xffff), data: r.buf[r.pos+4 : r.pos+4+n]}
		r.pos += 8
		return el, nil
	}

	typ := dataType(first)
	n := int(r.order.Uint32(r.buf[r.pos+4:]))
	r.pos += 8
	if n < 0 || n > r.remaining() {
		return element{}, fmt.Errorf("%w: element of %d bytes exceeds %d remaining", ErrMalformed, n, r.remaining())
	}

	el := element{typ: typ, data: r.buf[r.pos : r.pos+n]}
	r.pos += n

	// Uncompressed elements are padded to 64-bit boundaries.
	if typ != miCompressed {
		if pad := (8 - n%8) % 8; pad > 0 {
			r.pos = min(r.pos+pad, len(r.buf))
		}
	}
	return el, nil
}

func decodeV5(data []byte, order binary.ByteOrder) (*File, error) {
	f := &File{
		Version:   Version5,
		Header:    strings.TrimRight(string(data[:headerTextLen]), " \x00"),
		ByteOrder: order,
	}

	r := &elementReader{buf: data[headerLen:], order: order}
	for {
		el, err := r.next()
		if err == io.EOF {
			return f, nil
		}
		if err != nil {
			return nil, err
		}

		if el.typ == miCompressed {
			el, err = inflate(el.data, order)
			if err != nil {
				return nil, err
			}
		}
		if el.typ != miMatrix {
			continue
		}

		v, ok, err := decodeMatrix(el.data, order)
		if err != nil {
			return nil, err
		}
		if ok {
			f.Variables = append(f.Variables, v)
		}
	}
}

// inflate decompresses a miCOMPRESSED payload into the single element it
// wraps. Only the tag and the byte count it declares are inflated, so a
// stream padded with more data cannot grow the allocation.
func inflate(data []byte, order binary.ByteOrder) (element, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return element{}, fmt.Errorf("%w: compressed element: %v", ErrMalformed, err)
	}
	defer zr.Close()

	var tag [8]byte
	if _, err := io.ReadFull(zr, tag[:]); err != nil {
		if err == io.EOF {
			return element{}, fmt.Errorf("%w: empty compressed element", ErrMalformed)
		}
		return element{}, fmt.Errorf("%w: compressed element tag: %v", ErrMalformed, err)
	}

	first := order.Uint32(tag[:])
	if first>>16 != 0 {
		inner := &elementReader{buf: tag[:], order: order}
		return inner.next()
	}

	n := uint64(order.Uint32(tag[4:]))
	if n > MaxInflatedBytes {
		return element{}, fmt.Errorf("%w: compressed element declares %d bytes, limit is %d", ErrMalformed, n, MaxInflatedBytes)
	}

	var buf bytes.Buffer
	got, err := buf.ReadFrom(io.LimitReader(zr, int64(n)))
	if err != nil {
		return element{}, fmt.Errorf("%w: compressed element: %v", ErrMalformed, err)
	}
	if uint64(got) != n {
		return element{}, fmt.Errorf("%w: compressed element holds %d of %d declared bytes", ErrMalformed, got, n)
	}
	return element{typ: dataType(first), data: buf.Bytes()}, nil
}

// decodeMatrix parses a miMATRIX payload. An empty payload is a valid
// placeholder with no name and is reported with ok == false.
func decodeMatrix(data []byte, order binary.ByteOrder) (v Variable, ok bool, err error) {
	if len(data) == 0 {
		return Variable{}, false, nil
	}

	r := &elementReader{buf: data, order: order}

	flags, err := r.next()
	if err != nil {
		return Variable{}, false, subelementErr("array flags", err)
	}
	if flags.typ != miUint32 || len(flags.data) < 8 {
		return Variable{}, false, fmt.Errorf("%w: bad array flags element", ErrMalformed)
	}
	word := order.Uint32(flags.data)
	v.Class = Class(word & 0xff)
	bits := byte(word >> 8)
	v.Complex = bits&flagComplex != 0
	v.Global = bits&flagGlobal != 0
	v.Logical = bits&flagLogical != 0

	// Opaque objects carry no dimensions element.
	if v.Class != ClassOpaque {
		dims, err := r.next()
		if err != nil {
			return Variable{}, false, subelementErr("dimensions", err)
		}
		if v.Dims, err = decodeDims(dims, order); err != nil {
			return Variable{}, false, err
		}
	}

	name, err := r.next()
	if err != nil {
		return Variable{}, false, subelementErr("array name", err)
	}
	if name.typ != miInt8 && name.typ != miUint8 && name.typ != miUTF8 {
		return Variable{}, false, fmt.Errorf("%w: array name of element type %d", ErrMalformed, name.typ)
	}
	v.Name = string(name.data)

	if !v.Class.IsNumeric() {
		return v, true, nil
	}

	n := v.Len()
	if v.Real, err = readPart(r, n, "real part"); err != nil {
		return Variable{}, false, fmt.Errorf("variable %q: %w", v.Name, err)
	}
	if v.Complex {
		if v.Imag, err = readPart(r, n, "imaginary part"); err != nil {
			return Variable{}, false, fmt.Errorf("variable %q: %w", v.Name, err)
		}
	}
	return v, true, nil
}

func decodeDims(el element, order binary.ByteOrder) ([]int, error) {
	if el.typ != miInt32 || len(el.data) == 0 || len(el.data)%4 != 0 {
		return nil, fmt.Errorf("%w: bad dimensions element", ErrMalformed)
	}

	dims := make([]int, len(el.data)/4)
	total := 1
	for i := range dims {
		d := int(int32(order.Uint32(el.data[i*4:])))
		if d < 0 {
			return nil, fmt.Errorf("%w: negative dimension %d", ErrMalformed, d)
		}
		if d > 0 && total > maxElements/d {
			return nil, fmt.Errorf("%w: dimensions overflow", ErrMalformed)
		}
		total *= d
		dims[i] = d
	}
	return dims, nil
}

func readPart(r *elementReader, n int, what string) ([]float64, error) {
	el, err := r.next()
	if err == io.EOF && n == 0 {
		return []float64{}, nil
	}
	if err != nil {
		return nil, subelementErr(what, err)
	}
	values, ok := decodeNumbers(el.typ, el.data, r.order)
	if !ok {
		return nil, fmt.Errorf("%w: %s of element type %d", ErrMalformed, what, el.typ)
	}
	if len(values) != n {
		return nil, fmt.Errorf("%w: %s has %d values, dimensions imply %d", ErrMalformed, what, len(values), n)
	}
	return values, nil
}

func subelementErr(what string, err error) error {
	if err == io.EOF {
		return fmt.Errorf("%w: missing %s", ErrMalformed, what)
	}
	return err
}
