package matfile

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

const defaultHeaderText = "MATLAB 5.0 MAT-file, Platform: GLNXA64, written by algo-ecg"

type encodeConfig struct {
	compress bool
	order    binary.ByteOrder
	header   string
}

// EncodeOption configures Encode and EncodeV4.
type EncodeOption func(*encodeConfig)

// WithCompression wraps every variable of a Level 5 file in a zlib
// compressed element, as MATLAB v7 does by default.
func WithCompression() EncodeOption {
	return func(c *encodeConfig) { c.compress = true }
}

// WithByteOrder selects the byte order of the written file.
// Little-endian is the default.
func WithByteOrder(order binary.ByteOrder) EncodeOption {
	return func(c *encodeConfig) {
		if order != nil {
			c.order = order
		}
	}
}

// WithHeaderText sets the descriptive text of a Level 5 header.
// Text longer than 116 bytes is truncated.
func WithHeaderText(text string) EncodeOption {
	return func(c *encodeConfig) { c.header = text }
}

func newEncodeConfig(opts []EncodeOption) encodeConfig {
	cfg := encodeConfig{order: binary.LittleEndian, header: defaultHeaderText}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Encode writes vars as a Level 5 MAT-file. Numeric and char variables are
// written with their payload; cell and struct variables must be empty.
func Encode(w io.Writer, vars []Variable, opts ...EncodeOption) error {
	cfg := newEncodeConfig(opts)

	hdr := make([]byte, headerLen)
	for i := range hdr[:headerTextLen] {
		hdr[i] = ' '
	}
	copy(hdr[:headerTextLen], cfg.header)
	cfg.order.PutUint16(hdr[124:], 0x0100)
	cfg.order.PutUint16(hdr[126:], 'M'<<8|'I')

	var buf bytes.Buffer
	buf.Write(hdr)

	for i := range vars {
		body, err := encodeMatrix(&vars[i], cfg.order)
		if err != nil {
			return err
		}

		if !cfg.compress {
			writeElement(&buf, cfg.order, miMatrix, body)
			continue
		}

		var inner bytes.Buffer
		writeElement(&inner, cfg.order, miMatrix, body)

		var z bytes.Buffer
		zw := zlib.NewWriter(&z)
		if _, err := zw.Write(inner.Bytes()); err != nil {
			return fmt.Errorf("matfile: compress %q: %w", vars[i].Name, err)
		}
		if err := zw.Close(); err != nil {
			return fmt.Errorf("matfile: compress %q: %w", vars[i].Name, err)
		}

		tag := make([]byte, 8)
		cfg.order.PutUint32(tag, uint32(miCompressed))
		cfg.order.PutUint32(tag[4:], uint32(z.Len()))
		buf.Write(tag)
		buf.Write(z.Bytes())
	}

	_, err := w.Write(buf.Bytes())
	return err
}

func encodeMatrix(v *Variable, order binary.ByteOrder) ([]byte, error) {
	if len(v.Dims) < 2 {
		return nil, fmt.Errorf("%w: variable %q needs at least two dimensions", ErrUnsupported, v.Name)
	}

	n := v.Len()
	typ, payload := storageType(v.Class)
	switch {
	case payload:
		if len(v.Real) != n || (v.Complex && len(v.Imag) != n) {
			return nil, fmt.Errorf("%w: variable %q has %d values, dimensions imply %d", ErrUnsupported, v.Name, len(v.Real), n)
		}
	case (v.Class == ClassCell || v.Class == ClassStruct) && n == 0:
	default:
		return nil, fmt.Errorf("%w: cannot write %s variable %q", ErrUnsupported, v.Class, v.Name)
	}

	var body bytes.Buffer

	var bits byte
	if v.Complex && payload {
		bits |= flagComplex
	}
	if v.Global {
		bits |= flagGlobal
	}
	if v.Logical {
		bits |= flagLogical
	}
	flags := make([]byte, 8)
	order.PutUint32(flags, uint32(v.Class)|uint32(bits)<<8)
	writeElement(&body, order, miUint32, flags)

	dims := make([]byte, 4*len(v.Dims))
	for i, d := range v.Dims {
		order.PutUint32(dims[i*4:], uint32(int32(d)))
	}
	writeElement(&body, order, miInt32, dims)

	writeElement(&body, order, miInt8, []byte(v.Name))

	if payload {
		writeElement(&body, order, typ, encodeNumbers(typ, v.Real, order))
		if v.Complex {
			writeElement(&body, order, typ, encodeNumbers(typ, v.Imag, order))
		}
	}
	return body.Bytes(), nil
}

// writeElement appends one data element, using the packed small-element
// form for payloads of one to four bytes.
func writeElement(buf *bytes.Buffer, order binary.ByteOrder, typ dataType, data []byte) {
	if n := len(data); n > 0 && n <= 4 {
		var small [8]byte
		order.PutUint32(small[:], uint32(n)<<16|uint32(typ))
		copy(small[4:], data)
		buf.Write(small[:])
		return
	}

	var tag [8]byte
	order.PutUint32(tag[:], uint32(typ))
	order.PutUint32(tag[4:], uint32(len(data)))
	buf.Write(tag[:])
	buf.Write(data)
	if pad := (8 - len(data)%8) % 8; pad > 0 {
		buf.Write(make([]byte, pad))
	}
}

// EncodeV4 writes vars as a Level 4 MAT-file. Every variable must be a
// two-dimensional double or char matrix; values are stored as doubles.
func EncodeV4(w io.Writer, vars []Variable, opts ...EncodeOption) error {
	cfg := newEncodeConfig(opts)

	machine := uint32(0)
	if cfg.order == binary.BigEndian {
		machine = 1
	}

	var buf bytes.Buffer
	for i := range vars {
		v := &vars[i]
		if len(v.Dims) != 2 {
			return fmt.Errorf("%w: Level 4 variable %q must be two-dimensional", ErrUnsupported, v.Name)
		}

		var kind uint32
		switch {
		case v.Class.IsNumeric():
		case v.Class == ClassChar:
			kind = 1
		default:
			return fmt.Errorf("%w: cannot write %s variable %q in Level 4", ErrUnsupported, v.Class, v.Name)
		}
		if len(v.Real) != v.Len() || (v.Complex && len(v.Imag) != v.Len()) {
			return fmt.Errorf("%w: variable %q has %d values, dimensions imply %d", ErrUnsupported, v.Name, len(v.Real), v.Len())
		}

		hdr := make([]byte, v4HeaderLen)
		cfg.order.PutUint32(hdr, machine*1000+kind)
		cfg.order.PutUint32(hdr[4:], uint32(v.Dims[0]))
		cfg.order.PutUint32(hdr[8:], uint32(v.Dims[1]))
		if v.Complex {
			cfg.order.PutUint32(hdr[12:], 1)
		}
		cfg.order.PutUint32(hdr[16:], uint32(len(v.Name)+1))
		buf.Write(hdr)
		buf.WriteString(v.Name)
		buf.WriteByte(0)

		buf.Write(encodeNumbers(miDouble, v.Real, cfg.order))
		if v.Complex {
			buf.Write(encodeNumbers(miDouble, v.Imag, cfg.order))
		}
	}

	_, err := w.Write(buf.Bytes())
	return err
}
