package matfile

import (
	"encoding/binary"
	"fmt"
)

// Version identifies the container layout.
type Version int

const (
	Version4  Version = 4
	Version5  Version = 5
	Version73 Version = 73
)

func (v Version) String() string {
	switch v {
	case Version4:
		return "4"
	case Version5:
		return "5"
	case Version73:
		return "7.3"
	default:
		return fmt.Sprintf("unknown(%d)", int(v))
	}
}

// Class is the MATLAB array class stored in the array flags.
type Class uint8

const (
	ClassCell     Class = 1
	ClassStruct   Class = 2
	ClassObject   Class = 3
	ClassChar     Class = 4
	ClassSparse   Class = 5
	ClassDouble   Class = 6
	ClassSingle   Class = 7
	ClassInt8     Class = 8
	ClassUint8    Class = 9
	ClassInt16    Class = 10
	ClassUint16   Class = 11
	ClassInt32    Class = 12
	ClassUint32   Class = 13
	ClassInt64    Class = 14
	ClassUint64   Class = 15
	ClassFunction Class = 16
	ClassOpaque   Class = 17
)

var classNames = map[Class]string{
	ClassCell:     "cell",
	ClassStruct:   "struct",
	ClassObject:   "object",
	ClassChar:     "char",
	ClassSparse:   "sparse",
	ClassDouble:   "double",
	ClassSingle:   "single",
	ClassInt8:     "int8",
	ClassUint8:    "uint8",
	ClassInt16:    "int16",
	ClassUint16:   "uint16",
	ClassInt32:    "int32",
	ClassUint32:   "uint32",
	ClassInt64:    "int64",
	ClassUint64:   "uint64",
	ClassFunction: "function_handle",
	ClassOpaque:   "opaque",
}

func (c Class) String() string {
	if s, ok := classNames[c]; ok {
		return s
	}
	return fmt.Sprintf("class(%d)", uint8(c))
}

// IsNumeric reports whether values of the class are plain numbers.
// Logical arrays are stored with ClassUint8 and count as numeric.
func (c Class) IsNumeric() bool {
	return c >= ClassDouble && c <= ClassUint64
}

// Variable is one named array of a MAT-file.
type Variable struct {
	Name    string
	Class   Class
	Dims    []int
	Real    []float64 // column-major; nil for non-numeric classes
	Imag    []float64 // column-major; set only when Complex
	Complex bool
	Logical bool
	Global  bool
}

// Len returns the number of elements implied by Dims.
func (v *Variable) Len() int {
	return product(v.Dims)
}

func product(dims []int) int {
	if len(dims) == 0 {
		return 0
	}
	n := 1
	for _, d := range dims {
		n *= d
	}
	return n
}

// Rank returns the number of dimensions.
func (v *Variable) Rank() int { return len(v.Dims) }

// RowMajor returns the real part flattened in C order, the order in which
// a row-by-row walk over the matrix visits its elements.
func (v *Variable) RowMajor() []float64 {
	return rowMajor(v.Real, v.Dims)
}

func rowMajor(colMajor []float64, dims []int) []float64 {
	n := len(colMajor)
	out := make([]float64, n)
	if n == 0 {
		return out
	}
	if total := product(dims); total != n || len(dims) < 2 {
		copy(out, colMajor)
		return out
	}

	// Column-major strides.
	strides := make([]int, len(dims))
	s := 1
	for i, d := range dims {
		strides[i] = s
		s *= d
	}

	idx := make([]int, len(dims))
	for k := range out {
		src := 0
		for i, j := range idx {
			src += j * strides[i]
		}
		out[k] = colMajor[src]

		// Advance the C-order counter, last dimension fastest.
		for i := len(idx) - 1; i >= 0; i-- {
			idx[i]++
			if idx[i] < dims[i] {
				break
			}
			idx[i] = 0
		}
	}
	return out
}

// File is a decoded MAT-file.
type File struct {
	Version   Version
	Header    string // descriptive text of a Level 5 header
	ByteOrder binary.ByteOrder
	Variables []Variable
}

// Lookup returns the variable with the given name.
func (f *File) Lookup(name string) (*Variable, bool) {
	for i := range f.Variables {
		if f.Variables[i].Name == name {
			return &f.Variables[i], true
		}
	}
	return nil, false
}
