// Package matfile reads and writes the subset of the MAT-file container
// needed to exchange numeric matrices: Level 4 files and Level 5 files
// (MATLAB v5, v6 and v7, including zlib-compressed elements).
//
// Decoding keeps every variable header in stored order. Numeric payloads
// are widened to float64; cell, struct, object, sparse and function
// payloads are skipped and only their class, name and dimensions are
// reported. HDF5-based v7.3 files are detected and rejected.
//
// Data in a MAT-file is stored in column-major order. [Variable.RowMajor]
// returns the C-order flattening.
package matfile
