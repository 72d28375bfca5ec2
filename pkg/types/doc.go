// Package types holds the error taxonomy and limits shared by the string
// buffers, the conversion engine and the multi-form strings.
//
// Errors fall in two groups:
//   - hard failures (ErrOutOfMemory, ErrEncodingUnsupported): nothing useful
//     was produced.
//   - lossy results (ErrMalformedInput, ErrUnrepresentable): the output is
//     complete but some characters were replaced by '?' or U+FFFD.
//
// IsLossy tells the two apart. This package has no dependencies beyond the
// standard library.
package types
