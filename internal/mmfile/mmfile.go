// Package mmfile gives read-only access to whole input files, memory-mapped
// where the platform allows it.
package mmfile

// File is a read-only view of a file's contents.
type File struct {
	data  []byte
	unmap func([]byte) error
}

// Bytes returns the file contents. The slice is invalid after Close.
func (f *File) Bytes() []byte { return f.data }

// Len returns the file size in bytes.
func (f *File) Len() int { return len(f.data) }

// Close releases the mapping. Calling it more than once is a no-op.
func (f *File) Close() error {
	data, unmap := f.data, f.unmap
	f.data, f.unmap = nil, nil
	if unmap == nil || len(data) == 0 {
		return nil
	}
	return unmap(data)
}
