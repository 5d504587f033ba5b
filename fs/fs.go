package fs

import (
	"io"
)

// File is a writable file handle.
type File interface {
	io.WriteCloser
	Sync()
}

// ReadFile is a readable file handle of known size.
type ReadFile interface {
	Size() int
	io.ReadCloser
}

// Stats counts filesystem operations and the bytes moved through them. The
// benchmark tooling reports these alongside its per-codec numbers.
type Stats struct {
	ReadOps    int
	ReadBytes  int
	WriteOps   int
	WriteBytes int
}

// Filesys is a tooling-specific API for accessing the file system.
//
// Note that an instance of this interface only exposes a single directory
// (there are no directory names in these methods).
//
// Callers are expected to follow some rules when calling this API:
// - Open: fname should exist
// - Create: fname should not exist
// - Delete: fname should exist
type Filesys interface {
	Open(fname string) ReadFile
	Create(fname string) File
	List() []string
	Delete(fname string)
	GetStats() Stats
}

// DeleteAll deletes every file in fs, leaving an empty directory.
func DeleteAll(fs Filesys) {
	for _, f := range fs.List() {
		fs.Delete(f)
	}
}
