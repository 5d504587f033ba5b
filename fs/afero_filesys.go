package fs

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"
)

func (s *Stats) readOp(bytes int) {
	s.ReadOps++
	s.ReadBytes += bytes
}

func (s *Stats) writeOp(bytes int) {
	s.WriteOps++
	s.WriteBytes += bytes
}

type aferoFs struct {
	fs afero.Afero
	*Stats
}

type readFile struct {
	afero.File
	*Stats
}

func (f readFile) Size() int {
	st, err := f.Stat()
	if err != nil {
		panic(err)
	}
	return int(st.Size())
}

func (f readFile) Read(buf []byte) (int, error) {
	n, err := f.File.Read(buf)
	f.readOp(n)
	return n, err
}

type writeFile struct {
	afero.File
	*Stats
}

func (f writeFile) Sync() {
	err := f.File.Sync()
	if err != nil {
		panic(err)
	}
}

func (f writeFile) Write(p []byte) (n int, err error) {
	defer f.writeOp(len(p))
	return f.File.Write(p)
}

func abs(fname string) string {
	return fmt.Sprintf("/%s", fname)
}

func (fs aferoFs) Open(fname string) ReadFile {
	f, err := fs.fs.Open(abs(fname))
	if err != nil {
		panic(err)
	}
	return readFile{f, fs.Stats}
}

func (fs aferoFs) Create(fname string) File {
	f, err := fs.fs.Create(abs(fname))
	if err != nil {
		panic(err)
	}
	return writeFile{f, fs.Stats}
}

func (fs aferoFs) List() []string {
	paths, err := afero.Glob(fs.fs, abs("*"))
	if err != nil {
		panic(err)
	}
	names := make([]string, 0, len(paths))
	for _, p := range paths {
		names = append(names, strings.TrimPrefix(p, "/"))
	}
	return names
}

func (fs aferoFs) Delete(fname string) {
	err := fs.fs.Remove(abs(fname))
	if err != nil {
		panic(err)
	}
}

func (fs aferoFs) GetStats() Stats {
	return *fs.Stats
}

// FromAfero creates an fs.Filesys from any Afero file system.
//
// This implementation will use absolute filenames for its files; use an
// afero.BasePathFs to make sure all files are created within a particular
// directory.
func FromAfero(fs afero.Fs) Filesys {
	return aferoFs{fs: afero.Afero{Fs: fs}, Stats: new(Stats)}
}

// MemFs creates an in-memory Filesys
func MemFs() Filesys {
	fs := afero.NewMemMapFs()
	return FromAfero(fs)
}

// DirFs creates a Filesys backed by the OS, using basedir.
//
// Creates basedir if it does not exist.
func DirFs(basedir string) Filesys {
	fs := afero.NewOsFs()
	ok, err := afero.Exists(fs, basedir)
	if err != nil {
		panic(err)
	}
	if !ok {
		err = fs.Mkdir(basedir, 0755)
		if err != nil {
			panic(err)
		}
	}
	baseFs := afero.NewBasePathFs(fs, basedir)
	return FromAfero(baseFs)
}
