package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fortio.org/safecast"
)

// FileSet owns every source file registered with a compile session and
// resolves spans back to printable line text for diagnostic rendering.
type FileSet struct {
	files []File
	index map[string]FileID
}

// NewFileSet creates an empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{index: make(map[string]FileID)}
}

// Add registers content under path, normalizing BOM and CRLF, and returns
// its FileID.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)
	if hadBOM {
		flags |= FileHadBOM
	}
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}

	idx, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("file set overflow: %w", err))
	}
	id := FileID(idx)
	fs.files = append(fs.files, File{
		ID:      id,
		Path:    normalizePath(path),
		Content: content,
		Lines:   splitLines(content),
		Flags:   flags,
	})
	fs.index[normalizePath(path)] = id
	return id
}

// AddVirtual registers in-memory content (tests, stdin) with FileVirtual set.
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	return fs.Add(name, content, FileVirtual)
}

// Load reads path from disk and registers it.
func (fs *FileSet) Load(path string) (FileID, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- path supplied by caller
	if err != nil {
		return 0, err
	}
	return fs.Add(path, content, 0), nil
}

// Get returns the file metadata for id.
func (fs *FileSet) Get(id FileID) *File {
	return &fs.files[id]
}

// GetByPath resolves a previously registered path to its File.
func (fs *FileSet) GetByPath(path string) (*File, bool) {
	id, ok := fs.index[normalizePath(path)]
	if !ok {
		return nil, false
	}
	return &fs.files[id], true
}

// Line returns the text of the given one-based line, or "" if out of range.
func (f *File) Line(n uint32) string {
	if n == 0 || int(n) > len(f.Lines) {
		return ""
	}
	return f.Lines[n-1]
}

// LineCount returns the number of lines the file was split into.
func (f *File) LineCount() uint32 {
	n, err := safecast.Conv[uint32](len(f.Lines))
	if err != nil {
		panic(fmt.Errorf("line count overflow: %w", err))
	}
	return n
}

func splitLines(content []byte) []string {
	text := string(content)
	if text == "" {
		return []string{""}
	}
	return strings.Split(text, "\n")
}

func removeBOM(content []byte) ([]byte, bool) {
	if len(content) >= 3 && content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}
	return content, false
}

func normalizeCRLF(content []byte) ([]byte, bool) {
	if !strings.Contains(string(content), "\r\n") {
		return content, false
	}
	out := strings.ReplaceAll(string(content), "\r\n", "\n")
	return []byte(out), true
}

func normalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}
