// Package source manages source file registration and line/column spans
// shared by every compiler stage.
package source

// FileID uniquely identifies a source file within a FileSet.
type FileID uint32

// FileFlags encodes metadata discovered while normalizing a file's content.
type FileFlags uint8

const (
	// FileVirtual indicates the file was added from memory (test, stdin, playground).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File captures metadata and content for a single source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	Lines   []string
	Flags   FileFlags
}
