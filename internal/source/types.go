package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota
	// FileHasBOM marks content starting with a UTF-8 byte order mark. The mark is kept.
	FileHasBOM
	// FileHasCRLF marks content with \r\n line endings. Line endings are kept verbatim.
	FileHasCRLF
)

// File captures metadata and content for a single source file.
// Content is never rewritten: partition round-trips depend on it.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, in bytes
}
