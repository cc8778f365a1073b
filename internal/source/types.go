package source

type (
	// FileID uniquely identifies an input text within a FileSet.
	FileID uint32 // просто ID источника
	// FileFlags encodes metadata about an input text.
	FileFlags uint8 // метаданные
)

const (
	// FileVirtual indicates the input was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota // добавлен не с диска (тест, stdin)
	FileHadBOM
	FileNormalizedCRLF
)

// File captures metadata and content for a single input text.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in an input text.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
