package config

const SourceFileExt = ".bf"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".bf", ".b"}

// ConfigFileNames are looked up, in order, by FindConfig.
var ConfigFileNames = []string{"funbf.yaml", "funbf.yml"}

// Tape defaults
const (
	DefaultTapeSize = 30000
	DefaultCellBits = 8
)

// CellWidths lists the supported cell widths in bits.
var CellWidths = []int{8, 16, 32, 64}

type EOFMode string

// End-of-input behaviour for the ',' command
const (
	EOFZero      EOFMode = "zero"      // store 0 in the current cell
	EOFUnchanged EOFMode = "unchanged" // leave the current cell as it was
)

const DefaultEOF = EOFZero

// Backend names
const (
	TreeWalkBackendName = "tree-walk"
	CBackendName        = "c"
)
