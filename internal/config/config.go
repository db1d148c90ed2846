package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalid marks every configuration error. Callers report it before
// any program runs.
var ErrInvalid = errors.New("invalid configuration")

// Config holds the settings of one run.
type Config struct {
	// TapeSize is the number of cells on the tape.
	TapeSize int

	// CellBits is the width of one cell: 8, 16, 32 or 64.
	CellBits int

	// EOF selects what ',' stores once input is exhausted.
	EOF EOFMode

	// Strict turns unmatched brackets into errors instead of truncating.
	Strict bool

	// LogFile, when set, receives JSON log records in addition to stderr.
	LogFile string
}

// file mirrors funbf.yaml. Pointers tell omitted keys apart from zero values.
type file struct {
	Memory   *int    `yaml:"memory"`
	CellBits *int    `yaml:"cell_bits"`
	EOF      *string `yaml:"eof"`
	Strict   *bool   `yaml:"strict"`
	LogFile  string  `yaml:"log_file"`
}

// Default returns the configuration used when nothing else is given.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// LoadConfig reads and parses a funbf.yaml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses funbf.yaml content from bytes.
// The path argument is used only for error messages and to resolve log_file.
func ParseConfig(data []byte, path string) (*Config, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrInvalid, path, err)
	}

	cfg := &Config{}
	if f.Memory != nil {
		cfg.TapeSize = *f.Memory
		if cfg.TapeSize <= 0 {
			return nil, fmt.Errorf("%w: %s: memory must be a positive integer, got %d", ErrInvalid, path, cfg.TapeSize)
		}
	}
	if f.CellBits != nil {
		cfg.CellBits = *f.CellBits
	}
	if f.EOF != nil {
		cfg.EOF = EOFMode(strings.ToLower(*f.EOF))
	}
	if f.Strict != nil {
		cfg.Strict = *f.Strict
	}
	if f.LogFile != "" {
		cfg.LogFile = f.LogFile
		if !filepath.IsAbs(cfg.LogFile) {
			cfg.LogFile = filepath.Join(filepath.Dir(path), cfg.LogFile)
		}
	}

	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// FindConfig searches for funbf.yaml starting from dir and walking up
// to parent directories.
// Returns the path to the config file and nil error if found,
// or empty string and nil error if not found.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		for _, name := range ConfigFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return "", nil
		}
		dir = parent
	}
}

// Validate checks the configuration for semantic errors.
func (c *Config) Validate() error {
	if c.TapeSize <= 0 {
		return fmt.Errorf("%w: memory must be a positive integer, got %d", ErrInvalid, c.TapeSize)
	}
	if !slices.Contains(CellWidths, c.CellBits) {
		return fmt.Errorf("%w: cell_bits must be one of 8, 16, 32, 64, got %d", ErrInvalid, c.CellBits)
	}
	switch c.EOF {
	case EOFZero, EOFUnchanged:
	default:
		return fmt.Errorf("%w: eof must be %q or %q, got %q", ErrInvalid, EOFZero, EOFUnchanged, c.EOF)
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.TapeSize == 0 {
		c.TapeSize = DefaultTapeSize
	}
	if c.CellBits == 0 {
		c.CellBits = DefaultCellBits
	}
	if c.EOF == "" {
		c.EOF = DefaultEOF
	}
}

// ParseTapeSize converts a user supplied memory value.
// Anything but a positive decimal integer is a configuration error.
func ParseTapeSize(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: memory %q is not an integer", ErrInvalid, s)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: memory must be a positive integer, got %d", ErrInvalid, n)
	}
	return n, nil
}

// ParseEOFMode converts a user supplied eof value.
func ParseEOFMode(s string) (EOFMode, error) {
	mode := EOFMode(strings.ToLower(strings.TrimSpace(s)))
	switch mode {
	case EOFZero, EOFUnchanged:
		return mode, nil
	}
	return "", fmt.Errorf("%w: eof must be %q or %q, got %q", ErrInvalid, EOFZero, EOFUnchanged, s)
}

// IsSourceFile checks if a file has a recognized source extension
func IsSourceFile(path string) bool {
	for _, ext := range SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}
