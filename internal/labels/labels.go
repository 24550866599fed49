package labels

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

var (
	// ErrFileMissing is returned when a label file is absent or unreadable
	ErrFileMissing = errors.New("label file missing")
	// ErrMalformedLine is returned for a line without a colon separator
	ErrMalformedLine = errors.New("malformed label line")
)

// KeyField selects which side of "label:value" becomes the map key
type KeyField int

const (
	// KeyFirst maps the text before the colon to the text after it (pieces)
	KeyFirst KeyField = iota + 1
	// KeySecond maps the text after the colon to the text before it (holidays, moons)
	KeySecond
)

// Paths names the three label files
type Paths struct {
	Pieces   string
	Holidays string
	Moons    string
}

// Maps holds the loaded label mappings. Read-only after Load.
type Maps struct {
	Pieces   map[string]string // month abbreviation -> caption
	Holidays map[string]string // "M/D/Y" -> holiday name
	Moons    map[string]string // "M/D/Y" -> moon phase label
}

// Piece returns the caption for a month abbreviation
func (m *Maps) Piece(month string) (string, bool) {
	v, ok := m.Pieces[month]
	return v, ok
}

// Holiday returns the holiday label for a "M/D/Y" key
func (m *Maps) Holiday(key string) (string, bool) {
	v, ok := m.Holidays[key]
	return v, ok
}

// Moon returns the moon phase label for a "M/D/Y" key
func (m *Maps) Moon(key string) (string, bool) {
	v, ok := m.Moons[key]
	return v, ok
}

// Store loads label files from a filesystem
type Store struct {
	fs     afero.Fs
	logger *zap.Logger
}

// NewStore creates a new Store reading from fs
func NewStore(fs afero.Fs, logger *zap.Logger) *Store {
	return &Store{
		fs:     fs,
		logger: logger,
	}
}

// Load loads all three label files, stopping at the first failure
func (s *Store) Load(paths Paths) (*Maps, error) {
	pieces, err := s.LoadFile(paths.Pieces, KeyFirst)
	if err != nil {
		return nil, err
	}

	holidays, err := s.LoadFile(paths.Holidays, KeySecond)
	if err != nil {
		return nil, err
	}

	moons, err := s.LoadFile(paths.Moons, KeySecond)
	if err != nil {
		return nil, err
	}

	return &Maps{
		Pieces:   pieces,
		Holidays: holidays,
		Moons:    moons,
	}, nil
}

// LoadFile reads a file of "label:value" lines into a map.
// Lines are split on the first colon; blank and '#' lines are skipped.
func (s *Store) LoadFile(path string, key KeyField) (map[string]string, error) {
	file, err := s.fs.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileMissing, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrFileMissing, path, err)
	}
	defer file.Close()

	result := make(map[string]string)
	scanner := bufio.NewScanner(file)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		first, second, found := strings.Cut(line, ":")
		if !found {
			return nil, fmt.Errorf("%w: %s:%d: %q has no ':'", ErrMalformedLine, path, lineNo, line)
		}

		if key == KeySecond {
			first, second = second, first
		}

		if prev, dup := result[first]; dup {
			s.logger.Warn("Duplicate label key, keeping last",
				zap.String("file", path),
				zap.String("key", first),
				zap.String("previous", prev))
		}
		result[first] = second
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: error reading %s: %v", ErrFileMissing, path, err)
	}

	s.logger.Info("Label file loaded",
		zap.String("file", path),
		zap.Int("entries", len(result)))

	return result, nil
}
