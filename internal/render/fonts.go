package render

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/golang/freetype/truetype"
	"github.com/spf13/afero"
	"github.com/username/month-calendar/internal/calendar"
	"go.uber.org/zap"
)

// ErrFontAssetMissing is returned when a font file is absent, unreadable or
// lacks required glyphs
var ErrFontAssetMissing = errors.New("font asset missing")

// PDF core fonts used when no TrueType file is configured
const (
	CoreTextFont = "Helvetica"
	CoreMoonFont = "ZapfDingbats"
)

// Face is a font registered on the document. Data is nil for core fonts.
type Face struct {
	Family string
	Data   []byte
}

// IsCore reports whether the face is a built-in PDF font
func (f Face) IsCore() bool {
	return len(f.Data) == 0
}

// FontSet is the pair of fonts the calendar uses
type FontSet struct {
	Text Face
	Moon Face
}

// CoreFonts returns a FontSet made of PDF core fonts only
func CoreFonts() *FontSet {
	return &FontSet{
		Text: Face{Family: CoreTextFont},
		Moon: Face{Family: CoreMoonFont},
	}
}

// LoadFonts reads the text and moon TrueType fonts. An empty path selects the
// matching core font. The moon font must contain every phase glyph.
func LoadFonts(fs afero.Fs, textPath, moonPath string, logger *zap.Logger) (*FontSet, error) {
	set := CoreFonts()

	if textPath != "" {
		face, _, err := loadFace(fs, textPath)
		if err != nil {
			return nil, err
		}
		set.Text = face
	}

	if moonPath != "" {
		face, font, err := loadFace(fs, moonPath)
		if err != nil {
			return nil, err
		}
		for _, r := range calendar.MoonGlyphs() {
			if font.Index(r) == 0 {
				return nil, fmt.Errorf("%w: %s has no glyph for %q", ErrFontAssetMissing, moonPath, r)
			}
		}
		set.Moon = face
	}

	logger.Info("Fonts ready",
		zap.String("text", set.Text.Family),
		zap.Bool("text_core", set.Text.IsCore()),
		zap.String("moon", set.Moon.Family),
		zap.Bool("moon_core", set.Moon.IsCore()))

	return set, nil
}

func loadFace(fs afero.Fs, path string) (Face, *truetype.Font, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return Face{}, nil, fmt.Errorf("%w: %s: %v", ErrFontAssetMissing, path, err)
	}

	font, err := truetype.Parse(data)
	if err != nil {
		return Face{}, nil, fmt.Errorf("%w: %s is not a TrueType font: %v", ErrFontAssetMissing, path, err)
	}

	family := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Face{Family: family, Data: data}, font, nil
}
