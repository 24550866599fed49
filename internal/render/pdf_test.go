package render

import (
	"bytes"
	"errors"
	"image/png"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/month-calendar/internal/calendar"
	"go.uber.org/zap/zaptest"
	"golang.org/x/image/font/gofont/goregular"
)

func TestDocument_CoreFonts(t *testing.T) {
	doc, err := NewDocument(CoreFonts(), "Jan 2017", zaptest.NewLogger(t))
	require.NoError(t, err)

	Draw(doc, buildJanuary(t, calendar.Options{}), DefaultStyle(CoreTextFont, CoreMoonFont))

	var out bytes.Buffer
	require.NoError(t, doc.Output(&out))
	assert.True(t, bytes.HasPrefix(out.Bytes(), []byte("%PDF")), "unexpected pdf header: %q", out.Bytes()[:8])
}

func TestDocument_TrueTypeFontsAndImage(t *testing.T) {
	fonts := &FontSet{
		Text: Face{Family: "Vera", Data: goregular.TTF},
		Moon: Face{Family: "moon_phases", Data: goregular.TTF},
	}
	doc, err := NewDocument(fonts, "Jan 2017", zaptest.NewLogger(t))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage()))
	require.NoError(t, doc.RegisterImage(&Image{Name: "windmill.png", Type: "PNG", Data: buf.Bytes()}))

	st := DefaultStyle("Vera", "moon_phases")
	st.DecorationImage = "windmill.png"
	Draw(doc, buildJanuary(t, calendar.Options{Decorate: true}), st)

	fs := afero.NewMemMapFs()
	require.NoError(t, doc.Save(fs, "Jan.pdf"))

	data, err := afero.ReadFile(fs, "Jan.pdf")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestDocument_SaveFailure(t *testing.T) {
	doc, err := NewDocument(CoreFonts(), "Jan 2017", zaptest.NewLogger(t))
	require.NoError(t, err)

	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	err = doc.Save(fs, "Jan.pdf")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOutputWrite))
}

func TestDocument_SaveRenderFailureLeavesNoFile(t *testing.T) {
	doc, err := NewDocument(CoreFonts(), "Jan 2017", zaptest.NewLogger(t))
	require.NoError(t, err)

	// Selecting a font that was never registered puts gofpdf in an error state
	doc.SetFont("Missing", 12)

	fs := afero.NewMemMapFs()
	err = doc.Save(fs, "Jan.pdf")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOutputWrite))

	exists, err := afero.Exists(fs, "Jan.pdf")
	require.NoError(t, err)
	assert.False(t, exists, "failed render must not leave a partial file")
}
