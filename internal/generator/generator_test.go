package generator

import (
	"bytes"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/month-calendar/internal/config"
	"github.com/username/month-calendar/internal/labels"
	"github.com/username/month-calendar/internal/render"
	"github.com/username/month-calendar/pkg/datemath"
	"go.uber.org/zap/zaptest"
	"golang.org/x/image/font/gofont/goregular"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("", nil)
	require.NoError(t, err)
	cfg.Fonts.TextFile = ""
	cfg.Fonts.MoonFile = ""
	cfg.Output.Dir = "out"
	return cfg
}

func seedLabels(t *testing.T, fs afero.Fs) {
	t.Helper()
	files := map[string]string{
		"pieces":   "Jan:Winter Begins\nJul:High Summer\n",
		"holidays": "New Year's Day:1/1/2017\nMartin Luther King Jr. Day:1/16/2017\nIndependence Day:7/4/2017\n",
		"moons":    "full:1/12/2017\nquarter:1/19/2017\nnew:1/27/2017\nquarter:1/5/2017\n",
	}
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
	}
}

func TestGrid_January2017(t *testing.T) {
	fs := afero.NewMemMapFs()
	seedLabels(t, fs)

	gen := New(fs, testConfig(t), zaptest.NewLogger(t))
	grid, err := gen.Grid(1)
	require.NoError(t, err)

	assert.Equal(t, 0, grid.FirstWeekday)
	assert.Equal(t, "Winter Begins", grid.Piece)
	assert.Equal(t, 1, grid.Cell(0, 0).Day)
	assert.Equal(t, "New Year's Day", grid.Cell(0, 0).Holiday)
	assert.Equal(t, 31, grid.Cell(4, 2).Day)
	assert.True(t, grid.Cell(4, 3).IsBlank())
}

func TestGrid_TruncatedMonth(t *testing.T) {
	fs := afero.NewMemMapFs()
	seedLabels(t, fs)

	gen := New(fs, testConfig(t), zaptest.NewLogger(t))
	grid, err := gen.Grid(7)
	require.NoError(t, err)
	assert.Equal(t, []int{30, 31}, grid.Dropped)
}

func TestGrid_InvalidMonth(t *testing.T) {
	fs := afero.NewMemMapFs()
	seedLabels(t, fs)

	gen := New(fs, testConfig(t), zaptest.NewLogger(t))
	_, err := gen.Grid(13)
	assert.ErrorIs(t, err, datemath.ErrInvalidMonth)
}

func TestGenerate_CoreFonts(t *testing.T) {
	fs := afero.NewMemMapFs()
	seedLabels(t, fs)

	gen := New(fs, testConfig(t), zaptest.NewLogger(t))
	path, err := gen.Generate(1)
	require.NoError(t, err)
	assert.Equal(t, "out/Jan.pdf", path)

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestGenerate_TrueTypeFonts(t *testing.T) {
	fs := afero.NewMemMapFs()
	seedLabels(t, fs)
	require.NoError(t, afero.WriteFile(fs, "fonts/Vera.ttf", goregular.TTF, 0o644))
	require.NoError(t, afero.WriteFile(fs, "fonts/moon_phases.ttf", goregular.TTF, 0o644))

	cfg := testConfig(t)
	cfg.Fonts.TextFile = "fonts/Vera.ttf"
	cfg.Fonts.MoonFile = "fonts/moon_phases.ttf"

	path, err := New(fs, cfg, zaptest.NewLogger(t)).Generate(7)
	require.NoError(t, err)
	assert.Equal(t, "out/Jul.pdf", path)

	exists, err := afero.Exists(fs, path)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestGenerate_Errors(t *testing.T) {
	t.Run("Missing label file", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		_, err := New(fs, testConfig(t), zaptest.NewLogger(t)).Generate(1)
		assert.ErrorIs(t, err, labels.ErrFileMissing)
	})

	t.Run("Missing font", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		seedLabels(t, fs)
		cfg := testConfig(t)
		cfg.Fonts.TextFile = "fonts/Vera.ttf"

		_, err := New(fs, cfg, zaptest.NewLogger(t)).Generate(1)
		assert.ErrorIs(t, err, render.ErrFontAssetMissing)
	})

	t.Run("Missing decoration image", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		seedLabels(t, fs)
		cfg := testConfig(t)
		cfg.Calendar.Decoration.Enabled = true

		_, err := New(fs, cfg, zaptest.NewLogger(t)).Generate(1)
		assert.ErrorIs(t, err, render.ErrImageMissing)
	})

	t.Run("Read-only output", func(t *testing.T) {
		base := afero.NewMemMapFs()
		seedLabels(t, base)

		_, err := New(afero.NewReadOnlyFs(base), testConfig(t), zaptest.NewLogger(t)).Generate(1)
		assert.ErrorIs(t, err, render.ErrOutputWrite)
	})
}
