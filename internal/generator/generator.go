package generator

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/username/month-calendar/internal/calendar"
	"github.com/username/month-calendar/internal/config"
	"github.com/username/month-calendar/internal/labels"
	"github.com/username/month-calendar/internal/render"
	"go.uber.org/zap"
)

// Generator renders one month page from configuration
type Generator struct {
	fs     afero.Fs
	config *config.Config
	store  *labels.Store
	logger *zap.Logger
}

// New creates a new Generator reading and writing through fs
func New(fs afero.Fs, cfg *config.Config, logger *zap.Logger) *Generator {
	return &Generator{
		fs:     fs,
		config: cfg,
		store:  labels.NewStore(fs, logger),
		logger: logger,
	}
}

// Grid loads the label files and lays out the given month
func (g *Generator) Grid(month int) (*calendar.Grid, error) {
	maps, err := g.store.Load(g.config.Labels.Paths())
	if err != nil {
		return nil, fmt.Errorf("failed to load labels: %w", err)
	}

	spec := calendar.MonthSpec{Year: g.config.Calendar.Year, Month: month}
	grid, err := calendar.Build(spec, g.config.Layout.Geometry(), maps, g.config.Calendar.Options())
	if err != nil {
		return nil, fmt.Errorf("failed to lay out %d/%d: %w", month, spec.Year, err)
	}

	g.logger.Info("Month laid out",
		zap.String("month", grid.MonthName),
		zap.Int("year", spec.Year),
		zap.Int("first_weekday", grid.FirstWeekday),
		zap.Int("days", grid.DaysInMonth))

	if len(grid.Dropped) > 0 {
		g.logger.Warn("Month needs a sixth row, days not rendered",
			zap.String("month", grid.MonthName),
			zap.Ints("dropped_days", grid.Dropped))
	}

	return grid, nil
}

// Generate renders the month to <output dir>/<Mon>.pdf and returns the path
func (g *Generator) Generate(month int) (string, error) {
	grid, err := g.Grid(month)
	if err != nil {
		return "", err
	}

	fonts, err := render.LoadFonts(g.fs, g.config.Fonts.TextFile, g.config.Fonts.MoonFile, g.logger)
	if err != nil {
		return "", fmt.Errorf("failed to load fonts: %w", err)
	}

	doc, err := render.NewDocument(fonts, grid.Title, g.logger)
	if err != nil {
		return "", err
	}

	style := render.DefaultStyle(fonts.Text.Family, fonts.Moon.Family)
	style.PieceRise = g.config.Layout.PieceRise
	style.HolidayWrap = g.config.Labels.HolidayWrap

	if g.config.Calendar.Decoration.Enabled {
		img, err := render.LoadImage(g.fs, g.config.Calendar.Decoration.Image)
		if err != nil {
			return "", fmt.Errorf("failed to load decoration: %w", err)
		}
		if err := doc.RegisterImage(img); err != nil {
			return "", err
		}
		style.DecorationImage = img.Name
	}

	render.Draw(doc, grid, style)

	if err := g.fs.MkdirAll(g.config.Output.Dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: failed to create %s: %v", render.ErrOutputWrite, g.config.Output.Dir, err)
	}

	outputPath := filepath.Join(g.config.Output.Dir, grid.MonthName+".pdf")
	if err := doc.Save(g.fs, outputPath); err != nil {
		return "", err
	}

	return outputPath, nil
}
