package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/username/month-calendar/internal/calendar"
	"github.com/username/month-calendar/internal/labels"
)

// EnvPrefix prefixes environment overrides, e.g. MONTH_CALENDAR_CALENDAR_YEAR
const EnvPrefix = "MONTH_CALENDAR"

// Config represents application configuration
type Config struct {
	Calendar CalendarConfig `mapstructure:"calendar"`
	Layout   LayoutConfig   `mapstructure:"layout"`
	Labels   LabelsConfig   `mapstructure:"labels"`
	Fonts    FontsConfig    `mapstructure:"fonts"`
	Output   OutputConfig   `mapstructure:"output"`
	Log      LogConfig      `mapstructure:"log"`
}

// CalendarConfig selects the year and calendar behaviour
type CalendarConfig struct {
	Year           int              `mapstructure:"year"`
	HonorLeapYears bool             `mapstructure:"honor_leap_years"` // off: February is always 28
	Decoration     DecorationConfig `mapstructure:"decoration"`
}

// DecorationConfig controls the corner image
type DecorationConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Image   string `mapstructure:"image"`
}

// LayoutConfig is the grid placement on the page, in inches
type LayoutConfig struct {
	Left         float64 `mapstructure:"left"`
	Top          float64 `mapstructure:"top"`
	CellWidth    float64 `mapstructure:"cell_width"`
	CellHeight   float64 `mapstructure:"cell_height"`
	HeaderOffset float64 `mapstructure:"header_offset"`
	PieceRise    float64 `mapstructure:"piece_rise"`
}

// LabelsConfig names the label files
type LabelsConfig struct {
	PiecesFile   string `mapstructure:"pieces_file"`
	HolidaysFile string `mapstructure:"holidays_file"`
	MoonsFile    string `mapstructure:"moons_file"`
	HolidayWrap  int    `mapstructure:"holiday_wrap"` // characters; 0 disables wrapping
}

// FontsConfig names the TrueType font files; empty selects PDF core fonts
type FontsConfig struct {
	TextFile string `mapstructure:"text_file"`
	MoonFile string `mapstructure:"moon_file"`
}

// OutputConfig controls where the PDF is written
type OutputConfig struct {
	Dir string `mapstructure:"dir"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	geo := calendar.DefaultGeometry()

	v.SetDefault("calendar.year", 2017)
	v.SetDefault("calendar.honor_leap_years", false)
	v.SetDefault("calendar.decoration.enabled", false)
	v.SetDefault("calendar.decoration.image", "windmill.jpg")

	v.SetDefault("layout.left", geo.Left)
	v.SetDefault("layout.top", geo.Top)
	v.SetDefault("layout.cell_width", geo.CellWidth)
	v.SetDefault("layout.cell_height", geo.CellHeight)
	v.SetDefault("layout.header_offset", geo.HeaderOffset)
	v.SetDefault("layout.piece_rise", 1.0)

	v.SetDefault("labels.pieces_file", "pieces")
	v.SetDefault("labels.holidays_file", "holidays")
	v.SetDefault("labels.moons_file", "moons")
	v.SetDefault("labels.holiday_wrap", 0)

	v.SetDefault("fonts.text_file", "fonts/Vera.ttf")
	v.SetDefault("fonts.moon_file", "fonts/moon_phases.ttf")

	v.SetDefault("output.dir", ".")

	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
}

// flagKeys maps command-line flags to configuration keys
var flagKeys = map[string]string{
	"year":       "calendar.year",
	"output-dir": "output.dir",
}

// Load loads configuration from file, environment and flags.
// With an empty configPath a missing calendar.yaml is not an error.
func Load(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("calendar")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.month-calendar")
		v.AddConfigPath("/etc/month-calendar")
	}

	// Read environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Calendar.Year < 1 {
		return fmt.Errorf("calendar.year must be at least 1, got %d", c.Calendar.Year)
	}
	if c.Calendar.Decoration.Enabled && c.Calendar.Decoration.Image == "" {
		return fmt.Errorf("calendar.decoration.image is required when decoration is enabled")
	}

	if c.Layout.CellWidth <= 0 || c.Layout.CellHeight <= 0 {
		return fmt.Errorf("layout.cell_width and layout.cell_height must be positive")
	}
	if c.Layout.Left < 0 || c.Layout.Top < 0 || c.Layout.HeaderOffset < 0 {
		return fmt.Errorf("layout.left, layout.top and layout.header_offset must not be negative")
	}

	if c.Labels.PiecesFile == "" || c.Labels.HolidaysFile == "" || c.Labels.MoonsFile == "" {
		return fmt.Errorf("labels.pieces_file, labels.holidays_file and labels.moons_file are required")
	}
	if c.Labels.HolidayWrap < 0 {
		return fmt.Errorf("labels.holiday_wrap must not be negative")
	}

	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir is required")
	}

	return nil
}

// Geometry returns the grid placement
func (c *LayoutConfig) Geometry() calendar.Geometry {
	return calendar.Geometry{
		Left:         c.Left,
		Top:          c.Top,
		CellWidth:    c.CellWidth,
		CellHeight:   c.CellHeight,
		HeaderOffset: c.HeaderOffset,
	}
}

// Paths returns the label file locations
func (c *LabelsConfig) Paths() labels.Paths {
	return labels.Paths{
		Pieces:   c.PiecesFile,
		Holidays: c.HolidaysFile,
		Moons:    c.MoonsFile,
	}
}

// Options returns the grid construction options
func (c *CalendarConfig) Options() calendar.Options {
	return calendar.Options{
		Decorate:       c.Decoration.Enabled,
		HonorLeapYears: c.HonorLeapYears,
	}
}

// ExpandEnvVars expands environment variables in path settings
func (c *Config) ExpandEnvVars() {
	c.Labels.PiecesFile = os.ExpandEnv(c.Labels.PiecesFile)
	c.Labels.HolidaysFile = os.ExpandEnv(c.Labels.HolidaysFile)
	c.Labels.MoonsFile = os.ExpandEnv(c.Labels.MoonsFile)
	c.Fonts.TextFile = os.ExpandEnv(c.Fonts.TextFile)
	c.Fonts.MoonFile = os.ExpandEnv(c.Fonts.MoonFile)
	c.Calendar.Decoration.Image = os.ExpandEnv(c.Calendar.Decoration.Image)
	c.Output.Dir = os.ExpandEnv(c.Output.Dir)
	c.Log.File = os.ExpandEnv(c.Log.File)
}
