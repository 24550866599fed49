package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/username/month-calendar/internal/calendar"
	"github.com/username/month-calendar/internal/generator"
	"go.uber.org/zap"
)

func layoutCmd() *cobra.Command {
	var teeOutput string

	cmd := &cobra.Command{
		Use:   "layout [month]",
		Short: "Print the month grid and its labels without rendering a PDF",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fs := afero.NewOsFs()
			if teeOutput != "" {
				f, err := openTee(fs, teeOutput)
				if err != nil {
					return err
				}
				defer f.Close()
				out = io.MultiWriter(out, f)
			}

			month, err := parseMonthArg(args)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			grid, err := generator.New(fs, cfg, logger).Grid(month)
			if err != nil {
				logger.Error("Layout failed", zap.Error(err))
				return err
			}

			printGrid(out, grid)
			return nil
		},
	}

	cmd.Flags().StringVar(&teeOutput, "tee-output", "", "Mirror layout output to file (empty to disable)")

	return cmd
}

// openTee creates or truncates the mirror file for layout output
func openTee(fs afero.Fs, path string) (afero.File, error) {
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create tee path: %w", err)
	}
	f, err := fs.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open tee-output file: %w", err)
	}
	return f, nil
}

// printGrid writes the grid as a week table followed by the labelled days
func printGrid(w io.Writer, g *calendar.Grid) {
	fmt.Fprintf(w, "📅 %s\n", g.Title)
	if g.HasPiece {
		fmt.Fprintf(w, "   %s\n", g.Piece)
	}
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════")

	headers := make([]string, 0, len(g.Headers))
	for _, h := range g.Headers {
		headers = append(headers, fmt.Sprintf("%4s", h.Label()))
	}
	fmt.Fprintf(w, "  %s\n", strings.Join(headers, " |"))

	for row := 0; row < calendar.Rows; row++ {
		cells := make([]string, 0, calendar.Columns)
		for col := 0; col < calendar.Columns; col++ {
			cells = append(cells, formatCell(g.Cell(row, col)))
		}
		fmt.Fprintf(w, "  %s\n", strings.Join(cells, " |"))
	}

	var labelled []calendar.DayCell
	for _, d := range g.Days {
		if !d.IsBlank() && (d.HasHoliday || d.Moon != calendar.MoonNone) {
			labelled = append(labelled, d)
		}
	}
	if len(labelled) > 0 {
		fmt.Fprintln(w, "\n  Day | Moon    | Holiday")
		fmt.Fprintln(w, "------+---------+----------------")
		for _, d := range labelled {
			moon := ""
			if d.Moon != calendar.MoonNone {
				moon = d.Moon.String()
			}
			fmt.Fprintf(w, "  %3d | %-7s | %s\n", d.Day, moon, d.Holiday)
		}
	}

	if len(g.Dropped) > 0 {
		fmt.Fprintf(w, "\n⚠️  Not shown (needs a sixth row): %v\n", g.Dropped)
	}
	fmt.Fprintln(w, "\nLegend: '*' = holiday, '°' = moon phase")
}

func formatCell(d calendar.DayCell) string {
	if d.IsBlank() {
		return "    "
	}
	mark := " "
	switch {
	case d.HasHoliday:
		mark = "*"
	case d.Moon != calendar.MoonNone:
		mark = "°"
	}
	return fmt.Sprintf("%3d%s", d.Day, mark)
}
