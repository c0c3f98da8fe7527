package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/nikolaydubina/go-grid-layout/internal/config"
	"github.com/nikolaydubina/go-grid-layout/internal/gridfile"
	"github.com/nikolaydubina/go-grid-layout/layout"
)

type solveOptions struct {
	configPath string
	width      int
	height     int
	scale      float64
	output     string
	noColor    bool
}

func newSolveCommand() *cobra.Command {
	var opts solveOptions

	cmd := &cobra.Command{
		Use:   "solve <grid.yaml>",
		Short: "Solve grid and print lines and cell boxes",
		Long: `Solve grid described in YAML file.

Width and height default to the smallest size that fits every cell.
Extra space is given to rows and columns by their weights.

Examples:
  gridlayout solve form.yaml
  gridlayout solve form.yaml --width 400 --output yaml
  gridlayout solve form.yaml --scale 2
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "path to config file (default ./gridlayout.yaml)")
	cmd.Flags().IntVar(&opts.width, "width", 0, "target width, 0 for minimum")
	cmd.Flags().IntVar(&opts.height, "height", 0, "target height, 0 for minimum")
	cmd.Flags().Float64Var(&opts.scale, "scale", 1, "density factor applied to result")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output style: table or yaml (default from config)")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	return cmd
}

func runSolve(stdout, stderr io.Writer, path string, opts solveOptions) error {
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.output != "" {
		cfg.Output.Style = opts.output
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if opts.scale <= 0 {
		return fmt.Errorf("scale must be positive: %v", opts.scale)
	}

	logger := cfg.Log.NewLogger(stderr)
	slog.SetDefault(logger)

	f, err := gridfile.ReadFile(path)
	if err != nil {
		return err
	}

	g, err := f.Grid(gridfile.Defaults{
		AlignmentMode:        cfg.Layout.Mode(),
		RowOrderPreserved:    cfg.Layout.RowOrderPreserved,
		ColumnOrderPreserved: cfg.Layout.ColumnOrderPreserved,
	})
	if err != nil {
		return err
	}
	g.SetLogger(logger)

	width, height := g.Measure()
	if opts.width > 0 {
		width = opts.width
	}
	if opts.height > 0 {
		height = opts.height
	}

	layoutErr := g.Layout(width, height)

	r := newReport(f, g, width, height)
	r.scale(layout.ScalerLayout{Scale: opts.scale})

	if cfg.Output.Style == config.StyleYAML {
		if err := r.writeYAML(stdout); err != nil {
			return err
		}
	} else {
		r.writeTable(stdout)
	}

	status := color.New(color.FgGreen)
	if layoutErr != nil {
		status = color.New(color.FgYellow)
	}
	if opts.noColor {
		status.DisableColor()
	}

	var convergenceErr *layout.ConvergenceError
	switch {
	case layoutErr == nil:
		status.Fprintf(stderr, "solved %d cells in %dx%d\n", len(r.Cells), r.Width, r.Height)
	case errors.As(layoutErr, &convergenceErr):
		status.Fprintf(stderr, "constraints contradict each other, lines are best effort\n")
		logger.Debug("layout did not converge", slog.Any("error", layoutErr))
	}
	return layoutErr
}
