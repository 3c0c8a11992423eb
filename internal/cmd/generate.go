package cmd

import (
	"log/slog"

	"github.com/tenowg/optionsgen/internal/gen"
	"github.com/tenowg/optionsgen/internal/scan"
	"github.com/tenowg/optionsgen/synth"
)

type Generate struct {
	Path   string `arg:"" optional:"" default:"." help:"Module root to scan for annotated types" env:"OPTIONSGEN_PATH"`
	Output string `help:"Output directory for generated files. Default writes next to the scanned sources" env:"OPTIONSGEN_OUTPUT"`
	Format string `help:"Output format: go, json, or 'all'" default:"all" enum:"go,json,all" env:"OPTIONSGEN_FORMAT"`
}

// Run is called by Kong when the generate command is executed.
func (g *Generate) Run(logger *slog.Logger) error {
	logger.Info("Starting descriptor generation", "path", g.Path, "format", g.Format)

	snap, err := scan.Scan(g.Path)
	if err != nil {
		return err
	}
	res := synth.New(logger).Run(snap)

	outputDir := g.Output
	if outputDir == "" {
		outputDir = g.Path
	}
	generator := gen.New(outputDir, logger, res)
	if g.Format == "all" {
		return generator.EmitAll()
	}
	return generator.Emit(g.Format)
}
