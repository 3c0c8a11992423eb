// Package gen dispatches synthesis results to the output emitters.
package gen

import (
	"fmt"
	"log/slog"

	"github.com/tenowg/optionsgen/internal/gen/golang"
	"github.com/tenowg/optionsgen/internal/gen/jsonmeta"
	"github.com/tenowg/optionsgen/synth"
)

// Generator renders one synthesis result into the requested formats.
type Generator struct {
	outputDir string
	logger    *slog.Logger
	result    *synth.Result
}

// EmitFunc renders the whole result in one output format. An empty
// outputDir means "next to the scanned sources" for the Go emitter and
// the working directory for file-per-run emitters.
type EmitFunc func(logger *slog.Logger, outputDir string, res *synth.Result) error

var emitters = map[string]EmitFunc{
	"go":   golang.Emit,
	"json": jsonmeta.Emit,
}

func New(outputDir string, logger *slog.Logger, res *synth.Result) *Generator {
	return &Generator{
		outputDir: outputDir,
		logger:    logger,
		result:    res,
	}
}

func (g *Generator) EmitAll() error {
	for format := range emitters {
		if err := g.Emit(format); err != nil {
			return fmt.Errorf("emit %s output: %w", format, err)
		}
	}
	return nil
}

func (g *Generator) Emit(format string) error {
	emit, ok := emitters[format]
	if !ok {
		var supported []string
		for k := range emitters {
			supported = append(supported, k)
		}
		return fmt.Errorf("unsupported format '%s' (supported: %v)", format, supported)
	}

	g.logger.Info("Emitting descriptors", "format", format)

	if err := emit(g.logger, g.outputDir, g.result); err != nil {
		return err
	}

	g.logger.Info("Emission complete", "format", format)
	return nil
}
