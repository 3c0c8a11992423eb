// Package jsonmeta emits the synthesis result as a machine-readable
// metadata file for tooling that consumes descriptors outside Go.
package jsonmeta

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/tenowg/optionsgen/internal/gen/common"
	"github.com/tenowg/optionsgen/synth"
)

// MetaFileName is the output file written into the target directory.
const MetaFileName = "optionsgen.meta.json"

// document is the serialized shape: the synthesis result plus the tool
// version that produced it.
type document struct {
	Version string `json:"version"`
	*synth.Result
}

// Emit writes the metadata document into baseDir.
func Emit(logger *slog.Logger, baseDir string, res *synth.Result) error {
	version, err := common.GetVersion()
	if err != nil {
		return fmt.Errorf("get version: %w", err)
	}

	content, err := json.MarshalIndent(document{Version: version, Result: res}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	content = append(content, '\n')

	if baseDir != "" {
		if err := os.MkdirAll(baseDir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	outPath := filepath.Join(baseDir, MetaFileName)
	if err := os.WriteFile(outPath, content, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}

	logger.Info("Generated metadata", "path", outPath,
		"roots", len(res.Roots), "subTypes", len(res.SubTypes), "capabilities", len(res.Capabilities))
	return nil
}
