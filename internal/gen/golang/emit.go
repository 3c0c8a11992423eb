// Package golang emits descriptor tables and dispatch functions as Go
// source into the scanned packages.
package golang

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/sourcegraph/conc"

	"github.com/tenowg/optionsgen/synth"
)

// GeneratedFileName is the per-package output file.
const GeneratedFileName = "options_gen.go"

// packageOut collects the bundles that land in one generated file.
type packageOut struct {
	Dir        string
	Package    string
	ImportPath string
	Roots      []synth.ConfigTypeBundle
	SubTypes   []synth.ConfigTypeBundle
}

// Emit writes one options_gen.go per package that declared configuration
// types. baseDir is the directory the bundle paths are relative to, either
// the scan root for in-place generation or a mirror output directory.
// Packages are emitted concurrently; rendering itself is deterministic.
func Emit(logger *slog.Logger, baseDir string, res *synth.Result) error {
	pkgs := groupByDir(res)
	if len(pkgs) == 0 {
		logger.Warn("No annotated types found, nothing to emit")
		return nil
	}

	var (
		wg   conc.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, p := range pkgs {
		wg.Go(func() {
			if err := emitPackage(logger, baseDir, p); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		})
	}
	wg.Wait()
	return errors.Join(errs...)
}

func groupByDir(res *synth.Result) []*packageOut {
	byDir := make(map[string]*packageOut)
	ensure := func(b synth.ConfigTypeBundle) *packageOut {
		p, ok := byDir[b.Dir]
		if !ok {
			p = &packageOut{Dir: b.Dir, Package: b.Package, ImportPath: b.ImportPath}
			byDir[b.Dir] = p
		}
		return p
	}
	for _, b := range res.Roots {
		p := ensure(b)
		p.Roots = append(p.Roots, b)
	}
	for _, b := range res.SubTypes {
		p := ensure(b)
		p.SubTypes = append(p.SubTypes, b)
	}

	dirs := make([]string, 0, len(byDir))
	for dir := range byDir {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	pkgs := make([]*packageOut, 0, len(dirs))
	for _, dir := range dirs {
		pkgs = append(pkgs, byDir[dir])
	}
	return pkgs
}

func emitPackage(logger *slog.Logger, baseDir string, p *packageOut) error {
	logger.Debug("Generating descriptor file", "package", p.ImportPath)

	content, err := renderFile(p)
	if err != nil {
		return fmt.Errorf("render %s: %w", p.ImportPath, err)
	}

	dir := filepath.Join(baseDir, filepath.FromSlash(p.Dir))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	outPath := filepath.Join(dir, GeneratedFileName)
	if err := os.WriteFile(outPath, content, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}

	logger.Info("Generated descriptors", "package", p.ImportPath, "path", outPath,
		"roots", len(p.Roots), "subTypes", len(p.SubTypes))
	return nil
}
