// Package scan builds declaration snapshots from Go source trees.
//
// The scanner walks every package under a module root, parses the source
// with go/parser and maps annotated type declarations into the decl model.
// Types are classified structurally: struct declarations become reference
// kinds, interfaces interface kinds, named basics value kinds, and named
// basics with a declared constant set enum kinds. Constructors are
// discovered by the New<Type> naming convention.
package scan

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/tenowg/optionsgen/decl"
)

// Scan parses every Go package under root and returns the declaration
// snapshot for the whole tree. Hidden, underscore, vendor and testdata
// directories below the root are skipped; the root itself is always
// scanned.
func Scan(root string) (*decl.Snapshot, error) {
	modPath, err := modulePath(root)
	if err != nil {
		return nil, err
	}

	pkgs, err := loadPackages(root, modPath)
	if err != nil {
		return nil, err
	}

	index := make(map[string]*pkgInfo, len(pkgs))
	for _, p := range pkgs {
		index[p.importPath] = p
	}
	for _, p := range pkgs {
		collectTypes(p)
	}
	for _, p := range pkgs {
		markEnums(p)
		collectConstructors(p)
	}

	return assemble(root, pkgs, index), nil
}

// modulePath reads the module line from the root go.mod. Trees without a
// go.mod fall back to the directory name so relative snapshots still get
// stable import paths.
func modulePath(root string) (string, error) {
	data, err := os.ReadFile(filepath.Join(root, "go.mod"))
	if err != nil {
		if os.IsNotExist(err) {
			abs, err := filepath.Abs(root)
			if err != nil {
				return "", fmt.Errorf("resolve scan root: %w", err)
			}
			return filepath.Base(abs), nil
		}
		return "", fmt.Errorf("read go.mod: %w", err)
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if rest, ok := strings.CutPrefix(line, "module"); ok {
			if mod := strings.TrimSpace(rest); mod != "" {
				return mod, nil
			}
		}
	}
	return "", fmt.Errorf("no module line in %s", filepath.Join(root, "go.mod"))
}

func skipDir(name string) bool {
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
		return true
	}
	return name == "vendor" || name == "testdata"
}

// loadPackages parses every package directory below root in lexical walk
// order, which keeps discovery order stable across runs.
func loadPackages(root, modPath string) ([]*pkgInfo, error) {
	var pkgs []*pkgInfo
	err := filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && skipDir(d.Name()) {
			return filepath.SkipDir
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		importPath := modPath
		if rel != "." {
			importPath = path.Join(modPath, rel)
		}

		pkg, err := parsePackage(p, rel, importPath)
		if err != nil {
			return err
		}
		if pkg != nil {
			pkgs = append(pkgs, pkg)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return pkgs, nil
}

// assemble arranges the scanned packages into the namespace tree mirroring
// their directory layout. Directories without Go files still get a node
// when a deeper package needs them as an ancestor.
func assemble(root string, pkgs []*pkgInfo, index map[string]*pkgInfo) *decl.Snapshot {
	nodes := make(map[string]*decl.Namespace)

	var ensure func(rel string) *decl.Namespace
	ensure = func(rel string) *decl.Namespace {
		if ns, ok := nodes[rel]; ok {
			return ns
		}
		ns := &decl.Namespace{Name: path.Base(rel), Path: rel}
		if rel == "." {
			ns.Name = filepath.Base(absOrSelf(root))
		}
		nodes[rel] = ns
		if rel != "." {
			parent := path.Dir(rel)
			p := ensure(parent)
			p.Children = append(p.Children, ns)
		}
		return ns
	}

	rootNS := ensure(".")
	for _, pkg := range pkgs {
		ns := ensure(pkg.dir)
		ns.Name = pkg.name
		ns.ImportPath = pkg.importPath
		ns.Types = buildTypes(pkg, index)
	}

	return &decl.Snapshot{Namespaces: []*decl.Namespace{rootNS}}
}

func absOrSelf(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
