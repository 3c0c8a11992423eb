package scan

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/tenowg/optionsgen/decl"
)

// pkgInfo is one parsed package directory.
type pkgInfo struct {
	dir        string // slash-separated path relative to the scan root, "." at the root
	name       string
	importPath string
	files      []*ast.File
	types      []*typeInfo
	byName     map[string]*typeInfo
}

// typeInfo is the pre-resolution record of one named type declaration.
type typeInfo struct {
	name    string
	kind    decl.Kind
	tags    decl.Tags
	methods []string
	ctors   []decl.Constructor
}

// parsePackage parses the Go files of one directory. Directories without
// buildable Go files yield a nil package.
func parsePackage(dir, rel, importPath string) (*pkgInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	pkg := &pkgInfo{dir: rel, importPath: importPath, byName: make(map[string]*typeInfo)}
	fset := token.NewFileSet()
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		file, err := parser.ParseFile(fset, filepath.Join(dir, name), nil, parser.ParseComments)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", filepath.Join(dir, name), err)
		}
		if pkg.name == "" {
			pkg.name = file.Name.Name
		}
		if file.Name.Name != pkg.name {
			continue
		}
		pkg.files = append(pkg.files, file)
	}
	if len(pkg.files) == 0 {
		return nil, nil
	}
	return pkg, nil
}

// collectTypes records every named type declaration of the package in
// declaration order, together with its marker tags and, for interfaces,
// its method names.
func collectTypes(pkg *pkgInfo) {
	for _, file := range pkg.files {
		for _, d := range file.Decls {
			genDecl, ok := d.(*ast.GenDecl)
			if !ok || genDecl.Tok != token.TYPE {
				continue
			}
			for _, spec := range genDecl.Specs {
				typeSpec, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				doc := typeSpec.Doc
				if doc == nil {
					doc = genDecl.Doc
				}
				ti := &typeInfo{
					name: typeSpec.Name.Name,
					tags: parseMarkers(doc),
				}
				switch t := typeSpec.Type.(type) {
				case *ast.StructType:
					ti.kind = decl.KindReference
				case *ast.InterfaceType:
					ti.kind = decl.KindInterface
					ti.methods = interfaceMethods(t)
				default:
					// Named basics and named composites behave like
					// values: their zero value or literal is usable.
					ti.kind = decl.KindValue
				}
				pkg.types = append(pkg.types, ti)
				pkg.byName[ti.name] = ti
			}
		}
	}
}

func interfaceMethods(t *ast.InterfaceType) []string {
	var methods []string
	for _, m := range t.Methods.List {
		if len(m.Names) == 0 {
			continue // embedded interface
		}
		for _, n := range m.Names {
			methods = append(methods, n.Name)
		}
	}
	return methods
}

// markEnums upgrades named types to enum kind when the package declares at
// least one constant of that type.
func markEnums(pkg *pkgInfo) {
	for _, file := range pkg.files {
		for _, d := range file.Decls {
			genDecl, ok := d.(*ast.GenDecl)
			if !ok || genDecl.Tok != token.CONST {
				continue
			}
			for _, spec := range genDecl.Specs {
				valueSpec, ok := spec.(*ast.ValueSpec)
				if !ok || valueSpec.Type == nil {
					continue
				}
				ident, ok := valueSpec.Type.(*ast.Ident)
				if !ok {
					continue
				}
				if ti, ok := pkg.byName[ident.Name]; ok && ti.kind == decl.KindValue {
					ti.kind = decl.KindEnum
				}
			}
		}
	}
}

// collectConstructors discovers New<Type> convention constructors and
// attaches them to their type.
func collectConstructors(pkg *pkgInfo) {
	for _, file := range pkg.files {
		for _, d := range file.Decls {
			funcDecl, ok := d.(*ast.FuncDecl)
			if !ok || funcDecl.Recv != nil {
				continue
			}
			rest, ok := strings.CutPrefix(funcDecl.Name.Name, "New")
			if !ok || rest == "" {
				continue
			}
			ti, ok := pkg.byName[rest]
			if !ok {
				continue
			}
			ti.ctors = append(ti.ctors, decl.Constructor{
				Name:   funcDecl.Name.Name,
				Public: ast.IsExported(funcDecl.Name.Name),
				Params: countParams(funcDecl.Type.Params),
			})
		}
	}
}

func countParams(fields *ast.FieldList) int {
	if fields == nil {
		return 0
	}
	n := 0
	for _, f := range fields.List {
		if len(f.Names) == 0 {
			n++
			continue
		}
		n += len(f.Names)
	}
	return n
}

// buildTypes resolves the package's declarations into decl.Type values, in
// declaration order.
func buildTypes(pkg *pkgInfo, index map[string]*pkgInfo) []decl.Type {
	var types []decl.Type
	for _, file := range pkg.files {
		imports := fileImports(file)
		res := &resolver{pkg: pkg, index: index, imports: imports}
		for _, d := range file.Decls {
			genDecl, ok := d.(*ast.GenDecl)
			if !ok || genDecl.Tok != token.TYPE {
				continue
			}
			for _, spec := range genDecl.Specs {
				typeSpec, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				ti := pkg.byName[typeSpec.Name.Name]
				if ti == nil {
					continue
				}
				t := decl.Type{
					TypeRef: decl.TypeRef{
						Name:         ti.name,
						FullName:     pkg.importPath + "." + ti.name,
						Kind:         ti.kind,
						Constructors: ti.ctors,
					},
					Tags:    ti.tags,
					Methods: ti.methods,
				}
				if structType, ok := typeSpec.Type.(*ast.StructType); ok {
					t.Members = buildMembers(structType, res)
				}
				types = append(types, t)
			}
		}
	}
	return types
}

// buildMembers maps exported struct fields to members. Go struct fields
// are plain storage, so every exported field reads and writes; embedded
// fields are not part of the configuration surface.
func buildMembers(structType *ast.StructType, res *resolver) []decl.Member {
	var members []decl.Member
	for _, field := range structType.Fields.List {
		if len(field.Names) == 0 {
			continue
		}
		doc := field.Doc
		if doc == nil {
			doc = field.Comment
		}
		tags := parseMarkers(doc)
		ref := res.typeRef(field.Type)
		for _, name := range field.Names {
			exported := ast.IsExported(name.Name)
			members = append(members, decl.Member{
				Name:      name.Name,
				Type:      ref,
				Tags:      tags,
				Public:    exported,
				HasGetter: exported,
				HasSetter: exported,
			})
		}
	}
	return members
}

// fileImports maps the package idents usable in this file to import paths.
func fileImports(file *ast.File) map[string]string {
	imports := make(map[string]string, len(file.Imports))
	for _, imp := range file.Imports {
		p := strings.Trim(imp.Path.Value, `"`)
		name := path.Base(p)
		if imp.Name != nil {
			name = imp.Name.Name
			if name == "." || name == "_" {
				continue
			}
		}
		imports[name] = p
	}
	return imports
}
