package scan

import (
	"fmt"
	"go/ast"
	"strings"

	"github.com/tenowg/optionsgen/decl"
)

// basicTypes are the predeclared types treated as value kinds.
var basicTypes = map[string]bool{
	"bool":       true,
	"string":     true,
	"int":        true,
	"int8":       true,
	"int16":      true,
	"int32":      true,
	"int64":      true,
	"uint":       true,
	"uint8":      true,
	"uint16":     true,
	"uint32":     true,
	"uint64":     true,
	"uintptr":    true,
	"byte":       true,
	"rune":       true,
	"float32":    true,
	"float64":    true,
	"complex64":  true,
	"complex128": true,
}

// wellKnownValueTypes are external named types the scanner vouches for as
// default-constructible values without seeing their declarations.
var wellKnownValueTypes = map[string]bool{
	"time.Duration": true,
	"time.Time":     true,
}

// resolver maps type expressions of one file into decl.TypeRef values.
type resolver struct {
	pkg     *pkgInfo
	index   map[string]*pkgInfo
	imports map[string]string
}

func (r *resolver) typeRef(expr ast.Expr) decl.TypeRef {
	switch t := expr.(type) {
	case *ast.Ident:
		return r.identRef(t.Name)
	case *ast.StarExpr:
		ref := r.typeRef(t.X)
		ref.Nullable = true
		return ref
	case *ast.ArrayType:
		// The name keeps the source spelling so package qualifiers on the
		// element survive into generated literals.
		elem := r.typeRef(t.Elt)
		name := "[]" + exprString(t.Elt)
		if t.Len != nil {
			name = fmt.Sprintf("[%s]%s", exprString(t.Len), exprString(t.Elt))
		}
		// Slices, arrays and maps are constructible by literal, so they
		// behave like value kinds.
		return decl.TypeRef{Name: name, FullName: name, Kind: decl.KindValue, TypeArgs: []decl.TypeRef{elem}}
	case *ast.MapType:
		key := r.typeRef(t.Key)
		val := r.typeRef(t.Value)
		name := fmt.Sprintf("map[%s]%s", exprString(t.Key), exprString(t.Value))
		return decl.TypeRef{Name: name, FullName: name, Kind: decl.KindValue, TypeArgs: []decl.TypeRef{key, val}}
	case *ast.SelectorExpr:
		return r.selectorRef(t)
	case *ast.IndexExpr:
		return r.instantiate(t.X, []ast.Expr{t.Index})
	case *ast.IndexListExpr:
		return r.instantiate(t.X, t.Indices)
	}
	name := exprString(expr)
	return decl.TypeRef{Name: name, FullName: name, Kind: decl.KindReference}
}

func (r *resolver) identRef(name string) decl.TypeRef {
	if basicTypes[name] {
		return decl.TypeRef{Name: name, FullName: name, Kind: decl.KindValue}
	}
	if name == "any" || name == "error" {
		return decl.TypeRef{Name: name, FullName: name, Kind: decl.KindInterface}
	}
	if ti, ok := r.pkg.byName[name]; ok {
		return decl.TypeRef{
			Name:         ti.name,
			FullName:     r.pkg.importPath + "." + ti.name,
			Kind:         ti.kind,
			Constructors: ti.ctors,
		}
	}
	// Idents the scanner cannot resolve stay references without
	// constructors, so they never count as newable.
	return decl.TypeRef{Name: name, FullName: name, Kind: decl.KindReference}
}

func (r *resolver) selectorRef(sel *ast.SelectorExpr) decl.TypeRef {
	pkgIdent, ok := sel.X.(*ast.Ident)
	if !ok {
		name := exprString(sel)
		return decl.TypeRef{Name: name, FullName: name, Kind: decl.KindReference}
	}
	importPath, ok := r.imports[pkgIdent.Name]
	if !ok {
		importPath = pkgIdent.Name
	}
	full := importPath + "." + sel.Sel.Name

	if other, ok := r.index[importPath]; ok {
		if ti, ok := other.byName[sel.Sel.Name]; ok {
			return decl.TypeRef{
				Name:         ti.name,
				FullName:     full,
				Kind:         ti.kind,
				Constructors: ti.ctors,
			}
		}
	}
	if wellKnownValueTypes[full] {
		return decl.TypeRef{Name: sel.Sel.Name, FullName: full, Kind: decl.KindValue}
	}
	return decl.TypeRef{Name: sel.Sel.Name, FullName: full, Kind: decl.KindReference}
}

func (r *resolver) instantiate(base ast.Expr, args []ast.Expr) decl.TypeRef {
	ref := r.typeRef(base)
	for _, arg := range args {
		ref.TypeArgs = append(ref.TypeArgs, r.typeRef(arg))
	}
	return ref
}

// exprString renders a type expression the way the source wrote it, for
// the shapes the resolver does not model structurally.
func exprString(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.Ident:
		return e.Name
	case *ast.SelectorExpr:
		return exprString(e.X) + "." + e.Sel.Name
	case *ast.StarExpr:
		return "*" + exprString(e.X)
	case *ast.BasicLit:
		return e.Value
	case *ast.ArrayType:
		if e.Len != nil {
			return fmt.Sprintf("[%s]%s", exprString(e.Len), exprString(e.Elt))
		}
		return "[]" + exprString(e.Elt)
	case *ast.MapType:
		return fmt.Sprintf("map[%s]%s", exprString(e.Key), exprString(e.Value))
	case *ast.IndexExpr:
		return exprString(e.X) + "[" + exprString(e.Index) + "]"
	case *ast.IndexListExpr:
		parts := make([]string, 0, len(e.Indices))
		for _, idx := range e.Indices {
			parts = append(parts, exprString(idx))
		}
		return exprString(e.X) + "[" + strings.Join(parts, ", ") + "]"
	}
	return "unknown"
}
