package golang

import (
	"bytes"
	"fmt"
	"go/format"
	"path"
	"sort"
	"strings"
	"text/template"

	"github.com/tenowg/optionsgen/decl"
	"github.com/tenowg/optionsgen/internal/gen/common"
	"github.com/tenowg/optionsgen/synth"
)

// optionsImport is the runtime package every generated file links against.
const optionsImport = "github.com/tenowg/optionsgen/options"

type fileData struct {
	Version     string
	Package     string
	StdImports  []importSpec
	Imports     []importSpec
	Descriptors []descriptorData
	Inits       []initData
	Dispatch    []dispatchData
}

type importSpec struct {
	Alias string
	Path  string
}

type descriptorData struct {
	VarName    string
	TypeName   string
	FullName   string
	Properties []propertyData
}

type propertyData struct {
	Name           string
	DisplayName    string
	Description    string
	TypeName       string
	Required       bool
	Newable        bool
	NewExpr        string
	GenericOneExpr string
	GenericTwoExpr string
}

// initData wires dispatch functions into a descriptor after the package
// variables are initialized. Assigning in init avoids the initialization
// cycle between the descriptor table and dispatch functions that read it.
type initData struct {
	Assigns []dispatchAssign
}

type dispatchAssign struct {
	Var   string
	Index int
	Func  string
}

type dispatchData struct {
	FuncName   string
	Descriptor string
	Property   string
	TypeName   string
	Slots      []slotData
}

type slotData struct {
	Universal bool
	TypeExpr  string
	Method    string
}

// renderFile renders one package's generated source and gofmts it.
func renderFile(p *packageOut) ([]byte, error) {
	version, err := common.GetVersion()
	if err != nil {
		return nil, fmt.Errorf("get version: %w", err)
	}

	imp := newImportSet(p.ImportPath)
	imp.force(optionsImport)

	data := fileData{Version: version, Package: p.Package}
	for _, b := range p.Roots {
		d, in, disp := buildDescriptor(b, true, imp)
		data.Descriptors = append(data.Descriptors, d)
		if len(in.Assigns) > 0 {
			data.Inits = append(data.Inits, in)
		}
		data.Dispatch = append(data.Dispatch, disp...)
	}
	for _, b := range p.SubTypes {
		d, _, _ := buildDescriptor(b, false, imp)
		data.Descriptors = append(data.Descriptors, d)
	}
	data.StdImports, data.Imports = imp.specs()

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute template: %w", err)
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format generated source: %w", err)
	}
	return src, nil
}

func buildDescriptor(b synth.ConfigTypeBundle, root bool, imp *importSet) (descriptorData, initData, []dispatchData) {
	d := descriptorData{
		VarName:  b.Name + "Descriptor",
		TypeName: b.Name,
		FullName: b.FullName,
	}

	var in initData
	var dispatch []dispatchData
	for i, prop := range b.Properties {
		pd := propertyData{
			Name:           prop.Name,
			DisplayName:    prop.DisplayName,
			Description:    prop.Description,
			TypeName:       prop.Type.String(),
			Required:       prop.Required,
			Newable:        prop.Newable,
			NewExpr:        newExpr(prop.Type, imp),
			GenericOneExpr: genericExpr(prop, prop.GenericOne, 1, imp),
			GenericTwoExpr: genericExpr(prop, prop.GenericTwo, 2, imp),
		}
		d.Properties = append(d.Properties, pd)

		if !root {
			continue
		}
		ch, ok := b.Chains[prop.Name]
		if !ok {
			continue
		}
		fn := "dispatch" + b.Name + prop.Name
		in.Assigns = append(in.Assigns, dispatchAssign{Var: d.VarName, Index: i, Func: fn})

		dd := dispatchData{
			FuncName:   fn,
			Descriptor: d.VarName,
			Property:   prop.Name,
			TypeName:   pd.TypeName,
		}
		for _, slot := range ch.Slots {
			if slot.Universal {
				dd.Slots = append(dd.Slots, slotData{Universal: true})
				continue
			}
			dd.Slots = append(dd.Slots, slotData{
				TypeExpr: capabilityExpr(slot.Capability, imp),
				Method:   slot.Capability.Method,
			})
		}
		dispatch = append(dispatch, dd)
	}
	return d, in, dispatch
}

// newExpr renders the constructor stub for a declared type, or "" when the
// type is not newable.
func newExpr(t decl.TypeRef, imp *importSet) string {
	if !synth.IsNewable(t) {
		return ""
	}
	u := t.Unwrap()
	switch u.Kind {
	case decl.KindValue, decl.KindEnum:
		expr := typeExpr(u, imp)
		if isComposite(u.Name) {
			if t.Nullable {
				return fmt.Sprintf("func() (any, error) { v := %s{}; return &v, nil }", expr)
			}
			return fmt.Sprintf("func() (any, error) { return %s{}, nil }", expr)
		}
		if t.Nullable {
			return fmt.Sprintf("func() (any, error) { var v %s; return &v, nil }", expr)
		}
		return fmt.Sprintf("func() (any, error) { var v %s; return v, nil }", expr)
	default:
		ctor := publicZeroArgCtor(u)
		if ctor == "" {
			return ""
		}
		if pkgPath, ok := splitFull(u.FullName); ok && pkgPath != imp.current {
			ctor = imp.qualify(pkgPath) + "." + ctor
		}
		return fmt.Sprintf("func() (any, error) { return %s(), nil }", ctor)
	}
}

// genericExpr renders the constructor stub for one generic slot. Absent
// slots get the failing stub; present but non-newable arguments get none.
func genericExpr(p synth.PropertyDescriptor, arg *decl.TypeRef, slot int, imp *importSet) string {
	if arg == nil {
		return fmt.Sprintf("options.FailGenericSlot(%q, %d)", p.Name, slot)
	}
	return newExpr(*arg, imp)
}

func publicZeroArgCtor(t decl.TypeRef) string {
	for _, c := range t.Constructors {
		if c.Public && c.Params == 0 {
			return c.Name
		}
	}
	return ""
}

func capabilityExpr(ci *synth.CapabilityInterface, imp *importSet) string {
	if pkgPath, ok := splitFull(ci.FullName); ok && pkgPath != imp.current {
		return imp.qualify(pkgPath) + "." + ci.Name
	}
	return ci.Name
}

// typeExpr renders the Go syntax for a type reference inside the emitted
// package, registering imports as needed.
func typeExpr(t decl.TypeRef, imp *importSet) string {
	name := t.Name
	if isComposite(name) {
		registerCompositeImports(t, imp)
	} else if pkgPath, ok := splitFull(t.FullName); ok && pkgPath != imp.current {
		name = imp.qualify(pkgPath) + "." + t.Name
	}
	if t.Nullable {
		name = "*" + name
	}
	return name
}

func isComposite(name string) bool {
	return strings.HasPrefix(name, "[") || strings.HasPrefix(name, "map[")
}

// registerCompositeImports adds imports for foreign element types whose
// qualifier survives in a composite's source spelling. The import alias
// must match the qualifier the spelling uses, not the package basename.
func registerCompositeImports(t decl.TypeRef, imp *importSet) {
	for _, arg := range t.TypeArgs {
		if isComposite(arg.Name) {
			registerCompositeImports(arg, imp)
			continue
		}
		pkgPath, ok := splitFull(arg.FullName)
		if !ok || pkgPath == imp.current {
			continue
		}
		if q := spellingQualifier(t.Name, arg.Name); q != "" {
			imp.register(pkgPath, q)
		}
	}
}

// spellingQualifier extracts the package qualifier in front of elem inside
// a composite spelling, or "" when the element appears unqualified.
func spellingQualifier(spelling, elem string) string {
	i := strings.Index(spelling, "."+elem)
	if i <= 0 {
		return ""
	}
	j := i
	for j > 0 && isIdentChar(rune(spelling[j-1])) {
		j--
	}
	return spelling[j:i]
}

func isIdentChar(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// splitFull separates a fully-qualified type name into its package path.
// Names without a plausible import path report ok=false and stay
// unqualified.
func splitFull(fullName string) (string, bool) {
	i := strings.LastIndex(fullName, ".")
	if i <= 0 {
		return "", false
	}
	pkgPath := fullName[:i]
	if strings.Contains(pkgPath, "/") {
		return pkgPath, true
	}
	for _, r := range pkgPath {
		if r < 'a' || r > 'z' {
			return "", false
		}
	}
	return pkgPath, true
}

type importSet struct {
	current string
	byPath  map[string]string
}

func newImportSet(current string) *importSet {
	return &importSet{current: current, byPath: make(map[string]string)}
}

// force registers an import that the template always uses.
func (s *importSet) force(pkgPath string) {
	if _, ok := s.byPath[pkgPath]; !ok {
		s.byPath[pkgPath] = ""
	}
}

// qualify registers an import and returns the ident it is referenced by.
// A package registered earlier keeps its first ident for the whole file.
func (s *importSet) qualify(pkgPath string) string {
	base := path.Base(pkgPath)
	if cur, ok := s.byPath[pkgPath]; ok {
		if cur == "" {
			return base
		}
		return cur
	}
	alias := identFrom(base)
	s.register(pkgPath, alias)
	return alias
}

// register adds an import under an explicit ident. The alias is dropped
// from the import spec when it already matches the package basename.
func (s *importSet) register(pkgPath, ident string) {
	if _, ok := s.byPath[pkgPath]; ok {
		return
	}
	if ident == path.Base(pkgPath) {
		ident = ""
	}
	s.byPath[pkgPath] = ident
}

func (s *importSet) specs() (std, rest []importSpec) {
	for p, alias := range s.byPath {
		spec := importSpec{Alias: alias, Path: p}
		if strings.Contains(strings.SplitN(p, "/", 2)[0], ".") {
			rest = append(rest, spec)
		} else {
			std = append(std, spec)
		}
	}
	sort.Slice(std, func(i, j int) bool { return std[i].Path < std[j].Path })
	sort.Slice(rest, func(i, j int) bool { return rest[i].Path < rest[j].Path })
	return std, rest
}

// identFrom strips the characters an import ident cannot carry, so a path
// base like "yaml.v3" yields a usable alias.
func identFrom(base string) string {
	var b strings.Builder
	for _, r := range base {
		if r == '.' || r == '-' {
			continue
		}
		b.WriteRune(r)
	}
	if b.Len() == 0 {
		return "pkg"
	}
	return b.String()
}

var fileTemplate = template.Must(template.New("options_gen").Parse(fileTemplateText))

const fileTemplateText = `// Code generated by optionsgen {{.Version}}. DO NOT EDIT.

package {{.Package}}

import (
{{- range .StdImports}}
	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{- end}}
{{- if and .StdImports .Imports}}
{{end}}
{{- range .Imports}}
	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{- end}}
)
{{range .Descriptors}}
// {{.VarName}} describes the configurable properties of {{.TypeName}}.
var {{.VarName}} = options.TypeDescriptor{
	Name:     {{printf "%q" .TypeName}},
	FullName: {{printf "%q" .FullName}},
	Properties: []options.Property{
{{- range .Properties}}
		{
			Name:        {{printf "%q" .Name}},
			DisplayName: {{printf "%q" .DisplayName}},
{{- if .Description}}
			Description: {{printf "%q" .Description}},
{{- end}}
			Type:     {{printf "%q" .TypeName}},
			Required: {{.Required}},
			Newable:  {{.Newable}},
{{- if .NewExpr}}
			New: {{.NewExpr}},
{{- end}}
{{- if .GenericOneExpr}}
			NewGenericOne: {{.GenericOneExpr}},
{{- end}}
{{- if .GenericTwoExpr}}
			NewGenericTwo: {{.GenericTwoExpr}},
{{- end}}
		},
{{- end}}
	},
}
{{end}}
{{- range .Inits}}
func init() {
{{- range .Assigns}}
	{{.Var}}.Properties[{{.Index}}].Dispatch = {{.Func}}
{{- end}}
}
{{end}}
{{- range .Dispatch}}
// {{.FuncName}} routes {{.Property}} values to the first capability the
// handler implements.
func {{.FuncName}}(handler any, value any) error {
	p, _ := {{.Descriptor}}.Property({{printf "%q" .Property}})
{{- range .Slots}}
{{- if .Universal}}
	if h, ok := handler.(options.Executor); ok {
		return h.ExecuteProperty(p, value)
	}
{{- else}}
	if h, ok := handler.({{.TypeExpr}}); ok {
		return h.{{.Method}}(p.Name, value)
	}
{{- end}}
{{- end}}
	return options.UnresolvedDispatchError{Property: {{printf "%q" .Property}}, TypeName: {{printf "%q" .TypeName}}}
}
{{end}}`
