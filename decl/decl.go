// Package decl defines the declaration snapshot consumed by the synthesizer.
//
// A snapshot is a frontend-neutral view of the types a build produced: which
// declarations exist, how they nest into namespaces, what members they carry
// and which marker tags were attached to them. The scanner in internal/scan
// produces snapshots from Go source; tests build them by hand.
package decl

// Kind classifies how a declaration behaves when instantiated.
type Kind string

const (
	// KindValue covers numerics, booleans, strings and other types whose
	// zero value is directly usable.
	KindValue Kind = "value"
	// KindReference covers named types that are built through a constructor.
	KindReference Kind = "reference"
	// KindInterface covers interface declarations.
	KindInterface Kind = "interface"
	// KindEnum covers named types backed by a declared constant set.
	KindEnum Kind = "enum"
)

// Tag keys recognized on declarations and members.
const (
	TagConfig      = "config"
	TagSubclass    = "subclass"
	TagDispatcher  = "dispatcher"
	TagDisplayName = "displayName"
	TagDescription = "description"
)

// Tags holds the marker attributes attached to a declaration or member.
// A key may be present with an empty value; Has distinguishes presence
// from content.
type Tags map[string]string

// Has reports whether the key was attached at all, regardless of value.
func (t Tags) Has(key string) bool {
	_, ok := t[key]
	return ok
}

// Value returns the attribute value, or "" when the key is absent.
func (t Tags) Value(key string) string {
	return t[key]
}

// Lookup returns the attribute value and whether the key was present.
func (t Tags) Lookup(key string) (string, bool) {
	v, ok := t[key]
	return v, ok
}

// Constructor describes one constructor of a reference type.
type Constructor struct {
	Name   string `json:"name"`
	Public bool   `json:"public"`
	Params int    `json:"params"`
}

// TypeRef is a reference to a type as it appears in a member or type
// argument position. Name is the simple declared name, FullName the
// package-qualified one. Nullable marks an optional (pointer) usage of
// the referenced type.
type TypeRef struct {
	Name         string        `json:"name"`
	FullName     string        `json:"fullName"`
	Kind         Kind          `json:"kind"`
	Abstract     bool          `json:"abstract,omitempty"`
	Nullable     bool          `json:"nullable,omitempty"`
	TypeArgs     []TypeRef     `json:"typeArgs,omitempty"`
	Constructors []Constructor `json:"constructors,omitempty"`
}

// Unwrap strips a single level of nullability. A non-nullable reference
// is returned unchanged.
func (t TypeRef) Unwrap() TypeRef {
	if !t.Nullable {
		return t
	}
	u := t
	u.Nullable = false
	return u
}

// String renders the reference the way it was declared, with a pointer
// marker for nullable usages.
func (t TypeRef) String() string {
	if t.Nullable {
		return "*" + t.Name
	}
	return t.Name
}

// Member is a single field of a declaration.
type Member struct {
	Name      string  `json:"name"`
	Type      TypeRef `json:"type"`
	Tags      Tags    `json:"tags,omitempty"`
	Public    bool    `json:"public"`
	Static    bool    `json:"static,omitempty"`
	HasGetter bool    `json:"hasGetter"`
	HasSetter bool    `json:"hasSetter"`
}

// Type is a full declaration: its own type reference plus the tags,
// methods and members the frontend saw on it. Methods is only populated
// for interface declarations, in declaration order.
type Type struct {
	TypeRef
	Tags    Tags     `json:"tags,omitempty"`
	Methods []string `json:"methods,omitempty"`
	Members []Member `json:"members,omitempty"`
}

// Namespace is one level of the package hierarchy. Children hold nested
// namespaces in discovery order.
type Namespace struct {
	Name       string       `json:"name"`
	Path       string       `json:"path,omitempty"`
	ImportPath string       `json:"importPath,omitempty"`
	Types      []Type       `json:"types,omitempty"`
	Children   []*Namespace `json:"children,omitempty"`
}

// Snapshot is the root of a scanned declaration tree.
type Snapshot struct {
	Namespaces []*Namespace `json:"namespaces"`
}
