package synth

import (
	"strings"

	"github.com/tenowg/optionsgen/decl"
)

// IsNewable reports whether a declared type can be default-constructed.
//
// Strings are never newable, however the frontend classified them. Value
// and enum kinds always are. Interface kinds and abstract references never
// are. A concrete reference is newable only when it carries at least one
// public zero-argument constructor.
func IsNewable(t decl.TypeRef) bool {
	if strings.EqualFold(t.Name, "string") {
		return false
	}
	switch t.Kind {
	case decl.KindValue, decl.KindEnum:
		return true
	case decl.KindInterface:
		return false
	}
	if t.Abstract {
		return false
	}
	for _, c := range t.Constructors {
		if c.Public && c.Params == 0 {
			return true
		}
	}
	return false
}
