package synth

import "github.com/tenowg/optionsgen/decl"

// Role identifies the part a declaration plays in synthesis.
type Role string

const (
	RoleNone       Role = "none"
	RoleConfig     Role = "config"
	RoleSubtype    Role = "subtype"
	RoleDispatcher Role = "dispatcher"
)

// DefaultCapabilityMethod is the handler method assumed for capability
// interfaces that declare no methods of their own.
const DefaultCapabilityMethod = "HandleProperty"

// CapabilityInterface is a user-declared dispatcher capability. Method is
// the handler method generated dispatch code calls on it, taken from the
// interface's first declared method.
type CapabilityInterface struct {
	Name      string    `json:"name"`
	FullName  string    `json:"fullName"`
	Method    string    `json:"method"`
	Whitelist Whitelist `json:"whitelist,omitempty"`
}

// Classification is the outcome of classifying one declaration.
type Classification struct {
	Role       Role
	Capability *CapabilityInterface
}

// Classify determines the single role a declaration plays. A dispatcher
// marker takes priority over the other markers: when present it suppresses
// root and sub-type classification even if the declaration is not a valid
// capability interface.
func Classify(t decl.Type) Classification {
	if t.Tags.Has(decl.TagDispatcher) {
		if t.Kind != decl.KindInterface {
			return Classification{Role: RoleNone}
		}
		method := DefaultCapabilityMethod
		if len(t.Methods) > 0 {
			method = t.Methods[0]
		}
		return Classification{
			Role: RoleDispatcher,
			Capability: &CapabilityInterface{
				Name:      t.Name,
				FullName:  t.FullName,
				Method:    method,
				Whitelist: ParseWhitelist(t.Tags.Value(decl.TagDispatcher)),
			},
		}
	}
	if t.Tags.Has(decl.TagConfig) {
		return Classification{Role: RoleConfig}
	}
	if t.Tags.Has(decl.TagSubclass) {
		return Classification{Role: RoleSubtype}
	}
	return Classification{Role: RoleNone}
}
