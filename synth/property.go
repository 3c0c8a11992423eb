package synth

import "github.com/tenowg/optionsgen/decl"

// PropertyDescriptor is the synthesized metadata for one configuration
// property.
type PropertyDescriptor struct {
	Name        string       `json:"name"`
	DisplayName string       `json:"displayName"`
	Description string       `json:"description,omitempty"`
	Type        decl.TypeRef `json:"type"`
	Required    bool         `json:"required"`

	GenericOne *decl.TypeRef `json:"genericOne,omitempty"`
	GenericTwo *decl.TypeRef `json:"genericTwo,omitempty"`

	Newable           bool `json:"newable"`
	GenericOneNewable bool `json:"genericOneNewable"`
	GenericTwoNewable bool `json:"genericTwoNewable"`
}

// BuildProperty synthesizes the descriptor for one member. ok is false when
// the member is not part of the configuration surface: unexported, static,
// or missing one of its accessors.
//
// Only the first two type arguments of the declared type are captured. A
// generic slot the declared type does not have reports the newability of
// the declared type itself; runtime stubs emitted for such slots still fail
// when invoked.
func BuildProperty(m decl.Member) (PropertyDescriptor, bool) {
	if !m.Public || m.Static || !m.HasGetter || !m.HasSetter {
		return PropertyDescriptor{}, false
	}

	p := PropertyDescriptor{
		Name:        m.Name,
		DisplayName: m.Name,
		Description: m.Tags.Value(decl.TagDescription),
		Type:        m.Type,
		Required:    !m.Type.Nullable,
		Newable:     IsNewable(m.Type),
	}
	if v := m.Tags.Value(decl.TagDisplayName); v != "" {
		p.DisplayName = v
	}

	p.GenericOneNewable = p.Newable
	p.GenericTwoNewable = p.Newable
	if len(m.Type.TypeArgs) > 0 {
		arg := m.Type.TypeArgs[0]
		p.GenericOne = &arg
		p.GenericOneNewable = IsNewable(arg)
	}
	if len(m.Type.TypeArgs) > 1 {
		arg := m.Type.TypeArgs[1]
		p.GenericTwo = &arg
		p.GenericTwoNewable = IsNewable(arg)
	}
	return p, true
}
