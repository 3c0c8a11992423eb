// Package options is the runtime contract between generated descriptor
// tables and the applications that consume them.
//
// The optionsgen tool emits one TypeDescriptor per annotated configuration
// type. Each Property in a descriptor carries display metadata together
// with constructor stubs and a dispatch function that routes a property
// value to the first capability its handler implements.
package options

// Property describes one settable property of a configuration type.
//
// The constructor stubs follow the declared shape of the property type:
// New is nil when the type cannot be default-constructed, NewGenericOne
// and NewGenericTwo are nil when the matching type argument exists but is
// not constructible, and are failing stubs (see FailGenericSlot) when the
// declared type has no argument in that slot.
type Property struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type"`
	Required    bool   `json:"required"`
	Newable     bool   `json:"newable"`

	New           func() (any, error)                `json:"-"`
	NewGenericOne func() (any, error)                `json:"-"`
	NewGenericTwo func() (any, error)                `json:"-"`
	Dispatch      func(handler any, value any) error `json:"-"`
}

// TypeDescriptor is the generated table for one configuration type.
type TypeDescriptor struct {
	Name       string     `json:"name"`
	FullName   string     `json:"fullName"`
	Properties []Property `json:"properties"`
}

// Property returns the named property, in the order the source declared it.
func (d TypeDescriptor) Property(name string) (Property, bool) {
	for _, p := range d.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

// Executor is the universal property handler. A handler implementing
// Executor receives every property ahead of any narrower capability in
// the generated dispatch chain.
type Executor interface {
	ExecuteProperty(p Property, value any) error
}

// FailGenericSlot returns a constructor stub for a generic slot the
// property's declared type does not have. Calling the stub always fails
// with UnsupportedGenericSlotError.
func FailGenericSlot(property string, slot int) func() (any, error) {
	return func() (any, error) {
		return nil, UnsupportedGenericSlotError{Property: property, Slot: slot}
	}
}
