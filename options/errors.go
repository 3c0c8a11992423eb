package options

import "fmt"

// UnresolvedDispatchError reports that a property value reached the end of
// its dispatch chain without any capability accepting it, the universal
// executor included.
type UnresolvedDispatchError struct {
	Property string `json:"property"`
	TypeName string `json:"typeName"`
}

func (e UnresolvedDispatchError) Error() string {
	return fmt.Sprintf("no dispatch target for property %q of type %s", e.Property, e.TypeName)
}

// UnsupportedGenericSlotError reports an instantiation attempt on a generic
// slot that the property's declared type does not have.
type UnsupportedGenericSlotError struct {
	Property string `json:"property"`
	Slot     int    `json:"slot"`
}

func (e UnsupportedGenericSlotError) Error() string {
	return fmt.Sprintf("property %q has no generic argument in slot %d", e.Property, e.Slot)
}
