package synth

import "github.com/tenowg/optionsgen/options"

// ChainSlot is one candidate target in a dispatch chain. A universal slot
// routes through options.Executor; every other slot carries the capability
// to try.
type ChainSlot struct {
	Universal  bool                 `json:"universal,omitempty"`
	Capability *CapabilityInterface `json:"capability,omitempty"`
}

// DispatchChain is the ordered fallback chain for one property.
type DispatchChain struct {
	Property string      `json:"property"`
	TypeName string      `json:"typeName"`
	Slots    []ChainSlot `json:"slots"`
}

// BuildChain assembles the chain for a property: the universal executor
// first, then every capability whose whitelist accepts the property's
// declared type, in discovery order. The chain is never empty.
func BuildChain(p PropertyDescriptor, caps []*CapabilityInterface) DispatchChain {
	ch := DispatchChain{
		Property: p.Name,
		TypeName: p.Type.String(),
		Slots:    []ChainSlot{{Universal: true}},
	}
	for _, c := range caps {
		if c.Whitelist.Allows(p.Type) {
			ch.Slots = append(ch.Slots, ChainSlot{Capability: c})
		}
	}
	return ch
}

// Resolve walks the chain in order and returns the first slot the handler
// can serve, as judged by available. When no slot is available the chain
// terminates in an UnresolvedDispatchError.
func (c DispatchChain) Resolve(available func(ChainSlot) bool) (ChainSlot, error) {
	for _, s := range c.Slots {
		if available(s) {
			return s, nil
		}
	}
	return ChainSlot{}, options.UnresolvedDispatchError{Property: c.Property, TypeName: c.TypeName}
}
