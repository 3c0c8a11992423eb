package synth_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tenowg/optionsgen/decl"
	"github.com/tenowg/optionsgen/options"
	"github.com/tenowg/optionsgen/synth"
)

func TestBuildChainOrder(t *testing.T) {
	intOnly := &synth.CapabilityInterface{Name: "IntHandler", Method: "HandleInt", Whitelist: synth.Whitelist{"Int32"}}
	catchAll := &synth.CapabilityInterface{Name: "AnyHandler", Method: "HandleAny"}
	caps := []*synth.CapabilityInterface{intOnly, catchAll}

	intProp := synth.PropertyDescriptor{Name: "Port", Type: decl.TypeRef{Name: "Int32", Kind: decl.KindValue}}
	stringProp := synth.PropertyDescriptor{Name: "Host", Type: decl.TypeRef{Name: "String", Kind: decl.KindValue}}

	ch := synth.BuildChain(intProp, caps)
	if assert.Len(t, ch.Slots, 3) {
		assert.True(t, ch.Slots[0].Universal, "universal executor always leads the chain")
		assert.Same(t, intOnly, ch.Slots[1].Capability)
		assert.Same(t, catchAll, ch.Slots[2].Capability)
	}

	ch = synth.BuildChain(stringProp, caps)
	if assert.Len(t, ch.Slots, 2) {
		assert.True(t, ch.Slots[0].Universal)
		assert.Same(t, catchAll, ch.Slots[1].Capability, "whitelist filtering keeps discovery order")
	}
}

func TestBuildChainWithoutCapabilities(t *testing.T) {
	p := synth.PropertyDescriptor{Name: "Port", Type: decl.TypeRef{Name: "int", Kind: decl.KindValue}}

	ch := synth.BuildChain(p, nil)
	if assert.Len(t, ch.Slots, 1, "the chain is never empty") {
		assert.True(t, ch.Slots[0].Universal)
	}
	assert.Equal(t, "Port", ch.Property)
	assert.Equal(t, "int", ch.TypeName)
}

func TestResolveFirstMatchWins(t *testing.T) {
	intOnly := &synth.CapabilityInterface{Name: "IntHandler", Method: "HandleInt", Whitelist: synth.Whitelist{"int"}}
	catchAll := &synth.CapabilityInterface{Name: "AnyHandler", Method: "HandleAny"}
	p := synth.PropertyDescriptor{Name: "Port", Type: decl.TypeRef{Name: "int", Kind: decl.KindValue}}
	ch := synth.BuildChain(p, []*synth.CapabilityInterface{intOnly, catchAll})

	slot, err := ch.Resolve(func(s synth.ChainSlot) bool { return true })
	assert.NoError(t, err)
	assert.True(t, slot.Universal, "an available universal slot wins outright")

	slot, err = ch.Resolve(func(s synth.ChainSlot) bool { return !s.Universal })
	assert.NoError(t, err)
	assert.Same(t, intOnly, slot.Capability, "later slots only fire when earlier ones are unavailable")

	slot, err = ch.Resolve(func(s synth.ChainSlot) bool { return s.Capability == catchAll })
	assert.NoError(t, err)
	assert.Same(t, catchAll, slot.Capability)
}

func TestResolveUnresolved(t *testing.T) {
	p := synth.PropertyDescriptor{Name: "Theme", Type: decl.TypeRef{Name: "ThemeKind", Kind: decl.KindEnum, Nullable: true}}
	ch := synth.BuildChain(p, nil)

	_, err := ch.Resolve(func(synth.ChainSlot) bool { return false })
	assert.Error(t, err)

	var unresolved options.UnresolvedDispatchError
	assert.True(t, errors.As(err, &unresolved))
	assert.Equal(t, "Theme", unresolved.Property)
	assert.Equal(t, "*ThemeKind", unresolved.TypeName)
}
