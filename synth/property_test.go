package synth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tenowg/optionsgen/decl"
	"github.com/tenowg/optionsgen/synth"
)

func member(name string, ref decl.TypeRef) decl.Member {
	return decl.Member{
		Name:      name,
		Type:      ref,
		Public:    true,
		HasGetter: true,
		HasSetter: true,
	}
}

func TestBuildPropertyEligibility(t *testing.T) {
	intRef := decl.TypeRef{Name: "int", Kind: decl.KindValue}

	tests := []struct {
		name   string
		mutate func(m *decl.Member)
		ok     bool
	}{
		{name: "plain public member", mutate: func(m *decl.Member) {}, ok: true},
		{name: "unexported member", mutate: func(m *decl.Member) { m.Public = false }, ok: false},
		{name: "static member", mutate: func(m *decl.Member) { m.Static = true }, ok: false},
		{name: "missing getter", mutate: func(m *decl.Member) { m.HasGetter = false }, ok: false},
		{name: "missing setter", mutate: func(m *decl.Member) { m.HasSetter = false }, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := member("Port", intRef)
			tt.mutate(&m)
			_, ok := synth.BuildProperty(m)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestBuildPropertyDisplayMetadata(t *testing.T) {
	m := member("Port", decl.TypeRef{Name: "int", Kind: decl.KindValue})
	m.Tags = decl.Tags{
		decl.TagDisplayName: "Listen port",
		decl.TagDescription: "TCP port the server binds to",
	}

	p, ok := synth.BuildProperty(m)
	assert.True(t, ok)
	assert.Equal(t, "Port", p.Name)
	assert.Equal(t, "Listen port", p.DisplayName)
	assert.Equal(t, "TCP port the server binds to", p.Description)
	assert.True(t, p.Required)
	assert.True(t, p.Newable)
}

func TestBuildPropertyDisplayNameDefaultsToMemberName(t *testing.T) {
	p, ok := synth.BuildProperty(member("Host", decl.TypeRef{Name: "string", Kind: decl.KindValue}))
	assert.True(t, ok)
	assert.Equal(t, "Host", p.DisplayName)
	assert.Empty(t, p.Description)
	assert.False(t, p.Newable, "strings are not newable")
}

func TestBuildPropertyNullableIsOptional(t *testing.T) {
	p, ok := synth.BuildProperty(member("Timeout", decl.TypeRef{
		Name: "Duration", FullName: "time.Duration", Kind: decl.KindValue, Nullable: true,
	}))
	assert.True(t, ok)
	assert.False(t, p.Required)
	assert.True(t, p.Newable)
}

func TestBuildPropertySingleGenericArg(t *testing.T) {
	listOfInt := decl.TypeRef{
		Name:     "List",
		Kind:     decl.KindReference,
		TypeArgs: []decl.TypeRef{{Name: "Int32", Kind: decl.KindValue}},
	}

	p, ok := synth.BuildProperty(member("Ports", listOfInt))
	assert.True(t, ok)
	assert.NotNil(t, p.GenericOne)
	assert.Equal(t, "Int32", p.GenericOne.Name)
	assert.Nil(t, p.GenericTwo)
	assert.True(t, p.GenericOneNewable)
	assert.False(t, p.Newable, "the list itself has no zero-arg constructor here")
	assert.False(t, p.GenericTwoNewable, "the absent slot follows the outer type")
}

func TestBuildPropertyTwoGenericArgs(t *testing.T) {
	dict := decl.TypeRef{
		Name: "Dictionary",
		Kind: decl.KindReference,
		TypeArgs: []decl.TypeRef{
			{Name: "string", Kind: decl.KindValue},
			{Name: "Endpoint", Kind: decl.KindReference, Constructors: []decl.Constructor{
				{Name: "NewEndpoint", Public: true, Params: 0},
			}},
		},
		Constructors: []decl.Constructor{{Name: "NewDictionary", Public: true, Params: 0}},
	}

	p, ok := synth.BuildProperty(member("Endpoints", dict))
	assert.True(t, ok)
	assert.Equal(t, "string", p.GenericOne.Name)
	assert.Equal(t, "Endpoint", p.GenericTwo.Name)
	assert.True(t, p.Newable)
	assert.False(t, p.GenericOneNewable, "strings stay excluded in arg position")
	assert.True(t, p.GenericTwoNewable)
}

func TestBuildPropertyAbsentSlotsFollowOuterNewability(t *testing.T) {
	p, ok := synth.BuildProperty(member("Port", decl.TypeRef{Name: "int", Kind: decl.KindValue}))
	assert.True(t, ok)
	assert.Nil(t, p.GenericOne)
	assert.Nil(t, p.GenericTwo)
	assert.True(t, p.GenericOneNewable, "absent slots report the outer type's newability")
	assert.True(t, p.GenericTwoNewable)

	p, ok = synth.BuildProperty(member("Host", decl.TypeRef{Name: "string", Kind: decl.KindValue}))
	assert.True(t, ok)
	assert.False(t, p.GenericOneNewable)
	assert.False(t, p.GenericTwoNewable)
}

func TestBuildPropertyExtraGenericArgsIgnored(t *testing.T) {
	triple := decl.TypeRef{
		Name: "Triple",
		Kind: decl.KindReference,
		TypeArgs: []decl.TypeRef{
			{Name: "int", Kind: decl.KindValue},
			{Name: "string", Kind: decl.KindValue},
			{Name: "bool", Kind: decl.KindValue},
		},
	}

	p, ok := synth.BuildProperty(member("Extras", triple))
	assert.True(t, ok)
	assert.Equal(t, "int", p.GenericOne.Name)
	assert.Equal(t, "string", p.GenericTwo.Name)
}
