package decl

import "testing"

func TestTags(t *testing.T) {
	tags := Tags{
		TagConfig:      "",
		TagDisplayName: "Listen port",
	}

	if !tags.Has(TagConfig) {
		t.Error("expected config tag to be present even with empty value")
	}
	if tags.Has(TagDispatcher) {
		t.Error("dispatcher tag should not be present")
	}
	if got := tags.Value(TagDisplayName); got != "Listen port" {
		t.Errorf("expected display name 'Listen port', got %q", got)
	}
	if got := tags.Value(TagDescription); got != "" {
		t.Errorf("expected empty value for absent key, got %q", got)
	}

	v, ok := tags.Lookup(TagConfig)
	if !ok || v != "" {
		t.Errorf("Lookup(config) = %q, %v; want \"\", true", v, ok)
	}
	if _, ok := tags.Lookup(TagSubclass); ok {
		t.Error("Lookup should report absent keys")
	}

	var none Tags
	if none.Has(TagConfig) {
		t.Error("nil Tags should report nothing present")
	}
}

func TestTypeRefUnwrap(t *testing.T) {
	inner := TypeRef{Name: "Duration", FullName: "time.Duration", Kind: KindValue}
	opt := inner
	opt.Nullable = true

	u := opt.Unwrap()
	if u.Nullable {
		t.Error("Unwrap should clear the nullable flag")
	}
	if u.Name != "Duration" || u.Kind != KindValue {
		t.Errorf("Unwrap changed identity: %+v", u)
	}
	if !opt.Nullable {
		t.Error("Unwrap must not mutate the receiver")
	}

	// Unwrapping a plain reference is the identity.
	again := u.Unwrap()
	if again.Nullable || again.Name != u.Name || again.Kind != u.Kind {
		t.Errorf("Unwrap of non-nullable ref changed it: %+v", again)
	}
}

func TestTypeRefString(t *testing.T) {
	tests := []struct {
		ref  TypeRef
		want string
	}{
		{TypeRef{Name: "int", Kind: KindValue}, "int"},
		{TypeRef{Name: "Endpoint", Kind: KindReference, Nullable: true}, "*Endpoint"},
		{TypeRef{Name: "[]string", Kind: KindValue}, "[]string"},
	}
	for _, tt := range tests {
		if got := tt.ref.String(); got != tt.want {
			t.Errorf("String(%+v) = %q, want %q", tt.ref, got, tt.want)
		}
	}
}
