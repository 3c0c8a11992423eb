package scan

import (
	"testing"

	"github.com/tenowg/optionsgen/decl"
	"github.com/tenowg/optionsgen/synth"
)

func scanDemo(t *testing.T) *decl.Snapshot {
	t.Helper()
	snap, err := Scan("testdata/src/demo")
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	return snap
}

func findNamespace(t *testing.T, ns *decl.Namespace, name string) *decl.Namespace {
	t.Helper()
	for _, child := range ns.Children {
		if child.Name == name {
			return child
		}
	}
	t.Fatalf("namespace %q not found under %q", name, ns.Name)
	return nil
}

func findType(t *testing.T, ns *decl.Namespace, name string) decl.Type {
	t.Helper()
	for _, typ := range ns.Types {
		if typ.Name == name {
			return typ
		}
	}
	t.Fatalf("type %q not found in namespace %q", name, ns.Name)
	return decl.Type{}
}

func TestScanNamespaceTree(t *testing.T) {
	snap := scanDemo(t)

	if len(snap.Namespaces) != 1 {
		t.Fatalf("expected a single root namespace, got %d", len(snap.Namespaces))
	}
	root := snap.Namespaces[0]
	if root.Name != "demo" {
		t.Errorf("root namespace name = %q, want 'demo'", root.Name)
	}
	if len(root.Types) != 0 {
		t.Errorf("root directory has no Go files, got %d types", len(root.Types))
	}

	cfg := findNamespace(t, root, "cfg")
	if cfg.ImportPath != "example.com/demo/cfg" {
		t.Errorf("cfg import path = %q", cfg.ImportPath)
	}
	if cfg.Path != "cfg" {
		t.Errorf("cfg path = %q", cfg.Path)
	}
	if len(cfg.Types) != 4 {
		t.Errorf("expected 4 types in cfg, got %d", len(cfg.Types))
	}

	ui := findNamespace(t, cfg, "ui")
	if ui.ImportPath != "example.com/demo/cfg/ui" {
		t.Errorf("ui import path = %q", ui.ImportPath)
	}
	if len(ui.Types) != 3 {
		t.Errorf("expected 3 types in ui, got %d", len(ui.Types))
	}
}

func TestScanTypeKinds(t *testing.T) {
	snap := scanDemo(t)
	cfg := findNamespace(t, snap.Namespaces[0], "cfg")
	ui := findNamespace(t, cfg, "ui")

	server := findType(t, cfg, "ServerOptions")
	if server.Kind != decl.KindReference {
		t.Errorf("ServerOptions kind = %q, want reference", server.Kind)
	}
	if server.FullName != "example.com/demo/cfg.ServerOptions" {
		t.Errorf("ServerOptions full name = %q", server.FullName)
	}

	handler := findType(t, cfg, "IntHandler")
	if handler.Kind != decl.KindInterface {
		t.Errorf("IntHandler kind = %q, want interface", handler.Kind)
	}
	if len(handler.Methods) != 1 || handler.Methods[0] != "HandleInt" {
		t.Errorf("IntHandler methods = %v", handler.Methods)
	}

	theme := findType(t, ui, "ThemeKind")
	if theme.Kind != decl.KindEnum {
		t.Errorf("ThemeKind kind = %q, want enum (has declared constants)", theme.Kind)
	}

	endpoint := findType(t, cfg, "Endpoint")
	if len(endpoint.Constructors) != 1 {
		t.Fatalf("Endpoint constructors = %v", endpoint.Constructors)
	}
	ctor := endpoint.Constructors[0]
	if ctor.Name != "NewEndpoint" || !ctor.Public || ctor.Params != 0 {
		t.Errorf("NewEndpoint constructor mismatch: %+v", ctor)
	}
}

func TestScanMembers(t *testing.T) {
	snap := scanDemo(t)
	cfg := findNamespace(t, snap.Namespaces[0], "cfg")
	server := findType(t, cfg, "ServerOptions")

	if len(server.Members) != 7 {
		t.Fatalf("expected 7 members on ServerOptions, got %d", len(server.Members))
	}

	port := server.Members[0]
	if port.Name != "Port" || !port.Public || !port.HasGetter || !port.HasSetter {
		t.Errorf("Port member mismatch: %+v", port)
	}
	if port.Tags.Value(decl.TagDisplayName) != "Listen port" {
		t.Errorf("Port display name = %q", port.Tags.Value(decl.TagDisplayName))
	}
	if port.Tags.Value(decl.TagDescription) != "TCP port the server binds to" {
		t.Errorf("Port description = %q", port.Tags.Value(decl.TagDescription))
	}
	if port.Type.Kind != decl.KindValue || port.Type.Name != "int" {
		t.Errorf("Port type = %+v", port.Type)
	}

	grace := server.Members[2]
	if !grace.Type.Nullable {
		t.Error("Grace should be nullable (pointer field)")
	}
	if grace.Type.FullName != "time.Duration" || grace.Type.Kind != decl.KindValue {
		t.Errorf("Grace type = %+v", grace.Type)
	}

	endpoints := server.Members[3]
	if endpoints.Type.Name != "[]Endpoint" || endpoints.Type.Kind != decl.KindValue {
		t.Errorf("Endpoints type = %+v", endpoints.Type)
	}
	if len(endpoints.Type.TypeArgs) != 1 {
		t.Fatalf("Endpoints type args = %v", endpoints.Type.TypeArgs)
	}
	elem := endpoints.Type.TypeArgs[0]
	if elem.Name != "Endpoint" || elem.Kind != decl.KindReference || len(elem.Constructors) != 1 {
		t.Errorf("Endpoints element = %+v", elem)
	}

	limits := server.Members[4]
	if limits.Type.Name != "map[string]int" || len(limits.Type.TypeArgs) != 2 {
		t.Errorf("Limits type = %+v", limits.Type)
	}

	fallback := server.Members[5]
	if !fallback.Type.Nullable || fallback.Type.Name != "Endpoint" {
		t.Errorf("Fallback type = %+v", fallback.Type)
	}

	private := server.Members[6]
	if private.Public || private.HasGetter || private.HasSetter {
		t.Errorf("unexported member should not be public: %+v", private)
	}
}

func TestScanMarkers(t *testing.T) {
	snap := scanDemo(t)
	cfg := findNamespace(t, snap.Namespaces[0], "cfg")

	server := findType(t, cfg, "ServerOptions")
	if !server.Tags.Has(decl.TagConfig) {
		t.Error("ServerOptions should carry the config tag")
	}

	endpoint := findType(t, cfg, "Endpoint")
	if !endpoint.Tags.Has(decl.TagSubclass) {
		t.Error("Endpoint should carry the subclass tag")
	}

	handler := findType(t, cfg, "IntHandler")
	if got := handler.Tags.Value(decl.TagDispatcher); got != "int,Enum" {
		t.Errorf("IntHandler whitelist = %q", got)
	}

	catchAll := findType(t, cfg, "AnyHandler")
	v, ok := catchAll.Tags.Lookup(decl.TagDispatcher)
	if !ok || v != "" {
		t.Errorf("AnyHandler dispatcher tag = %q, %v; want present and empty", v, ok)
	}
}

func TestScanSynthIntegration(t *testing.T) {
	snap := scanDemo(t)
	res := synth.New(nil).Run(snap)

	if len(res.Roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(res.Roots))
	}
	if res.Roots[0].Name != "ServerOptions" || res.Roots[1].Name != "UIOptions" {
		t.Errorf("root order = %s, %s", res.Roots[0].Name, res.Roots[1].Name)
	}
	if len(res.SubTypes) != 1 || res.SubTypes[0].Name != "Endpoint" {
		t.Fatalf("sub types = %+v", res.SubTypes)
	}
	if len(res.Capabilities) != 3 {
		t.Fatalf("expected 3 capabilities, got %d", len(res.Capabilities))
	}

	server := res.Roots[0]
	if len(server.Properties) != 6 {
		t.Errorf("ServerOptions properties = %d, want 6 (unexported field dropped)", len(server.Properties))
	}

	// int matches IntHandler's whitelist; AnyHandler catches everything.
	portChain := server.Chains["Port"]
	if len(portChain.Slots) != 3 {
		t.Fatalf("Port chain slots = %d", len(portChain.Slots))
	}
	if !portChain.Slots[0].Universal {
		t.Error("universal slot must lead the chain")
	}
	if portChain.Slots[1].Capability.Name != "IntHandler" || portChain.Slots[2].Capability.Name != "AnyHandler" {
		t.Errorf("Port chain capabilities: %s, %s",
			portChain.Slots[1].Capability.Name, portChain.Slots[2].Capability.Name)
	}

	hostChain := server.Chains["Host"]
	if len(hostChain.Slots) != 2 || hostChain.Slots[1].Capability.Name != "AnyHandler" {
		t.Errorf("Host chain = %+v", hostChain.Slots)
	}

	// ThemeKind is enum-kind, so both Enum whitelists accept it.
	themeChain := res.Roots[1].Chains["Theme"]
	if len(themeChain.Slots) != 4 {
		t.Fatalf("Theme chain slots = %d", len(themeChain.Slots))
	}
	names := []string{
		themeChain.Slots[1].Capability.Name,
		themeChain.Slots[2].Capability.Name,
		themeChain.Slots[3].Capability.Name,
	}
	want := []string{"IntHandler", "AnyHandler", "ThemeHandler"}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Theme chain slot %d = %q, want %q", i+1, names[i], want[i])
		}
	}
}
