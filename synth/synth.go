// Package synth turns a declaration snapshot into the descriptor bundles
// and dispatch chains that the emitters render.
//
// Classification, newability, whitelist matching, property building and
// chain building are pure functions over snapshot values. The Synthesizer
// only walks the namespace tree, applies them and assembles the result.
package synth

import (
	"io"
	"log/slog"

	"github.com/tenowg/optionsgen/decl"
)

// ConfigTypeBundle aggregates everything synthesized for one annotated
// type. Chains is keyed by property name and only populated for roots;
// Capabilities lists the capabilities its chains reference, in discovery
// order.
type ConfigTypeBundle struct {
	Name       string `json:"name"`
	FullName   string `json:"fullName"`
	Package    string `json:"package"`
	Dir        string `json:"dir,omitempty"`
	ImportPath string `json:"importPath,omitempty"`

	Properties   []PropertyDescriptor     `json:"properties"`
	Capabilities []*CapabilityInterface   `json:"capabilities,omitempty"`
	Chains       map[string]DispatchChain `json:"chains,omitempty"`
}

// Result is the complete synthesis output for one snapshot.
type Result struct {
	Roots        []ConfigTypeBundle     `json:"roots"`
	SubTypes     []ConfigTypeBundle     `json:"subTypes,omitempty"`
	Capabilities []*CapabilityInterface `json:"capabilities,omitempty"`
}

// Synthesizer drives classification and assembly over a snapshot.
type Synthesizer struct {
	logger *slog.Logger
}

// New returns a Synthesizer. A nil logger discards all notices.
func New(logger *slog.Logger) *Synthesizer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Synthesizer{logger: logger}
}

type classified struct {
	typ decl.Type
	ns  *decl.Namespace
}

// Run synthesizes descriptor bundles for every annotated type in the
// snapshot. Capabilities are collected across the whole snapshot before
// any chain is built, so chains see them in discovery order regardless of
// which namespace declared them.
func (s *Synthesizer) Run(snap *decl.Snapshot) *Result {
	res := &Result{}
	var roots, subs []classified

	for _, ns := range snap.Namespaces {
		s.collect(ns, &roots, &subs, res)
	}

	for _, c := range roots {
		res.Roots = append(res.Roots, s.bundle(c, res.Capabilities, true))
	}
	for _, c := range subs {
		res.SubTypes = append(res.SubTypes, s.bundle(c, res.Capabilities, false))
	}
	return res
}

// collect walks the namespace tree depth first in declaration order. This
// is the only recursion in the synthesizer.
func (s *Synthesizer) collect(ns *decl.Namespace, roots, subs *[]classified, res *Result) {
	for _, t := range ns.Types {
		cl := Classify(t)

		if t.Tags.Has(decl.TagDispatcher) && t.Kind != decl.KindInterface {
			s.logger.Warn("dispatcher marker on non-interface declaration ignored", "type", t.FullName)
		}
		switch cl.Role {
		case RoleDispatcher:
			if t.Tags.Has(decl.TagConfig) || t.Tags.Has(decl.TagSubclass) {
				s.logger.Warn("declaration carries multiple role markers, capability takes priority", "type", t.FullName)
			}
			res.Capabilities = append(res.Capabilities, cl.Capability)
		case RoleConfig:
			if t.Tags.Has(decl.TagSubclass) {
				s.logger.Warn("declaration carries multiple role markers, root takes priority", "type", t.FullName)
			}
			*roots = append(*roots, classified{typ: t, ns: ns})
		case RoleSubtype:
			*subs = append(*subs, classified{typ: t, ns: ns})
		}
	}
	for _, child := range ns.Children {
		s.collect(child, roots, subs, res)
	}
}

func (s *Synthesizer) bundle(c classified, caps []*CapabilityInterface, withChains bool) ConfigTypeBundle {
	b := ConfigTypeBundle{
		Name:       c.typ.Name,
		FullName:   c.typ.FullName,
		Package:    c.ns.Name,
		Dir:        c.ns.Path,
		ImportPath: c.ns.ImportPath,
	}

	seen := make(map[string]bool, len(c.typ.Members))
	for _, m := range c.typ.Members {
		p, ok := BuildProperty(m)
		if !ok {
			if m.Public && !m.Static {
				s.logger.Warn("member without a full accessor pair skipped", "type", c.typ.Name, "member", m.Name)
			}
			continue
		}
		if seen[p.Name] {
			s.logger.Warn("duplicate member name skipped", "type", c.typ.Name, "member", p.Name)
			continue
		}
		seen[p.Name] = true
		b.Properties = append(b.Properties, p)
	}

	if !withChains {
		return b
	}

	b.Chains = make(map[string]DispatchChain, len(b.Properties))
	used := make(map[string]bool)
	for _, p := range b.Properties {
		ch := BuildChain(p, caps)
		b.Chains[p.Name] = ch
		for _, slot := range ch.Slots {
			if slot.Capability != nil {
				used[slot.Capability.FullName] = true
			}
		}
	}
	for _, ci := range caps {
		if used[ci.FullName] {
			b.Capabilities = append(b.Capabilities, ci)
		}
	}
	return b
}
