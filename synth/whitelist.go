package synth

import (
	"strings"

	"github.com/tenowg/optionsgen/decl"
)

// EnumToken is the reserved whitelist entry that matches any enum-kind
// type instead of a type named "Enum".
const EnumToken = "Enum"

// Whitelist is the parsed allow-list of a dispatcher capability. An empty
// whitelist accepts every type.
type Whitelist []string

// ParseWhitelist splits a raw whitelist attribute into entries. Entries
// are trimmed and empty ones dropped, so "int, ,Enum" parses the same as
// "int,Enum".
func ParseWhitelist(raw string) Whitelist {
	var w Whitelist
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		w = append(w, part)
	}
	return w
}

// Allows reports whether the capability accepts the given declared type.
// Matching unwraps one level of nullability and compares simple names
// case insensitively.
func (w Whitelist) Allows(t decl.TypeRef) bool {
	if len(w) == 0 {
		return true
	}
	u := t.Unwrap()
	for _, entry := range w {
		if strings.EqualFold(entry, EnumToken) && u.Kind == decl.KindEnum {
			return true
		}
		if strings.EqualFold(entry, u.Name) {
			return true
		}
	}
	return false
}
