package scan

import (
	"go/ast"
	"regexp"
	"strings"

	"github.com/tenowg/optionsgen/decl"
)

// markerPattern matches: optionsgen:<directive> [key="value" ...]
var markerPattern = regexp.MustCompile(`^optionsgen:(\w+)\s*(.*)$`)

// attrPattern matches one key="value" attribute.
var attrPattern = regexp.MustCompile(`(\w+)\s*=\s*"([^"]*)"`)

// parseMarkers extracts optionsgen marker comments from a doc comment
// group into tags. Unknown directives are ignored.
func parseMarkers(doc *ast.CommentGroup) decl.Tags {
	if doc == nil {
		return nil
	}

	var tags decl.Tags
	set := func(key, value string) {
		if tags == nil {
			tags = make(decl.Tags)
		}
		tags[key] = value
	}

	for _, comment := range doc.List {
		text := strings.TrimSpace(strings.TrimPrefix(comment.Text, "//"))
		text = strings.TrimSpace(strings.TrimPrefix(text, "/*"))
		text = strings.TrimSpace(strings.TrimSuffix(text, "*/"))

		matches := markerPattern.FindStringSubmatch(text)
		if matches == nil {
			continue
		}
		directive, rest := matches[1], matches[2]
		attrs := parseAttrs(rest)

		switch directive {
		case "config":
			set(decl.TagConfig, "")
		case "subclass":
			set(decl.TagSubclass, "")
		case "dispatcher":
			// The tag is present even without a whitelist attribute; an
			// empty whitelist is a catch-all.
			set(decl.TagDispatcher, attrs["whitelist"])
		case "display":
			if v, ok := attrs["name"]; ok {
				set(decl.TagDisplayName, v)
			}
			if v, ok := attrs["description"]; ok {
				set(decl.TagDescription, v)
			}
		}
	}
	return tags
}

func parseAttrs(s string) map[string]string {
	attrs := make(map[string]string)
	for _, m := range attrPattern.FindAllStringSubmatch(s, -1) {
		attrs[m[1]] = m[2]
	}
	return attrs
}
