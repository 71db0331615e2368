package options

import (
	"strings"
	"unicode/utf8"

	"github.com/optdoc/optdoc/internal/nix"
)

// rawPrefix marks descriptors that fell back to a textual rendering of
// the raw expression, so consumers can tell recognized canonical forms
// from best-effort ones.
const rawPrefix = "raw:"

const maxRawDescriptor = 72

// primitiveTypes maps leaf constructor names from the NixOS types
// namespace to their canonical display names.
var primitiveTypes = map[string]string{
	"bool":       "boolean",
	"str":        "string",
	"string":     "string",
	"int":        "integer",
	"integer":    "integer",
	"float":      "float",
	"number":     "number",
	"path":       "path",
	"package":    "package",
	"port":       "port number",
	"lines":      "lines",
	"attrs":      "attribute set",
	"anything":   "anything",
	"raw":        "raw value",
	"unspecified": "unspecified",
}

// Normalize converts a type-valued expression subtree into a canonical
// descriptor. It is a pure function of the subtree: identical input
// always yields identical text. It never fails; unrecognized constructs
// produce a bounded raw rendering instead.
func Normalize(node *nix.Node, src []byte) TypeDescriptor {
	raw := collapseWhitespace(node.Text(src))
	canonical, ok := normalizeExpr(node, src)
	if !ok {
		return TypeDescriptor{Canonical: rawDescriptor(raw), Raw: raw, Recognized: false}
	}
	return TypeDescriptor{Canonical: canonical, Raw: raw, Recognized: true}
}

func normalizeExpr(node *nix.Node, src []byte) (string, bool) {
	node = unwrap(node)
	if node == nil {
		return "", false
	}
	switch node.Kind {
	case nix.KindIdent, nix.KindSelect:
		name, ok := constructorName(node, src)
		if !ok {
			return "", false
		}
		if canonical, ok := primitiveTypes[name]; ok {
			return canonical, true
		}
		// Nullary mentions of parameterized constructors (rare, but a
		// bare types.listOf appears in partially written modules).
		switch name {
		case "listOf":
			return "list", true
		case "attrsOf", "lazyAttrsOf":
			return "attribute set", true
		case "submodule":
			return "submodule", true
		}
		return "", false
	case nix.KindApply:
		return normalizeApply(node, src)
	}
	return "", false
}

func normalizeApply(node *nix.Node, src []byte) (string, bool) {
	fn := unwrap(node.Child(0))
	name, ok := constructorName(fn, src)
	if !ok {
		return "", false
	}
	args := node.Children[1:]

	oneArg := func() (string, bool) {
		if len(args) != 1 {
			return "", false
		}
		return normalizeExpr(args[0], src)
	}

	switch name {
	case "listOf":
		inner, ok := oneArg()
		if !ok {
			return "", false
		}
		return "list of " + inner, true
	case "attrsOf", "lazyAttrsOf":
		inner, ok := oneArg()
		if !ok {
			return "", false
		}
		return "attribute set of " + inner, true
	case "nullOr":
		inner, ok := oneArg()
		if !ok {
			return "", false
		}
		return "null or " + inner, true
	case "uniq", "unique":
		return oneArg()
	case "functionTo":
		inner, ok := oneArg()
		if !ok {
			return "", false
		}
		return "function that evaluates to " + inner, true
	case "enum":
		if len(args) != 1 {
			return "", false
		}
		return normalizeEnum(args[0], src)
	case "either":
		if len(args) != 2 {
			return "", false
		}
		left, ok := normalizeExpr(args[0], src)
		if !ok {
			return "", false
		}
		right, ok := normalizeExpr(args[1], src)
		if !ok {
			return "", false
		}
		return left + " or " + right, true
	case "oneOf":
		if len(args) != 1 {
			return "", false
		}
		return normalizeOneOf(args[0], src)
	case "submodule", "submoduleWith":
		return "submodule", true
	case "separatedString":
		if len(args) != 1 {
			return "", false
		}
		sep := unquote(unwrap(args[0]).Text(src))
		return "strings concatenated with " + quote(sep), true
	}
	return "", false
}

func normalizeEnum(arg *nix.Node, src []byte) (string, bool) {
	arg = unwrap(arg)
	if arg == nil || arg.Kind != nix.KindList {
		return "", false
	}
	values := make([]string, 0, len(arg.Children))
	for _, elem := range arg.Children {
		values = append(values, collapseWhitespace(elem.Text(src)))
	}
	if len(values) == 0 {
		return "empty enumeration", true
	}
	return "one of " + strings.Join(values, ", "), true
}

func normalizeOneOf(arg *nix.Node, src []byte) (string, bool) {
	arg = unwrap(arg)
	if arg == nil || arg.Kind != nix.KindList {
		return "", false
	}
	parts := make([]string, 0, len(arg.Children))
	for _, elem := range arg.Children {
		inner, ok := normalizeExpr(elem, src)
		if !ok {
			return "", false
		}
		parts = append(parts, inner)
	}
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, " or "), true
}

// constructorName resolves the identifier a type expression refers to:
// the bare name for idents, the last attrpath segment for select chains
// (types.listOf, lib.types.str).
func constructorName(node *nix.Node, src []byte) (string, bool) {
	node = unwrap(node)
	if node == nil {
		return "", false
	}
	switch node.Kind {
	case nix.KindIdent:
		return node.Text(src), true
	case nix.KindSelect:
		path := node.FindChild(nix.KindAttrPath)
		if path == nil || path.ChildCount() == 0 {
			return "", false
		}
		last := path.Child(path.ChildCount() - 1)
		if last.Kind != nix.KindIdent {
			return "", false
		}
		return last.Text(src), true
	}
	return "", false
}

// unwrap strips parentheses.
func unwrap(node *nix.Node) *nix.Node {
	for node != nil && node.Kind == nix.KindParen {
		node = node.Child(0)
	}
	return node
}

func rawDescriptor(raw string) string {
	if len(raw) > maxRawDescriptor {
		// Back off to a rune boundary so the cut never splits a
		// multi-byte character.
		cut := maxRawDescriptor
		for cut > 0 && !utf8.RuneStart(raw[cut]) {
			cut--
		}
		raw = raw[:cut] + "…"
	}
	return rawPrefix + " " + raw
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// quote wraps the separator verbatim; separators come from Nix string
// literals already unquoted by the caller.
func quote(s string) string {
	return `"` + s + `"`
}
