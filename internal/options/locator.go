package options

import (
	"github.com/optdoc/optdoc/internal/nix"
)

// LocateOptions configures one extraction pass.
type LocateOptions struct {
	// Bindings maps ${var} placeholder names to their replacement
	// values for path segments and, optionally, values.
	Bindings map[string]string

	// InterpolateValues also applies bindings to default and example
	// text, not just to path segments.
	InterpolateValues bool
}

// metadata attribute names recognized inside an option declaration.
var optionMetaKeys = map[string]bool{
	"type":        true,
	"default":     true,
	"example":     true,
	"description": true,
}

// Locate walks one file's syntax tree depth-first and returns the
// option records declared in it, possibly partial or duplicated across
// files; the merger resolves those later. Subtrees under error nodes
// yield no records but never abort the walk of their siblings.
func Locate(tree *nix.Tree, src []byte, file string, opts LocateOptions) []OptionRecord {
	l := &locator{src: src, file: file, opts: opts}
	l.visit(tree.Root, nil)
	return l.records
}

type locator struct {
	src     []byte
	file    string
	opts    LocateOptions
	records []OptionRecord
}

func (l *locator) visit(n *nix.Node, prefix Path) {
	switch n.Kind {
	case nix.KindError:
		return
	case nix.KindAttrPathValue:
		segs := l.pathSegments(n.FindChild(nix.KindAttrPath))
		value := n.Child(n.ChildCount() - 1)
		if len(segs) == 0 || value == nil || value.Kind == nix.KindAttrPath {
			return
		}
		path := append(prefix.Clone(), segs...)
		l.handleValue(value, path)
	case nix.KindInherit:
		// Inherited names contribute path segments without a value
		// subtree, so there is nothing to descend into.
		return
	default:
		for _, c := range n.Children {
			l.visit(c, prefix)
		}
	}
}

// pathSegments renders the segments of an attrpath. Dynamic ${...}
// segments keep their best-effort textual form (resolving them would
// require evaluation) and then pass through the interpolator, which
// substitutes caller-supplied bindings.
func (l *locator) pathSegments(path *nix.Node) []string {
	if path == nil {
		return nil
	}
	segs := make([]string, 0, path.ChildCount())
	for _, seg := range path.Children {
		var text string
		switch seg.Kind {
		case nix.KindIdent:
			text = seg.Text(l.src)
		case nix.KindString:
			text = unquote(seg.Text(l.src))
		case nix.KindDynamic:
			text = seg.Text(l.src)
		default:
			continue
		}
		text = Substitute(text, l.opts.Bindings)
		if text == "" {
			continue
		}
		segs = append(segs, text)
	}
	return segs
}

func (l *locator) handleValue(value *nix.Node, path Path) {
	value = unwrap(value)
	if value == nil {
		return
	}
	switch value.Kind {
	case nix.KindAttrSet:
		if rec, ok := l.optionFromBareAttrSet(value, path); ok {
			l.records = append(l.records, rec)
			return
		}
		for _, c := range value.Children {
			l.visit(c, path)
		}
	case nix.KindApply:
		l.handleApply(value, path)
	case nix.KindWith:
		if body := value.Child(1); body != nil {
			l.handleValue(body, path)
		}
	case nix.KindLetIn:
		if body := value.Child(value.ChildCount() - 1); body != nil {
			l.handleValue(body, path)
		}
	case nix.KindError:
		return
	}
}

func (l *locator) handleApply(apply *nix.Node, path Path) {
	name, ok := constructorName(apply.Child(0), l.src)
	if !ok {
		return
	}
	switch name {
	case "mkEnableOption":
		l.records = append(l.records, l.enableOptionRecord(apply, path))
	case "mkOption":
		if attrs := findAttrSetArg(apply); attrs != nil {
			l.records = append(l.records, l.optionRecord(apply, attrs, path))
		}
	}
}

// enableOptionRecord builds the record for mkEnableOption "desc":
// boolean type, default false, example true, description "Whether to
// enable <desc>." shortened to the declared text.
func (l *locator) enableOptionRecord(apply *nix.Node, path Path) OptionRecord {
	rec := OptionRecord{
		Path:     path,
		Type:     &TypeDescriptor{Canonical: "boolean", Recognized: true},
		Default:  strPtr("false"),
		Example:  strPtr("true"),
		Location: Location{File: l.file, Line: apply.Start.Line, Column: apply.Start.Column},
	}
	if str := findStringDescendant(apply); str != nil {
		desc := l.processDescription(str)
		rec.Description = &desc
	}
	return rec
}

func (l *locator) optionRecord(apply, attrs *nix.Node, path Path) OptionRecord {
	rec := OptionRecord{
		Path:     path,
		Location: Location{File: l.file, Line: apply.Start.Line, Column: apply.Start.Column},
	}
	for _, binding := range attrs.FindChildren(nix.KindAttrPathValue) {
		attrPath := binding.FindChild(nix.KindAttrPath)
		value := binding.Child(binding.ChildCount() - 1)
		if attrPath == nil || attrPath.ChildCount() == 0 || value == nil {
			continue
		}
		key := attrPath.Child(0)
		if key.Kind != nix.KindIdent {
			continue
		}
		switch key.Text(l.src) {
		case "type":
			td := Normalize(value, l.src)
			rec.Type = &td
		case "default":
			rec.Default = strPtr(l.renderValue(value))
		case "example":
			rec.Example = strPtr(l.renderValue(value))
		case "description":
			desc := l.processDescription(value)
			rec.Description = &desc
		}
	}
	return rec
}

// optionFromBareAttrSet is the fallback heuristic for declarations
// missing the mkOption wrapper: a leaf attribute set whose own keys all
// look like option metadata, with at least a type or a description plus
// one other key.
func (l *locator) optionFromBareAttrSet(attrs *nix.Node, path Path) (OptionRecord, bool) {
	known := 0
	hasAnchor := false
	for _, c := range attrs.Children {
		if c.Kind != nix.KindAttrPathValue {
			return OptionRecord{}, false
		}
		attrPath := c.FindChild(nix.KindAttrPath)
		if attrPath == nil || attrPath.ChildCount() != 1 || attrPath.Child(0).Kind != nix.KindIdent {
			return OptionRecord{}, false
		}
		key := attrPath.Child(0).Text(l.src)
		if !optionMetaKeys[key] {
			return OptionRecord{}, false
		}
		known++
		if key == "type" || key == "description" {
			hasAnchor = true
		}
	}
	if known < 2 || !hasAnchor {
		return OptionRecord{}, false
	}
	return l.optionRecord(attrs, attrs, path), true
}

// renderValue turns a default or example expression into display text:
// raw source, literalExpression wrappers removed, dedented, and
// optionally interpolated.
func (l *locator) renderValue(value *nix.Node) string {
	text := dedentKeepFirst(cleanLiteralExpr(value.Text(l.src)))
	if l.opts.InterpolateValues {
		text = Substitute(text, l.opts.Bindings)
	}
	return text
}

// processDescription extracts, cleans, and structures description text.
func (l *locator) processDescription(value *nix.Node) Description {
	str := findStringDescendant(value)
	if str == nil {
		// Non-string description expression: degrade to raw text.
		return ParseDescription(collapseWhitespace(value.Text(l.src)))
	}
	text := unquote(str.Text(l.src))
	text = dedentKeepFirst(text)
	text = cleanDirectives(text)
	text = Substitute(text, l.opts.Bindings)
	return ParseDescription(text)
}

// findAttrSetArg returns the attrset argument of an option constructor
// call, looking through parentheses.
func findAttrSetArg(apply *nix.Node) *nix.Node {
	for _, c := range apply.Children[1:] {
		if set := unwrap(c); set != nil && set.Kind == nix.KindAttrSet {
			return set
		}
	}
	return nil
}

// findStringDescendant finds the first string literal in a subtree.
// Covers both plain strings and wrappers like lib.mdDoc "...".
func findStringDescendant(n *nix.Node) *nix.Node {
	if n == nil {
		return nil
	}
	if n.Kind == nix.KindString || n.Kind == nix.KindIndentString {
		return n
	}
	var found *nix.Node
	nix.Walk(n, func(c *nix.Node) bool {
		if found != nil {
			return false
		}
		if c.Kind == nix.KindString || c.Kind == nix.KindIndentString {
			found = c
			return false
		}
		return true
	})
	return found
}
