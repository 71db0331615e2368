package options

import "strings"

// Predicate is a composable boolean filter over option records.
type Predicate func(OptionRecord) bool

// And combines predicates with logical AND. With no predicates it
// accepts everything.
func And(preds ...Predicate) Predicate {
	return func(rec OptionRecord) bool {
		for _, p := range preds {
			if p != nil && !p(rec) {
				return false
			}
		}
		return true
	}
}

// PathPrefix accepts records whose dot-joined path starts with prefix.
func PathPrefix(prefix string) Predicate {
	return func(rec OptionRecord) bool {
		return rec.Path.HasPrefix(prefix)
	}
}

// TypeContains accepts records whose canonical type descriptor contains
// the given substring, case-insensitively.
func TypeContains(substr string) Predicate {
	needle := strings.ToLower(substr)
	return func(rec OptionRecord) bool {
		if rec.Type == nil {
			return false
		}
		return strings.Contains(strings.ToLower(rec.Type.Canonical), needle)
	}
}

// Search accepts records whose path or description contains the term,
// case-insensitively.
func Search(term string) Predicate {
	needle := strings.ToLower(term)
	return func(rec OptionRecord) bool {
		if strings.Contains(strings.ToLower(rec.Name()), needle) {
			return true
		}
		return strings.Contains(strings.ToLower(rec.DescriptionText()), needle)
	}
}

// HasDefault accepts records with a default value.
func HasDefault() Predicate {
	return func(rec OptionRecord) bool {
		return rec.Default != nil
	}
}

// HasDescription accepts records with a description.
func HasDescription() Predicate {
	return func(rec OptionRecord) bool {
		return rec.Description != nil && !rec.Description.Empty()
	}
}

// Apply filters records by the predicate, preserving order. A nil
// predicate returns the input unchanged.
func Apply(records []OptionRecord, pred Predicate) []OptionRecord {
	if pred == nil {
		return records
	}
	out := make([]OptionRecord, 0, len(records))
	for _, rec := range records {
		if pred(rec) {
			out = append(out, rec)
		}
	}
	return out
}
