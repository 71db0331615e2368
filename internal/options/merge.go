package options

import (
	"sort"
	"strings"
)

// Registry holds the merged option set keyed by path. It is built by a
// strictly sequential fold over per-file record lists in the stable
// file-discovery order, so the result is reproducible no matter how the
// per-file extraction was scheduled.
type Registry struct {
	order   []string
	records map[string]*mergedRecord
}

type mergedRecord struct {
	rec OptionRecord
	// typeLocated tracks whether rec.Location came from a declaration
	// that contributed the type, which takes precedence over the first
	// declaration seen.
	typeLocated bool
}

// Merge folds per-file record lists into one registry. perFile must be
// ordered by file discovery index; within that, records keep their
// in-file order.
func Merge(perFile [][]OptionRecord) *Registry {
	r := &Registry{records: make(map[string]*mergedRecord)}
	for _, records := range perFile {
		for _, rec := range records {
			r.add(rec)
		}
	}
	return r
}

func (r *Registry) add(rec OptionRecord) {
	key := rec.Path.String()
	existing, ok := r.records[key]
	if !ok {
		r.records[key] = &mergedRecord{rec: rec, typeLocated: rec.Type != nil}
		r.order = append(r.order, key)
		return
	}
	mergeInto(existing, rec)
}

// mergeInto takes the field-wise union of the accumulated record and a
// later declaration. Fields already set are kept; absent fields fill in
// from the later record. The location follows the first declaration
// that contributed the type.
func mergeInto(acc *mergedRecord, rec OptionRecord) {
	if acc.rec.Type == nil && rec.Type != nil {
		acc.rec.Type = rec.Type
		if !acc.typeLocated {
			acc.rec.Location = rec.Location
			acc.typeLocated = true
		}
	}
	acc.rec.Default = resolveConflict(acc.rec.Default, rec.Default)
	acc.rec.Example = resolveConflict(acc.rec.Example, rec.Example)
	acc.rec.Description = resolveDescription(acc.rec.Description, rec.Description)
}

// resolveConflict is the policy for two declarations setting the same
// field: first wins. Kept isolated so the rule can be revisited without
// touching the walker or the fold.
func resolveConflict(existing, incoming *string) *string {
	if existing == nil {
		return incoming
	}
	return existing
}

// resolveDescription follows the same first-wins rule, except that a
// non-empty description beats an empty one: it is strictly more
// complete, not a conflict.
func resolveDescription(existing, incoming *Description) *Description {
	if existing == nil {
		return incoming
	}
	if existing.Empty() && incoming != nil && !incoming.Empty() {
		return incoming
	}
	return existing
}

// Len returns the number of distinct option paths.
func (r *Registry) Len() int {
	return len(r.records)
}

// Records returns the merged records, in first-seen order or sorted
// alphabetically by path. The returned slice is owned by the caller.
func (r *Registry) Records(sorted bool) []OptionRecord {
	keys := make([]string, len(r.order))
	copy(keys, r.order)
	if sorted {
		sort.Strings(keys)
	}
	out := make([]OptionRecord, 0, len(keys))
	for _, key := range keys {
		out = append(out, r.records[key].rec)
	}
	return out
}

// StripPrefix removes a leading path prefix (given in dot-joined form)
// from every record whose path starts with it. Records without the
// prefix are left untouched.
func StripPrefix(records []OptionRecord, prefix string) []OptionRecord {
	if prefix == "" {
		return records
	}
	segs := strings.Split(prefix, ".")
	out := make([]OptionRecord, 0, len(records))
	for _, rec := range records {
		if len(rec.Path) > len(segs) && pathStartsWith(rec.Path, segs) {
			rec.Path = rec.Path[len(segs):]
		}
		out = append(out, rec)
	}
	return out
}

func pathStartsWith(path Path, segs []string) bool {
	for i, s := range segs {
		if path[i] != s {
			return false
		}
	}
	return true
}
