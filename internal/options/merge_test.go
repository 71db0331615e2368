package options

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Merging:
// - Declarations of the same path across files union field-wise
// - The location follows the first declaration contributing the type
// - Conflicting defaults/examples resolve first-wins
// - A non-empty description replaces an earlier empty one
// - Records(true) sorts by path, Records(false) keeps first-seen order
// - Merging the same input twice yields identical output
// - StripPrefix removes the prefix only when strictly shorter than the path

func declWithType(path, file string, line int) OptionRecord {
	return OptionRecord{
		Path:     Path{path},
		Type:     &TypeDescriptor{Canonical: "boolean", Recognized: true},
		Location: Location{File: file, Line: line},
	}
}

func TestMerge_TwoFileUnion(t *testing.T) {
	t.Parallel()

	fileA := []OptionRecord{{
		Path:     Path{"services", "nginx", "enable"},
		Type:     &TypeDescriptor{Canonical: "boolean", Recognized: true},
		Location: Location{File: "a.nix", Line: 10},
	}}
	fileB := []OptionRecord{{
		Path:        Path{"services", "nginx", "enable"},
		Default:     strPtr("false"),
		Description: &Description{Segments: []Segment{{Body: "Enable nginx."}}},
		Location:    Location{File: "b.nix", Line: 4},
	}}

	reg := Merge([][]OptionRecord{fileA, fileB})
	require.Equal(t, 1, reg.Len())

	rec := reg.Records(false)[0]
	assert.Equal(t, "services.nginx.enable", rec.Name())
	assert.Equal(t, "boolean", rec.Type.Canonical)
	assert.Equal(t, "false", *rec.Default)
	assert.Equal(t, "Enable nginx.", rec.DescriptionText())
	// A declared the type, so the merged record points at a.nix.
	assert.Equal(t, Location{File: "a.nix", Line: 10}, rec.Location)
}

func TestMerge_LocationFollowsTypeContributor(t *testing.T) {
	t.Parallel()

	fileA := []OptionRecord{{
		Path:        Path{"opt"},
		Description: &Description{Segments: []Segment{{Body: "Docs only."}}},
		Location:    Location{File: "a.nix", Line: 1},
	}}
	fileB := []OptionRecord{declWithType("opt", "b.nix", 7)}

	rec := Merge([][]OptionRecord{fileA, fileB}).Records(false)[0]
	assert.Equal(t, "b.nix", rec.Location.File)
	assert.Equal(t, 7, rec.Location.Line)
	assert.Equal(t, "Docs only.", rec.DescriptionText())
}

func TestMerge_FirstWinsOnConflict(t *testing.T) {
	t.Parallel()

	fileA := []OptionRecord{{Path: Path{"opt"}, Default: strPtr("1"), Example: strPtr("a")}}
	fileB := []OptionRecord{{Path: Path{"opt"}, Default: strPtr("2"), Example: strPtr("b")}}

	rec := Merge([][]OptionRecord{fileA, fileB}).Records(false)[0]
	assert.Equal(t, "1", *rec.Default)
	assert.Equal(t, "a", *rec.Example)
}

func TestMerge_NonEmptyDescriptionBeatsEmpty(t *testing.T) {
	t.Parallel()

	fileA := []OptionRecord{{Path: Path{"opt"}, Description: &Description{}}}
	fileB := []OptionRecord{{Path: Path{"opt"}, Description: &Description{Segments: []Segment{{Body: "Real docs."}}}}}

	rec := Merge([][]OptionRecord{fileA, fileB}).Records(false)[0]
	assert.Equal(t, "Real docs.", rec.DescriptionText())
}

func TestMerge_RecordOrdering(t *testing.T) {
	t.Parallel()

	perFile := [][]OptionRecord{
		{declWithType("zeta", "a.nix", 1), declWithType("alpha", "a.nix", 2)},
		{declWithType("mid", "b.nix", 1)},
	}
	reg := Merge(perFile)

	unsorted := reg.Records(false)
	require.Len(t, unsorted, 3)
	assert.Equal(t, "zeta", unsorted[0].Name())
	assert.Equal(t, "alpha", unsorted[1].Name())
	assert.Equal(t, "mid", unsorted[2].Name())

	sorted := reg.Records(true)
	assert.Equal(t, "alpha", sorted[0].Name())
	assert.Equal(t, "mid", sorted[1].Name())
	assert.Equal(t, "zeta", sorted[2].Name())
}

func TestRecords_SortIsIdempotent(t *testing.T) {
	t.Parallel()

	perFile := [][]OptionRecord{
		{declWithType("zeta", "a.nix", 1), declWithType("alpha", "a.nix", 2)},
		{declWithType("mid", "b.nix", 1)},
	}
	sorted := Merge(perFile).Records(true)

	again := make([]OptionRecord, len(sorted))
	copy(again, sorted)
	sort.Slice(again, func(i, j int) bool { return again[i].Name() < again[j].Name() })
	assert.Equal(t, sorted, again)
}

func TestMerge_Deterministic(t *testing.T) {
	t.Parallel()

	perFile := [][]OptionRecord{
		{declWithType("a", "a.nix", 1), {Path: Path{"b"}, Default: strPtr("x")}},
		{declWithType("b", "b.nix", 2), {Path: Path{"a"}, Default: strPtr("y")}},
	}
	first := Merge(perFile).Records(true)
	second := Merge(perFile).Records(true)
	assert.Equal(t, first, second)
}

func TestStripPrefix(t *testing.T) {
	t.Parallel()

	records := []OptionRecord{
		{Path: Path{"options", "services", "foo"}},
		{Path: Path{"options", "services"}}, // equals the prefix, untouched
		{Path: Path{"config", "other"}},
	}
	out := StripPrefix(records, "options.services")

	assert.Equal(t, "foo", out[0].Name())
	assert.Equal(t, "options.services", out[1].Name())
	assert.Equal(t, "config.other", out[2].Name())
}

func TestStripPrefix_EmptyPrefixIsNoOp(t *testing.T) {
	t.Parallel()

	records := []OptionRecord{{Path: Path{"a", "b"}}}
	out := StripPrefix(records, "")
	assert.Equal(t, "a.b", out[0].Name())
}
