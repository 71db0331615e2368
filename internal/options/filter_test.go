package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test Plan for Filtering:
// - PathPrefix matches on the dot-joined name
// - TypeContains is case-insensitive and nil-type safe
// - Search matches names and description text
// - HasDefault/HasDescription check field presence
// - And composes predicates, accepting everything when empty
// - Apply with a nil predicate returns the input unchanged

func sampleRecords() []OptionRecord {
	return []OptionRecord{
		{
			Path:        Path{"services", "nginx", "enable"},
			Type:        &TypeDescriptor{Canonical: "boolean", Recognized: true},
			Default:     strPtr("false"),
			Description: &Description{Segments: []Segment{{Body: "Enable the nginx web server."}}},
		},
		{
			Path: Path{"services", "postgresql", "port"},
			Type: &TypeDescriptor{Canonical: "port number", Recognized: true},
		},
		{
			Path:        Path{"boot", "loader", "timeout"},
			Default:     strPtr("5"),
			Description: &Description{Segments: []Segment{{Body: "Bootloader menu timeout."}}},
		},
	}
}

func TestPathPrefix(t *testing.T) {
	t.Parallel()

	out := Apply(sampleRecords(), PathPrefix("services."))
	assert.Len(t, out, 2)
}

func TestTypeContains(t *testing.T) {
	t.Parallel()

	out := Apply(sampleRecords(), TypeContains("PORT"))
	assert.Len(t, out, 1)
	assert.Equal(t, "services.postgresql.port", out[0].Name())

	// Records without a type never match.
	out = Apply(sampleRecords(), TypeContains(""))
	assert.Len(t, out, 2)
}

func TestSearch(t *testing.T) {
	t.Parallel()

	byName := Apply(sampleRecords(), Search("postgresql"))
	assert.Len(t, byName, 1)

	byDescription := Apply(sampleRecords(), Search("web server"))
	assert.Len(t, byDescription, 1)
	assert.Equal(t, "services.nginx.enable", byDescription[0].Name())
}

func TestHasDefaultAndHasDescription(t *testing.T) {
	t.Parallel()

	assert.Len(t, Apply(sampleRecords(), HasDefault()), 2)
	assert.Len(t, Apply(sampleRecords(), HasDescription()), 2)
}

func TestAnd(t *testing.T) {
	t.Parallel()

	pred := And(PathPrefix("services"), HasDefault())
	out := Apply(sampleRecords(), pred)
	assert.Len(t, out, 1)
	assert.Equal(t, "services.nginx.enable", out[0].Name())

	// Empty composition accepts everything; nil members are skipped.
	assert.Len(t, Apply(sampleRecords(), And()), 3)
	assert.Len(t, Apply(sampleRecords(), And(nil, HasDefault())), 2)
}

func TestApply_NilPredicate(t *testing.T) {
	t.Parallel()

	records := sampleRecords()
	assert.Equal(t, records, Apply(records, nil))
}

func TestApply_Idempotent(t *testing.T) {
	t.Parallel()

	pred := And(PathPrefix("services"), HasDefault())
	once := Apply(sampleRecords(), pred)
	assert.Equal(t, once, Apply(once, pred))
}
