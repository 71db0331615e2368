package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test Plan for Placeholder Substitution:
// - Bound placeholders are replaced with their values
// - Unbound placeholders pass through byte-for-byte
// - Mixed bound/unbound placeholders are handled independently
// - Nil or empty bindings leave the text untouched

func TestSubstitute_BoundPlaceholder(t *testing.T) {
	t.Parallel()

	got := Substitute("services.${namespace}.enable", map[string]string{"namespace": "myapp"})
	assert.Equal(t, "services.myapp.enable", got)
}

func TestSubstitute_UnboundPassesThrough(t *testing.T) {
	t.Parallel()

	got := Substitute("services.${namespace}.enable", map[string]string{"other": "x"})
	assert.Equal(t, "services.${namespace}.enable", got)
}

func TestSubstitute_Mixed(t *testing.T) {
	t.Parallel()

	got := Substitute("${a}/${b}/${c}", map[string]string{"a": "1", "c": "3"})
	assert.Equal(t, "1/${b}/3", got)
}

func TestSubstitute_NilBindings(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "${x}", Substitute("${x}", nil))
	assert.Equal(t, "${x}", Substitute("${x}", map[string]string{}))
}
