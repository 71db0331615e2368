package render

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optdoc/optdoc/internal/options"
)

// Test Plan for Renderers:
// - New() resolves every advertised format and rejects unknown ones
// - Markdown links headings to source, renders callouts as GitHub
//   alerts, and switches long values to code blocks
// - JSON output round-trips through encoding/json
// - CSV output has the fixed header and dashes for absent fields
// - HTML output escapes user-controlled text
// - Table output stays on one line per option

func sampleRecords() []options.OptionRecord {
	longDefault := strings.Repeat("x", 80)
	return []options.OptionRecord{
		{
			Path: options.Path{"services", "nginx", "enable"},
			Type: &options.TypeDescriptor{Canonical: "boolean", Recognized: true},
			Default: strPtr("false"),
			Description: &options.Description{Segments: []options.Segment{
				{Body: "Enable the nginx web server.\n"},
				{Admonition: "warning", Body: "Needs an open port.\n"},
			}},
			Location: options.Location{File: "modules/nginx.nix", Line: 12},
		},
		{
			Path:     options.Path{"services", "nginx", "bigDefault"},
			Default:  &longDefault,
			Location: options.Location{File: "modules/nginx.nix", Line: 30},
		},
	}
}

func strPtr(s string) *string { return &s }

func TestNew_KnownFormats(t *testing.T) {
	t.Parallel()

	for _, format := range Formats() {
		r, err := New(format)
		require.NoError(t, err, "format %q", format)
		assert.NotNil(t, r)
	}

	r, err := New("md")
	require.NoError(t, err)
	assert.IsType(t, &Markdown{}, r)
}

func TestNew_UnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := New("docx")
	assert.ErrorContains(t, err, "docx")
}

func TestMarkdown_Render(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, (&Markdown{}).Render(&buf, sampleRecords()))
	out := buf.String()

	assert.Contains(t, out, "# Module Options")
	assert.Contains(t, out, "## [`services.nginx.enable`](modules/nginx.nix#L12)")
	assert.Contains(t, out, "> [!WARNING]")
	assert.Contains(t, out, "> Needs an open port.")
	assert.Contains(t, out, "**Default:** `false`")
	// Long values become code blocks.
	assert.Contains(t, out, "```nix\n"+strings.Repeat("x", 80)+"\n```")
}

func TestMarkdown_BacktickValueUsesCodeBlock(t *testing.T) {
	t.Parallel()

	records := []options.OptionRecord{{
		Path:     options.Path{"services", "app", "command"},
		Default:  strPtr("run `hook`"),
		Location: options.Location{File: "app.nix", Line: 1},
	}}

	var buf bytes.Buffer
	require.NoError(t, (&Markdown{}).Render(&buf, records))
	out := buf.String()

	// Backticks cannot be escaped inside an inline code span, so the
	// value takes the code-block path instead.
	assert.Contains(t, out, "```nix\nrun `hook`\n```")
	assert.NotContains(t, out, "\\`")
}

func TestJSON_Render(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, (&JSON{}).Render(&buf, sampleRecords()))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "services.nginx.enable", decoded[0]["name"])
	assert.Equal(t, "false", decoded[0]["default"])
}

func TestCSV_Render(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, (&CSV{}).Render(&buf, sampleRecords()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Option", "Type", "Default", "Example", "Description", "FilePath", "LineNumber"}, rows[0])
	assert.Equal(t, "services.nginx.enable", rows[1][0])
	assert.Equal(t, "boolean", rows[1][1])
	// Absent fields render as dashes.
	assert.Equal(t, "-", rows[2][1])
	assert.Equal(t, "-", rows[2][4])
}

func TestHTML_RenderEscapes(t *testing.T) {
	t.Parallel()

	records := []options.OptionRecord{{
		Path: options.Path{"evil"},
		Description: &options.Description{Segments: []options.Segment{
			{Body: "<script>alert(1)</script>"},
		}},
		Location: options.Location{File: "evil.nix", Line: 1},
	}}

	var buf bytes.Buffer
	require.NoError(t, (&HTML{}).Render(&buf, records))
	out := buf.String()

	assert.Contains(t, out, "<h2>evil</h2>")
	assert.NotContains(t, out, "<script>alert(1)</script>")
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestTable_Render(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, (&Table{}).Render(&buf, sampleRecords()))
	out := buf.String()

	assert.Contains(t, out, "services.nginx.enable")
	// The oversized default is truncated, never wrapped raw.
	assert.NotContains(t, out, strings.Repeat("x", 80))
}
