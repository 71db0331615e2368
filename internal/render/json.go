package render

import (
	"encoding/json"
	"io"

	"github.com/optdoc/optdoc/internal/options"
)

// JSON renders the record set as a pretty-printed JSON array with
// stable field names.
type JSON struct{}

type jsonRecord struct {
	Name        string                  `json:"name"`
	Type        *options.TypeDescriptor `json:"type,omitempty"`
	Default     *string                 `json:"default,omitempty"`
	Example     *string                 `json:"example,omitempty"`
	Description *options.Description    `json:"description,omitempty"`
	Location    options.Location        `json:"location"`
}

func (j *JSON) Render(w io.Writer, records []options.OptionRecord) error {
	out := make([]jsonRecord, 0, len(records))
	for _, rec := range records {
		out = append(out, jsonRecord{
			Name:        rec.Name(),
			Type:        rec.Type,
			Default:     rec.Default,
			Example:     rec.Example,
			Description: rec.Description,
			Location:    rec.Location,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
