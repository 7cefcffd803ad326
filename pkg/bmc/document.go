package bmc

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"
)

// Document is the textual form of a container: a single "Colors" key
// holding the table's entries as hex strings.
type Document struct {
	Colors ColorList `json:"Colors"`
}

// ColorList is the value under "Colors": either a flat list of entries or
// a list of fixed-size groups of them. The shape is chosen once, when the
// list is built or parsed, and preserved on marshal. A list mixing bare
// entries with groups has no shape and is rejected.
type ColorList struct {
	groups [][]string // nil in the flat shape
	flat   []string
}

// Grouped reports whether the list carries the grouped shape.
func (l ColorList) Grouped() bool { return l.groups != nil }

// Flatten returns the entries in table order regardless of shape.
func (l ColorList) Flatten() []string {
	if l.groups == nil {
		return l.flat
	}
	var out []string
	for _, g := range l.groups {
		out = append(out, g...)
	}
	return out
}

func (l ColorList) MarshalJSON() ([]byte, error) {
	if l.groups != nil {
		return json.Marshal(l.groups)
	}
	if l.flat == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.flat)
}

func (l *ColorList) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return fmt.Errorf("%w: \"Colors\" must not be null", ErrDocumentShape)
	}
	var flat []string
	if err := json.Unmarshal(data, &flat); err == nil {
		*l = ColorList{flat: flat}
		return nil
	}
	var groups [][]string
	if err := json.Unmarshal(data, &groups); err == nil {
		*l = ColorList{groups: groups}
		return nil
	}
	return fmt.Errorf("%w: \"Colors\" must be a list of hex entries or a list of entry groups", ErrDocumentShape)
}

// Document renders the table's entries per the grouping rule: a group size
// of one or less keeps the flat shape, as does any size that does not
// divide the entry count evenly.
func (t *Table) Document(groupSize int) Document {
	entries := make([]string, len(t.Colors))
	for i, c := range t.Colors {
		entries[i] = c.String()
	}
	if groupSize <= 1 || len(entries)%groupSize != 0 {
		return Document{Colors: ColorList{flat: entries}}
	}
	groups := make([][]string, 0, len(entries)/groupSize)
	for i := 0; i < len(entries); i += groupSize {
		groups = append(groups, entries[i:i+groupSize])
	}
	return Document{Colors: ColorList{groups: groups}}
}

// Document renders the container's table per the grouping rule.
func (c *Container) Document(groupSize int) Document {
	return c.Table.Document(groupSize)
}

// Encode renders the document as four-space-indented JSON with a trailing
// newline.
func (d Document) Encode() ([]byte, error) {
	out, err := json.MarshalIndent(d, "", "    ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

// ExportDocument renders the table as an indented JSON document.
func (c *Container) ExportDocument(groupSize int) ([]byte, error) {
	return c.Document(groupSize).Encode()
}

// ExportFile writes the JSON document for the table to path, through a
// temporary file renamed into place.
func (c *Container) ExportFile(path string, groupSize int) error {
	data, err := c.ExportDocument(groupSize)
	if err != nil {
		return err
	}
	return writeFileAtomic(path, data)
}

// ParseDocument parses a JSON color document. The "Colors" key is
// required: its absence is a shape fault, not an empty table.
func ParseDocument(data []byte) (Document, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrDocumentShape, err)
	}
	colors, ok := raw["Colors"]
	if !ok {
		return Document{}, fmt.Errorf("%w: missing \"Colors\" key", ErrDocumentShape)
	}
	var list ColorList
	if err := json.Unmarshal(colors, &list); err != nil {
		return Document{}, err
	}
	return Document{Colors: list}, nil
}

// FromDocument builds a fresh container from a parsed document. Grouping
// is flattened away and headers are reset to format defaults; the result
// encodes identically to a container built with New.
func FromDocument(doc Document) (*Container, error) {
	entries := doc.Colors.Flatten()
	if len(entries) > MaxTableEntries {
		return nil, fmt.Errorf("%w: %d entries", ErrTableTooLarge, len(entries))
	}
	colors := make([]Color, len(entries))
	for i, s := range entries {
		c, err := ParseColor(s)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		colors[i] = c
	}
	return New(colors), nil
}

// ImportDocument parses a JSON document and builds a container from it.
func ImportDocument(data []byte) (*Container, error) {
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, err
	}
	return FromDocument(doc)
}

// ImportFile reads and imports the JSON document at path.
func ImportFile(path string) (*Container, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ImportDocument(data)
}
