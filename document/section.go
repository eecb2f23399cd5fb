package document

// SectionKind identifies the variant of a Section. The set is closed:
// consumers switch exhaustively over these values.
type SectionKind string

const (
	// KindSingle is a section holding one optional rich-text value.
	KindSingle SectionKind = "SINGLE"

	// KindList is a section holding an ordered list of rich-text values.
	KindList SectionKind = "LIST"

	// KindColumns is a section holding parallel per-column cell lists.
	KindColumns SectionKind = "COLUMNS"

	// KindMedia is a section holding image metadata.
	KindMedia SectionKind = "MEDIA"
)

// Column is the metadata of one column of a KindColumns section.
type Column struct {
	// ID is stable and used for lookup; it is never reused across columns.
	ID string `json:"id"`

	// Header is the column's display header, if any.
	Header string `json:"header,omitempty"`
}

// Section is one block of a battle box document. Only the fields of the
// section's Kind are meaningful.
//
// Invariant for KindColumns: len(Columns) == len(Cells) always.
type Section struct {
	// ID is stable and used for lookup; it is never reused across sections.
	ID string `json:"id"`

	Kind  SectionKind `json:"kind"`
	Label string      `json:"label"`

	// Optional marks sections that may be hidden without losing data.
	Optional bool `json:"optional"`

	// Visible controls display without discarding content.
	Visible bool `json:"visible"`

	// Value is the content of a KindSingle section.
	Value string `json:"value,omitempty"`

	// Items are the entries of a KindList section.
	Items []string `json:"items,omitempty"`

	// Columns and Cells are the parallel column metadata and per-column
	// item lists of a KindColumns section.
	Columns []Column   `json:"columns,omitempty"`
	Cells   [][]string `json:"cells,omitempty"`

	// Media fields of a KindMedia section.
	Image   string `json:"image,omitempty"`
	Caption string `json:"caption,omitempty"`
	Size    string `json:"size,omitempty"`
	Upright string `json:"upright,omitempty"`
}

// Clone returns a deep copy: no slice is shared with the receiver.
func (s Section) Clone() Section {
	out := s
	if s.Items != nil {
		out.Items = append([]string(nil), s.Items...)
	}
	if s.Columns != nil {
		out.Columns = append([]Column(nil), s.Columns...)
	}
	if s.Cells != nil {
		out.Cells = make([][]string, len(s.Cells))
		for i, cell := range s.Cells {
			out.Cells[i] = append([]string(nil), cell...)
		}
	}
	return out
}
