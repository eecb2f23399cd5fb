package document

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// IDGenerator mints stable identifiers for fresh documents and columns.
// It is never consulted while parsing existing content.
type IDGenerator interface {
	NewID() string
}

// Clock supplies the last-edited timestamp. Tests swap in a fixed fake.
type Clock interface {
	Now() time.Time
}

// UUIDGenerator is the production IDGenerator.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string { return uuid.NewString() }

// SystemClock is the production Clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// Editor applies record-copy edits to documents. Every operation returns
// a new snapshot; the input document is never mutated. Any operation
// that actually changes content clears the import report, since the
// report describes how the document was produced and stops being true
// the moment the document diverges from that provenance.
type Editor struct {
	ids   IDGenerator
	clock Clock
}

// NewEditor builds an Editor; nil arguments select production defaults.
func NewEditor(ids IDGenerator, clock Clock) Editor {
	if ids == nil {
		ids = UUIDGenerator{}
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return Editor{ids: ids, clock: clock}
}

// finish applies the shared provenance rule: a changed snapshot loses
// its import report and gets a fresh timestamp, a no-op stays identical.
func (e Editor) finish(doc Document, changed bool) Document {
	if changed {
		doc.Report = nil
		doc.LastEdited = e.clock.Now()
	}
	return doc
}

// SetTitle replaces the document title.
func (e Editor) SetTitle(doc Document, title string) Document {
	out := doc.Clone()
	changed := out.Title != title
	out.Title = title
	return e.finish(out, changed)
}

// SetSingle replaces the value of a single-value section.
func (e Editor) SetSingle(doc Document, sectionID, value string) (Document, error) {
	out := doc.Clone()
	i := out.sectionIndex(sectionID)
	if i < 0 || out.Sections[i].Kind != KindSingle {
		return doc, fmt.Errorf("no single-value section %q", sectionID)
	}
	changed := out.Sections[i].Value != value
	out.Sections[i].Value = value
	return e.finish(out, changed), nil
}

// SetListItem replaces one entry of a list section.
func (e Editor) SetListItem(doc Document, sectionID string, index int, value string) (Document, error) {
	out := doc.Clone()
	i := out.sectionIndex(sectionID)
	if i < 0 || out.Sections[i].Kind != KindList {
		return doc, fmt.Errorf("no list section %q", sectionID)
	}
	items := out.Sections[i].Items
	if index < 0 || index >= len(items) {
		return doc, fmt.Errorf("list index %d out of range for section %q", index, sectionID)
	}
	changed := items[index] != value
	items[index] = value
	return e.finish(out, changed), nil
}

// AddListItem appends an empty slot to a list section.
func (e Editor) AddListItem(doc Document, sectionID string) (Document, error) {
	out := doc.Clone()
	i := out.sectionIndex(sectionID)
	if i < 0 || out.Sections[i].Kind != KindList {
		return doc, fmt.Errorf("no list section %q", sectionID)
	}
	out.Sections[i].Items = append(out.Sections[i].Items, "")
	return e.finish(out, true), nil
}

// RemoveListItem deletes one entry of a list section. The last slot is
// never removed, only cleared, so a list always keeps at least one slot.
func (e Editor) RemoveListItem(doc Document, sectionID string, index int) (Document, error) {
	out := doc.Clone()
	i := out.sectionIndex(sectionID)
	if i < 0 || out.Sections[i].Kind != KindList {
		return doc, fmt.Errorf("no list section %q", sectionID)
	}
	items := out.Sections[i].Items
	if index < 0 || index >= len(items) {
		return doc, fmt.Errorf("list index %d out of range for section %q", index, sectionID)
	}
	if len(items) == 1 {
		changed := items[0] != ""
		items[0] = ""
		return e.finish(out, changed), nil
	}
	out.Sections[i].Items = append(items[:index], items[index+1:]...)
	return e.finish(out, true), nil
}

// AddColumn appends a column with a fresh ID to every columns section,
// keeping the per-document column count uniform.
func (e Editor) AddColumn(doc Document) Document {
	out := doc.Clone()
	for i := range out.Sections {
		if out.Sections[i].Kind != KindColumns {
			continue
		}
		out.Sections[i].Columns = append(out.Sections[i].Columns, Column{ID: e.ids.NewID()})
		out.Sections[i].Cells = append(out.Sections[i].Cells, []string{})
	}
	return e.finish(out, true)
}

// RemoveColumn deletes the column at the given index from every columns
// section.
func (e Editor) RemoveColumn(doc Document, index int) (Document, error) {
	out := doc.Clone()
	removed := false
	for i := range out.Sections {
		s := &out.Sections[i]
		if s.Kind != KindColumns {
			continue
		}
		if index < 0 || index >= len(s.Columns) {
			return doc, fmt.Errorf("column index %d out of range", index)
		}
		s.Columns = append(s.Columns[:index], s.Columns[index+1:]...)
		s.Cells = append(s.Cells[:index], s.Cells[index+1:]...)
		removed = true
	}
	return e.finish(out, removed), nil
}

// SetCellItems replaces one column's item list in a columns section.
func (e Editor) SetCellItems(doc Document, sectionID string, column int, items []string) (Document, error) {
	out := doc.Clone()
	i := out.sectionIndex(sectionID)
	if i < 0 || out.Sections[i].Kind != KindColumns {
		return doc, fmt.Errorf("no columns section %q", sectionID)
	}
	s := &out.Sections[i]
	if column < 0 || column >= len(s.Columns) {
		return doc, fmt.Errorf("column index %d out of range for section %q", column, sectionID)
	}
	changed := !equalStrings(s.Cells[column], items)
	s.Cells[column] = append([]string(nil), items...)
	return e.finish(out, changed), nil
}

// SetMedia replaces the media section's fields.
func (e Editor) SetMedia(doc Document, image, caption, size, upright string) (Document, error) {
	out := doc.Clone()
	i := out.sectionIndex(SectionMedia)
	if i < 0 || out.Sections[i].Kind != KindMedia {
		return doc, fmt.Errorf("no media section")
	}
	s := &out.Sections[i]
	changed := s.Image != image || s.Caption != caption || s.Size != size || s.Upright != upright
	s.Image, s.Caption, s.Size, s.Upright = image, caption, size, upright
	return e.finish(out, changed), nil
}

// SetCustomField sets or replaces an unrecognized key preserved for
// round-trip export.
func (e Editor) SetCustomField(doc Document, key, value string) Document {
	out := doc.Clone()
	for i := range out.CustomFields {
		if out.CustomFields[i].Key == key {
			changed := out.CustomFields[i].Value != value
			out.CustomFields[i].Value = value
			return e.finish(out, changed)
		}
	}
	out.CustomFields = append(out.CustomFields, CustomField{Key: key, Value: value})
	return e.finish(out, true)
}

// RemoveCustomField deletes a preserved key; removing a missing key is a
// no-op.
func (e Editor) RemoveCustomField(doc Document, key string) Document {
	out := doc.Clone()
	for i := range out.CustomFields {
		if out.CustomFields[i].Key == key {
			out.CustomFields = append(out.CustomFields[:i], out.CustomFields[i+1:]...)
			return e.finish(out, true)
		}
	}
	return e.finish(out, false)
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
