package document

import (
	"time"
)

// DefaultTemplateName is the schema identifier of the one template
// family this document model targets.
const DefaultTemplateName = "Infobox military conflict"

// Well-known section IDs, in the fixed order Seed creates them.
const (
	SectionPartof      = "partof"
	SectionDate        = "date"
	SectionPlace       = "place"
	SectionCoordinates = "coordinates"
	SectionResult      = "result"
	SectionTerritory   = "territory"
	SectionCombatants  = "combatants"
	SectionCommanders  = "commanders"
	SectionUnits       = "units"
	SectionStrength    = "strength"
	SectionCasualties  = "casualties"
	SectionMedia       = "media"
)

// CustomField preserves one unrecognized infobox key verbatim, keeping
// export a faithful round trip.
type CustomField struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Document is the root aggregate of one battle box. A Document owns its
// sections outright: every edit produces a new deep-copied snapshot and
// no mutable substructure is ever shared between snapshots.
type Document struct {
	ID    string `json:"id"`
	Title string `json:"title"`

	// TemplateName is the schema identifier; defaults to
	// DefaultTemplateName and round-trips through export.
	TemplateName string `json:"template_name"`

	Sections []Section `json:"sections"`

	LastEdited time.Time `json:"last_edited"`

	// CustomFields holds unrecognized infobox keys verbatim, in source order.
	CustomFields []CustomField `json:"custom_fields,omitempty"`

	// Report describes how this document was produced by an import. It
	// is attached only by the parse path and cleared by the first edit
	// that makes the document diverge from that provenance.
	Report *ImportReport `json:"report,omitempty"`
}

// Clone returns a deep copy sharing no mutable substructure.
func (d Document) Clone() Document {
	out := d
	out.Sections = make([]Section, len(d.Sections))
	for i, s := range d.Sections {
		out.Sections[i] = s.Clone()
	}
	if d.CustomFields != nil {
		out.CustomFields = append([]CustomField(nil), d.CustomFields...)
	}
	if d.Report != nil {
		r := d.Report.clone()
		out.Report = &r
	}
	return out
}

// Section returns the section with the given id.
func (d Document) Section(id string) (Section, bool) {
	for _, s := range d.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}

func (d *Document) sectionIndex(id string) int {
	for i := range d.Sections {
		if d.Sections[i].ID == id {
			return i
		}
	}
	return -1
}

// Seed builds a fresh empty document with the full fixed schema. List
// sections get one empty slot; column sections start with no columns
// until an import or an edit creates some.
func Seed(ids IDGenerator, clock Clock) Document {
	single := func(id, label string, optional bool) Section {
		return Section{ID: id, Kind: KindSingle, Label: label, Optional: optional, Visible: true}
	}
	list := func(id, label string) Section {
		return Section{ID: id, Kind: KindList, Label: label, Visible: true, Items: []string{""}}
	}
	columns := func(id, label string, optional bool) Section {
		return Section{ID: id, Kind: KindColumns, Label: label, Optional: optional, Visible: true}
	}

	return Document{
		ID:           ids.NewID(),
		TemplateName: DefaultTemplateName,
		LastEdited:   clock.Now(),
		Sections: []Section{
			single(SectionPartof, "Part of", true),
			list(SectionDate, "Date"),
			list(SectionPlace, "Location"),
			single(SectionCoordinates, "Coordinates", true),
			single(SectionResult, "Result", false),
			single(SectionTerritory, "Territorial changes", true),
			columns(SectionCombatants, "Belligerents", false),
			columns(SectionCommanders, "Commanders and leaders", false),
			columns(SectionUnits, "Units involved", true),
			columns(SectionStrength, "Strength", false),
			columns(SectionCasualties, "Casualties and losses", false),
			{ID: SectionMedia, Kind: KindMedia, Label: "Image", Optional: true, Visible: true},
		},
	}
}
