package infobox

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/CeraCharlesCC/wiki-ish-battlebox-generator/document"
	"github.com/CeraCharlesCC/wiki-ish-battlebox-generator/wikitext"
)

// familyKeyPattern matches the column-addressed key families. The digits
// pick the column (absent means column 1) and a trailing letter marks an
// additional value for the same column, e.g. combatant1a.
var familyKeyPattern = regexp.MustCompile(`^(combatant|commander|units|strength|casualties)([0-9]*)([a-z]?)$`)

var familyExtractors = map[string]func(string) wikitext.Extraction{
	"combatant":  wikitext.ExtractCombatant,
	"commander":  wikitext.ExtractCommander,
	"units":      wikitext.ExtractLines,
	"strength":   wikitext.ExtractStrength,
	"casualties": wikitext.ExtractCasualties,
}

// familyOrder fixes both the fill order of the columns sections and the
// export order of their keys.
var familyOrder = []string{"combatant", "commander", "units", "strength", "casualties"}

var familySections = map[string]string{
	"combatant":  document.SectionCombatants,
	"commander":  document.SectionCommanders,
	"units":      document.SectionUnits,
	"strength":   document.SectionStrength,
	"casualties": document.SectionCasualties,
}

// routeParams distributes parsed infobox parameters into the document's
// fixed schema. Unrecognized keys are kept verbatim as custom fields so
// export reproduces them.
func routeParams(doc *document.Document, report *document.ImportReport, params []wikitext.Param, ids document.IDGenerator) {
	// family -> column (1-based) -> items, filled in source order
	cells := map[string]map[int][]string{}
	colCount := 0

	for _, p := range params {
		key := strings.ToLower(p.Key)
		switch key {
		case "conflict":
			doc.Title = p.Value
		case "partof":
			setSingle(doc, document.SectionPartof, p.Value)
		case "coordinates":
			setSingle(doc, document.SectionCoordinates, p.Value)
		case "territory":
			setSingle(doc, document.SectionTerritory, p.Value)
		case "result", "status":
			setSingle(doc, document.SectionResult, p.Value)
		case "date":
			setList(doc, report, document.SectionDate, p)
		case "place":
			setList(doc, report, document.SectionPlace, p)
		case "image":
			ext := wikitext.ExtractMediaImage(p.Value)
			report.Add(p.Key, ext)
			if len(ext.Items) > 0 {
				mediaSection(doc).Image = ext.Items[0]
			}
		case "caption":
			mediaSection(doc).Caption = p.Value
		case "image_size":
			mediaSection(doc).Size = p.Value
		case "image_upright":
			mediaSection(doc).Upright = p.Value
		default:
			m := familyKeyPattern.FindStringSubmatch(key)
			if m == nil {
				doc.CustomFields = append(doc.CustomFields, document.CustomField{Key: p.Key, Value: p.Value})
				continue
			}
			family, col := m[1], 1
			if m[2] != "" {
				col, _ = strconv.Atoi(m[2])
				if col < 1 {
					col = 1
				}
			}

			ext := familyExtractors[family](p.Value)
			if family != "units" {
				report.Add(p.Key, ext)
				if col > colCount {
					colCount = col
				}
			}

			if cells[family] == nil {
				cells[family] = map[int][]string{}
			}
			cells[family][col] = append(cells[family][col], ext.Items...)
		}
	}

	buildColumns(doc, cells, colCount, ids)
}

func setSingle(doc *document.Document, sectionID, value string) {
	if s := sectionAt(doc, sectionID); s != nil {
		s.Value = value
	}
}

func setList(doc *document.Document, report *document.ImportReport, sectionID string, p wikitext.Param) {
	ext := wikitext.ExtractLines(p.Value)
	report.Add(p.Key, ext)
	if s := sectionAt(doc, sectionID); s != nil && len(ext.Items) > 0 {
		s.Items = append([]string(nil), ext.Items...)
	}
}

func mediaSection(doc *document.Document) *document.Section {
	return sectionAt(doc, document.SectionMedia)
}

func sectionAt(doc *document.Document, id string) *document.Section {
	for i := range doc.Sections {
		if doc.Sections[i].ID == id {
			return &doc.Sections[i]
		}
	}
	return nil
}

// buildColumns materializes colCount columns in every columns section
// and fills their cells from the routed family data. units data is
// clamped to the columns the targeted families established.
func buildColumns(doc *document.Document, cells map[string]map[int][]string, colCount int, ids document.IDGenerator) {
	if colCount == 0 {
		return
	}
	for _, family := range familyOrder {
		s := sectionAt(doc, familySections[family])
		if s == nil {
			continue
		}
		s.Columns = make([]document.Column, colCount)
		s.Cells = make([][]string, colCount)
		for col := 0; col < colCount; col++ {
			s.Columns[col] = document.Column{ID: ids.NewID()}
			if items := cells[family][col+1]; items != nil {
				s.Cells[col] = append([]string(nil), items...)
			} else {
				s.Cells[col] = []string{}
			}
		}
	}
}
