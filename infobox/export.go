package infobox

import (
	"fmt"
	"strings"

	"github.com/CeraCharlesCC/wiki-ish-battlebox-generator/document"
)

// cellJoin reassembles a multi-item cell into one field value.
const cellJoin = "<br />"

// exportDocument renders a document as an infobox invocation. Fields
// are emitted in a fixed order, empty ones are skipped, and custom
// fields come last, verbatim, before the closing braces.
func exportDocument(doc document.Document) string {
	var b strings.Builder
	b.WriteString("{{")
	b.WriteString(doc.TemplateName)
	b.WriteByte('\n')

	emit := func(key, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(&b, "| %s = %s\n", key, value)
	}
	single := func(key, sectionID string) {
		if s, ok := doc.Section(sectionID); ok {
			emit(key, s.Value)
		}
	}
	list := func(key, sectionID string) {
		s, ok := doc.Section(sectionID)
		if !ok {
			return
		}
		emit(key, joinItems(s.Items))
	}

	emit("conflict", doc.Title)
	single("partof", document.SectionPartof)

	if media, ok := doc.Section(document.SectionMedia); ok {
		emit("image", media.Image)
		emit("caption", media.Caption)
		emit("image_size", media.Size)
		emit("image_upright", media.Upright)
	}

	list("date", document.SectionDate)
	list("place", document.SectionPlace)
	single("coordinates", document.SectionCoordinates)
	single("result", document.SectionResult)
	single("territory", document.SectionTerritory)

	for _, family := range familyOrder {
		s, ok := doc.Section(familySections[family])
		if !ok {
			continue
		}
		for col, cell := range s.Cells {
			emit(fmt.Sprintf("%s%d", family, col+1), joinItems(cell))
		}
	}

	for _, f := range doc.CustomFields {
		emit(f.Key, f.Value)
	}

	b.WriteString("}}")
	return b.String()
}

func joinItems(items []string) string {
	var kept []string
	for _, item := range items {
		if strings.TrimSpace(item) != "" {
			kept = append(kept, item)
		}
	}
	return strings.Join(kept, cellJoin)
}
