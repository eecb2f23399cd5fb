// Package infobox turns raw "Infobox military conflict" wikitext into
// the structured document model and back. Parsing never fails: anything
// the parser cannot interpret is preserved verbatim and reported, so a
// round trip through Parse and Export loses no content.
package infobox

import (
	"strings"

	"github.com/CeraCharlesCC/wiki-ish-battlebox-generator/document"
	"github.com/CeraCharlesCC/wiki-ish-battlebox-generator/wikitext"
)

// suspicionPipeCount and suspicionKeyFloor gate the legacy fallback: a
// body with this many pipes that yields fewer keys than the floor was
// almost certainly mangled by the strict pass rather than genuinely
// sparse.
const (
	suspicionPipeCount = 4
	suspicionKeyFloor  = 2
)

// Serializer converts between wikitext and the document model.
type Serializer struct {
	template string
	ids      document.IDGenerator
	clock    document.Clock
}

// NewSerializer returns a Serializer targeting the default template.
// Nil ids or clock fall back to UUIDs and the system clock.
func NewSerializer(ids document.IDGenerator, clock document.Clock) Serializer {
	if ids == nil {
		ids = document.UUIDGenerator{}
	}
	if clock == nil {
		clock = document.SystemClock{}
	}
	return Serializer{
		template: document.DefaultTemplateName,
		ids:      ids,
		clock:    clock,
	}
}

// Parse builds a document from raw wikitext. It never returns an error:
// a page without a recognizable infobox yields a seeded empty document
// whose report records what went wrong, and partially broken markup is
// recovered field by field.
func (s Serializer) Parse(text string) document.Document {
	doc := document.Seed(s.ids, s.clock)
	report := document.NewImportReport()
	doc.Report = report

	span, found := s.extractSpan(text)
	if !found {
		report.Add(document.InfoboxReportKey, wikitext.NewExtraction(
			text,
			nil,
			[]wikitext.Fragment{{Tag: "missing-infobox", Text: firstLine(text)}},
			"missing-infobox",
		))
		return doc
	}

	params, err := wikitext.ParseInfoboxParams(span, s.template)
	if err != nil || suspicious(span, params) {
		// the strict pass mangled or rejected the body; record why and
		// reparse line by line
		msg := "suspiciously sparse strict parse"
		if err != nil {
			msg = err.Error()
		}
		report.Add(document.InfoboxReportKey, wikitext.NewExtraction(
			span,
			nil,
			[]wikitext.Fragment{{Tag: msg, Text: span}},
			msg,
		))
		params = parseLegacyParams(span)
	}

	routeParams(&doc, report, params, s.ids)
	return doc
}

// extractSpan locates the infobox invocation in the page text. Only a
// balanced invocation counts: an opening with no matching close anywhere
// means no template was found.
func (s Serializer) extractSpan(text string) (string, bool) {
	open := indexTemplateFold(text, s.template)
	if open < 0 {
		return "", false
	}
	end, ok := wikitext.MatchTemplateSpan(text, open)
	if !ok {
		return "", false
	}
	return text[open:end], true
}

// indexTemplateFold finds the first "{{" immediately followed by the
// template name, compared case-insensitively with surrounding
// whitespace ignored.
func indexTemplateFold(text, name string) int {
	lower := strings.ToLower(name)
	for from := 0; ; {
		i := strings.Index(text[from:], "{{")
		if i < 0 {
			return -1
		}
		open := from + i
		rest := strings.TrimLeft(text[open+2:], " \t\n")
		if len(rest) >= len(lower) && strings.EqualFold(rest[:len(lower)], lower) {
			return open
		}
		from = open + 2
	}
}

func suspicious(span string, params []wikitext.Param) bool {
	return strings.Count(span, "|") >= suspicionPipeCount && len(params) < suspicionKeyFloor
}

func firstLine(text string) string {
	text = strings.TrimSpace(text)
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	const max = 120
	if len(text) > max {
		text = text[:max]
	}
	return text
}

// Export renders the document back to wikitext. See export.go for the
// field ordering contract.
func (s Serializer) Export(doc document.Document) string {
	return exportDocument(doc)
}
