package document

import (
	"sort"

	"github.com/CeraCharlesCC/wiki-ish-battlebox-generator/wikitext"
)

// InfoboxReportKey is the synthetic field key used for whole-template
// failures, e.g. when the strict balanced parse is rejected.
const InfoboxReportKey = "__infobox__"

// FieldReport groups one extraction result under its infobox field key.
type FieldReport struct {
	Key    string              `json:"key"`
	Result wikitext.Extraction `json:"result"`

	// ParsedItemCount duplicates len(Result.Items) for quick aggregation.
	ParsedItemCount int `json:"parsed_item_count"`
}

// ImportReport is the per-field diagnostic record of one parse call. It
// is immutable once the parse completes and is discarded by the first
// structural edit to the document it is attached to.
type ImportReport struct {
	Fields map[string]FieldReport `json:"fields"`
}

// NewImportReport returns an empty report.
func NewImportReport() *ImportReport {
	return &ImportReport{Fields: make(map[string]FieldReport)}
}

// Add records the extraction result for one field key.
func (r *ImportReport) Add(key string, result wikitext.Extraction) {
	r.Fields[key] = FieldReport{
		Key:             key,
		Result:          result,
		ParsedItemCount: len(result.Items),
	}
}

// ParsedKeys returns the sorted keys whose extraction fully succeeded.
func (r *ImportReport) ParsedKeys() []string { return r.keysWithStatus(wikitext.StatusParsed) }

// PartialKeys returns the sorted keys with both items and leftovers.
func (r *ImportReport) PartialKeys() []string { return r.keysWithStatus(wikitext.StatusPartial) }

// FailedKeys returns the sorted keys that produced no items at all.
func (r *ImportReport) FailedKeys() []string { return r.keysWithStatus(wikitext.StatusFailed) }

func (r *ImportReport) keysWithStatus(status wikitext.Status) []string {
	var keys []string
	for key, field := range r.Fields {
		if field.Result.Status == status {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

func (r *ImportReport) clone() ImportReport {
	out := ImportReport{Fields: make(map[string]FieldReport, len(r.Fields))}
	for key, field := range r.Fields {
		out.Fields[key] = field
	}
	return out
}
