package wikitext

import (
	"regexp"
	"strings"
)

// Status describes how a field's raw value survived extraction. It is
// always derived from the (items, fragments, raw input) combination,
// never set directly.
type Status string

const (
	StatusParsed  Status = "parsed"
	StatusPartial Status = "partial"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// deriveStatus is total over all combinations:
//
//	empty raw input                -> skipped
//	items, no fragments            -> parsed
//	items and fragments            -> partial
//	no items, anything else left   -> failed
func deriveStatus(raw string, items []string, fragments []Fragment) Status {
	if strings.TrimSpace(raw) == "" {
		return StatusSkipped
	}
	if len(items) > 0 {
		if len(fragments) == 0 {
			return StatusParsed
		}
		return StatusPartial
	}
	return StatusFailed
}

// Extraction is the result of running one field value through the
// normalizer and splitting it into discrete items.
type Extraction struct {
	// Items are the resolved values, in order.
	Items []string `json:"items"`

	// Fragments are the raw substrings the normalizer could not interpret.
	Fragments []Fragment `json:"unparsed_fragments,omitempty"`

	// Offender identifies the first and most significant failure cause.
	Offender string `json:"first_offending_token,omitempty"`

	// Status is derived from the fields above; see deriveStatus.
	Status Status `json:"status"`
}

// NewExtraction assembles an Extraction, deriving Status from the inputs.
func NewExtraction(raw string, items []string, fragments []Fragment, offender string) Extraction {
	return Extraction{
		Items:     items,
		Fragments: fragments,
		Offender:  offender,
		Status:    deriveStatus(raw, items, fragments),
	}
}

var (
	brTags     = regexp.MustCompile(`(?i)<br\s*/?\s*>`)
	hrTags     = regexp.MustCompile(`(?i)<hr\s*/?\s*>`)
	hrLiterals = regexp.MustCompile(`-{4,}`)
	spaceRuns  = regexp.MustCompile(`\s{2,}`)
)

// ExtractCombatant splits a combatantN value into discrete belligerents.
func ExtractCombatant(raw string) Extraction { return extractListField(raw, true) }

// ExtractCommander splits a commanderN value into discrete commanders.
func ExtractCommander(raw string) Extraction { return extractListField(raw, true) }

// ExtractStrength splits a strengthN value into discrete figures.
func ExtractStrength(raw string) Extraction { return extractListField(raw, false) }

// ExtractCasualties splits a casualtiesN value into discrete figures.
func ExtractCasualties(raw string) Extraction { return extractListField(raw, false) }

// ExtractLines splits a free-form field value, such as a date or place,
// into its visual lines.
func ExtractLines(raw string) Extraction { return extractListField(raw, false) }

// extractListField is the shared pipeline of the list-type families.
// collapseSpaces enables the cosmetic header-alignment cleanup specific
// to the combatant and commander families.
func extractListField(raw string, collapseSpaces bool) Extraction {
	if strings.TrimSpace(raw) == "" {
		return Extraction{Status: StatusSkipped}
	}

	res := Normalize(raw, ModeListItem)
	fragments := res.Fragments
	offender := res.Offender

	text := brTags.ReplaceAllString(res.Text, "\n")
	text = hrTags.ReplaceAllString(text, "\n")
	text = hrLiterals.ReplaceAllString(text, "\n")

	// the strict split catches markup that survived normalization, e.g.
	// nested unresolved templates with literal newlines that must not be
	// broken apart
	segments, err := SplitTopLevel(text, '\n')
	if err != nil {
		fragments = append(fragments, Fragment{Tag: FragUnbalancedField, Text: text})
		if offender == "" {
			offender = FragUnbalancedField
		}
		segments = strings.Split(text, "\n")
	}

	var items []string
	for _, seg := range segments {
		seg = strings.TrimSpace(bulletMarkers.ReplaceAllString(strings.TrimSpace(seg), ""))
		if seg == "" {
			continue
		}
		if collapseSpaces {
			seg = spaceRuns.ReplaceAllString(seg, " ")
		}
		items = append(items, seg)
	}

	return NewExtraction(raw, items, fragments, offender)
}

// ExtractMediaImage resolves an image field value to a bare image name.
// A {{multiple image}} wrapper is unwrapped to its first image; anything
// trailing the wrapper becomes an unparsed fragment.
func ExtractMediaImage(raw string) Extraction {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Extraction{Status: StatusSkipped}
	}

	var items []string
	var fragments []Fragment
	offender := ""

	if strings.HasPrefix(trimmed, "{{") {
		if end, ok := MatchTemplateSpan(trimmed, 0); ok {
			if inv, err := ParseInvocation(trimmed[:end]); err == nil && inv.NormalizedName() == "multiple image" {
				if img := firstImageParam(inv); img != "" {
					items = append(items, img)
				}
				if rest := strings.TrimSpace(trimmed[end:]); rest != "" {
					fragments = append(fragments, Fragment{Tag: "multiple image", Text: rest})
					offender = "multiple image"
				}
			}
		}
	}

	if len(items) == 0 {
		res := Normalize(trimmed, ModeMedia)
		fragments = append(fragments, res.Fragments...)
		if offender == "" {
			offender = res.Offender
		}
		for _, line := range strings.Split(res.Text, "\n") {
			line = strings.TrimSpace(bulletMarkers.ReplaceAllString(strings.TrimSpace(line), ""))
			if line != "" {
				items = append(items, line)
				break
			}
		}
	}

	return NewExtraction(raw, items, fragments, offender)
}
