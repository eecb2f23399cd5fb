package wikitext

import (
	"regexp"
	"strconv"
	"strings"
)

// Mode selects the normalization context. List items and media values get
// slightly different downstream handling, but the stripping/expansion
// pipeline itself is shared.
type Mode int

const (
	ModeInline Mode = iota
	ModeListItem
	ModeMedia
)

// maxNormalizeDepth bounds recursive template expansion. Real infobox
// values nest two or three levels at most; at the cap the raw text is
// passed through untouched instead of recursed into.
const maxNormalizeDepth = 32

// NormalizeResult is the outcome of one Normalize call.
type NormalizeResult struct {
	// Text is the normalized plain text.
	Text string

	// Fragments holds every piece of the input that could not be
	// interpreted, in source order.
	Fragments []Fragment

	// Offender is the tag of the first fragment, i.e. the first and most
	// significant failure cause. Empty when everything resolved.
	Offender string
}

func (r *NormalizeResult) record(f Fragment) {
	r.Fragments = append(r.Fragments, f)
	if r.Offender == "" {
		r.Offender = f.Tag
	}
}

func (r *NormalizeResult) merge(sub NormalizeResult) {
	for _, f := range sub.Fragments {
		r.record(f)
	}
}

var (
	excessNewlines    = regexp.MustCompile(`\n{3,}`)
	trailingLineSpace = regexp.MustCompile(`[ \t]+\n`)
	bulletMarkers     = regexp.MustCompile(`^[*#]+ ?`)
)

// Normalize strips comments and refs from raw text, expands the known
// sub-template vocabulary, and collapses the leftover whitespace. Every
// piece it cannot interpret is recorded as a Fragment instead of being
// dropped silently.
func Normalize(raw string, mode Mode) NormalizeResult {
	return normalize(raw, mode, 0)
}

func normalize(raw string, mode Mode, depth int) NormalizeResult {
	var res NormalizeResult

	if depth > maxNormalizeDepth {
		res.Text = strings.TrimSpace(raw)
		return res
	}

	text := stripComments(raw, &res)
	text = stripRefs(text, &res)
	text = expandTemplates(text, mode, depth, &res)

	text = excessNewlines.ReplaceAllString(text, "\n\n")
	text = trailingLineSpace.ReplaceAllString(text, "\n")
	res.Text = strings.TrimSpace(text)

	return res
}

// stripComments removes every <!-- --> span, recording each as a fragment.
// An unterminated comment swallows the rest of the string.
func stripComments(text string, res *NormalizeResult) string {
	var b strings.Builder
	for {
		i := strings.Index(text, "<!--")
		if i < 0 {
			b.WriteString(text)
			return b.String()
		}
		b.WriteString(text[:i])
		end := strings.Index(text[i:], "-->")
		if end < 0 {
			res.record(Fragment{Tag: FragComment, Text: text[i:]})
			return b.String()
		}
		res.record(Fragment{Tag: FragComment, Text: text[i : i+end+3]})
		text = text[i+end+3:]
	}
}

// stripRefs removes <ref>...</ref> elements and self-closing <ref.../>,
// recording each as a fragment. An unterminated ref swallows the rest of
// the string.
func stripRefs(text string, res *NormalizeResult) string {
	var b strings.Builder
	for {
		i := indexRefOpen(text)
		if i < 0 {
			b.WriteString(text)
			return b.String()
		}
		b.WriteString(text[:i])

		gt := strings.IndexByte(text[i:], '>')
		if gt < 0 {
			res.record(Fragment{Tag: FragRef, Text: text[i:]})
			return b.String()
		}
		if text[i+gt-1] == '/' {
			// self-closing
			res.record(Fragment{Tag: FragRef, Text: text[i : i+gt+1]})
			text = text[i+gt+1:]
			continue
		}

		rest := text[i+gt+1:]
		closeIdx := indexFold(rest, "</ref")
		if closeIdx < 0 {
			res.record(Fragment{Tag: FragRef, Text: text[i:]})
			return b.String()
		}
		closeGt := strings.IndexByte(rest[closeIdx:], '>')
		if closeGt < 0 {
			res.record(Fragment{Tag: FragRef, Text: text[i:]})
			return b.String()
		}
		end := i + gt + 1 + closeIdx + closeGt + 1
		res.record(Fragment{Tag: FragRef, Text: text[i:end]})
		text = text[end:]
	}
}

func indexRefOpen(text string) int {
	for off := 0; ; {
		i := indexFold(text[off:], "<ref")
		if i < 0 {
			return -1
		}
		if isRefOpen(text[off+i:]) {
			return off + i
		}
		off += i + 1
	}
}

// indexFold is a case-insensitive strings.Index for ASCII needles.
func indexFold(s, needle string) int {
	return strings.Index(strings.ToLower(s), strings.ToLower(needle))
}

// expandTemplates repeatedly locates the next "{{", finds its balanced
// close, and splices in the template-specific normalization. A "{{" with
// no balanced close drops the remainder of the string as an
// unbalanced-template fragment and stops the pass.
func expandTemplates(text string, mode Mode, depth int, res *NormalizeResult) string {
	var b strings.Builder
	rest := text
	for {
		i := strings.Index(rest, "{{")
		if i < 0 {
			b.WriteString(rest)
			break
		}
		b.WriteString(rest[:i])

		end, ok := MatchTemplateSpan(rest, i)
		if !ok {
			res.record(Fragment{Tag: FragUnbalancedTemplate, Text: rest[i:]})
			break
		}

		b.WriteString(normalizeTemplate(rest[i:end], mode, depth, res))
		rest = rest[end:]
	}
	return b.String()
}

// listFamily classifies the known list templates by how their unnamed
// parameters turn into candidate item lines.
var listFamily = map[string]int{
	"plainlist":          listJoined,
	"plain list":         listJoined,
	"indented plainlist": listJoined,
	"bulletlist":         listPerParam,
	"bullet list":        listPerParam,
	"flatlist":           listPerParam,
	"collapsible list":   listWhole,
}

const (
	// join all unnamed params with newlines, then split on newlines
	listJoined = iota
	// split each unnamed param independently on internal newlines
	listPerParam
	// each unnamed param is one item, no further splitting
	listWhole
)

func normalizeTemplate(span string, mode Mode, depth int, res *NormalizeResult) string {
	inv, err := ParseInvocation(span)
	if err != nil {
		res.record(Fragment{Tag: FragUnbalancedTemplate, Text: span})
		return ""
	}

	name := inv.NormalizedName()

	if _, ok := listFamily[name]; ok {
		return normalizeList(name, inv, depth, res)
	}

	switch name {
	case "endplainlist":
		return ""

	case "hr":
		return "\n"

	case "snd":
		return " – "

	case "age in years, months, weeks and days", "age in years months weeks and days":
		return ""

	case "nowrap", "nobold":
		// typographic wrappers with no semantic content of their own
		if len(inv.Unnamed) == 0 {
			return ""
		}
		sub := normalize(inv.Unnamed[0], ModeInline, depth+1)
		res.merge(sub)
		return sub.Text

	case "flagicon", "flag icon":
		// carries icon information consumed by inline rendering later;
		// must survive normalization verbatim
		return span

	case "flagicon image":
		return ""

	case "flag", "flagcountry", "flagdeco":
		if len(inv.Unnamed) == 0 {
			return ""
		}
		// country code param + display-name param is the common pattern,
		// so with more than one unnamed param the last one is the label
		if len(inv.Unnamed) > 1 {
			return inv.Unnamed[len(inv.Unnamed)-1]
		}
		return inv.Unnamed[0]

	case "multiple image":
		return firstImageParam(inv)
	}

	res.record(Fragment{Tag: inv.Name, Text: span})
	if mode == ModeListItem {
		// in list context the raw span survives on its own line; the
		// balance-aware split downstream keeps it as one whole item
		return "\n" + span + "\n"
	}
	return ""
}

func normalizeList(name string, inv Invocation, depth int, res *NormalizeResult) string {
	var kept []string
	for _, item := range listItems(name, inv) {
		sub := normalize(item, ModeInline, depth+1)
		res.merge(sub)
		if sub.Text != "" {
			kept = append(kept, sub.Text)
		}
	}
	if len(kept) == 0 {
		return ""
	}
	return "\n" + strings.Join(kept, "\n") + "\n"
}

// listItems turns a list template's unnamed parameters into candidate
// items per its family's rule, strips leading bullet markers, trims, and
// drops empties.
func listItems(name string, inv Invocation) []string {
	var lines []string
	switch listFamily[name] {
	case listJoined:
		lines = strings.Split(strings.Join(inv.Unnamed, "\n"), "\n")
	case listPerParam:
		for _, p := range inv.Unnamed {
			lines = append(lines, strings.Split(p, "\n")...)
		}
	case listWhole:
		lines = inv.Unnamed
	}

	var items []string
	for _, line := range lines {
		line = strings.TrimSpace(bulletMarkers.ReplaceAllString(strings.TrimSpace(line), ""))
		if line != "" {
			items = append(items, line)
		}
	}
	return items
}

// firstImageParam implements the image1..image9-then-unnamed-fallback rule
// of {{multiple image}}.
func firstImageParam(inv Invocation) string {
	for i := 1; i <= 9; i++ {
		if v := inv.Named["image"+strconv.Itoa(i)]; strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	for _, p := range inv.Unnamed {
		if strings.TrimSpace(p) != "" {
			return strings.TrimSpace(p)
		}
	}
	return ""
}
