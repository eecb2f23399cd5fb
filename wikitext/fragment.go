package wikitext

// Fragment tags used for non-template residue. Unresolved templates are
// tagged with their original-cased template name instead.
const (
	FragComment            = "comment"
	FragRef                = "ref"
	FragUnbalancedTemplate = "unbalanced-template"
	FragUnbalancedField    = "unbalanced-field"
)

// Fragment is a piece of raw wikitext that normalization could not
// interpret. Fragments are collected in source order and surface in the
// import report so nothing is dropped silently.
type Fragment struct {
	// Tag identifies the kind of construct, e.g. "comment", "ref",
	// "unbalanced-template", or an unrecognized template's name.
	Tag string `json:"tag"`

	// Text is the raw substring as it appeared in the input.
	Text string `json:"text"`
}
