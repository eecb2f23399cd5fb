package inline

// Kind identifies the variant of an inline token. The set is closed:
// every consumer switches exhaustively over these values.
type Kind string

const (
	// KindText is a literal text run.
	KindText Kind = "TEXT"

	// KindIcon is a {{flagicon|...}} style macro carrying an icon code.
	KindIcon Kind = "ICON"

	// KindTextMacro is a known template that renders as a fixed literal,
	// e.g. the killed-in-action dagger.
	KindTextMacro Kind = "TEXT_MACRO"

	// KindEfn is an {{efn|...}} explanatory footnote.
	KindEfn Kind = "EFN"

	// KindPlainlist is an inline {{plainlist|...}} macro.
	KindPlainlist Kind = "PLAINLIST"

	// KindWikiLink is an internal [[...]] link.
	KindWikiLink Kind = "WIKI_LINK"

	// KindExternalLink is a bracketed [url label] link.
	KindExternalLink Kind = "EXTERNAL_LINK"

	// KindBareURL is an unbracketed http(s) URL.
	KindBareURL Kind = "BARE_URL"
)

// Token is one element of a tokenized rich-text string. Tokens are pure
// data: only the fields of the token's Kind are meaningful, and Original
// always holds the verbatim source slice for fallback rendering.
type Token struct {
	Kind Kind `json:"kind"`

	// Text is the literal content of a KindText token.
	Text string `json:"text,omitempty"`

	// Original is the verbatim source of any non-text token.
	Original string `json:"original,omitempty"`

	// Template is the macro's template name as written.
	Template string `json:"template,omitempty"`

	// Code is the icon code of a KindIcon token.
	Code string `json:"code,omitempty"`

	// Host overrides the wiki host an icon is resolved against.
	Host string `json:"host,omitempty"`

	// Replacement is the literal a KindTextMacro renders as.
	Replacement string `json:"replacement,omitempty"`

	// Note is the footnote body of a KindEfn token; NoteName and
	// NoteGroup carry its optional name= and group= parameters.
	Note      string `json:"note,omitempty"`
	NoteName  string `json:"note_name,omitempty"`
	NoteGroup string `json:"note_group,omitempty"`

	// Items are the entries of a KindPlainlist token.
	Items []string `json:"items,omitempty"`

	// Target is the raw link target of a KindWikiLink token, with any
	// language prefix and fragment already stripped off.
	Target string `json:"target,omitempty"`

	// Display is the text shown for a link token.
	Display string `json:"display,omitempty"`

	// Anchor is the #fragment of a KindWikiLink token.
	Anchor string `json:"anchor,omitempty"`

	// Lang is the detected language prefix of a KindWikiLink token.
	Lang string `json:"lang,omitempty"`

	// URI is the address of a KindExternalLink or KindBareURL token.
	URI string `json:"uri,omitempty"`
}
