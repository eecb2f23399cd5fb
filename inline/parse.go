package inline

import (
	"strings"
	"unicode/utf8"

	"github.com/CeraCharlesCC/wiki-ish-battlebox-generator/wikitext"
)

// textMacros maps normalized template names to the literal they render
// as. These short-circuit only when the invocation carries no further
// parameters.
var textMacros = map[string]string{
	"kia": "†",
}

// Tokenize splits s into an ordered, gapless token sequence covering the
// entire input. Empty input yields exactly one empty text token.
//
// At each position four matches are attempted in priority order: a
// complete {{...}} macro, a complete [[...]] wiki link, a bracketed
// external link, and a bare URL. Anything else accumulates into a
// pending text token.
func Tokenize(s string) []Token {
	if s == "" {
		return []Token{{Kind: KindText}}
	}

	var out []Token
	var text strings.Builder

	flush := func() {
		if text.Len() > 0 {
			out = append(out, Token{Kind: KindText, Text: text.String()})
			text.Reset()
		}
	}

	i := 0
	for i < len(s) {
		if strings.HasPrefix(s[i:], "{{") {
			if end := findBraceEnd(s, i); end > 0 {
				if tok, ok := classifyMacro(s[i:end]); ok {
					flush()
					out = append(out, tok)
					i = end
					continue
				}
				// unrecognized macro names stay verbatim text
				text.WriteString(s[i:end])
				i = end
				continue
			}
		}

		if strings.HasPrefix(s[i:], "[[") {
			if end := findLinkEnd(s, i); end > 0 {
				flush()
				out = append(out, parseWikiLink(s[i:end]))
				i = end
				continue
			}
		}

		if s[i] == '[' {
			if tok, end, ok := parseExternalLink(s, i); ok {
				flush()
				out = append(out, tok)
				i = end
				continue
			}
			// a failed bracket parse falls through: the '[' becomes
			// ordinary text and the next position is checked normally
		}

		if tok, end, ok := parseBareURL(s, i); ok {
			flush()
			out = append(out, tok)
			i = end
			continue
		}

		_, width := utf8.DecodeRuneInString(s[i:])
		text.WriteString(s[i : i+width])
		i += width
	}

	flush()
	return out
}

// findBraceEnd returns the index just past the "}}" matching the "{{" at
// start, tracking brace depth only, or -1.
func findBraceEnd(s string, start int) int {
	depth := 0
	for i := start; i < len(s); {
		switch {
		case strings.HasPrefix(s[i:], "{{"):
			depth++
			i += 2
		case strings.HasPrefix(s[i:], "}}"):
			depth--
			i += 2
			if depth == 0 {
				return i
			}
		default:
			i++
		}
	}
	return -1
}

// findLinkEnd returns the index just past the "]]" matching the "[[" at
// start, respecting nested templates and links, or -1.
func findLinkEnd(s string, start int) int {
	links, templates := 0, 0
	for i := start; i < len(s); {
		switch {
		case strings.HasPrefix(s[i:], "{{"):
			templates++
			i += 2
		case strings.HasPrefix(s[i:], "}}"):
			templates--
			i += 2
		case strings.HasPrefix(s[i:], "[["):
			links++
			i += 2
		case strings.HasPrefix(s[i:], "]]") && templates <= 0:
			links--
			i += 2
			if links == 0 {
				return i
			}
		default:
			i++
		}
	}
	return -1
}

// classifyMacro maps a complete {{...}} span to a macro token. ok is
// false for every template name outside the recognized vocabulary; the
// caller then keeps the span as verbatim text.
func classifyMacro(span string) (Token, bool) {
	inv, err := wikitext.ParseInvocation(span)
	if err != nil {
		return Token{}, false
	}

	name := inv.NormalizedName()

	if literal, ok := textMacros[name]; ok && len(inv.RawParams) == 0 {
		return Token{
			Kind:        KindTextMacro,
			Template:    inv.Name,
			Replacement: literal,
			Original:    span,
		}, true
	}

	switch name {
	case "efn":
		if len(inv.Unnamed) == 0 {
			return Token{}, false
		}
		return Token{
			Kind:      KindEfn,
			Template:  inv.Name,
			Note:      inv.Unnamed[0],
			NoteName:  inv.Named["name"],
			NoteGroup: inv.Named["group"],
			Original:  span,
		}, true

	case "plainlist":
		var items []string
		for _, p := range inv.Unnamed {
			for _, line := range strings.Split(p, "\n") {
				line = strings.TrimSpace(line)
				if strings.HasPrefix(line, "*") {
					items = append(items, strings.TrimSpace(strings.TrimPrefix(line, "*")))
				}
			}
		}
		if len(items) == 0 {
			return Token{}, false
		}
		return Token{
			Kind:     KindPlainlist,
			Template: inv.Name,
			Items:    items,
			Original: span,
		}, true

	case "flagicon", "flag icon":
		if len(inv.Unnamed) == 0 {
			return Token{}, false
		}
		host := inv.Named["host"]
		if host == "" {
			host = inv.Named["wiki"]
		}
		return Token{
			Kind:     KindIcon,
			Template: inv.Name,
			Code:     inv.Unnamed[0],
			Host:     host,
			Original: span,
		}, true
	}

	return Token{}, false
}
