package inline

import (
	"regexp"
	"strings"
)

// langPrefixes is the fixed allow-list of common Wikipedia language
// codes recognized as link prefixes. Completeness against the live
// SiteMatrix is the link gateway's concern, not this parser's.
var langPrefixes = map[string]bool{
	"ar": true, "bg": true, "ca": true, "cs": true, "da": true,
	"de": true, "el": true, "en": true, "es": true, "et": true,
	"fa": true, "fi": true, "fr": true, "he": true, "hi": true,
	"hr": true, "hu": true, "id": true, "it": true, "ja": true,
	"ko": true, "lt": true, "lv": true, "nl": true, "no": true,
	"pl": true, "pt": true, "ro": true, "ru": true, "sk": true,
	"sl": true, "sr": true, "sv": true, "th": true, "tr": true,
	"uk": true, "vi": true, "zh": true,
}

// fileNamespaces covers File/Image and their common non-English forms.
var fileNamespaces = map[string]bool{
	"file": true, "image": true,
	"datei": true, "bild": true, "fichier": true, "archivo": true,
	"imagen": true, "immagine": true, "ficheiro": true, "bestand": true,
	"plik": true, "файл": true,
}

var imageSizeOption = regexp.MustCompile(`^\d*x?\d+px$`)

var imageKeywordOptions = map[string]bool{
	"thumb": true, "thumbnail": true, "frame": true, "framed": true,
	"frameless": true, "border": true, "left": true, "right": true,
	"center": true, "none": true, "baseline": true, "middle": true,
	"sub": true, "super": true, "top": true, "text-top": true,
	"bottom": true, "text-bottom": true, "upright": true,
}

var imageOptionPrefixes = []string{"upright=", "class=", "alt=", "link=", "lang=", "page="}

// parseWikiLink parses a complete [[...]] span into a wiki-link token.
func parseWikiLink(span string) Token {
	inner := span[2 : len(span)-2]
	segments := splitLinkSegments(inner)

	target := strings.TrimSpace(segments[0])
	pipeTrick := strings.HasSuffix(inner, "|")

	var label string
	switch {
	case len(segments) == 1:
		// no label
	case pipeTrick:
		label = pipeTrickLabel(target)
	case isFileLink(target):
		// trailing segments are rendering options unless one falls
		// outside the known options vocabulary
		for _, seg := range segments[1:] {
			seg = strings.TrimSpace(seg)
			if seg != "" && !isImageOption(seg) {
				label = seg
			}
		}
	default:
		label = strings.TrimSpace(segments[len(segments)-1])
	}

	lang, target := detectLangPrefix(target)

	var anchor string
	if hash := strings.Index(target, "#"); hash >= 0 {
		anchor = target[hash+1:]
		target = target[:hash]
	}

	display := label
	if display == "" {
		if target == "" && anchor != "" {
			// section-only link
			display = anchor
		} else {
			display = target
		}
	}

	return Token{
		Kind:     KindWikiLink,
		Target:   target,
		Display:  display,
		Anchor:   anchor,
		Lang:     lang,
		Original: span,
	}
}

// splitLinkSegments splits link content on top-level '|', tracking nested
// templates and links locally. Link spans are short, so this is a plain
// depth count rather than the full scanner.
func splitLinkSegments(inner string) []string {
	var segments []string
	depth := 0
	start := 0
	for i := 0; i < len(inner); {
		switch {
		case strings.HasPrefix(inner[i:], "{{"), strings.HasPrefix(inner[i:], "[["):
			depth++
			i += 2
		case strings.HasPrefix(inner[i:], "}}"), strings.HasPrefix(inner[i:], "]]"):
			depth--
			i += 2
		case inner[i] == '|' && depth == 0:
			segments = append(segments, inner[start:i])
			start = i + 1
			i++
		default:
			i++
		}
	}
	return append(segments, inner[start:])
}

// pipeTrickLabel derives a display label from a link target the way the
// wiki pipe trick does: strip any namespace/interwiki prefix and trailing
// fragment, then cut either a trailing parenthetical or a comma suffix,
// whichever rule matches first.
func pipeTrickLabel(target string) string {
	t := target
	if i := strings.Index(t, ":"); i >= 0 {
		t = t[i+1:]
	}
	if i := strings.LastIndex(t, "#"); i >= 0 {
		t = t[:i]
	}
	t = strings.TrimSpace(t)

	if strings.HasSuffix(t, ")") {
		if open := strings.LastIndex(t, "("); open >= 0 {
			return strings.TrimSpace(t[:open])
		}
	}
	// only a top-level comma starts a strippable suffix; commas inside
	// parentheticals stay part of the label
	depth := 0
	for i := 0; i < len(t); i++ {
		switch t[i] {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				return strings.TrimSpace(t[:i])
			}
		}
	}
	return t
}

func isFileLink(target string) bool {
	t := strings.TrimPrefix(strings.TrimSpace(target), ":")
	colon := strings.Index(t, ":")
	if colon < 0 {
		return false
	}
	return fileNamespaces[strings.ToLower(strings.TrimSpace(t[:colon]))]
}

func isImageOption(segment string) bool {
	s := strings.ToLower(strings.TrimSpace(segment))
	if imageSizeOption.MatchString(s) || imageKeywordOptions[s] {
		return true
	}
	for _, prefix := range imageOptionPrefixes {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

// detectLangPrefix recognizes an optional two/three-letter language
// prefix of the form "xx:Target" or ":xx:Target" against the fixed
// allow-list, returning the code and the remaining target.
func detectLangPrefix(target string) (lang, rest string) {
	t := strings.TrimPrefix(target, ":")
	if colon := strings.Index(t, ":"); colon == 2 || colon == 3 {
		if code := strings.ToLower(t[:colon]); langPrefixes[code] {
			return code, strings.TrimSpace(t[colon+1:])
		}
	}
	return "", target
}
