package inline

import (
	"net/url"
	"strings"
)

var urlSchemes = []string{"http://", "https://"}

func hasURLScheme(s string) bool {
	for _, scheme := range urlSchemes {
		if len(s) >= len(scheme) && strings.EqualFold(s[:len(scheme)], scheme) {
			return true
		}
	}
	return false
}

// parseExternalLink attempts to read a bracketed [url label] link at
// position i. ok is false when the bracket has no recognized scheme, no
// closing ']', or an address that does not parse as an absolute URI; the
// caller then treats the '[' as ordinary text.
func parseExternalLink(s string, i int) (Token, int, bool) {
	rest := s[i+1:]
	if !hasURLScheme(rest) {
		return Token{}, 0, false
	}

	close := strings.IndexByte(rest, ']')
	if close < 0 {
		return Token{}, 0, false
	}

	inner := rest[:close]
	address := inner
	label := ""
	if space := strings.IndexByte(inner, ' '); space >= 0 {
		address = inner[:space]
		label = strings.TrimSpace(inner[space+1:])
	}

	u, err := url.Parse(address)
	if err != nil || !u.IsAbs() {
		return Token{}, 0, false
	}

	if label == "" {
		label = address
	}

	end := i + 1 + close + 1
	return Token{
		Kind:     KindExternalLink,
		URI:      address,
		Display:  label,
		Original: s[i:end],
	}, end, true
}

// parseBareURL attempts to read an unbracketed http(s) URL at position i.
// The match is greedy over URL-legal bytes and then trimmed of trailing
// sentence punctuation; a trailing ')' or ']' survives only when it
// closes an earlier unmatched opener within the matched span.
func parseBareURL(s string, i int) (Token, int, bool) {
	if !hasURLScheme(s[i:]) {
		return Token{}, 0, false
	}

	j := i
	for j < len(s) && isURLByte(s[j]) {
		j++
	}

	raw := trimDanglingPunctuation(s[i:j])
	if raw == "" {
		return Token{}, 0, false
	}

	end := i + len(raw)
	return Token{
		Kind:     KindBareURL,
		URI:      raw,
		Original: raw,
	}, end, true
}

func isURLByte(b byte) bool {
	if b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9' {
		return true
	}
	return strings.IndexByte("-._~:/?#[]@!$&'()*+,;=%", b) >= 0
}

func trimDanglingPunctuation(raw string) string {
	for len(raw) > 0 {
		last := raw[len(raw)-1]
		switch {
		case strings.IndexByte(`.,;:!?'"`, last) >= 0:
			raw = raw[:len(raw)-1]
		case last == ')':
			if strings.Count(raw, "(") >= strings.Count(raw, ")") {
				return raw
			}
			raw = raw[:len(raw)-1]
		case last == ']':
			if strings.Count(raw, "[") >= strings.Count(raw, "]") {
				return raw
			}
			raw = raw[:len(raw)-1]
		default:
			return raw
		}
	}
	return raw
}
